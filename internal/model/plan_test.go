package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMealEntryUnmarshalPlainString(t *testing.T) {
	var entry MealEntry
	require.NoError(t, json.Unmarshal([]byte(`"Ramen Ichiraku"`), &entry))

	assert.Equal(t, "Ramen Ichiraku", entry.Name)
	assert.Empty(t, entry.Address)
	assert.False(t, entry.Structured)
}

func TestMealEntryUnmarshalStructured(t *testing.T) {
	var entry MealEntry
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Ramen Ichiraku","address":"1-1 Shibuya"}`), &entry))

	assert.Equal(t, "Ramen Ichiraku", entry.Name)
	assert.Equal(t, "1-1 Shibuya", entry.Address)
	assert.True(t, entry.Structured)
}

func TestMealEntryUnmarshalNull(t *testing.T) {
	var entry MealEntry
	require.NoError(t, json.Unmarshal([]byte(`null`), &entry))
	assert.Empty(t, entry.Name)
	assert.False(t, entry.Structured)
}

func TestMealEntryRoundTrip(t *testing.T) {
	for _, raw := range []string{
		`"Ramen Ichiraku"`,
		`{"name":"Ramen Ichiraku","address":"1-1 Shibuya"}`,
		`{"name":"Street Tacos"}`,
	} {
		var entry MealEntry
		require.NoError(t, json.Unmarshal([]byte(raw), &entry))

		out, err := json.Marshal(entry)
		require.NoError(t, err)

		var again MealEntry
		require.NoError(t, json.Unmarshal(out, &again))
		assert.Equal(t, entry, again, "raw=%s", raw)
	}
}

func TestTripPlanTolerantDecode(t *testing.T) {
	// minimal payload: everything optional missing
	var plan TripPlan
	require.NoError(t, json.Unmarshal([]byte(`{}`), &plan))
	assert.Nil(t, plan.Itinerary)
	assert.Empty(t, plan.Hotels)
	assert.Empty(t, plan.Flights)

	// partial hotel: no rating, no address, one coordinate only
	raw := `{
		"hotels": [
			{"name": "Park Hyatt", "location": {"latitude": 35.6852}}
		],
		"itinerary": {
			"title": "Tokyo Adventure",
			"daily_plans": [
				{"day": 1, "title": "Arrival", "meals": {"dinner": "Ramen Ichiraku"}}
			]
		}
	}`
	plan = TripPlan{}
	require.NoError(t, json.Unmarshal([]byte(raw), &plan))

	require.Len(t, plan.Hotels, 1)
	assert.Equal(t, "Park Hyatt", plan.Hotels[0].Name)
	assert.Nil(t, plan.Hotels[0].Rating)
	require.NotNil(t, plan.Hotels[0].Location)
	assert.Nil(t, plan.Hotels[0].Location.Longitude)

	require.NotNil(t, plan.Itinerary)
	require.Len(t, plan.Itinerary.DailyPlans, 1)
	dinner := plan.Itinerary.DailyPlans[0].Meals.Dinner
	require.NotNil(t, dinner)
	assert.Equal(t, "Ramen Ichiraku", dinner.Name)
	assert.False(t, dinner.Structured)
}
