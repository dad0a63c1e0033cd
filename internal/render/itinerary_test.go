package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TripPlanner/internal/model"
)

func TestItineraryNilWhenAbsent(t *testing.T) {
	assert.Nil(t, Itinerary(nil))
	assert.Nil(t, Itinerary(&model.TripPlan{}))
}

func TestItineraryDayHeadings(t *testing.T) {
	plan := &model.TripPlan{
		Itinerary: &model.Itinerary{
			Title:       "Tokyo Adventure",
			Description: "A week in Japan",
			DailyPlans: []model.DayPlan{
				{Day: 1, Title: "Arrival", Theme: "Settling in"},
				{Day: 3, Title: "Historic Kyoto"},
			},
		},
	}

	view := Itinerary(plan)
	require.NotNil(t, view)
	assert.Equal(t, "Tokyo Adventure", view.Title)
	require.Len(t, view.Days, 2)
	assert.Equal(t, "Day 1: Arrival", view.Days[0].Heading)
	assert.Equal(t, "Day 3: Historic Kyoto", view.Days[1].Heading)
}

func TestActivityVenue(t *testing.T) {
	plan := &model.TripPlan{
		Itinerary: &model.Itinerary{
			DailyPlans: []model.DayPlan{{
				Day: 1,
				Activities: []model.Activity{
					{
						Time: "12:00",
						Name: "Lunch",
						Location: &model.ActivityLocation{
							Address:    "1-1 Shibuya",
							Cuisine:    "Japanese",
							PriceRange: "$$",
						},
					},
					{Time: "15:00", Name: "Walk"},
				},
			}},
		},
	}

	view := Itinerary(plan)
	require.NotNil(t, view)
	require.Len(t, view.Days[0].Activities, 2)

	lunch := view.Days[0].Activities[0]
	require.NotNil(t, lunch.Venue)
	assert.Equal(t, "1-1 Shibuya", lunch.Venue.Address)
	assert.Equal(t, "Cuisine: Japanese • $$", lunch.Venue.CuisineLine)

	walk := view.Days[0].Activities[1]
	assert.Nil(t, walk.Venue)
}

func TestCuisineLineWithoutPriceRange(t *testing.T) {
	view := activityView(model.Activity{
		Location: &model.ActivityLocation{Address: "somewhere", Cuisine: "Thai"},
	})
	require.NotNil(t, view.Venue)
	assert.Equal(t, "Cuisine: Thai", view.Venue.CuisineLine)
}

func TestMealLines(t *testing.T) {
	plan := &model.TripPlan{
		Itinerary: &model.Itinerary{
			DailyPlans: []model.DayPlan{{
				Day: 1,
				Meals: &model.Meals{
					Breakfast: &model.MealEntry{Name: "Hotel buffet"},
					Dinner:    &model.MealEntry{Name: "Ramen Ichiraku", Address: "1-1 Shibuya", Structured: true},
				},
			}},
		},
	}

	view := Itinerary(plan)
	require.NotNil(t, view)
	meals := view.Days[0].Meals
	require.NotNil(t, meals)

	require.NotNil(t, meals.Breakfast)
	assert.Equal(t, "Hotel buffet", meals.Breakfast.Name)
	assert.Empty(t, meals.Breakfast.Address)

	assert.Nil(t, meals.Lunch)

	require.NotNil(t, meals.Dinner)
	assert.Equal(t, "Ramen Ichiraku", meals.Dinner.Name)
	assert.Equal(t, "1-1 Shibuya", meals.Dinner.Address)
}

func TestMealsOmittedWhenAllAbsent(t *testing.T) {
	view := dayView(model.DayPlan{Day: 2, Title: "Free day", Meals: &model.Meals{}})
	assert.Nil(t, view.Meals)
}
