package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TripPlanner/internal/model"
)

func floatPtr(v float64) *float64 { return &v }

func TestRatingView(t *testing.T) {
	tests := []struct {
		name      string
		rating    *float64
		wantStars int
		wantLabel string
	}{
		{name: "rounds up", rating: floatPtr(4.6), wantStars: 5, wantLabel: "4.6/5"},
		{name: "rounds down", rating: floatPtr(4.4), wantStars: 4, wantLabel: "4.4/5"},
		{name: "integral", rating: floatPtr(3), wantStars: 3, wantLabel: "3/5"},
		{name: "clamped high", rating: floatPtr(7.2), wantStars: 5, wantLabel: "7.2/5"},
		{name: "clamped low", rating: floatPtr(-1), wantStars: 0, wantLabel: "-1/5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := ratingView(tt.rating)
			require.NotNil(t, view)
			assert.Equal(t, tt.wantStars, view.Stars)
			assert.Equal(t, tt.wantLabel, view.Label)
		})
	}
}

func TestRatingViewNil(t *testing.T) {
	assert.Nil(t, ratingView(nil))
}

func TestFormatCoordinates(t *testing.T) {
	assert.Equal(t, "35.6852, 139.7528",
		formatCoordinates(&model.GeoLocation{Latitude: floatPtr(35.68523), Longitude: floatPtr(139.75277)}))

	// both components required
	assert.Empty(t, formatCoordinates(&model.GeoLocation{Latitude: floatPtr(35.6852)}))
	assert.Empty(t, formatCoordinates(&model.GeoLocation{Longitude: floatPtr(139.7528)}))
	assert.Empty(t, formatCoordinates(nil))
}

func TestPriceView(t *testing.T) {
	view := priceView(&model.Price{Currency: "USD", Total: "250.00"}, "per night")
	require.NotNil(t, view)
	assert.Equal(t, "USD 250.00", view.Amount)
	assert.Equal(t, "per night", view.Caption)

	assert.Nil(t, priceView(nil, "total"))
}

func TestFormatSegmentTime(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "2026-04-01T09:30:00Z", want: "Apr 1, 2026 9:30 AM"},
		{raw: "2026-04-01T21:30:00", want: "Apr 1, 2026 9:30 PM"},
		{raw: "2026-04-01 09:30:00", want: "Apr 1, 2026 9:30 AM"},
		{raw: "not-a-time", want: ""},
		{raw: "", want: ""},
		{raw: "   ", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatSegmentTime(tt.raw), "raw=%q", tt.raw)
	}
}
