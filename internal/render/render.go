// Package render projects a TripPlan into displayable trees. Renderers are
// pure functions over the stored plan; every optional upstream field that is
// absent results in an omitted section, never an empty placeholder and never
// a panic.
package render

import (
	"fmt"
	"math"
	"strings"
	"time"

	"TripPlanner/internal/model"
)

// PriceView is a formatted price with its caption ("per night", "total").
type PriceView struct {
	Amount  string `json:"amount"`
	Caption string `json:"caption"`
}

// RatingView holds both the star projection and the verbatim numeric label.
type RatingView struct {
	Stars int    `json:"stars"`
	Label string `json:"label"`
}

func priceView(p *model.Price, caption string) *PriceView {
	if p == nil {
		return nil
	}
	return &PriceView{
		Amount:  strings.TrimSpace(p.Currency + " " + p.Total),
		Caption: caption,
	}
}

func ratingView(rating *float64) *RatingView {
	if rating == nil {
		return nil
	}

	stars := int(math.Round(*rating))
	if stars < 0 {
		stars = 0
	}
	if stars > 5 {
		stars = 5
	}

	return &RatingView{
		Stars: stars,
		Label: fmt.Sprintf("%v/5", *rating),
	}
}

// formatCoordinates renders "lat, lon" to 4 decimal places. The whole line is
// suppressed unless both components are present.
func formatCoordinates(loc *model.GeoLocation) string {
	if loc == nil || loc.Latitude == nil || loc.Longitude == nil {
		return ""
	}
	return fmt.Sprintf("%.4f, %.4f", *loc.Latitude, *loc.Longitude)
}

func joinAddressLines(lines []string) string {
	return strings.Join(lines, ", ")
}

var segmentTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// formatSegmentTime parses an upstream timestamp and renders it in a
// local-readable form. Malformed or absent input renders as empty.
func formatSegmentTime(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	for _, layout := range segmentTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("Jan 2, 2006 3:04 PM")
		}
	}

	return ""
}
