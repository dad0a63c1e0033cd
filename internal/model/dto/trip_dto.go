package dto

import "TripPlanner/internal/render"

// ========== Trip session DTOs ==========

// FormView mirrors the editable form fields.
type FormView struct {
	Preferences map[string]bool `json:"preferences"`
	Destination string          `json:"destination"`
	Country     string          `json:"country"`
	Budget      string          `json:"budget"`
	CheckIn     string          `json:"check_in"`
	CheckOut    string          `json:"check_out"`
	Days        int             `json:"days"`
}

// TripSummary is the action-bar header shown once a plan exists.
type TripSummary struct {
	Heading     string `json:"heading"`    // "Tokyo, Japan"
	Subheading  string `json:"subheading"` // "7 days • 2026-04-01 to 2026-04-08"
	HotelCount  int    `json:"hotel_count"`
	FlightCount int    `json:"flight_count"`
}

// TripSnapshot is the full session state returned by most operations.
type TripSnapshot struct {
	TripID    string       `json:"trip_id"`
	Status    string       `json:"status"`
	Error     string       `json:"error,omitempty"`
	ActiveTab string       `json:"active_tab"`
	Form      FormView     `json:"form"`
	Summary   *TripSummary `json:"summary,omitempty"`
}

// UpdateFormRequest is a partial form update; nil fields are left untouched.
type UpdateFormRequest struct {
	Destination *string `json:"destination"`
	Country     *string `json:"country"`
	Days        *int    `json:"days"`
	Budget      *string `json:"budget"`
	CheckIn     *string `json:"check_in"`
	CheckOut    *string `json:"check_out"`
}

// SelectTabRequest switches the active result tab.
type SelectTabRequest struct {
	Tab string `json:"tab" binding:"required"`
}

// TripView carries the rendered content for exactly one result tab.
type TripView struct {
	Tab       string                `json:"tab"`
	Summary   *TripSummary          `json:"summary,omitempty"`
	Itinerary *render.ItineraryView `json:"itinerary,omitempty"`
	Hotels    *render.HotelsView    `json:"hotels,omitempty"`
	Flights   *render.FlightsView   `json:"flights,omitempty"`
}
