package model

import "strings"

// RequestStatus is the planning request lifecycle state. Exactly one plan or
// one error message is retained at a time, never both.
type RequestStatus string

const (
	StatusIdle    RequestStatus = "idle"
	StatusLoading RequestStatus = "loading"
	StatusSuccess RequestStatus = "success"
	StatusError   RequestStatus = "error"
)

// ResultTab is the currently displayed result category.
type ResultTab string

const (
	TabItinerary ResultTab = "itinerary"
	TabHotels    ResultTab = "hotels"
	TabFlights   ResultTab = "flights"
)

func ParseTab(s string) (ResultTab, bool) {
	switch ResultTab(strings.ToLower(strings.TrimSpace(s))) {
	case TabItinerary:
		return TabItinerary, true
	case TabHotels:
		return TabHotels, true
	case TabFlights:
		return TabFlights, true
	default:
		return "", false
	}
}
