package model

import (
	"bytes"
	"encoding/json"
)

// TripPlan is the full result set returned by the planning service. Every
// section is optional: the upstream schema is loosely structured and any of
// these may be absent or empty.
type TripPlan struct {
	Itinerary *Itinerary    `json:"itinerary,omitempty"`
	Hotels    []HotelOffer  `json:"hotels,omitempty"`
	Flights   []FlightOffer `json:"flights,omitempty"`
}

type Itinerary struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DailyPlans  []DayPlan `json:"daily_plans"`
}

type DayPlan struct {
	Day        int        `json:"day"`
	Title      string     `json:"title"`
	Theme      string     `json:"theme"`
	Activities []Activity `json:"activities"`
	Meals      *Meals     `json:"meals,omitempty"`
}

type Activity struct {
	Time              string            `json:"time"`
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	Location          *ActivityLocation `json:"location,omitempty"`
	EstimatedDuration string            `json:"estimated_duration,omitempty"`
	EstimatedCost     string            `json:"estimated_cost,omitempty"`
}

type ActivityLocation struct {
	Address    string `json:"address"`
	Cuisine    string `json:"cuisine,omitempty"`
	PriceRange string `json:"priceRange,omitempty"`
}

type Meals struct {
	Breakfast *MealEntry `json:"breakfast,omitempty"`
	Lunch     *MealEntry `json:"lunch,omitempty"`
	Dinner    *MealEntry `json:"dinner,omitempty"`
}

// MealEntry is polymorphic upstream: either a bare restaurant name or a
// {name, address} object. The Structured tag records which form arrived so
// the wire shape survives a round trip.
type MealEntry struct {
	Name       string
	Address    string
	Structured bool
}

func (m *MealEntry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		m.Name = name
		m.Address = ""
		m.Structured = false
		return nil
	}

	var aux struct {
		Name    string `json:"name"`
		Address string `json:"address"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	m.Name = aux.Name
	m.Address = aux.Address
	m.Structured = true
	return nil
}

func (m MealEntry) MarshalJSON() ([]byte, error) {
	if !m.Structured {
		return json.Marshal(m.Name)
	}
	return json.Marshal(struct {
		Name    string `json:"name"`
		Address string `json:"address,omitempty"`
	}{Name: m.Name, Address: m.Address})
}

// GeoLocation carries hotel coordinates; either component may be missing.
type GeoLocation struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type HotelAddress struct {
	Lines       []string `json:"lines,omitempty"`
	CityName    string   `json:"cityName,omitempty"`
	CountryCode string   `json:"countryCode,omitempty"`
}

// Price follows the aggregator convention of a string total plus currency code.
type Price struct {
	Currency string `json:"currency"`
	Total    string `json:"total"`
}

type HotelOffer struct {
	Name     string        `json:"name"`
	Location *GeoLocation  `json:"location,omitempty"`
	Address  *HotelAddress `json:"address,omitempty"`
	Price    *Price        `json:"price,omitempty"`
	Rating   *float64      `json:"rating,omitempty"`
}

type FlightOffer struct {
	Itineraries []FlightItinerary `json:"itineraries"`
	Price       *Price            `json:"price,omitempty"`
}

type FlightItinerary struct {
	Duration string          `json:"duration"`
	Segments []FlightSegment `json:"segments"`
}

type FlightSegment struct {
	Departure    *FlightEndpoint `json:"departure,omitempty"`
	Arrival      *FlightEndpoint `json:"arrival,omitempty"`
	Carrier      string          `json:"carrier"`
	FlightNumber string          `json:"flight_number"`
}

type FlightEndpoint struct {
	Airport string `json:"airport"`
	Time    string `json:"time"`
}
