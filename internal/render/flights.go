package render

import (
	"strings"

	"TripPlanner/internal/model"
)

const noFlightsMessage = "No flight options available"

type FlightsView struct {
	EmptyMessage string       `json:"empty_message,omitempty"`
	Cards        []FlightCard `json:"cards,omitempty"`
}

type FlightCard struct {
	Legs  []LegView  `json:"legs"`
	Price *PriceView `json:"price,omitempty"`
}

// LegView is one itinerary of an offer: leg 0 is the outbound, later legs
// the return.
type LegView struct {
	Label    string       `json:"label"`
	Duration string       `json:"duration,omitempty"`
	Segments []SegmentRow `json:"segments"`
}

type SegmentRow struct {
	DepartureAirport string `json:"departure_airport"`
	DepartureTime    string `json:"departure_time"`
	ArrivalAirport   string `json:"arrival_airport"`
	ArrivalTime      string `json:"arrival_time"`
	Flight           string `json:"flight"` // "NH 829"
}

// Flights projects the flight offers in order, or an explicit empty state.
func Flights(plan *model.TripPlan) FlightsView {
	if plan == nil || len(plan.Flights) == 0 {
		return FlightsView{EmptyMessage: noFlightsMessage}
	}

	view := FlightsView{Cards: make([]FlightCard, 0, len(plan.Flights))}
	for _, offer := range plan.Flights {
		view.Cards = append(view.Cards, flightCard(offer))
	}
	return view
}

func flightCard(offer model.FlightOffer) FlightCard {
	card := FlightCard{
		Legs:  make([]LegView, 0, len(offer.Itineraries)),
		Price: priceView(offer.Price, "total"),
	}

	for i, leg := range offer.Itineraries {
		label := "Outbound"
		if i > 0 {
			label = "Return"
		}

		legView := LegView{
			Label:    label,
			Duration: leg.Duration,
			Segments: make([]SegmentRow, 0, len(leg.Segments)),
		}
		for _, seg := range leg.Segments {
			legView.Segments = append(legView.Segments, segmentRow(seg))
		}

		card.Legs = append(card.Legs, legView)
	}

	return card
}

func segmentRow(seg model.FlightSegment) SegmentRow {
	row := SegmentRow{
		Flight: strings.TrimSpace(seg.Carrier + " " + seg.FlightNumber),
	}

	if seg.Departure != nil {
		row.DepartureAirport = seg.Departure.Airport
		row.DepartureTime = formatSegmentTime(seg.Departure.Time)
	}
	if seg.Arrival != nil {
		row.ArrivalAirport = seg.Arrival.Airport
		row.ArrivalTime = formatSegmentTime(seg.Arrival.Time)
	}

	return row
}
