package render

import "TripPlanner/internal/model"

const noHotelsMessage = "No hotel recommendations available"

type HotelsView struct {
	EmptyMessage string      `json:"empty_message,omitempty"`
	Cards        []HotelCard `json:"cards,omitempty"`
}

type HotelCard struct {
	Name        string      `json:"name"`
	Coordinates string      `json:"coordinates,omitempty"`
	Address     string      `json:"address,omitempty"`  // lines joined with ", "
	CityLine    string      `json:"city_line,omitempty"` // "Tokyo, JP"
	Price       *PriceView  `json:"price,omitempty"`
	Rating      *RatingView `json:"rating,omitempty"`
}

// Hotels projects the hotel offers in order, or an explicit empty state.
func Hotels(plan *model.TripPlan) HotelsView {
	if plan == nil || len(plan.Hotels) == 0 {
		return HotelsView{EmptyMessage: noHotelsMessage}
	}

	view := HotelsView{Cards: make([]HotelCard, 0, len(plan.Hotels))}
	for _, hotel := range plan.Hotels {
		view.Cards = append(view.Cards, hotelCard(hotel))
	}
	return view
}

func hotelCard(hotel model.HotelOffer) HotelCard {
	card := HotelCard{
		Name:        hotel.Name,
		Coordinates: formatCoordinates(hotel.Location),
		Price:       priceView(hotel.Price, "per night"),
		Rating:      ratingView(hotel.Rating),
	}

	if hotel.Address != nil {
		card.Address = joinAddressLines(hotel.Address.Lines)
		if hotel.Address.CityName != "" || hotel.Address.CountryCode != "" {
			card.CityLine = joinAddressLines(trimEmpty([]string{hotel.Address.CityName, hotel.Address.CountryCode}))
		}
	}

	return card
}

func trimEmpty(parts []string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
