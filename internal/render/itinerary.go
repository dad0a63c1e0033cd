package render

import (
	"fmt"

	"TripPlanner/internal/model"
)

type ItineraryView struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Days        []DayView `json:"days"`
}

type DayView struct {
	Heading    string         `json:"heading"` // "Day 3: Historic Kyoto"
	Theme      string         `json:"theme,omitempty"`
	Activities []ActivityView `json:"activities"`
	Meals      *MealsView     `json:"meals,omitempty"`
}

type ActivityView struct {
	Time        string     `json:"time"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Venue       *VenueView `json:"venue,omitempty"`
	Duration    string     `json:"duration,omitempty"`
	Cost        string     `json:"cost,omitempty"`
}

// VenueView is the boxed location block under an activity.
type VenueView struct {
	Address     string `json:"address"`
	CuisineLine string `json:"cuisine_line,omitempty"` // "Cuisine: Japanese • $$"
}

type MealsView struct {
	Breakfast *MealLine `json:"breakfast,omitempty"`
	Lunch     *MealLine `json:"lunch,omitempty"`
	Dinner    *MealLine `json:"dinner,omitempty"`
}

// MealLine is the normalized meal entry: plain upstream values carry a name
// only, structured ones may add an address line.
type MealLine struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// Itinerary projects the day-by-day plan. Returns nil when the plan carries
// no itinerary, so the section is omitted entirely.
func Itinerary(plan *model.TripPlan) *ItineraryView {
	if plan == nil || plan.Itinerary == nil {
		return nil
	}

	it := plan.Itinerary
	view := &ItineraryView{
		Title:       it.Title,
		Description: it.Description,
		Days:        make([]DayView, 0, len(it.DailyPlans)),
	}

	for _, day := range it.DailyPlans {
		view.Days = append(view.Days, dayView(day))
	}

	return view
}

func dayView(day model.DayPlan) DayView {
	view := DayView{
		Heading:    fmt.Sprintf("Day %d: %s", day.Day, day.Title),
		Theme:      day.Theme,
		Activities: make([]ActivityView, 0, len(day.Activities)),
	}

	for _, act := range day.Activities {
		view.Activities = append(view.Activities, activityView(act))
	}

	if day.Meals != nil {
		view.Meals = mealsView(day.Meals)
	}

	return view
}

func activityView(act model.Activity) ActivityView {
	view := ActivityView{
		Time:        act.Time,
		Name:        act.Name,
		Description: act.Description,
		Duration:    act.EstimatedDuration,
		Cost:        act.EstimatedCost,
	}

	if act.Location != nil {
		venue := &VenueView{Address: act.Location.Address}
		if act.Location.Cuisine != "" {
			venue.CuisineLine = "Cuisine: " + act.Location.Cuisine
			if act.Location.PriceRange != "" {
				venue.CuisineLine += " • " + act.Location.PriceRange
			}
		}
		view.Venue = venue
	}

	return view
}

func mealsView(meals *model.Meals) *MealsView {
	view := &MealsView{
		Breakfast: mealLine(meals.Breakfast),
		Lunch:     mealLine(meals.Lunch),
		Dinner:    mealLine(meals.Dinner),
	}

	if view.Breakfast == nil && view.Lunch == nil && view.Dinner == nil {
		return nil
	}
	return view
}

func mealLine(entry *model.MealEntry) *MealLine {
	if entry == nil {
		return nil
	}

	line := &MealLine{Name: entry.Name}
	if entry.Structured {
		line.Address = entry.Address
	}
	return line
}
