package model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	pkgerrors "TripPlanner/pkg/errors"
)

// PreferenceKind is one of the fixed travel-style tags a user may select.
type PreferenceKind string

const (
	PreferenceAdventure  PreferenceKind = "adventure"
	PreferenceRelaxation PreferenceKind = "relaxation"
	PreferenceCulture    PreferenceKind = "culture"
	PreferenceFood       PreferenceKind = "food"
	PreferenceNature     PreferenceKind = "nature"
	PreferenceShopping   PreferenceKind = "shopping"
)

// AllPreferences fixes the canonical ordering used for payloads and fingerprints.
var AllPreferences = []PreferenceKind{
	PreferenceAdventure,
	PreferenceRelaxation,
	PreferenceCulture,
	PreferenceFood,
	PreferenceNature,
	PreferenceShopping,
}

// ParsePreference resolves a preference name from the API surface.
func ParsePreference(s string) (PreferenceKind, bool) {
	kind := PreferenceKind(strings.ToLower(strings.TrimSpace(s)))
	for _, p := range AllPreferences {
		if p == kind {
			return kind, true
		}
	}
	return "", false
}

// FormState holds the in-progress trip request fields. It is pure data:
// mutators assign fields, validation performs no I/O.
type FormState struct {
	Destination string
	Country     string
	Days        int
	Budget      string
	CheckIn     string
	CheckOut    string
	Preferences map[PreferenceKind]bool
}

const defaultDays = 7

func NewFormState() FormState {
	prefs := make(map[PreferenceKind]bool, len(AllPreferences))
	for _, p := range AllPreferences {
		prefs[p] = false
	}
	return FormState{
		Days:        defaultDays,
		Preferences: prefs,
	}
}

// TogglePreference flips the selection for one kind, all others unchanged.
func (f *FormState) TogglePreference(kind PreferenceKind) {
	if f.Preferences == nil {
		f.Preferences = make(map[PreferenceKind]bool, len(AllPreferences))
	}
	f.Preferences[kind] = !f.Preferences[kind]
}

// SelectedPreferences returns the kinds currently toggled on, in canonical
// order, with no duplicates.
func (f *FormState) SelectedPreferences() []PreferenceKind {
	selected := make([]PreferenceKind, 0, len(AllPreferences))
	for _, p := range AllPreferences {
		if f.Preferences[p] {
			selected = append(selected, p)
		}
	}
	return selected
}

// TripRequest is the validated, immutable payload sent to the planning service.
type TripRequest struct {
	Destination string           `json:"destination"`
	Country     string           `json:"country"`
	Days        int              `json:"days"`
	Budget      string           `json:"budget,omitempty"`
	CheckIn     string           `json:"checkIn,omitempty"`
	CheckOut    string           `json:"checkOut,omitempty"`
	Preferences []PreferenceKind `json:"preferences"`
}

const (
	MinTripDays = 1
	MaxTripDays = 30
)

// Validate gates submission: empty destination and out-of-range duration are
// rejected before any network interaction.
func (f *FormState) Validate() (TripRequest, error) {
	if strings.TrimSpace(f.Destination) == "" {
		return TripRequest{}, pkgerrors.EmptyDestination
	}

	if f.Days < MinTripDays || f.Days > MaxTripDays {
		return TripRequest{}, pkgerrors.InvalidDuration
	}

	return TripRequest{
		Destination: f.Destination,
		Country:     f.Country,
		Days:        f.Days,
		Budget:      f.Budget,
		CheckIn:     f.CheckIn,
		CheckOut:    f.CheckOut,
		Preferences: f.SelectedPreferences(),
	}, nil
}

// Fingerprint derives a cache key for the request. Preferences are already in
// canonical order, so toggle order never changes the fingerprint.
func (r TripRequest) Fingerprint() string {
	raw, err := json.Marshal(r)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
