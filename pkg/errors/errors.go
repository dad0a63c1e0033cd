package errors

func (d Definition) Error() string {
	return d.Message
}

// Definition carries a stable business error code plus its default message.
type Definition struct {
	Code    string
	Message string
}

// Form validation errors. Messages mirror what the form surfaces to the user.
var (
	EmptyDestination  = Definition{Code: "EMPTY_DESTINATION", Message: "Please enter a destination"}
	InvalidDuration   = Definition{Code: "INVALID_DURATION", Message: "Trip duration must be between 1 and 30 days"}
	InvalidPreference = Definition{Code: "INVALID_PREFERENCE", Message: "Unknown travel preference"}
)

// Planning lifecycle errors.
var (
	SubmitInFlight     = Definition{Code: "SUBMIT_IN_FLIGHT", Message: "A trip plan is already being generated"}
	PlannerUnavailable = Definition{Code: "PLANNER_UNAVAILABLE", Message: "Planning service unavailable"}
	PlannerFailed      = Definition{Code: "PLANNER_FAILED", Message: "Failed to generate trip plan"}
	PlanNotReady       = Definition{Code: "PLAN_NOT_READY", Message: "No trip plan available yet"}
	PlanRateLimited    = Definition{Code: "PLAN_RATE_LIMITED", Message: "Too many planning requests, please try again later"}
)

// Session errors.
var (
	TripNotFound = Definition{Code: "TRIP_NOT_FOUND", Message: "Trip session not found"}
	InvalidTab   = Definition{Code: "INVALID_TAB", Message: "Unknown result tab"}
	FormLocked   = Definition{Code: "FORM_LOCKED", Message: "Form cannot be edited while a plan is being generated"}
)

// Lookup provides error-code resolution.
var Lookup = map[string]Definition{
	EmptyDestination.Code:   EmptyDestination,
	InvalidDuration.Code:    InvalidDuration,
	InvalidPreference.Code:  InvalidPreference,
	SubmitInFlight.Code:     SubmitInFlight,
	PlannerUnavailable.Code: PlannerUnavailable,
	PlannerFailed.Code:      PlannerFailed,
	PlanNotReady.Code:       PlanNotReady,
	PlanRateLimited.Code:    PlanRateLimited,
	TripNotFound.Code:       TripNotFound,
	InvalidTab.Code:         InvalidTab,
	FormLocked.Code:         FormLocked,
}

// Get returns the Definition for a code, or a generic one if unknown.
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}

// WithMessage returns a copy of the definition carrying a specific message,
// keeping the code for HTTP status mapping.
func (d Definition) WithMessage(message string) Definition {
	if message == "" {
		return d
	}
	return Definition{Code: d.Code, Message: message}
}
