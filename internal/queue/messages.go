package queue

// Notification levels for terminal planning transitions.
const (
	LevelSuccess = "success"
	LevelError   = "error"
)

// TripNotificationMessage is the fire-and-forget payload handed to the
// notification collaborator on every terminal planning transition.
type TripNotificationMessage struct {
	MessageID  string `json:"message_id"`
	TripID     string `json:"trip_id"`
	Level      string `json:"level"`
	Message    string `json:"message"`
	OccurredAt string `json:"occurred_at"`
}
