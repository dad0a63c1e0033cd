package errors

// SkipMessageError tells a queue consumer to ack and drop a message instead
// of requeueing it (malformed payloads, duplicates).
type SkipMessageError struct {
	Reason string
}

func (e *SkipMessageError) Error() string {
	return e.Reason
}
