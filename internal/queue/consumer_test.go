package queue

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "TripPlanner/pkg/errors"
	"TripPlanner/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func requireSkip(t *testing.T, err error) *pkgerrors.SkipMessageError {
	t.Helper()
	require.Error(t, err)
	var skip *pkgerrors.SkipMessageError
	require.True(t, errors.As(err, &skip))
	return skip
}

func TestHandleNotificationMalformedPayload(t *testing.T) {
	skip := requireSkip(t, handleNotification(context.Background(), []byte("not json")))
	assert.Contains(t, skip.Reason, "malformed notification payload")
}

func TestHandleNotificationMissingFields(t *testing.T) {
	tests := []struct {
		name string
		msg  TripNotificationMessage
	}{
		{name: "missing trip_id", msg: TripNotificationMessage{Message: "Trip plan generated!"}},
		{name: "missing message", msg: TripNotificationMessage{TripID: "42"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := json.Marshal(tt.msg)
			require.NoError(t, err)

			skip := requireSkip(t, handleNotification(context.Background(), body))
			assert.Contains(t, skip.Reason, "missing trip_id or message")
		})
	}
}

func TestHandleNotificationWithoutMessageID(t *testing.T) {
	// no message ID means no dedup lookup; the message is just logged
	body, err := json.Marshal(TripNotificationMessage{
		TripID:  "42",
		Level:   LevelSuccess,
		Message: "Trip plan generated!",
	})
	require.NoError(t, err)

	assert.NoError(t, handleNotification(context.Background(), body))
}
