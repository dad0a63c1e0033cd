package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithMessage(t *testing.T) {
	def := PlannerFailed.WithMessage("no flights found")
	assert.Equal(t, PlannerFailed.Code, def.Code)
	assert.Equal(t, "no flights found", def.Message)
	assert.Equal(t, "no flights found", def.Error())

	// empty override keeps the default message
	assert.Equal(t, PlannerFailed, PlannerFailed.WithMessage(""))
}

func TestGet(t *testing.T) {
	assert.Equal(t, TripNotFound, Get("TRIP_NOT_FOUND"))

	unknown := Get("NO_SUCH_CODE")
	assert.Equal(t, "NO_SUCH_CODE", unknown.Code)
	assert.Equal(t, "Unexpected error", unknown.Message)
}
