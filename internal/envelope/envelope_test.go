package envelope_test

import (
	"testing"

	"github.com/SkanUJkod/SkanUJkod/internal/envelope"
	"github.com/stretchr/testify/assert"
)

type payload struct {
	Count int
}

func TestNewRoundTripsPayloadAndDisplay(t *testing.T) {
	p := payload{Count: 3}
	e := envelope.New(p, "3 findings")

	assert.Equal(t, "3 findings", e.Display())

	got, ok := e.Payload().(payload)
	assert.True(t, ok)
	assert.Equal(t, 3, got.Count)
}

func TestPayloadReinterpretationIsUnchecked(t *testing.T) {
	e := envelope.New("not a payload struct", "text result")

	_, ok := e.Payload().(payload)
	assert.False(t, ok, "mismatched downcast should fail gracefully, not panic")
}
