// internal/domain/order/entity_test.go
package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatus_CanTransitionTo_Forward(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusConfirmed, StatusProcessing, true},
		{StatusProcessing, StatusShipped, true},
		{StatusShipped, StatusDelivered, true},

		// Forward jumps are legal; an admin may skip intermediate steps.
		{StatusPending, StatusShipped, true},
		{StatusPending, StatusDelivered, true},
		{StatusConfirmed, StatusDelivered, true},

		// Moving backwards is not.
		{StatusShipped, StatusProcessing, false},
		{StatusConfirmed, StatusPending, false},
		{StatusDelivered, StatusShipped, false},

		// Same status is not a transition.
		{StatusPending, StatusPending, false},
		{StatusShipped, StatusShipped, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestStatus_CancelledReachableFromNonTerminal(t *testing.T) {
	for _, from := range []Status{StatusPending, StatusConfirmed, StatusProcessing, StatusShipped} {
		assert.True(t, from.CanTransitionTo(StatusCancelled), "%s should be cancellable", from)
	}

	assert.False(t, StatusDelivered.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusCancelled))
}

func TestStatus_TerminalStatesAreFinal(t *testing.T) {
	all := []Status{StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

	for _, terminal := range []Status{StatusDelivered, StatusCancelled} {
		assert.True(t, terminal.IsTerminal())
		for _, to := range all {
			assert.False(t, terminal.CanTransitionTo(to), "%s -> %s should be rejected", terminal, to)
		}
	}
}

func TestStatus_UnknownStatusRejected(t *testing.T) {
	assert.False(t, Status("refunded").IsValid())
	assert.False(t, StatusPending.CanTransitionTo(Status("refunded")))
	assert.False(t, Status("bogus").CanTransitionTo(StatusShipped))
}

func TestGenerateOrderNumber(t *testing.T) {
	at := time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, "ORD-20260829-00042", GenerateOrderNumber(42, at))
	assert.Equal(t, "ORD-20260829-12345", GenerateOrderNumber(12345, at))
}

func TestOrder_CanBeCancelled(t *testing.T) {
	assert.True(t, (&Order{Status: StatusPending}).CanBeCancelled())
	assert.True(t, (&Order{Status: StatusShipped}).CanBeCancelled())
	assert.False(t, (&Order{Status: StatusDelivered}).CanBeCancelled())
	assert.False(t, (&Order{Status: StatusCancelled}).CanBeCancelled())
}
