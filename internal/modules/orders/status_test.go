package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		from OrderStatus
		to   OrderStatus
		ok   bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusPending, StatusDelivered, false},

		{StatusProcessing, StatusShipped, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusProcessing, StatusDelivered, false},
		{StatusProcessing, StatusPending, false},

		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, false},
		{StatusShipped, StatusPending, false},

		{StatusDelivered, StatusCancelled, false},
		{StatusDelivered, StatusCompleted, false},
		{StatusCancelled, StatusPending, false},
		{StatusCompleted, StatusPending, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())

	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusProcessing.IsTerminal())
	assert.False(t, StatusShipped.IsTerminal())
}

func TestValidRejectsUnknownStatus(t *testing.T) {
	assert.False(t, OrderStatus("refunded").Valid())
	assert.False(t, OrderStatus("").Valid())
	assert.True(t, StatusShipped.Valid())
}

func TestNextStatusesIsACopy(t *testing.T) {
	next := StatusPending.NextStatuses()
	assert.ElementsMatch(t, []OrderStatus{StatusProcessing, StatusCancelled}, next)

	next[0] = StatusCompleted
	assert.ElementsMatch(t, []OrderStatus{StatusProcessing, StatusCancelled}, StatusPending.NextStatuses())
}

func TestGatewayMethods(t *testing.T) {
	assert.True(t, MethodVNPay.IsGateway())
	assert.True(t, MethodMoMo.IsGateway())
	assert.False(t, MethodCOD.IsGateway())
	assert.False(t, MethodBankTransfer.IsGateway())
}
