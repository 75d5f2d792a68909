package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusValid(t *testing.T) {
	for _, s := range Statuses() {
		assert.True(t, s.Valid(), "expected %q to be valid", s)
	}
	assert.False(t, Status("Bogus").Valid())
	assert.False(t, Status("").Valid())
	assert.False(t, Status("order received").Valid(), "status strings are case sensitive")
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusReceived, StatusPreparing, true},
		{StatusPreparing, StatusReady, true},
		{StatusReady, StatusPickedUp, true},
		{StatusReceived, StatusCanceled, true},
		{StatusPreparing, StatusCanceled, true},
		{StatusReady, StatusCanceled, true},
		{StatusReceived, StatusReady, false},
		{StatusReceived, StatusPickedUp, false},
		{StatusPreparing, StatusReceived, false},
		{StatusPickedUp, StatusCanceled, false},
		{StatusCanceled, StatusReceived, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusPickedUp.Terminal())
	assert.True(t, StatusCanceled.Terminal())
	assert.False(t, StatusReceived.Terminal())
	assert.False(t, StatusPreparing.Terminal())
	assert.False(t, StatusReady.Terminal())
}
