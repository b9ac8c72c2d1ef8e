package signatures

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		allowed  bool
	}{
		{StatusPending, StatusSigned, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusPending, false},
		{StatusSigned, StatusRejected, false},
		{StatusSigned, StatusSigned, false},
		{StatusSigned, StatusPending, false},
		{StatusRejected, StatusSigned, false},
		{StatusRejected, StatusPending, false},
		{Status("bogus"), StatusSigned, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(StatusPending))
	assert.True(t, IsTerminal(StatusSigned))
	assert.True(t, IsTerminal(StatusRejected))
}
