package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCourierStatus_Valid(t *testing.T) {
	t.Parallel()

	for _, s := range Statuses() {
		assert.True(t, s.Valid(), "status %q", s)
	}

	assert.False(t, CourierStatus("").Valid())
	assert.False(t, CourierStatus("Lost").Valid())
	assert.False(t, CourierStatus("picked up").Valid(), "status values are case sensitive")
}

func TestStatuses_ReturnsCopy(t *testing.T) {
	t.Parallel()

	got := Statuses()
	got[0] = "Mutated"
	assert.Equal(t, StatusPickedUp, Statuses()[0])
}
