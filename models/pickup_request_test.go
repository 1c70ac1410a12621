package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickupStatusTransitions(t *testing.T) {
	cases := []struct {
		from    PickupStatus
		to      PickupStatus
		allowed bool
	}{
		{PickupStatusPending, PickupStatusAccepted, true},
		{PickupStatusAccepted, PickupStatusCompleted, true},

		// No skipping
		{PickupStatusPending, PickupStatusCompleted, false},

		// No moving backward
		{PickupStatusAccepted, PickupStatusPending, false},
		{PickupStatusCompleted, PickupStatusAccepted, false},
		{PickupStatusCompleted, PickupStatusPending, false},

		// Completed is terminal
		{PickupStatusCompleted, PickupStatusCompleted, false},

		// No self-loops
		{PickupStatusPending, PickupStatusPending, false},
		{PickupStatusAccepted, PickupStatusAccepted, false},

		// Unknown statuses never transition
		{"cancelled", PickupStatusAccepted, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestIsValidTimeSlot(t *testing.T) {
	for _, slot := range AllTimeSlots {
		assert.True(t, IsValidTimeSlot(string(slot)), "slot %s", slot)
	}

	assert.False(t, IsValidTimeSlot("6-9"))
	assert.False(t, IsValidTimeSlot("morning"))
	assert.False(t, IsValidTimeSlot(""))
}

func TestIsValidDeviceType(t *testing.T) {
	for _, deviceType := range DeviceTypes {
		assert.True(t, IsValidDeviceType(deviceType), "type %s", deviceType)
	}

	assert.False(t, IsValidDeviceType("Refrigerators"))
	assert.False(t, IsValidDeviceType("smartphones & tablets")) // case-sensitive
	assert.False(t, IsValidDeviceType(""))
}

func TestPickupRequestBeforeCreateDefaults(t *testing.T) {
	request := &PickupRequest{}

	require.NoError(t, request.BeforeCreate(nil))

	assert.Equal(t, PickupStatusPending, request.Status)
	assert.NotEmpty(t, request.ReferenceCode)

	// Explicit values survive the hook
	preset := &PickupRequest{Status: PickupStatusAccepted, ReferenceCode: "keep-me"}
	require.NoError(t, preset.BeforeCreate(nil))
	assert.Equal(t, PickupStatusAccepted, preset.Status)
	assert.Equal(t, "keep-me", preset.ReferenceCode)
}

func TestIsValidFeedbackCategory(t *testing.T) {
	for _, category := range AllFeedbackCategories {
		assert.True(t, IsValidFeedbackCategory(string(category)), "category %s", category)
	}

	assert.False(t, IsValidFeedbackCategory("complaint"))
	assert.False(t, IsValidFeedbackCategory(""))
}
