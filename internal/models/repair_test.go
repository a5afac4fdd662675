package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRepairStatusValidation(t *testing.T) {
	for _, status := range []string{
		RepairStatusRequested, RepairStatusApproved, RepairStatusInProgress,
		RepairStatusCompleted, RepairStatusCancelled,
	} {
		require.True(t, IsValidRepairStatus(status), status)
	}

	require.False(t, IsValidRepairStatus("Done"))
	require.False(t, IsValidRepairStatus(""))
}

func TestRepairTransitions(t *testing.T) {
	require.True(t, CanTransitionRepair(RepairStatusRequested, RepairStatusApproved))
	require.True(t, CanTransitionRepair(RepairStatusApproved, RepairStatusInProgress))
	require.True(t, CanTransitionRepair(RepairStatusInProgress, RepairStatusCompleted))

	require.False(t, CanTransitionRepair(RepairStatusRequested, RepairStatusInProgress))
	require.False(t, CanTransitionRepair(RepairStatusCompleted, RepairStatusInProgress))
}

func TestRepairCancellation(t *testing.T) {
	for _, status := range []string{
		RepairStatusRequested, RepairStatusApproved, RepairStatusInProgress,
	} {
		require.True(t, CanTransitionRepair(status, RepairStatusCancelled), status)
	}

	require.False(t, CanTransitionRepair(RepairStatusCompleted, RepairStatusCancelled))
	require.False(t, CanTransitionRepair(RepairStatusCancelled, RepairStatusRequested))
}
