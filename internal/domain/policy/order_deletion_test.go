package policy_test

import (
	"encoding/json"
	"testing"

	"github.com/sangkips/salesdesk-api/internal/domain/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeletionState_Next(t *testing.T) {
	tests := []struct {
		name          string
		from          policy.DeletionState
		hasDependents bool
		force         bool
		want          policy.DeletionState
	}{
		{"no dependents deletes", policy.DeletionPending, false, false, policy.DeletionDeleted},
		{"no dependents with force still plain delete", policy.DeletionPending, false, true, policy.DeletionDeleted},
		{"dependents block", policy.DeletionPending, true, false, policy.DeletionBlocked},
		{"dependents with force", policy.DeletionPending, true, true, policy.DeletionForceRequested},
		{"blocked stays blocked without force", policy.DeletionBlocked, true, false, policy.DeletionBlocked},
		{"blocked then force", policy.DeletionBlocked, true, true, policy.DeletionForceRequested},
		{"force requested completes", policy.DeletionForceRequested, true, true, policy.DeletionDeleted},
		{"deleted is terminal", policy.DeletionDeleted, true, true, policy.DeletionDeleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.Next(tt.hasDependents, tt.force))
		})
	}
}

func TestDeletionState_FullConfirmationFlow(t *testing.T) {
	state := policy.DeletionPending

	state = state.Next(true, false)
	require.Equal(t, policy.DeletionBlocked, state)

	state = state.Next(true, true)
	require.Equal(t, policy.DeletionForceRequested, state)

	state = state.Next(true, true)
	assert.Equal(t, policy.DeletionDeleted, state)
	assert.Equal(t, "Deleted", state.String())
}

func TestDependents_Any(t *testing.T) {
	assert.False(t, policy.Dependents{}.Any())
	assert.True(t, policy.Dependents{Payments: 1}.Any())
	assert.True(t, policy.Dependents{Items: 2}.Any())
	assert.True(t, policy.Dependents{Installments: 3}.Any())
}

func TestDeletionOutcome_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(map[string]policy.DeletionOutcome{"outcome": policy.OutcomeBlockedHasDependents})
	require.NoError(t, err)
	assert.JSONEq(t, `{"outcome":"BlockedHasDependents"}`, string(out))
}
