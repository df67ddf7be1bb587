package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModerationAction(t *testing.T) {
	action, err := ParseModerationAction(" Approve ")
	require.NoError(t, err)
	assert.Equal(t, ActionApprove, action)

	action, err = ParseModerationAction("deny")
	require.NoError(t, err)
	assert.Equal(t, ActionDeny, action)

	_, err = ParseModerationAction("")
	assert.ErrorContains(t, err, "required")

	_, err = ParseModerationAction("maybe")
	assert.Error(t, err)
}

func companyWith(status AccountStatus, requested bool) *Principal {
	p := NewPrincipal("c", "c@example.com", "C", RoleCompany)
	p.AccountStatus = status
	p.VerificationRequested = requested

	return p
}

func TestVerificationTransitions_Guards(t *testing.T) {
	tests := []struct {
		name       string
		transition VerificationTransition
		principal  *Principal
		want       bool
	}{
		{"request from pending", RequestVerification, companyWith(AccountStatusPending, false), true},
		{"request from approved", RequestVerification, companyWith(AccountStatusApproved, false), true},
		{"request twice", RequestVerification, companyWith(AccountStatusPending, true), false},
		{"request when verified", RequestVerification, companyWith(AccountStatusVerified, false), false},
		{"request as user", RequestVerification, NewPrincipal("u", "u@x.io", "U", RoleUser), false},
		{"approve pending request", ApproveVerification, companyWith(AccountStatusPending, true), true},
		{"approve without request", ApproveVerification, companyWith(AccountStatusPending, false), false},
		{"deny pending request", DenyVerification, companyWith(AccountStatusApproved, true), true},
		{"remove verified", RemoveVerification, companyWith(AccountStatusVerified, false), true},
		{"remove unverified", RemoveVerification, companyWith(AccountStatusPending, false), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.transition.Guard.Matches(tt.principal))
		})
	}
}

func TestVerificationTransitions_KeepVerifiedImpliesNotRequested(t *testing.T) {
	transitions := []VerificationTransition{RequestVerification, ApproveVerification, DenyVerification, RemoveVerification}
	statuses := []AccountStatus{AccountStatusPending, AccountStatusApproved, AccountStatusVerified}

	for _, transition := range transitions {
		for _, status := range statuses {
			for _, requested := range []bool{false, true} {
				p := companyWith(status, requested)
				if p.IsVerified() && p.VerificationRequested {
					continue // not a reachable starting state
				}
				if !transition.Guard.Matches(p) {
					continue
				}

				transition.Change.ApplyTo(p)
				assert.False(t, p.IsVerified() && p.VerificationRequested,
					"%s from %s/%v broke the invariant", transition.Name, status, requested)
			}
		}
	}
}

func TestDenyVerification_LeavesStatus(t *testing.T) {
	p := companyWith(AccountStatusApproved, true)
	DenyVerification.Change.ApplyTo(p)

	assert.Equal(t, AccountStatusApproved, p.AccountStatus)
	assert.False(t, p.VerificationRequested)
}

func TestApprovalGuards(t *testing.T) {
	owner := uuid.New()
	pending := &Product{CompanyID: owner, ApprovalRequested: true}
	approved := &Product{CompanyID: owner, IsApproved: true}

	assert.True(t, ApproveProductGuard.Matches(pending))
	assert.False(t, ApproveProductGuard.Matches(approved))
	assert.True(t, ApprovedProductGuard.Matches(approved))
	assert.False(t, ApprovedProductGuard.Matches(pending))
	assert.True(t, OwnedProductGuard(owner).Matches(pending))
	assert.False(t, OwnedProductGuard(uuid.New()).Matches(pending))

	ApproveProductChange.ApplyTo(pending)
	assert.True(t, pending.IsApproved)
	assert.False(t, pending.ApprovalRequested)
}
