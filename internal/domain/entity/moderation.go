package entity

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ModerationAction is an admin decision on a pending request.
type ModerationAction string

const (
	ActionApprove ModerationAction = "approve"
	ActionDeny    ModerationAction = "deny"
)

// ParseModerationAction accepts "approve" or "deny", case-insensitively.
func ParseModerationAction(s string) (ModerationAction, error) {
	switch action := ModerationAction(strings.ToLower(strings.TrimSpace(s))); action {
	case ActionApprove, ActionDeny:
		return action, nil
	case "":
		return "", errors.New("action is required")
	default:
		return "", errors.Errorf("action must be %q or %q", ActionApprove, ActionDeny)
	}
}

// StatusGuard is the precondition a principal must satisfy for a verification transition.
// Nil fields are not checked.
type StatusGuard struct {
	Role                  Role
	Status                *AccountStatus
	ExcludeStatus         *AccountStatus
	VerificationRequested *bool
}

// Matches reports whether the principal currently satisfies the guard.
func (g StatusGuard) Matches(p *Principal) bool {
	if g.Role != "" && p.Role != g.Role {
		return false
	}
	if g.Status != nil && p.AccountStatus != *g.Status {
		return false
	}
	if g.ExcludeStatus != nil && p.AccountStatus == *g.ExcludeStatus {
		return false
	}
	if g.VerificationRequested != nil && p.VerificationRequested != *g.VerificationRequested {
		return false
	}

	return true
}

// StatusChange is the effect of a verification transition. Nil fields are left as they are.
type StatusChange struct {
	Status                *AccountStatus
	VerificationRequested *bool
}

// ApplyTo mutates the principal.
func (c StatusChange) ApplyTo(p *Principal) {
	if c.Status != nil {
		p.AccountStatus = *c.Status
	}
	if c.VerificationRequested != nil {
		p.VerificationRequested = *c.VerificationRequested
	}
}

// VerificationTransition pairs a guard with its effect so stores can apply both atomically.
type VerificationTransition struct {
	Name   string
	Guard  StatusGuard
	Change StatusChange
}

// Company verification transitions.
var (
	RequestVerification = VerificationTransition{
		Name: "request",
		Guard: StatusGuard{
			Role:                  RoleCompany,
			ExcludeStatus:         ptr(AccountStatusVerified),
			VerificationRequested: ptr(false),
		},
		Change: StatusChange{VerificationRequested: ptr(true)},
	}

	ApproveVerification = VerificationTransition{
		Name:   "approve",
		Guard:  StatusGuard{Role: RoleCompany, VerificationRequested: ptr(true)},
		Change: StatusChange{Status: ptr(AccountStatusVerified), VerificationRequested: ptr(false)},
	}

	DenyVerification = VerificationTransition{
		Name:   "deny",
		Guard:  StatusGuard{Role: RoleCompany, VerificationRequested: ptr(true)},
		Change: StatusChange{VerificationRequested: ptr(false)},
	}

	RemoveVerification = VerificationTransition{
		Name:   "remove",
		Guard:  StatusGuard{Role: RoleCompany, Status: ptr(AccountStatusVerified)},
		Change: StatusChange{Status: ptr(AccountStatusPending)},
	}
)

// ApprovalGuard is the precondition a product must satisfy for an approval transition.
type ApprovalGuard struct {
	IsApproved        *bool
	ApprovalRequested *bool
	CompanyID         *uuid.UUID
}

// Matches reports whether the product currently satisfies the guard.
func (g ApprovalGuard) Matches(p *Product) bool {
	if g.IsApproved != nil && p.IsApproved != *g.IsApproved {
		return false
	}
	if g.ApprovalRequested != nil && p.ApprovalRequested != *g.ApprovalRequested {
		return false
	}
	if g.CompanyID != nil && p.CompanyID != *g.CompanyID {
		return false
	}

	return true
}

// ApprovalChange is the effect of an approval transition.
type ApprovalChange struct {
	IsApproved        *bool
	ApprovalRequested *bool
}

func (c ApprovalChange) ApplyTo(p *Product) {
	if c.IsApproved != nil {
		p.IsApproved = *c.IsApproved
	}
	if c.ApprovalRequested != nil {
		p.ApprovalRequested = *c.ApprovalRequested
	}
}

// Product approval guards and transitions.
var (
	ApproveProductGuard  = ApprovalGuard{ApprovalRequested: ptr(true)}
	ApproveProductChange = ApprovalChange{IsApproved: ptr(true), ApprovalRequested: ptr(false)}

	// RevertApproval puts a freshly approved product back in the queue.
	RevertApprovalGuard  = ApprovalGuard{IsApproved: ptr(true), ApprovalRequested: ptr(false)}
	RevertApprovalChange = ApprovalChange{IsApproved: ptr(false), ApprovalRequested: ptr(true)}

	PendingProductGuard  = ApprovalGuard{ApprovalRequested: ptr(true)}
	ApprovedProductGuard = ApprovalGuard{IsApproved: ptr(true)}
)

// OwnedProductGuard matches only products owned by the company.
func OwnedProductGuard(companyID uuid.UUID) ApprovalGuard {
	return ApprovalGuard{CompanyID: &companyID}
}

func ptr[T any](v T) *T {
	return &v
}
