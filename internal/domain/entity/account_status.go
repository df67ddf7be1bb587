package entity

// AccountStatus is the moderation status of a principal.
type AccountStatus string

const (
	AccountStatusPending  AccountStatus = "pending"
	AccountStatusApproved AccountStatus = "approved"
	AccountStatusVerified AccountStatus = "verified"
	AccountStatusBanned   AccountStatus = "banned"
)

func (s AccountStatus) String() string {
	return string(s)
}

// IsValid checks if the AccountStatus is a known value.
func (s AccountStatus) IsValid() bool {
	switch s {
	case AccountStatusPending, AccountStatusApproved, AccountStatusVerified, AccountStatusBanned:
		return true
	default:
		return false
	}
}
