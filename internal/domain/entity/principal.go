package entity

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Principal is any authenticated actor: user, company or admin.
type Principal struct {
	ID       uuid.UUID
	Username string
	Email    string
	FullName string

	// PasswordHash and RefreshTokenHash are only populated by credential lookups.
	PasswordHash     string
	RefreshTokenHash string

	Role                  Role
	AccountStatus         AccountStatus
	VerificationRequested bool

	Profile Profile
	Avatar  Media

	CompanyRegistrationNo string
	GSTNo                 string

	Products   []uuid.UUID
	Favourites []uuid.UUID
	History    []uuid.UUID
	News       []uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile holds self-service attributes.
type Profile struct {
	Mobile  string
	Address string
	Country string
	DOB     *time.Time
	Weight  *float64 // kilograms
	Height  *float64 // centimetres
	BMI     *float64
	Gender  *bool
	IsVeg   *bool
}

// Media references an image held by the media store.
type Media struct {
	URL    string
	FileID string
}

// IsZero reports whether no image is attached.
func (m Media) IsZero() bool {
	return m.URL == "" && m.FileID == ""
}

// NewPrincipal builds a freshly registered principal with default status flags.
func NewPrincipal(username, email, fullName string, role Role) *Principal {
	now := time.Now().UTC()

	return &Principal{
		ID:            uuid.New(),
		Username:      NormalizeLogin(username),
		Email:         NormalizeLogin(email),
		FullName:      strings.TrimSpace(fullName),
		Role:          role,
		AccountStatus: AccountStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// NormalizeLogin lowercases and trims a username or email for storage and lookup.
func NormalizeLogin(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (p *Principal) IsCompany() bool { return p.Role == RoleCompany }

func (p *Principal) IsAdmin() bool { return p.Role == RoleAdmin }

func (p *Principal) IsVerified() bool { return p.AccountStatus == AccountStatusVerified }

// OwnsProduct reports whether the product id is in the principal's listed products.
func (p *Principal) OwnsProduct(productID uuid.UUID) bool {
	return slices.Contains(p.Products, productID)
}

// Sanitized returns a copy without credential material.
func (p *Principal) Sanitized() *Principal {
	clone := *p
	clone.PasswordHash = ""
	clone.RefreshTokenHash = ""

	return &clone
}

// RecomputeBMI derives BMI from weight and height, clearing it when either is missing.
func (p *Profile) RecomputeBMI() {
	p.BMI = ComputeBMI(p.Weight, p.Height)
}

// ComputeBMI returns weight / (height/100)^2, or nil when the inputs are incomplete.
func ComputeBMI(weightKg, heightCm *float64) *float64 {
	if weightKg == nil || heightCm == nil || *heightCm <= 0 {
		return nil
	}

	meters := *heightCm / 100
	bmi := *weightKg / math.Pow(meters, 2)

	return &bmi
}
