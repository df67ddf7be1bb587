package model

import (
	"time"

	"nutrilens/internal/domain/entity"

	"github.com/pkg/errors"
)

// PrincipalCollection stores users, companies and admins alike.
const PrincipalCollection = "users"

// PrincipalDocument mirrors a document in the users collection.
type PrincipalDocument struct {
	ID       string `bson:"_id"`
	Username string `bson:"username"`
	Email    string `bson:"email"`
	FullName string `bson:"fullName"`

	Password     string `bson:"password,omitempty"`
	RefreshToken string `bson:"refreshToken,omitempty"`

	Role                  string `bson:"role"`
	AccountStatus         string `bson:"accountStatus"`
	VerificationRequested bool   `bson:"verificationRequested"`

	ProfileDocument `bson:",inline"`
	Avatar          MediaDocument `bson:"avatar"`

	CompanyRegistrationNo string `bson:"companyRegistrationNo,omitempty"`
	GSTNo                 string `bson:"GSTNo,omitempty"`

	Products   []string `bson:"products"`
	Favourites []string `bson:"favourites"`
	History    []string `bson:"history"`
	News       []string `bson:"news"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// ProfileDocument holds the optional personal attributes. They live at the top level of the document.
type ProfileDocument struct {
	Mobile  string     `bson:"mobile,omitempty"`
	Address string     `bson:"address,omitempty"`
	Country string     `bson:"country,omitempty"`
	DOB     *time.Time `bson:"DOB,omitempty"`
	Weight  *float64   `bson:"weight,omitempty"`
	Height  *float64   `bson:"height,omitempty"`
	BMI     *float64   `bson:"BMI,omitempty"`
	Gender  *bool      `bson:"gender,omitempty"`
	IsVeg   *bool      `bson:"isVeg,omitempty"`
}

// FromPrincipal maps a domain principal to its document, secrets included.
func FromPrincipal(p *entity.Principal) *PrincipalDocument {
	return &PrincipalDocument{
		ID:                    p.ID.String(),
		Username:              p.Username,
		Email:                 p.Email,
		FullName:              p.FullName,
		Password:              p.PasswordHash,
		RefreshToken:          p.RefreshTokenHash,
		Role:                  string(p.Role),
		AccountStatus:         string(p.AccountStatus),
		VerificationRequested: p.VerificationRequested,
		ProfileDocument:       FromProfile(p.Profile),
		Avatar:                FromMedia(p.Avatar),
		CompanyRegistrationNo: p.CompanyRegistrationNo,
		GSTNo:                 p.GSTNo,
		Products:              IDStrings(p.Products),
		Favourites:            IDStrings(p.Favourites),
		History:               IDStrings(p.History),
		News:                  IDStrings(p.News),
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

func FromProfile(p entity.Profile) ProfileDocument {
	return ProfileDocument{
		Mobile:  p.Mobile,
		Address: p.Address,
		Country: p.Country,
		DOB:     p.DOB,
		Weight:  p.Weight,
		Height:  p.Height,
		BMI:     p.BMI,
		Gender:  p.Gender,
		IsVeg:   p.IsVeg,
	}
}

// ToEntity maps the document back to a domain principal.
func (d *PrincipalDocument) ToEntity() (*entity.Principal, error) {
	id, err := parseID("principal id", d.ID)
	if err != nil {
		return nil, err
	}

	p := &entity.Principal{
		ID:                    id,
		Username:              d.Username,
		Email:                 d.Email,
		FullName:              d.FullName,
		PasswordHash:          d.Password,
		RefreshTokenHash:      d.RefreshToken,
		Role:                  entity.Role(d.Role),
		AccountStatus:         entity.AccountStatus(d.AccountStatus),
		VerificationRequested: d.VerificationRequested,
		Profile: entity.Profile{
			Mobile:  d.Mobile,
			Address: d.Address,
			Country: d.Country,
			DOB:     d.DOB,
			Weight:  d.Weight,
			Height:  d.Height,
			BMI:     d.BMI,
			Gender:  d.Gender,
			IsVeg:   d.IsVeg,
		},
		Avatar:                d.Avatar.ToEntity(),
		CompanyRegistrationNo: d.CompanyRegistrationNo,
		GSTNo:                 d.GSTNo,
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
	}

	if p.Products, err = ParseIDs(d.Products); err != nil {
		return nil, errors.Wrap(err, "products")
	}
	if p.Favourites, err = ParseIDs(d.Favourites); err != nil {
		return nil, errors.Wrap(err, "favourites")
	}
	if p.History, err = ParseIDs(d.History); err != nil {
		return nil, errors.Wrap(err, "history")
	}
	if p.News, err = ParseIDs(d.News); err != nil {
		return nil, errors.Wrap(err, "news")
	}

	return p, nil
}
