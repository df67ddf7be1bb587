package handler

import (
	"time"

	"nutrilens/internal/domain/entity"
	"nutrilens/internal/usecase"

	"github.com/google/uuid"
)

// MediaView is the public form of an uploaded image.
type MediaView struct {
	URL    string `json:"url"`
	FileID string `json:"fileId"`
}

// ProfileView carries the optional health attributes of a principal.
type ProfileView struct {
	Mobile  string     `json:"mobile,omitempty"`
	Address string     `json:"address,omitempty"`
	Country string     `json:"country,omitempty"`
	DOB     *time.Time `json:"dob,omitempty"`
	Weight  *float64   `json:"weight,omitempty"`
	Height  *float64   `json:"height,omitempty"`
	BMI     *float64   `json:"bmi,omitempty"`
	Gender  *bool      `json:"gender,omitempty"`
	IsVeg   *bool      `json:"isVeg,omitempty"`
}

// PrincipalView is a principal as returned to its owner and to admins. It never carries credentials.
type PrincipalView struct {
	ID                    uuid.UUID   `json:"_id"`
	Username              string      `json:"username"`
	Email                 string      `json:"email"`
	FullName              string      `json:"fullName"`
	Role                  string      `json:"role"`
	AccountStatus         string      `json:"accountStatus"`
	VerificationRequested bool        `json:"verificationRequested"`
	Profile               ProfileView `json:"profile"`
	Avatar                *MediaView  `json:"avatar,omitempty"`
	CompanyRegistrationNo string      `json:"companyRegistrationNo,omitempty"`
	GSTNo                 string      `json:"gstNo,omitempty"`
	Products              []uuid.UUID `json:"products"`
	Favourites            []uuid.UUID `json:"favourites"`
	CreatedAt             time.Time   `json:"createdAt"`
	UpdatedAt             time.Time   `json:"updatedAt"`
}

// PublicPrincipalView is what anyone may see about a principal.
type PublicPrincipalView struct {
	ID            uuid.UUID  `json:"_id"`
	Username      string     `json:"username"`
	FullName      string     `json:"fullName"`
	Role          string     `json:"role"`
	AccountStatus string     `json:"accountStatus"`
	Avatar        *MediaView `json:"avatar,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// CompanySummary identifies the company behind a moderated product.
type CompanySummary struct {
	ID            uuid.UUID `json:"_id"`
	Username      string    `json:"username"`
	FullName      string    `json:"fullName"`
	Email         string    `json:"email"`
	AccountStatus string    `json:"accountStatus"`
}

// ProductView is a product as returned by the API.
type ProductView struct {
	ID                uuid.UUID      `json:"_id"`
	ProductID         int64          `json:"productId"`
	CompanyID         uuid.UUID      `json:"companyId"`
	Name              string         `json:"name"`
	Description       string         `json:"description"`
	Category          string         `json:"category"`
	NutritionalInfo   map[string]any `json:"nutritionalInfo"`
	Ingredients       []string       `json:"ingredients"`
	Tags              []string       `json:"tags"`
	Certifications    []string       `json:"certifications"`
	Diseases          []string       `json:"diseases"`
	ManufacturingDate time.Time      `json:"manufacturingDate"`
	ExpiryDate        time.Time      `json:"expiryDate"`
	Price             float64        `json:"price"`
	PublicRating      float64        `json:"publicRating"`
	ProductImage      MediaView      `json:"productImage"`
	IsApproved        bool           `json:"isApproved"`
	ApprovalRequested bool           `json:"approvalRequested"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// ProductListingView is a moderated product shown with its company.
type ProductListingView struct {
	ProductView
	Company *CompanySummary `json:"company,omitempty"`
}

// RatingView is the scoring result for a product.
type RatingView struct {
	ProductID        int64    `json:"productId"`
	Rating           float64  `json:"rating"`
	PredictedDisease []string `json:"predicted_disease"`
}

// NewsView is an article as returned by the API.
type NewsView struct {
	ID               uuid.UUID `json:"_id"`
	Title            string    `json:"title"`
	ShortDescription string    `json:"shortDescription"`
	Content          string    `json:"content"`
	NewsImage        MediaView `json:"newsImage"`
	Author           uuid.UUID `json:"author"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ReviewView is a review as returned by the API.
type ReviewView struct {
	ID        uuid.UUID `json:"_id"`
	ProductID uuid.UUID `json:"product"`
	UserID    uuid.UUID `json:"user"`
	Comment   string    `json:"comment"`
	Likes     int64     `json:"likes"`
	Dislikes  int64     `json:"dislikes"`
	CreatedAt time.Time `json:"createdAt"`
}

func mediaView(m entity.Media) MediaView {
	return MediaView{URL: m.URL, FileID: m.FileID}
}

func optionalMediaView(m entity.Media) *MediaView {
	if m.IsZero() {
		return nil
	}
	view := mediaView(m)

	return &view
}

func nonNilIDs(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}

	return ids
}

func nonNilStrings(items []string) []string {
	if items == nil {
		return []string{}
	}

	return items
}

// NewPrincipalView maps a principal to its owner-facing form.
func NewPrincipalView(p *entity.Principal) *PrincipalView {
	return &PrincipalView{
		ID:                    p.ID,
		Username:              p.Username,
		Email:                 p.Email,
		FullName:              p.FullName,
		Role:                  p.Role.String(),
		AccountStatus:         p.AccountStatus.String(),
		VerificationRequested: p.VerificationRequested,
		Profile: ProfileView{
			Mobile:  p.Profile.Mobile,
			Address: p.Profile.Address,
			Country: p.Profile.Country,
			DOB:     p.Profile.DOB,
			Weight:  p.Profile.Weight,
			Height:  p.Profile.Height,
			BMI:     p.Profile.BMI,
			Gender:  p.Profile.Gender,
			IsVeg:   p.Profile.IsVeg,
		},
		Avatar:                optionalMediaView(p.Avatar),
		CompanyRegistrationNo: p.CompanyRegistrationNo,
		GSTNo:                 p.GSTNo,
		Products:              nonNilIDs(p.Products),
		Favourites:            nonNilIDs(p.Favourites),
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

// NewPrincipalViews maps a list of principals.
func NewPrincipalViews(principals []*entity.Principal) []*PrincipalView {
	views := make([]*PrincipalView, 0, len(principals))
	for _, p := range principals {
		views = append(views, NewPrincipalView(p))
	}

	return views
}

// NewPublicPrincipalView maps a principal to its public form.
func NewPublicPrincipalView(p *entity.Principal) *PublicPrincipalView {
	return &PublicPrincipalView{
		ID:            p.ID,
		Username:      p.Username,
		FullName:      p.FullName,
		Role:          p.Role.String(),
		AccountStatus: p.AccountStatus.String(),
		Avatar:        optionalMediaView(p.Avatar),
		CreatedAt:     p.CreatedAt,
	}
}

// NewProductView maps a product.
func NewProductView(p *entity.Product) *ProductView {
	tags := make([]string, 0, len(p.Tags))
	for _, tag := range p.Tags {
		tags = append(tags, string(tag))
	}

	nutritionalInfo := map[string]any(p.NutritionalInfo)
	if nutritionalInfo == nil {
		nutritionalInfo = map[string]any{}
	}

	return &ProductView{
		ID:                p.ID,
		ProductID:         p.ProductID,
		CompanyID:         p.CompanyID,
		Name:              p.Name,
		Description:       p.Description,
		Category:          p.Category.String(),
		NutritionalInfo:   nutritionalInfo,
		Ingredients:       nonNilStrings(p.Ingredients),
		Tags:              tags,
		Certifications:    nonNilStrings(p.Certifications),
		Diseases:          nonNilStrings(p.Diseases),
		ManufacturingDate: p.ManufacturingDate,
		ExpiryDate:        p.ExpiryDate,
		Price:             p.Price,
		PublicRating:      p.PublicRating,
		ProductImage:      mediaView(p.Image),
		IsApproved:        p.IsApproved,
		ApprovalRequested: p.ApprovalRequested,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// NewProductViews maps a list of products.
func NewProductViews(products []*entity.Product) []*ProductView {
	views := make([]*ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, NewProductView(p))
	}

	return views
}

// NewProductListingViews maps moderation listings. A listing whose company vanished has no company summary.
func NewProductListingViews(listings []*usecase.ProductListing) []*ProductListingView {
	views := make([]*ProductListingView, 0, len(listings))
	for _, l := range listings {
		view := &ProductListingView{ProductView: *NewProductView(l.Product)}
		if l.Company != nil {
			view.Company = &CompanySummary{
				ID:            l.Company.ID,
				Username:      l.Company.Username,
				FullName:      l.Company.FullName,
				Email:         l.Company.Email,
				AccountStatus: l.Company.AccountStatus.String(),
			}
		}
		views = append(views, view)
	}

	return views
}

// NewNewsView maps an article.
func NewNewsView(n *entity.News) *NewsView {
	return &NewsView{
		ID:               n.ID,
		Title:            n.Title,
		ShortDescription: n.ShortDescription,
		Content:          n.Content,
		NewsImage:        mediaView(n.Image),
		Author:           n.AuthorID,
		CreatedAt:        n.CreatedAt,
		UpdatedAt:        n.UpdatedAt,
	}
}

// NewReviewView maps a review.
func NewReviewView(r *entity.Review) *ReviewView {
	return &ReviewView{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		Comment:   r.Comment,
		Likes:     r.Likes,
		Dislikes:  r.Dislikes,
		CreatedAt: r.CreatedAt,
	}
}
