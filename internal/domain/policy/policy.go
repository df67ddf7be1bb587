// Package policy holds the authorization rules for every protected operation.
// Each rule takes the acting principal and the target resource and returns a Decision.
package policy

import (
	"nutrilens/internal/domain/entity"
	domainerrors "nutrilens/internal/domain/errors"
)

// Decision is the outcome of an authorization rule.
type Decision struct {
	allowed bool
	reason  string
}

func allow() Decision {
	return Decision{allowed: true}
}

func deny(reason string) Decision {
	return Decision{reason: reason}
}

// Allowed reports whether the operation may proceed.
func (d Decision) Allowed() bool {
	return d.allowed
}

// Reason explains a denial.
func (d Decision) Reason() string {
	return d.reason
}

// Err returns nil when allowed, otherwise a Forbidden error carrying the reason.
func (d Decision) Err() error {
	if d.allowed {
		return nil
	}

	return domainerrors.ErrForbidden.WithMessage(d.reason)
}

// RequestVerification: only companies may ask to be verified.
func RequestVerification(p *entity.Principal) Decision {
	if p == nil || !p.IsCompany() {
		return deny("Only companies can request verification")
	}

	return allow()
}

// Moderate covers every admin-only moderation read and decision.
func Moderate(p *entity.Principal) Decision {
	if p == nil || !p.IsAdmin() {
		return deny("Only admins can perform this action")
	}

	return allow()
}

// RegisterProduct requires a verified company.
func RegisterProduct(p *entity.Principal) Decision {
	if p == nil || !p.IsCompany() {
		return deny("Only companies can register products")
	}
	if !p.IsVerified() {
		return deny("Company must be verified to manage products")
	}

	return allow()
}

// ManageProduct requires the verified company that owns the product.
func ManageProduct(p *entity.Principal, product *entity.Product) Decision {
	if d := RegisterProduct(p); !d.Allowed() {
		return d
	}
	if product == nil || product.CompanyID != p.ID {
		return deny("You can only manage your own products")
	}

	return allow()
}

// ListOwnProducts: only companies have a product list.
func ListOwnProducts(p *entity.Principal) Decision {
	if p == nil || !p.IsCompany() {
		return deny("Only companies have products")
	}

	return allow()
}

// EditCompanyFields guards companyRegistrationNo and gstNo.
func EditCompanyFields(p *entity.Principal) Decision {
	if p == nil || !p.IsCompany() {
		return deny("Only companies can set registration and GST numbers")
	}

	return allow()
}

// CreateNews is reserved for admins.
func CreateNews(p *entity.Principal) Decision {
	if p == nil || !p.IsAdmin() {
		return deny("Only admins can publish news")
	}

	return allow()
}

// EditNews is reserved for the article's author.
func EditNews(p *entity.Principal, news *entity.News) Decision {
	if d := CreateNews(p); !d.Allowed() {
		return d
	}
	if news == nil || news.AuthorID != p.ID {
		return deny("You can only edit your own articles")
	}

	return allow()
}

// KeepFavourites is available to consumers.
func KeepFavourites(p *entity.Principal) Decision {
	if p == nil || p.Role != entity.RoleUser {
		return deny("Only users can keep favourites")
	}

	return allow()
}

// WriteReview lets any authenticated principal comment on an approved product.
func WriteReview(p *entity.Principal, product *entity.Product) Decision {
	if p == nil {
		return deny("Authentication required")
	}
	if product == nil || !product.IsApproved {
		return deny("Only approved products can be reviewed")
	}

	return allow()
}
