package policy

import (
	"testing"

	"nutrilens/internal/domain/entity"
	domainerrors "nutrilens/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func principal(role entity.Role, status entity.AccountStatus) *entity.Principal {
	p := entity.NewPrincipal(string(role), string(role)+"@example.com", "Test", role)
	p.AccountStatus = status

	return p
}

func TestRegisterProduct(t *testing.T) {
	tests := []struct {
		name    string
		p       *entity.Principal
		allowed bool
	}{
		{"verified company", principal(entity.RoleCompany, entity.AccountStatusVerified), true},
		{"approved company is not verified", principal(entity.RoleCompany, entity.AccountStatusApproved), false},
		{"pending company", principal(entity.RoleCompany, entity.AccountStatusPending), false},
		{"user", principal(entity.RoleUser, entity.AccountStatusVerified), false},
		{"admin", principal(entity.RoleAdmin, entity.AccountStatusVerified), false},
		{"nil principal", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := RegisterProduct(tt.p)
			assert.Equal(t, tt.allowed, d.Allowed())
			if !tt.allowed {
				assert.True(t, errors.Is(d.Err(), domainerrors.ErrForbidden))
				assert.NotEmpty(t, d.Reason())
			} else {
				assert.NoError(t, d.Err())
			}
		})
	}
}

func TestManageProduct_RequiresOwnership(t *testing.T) {
	owner := principal(entity.RoleCompany, entity.AccountStatusVerified)
	other := principal(entity.RoleCompany, entity.AccountStatusVerified)
	product := &entity.Product{ID: uuid.New(), CompanyID: owner.ID}

	assert.True(t, ManageProduct(owner, product).Allowed())
	assert.False(t, ManageProduct(other, product).Allowed())
	assert.False(t, ManageProduct(owner, nil).Allowed())

	owner.AccountStatus = entity.AccountStatusPending
	assert.False(t, ManageProduct(owner, product).Allowed())
}

func TestModerate(t *testing.T) {
	assert.True(t, Moderate(principal(entity.RoleAdmin, entity.AccountStatusPending)).Allowed())
	assert.False(t, Moderate(principal(entity.RoleCompany, entity.AccountStatusVerified)).Allowed())
	assert.False(t, Moderate(principal(entity.RoleUser, entity.AccountStatusPending)).Allowed())
}

func TestRequestVerification(t *testing.T) {
	assert.True(t, RequestVerification(principal(entity.RoleCompany, entity.AccountStatusPending)).Allowed())
	assert.False(t, RequestVerification(principal(entity.RoleUser, entity.AccountStatusPending)).Allowed())
	assert.False(t, RequestVerification(principal(entity.RoleAdmin, entity.AccountStatusPending)).Allowed())
}

func TestEditNews(t *testing.T) {
	author := principal(entity.RoleAdmin, entity.AccountStatusPending)
	otherAdmin := principal(entity.RoleAdmin, entity.AccountStatusPending)
	article := &entity.News{ID: uuid.New(), AuthorID: author.ID}

	assert.True(t, CreateNews(author).Allowed())
	assert.False(t, CreateNews(principal(entity.RoleCompany, entity.AccountStatusVerified)).Allowed())
	assert.True(t, EditNews(author, article).Allowed())
	assert.False(t, EditNews(otherAdmin, article).Allowed())
}

func TestFavouritesAndReviews(t *testing.T) {
	user := principal(entity.RoleUser, entity.AccountStatusPending)
	company := principal(entity.RoleCompany, entity.AccountStatusVerified)

	assert.True(t, KeepFavourites(user).Allowed())
	assert.False(t, KeepFavourites(company).Allowed())

	assert.True(t, WriteReview(user, &entity.Product{IsApproved: true}).Allowed())
	assert.False(t, WriteReview(user, &entity.Product{ApprovalRequested: true}).Allowed())
	assert.True(t, EditCompanyFields(company).Allowed())
	assert.False(t, EditCompanyFields(user).Allowed())
	assert.True(t, ListOwnProducts(company).Allowed())
}
