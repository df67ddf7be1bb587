package mongodb

import (
	"context"
	"testing"

	"nutrilens/internal/domain/entity"
	"nutrilens/internal/domain/repository"
	"nutrilens/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func toBSOND(t *testing.T, v any) bson.D {
	t.Helper()

	raw, err := bson.Marshal(v)
	require.NoError(t, err)

	var d bson.D
	require.NoError(t, bson.Unmarshal(raw, &d))

	return d
}

func countResponse(ns string, n int) bson.D {
	if n == 0 {
		return mtest.CreateCursorResponse(0, ns, mtest.FirstBatch)
	}

	return mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "_id", Value: 1}, {Key: "n", Value: n}})
}

func TestPrincipalRepository_Mongo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create maps duplicate key", func(mt *mtest.T) {
		repo := NewPrincipalRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		err := repo.Create(ctx, entity.NewPrincipal("alice", "alice@example.com", "Alice", entity.RoleUser))
		assert.ErrorIs(mt, err, repository.ErrDuplicatePrincipal)
	})

	mt.Run("find by id decodes document", func(mt *mtest.T) {
		repo := NewPrincipalRepository(mt.DB)
		p := entity.NewPrincipal("acme", "ops@acme.io", "Acme", entity.RoleCompany)
		ns := mt.DB.Name() + "." + model.PrincipalCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, toBSOND(t, model.FromPrincipal(p))))

		found, err := repo.FindByID(ctx, p.ID)
		require.NoError(mt, err)
		assert.Equal(mt, p.ID, found.ID)
		assert.Equal(mt, entity.RoleCompany, found.Role)
	})

	mt.Run("find by id not found", func(mt *mtest.T) {
		repo := NewPrincipalRepository(mt.DB)
		ns := mt.DB.Name() + "." + model.PrincipalCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(mt, err, repository.ErrPrincipalNotFound)
	})

	mt.Run("rotate with stale digest", func(mt *mtest.T) {
		repo := NewPrincipalRepository(mt.DB)
		ns := mt.DB.Name() + "." + model.PrincipalCollection
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			countResponse(ns, 1),
		)

		err := repo.RotateRefreshToken(ctx, uuid.New(), "stale", "next")
		assert.ErrorIs(mt, err, repository.ErrRefreshTokenMismatch)
	})

	mt.Run("transition rejected when guard fails", func(mt *mtest.T) {
		repo := NewPrincipalRepository(mt.DB)
		ns := mt.DB.Name() + "." + model.PrincipalCollection
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			countResponse(ns, 1),
		)

		_, err := repo.ApplyVerificationTransition(ctx, uuid.New(), entity.ApproveVerification)
		assert.ErrorIs(mt, err, repository.ErrTransitionRejected)
	})

	mt.Run("transition on missing principal", func(mt *mtest.T) {
		repo := NewPrincipalRepository(mt.DB)
		ns := mt.DB.Name() + "." + model.PrincipalCollection
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			countResponse(ns, 0),
		)

		_, err := repo.ApplyVerificationTransition(ctx, uuid.New(), entity.ApproveVerification)
		assert.ErrorIs(mt, err, repository.ErrPrincipalNotFound)
	})
}

func TestProductRepository_Mongo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create maps duplicate product id", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		err := repo.Create(ctx, entity.NewPendingProduct(1, uuid.New(), entity.ProductDetails{}, entity.Media{}))
		assert.ErrorIs(mt, err, repository.ErrDuplicateProductID)
	})

	mt.Run("approve returns updated product", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		product := entity.NewPendingProduct(5, uuid.New(), entity.ProductDetails{}, entity.Media{})
		entity.ApproveProductChange.ApplyTo(product)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: toBSOND(t, model.FromProduct(product))}))

		updated, err := repo.ApplyApprovalTransition(ctx, product.ID, entity.ApproveProductGuard, entity.ApproveProductChange)
		require.NoError(mt, err)
		assert.True(mt, updated.IsApproved)
		assert.False(mt, updated.ApprovalRequested)
	})

	mt.Run("update score on missing product", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := repo.UpdateScore(ctx, uuid.New(), 4.5, nil)
		assert.ErrorIs(mt, err, repository.ErrProductNotFound)
	})
}
