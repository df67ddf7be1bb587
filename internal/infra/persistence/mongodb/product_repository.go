package mongodb

import (
	"context"
	"time"

	"nutrilens/internal/domain/entity"
	"nutrilens/internal/domain/repository"
	"nutrilens/internal/infra/persistence/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// productRepository implements the ProductRepository interface on the products collection.
type productRepository struct {
	coll *mongo.Collection
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *mongo.Database) repository.ProductRepository {
	return &productRepository{coll: db.Collection(model.ProductCollection)}
}

func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	if _, err := repo.coll.InsertOne(ctx, model.FromProduct(product)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateProductID
		}

		return dbError(err, "failed to create product")
	}

	return nil
}

func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return repo.findOne(ctx, byID(id))
}

func (repo *productRepository) FindByProductID(ctx context.Context, productID int64) (*entity.Product, error) {
	return repo.findOne(ctx, bson.M{"productId": productID})
}

func (repo *productRepository) ExistsByProductID(ctx context.Context, productID int64) (bool, error) {
	n, err := repo.coll.CountDocuments(ctx, bson.M{"productId": productID}, options.Count().SetLimit(1))
	if err != nil {
		return false, dbError(err, "failed to check product id")
	}

	return n > 0, nil
}

func (repo *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	cursor, err := repo.coll.Find(ctx, productListFilter(filter), options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, dbError(err, "failed to list products")
	}

	var docs []model.ProductDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, dbError(err, "failed to decode products")
	}

	out := make([]*entity.Product, 0, len(docs))
	for i := range docs {
		p, err := docs[i].ToEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, nil
}

func (repo *productRepository) UpdateDetails(ctx context.Context, product *entity.Product) error {
	doc := model.FromProduct(product)

	return repo.updateOne(ctx, product.ID, bson.M{
		"name":              doc.Name,
		"description":       doc.Description,
		"category":          doc.Category,
		"nutritionalInfo":   doc.NutritionalInfo,
		"ingredients":       doc.Ingredients,
		"tags":              doc.Tags,
		"certifications":    doc.Certifications,
		"manufacturingDate": doc.ManufacturingDate,
		"expiryDate":        doc.ExpiryDate,
		"price":             doc.Price,
	})
}

func (repo *productRepository) UpdateImage(ctx context.Context, id uuid.UUID, image entity.Media) error {
	return repo.updateOne(ctx, id, bson.M{"image": model.FromMedia(image)})
}

func (repo *productRepository) UpdateScore(ctx context.Context, id uuid.UUID, rating float64, diseases []string) error {
	if diseases == nil {
		diseases = []string{}
	}

	return repo.updateOne(ctx, id, bson.M{"publicRating": rating, "diseases": diseases})
}

func (repo *productRepository) ApplyApprovalTransition(ctx context.Context, id uuid.UUID, guard entity.ApprovalGuard, change entity.ApprovalChange) (*entity.Product, error) {
	var doc model.ProductDocument
	err := repo.coll.FindOneAndUpdate(ctx,
		approvalGuardFilter(id, guard),
		approvalChangeUpdate(change, time.Now().UTC()),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if isNotFound(err) {
			return nil, missingOr(ctx, repo.coll, byID(id), repository.ErrProductNotFound, repository.ErrTransitionRejected)
		}

		return nil, dbError(err, "failed to apply approval transition")
	}

	return doc.ToEntity()
}

func (repo *productRepository) DeleteWhere(ctx context.Context, id uuid.UUID, guard entity.ApprovalGuard) (*entity.Product, error) {
	var doc model.ProductDocument
	if err := repo.coll.FindOneAndDelete(ctx, approvalGuardFilter(id, guard)).Decode(&doc); err != nil {
		if isNotFound(err) {
			return nil, missingOr(ctx, repo.coll, byID(id), repository.ErrProductNotFound, repository.ErrTransitionRejected)
		}

		return nil, dbError(err, "failed to delete product")
	}

	return doc.ToEntity()
}

func (repo *productRepository) findOne(ctx context.Context, filter bson.M) (*entity.Product, error) {
	var doc model.ProductDocument
	if err := repo.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if isNotFound(err) {
			return nil, repository.ErrProductNotFound
		}

		return nil, dbError(err, "failed to find product")
	}

	return doc.ToEntity()
}

func (repo *productRepository) updateOne(ctx context.Context, id uuid.UUID, set bson.M) error {
	set["updatedAt"] = time.Now().UTC()

	res, err := repo.coll.UpdateOne(ctx, byID(id), bson.M{"$set": set})
	if err != nil {
		return dbError(err, "failed to update product")
	}
	if res.MatchedCount == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}
