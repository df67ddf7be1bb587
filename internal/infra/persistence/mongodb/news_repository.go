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

type newsRepository struct {
	coll *mongo.Collection
}

func NewNewsRepository(db *mongo.Database) repository.NewsRepository {
	return &newsRepository{coll: db.Collection(model.NewsCollection)}
}

func (repo *newsRepository) Create(ctx context.Context, news *entity.News) error {
	if _, err := repo.coll.InsertOne(ctx, model.FromNews(news)); err != nil {
		return dbError(err, "failed to create news")
	}

	return nil
}

func (repo *newsRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.News, error) {
	var doc model.NewsDocument
	if err := repo.coll.FindOne(ctx, byID(id)).Decode(&doc); err != nil {
		if isNotFound(err) {
			return nil, repository.ErrNewsNotFound
		}

		return nil, dbError(err, "failed to find news")
	}

	return doc.ToEntity()
}

func (repo *newsRepository) List(ctx context.Context) ([]*entity.News, error) {
	cursor, err := repo.coll.Find(ctx, bson.M{}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, dbError(err, "failed to list news")
	}

	var docs []model.NewsDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, dbError(err, "failed to decode news")
	}

	out := make([]*entity.News, 0, len(docs))
	for i := range docs {
		n, err := docs[i].ToEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}

	return out, nil
}

func (repo *newsRepository) UpdateDetails(ctx context.Context, news *entity.News) error {
	return repo.updateOne(ctx, news.ID, bson.M{
		"title":            news.Title,
		"shortDescription": news.ShortDescription,
		"content":          news.Content,
	})
}

func (repo *newsRepository) UpdateImage(ctx context.Context, id uuid.UUID, image entity.Media) error {
	return repo.updateOne(ctx, id, bson.M{"image": model.FromMedia(image)})
}

func (repo *newsRepository) updateOne(ctx context.Context, id uuid.UUID, set bson.M) error {
	set["updatedAt"] = time.Now().UTC()

	res, err := repo.coll.UpdateOne(ctx, byID(id), bson.M{"$set": set})
	if err != nil {
		return dbError(err, "failed to update news")
	}
	if res.MatchedCount == 0 {
		return repository.ErrNewsNotFound
	}

	return nil
}

type reviewRepository struct {
	coll *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) repository.ReviewRepository {
	return &reviewRepository{coll: db.Collection(model.ReviewCollection)}
}

func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	if _, err := repo.coll.InsertOne(ctx, model.FromReview(review)); err != nil {
		return dbError(err, "failed to create review")
	}

	return nil
}

func (repo *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	var doc model.ReviewDocument
	if err := repo.coll.FindOne(ctx, byID(id)).Decode(&doc); err != nil {
		if isNotFound(err) {
			return nil, repository.ErrReviewNotFound
		}

		return nil, dbError(err, "failed to find review")
	}

	return doc.ToEntity()
}

func (repo *reviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	cursor, err := repo.coll.Find(ctx, bson.M{"product": productID.String()}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, dbError(err, "failed to list reviews")
	}

	var docs []model.ReviewDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, dbError(err, "failed to decode reviews")
	}

	out := make([]*entity.Review, 0, len(docs))
	for i := range docs {
		r, err := docs[i].ToEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}

	return out, nil
}

// React bumps one counter with $inc so concurrent reactions are not lost.
func (repo *reviewRepository) React(ctx context.Context, id uuid.UUID, reaction entity.ReviewReaction) (*entity.Review, error) {
	field := "likes"
	if reaction == entity.ReactionDislike {
		field = "dislikes"
	}

	var doc model.ReviewDocument
	err := repo.coll.FindOneAndUpdate(ctx, byID(id),
		bson.M{
			"$inc": bson.M{field: 1},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrReviewNotFound
		}

		return nil, dbError(err, "failed to react to review")
	}

	return doc.ToEntity()
}

func (repo *reviewRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	if _, err := repo.coll.DeleteMany(ctx, bson.M{"product": productID.String()}); err != nil {
		return dbError(err, "failed to delete reviews")
	}

	return nil
}
