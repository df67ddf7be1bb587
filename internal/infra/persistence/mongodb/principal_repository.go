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

// principalRepository implements the PrincipalRepository interface on the users collection.
type principalRepository struct {
	coll *mongo.Collection
}

// NewPrincipalRepository is the constructor for principalRepository.
func NewPrincipalRepository(db *mongo.Database) repository.PrincipalRepository {
	return &principalRepository{coll: db.Collection(model.PrincipalCollection)}
}

func (repo *principalRepository) Create(ctx context.Context, principal *entity.Principal) error {
	if _, err := repo.coll.InsertOne(ctx, model.FromPrincipal(principal)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicatePrincipal
		}

		return dbError(err, "failed to create principal")
	}

	return nil
}

func (repo *principalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Principal, error) {
	return repo.findOne(ctx, byID(id), false)
}

func (repo *principalRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Principal, error) {
	return repo.find(ctx, bson.M{"_id": bson.M{"$in": model.IDStrings(ids)}}, options.Find().SetProjection(secretsProjection))
}

// FindByLogin matches either login field. Empty arguments are ignored.
func (repo *principalRepository) FindByLogin(ctx context.Context, username, email string) (*entity.Principal, error) {
	var or bson.A
	if username != "" {
		or = append(or, bson.M{"username": username})
	}
	if email != "" {
		or = append(or, bson.M{"email": email})
	}
	if len(or) == 0 {
		return nil, repository.ErrPrincipalNotFound
	}

	return repo.findOne(ctx, bson.M{"$or": or}, true)
}

func (repo *principalRepository) FindCredentialsByID(ctx context.Context, id uuid.UUID) (*entity.Principal, error) {
	return repo.findOne(ctx, byID(id), true)
}

func (repo *principalRepository) ListCompanies(ctx context.Context, filter repository.CompanyFilter) ([]*entity.Principal, error) {
	opts := options.Find().SetProjection(secretsProjection).SetSort(newestFirst)

	return repo.find(ctx, companyListFilter(filter), opts)
}

func (repo *principalRepository) UpdateProfile(ctx context.Context, principal *entity.Principal) error {
	profile := model.FromProfile(principal.Profile)

	return repo.updateOne(ctx, principal.ID, bson.M{"$set": bson.M{
		"fullName":              principal.FullName,
		"mobile":                profile.Mobile,
		"address":               profile.Address,
		"country":               profile.Country,
		"DOB":                   profile.DOB,
		"weight":                profile.Weight,
		"height":                profile.Height,
		"BMI":                   profile.BMI,
		"gender":                profile.Gender,
		"isVeg":                 profile.IsVeg,
		"companyRegistrationNo": principal.CompanyRegistrationNo,
		"GSTNo":                 principal.GSTNo,
	}})
}

func (repo *principalRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return repo.updateOne(ctx, id, bson.M{"$set": bson.M{"password": passwordHash}})
}

func (repo *principalRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, avatar entity.Media) error {
	return repo.updateOne(ctx, id, bson.M{"$set": bson.M{"avatar": model.FromMedia(avatar)}})
}

func (repo *principalRepository) SetRefreshToken(ctx context.Context, id uuid.UUID, digest string) error {
	if digest == "" {
		return repo.updateOne(ctx, id, bson.M{"$unset": bson.M{"refreshToken": ""}})
	}

	return repo.updateOne(ctx, id, bson.M{"$set": bson.M{"refreshToken": digest}})
}

// RotateRefreshToken matches on the stored digest so only one of several concurrent refreshes wins.
func (repo *principalRepository) RotateRefreshToken(ctx context.Context, id uuid.UUID, expected, next string) error {
	if expected == "" {
		return repository.ErrRefreshTokenMismatch
	}

	filter := byID(id)
	filter["refreshToken"] = expected

	res, err := repo.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{
		"refreshToken": next,
		"updatedAt":    time.Now().UTC(),
	}})
	if err != nil {
		return dbError(err, "failed to rotate refresh token")
	}
	if res.MatchedCount == 0 {
		return missingOr(ctx, repo.coll, byID(id), repository.ErrPrincipalNotFound, repository.ErrRefreshTokenMismatch)
	}

	return nil
}

func (repo *principalRepository) ApplyVerificationTransition(ctx context.Context, id uuid.UUID, transition entity.VerificationTransition) (*entity.Principal, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(secretsProjection)

	var doc model.PrincipalDocument
	err := repo.coll.FindOneAndUpdate(ctx,
		statusGuardFilter(id, transition.Guard),
		statusChangeUpdate(transition.Change, time.Now().UTC()),
		opts,
	).Decode(&doc)
	if err != nil {
		if isNotFound(err) {
			return nil, missingOr(ctx, repo.coll, byID(id), repository.ErrPrincipalNotFound, repository.ErrTransitionRejected)
		}

		return nil, dbError(err, "failed to apply verification transition "+transition.Name)
	}

	return doc.ToEntity()
}

func (repo *principalRepository) AddProduct(ctx context.Context, companyID, productID uuid.UUID) error {
	return repo.updateOne(ctx, companyID, bson.M{"$addToSet": bson.M{"products": productID.String()}})
}

func (repo *principalRepository) RemoveProduct(ctx context.Context, companyID, productID uuid.UUID) error {
	return repo.updateOne(ctx, companyID, bson.M{"$pull": bson.M{"products": productID.String()}})
}

func (repo *principalRepository) AddFavourite(ctx context.Context, id, productID uuid.UUID) error {
	return repo.updateOne(ctx, id, bson.M{"$addToSet": bson.M{"favourites": productID.String()}})
}

func (repo *principalRepository) RemoveFavourite(ctx context.Context, id, productID uuid.UUID) error {
	return repo.updateOne(ctx, id, bson.M{"$pull": bson.M{"favourites": productID.String()}})
}

func (repo *principalRepository) findOne(ctx context.Context, filter bson.M, withSecrets bool) (*entity.Principal, error) {
	opts := options.FindOne()
	if !withSecrets {
		opts.SetProjection(secretsProjection)
	}

	var doc model.PrincipalDocument
	if err := repo.coll.FindOne(ctx, filter, opts).Decode(&doc); err != nil {
		if isNotFound(err) {
			return nil, repository.ErrPrincipalNotFound
		}

		return nil, dbError(err, "failed to find principal")
	}

	return doc.ToEntity()
}

func (repo *principalRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*entity.Principal, error) {
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, dbError(err, "failed to list principals")
	}

	var docs []model.PrincipalDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, dbError(err, "failed to decode principals")
	}

	out := make([]*entity.Principal, 0, len(docs))
	for i := range docs {
		p, err := docs[i].ToEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, nil
}

// updateOne stamps updatedAt onto update and reports a missing target as ErrPrincipalNotFound.
func (repo *principalRepository) updateOne(ctx context.Context, id uuid.UUID, update bson.M) error {
	res, err := repo.coll.UpdateOne(ctx, byID(id), stampUpdatedAt(update))
	if err != nil {
		return dbError(err, "failed to update principal")
	}
	if res.MatchedCount == 0 {
		return repository.ErrPrincipalNotFound
	}

	return nil
}

func stampUpdatedAt(update bson.M) bson.M {
	set, _ := update["$set"].(bson.M)
	if set == nil {
		set = bson.M{}
	}
	set["updatedAt"] = time.Now().UTC()
	update["$set"] = set

	return update
}
