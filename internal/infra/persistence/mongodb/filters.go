package mongodb

import (
	"time"

	"nutrilens/internal/domain/entity"
	"nutrilens/internal/domain/repository"
	"nutrilens/internal/infra/persistence/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Reads that do not need credentials never load them.
var secretsProjection = bson.M{"password": 0, "refreshToken": 0}

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

func byID(id uuid.UUID) bson.M {
	return bson.M{"_id": id.String()}
}

// statusGuardFilter matches the principal only while the guard holds.
func statusGuardFilter(id uuid.UUID, g entity.StatusGuard) bson.M {
	filter := byID(id)
	if g.Role != "" {
		filter["role"] = string(g.Role)
	}

	status := bson.M{}
	if g.Status != nil {
		status["$eq"] = string(*g.Status)
	}
	if g.ExcludeStatus != nil {
		status["$ne"] = string(*g.ExcludeStatus)
	}
	if len(status) > 0 {
		filter["accountStatus"] = status
	}

	if g.VerificationRequested != nil {
		filter["verificationRequested"] = *g.VerificationRequested
	}

	return filter
}

func statusChangeUpdate(c entity.StatusChange, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if c.Status != nil {
		set["accountStatus"] = string(*c.Status)
	}
	if c.VerificationRequested != nil {
		set["verificationRequested"] = *c.VerificationRequested
	}

	return bson.M{"$set": set}
}

// approvalGuardFilter matches the product only while the guard holds.
func approvalGuardFilter(id uuid.UUID, g entity.ApprovalGuard) bson.M {
	filter := byID(id)
	if g.IsApproved != nil {
		filter["isApproved"] = *g.IsApproved
	}
	if g.ApprovalRequested != nil {
		filter["approvalRequested"] = *g.ApprovalRequested
	}
	if g.CompanyID != nil {
		filter["companyId"] = g.CompanyID.String()
	}

	return filter
}

func approvalChangeUpdate(c entity.ApprovalChange, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if c.IsApproved != nil {
		set["isApproved"] = *c.IsApproved
	}
	if c.ApprovalRequested != nil {
		set["approvalRequested"] = *c.ApprovalRequested
	}

	return bson.M{"$set": set}
}

func companyListFilter(f repository.CompanyFilter) bson.M {
	filter := bson.M{"role": string(entity.RoleCompany)}
	if f.Status != nil {
		filter["accountStatus"] = string(*f.Status)
	}
	if f.VerificationRequested != nil {
		filter["verificationRequested"] = *f.VerificationRequested
	}

	return filter
}

func productListFilter(f repository.ProductFilter) bson.M {
	filter := bson.M{}
	if f.IsApproved != nil {
		filter["isApproved"] = *f.IsApproved
	}
	if f.ApprovalRequested != nil {
		filter["approvalRequested"] = *f.ApprovalRequested
	}
	if f.Category != nil {
		filter["category"] = string(*f.Category)
	}
	if f.CompanyID != nil {
		filter["companyId"] = f.CompanyID.String()
	}
	if f.IDs != nil {
		filter["_id"] = bson.M{"$in": model.IDStrings(f.IDs)}
	}

	return filter
}
