package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/teamhub/identity-service/internal/core/domain"
)

const (
	roleCollection = "roles"
	roleNameIndex  = "role_name_unique"
)

type MongoRoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *MongoRoleRepository {
	return &MongoRoleRepository{coll: db.Collection(roleCollection)}
}

type mongoRoleDoc struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

func (r *MongoRoleRepository) FindByName(ctx context.Context, name domain.RoleName) (*domain.Role, error) {
	var doc mongoRoleDoc
	if err := r.coll.FindOne(ctx, bson.M{"name": string(name)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return &domain.Role{ID: doc.ID.Hex(), Name: domain.RoleName(doc.Name)}, nil
}

func (r *MongoRoleRepository) ExistsByName(ctx context.Context, name domain.RoleName) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"name": string(name)})
	if err != nil {
		return false, fmt.Errorf("count roles: %w", err)
	}
	return n > 0, nil
}

// Create inserts a role record. A duplicate-key error from the unique name
// index means another caller won the race; that counts as success, which
// keeps provisioning idempotent.
func (r *MongoRoleRepository) Create(ctx context.Context, role *domain.Role) error {
	_, err := r.coll.InsertOne(ctx, mongoRoleDoc{Name: string(role.Name)})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}
