package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/secmat-tools/secmat_backend/internal/models"
)

// MongoDomainRepository implements DomainRepository for MongoDB
// #ORM_INTEGRATION: MongoDB driver-based repository implementation
type MongoDomainRepository struct {
	collection *mongo.Collection
}

// NewMongoDomainRepository creates a new MongoDB domain repository
func NewMongoDomainRepository(db *mongo.Database) *MongoDomainRepository {
	return &MongoDomainRepository{
		collection: db.Collection(models.Domain{}.CollectionName()),
	}
}

// Create creates a new domain
func (r *MongoDomainRepository) Create(ctx context.Context, domain *models.Domain) error {
	domain.BeforeCreate()
	_, err := r.collection.InsertOne(ctx, domain)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrAlreadyExists
	}
	return err
}

// GetByID finds a domain by ID
func (r *MongoDomainRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Domain, error) {
	var domain models.Domain
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&domain)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrDomainNotFound
	}
	if err != nil {
		return nil, err
	}
	return &domain, nil
}

// Update updates a domain
func (r *MongoDomainRepository) Update(ctx context.Context, domain *models.Domain) error {
	domain.BeforeUpdate()
	filter := bson.M{"_id": domain.ID}
	update := bson.M{"$set": domain}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrDomainNotFound
	}
	return nil
}

// Deactivate marks a domain as inactive
// #BUSINESS_RULE: Catalog entries are deactivated, never hard-deleted, so historical
// assessments keep resolving their references
func (r *MongoDomainRepository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{"_id": id}
	update := bson.M{
		"$set": bson.M{
			"is_active":  false,
			"updated_at": time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrDomainNotFound
	}
	return nil
}

// ListActive lists active domains sorted by order index
// #QUERY_PATTERN: The scoring engine fetches the whole active catalog at once
func (r *MongoDomainRepository) ListActive(ctx context.Context) ([]models.Domain, error) {
	return r.list(ctx, bson.M{"is_active": true})
}

// ListAll lists every domain including inactive ones
func (r *MongoDomainRepository) ListAll(ctx context.Context) ([]models.Domain, error) {
	return r.list(ctx, bson.M{})
}

func (r *MongoDomainRepository) list(ctx context.Context, filter bson.M) ([]models.Domain, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx) //nolint:errcheck // defer close

	var domains []models.Domain
	if err := cursor.All(ctx, &domains); err != nil {
		return nil, err
	}
	return domains, nil
}

// Ensure MongoDomainRepository implements DomainRepository
var _ DomainRepository = (*MongoDomainRepository)(nil)
