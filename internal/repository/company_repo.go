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

// MongoCompanyRepository implements CompanyRepository for MongoDB
// #ORM_INTEGRATION: MongoDB driver-based repository implementation
type MongoCompanyRepository struct {
	collection *mongo.Collection
}

// NewMongoCompanyRepository creates a new MongoDB company repository
func NewMongoCompanyRepository(db *mongo.Database) *MongoCompanyRepository {
	return &MongoCompanyRepository{
		collection: db.Collection(models.Company{}.CollectionName()),
	}
}

// Create creates a new company
func (r *MongoCompanyRepository) Create(ctx context.Context, company *models.Company) error {
	company.BeforeCreate()
	_, err := r.collection.InsertOne(ctx, company)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrAlreadyExists
	}
	return err
}

// GetByID finds a company by ID
func (r *MongoCompanyRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Company, error) {
	var company models.Company
	filter := bson.M{
		"_id":        id,
		"deleted_at": nil,
	}
	err := r.collection.FindOne(ctx, filter).Decode(&company)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrCompanyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// Update updates a company
func (r *MongoCompanyRepository) Update(ctx context.Context, company *models.Company) error {
	company.BeforeUpdate()
	filter := bson.M{
		"_id":        company.ID,
		"deleted_at": nil,
	}
	update := bson.M{"$set": company}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrCompanyNotFound
	}
	return nil
}

// SoftDelete soft deletes a company
func (r *MongoCompanyRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now().UTC()
	filter := bson.M{
		"_id":        id,
		"deleted_at": nil,
	}
	update := bson.M{
		"$set": bson.M{
			"deleted_at": now,
			"updated_at": now,
		},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrCompanyNotFound
	}
	return nil
}

// ListBySector lists active companies in a sector, excluding one company
// #QUERY_PATTERN: Peer-group lookup for sector comparison
func (r *MongoCompanyRepository) ListBySector(ctx context.Context, sector models.Sector, excludeID primitive.ObjectID) ([]models.Company, error) {
	filter := bson.M{
		"sector":     sector,
		"deleted_at": nil,
		"_id":        bson.M{"$ne": excludeID},
	}
	findOpts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx) //nolint:errcheck // defer close

	var companies []models.Company
	if err := cursor.All(ctx, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

// Ensure MongoCompanyRepository implements CompanyRepository
var _ CompanyRepository = (*MongoCompanyRepository)(nil)
