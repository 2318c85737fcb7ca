package database

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates all required database indexes
// #IMPLEMENTATION_DECISION: Indexes created on application startup; CreateMany is
// idempotent for identical index definitions
func (c *Client) EnsureIndexes(ctx context.Context) error {
	indexes := []struct {
		collection string
		models     []mongo.IndexModel
	}{
		{
			collection: CollectionCompanies,
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "name", Value: 1}},
					Options: options.Index().SetUnique(true),
				},
				{
					// #QUERY_PATTERN: Sector peer lookup for comparative analytics
					Keys: bson.D{{Key: "sector", Value: 1}},
				},
			},
		},
		{
			collection: CollectionUsers,
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "email", Value: 1}},
					Options: options.Index().SetUnique(true),
				},
				{
					Keys: bson.D{{Key: "company_id", Value: 1}},
				},
			},
		},
		{
			collection: CollectionDomains,
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "name", Value: 1}},
					Options: options.Index().SetUnique(true),
				},
				{
					Keys: bson.D{
						{Key: "is_active", Value: 1},
						{Key: "order", Value: 1},
					},
				},
			},
		},
		{
			collection: CollectionQuestions,
			models: []mongo.IndexModel{
				{
					Keys: bson.D{
						{Key: "domain_id", Value: 1},
						{Key: "is_active", Value: 1},
						{Key: "order", Value: 1},
					},
				},
				{
					Keys: bson.D{{Key: "maturity_level", Value: 1}},
				},
			},
		},
		{
			collection: CollectionAssessments,
			models: []mongo.IndexModel{
				{
					// #QUERY_PATTERN: Trend history sorts by completed_at within a company
					Keys: bson.D{
						{Key: "company_id", Value: 1},
						{Key: "status", Value: 1},
						{Key: "completed_at", Value: -1},
					},
				},
				{
					Keys: bson.D{{Key: "created_by", Value: 1}},
				},
			},
		},
		{
			collection: CollectionResponses,
			models: []mongo.IndexModel{
				{
					// #BUSINESS_RULE: At most one response per question per assessment
					Keys: bson.D{
						{Key: "assessment_id", Value: 1},
						{Key: "question_id", Value: 1},
					},
					Options: options.Index().SetUnique(true),
				},
				{
					Keys: bson.D{{Key: "question_id", Value: 1}},
				},
			},
		},
	}

	for _, idx := range indexes {
		collection := c.database.Collection(idx.collection)
		names, err := collection.Indexes().CreateMany(ctx, idx.models)
		if err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", idx.collection, err)
		}
		log.Printf("Created indexes for %s: %v", idx.collection, names)
	}

	return nil
}
