// Package main provides a CLI tool to recompute the frozen overall score on
// completed assessments. Useful after catalog corrections (reweighted domains,
// deactivated questions) when listings should reflect the corrected scores.
// Usage: go run cmd/recompute-scores/main.go [-company <id>] [-dry-run]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/secmat-tools/secmat_backend/internal/database"
	"github.com/secmat-tools/secmat_backend/internal/models"
	"github.com/secmat-tools/secmat_backend/internal/repository"
	"github.com/secmat-tools/secmat_backend/internal/services"
)

func main() {
	// Define command line flags
	companyHex := flag.String("company", "", "Restrict to one company ID (optional)")
	envFile := flag.String("env", "", "Path to .env file (defaults to .env in current dir or backend dir)")
	dryRun := flag.Bool("dry-run", false, "Print score changes without writing to database")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Recomputes the cached overall score on completed assessments.\n\n")
		fmt.Fprintf(os.Stderr, "Configuration is loaded from .env file and/or environment variables.\n\n")
		fmt.Fprintf(os.Stderr, "Required config (via .env or environment):\n")
		fmt.Fprintf(os.Stderr, "  SECMAT_DATABASE_URI   MongoDB connection URI\n")
		fmt.Fprintf(os.Stderr, "  SECMAT_DATABASE_NAME  Database name (default: secmat)\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -dry-run\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -company 665f1c2ab8d9f1e2a3b4c5d6\n", os.Args[0])
	}

	flag.Parse()

	// Load .env file
	loadEnvFile(*envFile)

	// Load database configuration from environment
	dbURI := os.Getenv("SECMAT_DATABASE_URI")
	if dbURI == "" {
		log.Fatal("Error: SECMAT_DATABASE_URI environment variable is required")
	}
	dbName := os.Getenv("SECMAT_DATABASE_NAME")
	if dbName == "" {
		dbName = "secmat"
	}

	// Connect through the shared database client so pool settings match the server
	dbCfg := database.DefaultConfig()
	dbCfg.URI = dbURI
	dbCfg.Database = dbName

	dbClient, err := database.NewClient(dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	defer func() {
		if closeErr := dbClient.Close(ctx); closeErr != nil {
			log.Printf("Error closing database connection: %v", closeErr)
		}
	}()

	// Wire the scoring pipeline the same way the server does
	evaluationService := services.NewEvaluationService(
		repository.NewAssessmentRepository(dbClient),
		repository.NewCompanyRepository(dbClient),
		repository.NewDomainRepository(dbClient),
		repository.NewQuestionRepository(dbClient),
		repository.NewResponseRepository(dbClient),
	)

	// Collect completed assessments, optionally scoped to one company
	filter := bson.M{"status": models.AssessmentStatusCompleted}
	if *companyHex != "" {
		companyID, err := primitive.ObjectIDFromHex(*companyHex)
		if err != nil {
			log.Fatalf("Error: invalid company ID: %s", *companyHex)
		}
		filter["company_id"] = companyID
	}

	collection := dbClient.Collection(database.CollectionAssessments)
	cursor, err := collection.Find(ctx, filter)
	if err != nil {
		log.Fatalf("Failed to query assessments: %v", err)
	}

	var assessments []models.Assessment
	if err := cursor.All(ctx, &assessments); err != nil {
		log.Fatalf("Failed to decode assessments: %v", err)
	}

	if len(assessments) == 0 {
		fmt.Println("No completed assessments found")
		return
	}

	updated := 0
	unchanged := 0
	for i := range assessments {
		a := &assessments[i]

		result, err := evaluationService.ComputeEvaluationResult(ctx, a.ID)
		if err != nil {
			log.Printf("Skipping %s: %v", a.ID.Hex(), err)
			continue
		}

		previous := 0.0
		if a.OverallScore != nil {
			previous = *a.OverallScore
		}
		if math.Abs(previous-result.OverallScore) < 0.005 {
			unchanged++
			continue
		}

		fmt.Printf("%s  %-30s  %.2f -> %.2f\n", a.ID.Hex(), a.Name, previous, result.OverallScore)
		updated++

		if *dryRun {
			continue
		}

		_, err = collection.UpdateOne(ctx,
			bson.M{"_id": a.ID},
			bson.M{"$set": bson.M{
				"overall_score": result.OverallScore,
				"updated_at":    time.Now().UTC(),
			}},
		)
		if err != nil {
			log.Fatalf("Failed to update assessment %s: %v", a.ID.Hex(), err)
		}
	}

	fmt.Println()
	if *dryRun {
		fmt.Printf("[DRY RUN] %d assessments would change, %d unchanged\n", updated, unchanged)
		return
	}
	fmt.Printf("Done: %d assessments updated, %d unchanged\n", updated, unchanged)
}

// loadEnvFile loads environment variables from a .env file
func loadEnvFile(path string) {
	if path == "" {
		// Try to find .env in current dir or backend dir
		cwd, _ := os.Getwd()
		if _, err := os.Stat(filepath.Join(cwd, ".env")); err == nil {
			path = ".env"
		} else if _, err := os.Stat(filepath.Join(cwd, "backend", ".env")); err == nil {
			path = filepath.Join(cwd, "backend", ".env")
		}
	}

	if path != "" {
		if err := godotenv.Load(path); err != nil {
			log.Printf("Error loading .env file: %v", err)
		}
	}
}
