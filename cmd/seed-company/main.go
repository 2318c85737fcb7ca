// Package main provides a CLI tool to create a company with an admin user.
// Usage: go run cmd/seed-company/main.go -name "Company Name" -email "admin@company.com" -sector finance
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/secmat-tools/secmat_backend/internal/database"
	"github.com/secmat-tools/secmat_backend/internal/models"
	"github.com/secmat-tools/secmat_backend/internal/repository"
)

func main() {
	// Define command line flags
	name := flag.String("name", "", "Company name (required)")
	email := flag.String("email", "", "Admin user email (required)")
	sector := flag.String("sector", "other", "Company sector (finance|healthcare|manufacturing|retail|technology|energy|public|other)")
	contactEmail := flag.String("contact-email", "", "Company contact email (defaults to admin email)")
	adminName := flag.String("admin-name", "", "Admin user display name (optional)")
	envFile := flag.String("env", "", "Path to .env file (defaults to .env in current dir or backend dir)")
	dryRun := flag.Bool("dry-run", false, "Print what would be created without writing to database")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Creates a company with an admin user in the SecMat database.\n\n")
		fmt.Fprintf(os.Stderr, "Configuration is loaded from .env file and/or environment variables.\n")
		fmt.Fprintf(os.Stderr, "Environment variables take precedence over .env file values.\n\n")
		fmt.Fprintf(os.Stderr, "Required config (via .env or environment):\n")
		fmt.Fprintf(os.Stderr, "  SECMAT_DATABASE_URI   MongoDB connection URI\n")
		fmt.Fprintf(os.Stderr, "  SECMAT_DATABASE_NAME  Database name (default: secmat)\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -name \"Acme Corp\" -email \"admin@acme.com\" -sector manufacturing\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -name \"Test Company\" -email \"test@example.com\" -env /path/to/.env\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -name \"Test Company\" -email \"test@example.com\" -dry-run\n", os.Args[0])
	}

	flag.Parse()

	// Load .env file
	loadEnvFile(*envFile)

	// Validate required flags
	if *name == "" {
		log.Fatal("Error: -name is required")
	}
	if *email == "" {
		log.Fatal("Error: -email is required")
	}

	// Validate email format
	if !isValidEmail(*email) {
		log.Fatalf("Error: invalid email format: %s", *email)
	}

	// Validate sector
	companySector := models.Sector(strings.ToUpper(*sector))
	if !companySector.IsValid() {
		log.Fatalf("Error: invalid sector: %s", *sector)
	}

	// Default contact email to admin email
	if *contactEmail == "" {
		*contactEmail = *email
	}

	// Load database configuration from environment
	dbURI := os.Getenv("SECMAT_DATABASE_URI")
	if dbURI == "" {
		log.Fatal("Error: SECMAT_DATABASE_URI environment variable is required")
	}
	dbName := os.Getenv("SECMAT_DATABASE_NAME")
	if dbName == "" {
		dbName = "secmat"
	}

	// Create company and user objects
	company := &models.Company{
		Name:         strings.TrimSpace(*name),
		Sector:       companySector,
		ContactEmail: *contactEmail,
	}

	user := &models.User{
		Email:       *email,
		DisplayName: *adminName,
		Role:        models.UserRoleAdmin,
	}

	// Print what will be created
	fmt.Println("=== Company ===")
	fmt.Printf("  Name:          %s\n", company.Name)
	fmt.Printf("  Sector:        %s\n", company.Sector)
	fmt.Printf("  Contact Email: %s\n", company.ContactEmail)
	fmt.Println()
	fmt.Println("=== Admin User ===")
	fmt.Printf("  Email: %s\n", user.Email)
	fmt.Printf("  Name:  %s\n", user.DisplayName)
	fmt.Printf("  Role:  %s\n", user.Role)
	fmt.Println()

	if *dryRun {
		fmt.Println("[DRY RUN] No changes made to database")
		return
	}

	// Connect to MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbCfg := database.DefaultConfig()
	dbCfg.URI = dbURI
	dbCfg.Database = dbName

	dbClient, err := database.NewClient(dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if closeErr := dbClient.Close(ctx); closeErr != nil {
			log.Printf("Error closing database connection: %v", closeErr)
		}
	}()

	companyRepo := repository.NewCompanyRepository(dbClient)
	userRepo := repository.NewUserRepository(dbClient)

	// Check if company with same name already exists
	companyCollection := dbClient.Collection(database.CollectionCompanies)
	var existingCompany models.Company
	err = companyCollection.FindOne(ctx, bson.M{"name": company.Name, "deleted_at": nil}).Decode(&existingCompany)
	if err == nil {
		log.Fatalf("Error: company named '%s' already exists (ID: %s)", company.Name, existingCompany.ID.Hex())
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		log.Fatalf("Error checking existing company: %v", err)
	}

	// Check if user with same email already exists
	existingUser, err := userRepo.GetByEmail(ctx, user.Email)
	if err == nil {
		log.Fatalf("Error: user with email '%s' already exists (ID: %s)", existingUser.Email, existingUser.ID.Hex())
	} else if !errors.Is(err, models.ErrUserNotFound) {
		log.Fatalf("Error checking existing user: %v", err)
	}

	// Insert company
	if err := companyRepo.Create(ctx, company); err != nil {
		log.Fatalf("Failed to create company: %v", err)
	}
	fmt.Printf("✓ Created company: %s (%s)\n", company.Name, company.ID.Hex())

	// Insert user
	user.CompanyID = company.ID
	if err := userRepo.Create(ctx, user); err != nil {
		// Rollback: delete the company
		_, _ = companyCollection.DeleteOne(ctx, bson.M{"_id": company.ID})
		log.Fatalf("Failed to create user (company rolled back): %v", err)
	}
	fmt.Printf("✓ Created admin user: %s (%s)\n", user.Email, user.ID.Hex())

	fmt.Println()
	fmt.Println("Company setup complete!")
	fmt.Printf("Issue a token for %s to start assessing.\n", user.Email)
}

// isValidEmail performs basic email validation
func isValidEmail(email string) bool {
	// Simple regex for email validation
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	matched, _ := regexp.MatchString(pattern, email)
	return matched
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
