package database

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/secmat-tools/secmat_backend/internal/models"
)

// Seeder handles database seeding operations
// #SEED_DATA: Default security maturity catalog (domains and weighted questions)
type Seeder struct {
	db *mongo.Database
}

// NewSeeder creates a new database seeder
func NewSeeder(db *mongo.Database) *Seeder {
	return &Seeder{db: db}
}

// SeedAll runs all seed operations
func (s *Seeder) SeedAll(ctx context.Context) error {
	log.Println("Starting database seeding...")

	if err := s.SeedCatalog(ctx); err != nil {
		return fmt.Errorf("failed to seed maturity catalog: %w", err)
	}

	log.Println("Database seeding completed successfully")
	return nil
}

// SeedCatalog seeds the default domain and question catalog
// #IMPLEMENTATION_DECISION: Seeding is all-or-nothing - any existing domain means a
// catalog is already installed and we leave it alone
func (s *Seeder) SeedCatalog(ctx context.Context) error {
	domainColl := s.db.Collection(models.Domain{}.CollectionName())
	questionColl := s.db.Collection(models.Question{}.CollectionName())

	count, err := domainColl.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Println("Domain catalog already exists, skipping seeding")
		return nil
	}

	var domainDocs []interface{}
	var questionDocs []interface{}
	for _, entry := range defaultCatalog() {
		domain := entry.domain
		domain.BeforeCreate()
		domainDocs = append(domainDocs, domain)

		for i, q := range entry.questions {
			q.DomainID = domain.ID
			q.Order = i + 1
			q.BeforeCreate()
			questionDocs = append(questionDocs, q)
		}
	}

	if _, err := domainColl.InsertMany(ctx, domainDocs); err != nil {
		return err
	}
	if _, err := questionColl.InsertMany(ctx, questionDocs); err != nil {
		return err
	}

	log.Printf("Seeded %d domains with %d questions", len(domainDocs), len(questionDocs))
	return nil
}

type catalogEntry struct {
	domain    *models.Domain
	questions []*models.Question
}

// defaultCatalog returns the built-in security maturity catalog
// #SEED_DATA: Question weights emphasize foundational controls; maturity levels
// gate which plan tiers see the question
func defaultCatalog() []catalogEntry {
	return []catalogEntry{
		{
			domain: &models.Domain{Name: "Governance & Risk", Description: "Security governance, policy and risk management", Order: 1, Weight: 2},
			questions: []*models.Question{
				{Text: "An information security policy is documented and approved by management", MaturityLevel: models.MaturityInitial, Weight: 2},
				{Text: "Security roles and responsibilities are formally assigned", MaturityLevel: models.MaturityInitial, Weight: 1},
				{Text: "A risk assessment is performed at least annually", HelpText: "Includes identification, analysis and treatment of information security risks", MaturityLevel: models.MaturityRepeatable, Weight: 2},
				{Text: "A risk register is maintained and reviewed by management", MaturityLevel: models.MaturityDefined, Weight: 1},
				{Text: "Security KPIs are reported to executive leadership", MaturityLevel: models.MaturityManaged, Weight: 1},
				{Text: "The governance framework is benchmarked and improved against industry standards", MaturityLevel: models.MaturityOptimized, Weight: 1},
			},
		},
		{
			domain: &models.Domain{Name: "Identity & Access", Description: "Identity lifecycle, authentication and authorization controls", Order: 2, Weight: 2},
			questions: []*models.Question{
				{Text: "User accounts are uniquely assigned to individuals", MaturityLevel: models.MaturityInitial, Weight: 1},
				{Text: "Access rights follow the principle of least privilege", MaturityLevel: models.MaturityRepeatable, Weight: 2},
				{Text: "Multi-factor authentication protects remote and privileged access", MaturityLevel: models.MaturityRepeatable, Weight: 3},
				{Text: "Joiner/mover/leaver processes revoke access within defined timeframes", MaturityLevel: models.MaturityDefined, Weight: 2},
				{Text: "Access rights are recertified on a regular schedule", MaturityLevel: models.MaturityManaged, Weight: 1},
				{Text: "Privileged access is brokered through just-in-time elevation", MaturityLevel: models.MaturityOptimized, Weight: 1},
			},
		},
		{
			domain: &models.Domain{Name: "Data Protection", Description: "Classification, encryption and handling of sensitive data", Order: 3, Weight: 2},
			questions: []*models.Question{
				{Text: "Sensitive data is identified and classified", MaturityLevel: models.MaturityInitial, Weight: 2},
				{Text: "Data at rest is encrypted for sensitive repositories", MaturityLevel: models.MaturityRepeatable, Weight: 2},
				{Text: "Data in transit is encrypted using current protocol versions", MaturityLevel: models.MaturityRepeatable, Weight: 2},
				{Text: "Data retention and disposal schedules are enforced", MaturityLevel: models.MaturityDefined, Weight: 1},
				{Text: "Data loss prevention controls monitor egress channels", MaturityLevel: models.MaturityManaged, Weight: 1},
			},
		},
		{
			domain: &models.Domain{Name: "Operations Security", Description: "Hardening, vulnerability and change management for production systems", Order: 4, Weight: 1},
			questions: []*models.Question{
				{Text: "Systems are patched according to a defined schedule", MaturityLevel: models.MaturityInitial, Weight: 2},
				{Text: "Endpoint protection is deployed across the asset estate", MaturityLevel: models.MaturityInitial, Weight: 1},
				{Text: "Vulnerability scans run on a recurring basis with tracked remediation", MaturityLevel: models.MaturityRepeatable, Weight: 2},
				{Text: "Changes to production follow a documented approval process", MaturityLevel: models.MaturityDefined, Weight: 1},
				{Text: "Security events are centrally logged and correlated", MaturityLevel: models.MaturityManaged, Weight: 2},
				{Text: "Penetration tests are performed and findings feed back into hardening baselines", MaturityLevel: models.MaturityOptimized, Weight: 1},
			},
		},
		{
			domain: &models.Domain{Name: "Incident Response", Description: "Detection, response and recovery from security incidents", Order: 5, Weight: 2},
			questions: []*models.Question{
				{Text: "A documented incident response plan exists", MaturityLevel: models.MaturityInitial, Weight: 2},
				{Text: "Incidents are recorded with severity classification", MaturityLevel: models.MaturityRepeatable, Weight: 1},
				{Text: "An on-call escalation path is defined for critical incidents", MaturityLevel: models.MaturityDefined, Weight: 1},
				{Text: "Incident response exercises are conducted at least annually", MaturityLevel: models.MaturityManaged, Weight: 2},
				{Text: "Post-incident reviews drive measurable control improvements", MaturityLevel: models.MaturityOptimized, Weight: 1},
			},
		},
		{
			domain: &models.Domain{Name: "Business Continuity", Description: "Backup, recovery and continuity of critical services", Order: 6, Weight: 1},
			questions: []*models.Question{
				{Text: "Critical systems and their dependencies are inventoried", MaturityLevel: models.MaturityInitial, Weight: 1},
				{Text: "Backups are taken regularly and stored separately from production", MaturityLevel: models.MaturityInitial, Weight: 2},
				{Text: "Recovery time and recovery point objectives are defined for critical services", MaturityLevel: models.MaturityRepeatable, Weight: 1},
				{Text: "Restore procedures are tested against defined objectives", MaturityLevel: models.MaturityDefined, Weight: 2},
				{Text: "Continuity plans are exercised end-to-end including failover", MaturityLevel: models.MaturityManaged, Weight: 1},
			},
		},
	}
}
