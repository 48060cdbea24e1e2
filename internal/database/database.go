// Package database provides the raw-SQL persistence layer for the lead
// pipeline tables: contacts, marketplace_registrations, lead_notes,
// lead_documents, generated_documents and signature_log.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/joho/godotenv/autoload"

	"greenloop/internal/leads"
)

// Service represents a service that interacts with the database.
type Service interface {
	// Lead sources
	GetContacts(ctx context.Context) ([]leads.Contact, error)
	GetMarketplaceRegistrations(ctx context.Context) ([]leads.MarketplaceRegistration, error)
	CreateContact(ctx context.Context, contact *leads.Contact) error
	CreateMarketplaceRegistration(ctx context.Context, reg *leads.MarketplaceRegistration) error

	// Lead mutations, routed to the lead's origin table
	UpdateLeadStage(ctx context.Context, leadType leads.LeadType, id string, level leads.LeadLevel) error
	UpdateLeadPriority(ctx context.Context, leadType leads.LeadType, id string, priority leads.Priority) error
	UpdateLeadFollowUp(ctx context.Context, leadType leads.LeadType, id string, nextAction *string, nextActionDate *time.Time) error

	// Lead notes and document folder
	GetLeadNotes(ctx context.Context, leadType leads.LeadType, leadID string) ([]LeadNote, error)
	AddLeadNote(ctx context.Context, note *LeadNote) error
	CreateLeadDocument(ctx context.Context, doc *LeadDocument) error
	GetLeadDocuments(ctx context.Context, leadType leads.LeadType, leadID string) ([]LeadDocument, error)
	GetLeadDocument(ctx context.Context, id string) (*LeadDocument, error)
	DeleteLeadDocument(ctx context.Context, id string) (*LeadDocument, error)

	// Generated documents and the signature audit log
	CreateGeneratedDocument(ctx context.Context, doc *GeneratedDocument) error
	GetGeneratedDocuments(ctx context.Context) ([]GeneratedDocument, error)
	AddSignatureLogEntry(ctx context.Context, entry *SignatureLogEntry) error

	// RunMigrations applies the SQL migrations under migrations/.
	RunMigrations() error

	// Health returns a map of health status information.
	Health() map[string]string

	// Close terminates the database connection.
	Close() error
}

type service struct {
	db *sql.DB
}

var (
	dbInstance *service
)

func New() Service {
	// Reuse Connection
	if dbInstance != nil {
		return dbInstance
	}

	connStr := os.Getenv("DB_STRING")
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		log.Fatal(err)
	}

	dbInstance = &service{
		db: db,
	}
	return dbInstance
}

// Health checks the health of the database connection by pinging the database.
// It returns a map with keys indicating various health statistics.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	err := s.db.PingContext(ctx)
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"

	dbStats := s.db.Stats()
	stats["open_connections"] = strconv.Itoa(dbStats.OpenConnections)
	stats["in_use"] = strconv.Itoa(dbStats.InUse)
	stats["idle"] = strconv.Itoa(dbStats.Idle)
	stats["wait_count"] = strconv.FormatInt(dbStats.WaitCount, 10)

	if dbStats.OpenConnections > 40 {
		stats["message"] = "The database is experiencing heavy load."
	}

	return stats
}

// Close closes the database connection.
func (s *service) Close() error {
	return s.db.Close()
}
