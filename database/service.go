package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"leads-service/config"
	"leads-service/models"

	"github.com/apex/log"
	_ "github.com/go-sql-driver/mysql"
)

// LeadStore is the tabular store collaborator. It appends canonical lead
// rows to a resolved partition and reads the full snapshot back. It does
// no retrying; failures propagate to the caller.
type LeadStore struct {
	db         *sql.DB
	candidates []string
	partition  string
}

// Connect opens the MySQL connection backing the store.
func Connect(cfg *config.Config) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetConnMaxLifetime(time.Minute * 3)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)

	log.Infof("Established db connection to %s:%s/%s", cfg.DBHost, cfg.DBPort, cfg.DBName)
	return db, nil
}

// NewLeadStore creates a store over db trying the given partition names in
// order. Resolve must be called before Append or ReadAll.
func NewLeadStore(db *sql.DB, candidates []string) *LeadStore {
	return &LeadStore{db: db, candidates: candidates}
}

// Resolve picks the first existing candidate partition. If none exists,
// the first candidate is provisioned with the canonical 10-column layout.
func (s *LeadStore) Resolve(ctx context.Context) error {
	for _, name := range s.candidates {
		exists, err := partitionExists(ctx, s.db, name)
		if err != nil {
			return err
		}
		if exists {
			log.Infof("Using lead partition %s", name)
			s.partition = name
			return nil
		}
	}

	name := s.candidates[0]
	if err := EnsurePartition(ctx, s.db, name); err != nil {
		return err
	}
	s.partition = name
	return nil
}

// Partition returns the resolved partition name.
func (s *LeadStore) Partition() string {
	return s.partition
}

// Append persists one lead as a row in the fixed field order. Exactly one
// row is written per call.
func (s *LeadStore) Append(ctx context.Context, lead *models.Lead) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.partition, strings.Join(columns, ", "))

	row := lead.Row()
	args := make([]interface{}, len(row))
	for i, v := range row {
		args[i] = v
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to append lead %s: %w", lead.ID, err)
	}
	return nil
}

// ReadAll returns the full snapshot of lead records in insertion order.
func (s *LeadStore) ReadAll(ctx context.Context) ([]models.Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY seq`,
		strings.Join(columns, ", "), s.partition)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read leads: %w", err)
	}
	defer rows.Close()

	leads := []models.Lead{}
	for rows.Next() {
		var l models.Lead
		if err := rows.Scan(
			&l.Timestamp,
			&l.Name,
			&l.Phone,
			&l.Reference,
			&l.VisitInterest,
			&l.Summary,
			&l.Source,
			&l.ID,
			&l.Status,
			&l.PropertyType,
		); err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}
