package leads

import (
	"context"
	"encoding/json"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"it-configurator/internal/common/database"
	"it-configurator/internal/common/errors"
	"it-configurator/internal/common/logger"
)

const createLeadsTable = `
CREATE TABLE IF NOT EXISTS leads (
    id              BIGSERIAL PRIMARY KEY,
    name            VARCHAR(200) NOT NULL,
    email           VARCHAR(254) NOT NULL,
    company         VARCHAR(200) NOT NULL DEFAULT '',
    phone           VARCHAR(50)  NOT NULL DEFAULT '',
    services        TEXT[]       NOT NULL DEFAULT '{}',
    configuration   JSONB        NOT NULL DEFAULT '{}',
    estimated_price NUMERIC(12,2) NOT NULL DEFAULT 0,
    status          VARCHAR(20)  NOT NULL DEFAULT 'new',
    created_at      TIMESTAMPTZ  NOT NULL DEFAULT now()
)`

// Store is the Postgres persistence layer for leads.
type Store struct {
	db  *database.PostgresClient
	log logger.Logger
}

func NewStore(db *database.PostgresClient, log logger.Logger) *Store {
	return &Store{db: db, log: log}
}

// EnsureSchema creates the leads table when it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createLeadsTable); err != nil {
		return errors.NewQueryExecutionFailedError("ensure_schema", err)
	}
	return nil
}

// Insert persists a new lead and returns its id.
func (s *Store) Insert(ctx context.Context, lead *Lead) (int64, error) {
	const query = `
		INSERT INTO leads (name, email, company, phone, services, configuration, estimated_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	status := lead.Status
	if status == "" {
		status = StatusNew
	}
	configuration := lead.Configuration
	if len(configuration) == 0 {
		configuration = json.RawMessage("{}")
	}

	row := s.db.QueryRow(ctx, query,
		lead.Name,
		lead.Email,
		lead.Company,
		lead.Phone,
		pq.Array(lead.Services),
		[]byte(configuration),
		lead.EstimatedPrice,
		string(status),
	)
	if err := row.Scan(&lead.ID, &lead.CreatedAt); err != nil {
		return 0, errors.NewDatabaseInsertFailedError(err)
	}
	lead.Status = status
	return lead.ID, nil
}

// List returns all leads, newest first.
func (s *Store) List(ctx context.Context) ([]Lead, error) {
	const query = `
		SELECT id, name, email, company, phone, services, configuration, estimated_price, status, created_at
		FROM leads
		ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("list_leads", err)
	}
	defer rows.Close()

	var out []Lead
	for rows.Next() {
		var lead Lead
		var services pq.StringArray
		var configuration []byte
		var price string
		if err := rows.Scan(
			&lead.ID, &lead.Name, &lead.Email, &lead.Company, &lead.Phone,
			&services, &configuration, &price, &lead.Status, &lead.CreatedAt,
		); err != nil {
			return nil, errors.NewQueryExecutionFailedError("scan_lead", err)
		}
		lead.Services = services
		lead.Configuration = configuration
		lead.EstimatedPrice, err = decimal.NewFromString(price)
		if err != nil {
			return nil, errors.NewQueryExecutionFailedError("parse_price", err)
		}
		out = append(out, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("list_leads", err)
	}
	return out, nil
}

// UpdateStatus moves a lead through the sales pipeline.
func (s *Store) UpdateStatus(ctx context.Context, id int64, status Status) error {
	if !status.Valid() {
		return errors.NewValidationFailedError("unknown lead status", []string{string(status)})
	}

	result, err := s.db.Exec(ctx, `UPDATE leads SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return errors.NewQueryExecutionFailedError("update_status", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.NewQueryExecutionFailedError("update_status", err)
	}
	if affected == 0 {
		return errors.NewLeadNotFoundError(id)
	}
	return nil
}

// Delete removes a lead.
func (s *Store) Delete(ctx context.Context, id int64) error {
	result, err := s.db.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return errors.NewQueryExecutionFailedError("delete_lead", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.NewQueryExecutionFailedError("delete_lead", err)
	}
	if affected == 0 {
		return errors.NewLeadNotFoundError(id)
	}
	return nil
}

// CountByStatus aggregates the pipeline for the admin dashboard.
func (s *Store) CountByStatus(ctx context.Context) (map[Status]int, error) {
	rows, err := s.db.Query(ctx, `SELECT status, COUNT(*) FROM leads GROUP BY status`)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("count_by_status", err)
	}
	defer rows.Close()

	counts := make(map[Status]int)
	for rows.Next() {
		var status Status
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, errors.NewQueryExecutionFailedError("count_by_status", err)
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("count_by_status", err)
	}
	return counts, nil
}
