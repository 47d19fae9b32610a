// Package people is the PostgreSQL-backed people service. Every command is
// parameterized and whitelisted; free-text SQL from a caller is never
// executed.
package people

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/dogukanakin/local-mcp/internal/apierror"
)

const tableName = "people"

const defaultTimeout = 8 * time.Second

// Person is one row of the people table. ID and CreatedAt are assigned by
// the database.
type Person struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Age        int       `json:"age"`
	Profession string    `json:"profession"`
	CreatedAt  time.Time `json:"created_at"`
}

// Filter narrows a people listing. Zero values mean "no constraint".
type Filter struct {
	Profession string
	MinAge     int
	MaxAge     int
	// OrderBy must be one of the whitelisted columns; empty means "id".
	OrderBy string
	// Descending flips the sort direction.
	Descending bool
	// Limit caps the number of rows; 0 means no cap.
	Limit int
}

// orderColumns is the whitelist of sortable columns. Anything else is a
// validation error, never interpolated into SQL.
var orderColumns = map[string]struct{}{
	"id":         {},
	"name":       {},
	"age":        {},
	"profession": {},
	"created_at": {},
}

// Service executes the whitelisted people commands against a pgx pool.
type Service struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// Connect opens a pool against databaseURL, pings it and bootstraps the
// people table. The caller decides what an unreachable database means for
// the process (the tool server exits 1).
func Connect(ctx context.Context, databaseURL string, log zerolog.Logger) (*Service, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("people: parse database url: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("people: database unreachable: %w", err)
	}

	s := &Service{pool: pool, log: log}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the pool.
func (s *Service) Close() {
	s.pool.Close()
}

func (s *Service) ensureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS people (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			age INTEGER NOT NULL,
			profession VARCHAR(255) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("people: create table: %w", err)
	}
	return nil
}

// AddPerson inserts a single row with typed, parameterized fields and
// returns the stored record.
func (s *Service) AddPerson(ctx context.Context, name string, age int, profession string) (*Person, error) {
	name = strings.TrimSpace(name)
	profession = strings.TrimSpace(profession)
	if name == "" {
		return nil, apierror.NewValidation("Name is required", nil)
	}
	if age <= 0 {
		return nil, apierror.NewValidation("Age must be a positive number", nil)
	}
	if profession == "" {
		return nil, apierror.NewValidation("Profession is required", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p Person
	err := s.pool.QueryRow(ctx,
		`INSERT INTO people (name, age, profession)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, age, profession, created_at`,
		name, age, profession,
	).Scan(&p.ID, &p.Name, &p.Age, &p.Profession, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("people: insert: %w", err)
	}

	s.log.Info().Str("name", p.Name).Int("id", p.ID).Msg("person added")
	return &p, nil
}

// List returns rows matching the filter, ordered by a whitelisted column.
func (s *Service) List(ctx context.Context, f Filter) ([]Person, error) {
	query, args, err := buildListQuery(f)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("people: list: %w", err)
	}
	defer rows.Close()

	var out []Person
	for rows.Next() {
		var p Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Age, &p.Profession, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("people: scan: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("people: list: %w", err)
	}
	return out, nil
}

// Count returns the total number of rows.
func (s *Service) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var n int64
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM people`).Scan(&n); err != nil {
		return 0, fmt.Errorf("people: count: %w", err)
	}
	return n, nil
}

// ColumnInfo describes one column of the people table.
type ColumnInfo struct {
	Name       string `json:"column_name"`
	DataType   string `json:"data_type"`
	IsNullable string `json:"is_nullable"`
}

// TableInfo reports the table structure and row count.
type TableInfo struct {
	TableName   string       `json:"table_name"`
	Columns     []ColumnInfo `json:"columns"`
	RecordCount int64        `json:"record_count"`
}

// Info queries information_schema for the table layout plus the row count.
func (s *Service) Info(ctx context.Context) (*TableInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx, `
		SELECT column_name, data_type, is_nullable
		FROM information_schema.columns
		WHERE table_name = $1
		ORDER BY ordinal_position`, tableName)
	if err != nil {
		return nil, fmt.Errorf("people: table info: %w", err)
	}
	defer rows.Close()

	info := &TableInfo{TableName: tableName}
	for rows.Next() {
		var col ColumnInfo
		if err := rows.Scan(&col.Name, &col.DataType, &col.IsNullable); err != nil {
			return nil, fmt.Errorf("people: table info scan: %w", err)
		}
		info.Columns = append(info.Columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("people: table info: %w", err)
	}

	count, err := s.Count(ctx)
	if err != nil {
		return nil, err
	}
	info.RecordCount = count
	return info, nil
}
