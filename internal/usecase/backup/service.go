// Package backup streams the full database to and from a newline-delimited
// JSON format: one meta record, then one record per row, tables ordered so
// foreign keys resolve on restore.
package backup

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	defaultBatchSize = 512
	formatVersion    = 1
)

var errNoTablesSelected = errors.New("backup: no tables selected")

// tableSpec describes one exportable table. Order in backupTables is the
// restore order.
type tableSpec struct {
	Name    string
	Columns []string
}

var backupTables = []tableSpec{
	{Name: "users", Columns: []string{"id", "email", "password_hash", "display_name", "level", "xp", "streak", "last_active", "created_at"}},
	{Name: "lessons", Columns: []string{"id", "level", "module", "ord", "title", "content_json"}},
	{Name: "badges", Columns: []string{"id", "name", "description", "icon"}},
	{Name: "user_progress", Columns: []string{"id", "user_id", "lesson_id", "score", "completed_at"}},
	{Name: "game_results", Columns: []string{"id", "user_id", "game_type", "score", "xp_earned", "played_at"}},
	{Name: "user_weaknesses", Columns: []string{"id", "user_id", "skill_area", "error_count", "last_tested"}},
	{Name: "user_badges", Columns: []string{"id", "user_id", "badge_id", "earned_at"}},
}

type ProgressReporter interface {
	StartTable(table string, total int)
	Increment(table string, delta int)
	FinishTable(table string)
}

type noopProgress struct{}

func (noopProgress) StartTable(string, int) {}
func (noopProgress) Increment(string, int)  {}
func (noopProgress) FinishTable(string)     {}

type Service struct {
	db        *sqlx.DB
	batchSize int
}

type Option func(*Service)

func WithBatchSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.batchSize = size
		}
	}
}

// NewService constructs a backup service over an open database handle.
func NewService(db *sqlx.DB, opts ...Option) (*Service, error) {
	if db == nil {
		return nil, errors.New("backup: database handle is required")
	}
	svc := &Service{db: db, batchSize: defaultBatchSize}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

type ExportOption func(*exportConfig)

type exportConfig struct {
	tables   []string
	reporter ProgressReporter
}

// WithTables restricts export to the provided table names.
func WithTables(tables []string) ExportOption {
	return func(cfg *exportConfig) {
		if len(tables) == 0 {
			return
		}
		cfg.tables = append([]string{}, tables...)
	}
}

// WithProgressReporter registers a reporter for per-table progress callbacks.
func WithProgressReporter(reporter ProgressReporter) ExportOption {
	return func(cfg *exportConfig) {
		cfg.reporter = reporter
	}
}

type ImportOption func(*importConfig)

type importConfig struct {
	tables []string
}

// WithImportTables restricts import to the provided table names.
func WithImportTables(tables []string) ImportOption {
	return func(cfg *importConfig) {
		if len(tables) == 0 {
			return
		}
		cfg.tables = append([]string{}, tables...)
	}
}

type record struct {
	Type       string         `json:"type"`
	Version    int            `json:"version,omitempty"`
	ExportedAt *time.Time     `json:"exported_at,omitempty"`
	Tables     []string       `json:"tables,omitempty"`
	RowCounts  map[string]int `json:"row_counts,omitempty"`
	Payload    any            `json:"payload,omitempty"`
}

type rawRecord struct {
	Type       string          `json:"type"`
	Version    int             `json:"version"`
	ExportedAt *time.Time      `json:"exported_at"`
	Tables     []string        `json:"tables"`
	RowCounts  map[string]int  `json:"row_counts"`
	Payload    json.RawMessage `json:"payload"`
}

func (s *Service) Export(ctx context.Context, w io.Writer, opts ...ExportOption) error {
	cfg := exportConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	tables, err := selectTables(cfg.tables)
	if err != nil {
		return err
	}
	reporter := cfg.reporter
	if reporter == nil {
		reporter = noopProgress{}
	}

	counts := make(map[string]int, len(tables))
	for _, tbl := range tables {
		var count int
		if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM "+tbl.Name); err != nil {
			return fmt.Errorf("count table %s: %w", tbl.Name, err)
		}
		counts[tbl.Name] = count
	}

	writer := bufio.NewWriter(w)
	defer writer.Flush()

	now := time.Now().UTC()
	meta := record{
		Type:       "meta",
		Version:    formatVersion,
		ExportedAt: &now,
		Tables:     tableNames(tables),
		RowCounts:  counts,
	}
	if err := writeRecord(writer, meta); err != nil {
		return err
	}

	for _, tbl := range tables {
		reporter.StartTable(tbl.Name, counts[tbl.Name])
		if err := s.exportTable(ctx, tbl, reporter, writer); err != nil {
			return err
		}
		reporter.FinishTable(tbl.Name)
	}
	return writer.Flush()
}

func (s *Service) exportTable(ctx context.Context, tbl tableSpec, reporter ProgressReporter, w io.Writer) error {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", strings.Join(tbl.Columns, ", "), tbl.Name)

	for offset := 0; ; offset += s.batchSize {
		rows, err := s.db.QueryxContext(ctx, fmt.Sprintf("%s LIMIT %d OFFSET %d", query, s.batchSize, offset))
		if err != nil {
			return fmt.Errorf("export table %s: %w", tbl.Name, err)
		}

		exported := 0
		for rows.Next() {
			payload := make(map[string]any, len(tbl.Columns))
			if err := rows.MapScan(payload); err != nil {
				rows.Close()
				return fmt.Errorf("scan %s row: %w", tbl.Name, err)
			}
			normalizePayload(payload)
			if err := writeRecord(w, record{Type: tbl.Name, Payload: payload}); err != nil {
				rows.Close()
				return err
			}
			exported++
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return fmt.Errorf("iterate %s rows: %w", tbl.Name, err)
		}
		rows.Close()

		reporter.Increment(tbl.Name, exported)
		if exported < s.batchSize {
			return nil
		}
	}
}

func (s *Service) Import(ctx context.Context, r io.Reader, opts ...ImportOption) error {
	cfg := importConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	tables, err := selectTables(cfg.tables)
	if err != nil {
		return err
	}
	tableFilter := make(map[string]tableSpec, len(tables))
	for _, tbl := range tables {
		tableFilter[tbl.Name] = tbl
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	commit := false
	defer func() {
		if !commit {
			_ = tx.Rollback()
		}
	}()

	br := bufio.NewReader(r)
	var (
		metaSeen bool
		meta     rawRecord
		maxIDs   = make(map[string]int64)
	)
	for {
		line, err := br.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read backup: %w", err)
		}
		line = bytes.TrimSpace(line)
		if len(line) > 0 {
			var rec rawRecord
			if err := json.Unmarshal(line, &rec); err != nil {
				return fmt.Errorf("decode record: %w", err)
			}
			switch rec.Type {
			case "meta":
				metaSeen = true
				meta = rec
			default:
				tbl, ok := tableFilter[rec.Type]
				if !ok {
					break
				}
				if len(rec.Payload) == 0 {
					return fmt.Errorf("backup: missing payload for table %s", rec.Type)
				}
				if err := s.importRow(ctx, tx, tbl, rec.Payload, maxIDs); err != nil {
					return err
				}
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
	}

	if !metaSeen {
		return errors.New("backup: missing meta record")
	}
	if meta.Version != formatVersion {
		return fmt.Errorf("backup: unsupported format version %d", meta.Version)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	commit = true

	return s.syncSequences(ctx, maxIDs)
}

func (s *Service) importRow(ctx context.Context, tx *sqlx.Tx, tbl tableSpec, payload json.RawMessage, maxIDs map[string]int64) error {
	values := make(map[string]any, len(tbl.Columns))
	if err := json.Unmarshal(payload, &values); err != nil {
		return fmt.Errorf("decode %s payload: %w", tbl.Name, err)
	}

	columns := make([]string, 0, len(tbl.Columns))
	args := make([]any, 0, len(tbl.Columns))
	for _, column := range tbl.Columns {
		value, ok := values[column]
		if !ok {
			continue
		}
		columns = append(columns, column)
		args = append(args, value)
		if column == "id" {
			if id, ok := value.(float64); ok && int64(id) > maxIDs[tbl.Name] {
				maxIDs[tbl.Name] = int64(id)
			}
		}
	}
	if len(columns) == 0 {
		return fmt.Errorf("backup: empty payload for table %s", tbl.Name)
	}

	query := s.db.Rebind(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		tbl.Name,
		strings.Join(columns, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", "),
	))
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert into %s: %w", tbl.Name, err)
	}
	return nil
}

// syncSequences bumps postgres identity sequences past the restored ids.
// SQLite keys off the max rowid on its own.
func (s *Service) syncSequences(ctx context.Context, maxIDs map[string]int64) error {
	if s.db.DriverName() != "postgres" {
		return nil
	}
	for table, maxID := range maxIDs {
		query := fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%s', 'id'), %d, true)", table, maxID)
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("sync sequence for %s: %w", table, err)
		}
	}
	return nil
}

func selectTables(names []string) ([]tableSpec, error) {
	if len(names) == 0 {
		return backupTables, nil
	}
	index := make(map[string]tableSpec, len(backupTables))
	for _, tbl := range backupTables {
		index[tbl.Name] = tbl
	}
	requested := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("backup: unknown table %q", name)
		}
		requested[name] = true
	}
	if len(requested) == 0 {
		return nil, errNoTablesSelected
	}
	// Preserve canonical restore order.
	var out []tableSpec
	for _, tbl := range backupTables {
		if requested[tbl.Name] {
			out = append(out, tbl)
		}
	}
	return out, nil
}

func tableNames(tables []tableSpec) []string {
	out := make([]string, 0, len(tables))
	for _, tbl := range tables {
		out = append(out, tbl.Name)
	}
	return out
}

// normalizePayload converts driver byte slices to strings so the JSON
// encoding is readable and stable across sqlite and postgres.
func normalizePayload(payload map[string]any) {
	for key, value := range payload {
		if b, ok := value.([]byte); ok {
			payload[key] = string(b)
		}
	}
}

func writeRecord(w io.Writer, rec record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}
