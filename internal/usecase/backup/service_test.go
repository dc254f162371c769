package backup

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/atlaslingo/darlingo/internal/infrastructure/database"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := database.InitSchema(context.Background(), db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func seedFixture(t *testing.T, db *sqlx.DB) {
	t.Helper()
	ctx := context.Background()
	stmts := []struct {
		query string
		args  []any
	}{
		{"INSERT INTO users (email, password_hash, display_name, level, xp, streak, created_at) VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)",
			[]any{"mina@example.com", "hash", "Mina", "a2", 120, 3}},
		{"INSERT INTO users (email, password_hash, display_name, level, xp, streak, created_at) VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)",
			[]any{"theo@example.com", "hash", "Theo", "b1", 340, 7}},
		{"INSERT INTO lessons (level, module, ord, title, content_json) VALUES (?, ?, ?, ?, ?)",
			[]any{"a1", "greetings", 1, "Hello and goodbye", `{"vocabulary":[]}`}},
		{"INSERT INTO badges (name, description, icon) VALUES (?, ?, ?)",
			[]any{"First Steps", "Complete your first lesson", "footsteps"}},
		{"INSERT INTO user_progress (user_id, lesson_id, score, completed_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)",
			[]any{1, 1, 0.9}},
		{"INSERT INTO game_results (user_id, game_type, score, xp_earned, played_at) VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)",
			[]any{1, "word_match", 1.0, 50}},
		{"INSERT INTO user_weaknesses (user_id, skill_area, error_count, last_tested) VALUES (?, ?, ?, CURRENT_TIMESTAMP)",
			[]any{2, "ser_estar", 4}},
		{"INSERT INTO user_badges (user_id, badge_id, earned_at) VALUES (?, ?, CURRENT_TIMESTAMP)",
			[]any{1, 1}},
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt.query, stmt.args...); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func countRows(t *testing.T, db *sqlx.DB, table string) int {
	t.Helper()
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM "+table); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return count
}

func TestExportImportRoundTrip(t *testing.T) {
	db := openTestDB(t)
	seedFixture(t, db)
	ctx := context.Background()

	service, err := NewService(db, WithBatchSize(2))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	var buf bytes.Buffer
	if err := service.Export(ctx, &buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// 1 meta + 2 users + 1 lesson + 1 badge + 1 progress + 1 game + 1 weakness + 1 user badge
	if len(lines) != 9 {
		t.Fatalf("expected 9 records, got %d", len(lines))
	}
	if !strings.Contains(lines[0], `"type":"meta"`) {
		t.Fatalf("first record is not meta: %s", lines[0])
	}

	if err := database.TruncateAll(ctx, db); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	if got := countRows(t, db, "users"); got != 0 {
		t.Fatalf("expected empty users table, got %d rows", got)
	}

	if err := service.Import(ctx, bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("import: %v", err)
	}

	for table, want := range map[string]int{
		"users": 2, "lessons": 1, "badges": 1, "user_progress": 1,
		"game_results": 1, "user_weaknesses": 1, "user_badges": 1,
	} {
		if got := countRows(t, db, table); got != want {
			t.Errorf("table %s: expected %d rows, got %d", table, want, got)
		}
	}

	var email string
	if err := db.Get(&email, "SELECT email FROM users WHERE id = 2"); err != nil {
		t.Fatalf("read restored user: %v", err)
	}
	if email != "theo@example.com" {
		t.Errorf("expected restored email theo@example.com, got %s", email)
	}
}

func TestExportTableFilter(t *testing.T) {
	db := openTestDB(t)
	seedFixture(t, db)
	ctx := context.Background()

	service, err := NewService(db)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	var buf bytes.Buffer
	if err := service.Export(ctx, &buf, WithTables([]string{"users", "badges"})); err != nil {
		t.Fatalf("export: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"type":"users"`) || !strings.Contains(out, `"type":"badges"`) {
		t.Fatalf("expected users and badges records in output")
	}
	if strings.Contains(out, `"type":"lessons"`) {
		t.Fatalf("lessons should be excluded from filtered export")
	}

	if err := service.Export(ctx, &buf, WithTables([]string{"sqlite_master"})); err == nil {
		t.Fatal("expected error for unknown table")
	}
}

func TestImportTableFilterSkipsOtherTables(t *testing.T) {
	db := openTestDB(t)
	seedFixture(t, db)
	ctx := context.Background()

	service, err := NewService(db)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	var buf bytes.Buffer
	if err := service.Export(ctx, &buf); err != nil {
		t.Fatalf("export: %v", err)
	}
	if err := database.TruncateAll(ctx, db); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	if err := service.Import(ctx, bytes.NewReader(buf.Bytes()), WithImportTables([]string{"users"})); err != nil {
		t.Fatalf("import: %v", err)
	}
	if got := countRows(t, db, "users"); got != 2 {
		t.Fatalf("expected 2 users, got %d", got)
	}
	if got := countRows(t, db, "lessons"); got != 0 {
		t.Fatalf("expected 0 lessons, got %d", got)
	}
}

func TestImportRejectsBadBackups(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	service, err := NewService(db)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	cases := map[string]string{
		"missing meta":        `{"type":"users","payload":{"id":1,"email":"x@example.com","password_hash":"h","display_name":"X","level":"a2","xp":0,"streak":0}}`,
		"unsupported version": `{"type":"meta","version":99}`,
		"garbage line":        `not json at all`,
	}
	for name, body := range cases {
		if err := service.Import(ctx, strings.NewReader(body+"\n")); err == nil {
			t.Errorf("%s: expected import to fail", name)
		}
	}

	// A failed import must not leave partial rows behind.
	partial := `{"type":"users","payload":{"id":1,"email":"x@example.com","password_hash":"h","display_name":"X","level":"a2","xp":0,"streak":0}}` + "\n" +
		`{"type":"meta","version":99}` + "\n"
	if err := service.Import(ctx, strings.NewReader(partial)); err == nil {
		t.Fatal("expected import to fail on version mismatch")
	}
	if got := countRows(t, db, "users"); got != 0 {
		t.Fatalf("expected rollback to leave 0 users, got %d", got)
	}
}

func TestExportReportsProgress(t *testing.T) {
	db := openTestDB(t)
	seedFixture(t, db)
	ctx := context.Background()

	service, err := NewService(db)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	reporter := &captureProgress{totals: map[string]int{}, counts: map[string]int{}}
	var buf bytes.Buffer
	if err := service.Export(ctx, &buf, WithProgressReporter(reporter)); err != nil {
		t.Fatalf("export: %v", err)
	}

	if reporter.totals["users"] != 2 || reporter.counts["users"] != 2 {
		t.Errorf("users progress: total %d count %d", reporter.totals["users"], reporter.counts["users"])
	}
	if !reporter.finished["lessons"] {
		t.Error("expected lessons table to finish")
	}
}

type captureProgress struct {
	totals   map[string]int
	counts   map[string]int
	finished map[string]bool
}

func (c *captureProgress) StartTable(table string, total int) {
	c.totals[table] = total
}

func (c *captureProgress) Increment(table string, delta int) {
	c.counts[table] += delta
}

func (c *captureProgress) FinishTable(table string) {
	if c.finished == nil {
		c.finished = map[string]bool{}
	}
	c.finished[table] = true
}
