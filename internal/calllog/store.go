package calllog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"callstrip/internal/calltype"
	"callstrip/internal/logger"

	_ "modernc.org/sqlite"
)

var log = logger.New("calllog")

// Store is a call log kept in a single SQLite file.
type Store struct {
	Path string
}

func (s Store) open(ctx context.Context) (*sql.DB, error) {
	if strings.TrimSpace(s.Path) == "" {
		return nil, errors.New("call log path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return nil, err
	}
	log.Trace("open %s", s.Path)
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS calls (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			number TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			date_ms INTEGER NOT NULL,
			duration_sec INTEGER NOT NULL DEFAULT 0,
			type INTEGER NOT NULL,
			features INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS calls_date_idx ON calls(date_ms DESC, id DESC);`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migrate call log: %w", err)
		}
	}
	return nil
}

// Add inserts c and returns its id. A zero Date is stamped with now.
func (s Store) Add(ctx context.Context, c Call) (int64, error) {
	db, err := s.open(ctx)
	if err != nil {
		return 0, err
	}
	defer db.Close()
	return insert(ctx, db, c)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insert(ctx context.Context, db execer, c Call) (int64, error) {
	if strings.TrimSpace(c.Number) == "" {
		return 0, errors.New("call number is empty")
	}
	if c.Date.IsZero() {
		c.Date = time.Now()
	}
	res, err := db.ExecContext(ctx,
		`INSERT INTO calls(number, name, date_ms, duration_sec, type, features) VALUES(?, ?, ?, ?, ?, ?)`,
		strings.TrimSpace(c.Number), strings.TrimSpace(c.Name), c.Date.UnixMilli(), c.DurationSec, int(c.Type), int(c.Features))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// List returns up to limit calls, newest first. limit <= 0 means all.
func (s Store) List(ctx context.Context, limit int) ([]Call, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT id, number, name, date_ms, duration_sec, type, features FROM calls ORDER BY date_ms DESC, id DESC`
	var args []any
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Call
	for rows.Next() {
		var (
			c        Call
			dateMS   int64
			typ      int
			features int
		)
		if err := rows.Scan(&c.ID, &c.Number, &c.Name, &dateMS, &c.DurationSec, &typ, &features); err != nil {
			return nil, err
		}
		c.Date = time.UnixMilli(dateMS)
		c.Type = calltype.Code(typ)
		c.Features = Features(features)
		if !calltype.Known(c.Type) {
			log.Debug("call %d has unknown type %d; shown as missed", c.ID, typ)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Rows lists the log and groups it into display rows.
func (s Store) Rows(ctx context.Context, limit int) ([]Row, error) {
	calls, err := s.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	rows := Group(calls)
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// Clear deletes every call and returns how many were removed.
func (s Store) Clear(ctx context.Context) (int64, error) {
	db, err := s.open(ctx)
	if err != nil {
		return 0, err
	}
	defer db.Close()
	res, err := db.ExecContext(ctx, `DELETE FROM calls`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Import reads a JSON array of calls and inserts them in one transaction.
// Types may be given as numbers or names ("missed-ims").
func (s Store) Import(ctx context.Context, r io.Reader) (int, error) {
	var in []importCall
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return 0, fmt.Errorf("decode calls: %w", err)
	}
	db, err := s.open(ctx)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	for i, ic := range in {
		c, err := ic.call()
		if err != nil {
			return 0, fmt.Errorf("call %d: %w", i, err)
		}
		if !calltype.Known(c.Type) {
			log.Warn("call %d (%s) has unknown type %d; it will be shown as missed", i, c.Number, int(c.Type))
		}
		if _, err := insert(ctx, tx, c); err != nil {
			return 0, fmt.Errorf("call %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	log.Info("imported %d calls into %s", len(in), s.Path)
	return len(in), nil
}

type importCall struct {
	Number      string          `json:"number"`
	Name        string          `json:"name"`
	Date        time.Time       `json:"date"`
	DurationSec int             `json:"durationSec"`
	Type        json.RawMessage `json:"type"`
	Video       bool            `json:"video"`
	Wifi        bool            `json:"wifi"`
	Features    Features        `json:"features"`
}

func (ic importCall) call() (Call, error) {
	c := Call{
		Number:      ic.Number,
		Name:        ic.Name,
		Date:        ic.Date,
		DurationSec: ic.DurationSec,
		Features:    ic.Features,
	}
	if ic.Video {
		c.Features |= FeatureVideo
	}
	if ic.Wifi {
		c.Features |= FeatureWifi
	}
	raw := strings.TrimSpace(string(ic.Type))
	if raw == "" || raw == "null" {
		return Call{}, errors.New("missing type")
	}
	var name string
	if err := json.Unmarshal(ic.Type, &name); err != nil {
		name = raw
	}
	code, err := calltype.Parse(name)
	if err != nil {
		return Call{}, err
	}
	c.Type = code
	return c, nil
}
