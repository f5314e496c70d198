package journal

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"
)

var ErrNotConfigured = errors.New("journal not configured")

// Entry is one finished render job.
type Entry struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Items      int       `json:"items"`
	Skipped    []int     `json:"skipped,omitempty"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	DurationMS int64     `json:"duration_ms"`
	Outcome    string    `json:"outcome"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type Store interface {
	Record(ctx context.Context, e Entry) error
	Get(ctx context.Context, id string) (*Entry, error)
	ListRecent(ctx context.Context, limit int) ([]Entry, error)
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type sqlStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) Store {
	return &sqlStore{db: db}
}

func (s *sqlStore) Record(ctx context.Context, e Entry) error {
	if s == nil || s.db == nil {
		return ErrNotConfigured
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO render_jobs(
			id, kind, items, skipped, width, height, duration_ms, outcome, error, created_at
		)
		VALUES(?,?,?,?,?,?,?,?,?,?)
	`, e.ID, e.Kind, e.Items, joinIndexes(e.Skipped), e.Width, e.Height, e.DurationMS, e.Outcome, e.Error, e.CreatedAt.UTC().UnixMilli())
	return err
}

func (s *sqlStore) Get(ctx context.Context, id string) (*Entry, error) {
	if s == nil || s.db == nil {
		return nil, ErrNotConfigured
	}
	row := s.db.QueryRowContext(ctx, `
		SELECT id, kind, items, skipped, width, height, duration_ms, outcome, error, created_at
		FROM render_jobs
		WHERE id=?
	`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

func (s *sqlStore) ListRecent(ctx context.Context, limit int) ([]Entry, error) {
	if s == nil || s.db == nil {
		return nil, ErrNotConfigured
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, items, skipped, width, height, duration_ms, outcome, error, created_at
		FROM render_jobs
		ORDER BY created_at DESC, id DESC
		LIMIT `+strconv.Itoa(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (s *sqlStore) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if s == nil || s.db == nil {
		return 0, ErrNotConfigured
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM render_jobs WHERE created_at < ?`, cutoff.UTC().UnixMilli())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var (
		e       Entry
		skipped string
		created int64
	)
	if err := row.Scan(&e.ID, &e.Kind, &e.Items, &skipped, &e.Width, &e.Height, &e.DurationMS, &e.Outcome, &e.Error, &created); err != nil {
		return nil, err
	}
	e.Skipped = splitIndexes(skipped)
	e.CreatedAt = time.UnixMilli(created).UTC()
	return &e, nil
}

func joinIndexes(idx []int) string {
	parts := make([]string, len(idx))
	for i, v := range idx {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func splitIndexes(raw string) []int {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []int
	for _, part := range strings.Split(raw, ",") {
		if v, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			out = append(out, v)
		}
	}
	return out
}
