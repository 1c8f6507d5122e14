// Package store persists interaction records to sqlite. Reads go
// through a small TTL cache; the extraction pipeline itself never
// touches the store, so extraction stays stateless.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	_ "modernc.org/sqlite"

	"github.com/fieldrx/hcplog/internal/model"
)

// ErrNotFound is returned when no interaction matches the given id
var ErrNotFound = errors.New("interaction not found")

const schema = `
CREATE TABLE IF NOT EXISTS interaction (
	id                  TEXT PRIMARY KEY,
	raw_text            TEXT NOT NULL,
	hcp_name            TEXT,
	date                TEXT,
	time                TEXT,
	topics_discussed    TEXT,
	materials_shared    TEXT NOT NULL DEFAULT '[]',
	samples_distributed TEXT NOT NULL DEFAULT '[]',
	sentiment           TEXT,
	sentiment_source    TEXT,
	summary             TEXT,
	created_at          TIMESTAMP NOT NULL
);`

// Store provides CRUD over interaction records
type Store struct {
	db    *sql.DB
	cache *gocache.Cache
}

// Open opens (creating if needed) the sqlite database at path. The
// initial ping is retried with exponential backoff so a briefly locked
// database file does not fail service startup.
func Open(path string, cacheTTL time.Duration) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 10 * time.Second
	if err := backoff.Retry(db.Ping, bo); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}

	return &Store{
		db:    db,
		cache: gocache.New(cacheTTL, 2*cacheTTL),
	}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateInteraction persists a new record built from the raw note text
// and the pipeline's extraction output
func (s *Store) CreateInteraction(ctx context.Context, rawText string, res model.ExtractionResult) (*model.InteractionRecord, error) {
	rec := &model.InteractionRecord{
		ID:               uuid.New().String(),
		RawText:          rawText,
		CreatedAt:        time.Now().UTC(),
		ExtractionResult: res,
	}

	materials, samples, err := encodeLists(res)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO interaction (
			id, raw_text, hcp_name, date, time, topics_discussed,
			materials_shared, samples_distributed,
			sentiment, sentiment_source, summary, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.RawText, res.HCPName, res.Date, res.Time, res.TopicsDiscussed,
		materials, samples,
		res.Sentiment, res.SentimentSource, res.Summary, rec.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert interaction: %w", err)
	}

	s.cache.Set(rec.ID, rec, gocache.DefaultExpiration)
	return rec, nil
}

// GetInteraction fetches one record by id, serving repeated reads from
// the in-memory cache
func (s *Store) GetInteraction(ctx context.Context, id string) (*model.InteractionRecord, error) {
	if v, found := s.cache.Get(id); found {
		if rec, ok := v.(*model.InteractionRecord); ok {
			return rec, nil
		}
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, raw_text, hcp_name, date, time, topics_discussed,
		       materials_shared, samples_distributed,
		       sentiment, sentiment_source, summary, created_at
		FROM interaction WHERE id = ?`, id)

	rec, err := scanRecord(row)
	if err != nil {
		return nil, err
	}

	s.cache.Set(rec.ID, rec, gocache.DefaultExpiration)
	return rec, nil
}

// UpdateInteraction overwrites a record's extracted fields and raw text
// after a re-extraction
func (s *Store) UpdateInteraction(ctx context.Context, id, rawText string, res model.ExtractionResult) (*model.InteractionRecord, error) {
	materials, samples, err := encodeLists(res)
	if err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE interaction SET
			raw_text = ?, hcp_name = ?, date = ?, time = ?, topics_discussed = ?,
			materials_shared = ?, samples_distributed = ?,
			sentiment = ?, sentiment_source = ?, summary = ?
		WHERE id = ?`,
		rawText, res.HCPName, res.Date, res.Time, res.TopicsDiscussed,
		materials, samples,
		res.Sentiment, res.SentimentSource, res.Summary, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update interaction: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}

	s.cache.Delete(id)
	return s.GetInteraction(ctx, id)
}

// ListInteractions returns all records, newest first
func (s *Store) ListInteractions(ctx context.Context) ([]model.InteractionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, raw_text, hcp_name, date, time, topics_discussed,
		       materials_shared, samples_distributed,
		       sentiment, sentiment_source, summary, created_at
		FROM interaction ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.InteractionRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*model.InteractionRecord, error) {
	rec := model.InteractionRecord{ExtractionResult: model.NewExtractionResult()}
	var materials, samples string

	err := row.Scan(
		&rec.ID, &rec.RawText, &rec.HCPName, &rec.Date, &rec.Time, &rec.TopicsDiscussed,
		&materials, &samples,
		&rec.Sentiment, &rec.SentimentSource, &rec.Summary, &rec.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan interaction: %w", err)
	}

	if err := json.Unmarshal([]byte(materials), &rec.MaterialsShared); err != nil || rec.MaterialsShared == nil {
		rec.MaterialsShared = []string{}
	}
	if err := json.Unmarshal([]byte(samples), &rec.SamplesDistributed); err != nil || rec.SamplesDistributed == nil {
		rec.SamplesDistributed = []string{}
	}
	return &rec, nil
}

func encodeLists(res model.ExtractionResult) (string, string, error) {
	materials, err := json.Marshal(res.MaterialsShared)
	if err != nil {
		return "", "", fmt.Errorf("encode materials: %w", err)
	}
	samples, err := json.Marshal(res.SamplesDistributed)
	if err != nil {
		return "", "", fmt.Errorf("encode samples: %w", err)
	}
	return string(materials), string(samples), nil
}
