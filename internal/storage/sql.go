package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// SQLStore keeps documents in the learner_documents table created by the
// database migrations. It works with both the postgres and sqlite3 drivers.
type SQLStore struct {
	db          *sql.DB
	selectQuery string
	upsertQuery string
}

func NewPostgresStore(db *sql.DB) *SQLStore {
	return &SQLStore{
		db: db,
		selectQuery: `SELECT body FROM learner_documents
		 WHERE learner_id = $1 AND kind = $2`,
		upsertQuery: `INSERT INTO learner_documents (learner_id, kind, body, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (learner_id, kind) DO UPDATE SET body = EXCLUDED.body, updated_at = NOW()`,
	}
}

func NewSQLiteStore(db *sql.DB) *SQLStore {
	return &SQLStore{
		db: db,
		selectQuery: `SELECT body FROM learner_documents
		 WHERE learner_id = ? AND kind = ?`,
		upsertQuery: `INSERT INTO learner_documents (learner_id, kind, body, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (learner_id, kind) DO UPDATE SET body = excluded.body, updated_at = CURRENT_TIMESTAMP`,
	}
}

func (s *SQLStore) Load(ctx context.Context, learnerID string, kind Kind, dst any) (bool, error) {
	if err := ValidateLearnerID(learnerID); err != nil {
		return false, err
	}

	var body []byte
	err := s.db.QueryRowContext(ctx, s.selectQuery, learnerID, string(kind)).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s document: %w", kind, err)
	}

	return decodeDocument(body, learnerID, kind, dst), nil
}

func (s *SQLStore) Save(ctx context.Context, learnerID string, kind Kind, v any) error {
	if err := ValidateLearnerID(learnerID); err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s document: %w", kind, err)
	}

	if _, err := s.db.ExecContext(ctx, s.upsertQuery, learnerID, string(kind), string(data)); err != nil {
		return fmt.Errorf("save %s document: %w", kind, err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
