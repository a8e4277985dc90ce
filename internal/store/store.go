// Package store is the encrypted, append-only InteractionRecord table
// (spec §4.2). It follows the teacher's repository shape: schema applied
// via db.Exec at construction, indexed plaintext identifier columns plus
// an opaque encrypted blob, scan-rows-into-slice query helpers.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
	"go.uber.org/zap"

	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/cryptostore"
	"github.com/quantumbeats545-hub/sovereign-guardian-dojo/internal/domain"
)

// Store is the single logical owner of the record table; writes are
// serialized internally behind mu (spec §5 Shared-resource discipline).
type Store struct {
	db     *sql.DB
	keys   *cryptostore.KeyManager
	logger *zap.Logger
	mu     sync.Mutex
}

// Open opens (creating if necessary) the SQLite-backed encrypted record
// store at dbPath, using keys for at-rest encryption.
func Open(dbPath string, keys *cryptostore.KeyManager, logger *zap.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db, keys: keys, logger: logger}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	logger.Info("record store initialized", zap.String("db_path", dbPath))
	return s, nil
}

// OpenInMemory opens an ephemeral store backed by SQLite's in-memory mode,
// for arena sessions that do not need to persist records to disk.
func OpenInMemory(keys *cryptostore.KeyManager, logger *zap.Logger) (*Store, error) {
	return Open(":memory:", keys, logger)
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS interaction_records (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		guardian_id TEXT NOT NULL,
		generation INTEGER NOT NULL,
		round INTEGER NOT NULL,
		scenario_id TEXT NOT NULL,
		scenario_type TEXT NOT NULL,
		profile_type TEXT NOT NULL,
		decision TEXT NOT NULL,
		data TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_records_session ON interaction_records(session_id);
	CREATE INDEX IF NOT EXISTS idx_records_guardian ON interaction_records(guardian_id, round);
	CREATE INDEX IF NOT EXISTS idx_records_generation ON interaction_records(generation, round);
	CREATE INDEX IF NOT EXISTS idx_records_decision ON interaction_records(decision);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Insert writes a record, replacing any existing row with the same id
// (insert-or-replace, idempotent per spec §4.2).
func (s *Store) Insert(rec domain.InteractionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	plaintext, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("serialize record: %w", err)
	}

	blob, err := s.keys.Encrypt(plaintext)
	if err != nil {
		return fmt.Errorf("encrypt record: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO interaction_records (
			id, session_id, guardian_id, generation, round,
			scenario_id, scenario_type, profile_type, decision, data, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			session_id=excluded.session_id, guardian_id=excluded.guardian_id,
			generation=excluded.generation, round=excluded.round,
			scenario_id=excluded.scenario_id, scenario_type=excluded.scenario_type,
			profile_type=excluded.profile_type, decision=excluded.decision,
			data=excluded.data, created_at=excluded.created_at
	`,
		rec.ID, rec.SessionID, rec.GuardianID, rec.Generation, rec.Round,
		rec.ScenarioID, string(rec.ScenarioType), string(rec.ProfileType),
		string(rec.Decision), blob, rec.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}

	return nil
}

// ScanAll returns every record in the store, in no particular order.
func (s *Store) ScanAll() ([]domain.InteractionRecord, error) {
	return s.query(`SELECT data FROM interaction_records`)
}

// ScanByGuardian returns a guardian's records ordered by round (spec §4.2:
// insertion order into the store within a guardian is the round order).
func (s *Store) ScanByGuardian(guardianID string) ([]domain.InteractionRecord, error) {
	return s.query(`SELECT data FROM interaction_records WHERE guardian_id = ? ORDER BY round ASC`, guardianID)
}

// ScanByGeneration returns a generation's records ordered by round.
func (s *Store) ScanByGeneration(generation int) ([]domain.InteractionRecord, error) {
	return s.query(`SELECT data FROM interaction_records WHERE generation = ? ORDER BY round ASC`, generation)
}

func (s *Store) query(q string, args ...interface{}) ([]domain.InteractionRecord, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []domain.InteractionRecord
	for rows.Next() {
		var blob string
		if err := rows.Scan(&blob); err != nil {
			s.logger.Error("failed to scan record row", zap.Error(err))
			continue
		}

		plaintext, err := s.keys.Decrypt(blob)
		if err != nil {
			s.logger.Error("failed to decrypt record row", zap.Error(err))
			continue
		}

		var rec domain.InteractionRecord
		if err := json.Unmarshal(plaintext, &rec); err != nil {
			s.logger.Error("failed to decode record row", zap.Error(err))
			continue
		}
		out = append(out, rec)
	}

	return out, rows.Err()
}

// TotalCount returns the number of records in the store.
func (s *Store) TotalCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM interaction_records`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}

// CountByDecision returns the number of records for each decision value.
func (s *Store) CountByDecision() (map[domain.Decision]int, error) {
	rows, err := s.db.Query(`SELECT decision, COUNT(*) FROM interaction_records GROUP BY decision`)
	if err != nil {
		return nil, fmt.Errorf("count by decision: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.Decision]int)
	for rows.Next() {
		var decision string
		var count int
		if err := rows.Scan(&decision, &count); err != nil {
			return nil, fmt.Errorf("scan decision count: %w", err)
		}
		counts[domain.Decision(decision)] = count
	}
	return counts, rows.Err()
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
