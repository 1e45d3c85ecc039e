// Package tracedb persists captured traces and run metadata in a SQLite
// database, one row per segment.
package tracedb

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"time"

	// Your main or test packages require this import so the sql package is properly initialized.
	_ "github.com/mattn/go-sqlite3"
)

const (
	// bufferSize of the in-memory buffer for trace rows
	bufferSize = 1000

	insertTraceSQL = `
INSERT INTO traces (
	wave, plaintext, digest, key
) VALUES (
	?, ?, ?, ?
)
`

	insertMetadataSQL = `
INSERT INTO metadata (
	datetime, cfg, notes
) VALUES (
	?, ?, ?
)
`

	createSQL = `
PRAGMA journal_mode = MEMORY;
CREATE TABLE IF NOT EXISTS traces (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	wave BLOB,
	plaintext BLOB,
	digest BLOB,
	key BLOB
);
CREATE TABLE IF NOT EXISTS metadata (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	createTimestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
	datetime TEXT,
	cfg TEXT,
	notes TEXT
);
`
)

type trace struct {
	wave      []uint16
	plaintext []byte
	digest    []byte
	key       []byte
}

// Store is a SQLite-backed trace database. Appends are buffered and written
// in one transaction per flush.
type Store struct {
	sql       *sql.DB
	traceStmt *sql.Stmt
	buffer    []trace
}

// NewStore opens or creates the trace database at dbFile.
func NewStore(dbFile string) (*Store, error) {
	sqlDB, err := sql.Open("sqlite3", dbFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %v; %v", dbFile, err)
	}
	if _, err = sqlDB.Exec(createSQL); err != nil {
		return nil, fmt.Errorf("failed to create trace schema; %v", err)
	}
	traceStmt, err := sqlDB.Prepare(insertTraceSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare trace insert; %v", err)
	}
	return &Store{
		sql:       sqlDB,
		traceStmt: traceStmt,
		buffer:    make([]trace, 0, bufferSize),
	}, nil
}

// Append adds one captured segment. The arguments are copied; callers may
// reuse their buffers. Key may be nil for unkeyed algorithms.
func (s *Store) Append(wave []uint16, plaintext, digest, key []byte) error {
	s.buffer = append(s.buffer, trace{
		wave:      append([]uint16(nil), wave...),
		plaintext: append([]byte(nil), plaintext...),
		digest:    append([]byte(nil), digest...),
		key:       append([]byte(nil), key...),
	})
	if len(s.buffer) == cap(s.buffer) {
		if err := s.Flush(); err != nil {
			return fmt.Errorf("unable to flush traces: %w", err)
		}
	}
	return nil
}

// Flush writes buffered trace rows to the database.
func (s *Store) Flush() error {
	tx, err := s.sql.Begin()
	if err != nil {
		return err
	}
	for _, t := range s.buffer {
		_, err := tx.Stmt(s.traceStmt).Exec(encodeWave(t.wave), t.plaintext, t.digest, t.key)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	// Buffered rows survive a failed flush and go out with the next one.
	s.buffer = s.buffer[:0]
	return nil
}

// WriteMetadata records the capture run parameters next to the traces.
func (s *Store) WriteMetadata(cfg, notes string) error {
	_, err := s.sql.Exec(insertMetadataSQL, time.Now().Format("01/02/2006, 15:04:05"), cfg, notes)
	if err != nil {
		return fmt.Errorf("failed to write metadata; %v", err)
	}
	return nil
}

// NumTraces returns the number of persisted trace rows.
func (s *Store) NumTraces() (int, error) {
	var n int
	if err := s.sql.QueryRow("SELECT COUNT(*) FROM traces").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Trace returns the persisted segment with the given 1-based row id.
func (s *Store) Trace(id int) (wave []uint16, plaintext, digest, key []byte, err error) {
	var waveBlob []byte
	row := s.sql.QueryRow("SELECT wave, plaintext, digest, key FROM traces WHERE id = ?", id)
	if err := row.Scan(&waveBlob, &plaintext, &digest, &key); err != nil {
		return nil, nil, nil, nil, err
	}
	return decodeWave(waveBlob), plaintext, digest, key, nil
}

// Close flushes the buffer and closes the database.
func (s *Store) Close() error {
	defer func() {
		s.traceStmt.Close()
		s.sql.Close()
	}()
	return s.Flush()
}

// encodeWave packs samples as little-endian uint16, matching the wave dtype
// the analysis tooling expects.
func encodeWave(wave []uint16) []byte {
	out := make([]byte, 2*len(wave))
	for i, v := range wave {
		binary.LittleEndian.PutUint16(out[2*i:], v)
	}
	return out
}

func decodeWave(blob []byte) []uint16 {
	wave := make([]uint16, len(blob)/2)
	for i := range wave {
		wave[i] = binary.LittleEndian.Uint16(blob[2*i:])
	}
	return wave
}
