// Package badger provides the SeenStore, a small BadgerDB key/value store
// used for cross-run bookkeeping: which scraped postings have already been
// ingested, and which jobs a recipient has already been notified about.
package badger

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/r-yashaswini/job-recommender-system/core"
)

// Key prefixes for the two record kinds.
const (
	scrapedPrefix  = "scraped"
	notifiedPrefix = "notified"
)

// SeenStore wraps a BadgerDB instance.
type SeenStore struct {
	db     *badger.DB
	logger *slog.Logger
}

// badgerLoggerAdapter adapts slog.Logger to the badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// Open opens a SeenStore at the given path, creating the directory if
// needed. With inMemory set, path is ignored and nothing touches disk.
func Open(filePath string, inMemory bool) (*SeenStore, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		info, err := os.Stat(filePath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
			if err := os.MkdirAll(filePath, 0755); err != nil {
				return nil, err
			}
			info, err = os.Stat(filePath)
			if err != nil {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", filePath)
		}
		opts = badger.DefaultOptions(filePath)
	}

	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &SeenStore{
		db:     db,
		logger: slog.Default().With("component", "seen-store"),
	}, nil
}

// Close closes the underlying database.
func (s *SeenStore) Close() error {
	return s.db.Close()
}

// SeenScraped reports whether a posting with this dedup key was already
// ingested in a previous run.
func (s *SeenStore) SeenScraped(key core.ID) (bool, error) {
	return s.has(makeKey(scrapedPrefix, key))
}

// MarkScraped records a posting's dedup key.
func (s *SeenStore) MarkScraped(key core.ID) error {
	return s.put(makeKey(scrapedPrefix, key))
}

// Notified reports whether the recipient was already told about the job.
func (s *SeenStore) Notified(recipient string, jobID int64) (bool, error) {
	return s.has(makeNotifiedKey(recipient, jobID))
}

// MarkNotified records a delivered (recipient, job) pair.
func (s *SeenStore) MarkNotified(recipient string, jobID int64) error {
	return s.put(makeNotifiedKey(recipient, jobID))
}

func (s *SeenStore) has(key []byte) (bool, error) {
	err := s.db.View(func(tx *badger.Txn) error {
		_, err := tx.Get(key)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// put stores the current time as the value. The timestamp is not read back
// today but makes the store inspectable.
func (s *SeenStore) put(key []byte) error {
	value := make([]byte, 8)
	binary.BigEndian.PutUint64(value, uint64(time.Now().UnixMicro()))
	return s.db.Update(func(tx *badger.Txn) error {
		return tx.Set(key, value)
	})
}

// makeKey generates a key in the form prefix:id with the id in BigEndian so
// keys sort lexicographically by value.
func makeKey(prefix string, id core.ID) []byte {
	prefixBytes := []byte(prefix + ":")
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeNotifiedKey hashes the (recipient, job) pair into the key space.
func makeNotifiedKey(recipient string, jobID int64) []byte {
	id := core.IDFromContent(fmt.Sprintf("%s|%d", recipient, jobID))
	return makeKey(notifiedPrefix, id)
}
