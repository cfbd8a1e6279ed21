// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package database

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/assessrec/internal/logging"
	"github.com/tomtom215/assessrec/internal/recommend"
)

// Key prefixes for BadgerDB storage
const (
	feedbackKeyPrefix    = "feedback:"
	interactionKeyPrefix = "interaction:"
	feedbackSequenceKey  = "seq:feedback"
)

// maxConflictRetries bounds optimistic-transaction retries on accumulate.
const maxConflictRetries = 5

// badgerStore keeps the feedback log under sequence-ordered keys and one
// accumulated record per (user, item) pair.
type badgerStore struct {
	db  *badger.DB
	seq *badger.Sequence
}

// openBadger opens a Badger directory. An empty path or ":memory:" opens
// an in-memory instance.
func openBadger(path string) (*badgerStore, error) {
	var opts badger.Options
	if isMemoryPath(path) {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	seq, err := db.GetSequence([]byte(feedbackSequenceKey), 100)
	if err != nil {
		closeQuietly(db)
		return nil, fmt.Errorf("feedback sequence: %w", err)
	}

	return &badgerStore{db: db, seq: seq}, nil
}

func feedbackKey(n uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", feedbackKeyPrefix, n))
}

func interactionKey(userID string, itemID int) []byte {
	return []byte(interactionKeyPrefix + userID + "\x00" + strconv.Itoa(itemID))
}

func (s *badgerStore) SaveFeedback(_ context.Context, ev *recommend.FeedbackEvent) error {
	n, err := s.seq.Next()
	if err != nil {
		return fmt.Errorf("next feedback id: %w", err)
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal feedback: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(feedbackKey(n), data)
	})
}

func (s *badgerStore) LoadRecentFeedback(_ context.Context, limit int) ([]recommend.FeedbackEvent, error) {
	var events []recommend.FeedbackEvent

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(feedbackKeyPrefix)
		seek := append([]byte(feedbackKeyPrefix), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(events) >= limit {
				break
			}
			var ev recommend.FeedbackEvent
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &ev)
			})
			if err != nil {
				logging.Debug().Err(err).Msg("Skipping unreadable feedback record")
				continue
			}
			events = append(events, ev)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load feedback: %w", err)
	}
	return events, nil
}

// SaveInteraction adds delta to the stored score inside one transaction,
// retrying on write conflicts.
func (s *badgerStore) SaveInteraction(_ context.Context, userID string, itemID int, delta float64, at time.Time) error {
	key := interactionKey(userID, itemID)

	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		err = s.db.Update(func(txn *badger.Txn) error {
			rec := recommend.StoredInteraction{UserID: userID, ItemID: itemID}

			item, getErr := txn.Get(key)
			switch {
			case errors.Is(getErr, badger.ErrKeyNotFound):
			case getErr != nil:
				return getErr
			default:
				if valErr := item.Value(func(val []byte) error {
					return json.Unmarshal(val, &rec)
				}); valErr != nil {
					return valErr
				}
			}

			rec.Score += delta
			rec.LastActivity = at.UTC()

			data, mErr := json.Marshal(rec)
			if mErr != nil {
				return mErr
			}
			return txn.Set(key, data)
		})
		if !errors.Is(err, badger.ErrConflict) {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("upsert interaction: %w", err)
	}
	return nil
}

func (s *badgerStore) LoadInteractions(_ context.Context) ([]recommend.StoredInteraction, error) {
	var out []recommend.StoredInteraction

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(interactionKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec recommend.StoredInteraction
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			out = append(out, rec)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load interactions: %w", err)
	}
	return out, nil
}

func (s *badgerStore) Statistics(_ context.Context) (recommend.Statistics, error) {
	var stats recommend.Statistics
	users := make(map[string]struct{})

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(feedbackKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var ev recommend.FeedbackEvent
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &ev)
			}); err != nil {
				return err
			}
			stats.FeedbackCount++
			users[ev.UserID] = struct{}{}
		}

		keysOnly := badger.DefaultIteratorOptions
		keysOnly.PrefetchValues = false
		kit := txn.NewIterator(keysOnly)
		defer kit.Close()

		prefix = []byte(interactionKeyPrefix)
		for kit.Seek(prefix); kit.ValidForPrefix(prefix); kit.Next() {
			stats.InteractionCount++
		}
		return nil
	})
	if err != nil {
		return recommend.Statistics{}, fmt.Errorf("statistics: %w", err)
	}
	stats.UniqueUsers = len(users)
	return stats, nil
}

func (s *badgerStore) VerifyHealth(_ context.Context) bool {
	if s.db.IsClosed() {
		return false
	}
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(feedbackSequenceKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		logging.Error().Err(err).Str("driver", DriverBadger).Msg("Database health check failed")
		return false
	}
	return true
}

func (s *badgerStore) Close() error {
	return errors.Join(s.seq.Release(), s.db.Close())
}
