package history

import (
	"encoding/binary"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	bucketHistories = "Histories"
	bucketSessions  = "Sessions"
)

// BoltStorage implements Storage for BoltDB. Every session gets a nested
// bucket keyed by sequence numbers, so cursor order is insertion order.
type BoltStorage struct {
	db *bolt.DB
}

// Append adds word to session bucket
func (b *BoltStorage) Append(session string, word string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		sessionBucket, err := tx.Bucket([]byte(bucketHistories)).CreateBucketIfNotExists([]byte(session))
		if err != nil {
			return fmt.Errorf("failed to create session bucket: %w", err)
		}
		seq, err := sessionBucket.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to get sequence: %w", err)
		}
		if err := sessionBucket.Put(itob(seq), []byte(word)); err != nil {
			return fmt.Errorf("failed to put word: %w", err)
		}
		return tx.Bucket([]byte(bucketSessions)).Put([]byte(session), itob(uint64(time.Now().Unix())))
	})
}

// List returns words of session bucket in insertion order
func (b *BoltStorage) List(session string) ([]string, error) {
	words := []string{}
	if err := b.db.View(func(tx *bolt.Tx) error {
		sessionBucket := tx.Bucket([]byte(bucketHistories)).Bucket([]byte(session))
		if sessionBucket == nil {
			return nil
		}
		return sessionBucket.ForEach(func(_, v []byte) error {
			words = append(words, string(v))
			return nil
		})
	}); err != nil {
		return nil, err
	}
	return words, nil
}

// Forget removes session bucket
func (b *BoltStorage) Forget(session string) {
	_ = b.db.Update(func(tx *bolt.Tx) error {
		return b.delete(tx, []byte(session))
	})
}

// Sweep removes sessions without appends for longer than maxAge
func (b *BoltStorage) Sweep(maxAge time.Duration) (int, error) {
	threshold := uint64(time.Now().Add(-maxAge).Unix())
	var removed int
	err := b.db.Update(func(tx *bolt.Tx) error {
		var expired [][]byte
		err := tx.Bucket([]byte(bucketSessions)).ForEach(func(k, v []byte) error {
			if len(v) == 8 && binary.BigEndian.Uint64(v) < threshold {
				expired = append(expired, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, session := range expired {
			if err := b.delete(tx, session); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	return removed, err
}

func (b *BoltStorage) delete(tx *bolt.Tx, session []byte) error {
	if err := tx.Bucket([]byte(bucketHistories)).DeleteBucket(session); err != nil && err != bolt.ErrBucketNotFound {
		return fmt.Errorf("failed to delete session bucket: %w", err)
	}
	return tx.Bucket([]byte(bucketSessions)).Delete(session)
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// NewBoltStorage creates BoltStorage instance and initialize buckets
func NewBoltStorage(db *bolt.DB) (*BoltStorage, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range []string{bucketHistories, bucketSessions} {
			_, err := tx.CreateBucketIfNotExists([]byte(bucket))
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &BoltStorage{db: db}, nil
}
