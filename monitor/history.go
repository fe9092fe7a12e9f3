// Copyright (c) 2024-2025 Blockwatch Data Inc.
// Author: alex@blockwatch.cc

package monitor

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

var historyBucket = []byte("samples")

// History is a rolling window of samples in a bolt file. Keys are big
// endian unix milliseconds so range scans run in time order.
type History struct {
	mu        sync.Mutex
	db        *bolt.DB
	keep      time.Duration
	lastPrune time.Time
}

// OpenHistory opens or creates the sample store at path. Samples older
// than keep are pruned on the back of Put calls, keep <= 0 disables
// pruning.
func OpenHistory(path string, keep time.Duration, opts *bolt.Options) (*History, error) {
	db, err := bolt.Open(path, 0600, opts)
	if err != nil {
		return nil, fmt.Errorf("monitor: opening history failed: %v", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(historyBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("monitor: preparing history failed: %v", err)
	}
	return &History{db: db, keep: keep}, nil
}

func historyKey(t time.Time) []byte {
	var k [8]byte
	ms := t.UnixMilli()
	if ms < 0 {
		ms = 0
	}
	binary.BigEndian.PutUint64(k[:], uint64(ms))
	return k[:]
}

// Put stores one sample under its timestamp.
func (h *History) Put(s *Sample) error {
	buf, err := json.Marshal(s)
	if err != nil {
		return err
	}
	err = h.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(historyBucket).Put(historyKey(s.Timestamp), buf)
	})
	if err != nil {
		return err
	}
	h.maybePrune()
	return nil
}

// Walk calls fn for up to limit samples taken at or after since, oldest
// first, until fn returns an error. limit <= 0 means no limit.
func (h *History) Walk(since time.Time, limit int, fn func(*Sample) error) error {
	return h.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(historyBucket).Cursor()
		var n int
		for k, v := c.Seek(historyKey(since)); k != nil; k, v = c.Next() {
			s := &Sample{}
			if err := json.Unmarshal(v, s); err != nil {
				return fmt.Errorf("monitor: corrupt history entry: %v", err)
			}
			if err := fn(s); err != nil {
				return err
			}
			n++
			if limit > 0 && n == limit {
				break
			}
		}
		return nil
	})
}

// Range returns up to limit samples taken at or after since, oldest
// first. limit <= 0 means no limit.
func (h *History) Range(since time.Time, limit int) ([]*Sample, error) {
	var res []*Sample
	err := h.Walk(since, limit, func(s *Sample) error {
		res = append(res, s)
		return nil
	})
	return res, err
}

// Len returns the number of stored samples.
func (h *History) Len() (int, error) {
	var n int
	err := h.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(historyBucket).Stats().KeyN
		return nil
	})
	return n, err
}

// Prune drops samples older than the retention window.
func (h *History) Prune() (int, error) {
	if h.keep <= 0 {
		return 0, nil
	}
	cutoff := historyKey(time.Now().Add(-h.keep))
	var n int
	err := h.db.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket(historyBucket).Cursor()
		for k, _ := c.First(); k != nil && bytes.Compare(k, cutoff) < 0; k, _ = c.Next() {
			if err := c.Delete(); err != nil {
				return err
			}
			n++
		}
		return nil
	})
	return n, err
}

func (h *History) maybePrune() {
	if h.keep <= 0 {
		return
	}
	h.mu.Lock()
	due := time.Since(h.lastPrune) > time.Minute
	if due {
		h.lastPrune = time.Now()
	}
	h.mu.Unlock()
	if !due {
		return
	}
	if n, err := h.Prune(); err != nil {
		log.Errorf("monitor: history prune: %v", err)
	} else if n > 0 {
		log.Debugf("monitor: history pruned %d samples", n)
	}
}

// Path returns the bolt file location.
func (h *History) Path() string {
	return h.db.Path()
}

func (h *History) Close() error {
	return h.db.Close()
}
