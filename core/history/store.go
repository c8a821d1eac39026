// Package history persists the ordered log of command lines typed into a
// session.
package history

import (
	"encoding/binary"
	"errors"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// ErrNoEntry is returned when a sequence number matches no logged line.
var ErrNoEntry = errors.New("no history entry with that sequence number")

// Entry is one logged command line. Seq starts at 1 and never repeats within
// one log, even after deletions.
type Entry struct {
	Seq  int
	Text string
}

// Store is an appendable ordered log of past command lines.
type Store interface {
	// Add appends a line and returns its sequence number.
	Add(line string) (int, error)
	// Get returns the line with the given sequence number.
	Get(seq int) (string, error)
	// List returns all entries in sequence order.
	List() ([]Entry, error)
	// Clear removes every entry and resets the sequence counter.
	Clear() error
	Close() error
}

const bucketCmd = "cmd"

type boltStore struct {
	db *bolt.DB
}

// NewBolt opens (creating if needed) a file-backed store.
func NewBolt(path string) (Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCmd))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &boltStore{db: db}, nil
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}

func (s *boltStore) Add(line string) (int, error) {
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCmd))
		var err error
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), []byte(line))
	})
	return int(seq), err
}

func (s *boltStore) Get(seq int) (string, error) {
	var line string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCmd))
		v := b.Get(marshalSeq(uint64(seq)))
		if v == nil {
			return ErrNoEntry
		}
		line = string(v)
		return nil
	})
	return line, err
}

func (s *boltStore) List() ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCmd))
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			entries = append(entries, Entry{Seq: int(unmarshalSeq(k)), Text: string(v)})
		}
		return nil
	})
	return entries, err
}

func (s *boltStore) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketCmd)); err != nil {
			return err
		}
		_, err := tx.CreateBucket([]byte(bucketCmd))
		return err
	})
}

func (s *boltStore) Close() error {
	return s.db.Close()
}

type memStore struct {
	mu      sync.Mutex
	entries []Entry
	nextSeq int
}

// NewMemory returns a store that lives only as long as the session. Used when
// no history file is configured and in tests.
func NewMemory() Store {
	return &memStore{nextSeq: 1}
}

func (s *memStore) Add(line string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seq := s.nextSeq
	s.nextSeq++
	s.entries = append(s.entries, Entry{Seq: seq, Text: line})
	return seq, nil
}

func (s *memStore) Get(seq int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.Seq == seq {
			return e.Text, nil
		}
	}
	return "", ErrNoEntry
}

func (s *memStore) List() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *memStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.nextSeq = 1
	return nil
}

func (s *memStore) Close() error {
	return nil
}
