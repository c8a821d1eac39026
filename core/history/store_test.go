package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()

	boltPath := filepath.Join(t.TempDir(), "history.db")
	bs, err := NewBolt(boltPath)
	require.NoError(t, err)
	t.Cleanup(func() { bs.Close() })

	return map[string]Store{
		"bolt":   bs,
		"memory": NewMemory(),
	}
}

func TestStoreAddGetList(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			seq1, err := s.Add("ls -l")
			require.NoError(t, err)
			seq2, err := s.Add("resize ./img -w 100")
			require.NoError(t, err)
			assert.Equal(t, seq1+1, seq2)

			line, err := s.Get(seq1)
			require.NoError(t, err)
			assert.Equal(t, "ls -l", line)

			entries, err := s.List()
			require.NoError(t, err)
			require.Len(t, entries, 2)
			assert.Equal(t, Entry{Seq: seq1, Text: "ls -l"}, entries[0])
			assert.Equal(t, Entry{Seq: seq2, Text: "resize ./img -w 100"}, entries[1])
		})
	}
}

func TestStoreGetMissing(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(42)
			assert.ErrorIs(t, err, ErrNoEntry)
		})
	}
}

func TestStoreClear(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Add("ls")
			require.NoError(t, err)
			require.NoError(t, s.Clear())

			entries, err := s.List()
			require.NoError(t, err)
			assert.Empty(t, entries)

			seq, err := s.Add("pwd")
			require.NoError(t, err)
			assert.Equal(t, 1, seq, "sequence restarts after clear")
		})
	}
}
