package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLinesRecorder(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLinesLogRecorder(&buf).NewSession()

	require.NoError(t, log.Record(&Entry{Event: EventLine, Line: "ls -l"}))
	require.NoError(t, log.Record(&Entry{Event: EventInvocation, Command: "ls", Kind: "builtin"}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first Entry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, EventLine, first.Event)
	assert.Equal(t, "ls -l", first.Line)
	assert.NotZero(t, first.TimestampMicros)
	assert.NotEmpty(t, first.SessionID)

	var second Entry
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, first.SessionID, second.SessionID, "one session shares one ID")
}

func TestNopRecorderDiscards(t *testing.T) {
	log := NewNopLogRecorder().NewSession()
	assert.NoError(t, log.Record(&Entry{Event: EventResult}))
}
