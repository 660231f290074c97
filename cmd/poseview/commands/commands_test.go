package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/poseview/internal/pose"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootCommand_HelpListsSubcommands(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	for _, name := range []string{"serve-dummy", "gen", "feed", "dump"} {
		assert.Contains(t, out, name)
	}
}

func TestRootCommand_RejectsUnknownFlags(t *testing.T) {
	_, err := execute(t, "--unknown-flag", "value")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown flag")
}

func TestGen_PrintsWindowAsJSONArray(t *testing.T) {
	out, err := execute(t, "gen", "--count", "3", "--offset", "2", "--label", "pose-a")
	require.NoError(t, err)

	var records []pose.Record
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 3)
	assert.Equal(t, int64(3), records[0].SequentialID)
	assert.Equal(t, int64(5), records[2].SequentialID)
	assert.Equal(t, "pose-a", records[0].Label)
	assert.Contains(t, records[0].Data, pose.KeyRotationW)

	// Every printed record decodes as a full sample.
	raw, err := json.Marshal(records[1])
	require.NoError(t, err)
	s, err := pose.Decode(raw)
	require.NoError(t, err)
	assert.True(t, s.HasPosition())
	assert.True(t, s.HasRotation())
}

func TestGen_RejectsNegativeCount(t *testing.T) {
	_, err := execute(t, "gen", "--count", "-1")
	require.Error(t, err)
}

func TestFeedThenDump(t *testing.T) {
	mr := miniredis.RunT(t)

	out, err := execute(t, "feed", "--redis-addr", mr.Addr(), "--stream", "poses", "--count", "5", "--interval", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "added 5 entries to poses")

	out, err = execute(t, "dump", "poses", "--host", mr.Host(), "--port", mr.Port(), "-i", "1", "-c", "2")
	require.NoError(t, err)

	var entries []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "2", entries[0]["sequential_id"])
	assert.Equal(t, "3", entries[1]["sequential_id"])
	assert.Contains(t, entries[0], pose.KeyPositionX)
}

func TestFeed_ClearsExistingStream(t *testing.T) {
	mr := miniredis.RunT(t)

	for i := 0; i < 2; i++ {
		_, err := execute(t, "feed", "--redis-addr", mr.Addr(), "--stream", "poses", "--count", "3", "--interval", "0")
		require.NoError(t, err)
	}
	out, err := execute(t, "dump", "poses", "--host", mr.Host(), "--port", mr.Port(), "-c", "100")
	require.NoError(t, err)

	var entries []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Len(t, entries, 3)
}

func TestDump_WritesOutputFile(t *testing.T) {
	mr := miniredis.RunT(t)
	_, err := execute(t, "feed", "--redis-addr", mr.Addr(), "--stream", "poses", "--count", "2", "--interval", "0")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "dump.json")
	_, err = execute(t, "dump", "poses", "--host", mr.Host(), "--port", mr.Port(), "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entries []map[string]string
	require.NoError(t, json.Unmarshal(data, &entries))
	assert.Len(t, entries, 2)
}

func TestDump_RequiresStreamName(t *testing.T) {
	_, err := execute(t, "dump")
	require.Error(t, err)
}

func TestFeed_FailsWhenRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := execute(t, "feed", "--redis-addr", addr, "--count", "1", "--interval", "0")
	require.Error(t, err)
}
