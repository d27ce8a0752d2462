package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ohmynofan/token-balance-checker/internal/domain/model"
)

type balanceWorker struct{}

func TestFileLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	require.NoError(t, Init(path))
	t.Cleanup(func() { _ = Close() })

	NewLogger(&balanceWorker{}, nil).JustLog("plain message")
	NewNamed("Check - Account 2", &model.Session{AccIdx: 1}).Log("session message")
	NewNamed("Dump", nil).LogObject("object", struct{ Symbol string }{"DAI"})

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(raw)

	assert.Contains(t, out, "[balanceWorker][TestFileLogging] plain message")
	assert.Contains(t, out, "[Check - Account 2][TestFileLogging] session message")
	assert.Contains(t, out, "[Dump][TestFileLogging] object")
	assert.Contains(t, out, `"Symbol": "DAI"`)
	assert.NotContains(t, out, "[LogObject]")
}

func TestShortenForDisplay(t *testing.T) {
	assert.Equal(t, "short", shortenForDisplay("short"))

	long := make([]rune, 200)
	for i := range long {
		long[i] = 'x'
	}
	got := []rune(shortenForDisplay(string(long)))
	assert.Len(t, got, 140)
	assert.Equal(t, '…', got[139])
}
