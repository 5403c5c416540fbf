package main

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stepClock moves forward by one second on each call.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (sc *stepClock) Now() time.Time {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.now = sc.now.Add(time.Second)
	return sc.now
}

func TestCreateLogFilePath(t *testing.T) {
	ts := time.Date(2023, 7, 2, 13, 4, 5, 6, time.UTC)
	assert.Equal(t, filepath.Join("logs", "bookshelf.20230702.130405.000000006.dev.log"), CreateLogFilePath("logs", false, ts))
	assert.Equal(t, filepath.Join("logs", "bookshelf.20230702.130405.000000006.prod.log"), CreateLogFilePath("logs", true, ts))
}

func TestRSyncWrite_Rotation(t *testing.T) {
	folder := filepath.Join(t.TempDir(), "logs")
	rsw := NewRSyncWriter(&Config{LogFolder: folder, LogMaxSize: 1}, &stepClock{now: NewMockClocker().Now()})
	rsw.max = 10
	defer rsw.Close()

	assert.NoError(t, rsw.Sync())

	n, err := rsw.Write([]byte("12345678"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	_, err = rsw.Write([]byte("abcdef"))
	require.NoError(t, err)

	entries, err := os.ReadDir(folder)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	_, err = rsw.Write([]byte("this line is too long"))
	assert.Error(t, err)
	assert.NoError(t, rsw.Sync())
}

func TestSetupLogging(t *testing.T) {
	folder := t.TempDir()
	config := &Config{IsProduction: true, LogFolder: folder, LogMaxSize: 1, GitCommit: "abc123"}
	clock := NewClock(true)
	rsw := NewRSyncWriter(config, clock)
	logger, flusher := SetupLogging(config, rsw, NewTickClock(clock))
	logger.Info("hello bookshelf", zap.String("book.id", "b:0"))
	assert.NoError(t, flusher())
	require.NoError(t, rsw.Close())

	entries, err := os.ReadDir(folder)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	data, err := os.ReadFile(filepath.Join(folder, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello bookshelf"`)
	assert.Contains(t, string(data), `"app.commit":"abc123"`)
	assert.Contains(t, string(data), `"book.id":"b:0"`)
	assert.Contains(t, entries[0].Name(), ".prod.log")
}

func TestGetLoggerFromContext(t *testing.T) {
	api := newTestAPIHandler(&Config{}, nil)
	assert.Equal(t, api.logger, api.GetLoggerFromContext(context.Background()))

	requestLogger := zap.NewExample()
	ctx := context.WithValue(context.Background(), LoggerContextKey, requestLogger)
	assert.Equal(t, requestLogger, api.GetLoggerFromContext(ctx))
}
