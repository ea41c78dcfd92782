package log_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/k0sproject/conninfo/log"
	"github.com/stretchr/testify/require"
)

type component struct {
	log.LoggerInjectable
}

func TestLoggerInjectable(t *testing.T) {
	c := &component{}
	require.False(t, c.HasLogger())
	require.Equal(t, log.Null, c.Log())

	var buf bytes.Buffer
	log.InjectLogger(log.NewText(&buf, slog.LevelInfo), c, log.KeyAlias, "web")
	require.True(t, c.HasLogger())

	c.Log().Info("hello", log.KeyUser, "alice")
	require.Equal(t, "level=INFO msg=hello alias=web user=alice\n", buf.String())

	buf.Reset()
	c.LogWithAttrs(log.ErrorAttr(errors.New("boom"))).Error("failed")
	require.Equal(t, "level=ERROR msg=failed alias=web error=boom\n", buf.String())
}

func TestInjectLoggerNotInjectable(t *testing.T) {
	require.NotPanics(t, func() {
		log.InjectLogger(log.Null, struct{}{})
	})
}

func TestTrace(t *testing.T) {
	var buf bytes.Buffer
	log.SetTraceLogger(log.NewText(&buf, slog.LevelDebug))
	t.Cleanup(func() { log.SetTraceLogger(nil) })

	log.Trace(context.Background(), "reading", log.FileAttr("/tmp/key"))
	require.Equal(t, "level=DEBUG msg=reading file=/tmp/key\n", buf.String())

	buf.Reset()
	log.SetTraceLogger(nil)
	log.Trace(context.Background(), "dropped")
	require.Empty(t, buf.String())
}

func TestTraceConcurrentSwap(t *testing.T) {
	t.Cleanup(func() { log.SetTraceLogger(nil) })

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				log.SetTraceLogger(slog.New(log.Discard))
				log.SetTraceLogger(nil)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				log.Trace(context.Background(), "tick")
			}
		}()
	}
	wg.Wait()
}

func TestDiscard(t *testing.T) {
	require.False(t, log.Discard.Enabled(context.Background(), slog.LevelError))
}
