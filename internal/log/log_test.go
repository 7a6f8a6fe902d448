package log

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := defaultLogger
	t.Cleanup(func() { defaultLogger = prev })

	var buf bytes.Buffer
	InitWriter(&buf)
	return &buf
}

func TestLog_FormatsFields(t *testing.T) {
	buf := captureLog(t)

	Warn(CatRegistry, "duplicate label", "base", "Shape", "label", "Circle")

	out := buf.String()
	require.Contains(t, out, "[WARN] [registry] duplicate label")
	require.Contains(t, out, "base=Shape")
	require.Contains(t, out, "label=Circle")
}

func TestLog_OddFieldCount(t *testing.T) {
	buf := captureLog(t)

	Info(CatUI, "orphan", "key")

	require.Contains(t, buf.String(), "key=<missing>")
}

func TestLog_MinLevelFilters(t *testing.T) {
	buf := captureLog(t)
	SetMinLevel(LevelWarn)

	Debug(CatCache, "hidden")
	Error(CatCache, "shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
}

func TestLog_Disabled(t *testing.T) {
	buf := captureLog(t)
	SetEnabled(false)

	Error(CatUI, "nope")

	require.Empty(t, buf.String())
}

func TestLog_ErrorErr(t *testing.T) {
	buf := captureLog(t)

	ErrorErr(CatDocument, "save failed", errors.New("disk full"), "path", "a.yaml")
	ErrorErr(CatDocument, "nil error", nil)

	require.Contains(t, buf.String(), "error=disk full")
	require.Contains(t, buf.String(), "error=<nil>")
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, LevelInfo, ParseLevel("INFO"))
	require.Equal(t, LevelWarn, ParseLevel("warning"))
	require.Equal(t, LevelError, ParseLevel(" error "))
	require.Equal(t, LevelDebug, ParseLevel("bogus"))
}

func TestRecent_KeepsLatestEntries(t *testing.T) {
	captureLog(t)

	for i := range historySize + 5 {
		Debug(CatUI, "tick", "n", i)
	}

	got := Recent(2)
	require.Len(t, got, 2)
	require.Contains(t, got[1].Line, fmt.Sprintf("n=%d", historySize+4))
	require.Equal(t, LevelDebug, got[1].Level)
	require.Equal(t, CatUI, got[1].Category)
	require.Len(t, Recent(10_000), historySize)

	ClearHistory()
	require.Empty(t, Recent(10))
}

func TestRecent_SkipsFilteredEntries(t *testing.T) {
	captureLog(t)
	SetMinLevel(LevelWarn)

	Info(CatUI, "hidden")
	Warn(CatUI, "shown")

	got := Recent(10)
	require.Len(t, got, 1)
	require.Contains(t, got[0].Line, "shown")
}

func TestSubscribe_ReceivesEntries(t *testing.T) {
	captureLog(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := Subscribe(ctx)
	Error(CatDocument, "save failed", "path", "scene.yaml")

	select {
	case ev := <-ch:
		require.Equal(t, LevelError, ev.Payload.Level)
		require.Contains(t, ev.Payload.Line, "[ERROR] [document] save failed path=scene.yaml")
	case <-time.After(time.Second):
		t.Fatal("no entry published")
	}
}
