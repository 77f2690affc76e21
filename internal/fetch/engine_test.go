package fetch

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/fieldworkhq/leadspider/internal/config"
)

func testEngine() *Engine {
	return NewEngine(config.EngineChromium, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// TestEngineLifecycle tests the acquisition bookkeeping that does not
// need a running browser process.
func TestEngineLifecycle(t *testing.T) {
	t.Parallel()

	t.Run("close without launch succeeds", func(t *testing.T) {
		t.Parallel()

		e := testEngine()
		if err := e.Close(); err != nil {
			t.Errorf("Close() = %v, want nil", err)
		}
	})

	t.Run("acquire after close fails", func(t *testing.T) {
		t.Parallel()

		e := testEngine()
		if err := e.Close(); err != nil {
			t.Fatalf("Close() = %v, want nil", err)
		}
		if _, err := e.Acquire(); !errors.Is(err, ErrEngineClosed) {
			t.Errorf("Acquire() error = %v, want ErrEngineClosed", err)
		}
	})

	t.Run("release nil context is safe", func(t *testing.T) {
		t.Parallel()

		e := testEngine()
		// A fetcher whose acquisition failed releases with no context;
		// the refcount must not go negative.
		e.Release(nil)
		e.Release(nil)
		if e.refs != 0 {
			t.Errorf("refs = %d, want 0", e.refs)
		}
	})

	t.Run("release decrements refcount", func(t *testing.T) {
		t.Parallel()

		e := testEngine()
		e.refs = 2
		e.Release(nil)
		if e.refs != 1 {
			t.Errorf("refs = %d, want 1", e.refs)
		}
	})
}
