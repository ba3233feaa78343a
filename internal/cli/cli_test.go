package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/domaingen/internal/cli"
	"github.com/aretw0/domaingen/internal/logging"
	"github.com/aretw0/domaingen/pkg/config"
	"github.com/aretw0/domaingen/pkg/domain"
	"github.com/aretw0/domaingen/pkg/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = []domain.Command{
	{"createSelectionCriterion", "exclusive", "Mode", "Normal", "In Call"},
	{"start"},
}

func TestWriteScript(t *testing.T) {
	t.Run("framed", func(t *testing.T) {
		var buf bytes.Buffer
		n, err := cli.WriteScript(&buf, slices.Values(sample), cli.FormatFramed, "", nil)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, "createSelectionCriterion\x00exclusive\x00Mode\x00Normal\x00In Call\nstart\n", buf.String())

		back, err := script.ReadAll(&buf)
		require.NoError(t, err)
		assert.Equal(t, sample, back)
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := cli.WriteScript(&buf, slices.Values(sample), cli.FormatText, "", nil)
		require.NoError(t, err)
		assert.Equal(t, "createSelectionCriterion exclusive Mode Normal \"In Call\"\nstart\n", buf.String())
	})

	t.Run("markdown raw and rendered", func(t *testing.T) {
		var raw bytes.Buffer
		_, err := cli.WriteScript(&raw, slices.Values(sample), cli.FormatMarkdown, "Script", nil)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(raw.String(), "# Script\n"))

		var rendered bytes.Buffer
		upper := func(s string) (string, error) { return strings.ToUpper(s), nil }
		_, err = cli.WriteScript(&rendered, slices.Values(sample), cli.FormatMarkdown, "Script", upper)
		require.NoError(t, err)
		assert.Equal(t, strings.ToUpper(raw.String()), rendered.String())
	})

	t.Run("unframeable command", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := cli.WriteScript(&buf, slices.Values([]domain.Command{{}}), cli.FormatFramed, "", nil)
		var ee *script.EncodeError
		assert.ErrorAs(t, err, &ee)
	})
}

func TestParseFormat(t *testing.T) {
	f, err := cli.ParseFormat("text")
	require.NoError(t, err)
	assert.Equal(t, cli.FormatText, f)

	_, err = cli.ParseFormat("yaml")
	assert.Equal(t, domain.ExitConfig, domain.ExitCode(err))
}

func TestNewLogger(t *testing.T) {
	_, err := cli.NewLogger(config.Config{LogLevel: "warn"})
	assert.NoError(t, err)

	_, err = cli.NewLogger(config.Config{LogLevel: "loud"})
	var ce *domain.ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, config.FlagLogLevel, ce.Field)
}

func TestOpenOutput(t *testing.T) {
	f, closeFn, err := cli.OpenOutput("-")
	require.NoError(t, err)
	assert.Same(t, os.Stdout, f)
	assert.NoError(t, closeFn())

	path := filepath.Join(t.TempDir(), "out.txt")
	f, closeFn, err = cli.OpenOutput(path)
	require.NoError(t, err)
	_, err = f.WriteString("x")
	require.NoError(t, err)
	require.NoError(t, closeFn())
	assert.FileExists(t, path)

	_, _, err = cli.OpenOutput(filepath.Join(t.TempDir(), "missing", "out.txt"))
	assert.Equal(t, domain.ExitInputFormat, domain.ExitCode(err))
}

func TestWatcher_RegeneratesOnChange(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "rules.edd")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(watched, []byte("domain: A\n"), 0o644))

	w, err := cli.NewWatcher([]string{watched}, 20*time.Millisecond, logging.NewNop())
	require.NoError(t, err)

	var runs atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) error {
			if runs.Add(1) == 2 {
				return errors.New("regeneration errors do not stop watching")
			}
			return nil
		})
	}()

	require.Eventually(t, func() bool { return runs.Load() == 1 }, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load(), "unrelated files are ignored")

	require.NoError(t, os.WriteFile(watched, []byte("domain: B\n"), 0o644))
	require.Eventually(t, func() bool { return runs.Load() == 2 }, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, os.WriteFile(watched, []byte("domain: C\n"), 0o644))
	require.Eventually(t, func() bool { return runs.Load() == 3 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on cancellation")
	}
}

func TestSignalContext_CancelWithoutSignal(t *testing.T) {
	sc := cli.NewSignalContext(context.Background())
	sc.Cancel()
	<-sc.Done()
	assert.Nil(t, sc.Signal())
}
