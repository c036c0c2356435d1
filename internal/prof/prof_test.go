package prof

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		CPU:   filepath.Join(dir, "cpu.pprof"),
		Mem:   filepath.Join(dir, "mem.pprof"),
		Trace: filepath.Join(dir, "run.trace"),
	}
	s, err := Start(opts)
	require.NoError(t, err)
	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop())

	for _, path := range []string{opts.CPU, opts.Mem, opts.Trace} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Positive(t, info.Size(), path)
	}
}

func TestStartFailsOnBadPath(t *testing.T) {
	_, err := Start(Options{CPU: filepath.Join(t.TempDir(), "missing", "cpu.pprof")})
	require.Error(t, err)

	// профиль CPU должен быть остановлен, повторный старт проходит
	s, err := Start(Options{
		CPU:   filepath.Join(t.TempDir(), "cpu.pprof"),
		Trace: filepath.Join(t.TempDir(), "missing", "run.trace"),
	})
	require.Error(t, err)
	require.Nil(t, s)

	s, err = Start(Options{CPU: filepath.Join(t.TempDir(), "cpu.pprof")})
	require.NoError(t, err)
	require.NoError(t, s.Stop())
}

func TestNilSessionStop(t *testing.T) {
	var s *Session
	require.NoError(t, s.Stop())
}
