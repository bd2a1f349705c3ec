package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dashreport/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/dashreport/internal/core/domain"
	"github.com/custodia-labs/dashreport/internal/core/services"
	"github.com/custodia-labs/dashreport/internal/normalisers"
)

func sample(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "dash_report.txt"))
	require.NoError(t, err)
	return data
}

type harness struct {
	store   *memory.ReportStore
	results chan Result
	cancel  context.CancelFunc
	done    chan error
}

func start(t *testing.T, dir string, initialScan bool) *harness {
	t.Helper()
	store := memory.NewReportStore()
	svc := services.NewReportService(store, normalisers.Default(), nil)
	h := &harness{store: store, results: make(chan Result, 10), done: make(chan error, 1)}

	w, err := NewWatcher(svc, Config{
		Dir:         dir,
		Debounce:    50 * time.Millisecond,
		InitialScan: initialScan,
		OnResult:    func(r Result) { h.results <- r },
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go func() { h.done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case <-h.done:
		case <-time.After(2 * time.Second):
			t.Error("watcher did not stop")
		}
	})
	return h
}

func (h *harness) next(t *testing.T) Result {
	t.Helper()
	select {
	case r := <-h.results:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch result")
		return Result{}
	}
}

func TestNewWatcher_Validation(t *testing.T) {
	_, err := NewWatcher(nil, Config{Dir: "."})
	assert.ErrorIs(t, err, ErrMissingReportService)

	svc := services.NewReportService(memory.NewReportStore(), normalisers.Default(), nil)
	_, err = NewWatcher(svc, Config{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRun_MissingDirectory(t *testing.T) {
	svc := services.NewReportService(memory.NewReportStore(), normalisers.Default(), nil)
	w, err := NewWatcher(svc, Config{Dir: filepath.Join(t.TempDir(), "missing")})
	require.NoError(t, err)

	assert.Error(t, w.Run(context.Background()))
}

func TestRun_ParsesNewFile(t *testing.T) {
	dir := t.TempDir()
	h := start(t, dir, false)
	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.png"), []byte("x"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dash.txt"), sample(t), 0600))

	r := h.next(t)
	require.NoError(t, r.Err)
	assert.Equal(t, filepath.Join(dir, "dash.txt"), r.Path)

	stored, err := h.store.Get(context.Background(), r.Report.ID)
	require.NoError(t, err)
	assert.Equal(t, "dash.txt", stored.FileName)
}

func TestRun_InitialScan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "existing.txt"), sample(t), 0600))

	h := start(t, dir, true)

	r := h.next(t)
	require.NoError(t, r.Err)
	assert.Equal(t, "existing.txt", r.Report.FileName)
}

func TestRun_ReportsParseErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "garbled.txt"), []byte{0xff, 0xfe, 0xfd}, 0600))

	h := start(t, dir, true)

	r := h.next(t)
	assert.ErrorIs(t, r.Err, domain.ErrInvalidInput)
	assert.Nil(t, r.Report)
}

func TestRun_StopsOnCancel(t *testing.T) {
	h := start(t, t.TempDir(), false)

	h.cancel()

	select {
	case err := <-h.done:
		assert.NoError(t, err)
		h.done <- err
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
