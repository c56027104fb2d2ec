package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	jsontools "github.com/damian-dev1/json-tools-and-utilities"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNewRequiresHandler(t *testing.T) {
	t.Parallel()

	_, err := New(nil)
	assert.ErrorContains(t, err, "handler cannot be nil")
}

func TestWatcherCheck(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "ok.json", []byte(`{"a": 1}`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "fixable.json", []byte(`{'a': True,}`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "broken.json", []byte(`{"a": [1, 2`), 0o644))

	w, err := New(func(Result) {}, WithFs(fs))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	tests := []struct {
		name       string
		path       string
		wantReport string
		wantErr    error
	}{
		{name: "valid", path: "ok.json"},
		{name: "fixable", path: "fixable.json", wantReport: "fix_keywords, normalize_quotes, remove_trailing_commas"},
		{name: "broken", path: "broken.json", wantErr: jsontools.ErrRepairExhausted},
		{name: "missing", path: "none.json", wantErr: os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := w.Check(tt.path)
			assert.Equal(t, tt.path, res.Path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, res.Err, tt.wantErr)
				return
			}
			require.NoError(t, res.Err)
			assert.Equal(t, tt.wantReport, res.Repair.Report.String())
		})
	}
}

func TestWatcherRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))

	results := make(chan Result, 8)
	w, err := New(func(r Result) { results <- r }, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Add(path))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(path, []byte(`{'a': 1,}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{`), 0o600))

	select {
	case res := <-results:
		require.NoError(t, res.Err)
		assert.Equal(t, `{"a": 1}`, res.Repair.Text)
		assert.True(t, res.Repair.Changed())
	case <-time.After(5 * time.Second):
		t.Fatal("no repair result received")
	}

	cancel()
	require.NoError(t, <-done)
	assert.NoError(t, w.Close())
}
