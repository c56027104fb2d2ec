package cli

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	jsontools "github.com/damian-dev1/json-tools-and-utilities"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// database/sql keeps a connection opener per pool until the pool is closed
		goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"),
		// signal.NotifyContext starts the runtime signal loop once per process
		goleak.IgnoreTopFunction("os/signal.signal_recv"),
		goleak.IgnoreAnyFunction("os/signal.loop"),
	)
}

type testRun struct {
	stdout string
	stderr string
	err    error
}

type testEnv struct {
	fs    afero.Fs
	env   map[string]string
	stdin string
}

func (e testEnv) run(ctx context.Context, args ...string) testRun {
	if e.fs == nil {
		e.fs = afero.NewMemMapFs()
	}
	var stdout, stderr bytes.Buffer
	a := &app{
		fs:        e.fs,
		in:        strings.NewReader(e.stdin),
		out:       &stdout,
		errOut:    &stderr,
		lookupEnv: envLookup(e.env),
	}

	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return testRun{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeFiles(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
}

func TestRootCommand(t *testing.T) {
	t.Parallel()

	cmd := NewRoot()
	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
		assert.NotEmpty(t, sub.Short, sub.Name())
		assert.NotNil(t, sub.RunE, sub.Name())
	}
	for _, want := range []string{"repair", "convert", "load", "paths", "watch", "mcp"} {
		assert.Contains(t, names, want)
	}
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("verbose"))

	res := testEnv{}.run(context.Background())
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Usage:")
}

func TestRootExplicitConfigMissing(t *testing.T) {
	t.Parallel()

	res := testEnv{stdin: `{}`}.run(context.Background(), "repair", "--config", "none.yaml")
	assert.ErrorIs(t, res.err, os.ErrNotExist)
}

func TestRepairCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		stdin      string
		files      map[string]string
		args       []string
		wantStdout string
		wantStderr string
		wantErr    error
		wantErrMsg string
	}{
		{
			name:       "stdin to pretty json",
			stdin:      `{'a': True,}`,
			args:       []string{"repair"},
			wantStdout: "{\n  \"a\": true\n}\n",
			wantStderr: "repaired stdin: fix_keywords, normalize_quotes, remove_trailing_commas",
		},
		{
			name:       "valid input reports nothing",
			stdin:      `[1, 2]`,
			args:       []string{"repair", "-"},
			wantStdout: "[\n  1,\n  2\n]\n",
		},
		{
			name:       "yaml output keeps key order",
			files:      map[string]string{"cfg.json": `{b: 1, a: 'x'} // trailing`},
			args:       []string{"repair", "--format", "yaml", "-q", "cfg.json"},
			wantStdout: "b: 1\na: x\n",
		},
		{
			name:       "unrepairable input",
			stdin:      `{"a": [1, 2`,
			args:       []string{"repair"},
			wantErr:    jsontools.ErrRepairExhausted,
			wantErrMsg: "(line 1, col",
		},
		{
			name:    "missing file",
			args:    []string{"repair", "none.json"},
			wantErr: os.ErrNotExist,
		},
		{
			name:    "unknown format",
			stdin:   `{}`,
			args:    []string{"repair", "--format", "xml"},
			wantErr: jsontools.ErrUnsupportedFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fs := afero.NewMemMapFs()
			writeFiles(t, fs, tt.files)

			res := testEnv{fs: fs, stdin: tt.stdin}.run(context.Background(), tt.args...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, res.err, tt.wantErr)
				if tt.wantErrMsg != "" {
					assert.ErrorContains(t, res.err, tt.wantErrMsg)
				}
				return
			}
			require.NoError(t, res.err)
			assert.Equal(t, tt.wantStdout, res.stdout)
			if tt.wantStderr != "" {
				assert.Contains(t, res.stderr, tt.wantStderr)
			} else {
				assert.NotContains(t, res.stderr, "repaired")
			}
		})
	}
}

func TestRepairCommandWritesFile(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	res := testEnv{fs: fs, stdin: `{a: None}`}.run(context.Background(), "repair", "-o", "fixed.json")
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)

	data, err := afero.ReadFile(fs, "fixed.json")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": null\n}\n", string(data))
}

func TestRepairCommandTOML(t *testing.T) {
	t.Parallel()

	res := testEnv{stdin: `{"name": "ann", "age": 30, "gone": null}`}.run(context.Background(), "repair", "-f", "toml")
	require.NoError(t, res.err)

	var back map[string]any
	require.NoError(t, toml.Unmarshal([]byte(res.stdout), &back))
	assert.Equal(t, map[string]any{"name": "ann", "age": int64(30)}, back)
}

func TestConvertCommand(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"data.json":  `[{"id": 1, "name": "ann"}, {"id": 2}]`,
		"users.json": `{"users": [{"id": 1, "addr": {"city": "Oslo"}}]}`,
		"api.json":   `{"data": {"items": [{'sku': 'a-1', qty: 2,}]}}`,
	}

	tests := []struct {
		name       string
		env        map[string]string
		args       []string
		wantStdout string
		wantErr    string
	}{
		{
			name:       "csv to stdout",
			args:       []string{"convert", "data.json"},
			wantStdout: "id,name\n1,ann\n2,\n",
		},
		{
			name:       "separator from environment",
			env:        map[string]string{EnvSeparator: "_"},
			args:       []string{"convert", "users.json"},
			wantStdout: "addr_city,id\nOslo,1\n",
		},
		{
			name:       "separator flag wins over environment",
			env:        map[string]string{EnvSeparator: "_"},
			args:       []string{"convert", "--sep", "/", "users.json"},
			wantStdout: "addr/city,id\nOslo,1\n",
		},
		{
			name:       "repaired input with select",
			args:       []string{"convert", "--select", ".data.items", "--format", "ltsv", "api.json"},
			wantStdout: "qty:2\tsku:a-1\n",
		},
		{
			name:    "binary format needs output dir",
			args:    []string{"convert", "--format", "parquet", "data.json"},
			wantErr: "needs --output-dir",
		},
		{
			name:    "compressed output needs output dir",
			args:    []string{"convert", "--compression", "gz", "data.json"},
			wantErr: "needs --output-dir",
		},
		{
			name:    "several inputs need output dir",
			args:    []string{"convert", "data.json", "users.json"},
			wantErr: "2 inputs need --output-dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fs := afero.NewMemMapFs()
			writeFiles(t, fs, files)

			res := testEnv{fs: fs, env: tt.env}.run(context.Background(), tt.args...)
			if tt.wantErr != "" {
				assert.ErrorContains(t, res.err, tt.wantErr)
				return
			}
			require.NoError(t, res.err)
			assert.Equal(t, tt.wantStdout, res.stdout)
		})
	}
}

func TestConvertCommandOutputDir(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"in/orders.json": `[{"id": 1}, {"id": 2}]`,
		"in/items.json":  `[{"sku": "a"}]`,
	})

	res := testEnv{fs: fs}.run(context.Background(), "convert", "--format", "tsv", "-o", "out", "in")
	require.NoError(t, res.err)
	assert.ElementsMatch(t,
		[]string{filepath.Join("out", "items.tsv"), filepath.Join("out", "orders.tsv")},
		strings.Fields(res.stdout))

	data, err := afero.ReadFile(fs, filepath.Join("out", "orders.tsv"))
	require.NoError(t, err)
	assert.Equal(t, "id\n1\n2\n", string(data))
}

func TestConvertCommandStdin(t *testing.T) {
	t.Parallel()

	res := testEnv{stdin: `[{'a': 1}]`}.run(context.Background(), "convert")
	require.NoError(t, res.err)
	assert.Equal(t, "a\n1\n", res.stdout)
}

func TestLoadCommand(t *testing.T) {
	t.Parallel()

	dsn := filepath.Join(t.TempDir(), "out.db")
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"orders.json": `[{"id": 1, "total": 9.5}, {"id": 2, "total": 12}]`,
	})
	env := testEnv{fs: fs, env: map[string]string{EnvDSN: dsn}}

	res := env.run(context.Background(), "load", "orders.json")
	require.NoError(t, res.err)
	assert.Equal(t, "orders\t2\n", res.stdout)

	res = env.run(context.Background(), "load", "orders.json")
	assert.ErrorIs(t, res.err, jsontools.ErrSchemaCollision)

	res = env.run(context.Background(), "load", "--policy", "append", "orders.json")
	require.NoError(t, res.err)

	res = env.run(context.Background(), "load", "--table", "order copy", "orders.json")
	require.NoError(t, res.err)
	assert.Equal(t, "order_copy\t2\n", res.stdout)

	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM "orders"`).Scan(&count))
	assert.Equal(t, 4, count)

	var total float64
	require.NoError(t, db.QueryRow(`SELECT total FROM "order_copy" WHERE id = 2`).Scan(&total))
	assert.InDelta(t, 12.0, total, 1e-9)
}

func TestLoadCommandErrors(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{"a.json": `[{"x": 1}]`, "b.json": `[{"y": 1}]`})

	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantMsg string
	}{
		{
			name:    "unknown sink",
			args:    []string{"load", "--sink", "oracle", "--dsn", "x", "a.json"},
			wantErr: jsontools.ErrUnsupportedSink,
		},
		{
			name:    "unknown policy",
			args:    []string{"load", "--policy", "merge", "a.json"},
			wantMsg: "unknown collision policy",
		},
		{
			name:    "table with two inputs",
			args:    []string{"load", "--dsn", "x.db", "--table", "t", "a.json", "b.json"},
			wantMsg: "--table needs exactly one input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := testEnv{fs: fs}.run(context.Background(), tt.args...)
			require.Error(t, res.err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, res.err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.ErrorContains(t, res.err, tt.wantMsg)
			}
		})
	}
}

func TestPathsCommand(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{"doc.json": `{"a": [1], 'b c': {"d": true}}`})

	res := testEnv{fs: fs}.run(context.Background(), "paths", "doc.json")
	require.NoError(t, res.err)
	var want strings.Builder
	for _, line := range [][2]string{
		{"$", "object"},
		{"$.a", "array"},
		{"$.a[0]", "value"},
		{`$["b c"]`, "object"},
		{`$["b c"].d`, "value"},
	} {
		fmt.Fprintf(&want, "%-12s%s\n", line[0], line[1])
	}
	assert.Equal(t, want.String(), res.stdout)

	res = testEnv{fs: fs}.run(context.Background(), "paths", "--get", `$["b c"]`, "doc.json")
	require.NoError(t, res.err)
	assert.Equal(t, "{\n  \"d\": true\n}\n", res.stdout)

	res = testEnv{fs: fs}.run(context.Background(), "paths", "--get", "$.zzz", "doc.json")
	assert.ErrorIs(t, res.err, jsontools.ErrPathNotFound)
}

func TestWatchCommandInitialCheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	fixable := filepath.Join(dir, "fixable.json")
	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"a": 1}`), 0o600))
	require.NoError(t, os.WriteFile(fixable, []byte(`{'a': 1}`), 0o600))
	require.NoError(t, os.WriteFile(broken, []byte(`{"a": `), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := testEnv{fs: afero.NewOsFs()}.run(ctx, "watch", good, fixable, broken)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, good+": ok\n")
	assert.Contains(t, res.stdout, fixable+": repairable: normalize_quotes\n")
	assert.Contains(t, res.stdout, broken+": cannot repair:")
	assert.Contains(t, res.stdout, "(line 1, col")
}

func TestWatchCommandNeedsFiles(t *testing.T) {
	t.Parallel()

	res := testEnv{}.run(context.Background(), "watch")
	assert.ErrorContains(t, res.err, "requires at least 1 arg")
}
