package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/renderwave/internal/cli"
	"github.com/rshade/renderwave/internal/wave"
)

// setupCLITest isolates the config file and quiets logging.
func setupCLITest(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("RENDERWAVE_CONFIG", path)
	t.Setenv("RENDERWAVE_LOG_LEVEL", "error")
	t.Setenv("RENDERWAVE_ITEM_HEIGHT", "")
	t.Setenv("RENDERWAVE_BATCH_SIZE", "")
	t.Setenv("RENDERWAVE_OUTPUT_FORMAT", "")
	return path
}

// executeCmd runs the root command with args and returns stdout.
func executeCmd(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestVisibleCmd(t *testing.T) {
	setupCLITest(t)

	t.Run("json", func(t *testing.T) {
		out, err := executeCmd(t, nil, "visible", "--start", "3", "--end", "7", "--revealed", "1,5,6,9", "-o", "json")
		require.NoError(t, err)

		var res struct {
			Visible []int `json:"visible"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.Equal(t, []int{5, 6}, res.Visible)
	})

	t.Run("empty window", func(t *testing.T) {
		out, err := executeCmd(t, nil, "visible", "--start", "5", "--end", "5", "--revealed", "5", "-o", "json")
		require.NoError(t, err)
		assert.Contains(t, out, `"visible": []`)
	})

	t.Run("table", func(t *testing.T) {
		out, err := executeCmd(t, nil, "visible", "--start", "0", "--end", "10", "--revealed", "2,4,12")
		require.NoError(t, err)
		assert.Contains(t, out, "2, 4")
		assert.Contains(t, out, "[0, 10)")
	})

	t.Run("negative start", func(t *testing.T) {
		_, err := executeCmd(t, nil, "visible", "--start=-1", "--end", "4")
		require.Error(t, err)
	})
}

func TestSnapCmd(t *testing.T) {
	setupCLITest(t)

	t.Run("explicit geometry", func(t *testing.T) {
		out, err := executeCmd(t, nil, "snap", "--scroll-top", "130", "--item-height", "10", "--batch-size", "5", "-o", "json")
		require.NoError(t, err)

		var res struct {
			Offset     int `json:"offset"`
			BatchIndex int `json:"batch_index"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.Equal(t, 150, res.Offset)
		assert.Equal(t, 3, res.BatchIndex)
	})

	t.Run("config defaults with grouped digits", func(t *testing.T) {
		// 45px items in batches of 20: 2000px snaps to 1800px.
		out, err := executeCmd(t, nil, "snap", "--scroll-top", "2000")
		require.NoError(t, err)
		assert.Contains(t, out, "1,800 px")
	})

	t.Run("zero batch pixel size", func(t *testing.T) {
		_, err := executeCmd(t, nil, "snap", "--scroll-top", "10", "--item-height", "0")
		require.Error(t, err)
		assert.ErrorIs(t, err, wave.ErrZeroBatchPixelSize)
	})

	t.Run("scroll top required", func(t *testing.T) {
		_, err := executeCmd(t, nil, "snap")
		require.Error(t, err)
	})
}

func TestGroupCmd(t *testing.T) {
	setupCLITest(t)

	t.Run("json keeps first-appearance order", func(t *testing.T) {
		out, err := executeCmd(t, nil, "group", "fruit", "veg", "fruit", "dairy", "-o", "json")
		require.NoError(t, err)
		assert.JSONEq(t, `{"fruit":0,"veg":1,"dairy":3}`, out)
		assert.Less(t, strings.Index(out, "veg"), strings.Index(out, "dairy"))
	})

	t.Run("ndjson", func(t *testing.T) {
		out, err := executeCmd(t, nil, "group", "a", "b", "a", "-o", "ndjson")
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 2)
		assert.JSONEq(t, `{"label":"a","index":0}`, lines[0])
		assert.JSONEq(t, `{"label":"b","index":1}`, lines[1])
	})

	t.Run("stdin with default label", func(t *testing.T) {
		out, err := executeCmd(t, strings.NewReader("a\n\nb\na\n"), "group", "--file", "-")
		require.NoError(t, err)
		assert.Contains(t, out, "(default)")
		assert.Contains(t, out, "LABEL")
	})

	t.Run("file", func(t *testing.T) {
		path := writeFile(t, "labels.txt", "x\ny\nx\n")
		out, err := executeCmd(t, nil, "group", "--file", path, "-o", "json")
		require.NoError(t, err)
		assert.JSONEq(t, `{"x":0,"y":1}`, out)
	})

	t.Run("arguments and file", func(t *testing.T) {
		_, err := executeCmd(t, nil, "group", "a", "--file", "labels.txt")
		require.Error(t, err)
	})

	t.Run("no labels", func(t *testing.T) {
		out, err := executeCmd(t, nil, "group")
		require.NoError(t, err)
		assert.Contains(t, out, "No labels.")
	})
}

func TestScrollCmd(t *testing.T) {
	setupCLITest(t)

	tests := []struct {
		name   string
		args   []string
		target int
		known  bool
	}{
		{
			name:   "page down clamps",
			args:   []string{"PageDown", "--current", "100", "--container", "50", "--item-height", "10", "--max", "120"},
			target: 120,
			known:  true,
		},
		{
			name:   "arrow up saturates",
			args:   []string{"ArrowUp", "--current", "5", "--item-height", "10", "--max", "120"},
			target: 0,
			known:  true,
		},
		{
			name:   "end",
			args:   []string{"End", "--current", "5", "--max", "4100"},
			target: 4100,
			known:  true,
		},
		{
			name:   "unknown key",
			args:   []string{"Tab", "--current", "42", "--max", "120"},
			target: 42,
			known:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"scroll"}, tt.args...)
			out, err := executeCmd(t, nil, append(args, "-o", "json")...)
			require.NoError(t, err)

			var res struct {
				Target int  `json:"target"`
				Known  bool `json:"known"`
			}
			require.NoError(t, json.Unmarshal([]byte(out), &res))
			assert.Equal(t, tt.target, res.Target)
			assert.Equal(t, tt.known, res.Known)
		})
	}

	t.Run("key required", func(t *testing.T) {
		_, err := executeCmd(t, nil, "scroll", "--max", "10")
		require.Error(t, err)
	})
}

func TestWindowCmd(t *testing.T) {
	setupCLITest(t)

	type windowJSON struct {
		Start       int    `json:"start"`
		End         int    `json:"end"`
		TotalHeight int    `json:"total_height"`
		MaxScroll   int    `json:"max_scroll"`
		Group       string `json:"group"`
	}

	t.Run("uniform heights", func(t *testing.T) {
		out, err := executeCmd(t, nil, "window",
			"--scroll-top", "0", "--count", "100", "--item-height", "10",
			"--container", "50", "--overscan", "0", "-o", "json")
		require.NoError(t, err)

		var res windowJSON
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.Equal(t, windowJSON{Start: 0, End: 5, TotalHeight: 1000, MaxScroll: 950}, res)
	})

	t.Run("measured heights and group", func(t *testing.T) {
		out, err := executeCmd(t, nil, "window",
			"--scroll-top", "25", "--count", "4", "--item-height", "10",
			"--heights", "1=30", "--container", "10", "--overscan", "0",
			"--labels", "a,b,b,c", "-o", "json")
		require.NoError(t, err)

		var res windowJSON
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.Equal(t, 1, res.Start)
		assert.Equal(t, 2, res.End)
		assert.Equal(t, 60, res.TotalHeight)
		assert.Equal(t, "b", res.Group)
	})

	t.Run("invalid heights index", func(t *testing.T) {
		_, err := executeCmd(t, nil, "window", "--count", "4", "--heights", "x=3")
		require.Error(t, err)
	})
}

func TestReplayCmd(t *testing.T) {
	setupCLITest(t)

	script := writeFile(t, "calls.yaml", `ops:
  - op: get_visible_indexes
    start: 2
    end: 5
    revealed: [1, 2, 3, 4, 5]
  - op: snap
    scroll_top: 130
    item_height: 10
    batch_size: 5
  - op: snap
    scroll_top: 10
    item_height: 0
    batch_size: 5
  - op: bogus
`)

	t.Run("json", func(t *testing.T) {
		out, err := executeCmd(t, nil, "replay", script, "--concurrency", "2", "-o", "json")
		require.NoError(t, err)

		var res struct {
			Ops     int `json:"ops"`
			Failed  int `json:"failed"`
			Results []struct {
				Index int             `json:"index"`
				Op    string          `json:"op"`
				Value json.RawMessage `json:"value"`
				Error string          `json:"error"`
			} `json:"results"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.Equal(t, 4, res.Ops)
		assert.Equal(t, 2, res.Failed)
		require.Len(t, res.Results, 4)
		assert.Equal(t, "visible", res.Results[0].Op)
		assert.JSONEq(t, `[2,3,4]`, string(res.Results[0].Value))
		assert.JSONEq(t, `150`, string(res.Results[1].Value))
		assert.NotEmpty(t, res.Results[2].Error)
		assert.Contains(t, res.Results[3].Error, "unknown operation")
	})

	t.Run("ndjson", func(t *testing.T) {
		out, err := executeCmd(t, nil, "replay", script, "-o", "ndjson")
		require.NoError(t, err)
		assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 4)
	})

	t.Run("table", func(t *testing.T) {
		out, err := executeCmd(t, nil, "replay", script)
		require.NoError(t, err)
		assert.Contains(t, out, "4 operations, 2 failed")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := executeCmd(t, nil, "replay", filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}

func TestBrowseCmd_NonInteractive(t *testing.T) {
	setupCLITest(t)
	path := writeFile(t, "items.txt", "fruit:apple\nfruit:pear\nveg:leek\n")

	t.Run("table with groups", func(t *testing.T) {
		out, err := executeCmd(t, nil, "browse", path, "--group-sep", ":")
		require.NoError(t, err)
		assert.Contains(t, out, "veg")
		assert.Contains(t, out, "veg:leek")
	})

	t.Run("ndjson from stdin", func(t *testing.T) {
		out, err := executeCmd(t, strings.NewReader("one\ntwo\n"), "browse", "-o", "ndjson")
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 2)
		assert.JSONEq(t, `{"index":1,"item":"two"}`, lines[1])
	})
}

func TestConfigCmds(t *testing.T) {
	path := setupCLITest(t)

	out, err := executeCmd(t, nil, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")
	assert.FileExists(t, path)

	_, err = executeCmd(t, nil, "config", "init")
	require.Error(t, err, "init without --force must not overwrite")

	_, err = executeCmd(t, nil, "config", "init", "--force")
	require.NoError(t, err)

	out, err = executeCmd(t, nil, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "item_height: 45")
	assert.Contains(t, out, "batch_size: 20")

	out, err = executeCmd(t, nil, "config", "show", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"List"`)

	out, err = executeCmd(t, nil, "config", "validate", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
	assert.Contains(t, out, "batch 20")

	require.NoError(t, os.WriteFile(path, []byte("list:\n  batch_size: 0\n"), 0o600))
	_, err = executeCmd(t, nil, "config", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch_size")
}

func TestConfigInit_BrokenFile(t *testing.T) {
	path := setupCLITest(t)
	require.NoError(t, os.WriteFile(path, []byte("list: [unclosed"), 0o600))

	_, err := executeCmd(t, nil, "config", "show")
	require.Error(t, err)

	_, err = executeCmd(t, nil, "config", "init", "--force")
	require.NoError(t, err)

	_, err = executeCmd(t, nil, "config", "show")
	require.NoError(t, err)
}

func TestRootCmd_InvalidOutput(t *testing.T) {
	setupCLITest(t)

	_, err := executeCmd(t, nil, "group", "a", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default_format")
}

func TestRootCmd_ConfiguredOutput(t *testing.T) {
	setupCLITest(t)
	t.Setenv("RENDERWAVE_OUTPUT_FORMAT", "ndjson")

	out, err := executeCmd(t, nil, "group", "a", "b")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)
}

func TestConfigInit_Project(t *testing.T) {
	setupCLITest(t)
	dir := t.TempDir()
	t.Chdir(dir)

	out, err := executeCmd(t, nil, "config", "init", "--project")
	require.NoError(t, err)
	assert.Contains(t, out, "Created .gitignore")
	assert.FileExists(t, filepath.Join(dir, ".renderwave", "config.yaml"))
	assert.FileExists(t, filepath.Join(dir, ".renderwave", ".gitignore"))

	// The overlay now takes part in resolution.
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".renderwave", "config.yaml"),
		[]byte("list:\n  item_height: 7\n  batch_size: 3\n"), 0o600))
	out, err = executeCmd(t, nil, "snap", "--scroll-top", "11", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"offset": 21`)
}

// syncBuffer is a bytes.Buffer safe for a command writing from a watcher goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestReplayCmd_Watch(t *testing.T) {
	setupCLITest(t)
	script := writeFile(t, "calls.yaml", "ops:\n  - op: group\n    labels: [a]\n")

	var out syncBuffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"replay", script, "--watch", "-o", "ndjson"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Watching")
	}, 5*time.Second, 10*time.Millisecond)
	assert.Contains(t, out.String(), `"op":"group"`)

	require.NoError(t, os.WriteFile(script, []byte("ops:\n  - op: scroll\n    key: End\n    max: 77\n"), 0o600))
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), `"value":77`)
	}, 5*time.Second, 10*time.Millisecond)
	assert.Contains(t, out.String(), "changed, replaying")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("replay --watch did not stop after cancel")
	}
}
