package panel

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakePrompter struct {
	answer  string
	ok      bool
	query   string
	initial string
}

func (f *fakePrompter) Prompt(query, initial string) (string, bool) {
	f.query, f.initial = query, initial
	return f.answer, f.ok
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.NoError(t, scanner.Err())
	return lines
}

func TestSaveTo_RoundTrip(t *testing.T) {
	p := newPanel(0)
	p.Append("alpha")
	p.Append("beta\ngamma")
	p.Append("")
	p.Append("\x1b[31mred\x1b[0m is raw")
	snapshot := p.Lines()

	path := filepath.Join(t.TempDir(), "nested", "dir", "out.log")
	got, err := p.SaveTo(path)
	require.NoError(t, err)
	require.Equal(t, path, got)

	require.Equal(t, snapshot, readLines(t, path))

	lines := p.Lines()
	require.Equal(t, "Log saved to "+path, lines[len(lines)-1])
	require.Equal(t, snapshot, lines[:len(lines)-1])
}

func TestSaveTo_AppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	require.NoError(t, os.WriteFile(path, []byte("earlier\n"), 0o644))

	p := newPanel(0)
	p.Append("now")
	_, err := p.SaveTo(path)
	require.NoError(t, err)

	require.Equal(t, []string{"earlier", "now"}, readLines(t, path))
}

func TestSaveTo_RelativePathIsResolved(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	p := newPanel(0)
	p.Append("x")
	got, err := p.SaveTo("logs/out.log")
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(got))
	require.Equal(t, []string{"x"}, readLines(t, filepath.Join(dir, "logs", "out.log")))
}

func TestSaveTo_FailureLeavesPanelUntouched(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	p := newPanel(0)
	p.Append("kept")
	before := p.Lines()

	_, err := p.SaveTo(filepath.Join(blocker, "sub", "out.log"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "create log directory")
	require.Equal(t, before, p.Lines())

	_, err = p.SaveTo(dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "open log file")
	require.Equal(t, before, p.Lines())
}

func TestSaveLog_CancelIsNoop(t *testing.T) {
	p := newPanel(0)
	p.Append("x")
	prompt := &fakePrompter{ok: false}

	path, err := p.SaveLog(prompt)
	require.NoError(t, err)
	require.Empty(t, path)
	require.Equal(t, []string{"x"}, p.Lines())
	require.Equal(t, SaveQuery, prompt.query)
	require.Equal(t, filepath.Join("/tmp/tailpane", "log-1700000000.log"), prompt.initial)
}

func TestSaveLog_BlankAnswerIsNoop(t *testing.T) {
	p := newPanel(0)
	path, err := p.SaveLog(&fakePrompter{answer: "   ", ok: true})
	require.NoError(t, err)
	require.Empty(t, path)
	require.Zero(t, p.Len())
}

func TestSaveLog_WritesAnswer(t *testing.T) {
	p := newPanel(0)
	p.Append("x")
	target := filepath.Join(t.TempDir(), "saved.log")

	path, err := p.SaveLog(PrompterFunc(func(string, string) (string, bool) { return target, true }))
	require.NoError(t, err)
	require.Equal(t, target, path)
	require.Equal(t, []string{"x"}, readLines(t, target))
}

func TestSaveTo_ConfirmationFollowsTail(t *testing.T) {
	p := newPanel(0)
	appendN(p, 10)
	drawAt(p, 5)

	_, err := p.SaveTo(filepath.Join(t.TempDir(), "out.log"))
	require.NoError(t, err)
	st := p.State()
	require.Equal(t, 11, st.Total())
	require.Equal(t, 11, st.Bottom())
	require.True(t, strings.HasPrefix(p.Lines()[10], "Log saved to "))
}

func TestDefaultSavePath(t *testing.T) {
	now := time.Unix(42, 0)
	tests := []struct {
		name string
		want string
	}{
		{"build", "build-42.log"},
		{"my panel", "my-panel-42.log"},
		{"a/b", "a-b-42.log"},
		{"  ", "log-42.log"},
		{"日志", "log-42.log"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := defaultSavePath("/d", tt.name, now)
			if got != filepath.Join("/d", tt.want) {
				t.Fatalf("defaultSavePath(%q) = %q, want %q", tt.name, got, filepath.Join("/d", tt.want))
			}
		})
	}
}
