package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Makepad-fr/calc/internal/calc"
	"github.com/Makepad-fr/calc/internal/ui"
)

// restoreStyle puts the global colour profile and theme back after t.
func restoreStyle(t *testing.T) {
	t.Helper()
	prev := lipgloss.ColorProfile()
	t.Cleanup(func() {
		lipgloss.SetColorProfile(prev)
		ui.SetTheme("classic")
	})
}

type result struct {
	code   int
	stdout string
	stderr string
}

// run executes args against a config file that does not exist, so only
// flags and defaults apply.
func run(t *testing.T, args ...string) result {
	t.Helper()
	restoreStyle(t)
	var out, errOut bytes.Buffer
	missing := filepath.Join(t.TempDir(), "none.yaml")
	full := append([]string{"--no-color", "--config", missing}, args...)
	a := &app{stdout: &out, stderr: &errOut, runTUI: func(*calc.Accumulator, *zap.SugaredLogger) error {
		t.Fatal("TUI must not start")
		return nil
	}}
	code := a.run(full)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func TestEval(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"eval", "2+3*4"}, "14\n"},
		{[]string{"eval", "0.1+0.2"}, "0.3\n"},
		{[]string{"eval", "(1", "+", "2)", "/", "4"}, "0.75\n"},
		{[]string{"eval", "1/3"}, "0.333333333333\n"},
		{[]string{"--precision", "3", "eval", "1/3"}, "0.333\n"},
	}
	for _, tt := range tests {
		r := run(t, tt.args...)
		assert.Equal(t, 0, r.code, r.stderr)
		assert.Equal(t, tt.want, r.stdout)
	}
}

func TestEvalError(t *testing.T) {
	r := run(t, "eval", "2/0")
	assert.Equal(t, 1, r.code)
	assert.Equal(t, "Error\n", r.stdout)
	assert.Contains(t, r.stderr, `cannot evaluate "2/0"`)
}

func TestEvalUsage(t *testing.T) {
	r := run(t, "eval")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "calc --help")

	r = run(t, "eval", "  ")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "empty expression")
}

func TestArithmeticCommands(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"add", "2", "3"}, "5\n"},
		{[]string{"add", "0.1", "0.2"}, "0.3\n"},
		{[]string{"sub", "5", "3"}, "2\n"},
		{[]string{"mul", "4", "2.5"}, "10\n"},
		{[]string{"div", "10", "4"}, "2.5\n"},
		{[]string{"pct", "200", "15"}, "30\n"},
		{[]string{"pct", "100", "12.5"}, "12.5\n"},
	}
	for _, tt := range tests {
		r := run(t, tt.args...)
		assert.Equal(t, 0, r.code, r.stderr)
		assert.Equal(t, tt.want, r.stdout, tt.args)
	}
}

func TestDivideByZero(t *testing.T) {
	r := run(t, "div", "10", "0")
	assert.Equal(t, 1, r.code)
	assert.Empty(t, r.stdout)
	assert.Contains(t, r.stderr, "Error: Division by zero")
}

func TestNotANumber(t *testing.T) {
	r := run(t, "add", "two", "3")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "add: not a number: two")

	r = run(t, "mul", "1", "3")
	assert.Equal(t, 0, r.code)

	r = run(t, "mul", "1")
	assert.Equal(t, 2, r.code)
}

func TestOverflowIsError(t *testing.T) {
	r := run(t, "mul", "1e300", "1e300")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "not a finite number")
}

func TestUnknownSubcommand(t *testing.T) {
	r := run(t, "frobnicate")
	assert.Equal(t, 2, r.code)
}

func TestHelp(t *testing.T) {
	r := run(t, "--help")
	assert.Equal(t, 0, r.code)
	assert.Contains(t, r.stdout, "eval")
	assert.Contains(t, r.stdout, "pct")
}

func TestBadConfigFlags(t *testing.T) {
	r := run(t, "--theme", "solarized", "eval", "1")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "unknown theme")

	r = run(t, "--precision", "40", "eval", "1")
	assert.Equal(t, 2, r.code)
}

func TestConfigFileApplies(t *testing.T) {
	restoreStyle(t)
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("precision: 2\ntheme: mono\n"), 0o644))

	var out, errOut bytes.Buffer
	a := &app{stdout: &out, stderr: &errOut}
	code := a.run([]string{"--config", p, "eval", "2/3"})
	assert.Equal(t, 0, code, errOut.String())
	assert.Equal(t, "0.67\n", out.String())
}

func TestInteractiveStartsTUI(t *testing.T) {
	restoreStyle(t)
	var out, errOut bytes.Buffer
	var got *calc.Accumulator
	a := &app{stdout: &out, stderr: &errOut, runTUI: func(acc *calc.Accumulator, _ *zap.SugaredLogger) error {
		got = acc
		acc.AppendCharacter("6*7")
		acc.Evaluate()
		return nil
	}}
	code := a.run([]string{"--no-color", "--config", filepath.Join(t.TempDir(), "none.yaml")})
	assert.Equal(t, 0, code, errOut.String())
	require.NotNil(t, got)
	assert.Equal(t, "✔ 6*7 = 42\n", out.String())
}

func TestInteractiveEmptySessionPrintsNothing(t *testing.T) {
	restoreStyle(t)
	var out, errOut bytes.Buffer
	a := &app{stdout: &out, stderr: &errOut, runTUI: func(*calc.Accumulator, *zap.SugaredLogger) error {
		return nil
	}}
	code := a.run([]string{"--no-color", "--config", filepath.Join(t.TempDir(), "none.yaml")})
	assert.Equal(t, 0, code)
	assert.Empty(t, out.String())
}

func TestInteractiveFailure(t *testing.T) {
	restoreStyle(t)
	var out, errOut bytes.Buffer
	a := &app{stdout: &out, stderr: &errOut, runTUI: func(*calc.Accumulator, *zap.SugaredLogger) error {
		return errors.New("no tty")
	}}
	code := a.run([]string{"--no-color", "--config", filepath.Join(t.TempDir(), "none.yaml")})
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "tui: no tty")
}

func TestFlagErrorHonoursNoColor(t *testing.T) {
	restoreStyle(t)
	lipgloss.SetColorProfile(termenv.ANSI256)

	var out, errOut bytes.Buffer
	a := &app{stdout: &out, stderr: &errOut}
	code := a.run([]string{"--no-color", "--bogus"})
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut.String(), "unknown flag: --bogus")
	assert.NotContains(t, errOut.String(), "\x1b[")
}

func TestHasFlag(t *testing.T) {
	assert.True(t, hasFlag([]string{"eval", "--no-color", "1"}, "--no-color"))
	assert.True(t, hasFlag([]string{"--color=true"}, "--color"))
	assert.False(t, hasFlag([]string{"--", "--color"}, "--color"))
	assert.False(t, hasFlag([]string{"--colorful"}, "--color"))
}
