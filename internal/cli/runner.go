package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Makepad-fr/calc/internal/arith"
	"github.com/Makepad-fr/calc/internal/calc"
	"github.com/Makepad-fr/calc/internal/config"
	"github.com/Makepad-fr/calc/internal/logger"
	"github.com/Makepad-fr/calc/internal/tui"
	"github.com/Makepad-fr/calc/internal/ui"
)

// Exit codes: 0 ok, 1 error, 2 usage.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// exitErr carries an exit code through cobra's error return.
type exitErr struct {
	code int
	err  error
}

func (e *exitErr) Error() string { return e.err.Error() }
func (e *exitErr) Unwrap() error { return e.err }

func failure(err error) error { return &exitErr{code: exitError, err: err} }
func usage(err error) error   { return &exitErr{code: exitUsage, err: err} }

// flags are the root persistent flags.
type flags struct {
	configPath string
	theme      string
	precision  int
	logLevel   string
	color      bool
	noColor    bool
}

// app is what PersistentPreRunE resolves for the subcommands.
type app struct {
	cfg    config.Config
	log    *zap.SugaredLogger
	stdout io.Writer
	stderr io.Writer
	// runTUI is swapped out in tests.
	runTUI func(*calc.Accumulator, *zap.SugaredLogger) error
}

// Run builds the command tree, executes args and returns an exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr, runTUI: tui.Run}
	return a.run(args)
}

func (a *app) run(args []string) int {
	// Colour is settled before parsing so flag errors honour it too.
	ui.SetColorForcing(hasFlag(args, "--color"), hasFlag(args, "--no-color"))

	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := root.Execute()
	if a.log != nil {
		_ = a.log.Sync()
	}
	if err == nil {
		return exitOK
	}
	ui.Fail(a.stderr, err.Error())
	var ee *exitErr
	if errors.As(err, &ee) {
		return ee.code
	}
	// cobra's own argument and flag errors
	fmt.Fprintln(a.stderr, ui.Current().Muted.Render("Hint: run `calc --help`"))
	return exitUsage
}

// hasFlag reports whether a boolean flag appears before any "--".
func hasFlag(args []string, name string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if arg == name || arg == name+"=true" {
			return true
		}
	}
	return false
}

func (a *app) rootCmd() *cobra.Command {
	var f flags
	root := &cobra.Command{
		Use:           "calc",
		Short:         "A terminal arithmetic calculator",
		Long:          "calc evaluates + - * / expressions with parentheses.\nWithout a subcommand it starts the interactive calculator.",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, f)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.doInteractive()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "config file (default ~/.calc/config.yaml)")
	pf.StringVar(&f.theme, "theme", "", "theme: classic, neon or mono")
	pf.IntVar(&f.precision, "precision", 0, "significant digits kept in results (1..17)")
	pf.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&f.color, "color", false, "force colored output")
	pf.BoolVar(&f.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		a.evalCmd(),
		a.binaryCmd("add", "Add two numbers", func(x, y float64) (float64, error) { return arith.Add(x, y), nil }),
		a.binaryCmd("sub", "Subtract b from a", func(x, y float64) (float64, error) { return arith.Subtract(x, y), nil }),
		a.binaryCmd("mul", "Multiply two numbers", func(x, y float64) (float64, error) { return arith.Multiply(x, y), nil }),
		a.binaryCmd("div", "Divide a by b", arith.Divide),
		a.pctCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, f flags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return failure(fmt.Errorf("load: %w", err))
	}
	if cmd.Flags().Changed("theme") {
		cfg.Theme = f.theme
	}
	if cmd.Flags().Changed("precision") {
		cfg.Precision = f.precision
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return usage(err)
	}
	a.cfg = cfg

	ui.SetColorForcing(f.color, f.noColor)
	ui.SetTheme(cfg.Theme)

	output := cfg.LogFile
	if output == "" {
		output = "stderr"
	}
	// The TUI owns the terminal; it only logs to an explicit file.
	if cmd.Parent() == nil && cfg.LogFile == "" {
		a.log = logger.Nop()
		return nil
	}
	l, err := logger.New(cfg.LogLevel, output)
	if err != nil {
		return failure(err)
	}
	a.log = l
	return nil
}

func (a *app) newAccumulator() *calc.Accumulator {
	return calc.New(calc.WithPrecision(a.cfg.Precision), calc.WithLogger(a.log))
}

// -------------- subcommand impls ----------------

func (a *app) doInteractive() error {
	a.log.Infow("starting interactive session", "theme", a.cfg.Theme)
	acc := a.newAccumulator()
	if err := a.runTUI(acc, a.log); err != nil {
		return failure(fmt.Errorf("tui: %w", err))
	}
	if acc.Expression() != "" {
		ui.OK(a.stdout, acc.Expression()+" = "+acc.Result())
	}
	return nil
}

func (a *app) evalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <expression...>",
		Short: "Evaluate an expression and print the result",
		Example: `  calc eval "2+3*4"
  calc eval '(1 + 2) / 4'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.doEval(strings.Join(args, " "))
		},
	}
}

func (a *app) doEval(expression string) error {
	acc := a.newAccumulator()
	acc.AppendCharacter(strings.TrimSpace(expression))
	if acc.Expression() == "" {
		return usage(errors.New("eval: empty expression"))
	}
	acc.Evaluate()
	fmt.Fprintln(a.stdout, acc.Result())
	if acc.IsError() {
		return failure(fmt.Errorf("eval: cannot evaluate %q", acc.Expression()))
	}
	return nil
}

func (a *app) binaryCmd(name, short string, op func(x, y float64) (float64, error)) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <a> <b>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := parsePair(name, args)
			if err != nil {
				return err
			}
			v, err := op(x, y)
			if err != nil {
				return failure(err)
			}
			return a.printNumber(v)
		},
	}
}

func (a *app) pctCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "pct <value> <percent>",
		Short:   "Compute percent% of value",
		Example: "  calc pct 200 15",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, p, err := parsePair("pct", args)
			if err != nil {
				return err
			}
			return a.printNumber(arith.Percentage(v, p))
		},
	}
}

func (a *app) printNumber(v float64) error {
	if !arith.IsValidNumber(v) {
		return failure(errors.New("result is not a finite number"))
	}
	fmt.Fprintln(a.stdout, calc.Format(v, a.cfg.Precision))
	return nil
}

func parsePair(name string, args []string) (float64, float64, error) {
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, 0, usage(fmt.Errorf("%s: not a number: %s", name, args[0]))
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return 0, 0, usage(fmt.Errorf("%s: not a number: %s", name, args[1]))
	}
	return x, y, nil
}
