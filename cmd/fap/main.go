// Command fap converts finite automata between drawings, .fa files, regular
// expressions and minimal DFAs, and steps words through them.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"fap/internal/config"
	"fap/internal/logging"
)

type Globals struct {
	Config   string `short:"c" type:"path" help:"YAML configuration file."`
	LogLevel string `name:"log-level" help:"Override the configured log level (trace, debug, info, warn, error)."`
}

type CLI struct {
	Globals

	Regex    RegexCmd    `cmd:"" help:"Synthesize a regular expression from an automaton."`
	Optimize OptimizeCmd `cmd:"" help:"Build the minimal DFA of an automaton."`
	Simulate SimulateCmd `cmd:"" help:"Step a word through an automaton."`
	Match    MatchCmd    `cmd:"" help:"Check whole words against an automaton."`
	Table    TableCmd    `cmd:"" help:"Print the transition table of an automaton."`
	Dot      DotCmd      `cmd:"" help:"Print an automaton in Graphviz format."`
	Equiv    EquivCmd    `cmd:"" help:"Compare the language of an automaton with a regular expression."`
}

// runtime is what every command receives once flags and configuration are
// resolved.
type runtime struct {
	cfg   config.Config
	log   logging.Logger
	out   io.Writer
	color bool
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func run(args []string, stdout, stderr io.Writer) int {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("fap"),
		kong.Description("Finite automaton playground: regex synthesis, minimization and simulation."),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
	)
	if err != nil {
		fmt.Fprintln(stderr, "fap:", err)
		return 2
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintln(stderr, "fap:", err)
		return 2
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		fmt.Fprintln(stderr, "fap:", err)
		return 1
	}
	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(stderr, "fap:", err)
			return 1
		}
	}
	rt := &runtime{
		cfg:   cfg,
		log:   logging.New(cfg.Log.Level, cfg.Log.Format, stderr),
		out:   stdout,
		color: isTerminal(stdout),
	}
	if err := ctx.Run(rt); err != nil {
		logging.WithFields(rt.log, map[string]any{"command": ctx.Command()}).Debug("command failed")
		fmt.Fprintln(stderr, "fap:", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
