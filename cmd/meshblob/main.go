// meshblob inspects, converts and generates mesh blobs.
//
// Usage:
//
//	meshblob info <blob> [--format text|yaml]
//	meshblob convert <in> <out> [--signature big64]
//	meshblob dump <blob> [--attribute N] [--limit N]
//	meshblob triangle <out> [--signature little32]
//	meshblob inspect <blob>
//	meshblob variants
//
// Files ending in .zst or .lz4 are compressed on write and every
// compressed input is detected from its frame magic. "-" reads stdin or
// writes stdout.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/wippyai/meshblob"
)

type command struct {
	name    string
	usage   string
	summary string
	run     func(env *environment, args []string) error
}

var commands = []command{
	{"info", "info <blob> [--format text|yaml]", "print blob header, mesh layout and digests", runInfo},
	{"convert", "convert <in> <out> [--signature NAME]", "rewrite a blob in another variant", runConvert},
	{"dump", "dump <blob> [--attribute N] [--limit N]", "print decoded indices and attribute values", runDump},
	{"triangle", "triangle <out> [--signature NAME]", "write a reference triangle mesh", runTriangle},
	{"inspect", "inspect <blob>", "browse a blob interactively", runInspect},
	{"variants", "variants", "list blob variants and their layout sizes", runVariants},
}

// environment carries what every command needs after flag parsing.
type environment struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	config Config
	logger *zap.Logger
	flags  *pflag.FlagSet
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printUsage(os.Stderr)
		if len(args) == 0 {
			return fmt.Errorf("no command given")
		}
		return nil
	}
	for _, c := range commands {
		if c.name == args[0] {
			return dispatch(c, args[1:])
		}
	}
	printUsage(os.Stderr)
	return fmt.Errorf("unknown command %q", args[0])
}

func dispatch(c command, args []string) error {
	env := &environment{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	return c.run(env, args)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: meshblob <command> [flags]")
	fmt.Fprintln(w)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-40s %s\n", c.usage, c.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Common flags: --config PATH, --log-level LEVEL")
}

// parse registers the common flags on fs, parses args and prepares
// config and logging. It returns the positional arguments.
func (env *environment) parse(fs *pflag.FlagSet, args []string, positional int) ([]string, error) {
	configPath := fs.String("config", "", "YAML config file (default $XDG_CONFIG_HOME/meshblob/config.yaml)")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error")
	fs.SetOutput(env.stderr)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	rest := fs.Args()
	if len(rest) != positional {
		return nil, fmt.Errorf("%s: expected %d argument(s), got %d", fs.Name(), positional, len(rest))
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		return nil, err
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = *logLevel
	}
	logger, err := newLogger(cfg.LogLevel, env.stderr)
	if err != nil {
		return nil, err
	}

	env.config = cfg
	env.logger = logger
	env.flags = fs
	meshblob.SetLogger(logger)
	return rest, nil
}

func newFlagSet(name string) *pflag.FlagSet {
	return pflag.NewFlagSet(name, pflag.ContinueOnError)
}
