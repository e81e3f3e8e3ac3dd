// Command distill is an operator CLI for trying prompts against the
// configured model: a single generation, a temperature sweep, or a
// generation parsed as JSON.
//
// Usage:
//
//	distill [-model name] [-base-url url] <command> [flags] PROMPT
//
// Commands:
//
//	generate [-t temp] [-log path] PROMPT
//	sweep    [-temps 0.0,0.3,0.9] PROMPT
//	json     [-t temp] [-topic name] [PROMPT]
//
// Settings not given as flags come from the same DISTILL_* environment and
// config.yaml used by the server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/distill-api/internal/config"
	"github.com/phrazzld/distill-api/internal/generation"
	"github.com/phrazzld/distill-api/internal/platform/backend"
	"github.com/phrazzld/distill-api/internal/platform/logger"
)

// errUsage is returned for invalid invocations; usage has been printed.
var errUsage = errors.New("invalid usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &cli{
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		newGenerator: configuredGenerator,
	}
	if err := c.run(ctx, os.Args[1:]); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "distill: %v\n", err)
		}
		os.Exit(1)
	}
}

// generatorOverrides are the global flags applied on top of config.Load.
type generatorOverrides struct {
	model   string
	baseURL string
}

// configuredGenerator loads configuration, applies overrides, and builds the
// configured backend. Logs go to stderr so stdout carries only model output.
func configuredGenerator(ctx context.Context, o generatorOverrides, stderr io.Writer) (generation.Generator, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if o.model != "" {
		cfg.LLM.Model = o.model
	}
	if o.baseURL != "" {
		cfg.LLM.BaseURL = o.baseURL
	}

	l, err := logger.SetupWithWriter(cfg.Server, stderr)
	if err != nil {
		return nil, err
	}
	return backend.New(ctx, cfg.LLM, l.With(slog.String("source", "cli")))
}

// cli holds the process I/O and the generator factory so commands can be
// exercised in tests.
type cli struct {
	stdout       io.Writer
	stderr       io.Writer
	newGenerator func(ctx context.Context, o generatorOverrides, stderr io.Writer) (generation.Generator, error)
}

func (c *cli) run(ctx context.Context, args []string) error {
	global := flag.NewFlagSet("distill", flag.ContinueOnError)
	global.SetOutput(c.stderr)
	var overrides generatorOverrides
	global.StringVar(&overrides.model, "model", "", "model identifier (overrides DISTILL_LLM_MODEL)")
	global.StringVar(&overrides.baseURL, "base-url", "", "generation endpoint base URL (overrides DISTILL_LLM_BASE_URL)")
	global.Usage = func() {
		fmt.Fprintln(c.stderr, "usage: distill [-model name] [-base-url url] <generate|sweep|json> [flags] PROMPT")
		global.PrintDefaults()
	}

	if err := global.Parse(args); err != nil {
		return errUsage
	}
	if global.NArg() == 0 {
		global.Usage()
		return errUsage
	}

	command, rest := global.Arg(0), global.Args()[1:]
	var cmd func(context.Context, generatorOverrides, []string) error
	switch command {
	case "generate":
		cmd = c.generate
	case "sweep":
		cmd = c.sweep
	case "json":
		cmd = c.jsonCmd
	default:
		fmt.Fprintf(c.stderr, "unknown command %q\n", command)
		global.Usage()
		return errUsage
	}
	return cmd(ctx, overrides, rest)
}
