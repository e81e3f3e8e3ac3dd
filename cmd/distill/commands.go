package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/phrazzld/distill-api/internal/extract"
	"github.com/phrazzld/distill-api/internal/generation"
	"github.com/phrazzld/distill-api/internal/prompt"
	"github.com/phrazzld/distill-api/internal/runlog"
)

// cliEndpoint is the run-log endpoint recorded for CLI generations.
const cliEndpoint = "cli"

// defaultSweep matches the temperatures used when comparing sampling
// behavior by hand.
var defaultSweep = []float64{0.0, 0.3, 0.9}

// temperatureFlag is an optional float flag; unset leaves the endpoint
// default in place.
type temperatureFlag struct {
	value *float64
}

func (f *temperatureFlag) String() string {
	if f.value == nil {
		return ""
	}
	return strconv.FormatFloat(*f.value, 'f', -1, 64)
}

func (f *temperatureFlag) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid temperature %q", s)
	}
	f.value = &v
	return nil
}

func (f *temperatureFlag) apply(p generation.Prompt) generation.Prompt {
	if f.value == nil {
		return p
	}
	return p.WithTemperature(*f.value)
}

func (c *cli) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

// promptArg joins the remaining arguments into the prompt text.
func promptArg(fs *flag.FlagSet) (string, error) {
	text := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if text == "" {
		fs.Usage()
		return "", errUsage
	}
	return text, nil
}

func (c *cli) generate(ctx context.Context, o generatorOverrides, args []string) error {
	fs := c.flagSet("generate")
	var temp temperatureFlag
	fs.Var(&temp, "t", "sampling temperature (default: endpoint default)")
	logPath := fs.String("log", "", "append a run-log record to this JSONL file")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	text, err := promptArg(fs)
	if err != nil {
		return err
	}

	gen, err := c.newGenerator(ctx, o, c.stderr)
	if err != nil {
		return err
	}

	out, err := gen.Generate(ctx, temp.apply(generation.NewPrompt(text)))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, out)

	if *logPath == "" {
		return nil
	}
	sink, err := runlog.NewFileSink(*logPath)
	if err != nil {
		return err
	}
	if err := sink.Append(ctx, runlog.Record{
		TS:          time.Now().UTC(),
		Endpoint:    cliEndpoint,
		Model:       gen.Model(),
		Temperature: temp.value,
		Prompt:      text,
		Raw:         out,
	}); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "\nSaved to %s\n", sink.Path())
	return nil
}

func parseTemperatures(s string) ([]float64, error) {
	var temps []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid temperature %q", part)
		}
		temps = append(temps, v)
	}
	if len(temps) == 0 {
		return nil, fmt.Errorf("no temperatures given")
	}
	return temps, nil
}

func formatTemperatures(temps []float64) string {
	parts := make([]string, len(temps))
	for i, t := range temps {
		parts[i] = strconv.FormatFloat(t, 'f', 1, 64)
	}
	return strings.Join(parts, ",")
}

func (c *cli) sweep(ctx context.Context, o generatorOverrides, args []string) error {
	fs := c.flagSet("sweep")
	tempsFlag := fs.String("temps", formatTemperatures(defaultSweep), "comma-separated temperatures")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	temps, err := parseTemperatures(*tempsFlag)
	if err != nil {
		return err
	}
	text, err := promptArg(fs)
	if err != nil {
		return err
	}

	gen, err := c.newGenerator(ctx, o, c.stderr)
	if err != nil {
		return err
	}

	for _, t := range temps {
		out, err := gen.Generate(ctx, generation.NewPrompt(text).WithTemperature(t))
		if err != nil {
			return fmt.Errorf("temperature %s: %w", strconv.FormatFloat(t, 'f', -1, 64), err)
		}
		fmt.Fprintf(c.stdout, "\n--- temperature=%s ---\n%s\n", strconv.FormatFloat(t, 'f', 1, 64), out)
	}
	return nil
}

func (c *cli) jsonCmd(ctx context.Context, o generatorOverrides, args []string) error {
	fs := c.flagSet("json")
	temp := temperatureFlag{}
	fs.Var(&temp, "t", "sampling temperature (default: endpoint default)")
	topic := fs.String("topic", "", "render the built-in topic prompt instead of PROMPT")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	var text string
	if *topic != "" {
		rendered, err := prompt.Render(prompt.KindTopic, *topic)
		if err != nil {
			return err
		}
		text = rendered
	} else {
		var err error
		if text, err = promptArg(fs); err != nil {
			return err
		}
	}

	gen, err := c.newGenerator(ctx, o, c.stderr)
	if err != nil {
		return err
	}

	raw, err := gen.Generate(ctx, temp.apply(generation.NewPrompt(text)))
	if err != nil {
		return err
	}

	doc, err := extract.FirstJSON(raw)
	if err != nil {
		return err
	}

	pretty, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, "Parsed OK")
	fmt.Fprintln(c.stdout, string(pretty))
	return nil
}
