package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/mcncl/jsonsynth/internal/config"
	"github.com/mcncl/jsonsynth/internal/errors"
	"github.com/mcncl/jsonsynth/internal/generator"
)

// CLI defines the command-line interface
var CLI struct {
	Input         string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output        string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Target        string `help:"Output target (${targets})." short:"t"`
	RootName      string `help:"Name for the root type." short:"r" name:"root"`
	Casing        string `help:"Field casing: auto, preserve, camel, pascal or snake."`
	Nullable      string `help:"How null fields are typed: wrap or none."`
	Formats       bool   `help:"Detect string formats such as date-time and uuid (default)." xor:"formats"`
	NoFormats     bool   `help:"Type every string as a plain string." name:"no-formats" xor:"formats"`
	Singularize   bool   `help:"Singularize array element type names (default)." xor:"singularize"`
	NoSingularize bool   `help:"Name array element types after the array key as written." name:"no-singularize" xor:"singularize"`
	Aliases       string `help:"When to annotate fields with their JSON key: auto, always or never."`
	Namespace     string `help:"Package, namespace or $id of the output." short:"n"`
	Merge         string `help:"Object identity: name or structural."`
	MaxDepth      int    `help:"Maximum nesting depth of the input." name:"max-depth"`
	Config        string `help:"Path to config file. Defaults to .jsonsynth.yml searched upward from the working directory." short:"c" type:"path"`
	Debug         bool   `help:"Enable debug logging." short:"d"`
	Version       bool   `help:"Show version information." short:"v"`
	ListTargets   bool   `help:"List the available output targets and exit." name:"list-targets"`
	Interactive   bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Logger *slog.Logger
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("jsonsynth"),
		kong.Description("Infer types from a JSON sample and generate declarations for Go, C#, Kotlin, pydantic or JSON Schema"),
		kong.UsageOnError(),
		kong.Vars{"targets": strings.Join(generator.Targets(), ", ")},
	)

	// No arguments and a terminal on stdin means the user wants to paste JSON
	if len(os.Args) == 1 && isTerminal(os.Stdin) {
		CLI.Interactive = true
	}

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		parser.FatalIfErrorf(err)
	}

	if CLI.Version {
		fmt.Printf("jsonsynth version %s\n", Version)
		return
	}
	if CLI.ListTargets {
		for _, name := range generator.Targets() {
			fmt.Println(name)
		}
		return
	}

	ctx, err := newContext()
	if err == nil {
		err = run(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonsynth --help\n")
		os.Exit(1)
	}
}

// newContext loads the config file and layers the command line over it.
func newContext() (*Context, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(configPath, overrides())
	if err != nil {
		return nil, errors.NewOptionsError("failed to load configuration", err)
	}

	ctx := &Context{Debug: cfg.Dev.Debug, Config: cfg}
	ctx.Logger = newLogger(ctx.Debug, os.Stderr)
	if configPath != "" {
		ctx.Logger.Debug("loaded config file", "path", configPath)
	}
	return ctx, nil
}

func overrides() config.Overrides {
	return config.Overrides{
		Target:        CLI.Target,
		RootName:      CLI.RootName,
		Namespace:     CLI.Namespace,
		Casing:        CLI.Casing,
		Aliases:       CLI.Aliases,
		Nullable:      CLI.Nullable,
		Merge:         CLI.Merge,
		MaxDepth:      CLI.MaxDepth,
		Formats:       flagSwitch(CLI.Formats, CLI.NoFormats),
		Singularize:   flagSwitch(CLI.Singularize, CLI.NoSingularize),
		Debug:         CLI.Debug,
	}
}

// flagSwitch returns nil when neither form of a switch was given, so the
// config file value stands.
func flagSwitch(on, off bool) *bool {
	if !on && !off {
		return nil
	}
	return &on
}

// newLogger logs to w at debug level when debug is set and discards
// everything else.
func newLogger(debug bool, w io.Writer) *slog.Logger {
	if !debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// run executes the main program logic
func run(ctx *Context) error {
	if ctx.Config == nil {
		ctx.Config = config.NewConfig()
	}
	if ctx.Logger == nil {
		ctx.Logger = newLogger(ctx.Debug, os.Stderr)
	}
	log := ctx.Logger

	// 1. Validate options before reading any input
	gen, err := generator.NewGenerator(ctx.Config.Options())
	if err != nil {
		return err
	}
	opts := gen.Options()
	log.Debug("resolved options",
		"target", opts.Target,
		"root", opts.RootName,
		"casing", opts.Casing,
		"nullable", opts.Nullable,
		"merge", opts.Merge,
		"max_depth", opts.MaxDepth,
	)

	// 2. Read, parse, infer and render
	res, err := generate(gen, log)
	if err != nil {
		return err
	}
	log.Debug("generated output", "types", strings.Join(res.Types, ","), "bytes", len(res.Source))

	// 4. Output the result
	return writeOutput(res.Source)
}

// generate runs gen over the input file, piped stdin or interactive input
func generate(gen *generator.Generator, log *slog.Logger) (*generator.Result, error) {
	if CLI.Input != "" {
		log.Debug("reading input", "file", CLI.Input)
		return gen.RunFile(CLI.Input)
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return nil, errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		if !CLI.Interactive {
			return nil, errors.NewInputError("no input provided", errors.ErrNoInput)
		}
		data, err := readInteractiveInput()
		if err != nil {
			return nil, err
		}
		log.Debug("read interactive input", "bytes", len(data))
		return gen.Run(data)
	}

	log.Debug("reading input", "file", "stdin")
	return gen.RunReader(os.Stdin)
}

// writeOutput writes source to file or stdout
func writeOutput(source string) error {
	if CLI.Output != "" {
		if err := os.WriteFile(CLI.Output, []byte(source), 0644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Generated code written to %s\n", CLI.Output)
		return nil
	}

	if _, err := fmt.Println(strings.TrimRight(source, "\n")); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste JSON
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput() ([]byte, error) {
	fmt.Fprintln(os.Stderr, "jsonsynth interactive mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(os.Stdin)
	var sb strings.Builder
	for {
		line, err := reader.ReadString('\n')
		sb.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewInputError("error reading input", err)
		}
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSON...")
	return []byte(sb.String()), nil
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
