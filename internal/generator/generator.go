// Package generator is the entry point of the pipeline: parse, infer, name,
// then render with the emitter registered for the chosen target.
package generator

import (
	"io"

	"github.com/mcncl/jsonsynth/internal/analyzer"
	"github.com/mcncl/jsonsynth/internal/config"
	"github.com/mcncl/jsonsynth/internal/emitter"
	"github.com/mcncl/jsonsynth/internal/emitter/csharp"
	"github.com/mcncl/jsonsynth/internal/emitter/golang"
	"github.com/mcncl/jsonsynth/internal/emitter/jsonschema"
	"github.com/mcncl/jsonsynth/internal/emitter/kotlin"
	"github.com/mcncl/jsonsynth/internal/emitter/pydantic"
	"github.com/mcncl/jsonsynth/internal/errors"
	"github.com/mcncl/jsonsynth/internal/graph"
	"github.com/mcncl/jsonsynth/internal/models"
	"github.com/mcncl/jsonsynth/internal/parser"
)

func init() {
	emitter.Register(jsonschema.New())
	emitter.Register(golang.New())
	emitter.Register(csharp.New())
	emitter.Register(kotlin.New())
	emitter.Register(pydantic.New())
}

// Result is the output of one generation run.
type Result struct {
	Source    string
	Target    config.Target
	Extension string   // file extension of Source, e.g. ".kt"
	Types     []string // declared type names, root first
}

// Generator runs the pipeline with one set of resolved options. It holds no
// state between runs and is safe for concurrent use.
type Generator struct {
	opts    config.Options
	emitter emitter.Emitter
}

// NewGenerator validates opts and selects the emitter for its target.
// Invalid options are reported here, before any input is read.
func NewGenerator(opts config.Options) (*Generator, error) {
	resolved, err := opts.Resolve()
	if err != nil {
		return nil, err
	}
	e, err := emitter.Get(string(resolved.Target))
	if err != nil {
		return nil, errors.NewOptionsError(err.Error(), errors.ErrUnknownTarget)
	}
	return &Generator{opts: resolved, emitter: e}, nil
}

// Options returns the resolved options the generator runs with.
func (g *Generator) Options() config.Options {
	return g.opts
}

// Run generates source for one JSON document.
func (g *Generator) Run(data []byte) (*Result, error) {
	ir, err := parser.ParseBytes(data, g.opts.MaxDepth)
	if err != nil {
		return nil, err
	}
	return g.render(ir)
}

// RunFile is Run over the contents of the file at path. A missing or empty
// file is an input error.
func (g *Generator) RunFile(path string) (*Result, error) {
	ir, err := parser.ParseFile(path, g.opts.MaxDepth)
	if err != nil {
		return nil, err
	}
	return g.render(ir)
}

// RunReader is Run over everything r yields.
func (g *Generator) RunReader(r io.Reader) (*Result, error) {
	ir, err := parser.ParseLimited(r, g.opts.MaxDepth)
	if err != nil {
		return nil, err
	}
	return g.render(ir)
}

func (g *Generator) render(ir models.IntermediateRepresentation) (*Result, error) {
	tree, err := analyzer.NewAnalyzerWithOptions(g.opts).Analyze(ir, g.opts.RootName)
	if err != nil {
		return nil, errors.NewGenerateError("failed to infer types", err)
	}

	sg, err := graph.Build(tree, g.opts)
	if err != nil {
		return nil, errors.NewGenerateError("failed to assemble type graph", err)
	}

	source, err := g.emitter.Emit(sg, g.opts)
	if err != nil {
		return nil, errors.NewGenerateError("failed to render "+g.emitter.Name()+" output", err)
	}

	types := make([]string, 0, sg.Len())
	for _, decl := range sg.Declarations() {
		types = append(types, decl.Name)
	}
	return &Result{
		Source:    source,
		Target:    g.opts.Target,
		Extension: g.emitter.FileExtension(),
		Types:     types,
	}, nil
}

// Generate renders rawJSON with opts and returns the source text. Invalid
// input yields an error matching errors.ErrInvalidJSON, input nested past
// MaxDepth one matching errors.ErrTooDeep.
func Generate(rawJSON string, opts config.Options) (string, error) {
	g, err := NewGenerator(opts)
	if err != nil {
		return "", err
	}
	res, err := g.Run([]byte(rawJSON))
	if err != nil {
		return "", err
	}
	return res.Source, nil
}

// Targets returns the names of every registered target, sorted.
func Targets() []string {
	return emitter.Available()
}
