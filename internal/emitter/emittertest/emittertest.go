// Package emittertest builds SchemaGraphs from JSON text for emitter tests.
package emittertest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonsynth/internal/analyzer"
	"github.com/mcncl/jsonsynth/internal/config"
	"github.com/mcncl/jsonsynth/internal/graph"
	"github.com/mcncl/jsonsynth/internal/models"
	"github.com/mcncl/jsonsynth/internal/parser"
)

// Options returns resolved default options for target, modified by mutate
// when it is not nil.
func Options(t testing.TB, target config.Target, mutate func(*config.Options)) config.Options {
	t.Helper()
	opts := config.DefaultOptions()
	opts.Target = target
	if mutate != nil {
		mutate(&opts)
	}
	resolved, err := opts.Resolve()
	require.NoError(t, err)
	return resolved
}

// Graph parses input and assembles its SchemaGraph under opts.
func Graph(t testing.TB, input string, opts config.Options) *models.SchemaGraph {
	t.Helper()
	ir, err := parser.ParseString(input)
	require.NoError(t, err)
	tree, err := analyzer.NewAnalyzerWithOptions(opts).Analyze(ir, opts.RootName)
	require.NoError(t, err)
	g, err := graph.Build(tree, opts)
	require.NoError(t, err)
	return g
}
