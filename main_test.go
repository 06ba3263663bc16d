package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonsynth/internal/config"
	"github.com/mcncl/jsonsynth/internal/errors"
	"github.com/mcncl/jsonsynth/internal/generator"
)

// resetCLI restores CLI after the test.
func resetCLI(t *testing.T) {
	t.Helper()
	original := CLI
	t.Cleanup(func() { CLI = original })
}

func writeTemp(t *testing.T, pattern, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), pattern)
	require.NoError(t, err)
	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())
	return tmpFile.Name()
}

func contextFromCLI(t *testing.T) *Context {
	t.Helper()
	cfg := config.MergeOverrides(config.NewConfig(), overrides())
	return &Context{Debug: cfg.Dev.Debug, Config: cfg}
}

func TestRun_FileToFile(t *testing.T) {
	resetCLI(t)
	CLI.Input = writeTemp(t, "input_*.json", `{"name": "John", "age": 30, "address": {"city": "NYC"}}`)
	CLI.Output = filepath.Join(t.TempDir(), "out.go")
	CLI.Namespace = "models"
	CLI.RootName = "Person"

	require.NoError(t, run(contextFromCLI(t)))

	content, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	code := string(content)
	assert.Contains(t, code, "package models")
	assert.Contains(t, code, "type Person struct")
	assert.Contains(t, code, "type Address struct")
	assert.Less(t, strings.Index(code, "type Person struct"), strings.Index(code, "type Address struct"))
}

func TestRun_EachTarget(t *testing.T) {
	markers := map[string]string{
		"go":         "type Root struct",
		"csharp":     "public class Root",
		"kotlin":     "data class Root(",
		"pydantic":   "class Root(BaseModel):",
		"jsonschema": `"$schema": "https://json-schema.org/draft/2020-12/schema"`,
	}
	input := writeTemp(t, "input_*.json", `{"id": 1, "tags": ["a"]}`)
	for target, marker := range markers {
		t.Run(target, func(t *testing.T) {
			resetCLI(t)
			CLI.Input = input
			CLI.Target = target
			CLI.Output = filepath.Join(t.TempDir(), "out")

			require.NoError(t, run(contextFromCLI(t)))
			content, err := os.ReadFile(CLI.Output)
			require.NoError(t, err)
			assert.Contains(t, string(content), marker)
		})
	}
}

func TestRun_FlagsOverrideConfigFile(t *testing.T) {
	resetCLI(t)
	cfgPath := writeTemp(t, "jsonsynth_*.yml", "target: kotlin\nnamespace: com.example\ntypes:\n  nullable: none\n")
	CLI.Input = writeTemp(t, "input_*.json", `{"middle_name": null}`)
	CLI.Output = filepath.Join(t.TempDir(), "out.kt")
	CLI.Namespace = "org.override"

	base, err := config.LoadConfig(cfgPath)
	require.NoError(t, err)
	cfg := config.MergeOverrides(base, overrides())

	require.NoError(t, run(&Context{Config: cfg}))
	content, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "package org.override")
	assert.Contains(t, string(content), "val middleName: JsonElement,")
}

func TestRun_NoFormats(t *testing.T) {
	resetCLI(t)
	CLI.NoFormats = true
	CLI.Input = writeTemp(t, "input_*.json", `{"at": "2024-01-15T10:30:00Z"}`)
	CLI.Output = filepath.Join(t.TempDir(), "out.go")

	require.NoError(t, run(contextFromCLI(t)))
	content, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "time.Time")
}

func TestRun_FormatsFlagOverridesConfigFile(t *testing.T) {
	resetCLI(t)
	cfgPath := writeTemp(t, "jsonsynth_*.yml", "types:\n  detect_formats: false\n")
	CLI.Input = writeTemp(t, "input_*.json", `{"at": "2024-01-15T10:30:00Z"}`)
	CLI.Output = filepath.Join(t.TempDir(), "out.go")

	base, err := config.LoadConfig(cfgPath)
	require.NoError(t, err)
	require.False(t, base.Types.DetectFormats)

	require.NoError(t, run(&Context{Config: config.MergeOverrides(base, overrides())}))
	content, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "time.Time", "without the flag the config file wins")

	CLI.Formats = true
	require.NoError(t, run(&Context{Config: config.MergeOverrides(base, overrides())}))
	content, err = os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "time.Time")
}

func TestRun_InvalidOptionsBeforeInput(t *testing.T) {
	resetCLI(t)
	CLI.Target = "fortran"
	CLI.Input = "/non/existent/file.json"

	err := run(contextFromCLI(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnknownTarget)
}

func TestRun_InvalidJSON(t *testing.T) {
	resetCLI(t)
	CLI.Input = writeTemp(t, "invalid_*.json", `{"invalid": json}`)

	err := run(contextFromCLI(t))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidJSON(err))
	assert.Contains(t, errors.UserFriendlyError(err), "JSON parsing error")
}

func TestRun_TooDeep(t *testing.T) {
	resetCLI(t)
	CLI.MaxDepth = 3
	CLI.Input = writeTemp(t, "deep_*.json", `[[[[1]]]]`)

	err := run(contextFromCLI(t))
	require.Error(t, err)
	assert.True(t, errors.IsTooDeep(err))
}

func newTestGenerator(t *testing.T) *generator.Generator {
	t.Helper()
	gen, err := generator.NewGenerator(config.DefaultOptions())
	require.NoError(t, err)
	return gen
}

func TestGenerate_FromStdin(t *testing.T) {
	resetCLI(t)
	originalStdin := os.Stdin
	t.Cleanup(func() { os.Stdin = originalStdin })

	jsonData := `[{"item": "apple"}, {"item": "banana"}]`
	r, w, err := os.Pipe()
	require.NoError(t, err)
	go func() {
		defer func() { _ = w.Close() }()
		_, _ = w.WriteString(jsonData)
	}()
	os.Stdin = r
	defer func() { _ = r.Close() }()

	res, err := generate(newTestGenerator(t), newLogger(false, nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"Root"}, res.Types)
	assert.Contains(t, res.Source, "type Root struct")
}

func TestGenerate_FileErrors(t *testing.T) {
	resetCLI(t)
	gen := newTestGenerator(t)
	log := newLogger(false, nil)

	CLI.Input = writeTemp(t, "empty_*.json", "")
	_, err := generate(gen, log)
	assert.ErrorIs(t, err, errors.ErrFileEmpty)

	CLI.Input = "/non/existent/file.json"
	_, err = generate(gen, log)
	assert.ErrorIs(t, err, errors.ErrFileNotFound)
}

func TestWriteOutput_ToFile(t *testing.T) {
	resetCLI(t)
	CLI.Output = filepath.Join(t.TempDir(), "out.go")

	testCode := "package main\n\ntype Test struct {\n\tName string `json:\"name\"`\n}\n"
	require.NoError(t, writeOutput(testCode))

	content, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Equal(t, testCode, string(content))
}

func TestWriteOutput_FileError(t *testing.T) {
	resetCLI(t)
	CLI.Output = "/non/existent/dir/output.go"

	err := writeOutput("test code")
	require.Error(t, err)
	assert.Contains(t, errors.UserFriendlyError(err), "Output error")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	newLogger(true, &buf).Debug("resolved options", "target", "go")
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "target=go")

	buf.Reset()
	newLogger(false, &buf).Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestOverrides(t *testing.T) {
	resetCLI(t)
	CLI.Target = "csharp"
	CLI.NoSingularize = true
	CLI.Merge = "structural"

	o := overrides()
	assert.Equal(t, "csharp", o.Target)
	assert.Equal(t, "structural", o.Merge)
	require.NotNil(t, o.Singularize)
	assert.False(t, *o.Singularize)
	assert.Nil(t, o.Formats, "an absent switch leaves the config value alone")

	CLI.Formats = true
	o = overrides()
	require.NotNil(t, o.Formats)
	assert.True(t, *o.Formats)
}
