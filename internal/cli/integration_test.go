package cli_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "../../testdata/samples/user.json"

func jsonsynth(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := exec.Command("go", append([]string{"run", "../../main.go"}, args...)...)
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func TestCLI_FileInputOutput(t *testing.T) {
	tests := []struct {
		target string
		ext    string
		want   []string
	}{
		{"go", ".go", []string{"package models", "type Account struct", "Address *Address", "PhoneNumbers []PhoneNumber", "Birthday string", "CreatedAt time.Time"}},
		{"csharp", ".cs", []string{"namespace models;", "public class Account", "public DateOnly Birthday { get; set; }", "public Uri Homepage { get; set; }", "public List<PhoneNumber> PhoneNumbers { get; set; }"}},
		{"kotlin", ".kt", []string{"package models", "data class Account(", "val phoneNumbers: List<PhoneNumber>,"}},
		{"pydantic", ".py", []string{"class Account(BaseModel):", "last_ip: IPv4Address", "birthday: datetime.date", "uuid: UUID"}},
		{"jsonschema", ".schema.json", []string{`"$id": "models"`, `"title": "Account"`, `"format": "ipv4"`, `"format": "uri"`}},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			namespace := "models"
			if tt.target == "pydantic" {
				namespace = ""
			}
			outputFile := filepath.Join(t.TempDir(), "account"+tt.ext)
			args := []string{"-i", sample, "-o", outputFile, "-t", tt.target, "-r", "Account"}
			if namespace != "" {
				args = append(args, "-n", namespace)
			}

			_, stderr, err := jsonsynth(t, "", args...)
			require.NoError(t, err, stderr)

			content, err := os.ReadFile(outputFile)
			require.NoError(t, err)
			for _, fragment := range tt.want {
				assert.Contains(t, string(content), fragment)
			}
		})
	}
}

func TestCLI_StdinStdout(t *testing.T) {
	stdout, stderr, err := jsonsynth(t, `{"name": "test", "value": 123}`)
	require.NoError(t, err, stderr)

	assert.Contains(t, stdout, "package main")
	assert.Contains(t, stdout, "type Root struct")
	assert.Regexp(t, `Name\s+string`, stdout)
	assert.Regexp(t, `Value\s+int`, stdout)
}

func TestCLI_ArrayInput(t *testing.T) {
	stdout, stderr, err := jsonsynth(t, `[{"id": 1, "name": "Item 1"}, {"id": 2, "name": "Item 2"}]`, "-r", "Items")
	require.NoError(t, err, stderr)

	assert.Contains(t, stdout, "type Items struct")
	assert.Regexp(t, `Name\s+string\s+\x60json:"name"\x60`, stdout)
	assert.NotContains(t, stdout, "type Item struct", "the root element takes the root name as written")
}

func TestCLI_NoFormats(t *testing.T) {
	stdout, stderr, err := jsonsynth(t, "", "-i", sample, "--no-formats")
	require.NoError(t, err, stderr)

	assert.NotContains(t, stdout, "time.Time")
	assert.Regexp(t, `CreatedAt\s+string`, stdout)
}

func TestCLI_FormatsOverridesConfigFile(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "jsonsynth.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("types:\n  detect_formats: false\n"), 0644))

	stdout, stderr, err := jsonsynth(t, "", "-i", sample, "-c", cfgFile)
	require.NoError(t, err, stderr)
	assert.NotContains(t, stdout, "time.Time")

	stdout, stderr, err = jsonsynth(t, "", "-i", sample, "-c", cfgFile, "--formats")
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "time.Time")
}

func TestCLI_ConflictingSwitches(t *testing.T) {
	_, stderr, err := jsonsynth(t, "", "-i", sample, "--formats", "--no-formats")
	require.Error(t, err)
	assert.Contains(t, stderr, "--no-formats")
}

func TestCLI_NoSingularize(t *testing.T) {
	stdout, stderr, err := jsonsynth(t, "", "-i", sample, "--no-singularize")
	require.NoError(t, err, stderr)

	assert.Contains(t, stdout, "type PhoneNumbers struct")
}

func TestCLI_InvalidJSON(t *testing.T) {
	_, stderr, err := jsonsynth(t, `{"name": "test", "value": 123,}`)
	require.Error(t, err)
	assert.Contains(t, stderr, "JSON parsing error")
}

func TestCLI_EmptyInput(t *testing.T) {
	_, stderr, err := jsonsynth(t, "")
	require.Error(t, err)
	assert.Contains(t, stderr, "error")
}

func TestCLI_Version(t *testing.T) {
	stdout, _, err := jsonsynth(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "jsonsynth version")
}

func TestCLI_Help(t *testing.T) {
	stdout, _, err := jsonsynth(t, "", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Usage:")
	assert.Contains(t, stdout, "--target")
	assert.Contains(t, stdout, "csharp, go, jsonschema, kotlin, pydantic")
}
