// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/leapstack-labs/leapvars/internal/cli/output"
)

// ProjectConfig is the leapvars.yaml written by SetupTestProject.
const ProjectConfig = `log_level: warn
models:
  site:
    attributes:
      name: Acme
      founded: 1999
    labels:
      name: Site name
  other:
    attributes:
      name: Globex
adapters:
  - id: static
    config:
      mode: key
      variables:
        - key: user.name
          label: Name
          defaultValue: Ann
        - key: greeting
          label: Greeting
          defaultValue: Hello
          fillable: false
  - id: computed
    config:
      variables:
        - key: shout
          label: Shout
          defaultValue: "x:text.upper:leap"
  - id: attribute
    config:
      variables:
        - key: site
          label: Site
          model: site
          attributes: [name]
`

// textMacros is the macros/text.star module written by SetupTestProject.
const textMacros = `def upper(s):
    """Upper case"""
    return s.upper()
`

// Templates written by SetupTestProject under templates/.
const (
	WelcomeTemplate = "{greeting} {user.name}, welcome to {site.name}! {shout}"
	FooterTemplate  = "-- {site.name} {unknown}"
)

// SetupTestProject creates a temporary project with a config, a macro module
// and two templates. It returns the project directory.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()

	for _, dir := range []string{"macros", "templates"} {
		if err := os.MkdirAll(filepath.Join(tmpDir, dir), 0o750); err != nil {
			t.Fatalf("failed to create directory %s: %v", dir, err)
		}
	}

	files := map[string]string{
		"leapvars.yaml":         ProjectConfig,
		"macros/text.star":      textMacros,
		"templates/welcome.txt": WelcomeTemplate,
		"templates/footer.txt":  FooterTemplate,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}

	return tmpDir
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a test renderer in the given mode.
func NewTestRenderer(mode output.Mode) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRenderer(out, errOut, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}
