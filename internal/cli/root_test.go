package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/leapvars/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command inside a fresh test project.
func run(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", filepath.Join(dir, "leapvars.yaml")}, args...))

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func setup(t *testing.T) string {
	t.Helper()
	dir := testutil.SetupTestProject(t)
	t.Chdir(dir)
	return dir
}

func TestRootCommand_Metadata(t *testing.T) {
	cmd := NewRootCmd()

	assert.Equal(t, "leapvars", cmd.Use)
	for _, flag := range []string{"config", "state", "macros", "log-level", "output", "collision"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"render", "vars", "extract", "store", "history", "version", "completion"} {
		assert.Contains(t, names, want)
	}
}

func TestRender(t *testing.T) {
	dir := setup(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "defaults",
			args: []string{"render", "templates/welcome.txt"},
			want: "Hello Ann, welcome to Acme! LEAP",
		},
		{
			name: "set override",
			args: []string{"render", "templates/welcome.txt", "--set", "user.name=Bob"},
			want: "Hello Bob, welcome to Acme! LEAP",
		},
		{
			name: "inject default",
			args: []string{"render", "templates/welcome.txt", "--inject", "static:user.name=Cy"},
			want: "Hello Cy, welcome to Acme! LEAP",
		},
		{
			name: "inject model identifier",
			args: []string{"render", "templates/welcome.txt", "--inject", "attribute:site=other"},
			want: "Hello Ann, welcome to Globex! LEAP",
		},
		{
			name: "undeclared placeholder is kept",
			args: []string{"render", "templates/footer.txt"},
			want: "-- Acme {unknown}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, dir, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRender_ValuesFile(t *testing.T) {
	dir := setup(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "answers.yaml"), []byte("user:\n  name: Dee\n"), 0o600))

	out, _, err := run(t, dir, "render", "templates/welcome.txt", "--values", "answers.yaml")
	require.NoError(t, err)
	assert.Equal(t, "Hello Dee, welcome to Acme! LEAP", out)

	// --set wins over the values file
	out, _, err = run(t, dir, "render", "templates/welcome.txt", "--values", "answers.yaml", "--set", "user.name=Eve")
	require.NoError(t, err)
	assert.Equal(t, "Hello Eve, welcome to Acme! LEAP", out)
}

func TestRender_MultipleFiles(t *testing.T) {
	dir := setup(t)

	out, _, err := run(t, dir, "render", "templates/welcome.txt", "templates/footer.txt")
	require.NoError(t, err)
	assert.Equal(t,
		"==> templates/welcome.txt <==\nHello Ann, welcome to Acme! LEAP\n\n==> templates/footer.txt <==\n-- Acme {unknown}\n",
		out)

	out, _, err = run(t, dir, "-o", "json", "render", "templates/welcome.txt", "templates/footer.txt")
	require.NoError(t, err)
	var docs []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	require.Len(t, docs, 2)
	assert.Equal(t, "templates/footer.txt", docs[1]["file"])
	assert.Equal(t, "-- Acme {unknown}", docs[1]["output"])
}

func TestRender_Errors(t *testing.T) {
	dir := setup(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "no template", args: []string{"render"}, wantErr: "no template given"},
		{name: "missing file", args: []string{"render", "templates/nope.txt"}, wantErr: "failed to read template"},
		{name: "bad set", args: []string{"render", "templates/welcome.txt", "--set", "novalue"}, wantErr: "expected key=value"},
		{name: "bad inject", args: []string{"render", "templates/welcome.txt", "--inject", "user.name=x"}, wantErr: "expected adapter:key=value"},
		{name: "unknown snapshot", args: []string{"render", "--snapshot", "nope"}, wantErr: "snapshot not found"},
		{name: "bad output", args: []string{"-o", "yaml", "render", "templates/welcome.txt"}, wantErr: "output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, dir, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestVars(t *testing.T) {
	dir := setup(t)

	out, _, err := run(t, dir, "-o", "json", "vars")
	require.NoError(t, err)

	var vars []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &vars))
	keys := make([]string, 0, len(vars))
	for _, v := range vars {
		keys = append(keys, v["key"].(string))
	}
	assert.Equal(t, []string{"user.name", "greeting", "shout", "CURRENT_TIME", "text.upper", "site.name"}, keys)

	out, _, err = run(t, dir, "-o", "json", "vars", "templates/welcome.txt", "--fillable")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &vars))
	require.Len(t, vars, 1)
	assert.Equal(t, "user.name", vars[0]["key"])

	out, _, err = run(t, dir, "-o", "markdown", "vars", "templates/footer.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "| KEY | LABEL | DEFAULT | FILLABLE |")
	assert.Contains(t, out, "| site.name | Site name Site | Acme | false |")
	testutil.AssertNoANSI(t, out)
}

func TestExtract(t *testing.T) {
	dir := setup(t)

	out, _, err := run(t, dir, "-o", "json", "extract", "templates/footer.txt")
	require.NoError(t, err)

	var found []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &found))
	require.Len(t, found, 2)
	assert.Equal(t, "site.name", found[0]["name"])
	assert.Equal(t, true, found[0]["declared"])
	assert.Equal(t, "unknown", found[1]["name"])
	assert.Equal(t, false, found[1]["declared"])

	_, _, err = run(t, dir, "extract", "templates/footer.txt", "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undeclared placeholders: unknown")

	_, _, err = run(t, dir, "extract", "templates/welcome.txt", "--strict")
	require.NoError(t, err)
}

func TestStoreAndHistory(t *testing.T) {
	dir := setup(t)

	out, _, err := run(t, dir, "-o", "json", "store", "templates/welcome.txt", "--set", "user.name=Bob")
	require.NoError(t, err)

	var snap struct {
		ID       string         `json:"id"`
		Template string         `json:"template"`
		Values   map[string]any `json:"values"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, "templates/welcome.txt", snap.Template)
	assert.Equal(t, map[string]any{
		"greeting":  "Hello",
		"user.name": "Bob",
		"site.name": "Acme",
		"shout":     "x:text.upper:leap",
	}, snap.Values)
	assert.FileExists(t, filepath.Join(dir, ".leapvars", "state.db"))

	// Re-render from the snapshot without naming the template
	out, _, err = run(t, dir, "render", "--snapshot", snap.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello Bob, welcome to Acme! LEAP", out)

	_, _, err = run(t, dir, "store", "templates/welcome.txt")
	require.NoError(t, err)

	out, _, err = run(t, dir, "-o", "json", "history", "templates/welcome.txt")
	require.NoError(t, err)
	var snaps []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &snaps))
	require.Len(t, snaps, 2)
	assert.Equal(t, snap.ID, snaps[1]["id"], "newest first")

	out, _, err = run(t, dir, "-o", "markdown", "history", "--show", snap.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "| user.name | Bob |")

	out, _, err = run(t, dir, "-o", "markdown", "history", "templates/welcome.txt", "--latest")
	require.NoError(t, err)
	assert.Contains(t, out, "templates/welcome.txt")
	assert.NotContains(t, out, snap.ID)
	assert.NotContains(t, out, "Bob")

	out, _, err = run(t, dir, "-o", "markdown", "history", "templates/footer.txt")
	require.NoError(t, err)
	assert.Equal(t, "(0 rows)", strings.TrimSpace(out))
}

func TestStore_InjectedModel(t *testing.T) {
	dir := setup(t)

	out, _, err := run(t, dir, "-o", "json", "store", "templates/footer.txt", "--inject", "attribute:site=other")
	require.NoError(t, err)

	var snap struct {
		Values map[string]any `json:"values"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, map[string]any{"site.name": "Globex"}, snap.Values)

	_, _, err = run(t, dir, "render", "templates/footer.txt", "--inject", "attribute:site=missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to resolve injected models")
}

func TestCollisionPolicyFlag(t *testing.T) {
	dir := setup(t)
	cfg := testutil.ProjectConfig + `  - id: shadow
    type: static
    config:
      variables:
        - key: greeting
          defaultValue: Hi
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "leapvars.yaml"), []byte(cfg), 0o600))

	out, _, err := run(t, dir, "render", "templates/welcome.txt")
	require.NoError(t, err)
	assert.Equal(t, "Hello Ann, welcome to Acme! LEAP", out)

	_, _, err = run(t, dir, "--collision", "error", "vars")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "greeting")
}

func TestCompletionCommand(t *testing.T) {
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"completion", "bash"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "leapvars")
}
