package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leapvars/internal/config"
	"github.com/leapstack-labs/leapvars/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueFlags_Values(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.yaml")
	second := filepath.Join(dir, "b.yaml")
	require.NoError(t, os.WriteFile(first, []byte("user:\n  name: Ann\n  age: 30\ncity: Oslo\n"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("city: Bergen\n"), 0o600))

	f := valueFlags{
		files: []string{first, second},
		sets:  []string{"user.name=Bob", "empty=", "eq=a=b"},
	}
	got, err := f.values()
	require.NoError(t, err)
	assert.Equal(t, core.Values{
		"user.name": "Bob",
		"user.age":  30,
		"city":      "Bergen",
		"empty":     "",
		"eq":        "a=b",
	}, got)
}

func TestValueFlags_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("- just\n- a list\n"), 0o600))

	tests := []struct {
		name    string
		flags   valueFlags
		wantErr string
	}{
		{name: "missing file", flags: valueFlags{files: []string{filepath.Join(dir, "nope.yaml")}}, wantErr: "failed to read values file"},
		{name: "not a map", flags: valueFlags{files: []string{bad}}, wantErr: "invalid values file"},
		{name: "set without equals", flags: valueFlags{sets: []string{"k"}}, wantErr: "expected key=value"},
		{name: "set without key", flags: valueFlags{sets: []string{"=v"}}, wantErr: "expected key=value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.flags.values()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValueFlags_Injections(t *testing.T) {
	f := valueFlags{injects: []string{"static:user.name=Ann", "static:greeting=Hi", "clock:today=x:CURRENT_TIME:Y"}}
	got, err := f.injections()
	require.NoError(t, err)
	assert.Equal(t, map[string]core.Values{
		"static": {"user.name": "Ann", "greeting": "Hi"},
		"clock":  {"today": "x:CURRENT_TIME:Y"},
	}, got)

	for _, bad := range []string{"user.name=Ann", ":k=v", "static:novalue", "static:=v"} {
		_, err := (&valueFlags{injects: []string{bad}}).injections()
		assert.Error(t, err, bad)
	}
}

func TestTemplateName(t *testing.T) {
	root := t.TempDir()
	ctx := config.WithConfig(context.Background(), &config.Config{ProjectRoot: root})

	inside := filepath.Join(root, "templates", "a.txt")
	assert.Equal(t, "templates/a.txt", templateName(ctx, inside))
	assert.Equal(t, inside, templatePath(ctx, "templates/a.txt"))

	outside := filepath.Join(filepath.Dir(root), "elsewhere.txt")
	assert.Equal(t, filepath.ToSlash(outside), templateName(ctx, outside))
	assert.Equal(t, outside, templatePath(ctx, filepath.ToSlash(outside)))
}
