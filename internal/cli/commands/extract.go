package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapvars/internal/cli/output"
	"github.com/leapstack-labs/leapvars/pkg/core"
	"github.com/spf13/cobra"
)

// NewExtractCommand creates the extract command.
func NewExtractCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "List the placeholders a template references",
		Long: `List every distinct {placeholder} in a template, in order of first
appearance, and whether a configured adapter declares it.`,
		Example: `  leapvars extract welcome.txt
  leapvars extract welcome.txt --strict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			m, err := newManager(ctx)
			if err != nil {
				return err
			}
			tmpl, err := readTemplate(args[0])
			if err != nil {
				return err
			}
			vars, err := m.Variables()
			if err != nil {
				return err
			}
			declared := make(map[string]core.Variable, len(vars))
			for _, v := range vars {
				if _, dup := declared[v.Key]; !dup {
					declared[v.Key] = v
				}
			}

			type placeholder struct {
				Name     string `json:"name"`
				Count    int    `json:"count"`
				Declared bool   `json:"declared"`
				Fillable bool   `json:"fillable"`
			}
			var (
				found      []*placeholder
				byName     = make(map[string]*placeholder)
				undeclared []string
			)
			for _, name := range m.ExtractAll(tmpl) {
				if p, ok := byName[name]; ok {
					p.Count++
					continue
				}
				v, ok := declared[name]
				p := &placeholder{Name: name, Count: 1, Declared: ok, Fillable: ok && v.Fillable}
				byName[name] = p
				found = append(found, p)
				if !ok {
					undeclared = append(undeclared, name)
				}
			}

			r := output.FromContext(ctx)
			if r.Mode() == output.ModeJSON {
				if found == nil {
					found = []*placeholder{}
				}
				if err := r.JSON(found); err != nil {
					return err
				}
			} else {
				rows := make([][]any, 0, len(found))
				for _, p := range found {
					rows = append(rows, []any{p.Name, p.Count, p.Declared, p.Fillable})
				}
				if err := r.Table([]string{"PLACEHOLDER", "COUNT", "DECLARED", "FILLABLE"}, rows); err != nil {
					return err
				}
			}

			if strict && len(undeclared) > 0 {
				return fmt.Errorf("undeclared placeholders: %s", strings.Join(undeclared, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when a placeholder is not declared")

	return cmd
}
