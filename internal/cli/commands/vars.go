package commands

import (
	"github.com/leapstack-labs/leapvars/internal/cli/output"
	"github.com/leapstack-labs/leapvars/pkg/core"
	"github.com/spf13/cobra"
)

// VarsOptions holds options for the vars command.
type VarsOptions struct {
	Values       valueFlags
	FillableOnly bool
}

// NewVarsCommand creates the vars command.
func NewVarsCommand() *cobra.Command {
	opts := &VarsOptions{}

	cmd := &cobra.Command{
		Use:   "vars [file]",
		Short: "List declared variables",
		Long: `List every variable the configured adapters declare, in adapter order.

With a template file, only the variables the template references are listed.`,
		Example: `  # All variables
  leapvars vars

  # Variables a user may fill in for a template
  leapvars vars welcome.txt --fillable`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVars(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.FillableOnly, "fillable", false, "Only list fillable variables")
	cmd.Flags().StringArrayVar(&opts.Values.injects, "inject", nil, "Inject a default as adapter:key=value (repeatable)")

	return cmd
}

func runVars(cmd *cobra.Command, args []string, opts *VarsOptions) error {
	ctx := cmd.Context()

	m, err := newManager(ctx)
	if err != nil {
		return err
	}
	injections, err := opts.Values.injections()
	if err != nil {
		return err
	}
	if err := inject(m, injections); err != nil {
		return err
	}

	var vars []core.Variable
	if len(args) == 1 {
		tmpl, err := readTemplate(args[0])
		if err != nil {
			return err
		}
		if vars, err = m.Extract(tmpl); err != nil {
			return err
		}
		vars = uniqueVariables(vars)
	} else if vars, err = m.Variables(); err != nil {
		return err
	}

	if opts.FillableOnly {
		filtered := vars[:0]
		for _, v := range vars {
			if v.Fillable {
				filtered = append(filtered, v)
			}
		}
		vars = filtered
	}

	r := output.FromContext(ctx)
	if r.Mode() == output.ModeJSON {
		if vars == nil {
			vars = []core.Variable{}
		}
		return r.JSON(vars)
	}

	rows := make([][]any, 0, len(vars))
	for _, v := range vars {
		def, _ := core.Stringify(v.DefaultValue)
		rows = append(rows, []any{v.Key, v.Label, def, v.Fillable})
	}
	return r.Table([]string{"KEY", "LABEL", "DEFAULT", "FILLABLE"}, rows)
}

// uniqueVariables drops repeated keys, keeping first occurrences.
func uniqueVariables(vars []core.Variable) []core.Variable {
	seen := make(map[string]bool, len(vars))
	out := make([]core.Variable, 0, len(vars))
	for _, v := range vars {
		if seen[v.Key] {
			continue
		}
		seen[v.Key] = true
		out = append(out, v)
	}
	return out
}
