package commands

import (
	"github.com/leapstack-labs/leapvars/internal/cli/output"
	"github.com/leapstack-labs/leapvars/pkg/manager"
	"github.com/spf13/cobra"
)

// NewStoreCommand creates the store command.
func NewStoreCommand() *cobra.Command {
	var values valueFlags

	cmd := &cobra.Command{
		Use:   "store <file>",
		Short: "Save the storable values of a template",
		Long: `Reduce the supplied values to what a template needs and save them as a
snapshot in the state database.

Fixed variables are saved with their current default, fillable variables with
the supplied value, or an empty string when none is given.`,
		Example: `  leapvars store welcome.txt --set user.name=Bob
  leapvars store welcome.txt --values answers.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			vals, err := values.values()
			if err != nil {
				return err
			}
			injections, err := values.injections()
			if err != nil {
				return err
			}
			m, err := newManager(ctx)
			if err != nil {
				return err
			}
			if err := inject(m, injections); err != nil {
				return err
			}

			tmpl, err := readTemplate(args[0])
			if err != nil {
				return err
			}
			storable, err := m.Storables(manager.Document{Template: tmpl, Values: vals})
			if err != nil {
				return err
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			snap, err := store.Save(ctx, templateName(ctx, args[0]), storable)
			if err != nil {
				return err
			}

			r := output.FromContext(ctx)
			if r.Mode() == output.ModeJSON {
				return r.JSON(snap)
			}
			r.Printf("Stored snapshot %s for %s (%d values)\n", snap.ID, snap.Template, len(snap.Values))
			return nil
		},
	}

	values.register(cmd)

	return cmd
}
