package commands

import (
	"errors"
	"sort"
	"time"

	"github.com/leapstack-labs/leapvars/internal/cli/output"
	"github.com/leapstack-labs/leapvars/internal/state"
	"github.com/leapstack-labs/leapvars/pkg/core"
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	var (
		show   string
		latest bool
	)

	cmd := &cobra.Command{
		Use:   "history [template]",
		Short: "List stored snapshots",
		Long: `List the snapshots saved by 'leapvars store', newest first.

With --show, print the values of a single snapshot. With --latest, print the
values of the newest snapshot for the given template.`,
		Example: `  leapvars history
  leapvars history welcome.txt
  leapvars history --show 3f1c...
  leapvars history welcome.txt --latest`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r := output.FromContext(ctx)

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			var template string
			if len(args) == 1 {
				template = templateName(ctx, args[0])
			}

			switch {
			case show != "":
				snap, err := store.Get(ctx, show)
				if err != nil {
					return err
				}
				return writeSnapshot(r, snap)
			case latest:
				if template == "" {
					return errors.New("--latest requires a template")
				}
				snap, err := store.Latest(ctx, template)
				if err != nil {
					return err
				}
				return writeSnapshot(r, snap)
			}

			snaps, err := store.List(ctx, template)
			if err != nil {
				return err
			}
			if r.Mode() == output.ModeJSON {
				if snaps == nil {
					snaps = []*state.Snapshot{}
				}
				return r.JSON(snaps)
			}

			rows := make([][]any, 0, len(snaps))
			for _, s := range snaps {
				rows = append(rows, []any{s.ID, s.Template, len(s.Values), s.CreatedAt.Local().Format(time.DateTime)})
			}
			return r.Table([]string{"ID", "TEMPLATE", "VALUES", "CREATED"}, rows)
		},
	}

	cmd.Flags().StringVar(&show, "show", "", "Show the values of a snapshot")
	cmd.Flags().BoolVar(&latest, "latest", false, "Show the newest snapshot of the template")

	return cmd
}

func writeSnapshot(r *output.Renderer, snap *state.Snapshot) error {
	if r.Mode() == output.ModeJSON {
		return r.JSON(snap)
	}

	keys := make([]string, 0, len(snap.Values))
	for k := range snap.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]any, 0, len(keys))
	for _, k := range keys {
		v, _ := core.Stringify(snap.Values[k])
		rows = append(rows, []any{k, v})
	}
	r.Printf("Snapshot %s (%s, %s)\n", snap.ID, snap.Template, snap.CreatedAt.Local().Format(time.DateTime))
	return r.Table([]string{"KEY", "VALUE"}, rows)
}
