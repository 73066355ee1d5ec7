package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/leapvars/internal/cli/output"
	"github.com/leapstack-labs/leapvars/internal/config"
	"github.com/leapstack-labs/leapvars/pkg/core"
	"github.com/leapstack-labs/leapvars/pkg/manager"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// watchDebounce coalesces bursts of file events into one render.
const watchDebounce = 100 * time.Millisecond

// RenderOptions holds options for the render command.
type RenderOptions struct {
	Values   valueFlags
	Snapshot string
	Watch    bool
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render [file]...",
		Short: "Render templates with resolved variables",
		Long: `Render one or more template files, replacing every {key} placeholder
with its resolved value.

Override values come from --values files and --set pairs. With --snapshot,
the values saved in a snapshot are used instead, and the snapshot's template
is rendered when no file is given.`,
		Example: `  # Render a template
  leapvars render welcome.txt

  # Override a fillable variable
  leapvars render welcome.txt --set user.name=Bob

  # Re-render a stored snapshot
  leapvars render --snapshot 3f1c...

  # Re-render on every change
  leapvars render welcome.txt --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, opts)
		},
	}

	opts.Values.register(cmd)
	cmd.Flags().StringVar(&opts.Snapshot, "snapshot", "", "Render with the values of a stored snapshot")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-render when a template or macro changes")

	return cmd
}

func runRender(cmd *cobra.Command, files []string, opts *RenderOptions) error {
	ctx := cmd.Context()
	r := output.FromContext(ctx)

	values, err := opts.Values.values()
	if err != nil {
		return err
	}
	injections, err := opts.Values.injections()
	if err != nil {
		return err
	}

	if opts.Snapshot != "" {
		snapValues, snapFile, err := snapshotValues(ctx, opts.Snapshot)
		if err != nil {
			return err
		}
		if snapValues == nil {
			snapValues = core.Values{}
		}
		for k, v := range values {
			snapValues[k] = v
		}
		values = snapValues
		if len(files) == 0 {
			files = []string{snapFile}
		}
	}

	if len(files) == 0 {
		return errors.New("no template given\nHint: pass a template file or --snapshot <id>")
	}

	render := func() error {
		m, err := newManager(ctx)
		if err != nil {
			return err
		}
		if err := inject(m, injections); err != nil {
			return err
		}

		outputs, err := renderFiles(ctx, m, files, values)
		if err != nil {
			return err
		}
		return writeRendered(r, files, outputs)
	}

	if err := render(); err != nil {
		return err
	}
	if !opts.Watch {
		return nil
	}

	watchCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var dirs []string
	if cfg := config.GetConfig(ctx); cfg != nil {
		dirs = append(dirs, cfg.MacrosDir)
	}
	r.Warnf("Watching %d template(s) for changes. Press Ctrl+C to stop.\n", len(files))
	return watch(watchCtx, files, dirs, config.GetLogger(ctx), func() {
		if err := render(); err != nil {
			r.Warnf("Error: %v\n", err)
		}
	})
}

// renderFiles renders every file concurrently. Results keep the order of files.
func renderFiles(ctx context.Context, m *manager.Manager, files []string, values core.Values) ([]string, error) {
	results := make([]string, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tmpl, err := readTemplate(file)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			out, err := m.Interpret(manager.Document{Template: tmpl, Values: values})
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

type renderedFile struct {
	File   string `json:"file"`
	Output string `json:"output"`
}

func writeRendered(r *output.Renderer, files, outputs []string) error {
	if r.Mode() == output.ModeJSON {
		docs := make([]renderedFile, len(files))
		for i := range files {
			docs[i] = renderedFile{File: files[i], Output: outputs[i]}
		}
		return r.JSON(docs)
	}

	if len(files) == 1 {
		r.Printf("%s", outputs[0])
		return nil
	}
	for i, file := range files {
		if i > 0 {
			r.Println()
		}
		r.Printf("==> %s <==\n%s\n", file, outputs[i])
	}
	return nil
}

func snapshotValues(ctx context.Context, id string) (core.Values, string, error) {
	store, err := openStore(ctx)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = store.Close() }()

	snap, err := store.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return core.Values(snap.Values), templatePath(ctx, snap.Template), nil
}

// watch calls onChange after files, or any file under dirs, change. Events
// within watchDebounce of each other trigger a single call.
func watch(ctx context.Context, files, dirs []string, logger *slog.Logger, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Editors often replace files, so watch the parent directories.
	targets := make(map[string]bool, len(files))
	watched := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		targets[abs] = true
		watched[filepath.Dir(abs)] = true
	}
	watchAll := make(map[string]bool)
	for _, d := range dirs {
		if info, err := os.Stat(d); err != nil || !info.IsDir() {
			continue
		}
		abs, err := filepath.Abs(d)
		if err != nil {
			return err
		}
		watchAll[abs] = true
		watched[abs] = true
	}
	for dir := range watched {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || (!targets[name] && !watchAll[filepath.Dir(name)]) {
				continue
			}

			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, onChange)
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}
