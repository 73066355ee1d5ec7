package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leapvars/internal/config"
	"github.com/leapstack-labs/leapvars/internal/macro"
	"github.com/leapstack-labs/leapvars/internal/state"
	"github.com/leapstack-labs/leapvars/pkg/core"
	"github.com/leapstack-labs/leapvars/pkg/manager"
)

var errNoConfig = errors.New("configuration not loaded")

// newManager builds a manager from the project configuration, with the
// project's Starlark macros registered as computed functions.
func newManager(ctx context.Context) (*manager.Manager, error) {
	cfg := config.GetConfig(ctx)
	if cfg == nil {
		return nil, errNoConfig
	}
	logger := config.GetLogger(ctx)

	modules, err := macro.NewLoader(cfg.MacrosDir, logger).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load macros: %w", err)
	}

	r, err := cfg.Resolver(logger, macro.Functions(modules)...)
	if err != nil {
		return nil, err
	}
	logger.Debug("resolver ready", "adapters", r.IDs(), "macros", len(modules))
	return manager.New(r), nil
}

// inject forwards injections to the manager's adapters, then resolves any
// model identifiers they introduced.
func inject(m *manager.Manager, injections map[string]core.Values) error {
	if len(injections) == 0 {
		return nil
	}
	m.Inject(injections)
	if err := m.Resolver().ResolveModels(); err != nil {
		return fmt.Errorf("failed to resolve injected models: %w", err)
	}
	return nil
}

// openStore opens and migrates the project's snapshot store.
func openStore(ctx context.Context) (*state.SQLiteStore, error) {
	cfg := config.GetConfig(ctx)
	if cfg == nil {
		return nil, errNoConfig
	}

	store := state.NewSQLiteStore(config.GetLogger(ctx))
	if err := store.Open(cfg.StatePath); err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// templateName is the name a template file is stored under: its path
// relative to the project root, slash separated.
func templateName(ctx context.Context, path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(filepath.Clean(path))
	}
	if cfg := config.GetConfig(ctx); cfg != nil && cfg.ProjectRoot != "" {
		if rel, err := filepath.Rel(cfg.ProjectRoot, abs); err == nil && !startsWithParent(rel) {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(abs)
}

// templatePath reverses templateName.
func templatePath(ctx context.Context, name string) string {
	p := filepath.FromSlash(name)
	if filepath.IsAbs(p) {
		return p
	}
	if cfg := config.GetConfig(ctx); cfg != nil && cfg.ProjectRoot != "" {
		return filepath.Join(cfg.ProjectRoot, p)
	}
	return p
}

func startsWithParent(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func readTemplate(path string) (manager.Template, error) {
	content, err := os.ReadFile(path) //nolint:gosec // G304: template path from user
	if err != nil {
		return "", fmt.Errorf("failed to read template: %w", err)
	}
	return manager.Template(content), nil
}
