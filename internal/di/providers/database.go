package providers

import (
	"context"
	"os"

	"github.com/samber/do/v2"

	"timetracker/internal/config"
	"timetracker/internal/logging"
	"timetracker/internal/repository/sqlite"
)

// ProvideRepository opens the database and applies migrations. The
// repository implements do.Shutdownable, so the container closes it.
func ProvideRepository(i do.Injector) (*sqlite.SQLiteRepository, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logging.Logger](i)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Application.Timeout)
	defer cancel()

	path := cfg.GetDatabasePath()
	repo, err := sqlite.Open(ctx, path, sqlite.Options{
		BusyTimeout:    cfg.Database.BusyTimeout,
		DirPermissions: os.FileMode(cfg.Database.DirPermissions),
	})
	if err != nil {
		return nil, err
	}

	log.Debug("database opened", "path", path)
	return repo, nil
}
