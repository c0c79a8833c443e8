package migrate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/toothbrush/readme-migrate/readme"
)

type Migrator struct {
	Config *Config

	// Clients for either side; the same key still gets its own client per side because the
	// version differs.
	CurrentAPI *readme.API
	NewAPI     *readme.API

	Logger zerolog.Logger

	// Where to draw progress bars; nil draws nothing.
	Progress io.Writer

	Metrics *Metrics

	// Clock for placeholder bodies.
	Now func() time.Time

	projects *projectCache
}

// NewMigrator builds API clients for both sides of cfg.  client may be nil.
func NewMigrator(cfg *Config, client *http.Client, logger zerolog.Logger) (*Migrator, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	current, err := readme.NewAPI(cfg.APIURL, cfg.Current.APIKey, cfg.Current.Version)
	if err != nil {
		return nil, fmt.Errorf("migrate: couldn't instantiate API for current project: %w", err)
	}
	next, err := readme.NewAPI(cfg.APIURL, cfg.New.APIKey, cfg.New.Version)
	if err != nil {
		return nil, fmt.Errorf("migrate: couldn't instantiate API for new project: %w", err)
	}

	if client != nil {
		current.Client = client
		next.Client = client
	}

	return &Migrator{
		Config:     cfg,
		CurrentAPI: current,
		NewAPI:     next,
		Logger:     logger,
		Now:        time.Now,
		projects:   newProjectCache(),
	}, nil
}

// Project returns (and remembers) the project the slot's key belongs to.
func (m *Migrator) Project(ctx context.Context, slot Slot) (readme.Project, error) {
	if slot == CurrentSlot {
		return m.projects.get(ctx, m.CurrentAPI, m.Config.Current)
	}
	return m.projects.get(ctx, m.NewAPI, m.Config.New)
}

// fanOut runs work for every mapping concurrently and waits for all of them.  The first error is
// returned; the others keep running to completion, and nothing is rolled back.
func (m *Migrator) fanOut(
	ctx context.Context,
	mappings []PageMapping,
	phaseName string,
	work func(ctx context.Context, mapping PageMapping) (PageOutcome, error),
) ([]PageOutcome, error) {
	outcomes := make([]PageOutcome, len(mappings))
	bar := newProgressBar(m.Progress, phaseName, len(mappings))

	var grp errgroup.Group
	if m.Config.Workers > 0 {
		grp.SetLimit(m.Config.Workers)
	}

	for i, mapping := range mappings {
		i, mapping := i, mapping
		grp.Go(func() error {
			outcome, err := work(ctx, mapping)
			if err != nil {
				m.Logger.Debug().Err(err).
					Str("old_slug", mapping.OldSlug).
					Str("new_slug", mapping.NewSlug).
					Msg("mapping failed")
				return err
			}
			outcomes[i] = outcome
			bar.increment()
			return nil
		})
	}

	err := grp.Wait()
	bar.wait(err != nil)
	if err != nil {
		return nil, err
	}

	return outcomes, nil
}
