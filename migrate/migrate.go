package migrate

import (
	"context"
	"errors"
	"fmt"

	"github.com/toothbrush/readme-migrate/readme"
)

// MigrateAll copies body and title from every mapping's old page onto its new page.  Both pages
// must already exist.  In dry-run mode nothing is written.
func (m *Migrator) MigrateAll(ctx context.Context, mappings []PageMapping) (*MigrationReport, error) {
	currentProject, err := m.Project(ctx, CurrentSlot)
	if err != nil {
		return nil, err
	}
	newProject, err := m.Project(ctx, NewSlot)
	if err != nil {
		return nil, err
	}

	m.Logger.Debug().
		Str("current", currentProject.BaseURL).
		Str("new", newProject.BaseURL).
		Bool("same_project", m.Config.SameProject()).
		Int("mappings", len(mappings)).
		Msg("resolved projects")

	outcomes, err := m.fanOut(ctx, mappings, "migrate", func(ctx context.Context, mapping PageMapping) (PageOutcome, error) {
		return m.migrateOne(ctx, currentProject, newProject, mapping)
	})
	if err != nil {
		return nil, err
	}

	return &MigrationReport{Outcomes: outcomes}, nil
}

func (m *Migrator) migrateOne(ctx context.Context, currentProject, newProject readme.Project, mapping PageMapping) (PageOutcome, error) {
	logger := m.Logger.With().Str("old_slug", mapping.OldSlug).Str("new_slug", mapping.NewSlug).Logger()

	// Validate that current page exists
	sourceURL := pageURL(currentProject, m.Config.Current.Version, mapping.OldSlug)
	source, err := m.CurrentAPI.GetDoc(ctx, mapping.OldSlug)
	if err != nil {
		if isMalformed(err) {
			return PageOutcome{}, fmt.Errorf("migrate: source page %s: %w", sourceURL, err)
		}
		return PageOutcome{}, &SourcePageNotFoundError{PageError{
			Status: readme.StatusCode(err),
			Slug:   mapping.OldSlug,
			URL:    sourceURL,
			Err:    err,
		}}
	}

	// Validate that new page exists
	destinationURL := pageURL(newProject, m.Config.New.Version, mapping.NewSlug)
	destination, err := m.NewAPI.GetDoc(ctx, mapping.NewSlug)
	if err != nil {
		if isMalformed(err) {
			return PageOutcome{}, fmt.Errorf("migrate: destination page %s: %w", destinationURL, err)
		}
		return PageOutcome{}, &DestinationPageNotFoundError{PageError{
			Status: readme.StatusCode(err),
			Slug:   mapping.NewSlug,
			URL:    destinationURL,
			Err:    err,
		}}
	}

	if m.Config.DryRun {
		logger.Info().Msg("dry run, not updating")
		m.Metrics.observe("migrate", ActionDryRun)
		return PageOutcome{
			Mapping: mapping,
			Action:  ActionDryRun,
			URL:     destinationURL,
			Message: fmt.Sprintf("dry run! this would update %s with the contents from %s", mapping.NewSlug, mapping.OldSlug),
		}, nil
	}

	// ReadMe may have resolved newSlug to a doc under another slug; write to that one.
	targetURL := pageURL(newProject, m.Config.New.Version, destination.Slug)
	update := readme.DocUpdate{
		Body:  source.Body,
		Title: source.Title,
	}
	if err := m.NewAPI.UpdateDoc(ctx, destination.Slug, update); err != nil {
		return PageOutcome{}, &UpdateFailedError{PageError{
			Status: readme.StatusCode(err),
			Slug:   destination.Slug,
			URL:    targetURL,
			Err:    err,
		}}
	}

	logger.Info().Str("url", targetURL).Msg("updated page title and body")
	m.Metrics.observe("migrate", ActionUpdated)

	return PageOutcome{
		Mapping: mapping,
		Action:  ActionUpdated,
		URL:     targetURL,
		Message: fmt.Sprintf("Successfully updated page title and body for %s", targetURL),
	}, nil
}

func isMalformed(err error) bool {
	var malformed *readme.MalformedResponseError
	return errors.As(err, &malformed)
}
