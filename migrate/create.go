package migrate

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slices"

	"github.com/toothbrush/readme-migrate/readme"
)

// Categories beyond the first page aren't considered.
var categoriesQuery = readme.CategoriesQuery{PerPage: 100}

// FirstGuideCategory returns the first category that isn't API reference.
func FirstGuideCategory(categories []readme.Category) (readme.Category, error) {
	i := slices.IndexFunc(categories, func(c readme.Category) bool { return !c.Reference })
	if i < 0 {
		return readme.Category{}, ErrNoGuideCategory
	}
	return categories[i], nil
}

// GuideCategory looks up where placeholders would be created in the new version.
func (m *Migrator) GuideCategory(ctx context.Context) (readme.Category, []readme.Category, error) {
	categories, err := m.NewAPI.GetCategories(ctx, categoriesQuery)
	if err != nil {
		if isMalformed(err) {
			return readme.Category{}, nil, fmt.Errorf("migrate: categories for version %q: %w", m.Config.New.Version, err)
		}
		return readme.Category{}, nil, &CategoriesFetchError{
			Version: m.Config.New.Version,
			Status:  readme.StatusCode(err),
			Err:     err,
		}
	}

	category, err := FirstGuideCategory(categories)
	if err != nil {
		return readme.Category{}, categories, err
	}

	return category, categories, nil
}

// CreatePlaceholders makes sure a page exists at every mapping's new slug, creating placeholder
// pages in the first guides category where needed.  Existing pages are left alone.
func (m *Migrator) CreatePlaceholders(ctx context.Context, mappings []PageMapping) (*CreationReport, error) {
	newProject, err := m.Project(ctx, NewSlot)
	if err != nil {
		return nil, err
	}

	category, _, err := m.GuideCategory(ctx)
	if err != nil {
		return nil, err
	}

	m.Logger.Debug().
		Str("category", category.ID).
		Str("title", category.Title).
		Msg("creating placeholders in category")

	outcomes, err := m.fanOut(ctx, mappings, "create", func(ctx context.Context, mapping PageMapping) (PageOutcome, error) {
		return m.createOne(ctx, newProject, category, mapping)
	})
	if err != nil {
		return nil, err
	}

	return &CreationReport{Outcomes: outcomes}, nil
}

func (m *Migrator) createOne(ctx context.Context, newProject readme.Project, category readme.Category, mapping PageMapping) (PageOutcome, error) {
	url := pageURL(newProject, m.Config.New.Version, mapping.NewSlug)

	exists, err := m.NewAPI.DocExists(ctx, mapping.NewSlug)
	if err != nil {
		return PageOutcome{}, fmt.Errorf("migrate: couldn't check whether %s exists: %w", url, err)
	}

	if exists {
		m.Metrics.observe("create", ActionSkipped)
		return PageOutcome{
			Mapping: mapping,
			Action:  ActionSkipped,
			URL:     url,
			Message: fmt.Sprintf("Page already exists, not creating it: %s", url),
		}, nil
	}

	doc := readme.DocCreate{
		Category: category.ID,
		Slug:     mapping.NewSlug,
		Body:     fmt.Sprintf("placeholder body, created at %s", placeholderTimestamp(m.Now())),
		Title:    fmt.Sprintf("%s (placeholder)", mapping.NewSlug),
	}
	if err := m.NewAPI.CreateDoc(ctx, doc); err != nil {
		return PageOutcome{}, &CreateFailedError{PageError{
			Status: readme.StatusCode(err),
			Slug:   mapping.NewSlug,
			URL:    url,
			Err:    err,
		}}
	}

	m.Logger.Info().Str("url", url).Msg("created placeholder")
	m.Metrics.observe("create", ActionCreated)

	return PageOutcome{
		Mapping: mapping,
		Action:  ActionCreated,
		URL:     url,
		Message: fmt.Sprintf("Created placeholder for %s", url),
	}, nil
}

// placeholderTimestamp matches the millisecond UTC format the placeholder bodies have always used.
func placeholderTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
