package main

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toothbrush/readme-migrate/internal/termfmt"
	"github.com/toothbrush/readme-migrate/internal/testutil"
	"github.com/toothbrush/readme-migrate/migrate"
)

const (
	testKey     = "rdme_cmdtest"
	testBaseURL = "https://docs.example.com"
)

var introMapping = []migrate.PageMapping{{OldSlug: "v1-intro", NewSlug: "v2-intro"}}

func newMigrator(t *testing.T, fake *testutil.FakeReadMe, dryRun bool) *migrate.Migrator {
	t.Helper()
	termfmt.SetEnabled(false)
	t.Cleanup(func() { termfmt.SetEnabled(true) })

	m, err := migrate.NewMigrator(&migrate.Config{
		APIURL:  fake.URL(),
		Current: migrate.Credentials{APIKey: testKey, Version: "1.0"},
		New:     migrate.Credentials{Version: "2.0"},
		DryRun:  dryRun,
	}, fake.Client(), zerolog.Nop())
	require.NoError(t, err)
	return m
}

func seededFake() *testutil.FakeReadMe {
	fake := testutil.NewFakeReadMe()
	fake.SetProject(testKey, testBaseURL)
	fake.SetDoc("1.0", testutil.FakeDoc{Slug: "v1-intro", Title: "Intro", Body: "# Hello"})
	fake.SetDoc("2.0", testutil.FakeDoc{Slug: "v2-intro", Title: "Placeholder", Body: "tbd"})
	fake.SetCategories("2.0",
		testutil.FakeCategory{ID: "cat-api", Title: "API", Reference: true},
		testutil.FakeCategory{ID: "cat-guides", Title: "Guides"},
	)
	return fake
}

func TestRunMigrate(t *testing.T) {
	fake := seededFake()
	defer fake.Close()

	out := &bytes.Buffer{}
	err := runMigrate(context.Background(), newMigrator(t, fake, false), introMapping, out)
	require.NoError(t, err)

	assert.Equal(t, ""+
		"⏳ Attempting to migrate docs... ⏳\n\n"+
		"Successfully updated page title and body for https://docs.example.com/v2.0/docs/v2-intro\n"+
		"\n🚀 Successfully migrated 1 docs! 🚀\n"+
		"1 mapping entries processed.\n",
		out.String())
}

func TestRunMigrateDryRun(t *testing.T) {
	fake := seededFake()
	defer fake.Close()

	out := &bytes.Buffer{}
	err := runMigrate(context.Background(), newMigrator(t, fake, true), introMapping, out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "🎭 dry run! this would update v2-intro with the contents from v1-intro\n")
	assert.Contains(t, out.String(), "Successfully migrated 0 docs!")
	assert.Zero(t, fake.CountMethod(http.MethodPut))
}

func TestRunMigrateFailure(t *testing.T) {
	fake := seededFake()
	defer fake.Close()

	out := &bytes.Buffer{}
	mappings := []migrate.PageMapping{{OldSlug: "v1-intro", NewSlug: "v2-nowhere"}}
	err := runMigrate(context.Background(), newMigrator(t, fake, false), mappings, out)

	var notFound *migrate.DestinationPageNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, out.String(), "🚨 Error migrating docs! 🚨")
	assert.NotContains(t, out.String(), "Successfully migrated")
}

func TestRunCreate(t *testing.T) {
	fake := seededFake()
	defer fake.Close()

	mappings := []migrate.PageMapping{
		{OldSlug: "v1-intro", NewSlug: "v2-intro"},
		{OldSlug: "v1-setup", NewSlug: "v2-setup"},
	}

	out := &bytes.Buffer{}
	err := runCreate(context.Background(), newMigrator(t, fake, false), mappings, out)
	require.NoError(t, err)

	assert.Equal(t, ""+
		"⏳ Attempting to create placeholder pages... ⏳\n\n"+
		"Page already exists, not creating it: https://docs.example.com/v2.0/docs/v2-intro\n"+
		"Created placeholder for https://docs.example.com/v2.0/docs/v2-setup\n"+
		"\n✨ Finished backfilling placeholder pages ✨\n",
		out.String())

	doc, ok := fake.Doc("2.0", "v2-setup")
	require.True(t, ok)
	assert.Equal(t, "cat-guides", doc.Category)
}

func TestRunCreateFailure(t *testing.T) {
	fake := seededFake()
	defer fake.Close()
	fake.SetCategories("2.0", testutil.FakeCategory{ID: "cat-api", Title: "API", Reference: true})

	out := &bytes.Buffer{}
	err := runCreate(context.Background(), newMigrator(t, fake, false), introMapping, out)

	require.ErrorIs(t, err, migrate.ErrNoGuideCategory)
	assert.Contains(t, out.String(), "🚨 Error creating placeholder pages! 🚨")
}

func TestRunListCategories(t *testing.T) {
	fake := seededFake()
	defer fake.Close()

	out := &bytes.Buffer{}
	require.NoError(t, runListCategories(context.Background(), newMigrator(t, fake, false), out))

	assert.Equal(t, ""+
		"categories in v2.0:\n"+
		"  - cat-api: API (reference)\n"+
		"  - cat-guides: Guides (placeholders go here)\n",
		out.String())
}

func TestRunListCategoriesWithoutGuides(t *testing.T) {
	fake := seededFake()
	defer fake.Close()
	fake.SetCategories("2.0", testutil.FakeCategory{ID: "cat-api", Title: "API", Reference: true})

	out := &bytes.Buffer{}
	require.NoError(t, runListCategories(context.Background(), newMigrator(t, fake, false), out))

	assert.Contains(t, out.String(), "  - cat-api: API (reference)\n")
	assert.Contains(t, out.String(), "No guides category in v2.0")
}
