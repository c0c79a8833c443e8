package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/dnaeon/go-vcr.v3/cassette"
	"gopkg.in/dnaeon/go-vcr.v3/recorder"

	"github.com/toothbrush/readme-migrate/internal/testutil"
	"github.com/toothbrush/readme-migrate/migrate"
)

func newTestRecorder(t *testing.T, fake *testutil.FakeReadMe, cassetteName string) *recorder.Recorder {
	t.Helper()
	r, err := newRecorder(cassetteName, fake.Client().Transport)
	require.NoError(t, err)
	return r
}

func recordedMigrator(t *testing.T, fake *testutil.FakeReadMe, r *recorder.Recorder, cfg migrate.Config) *migrate.Migrator {
	t.Helper()
	cfg.APIURL = fake.URL()
	m, err := migrate.NewMigrator(&cfg, r.GetDefaultClient(), zerolog.Nop())
	require.NoError(t, err)
	return m
}

func TestRecorderKeepsVersionsApart(t *testing.T) {
	fake := testutil.NewFakeReadMe()
	defer fake.Close()
	fake.SetProject(testKey, testBaseURL)
	fake.SetDoc("1.0", testutil.FakeDoc{Slug: "intro", Title: "Intro", Body: "# Hello"})

	r := newTestRecorder(t, fake, filepath.Join(t.TempDir(), "cassette"))
	defer r.Stop()

	m := recordedMigrator(t, fake, r, migrate.Config{
		Current: migrate.Credentials{APIKey: testKey, Version: "1.0"},
		New:     migrate.Credentials{Version: "2.0"},
	})
	_, err := m.MigrateAll(context.Background(), []migrate.PageMapping{{OldSlug: "intro", NewSlug: "intro"}})

	var notFound *migrate.DestinationPageNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, http.StatusNotFound, notFound.Status)
	assert.Equal(t, 2, fake.Count(http.MethodGet, "/docs/intro"), "the 2.0 lookup must reach ReadMe")
	assert.Zero(t, fake.CountMethod(http.MethodPut))
}

func TestRecorderNeverReplaysWrites(t *testing.T) {
	fake := seededFake()
	defer fake.Close()

	cassetteName := filepath.Join(t.TempDir(), "cassette")
	cfg := migrate.Config{
		Current: migrate.Credentials{APIKey: testKey, Version: "1.0"},
		New:     migrate.Credentials{Version: "2.0"},
	}

	r := newTestRecorder(t, fake, cassetteName)
	for i := 0; i < 2; i++ {
		_, err := recordedMigrator(t, fake, r, cfg).MigrateAll(context.Background(), introMapping)
		require.NoError(t, err)
	}
	require.NoError(t, r.Stop())

	// A fresh recorder replays from disk.
	r = newTestRecorder(t, fake, cassetteName)
	_, err := recordedMigrator(t, fake, r, cfg).MigrateAll(context.Background(), introMapping)
	require.NoError(t, err)
	require.NoError(t, r.Stop())

	assert.Equal(t, 3, fake.Count(http.MethodPut, "/docs/v2-intro"))
	assert.Equal(t, 1, fake.Count(http.MethodGet, "/"))
	assert.Equal(t, 1, fake.Count(http.MethodGet, "/docs/v1-intro"))
	assert.Equal(t, 1, fake.Count(http.MethodGet, "/docs/v2-intro"))

	raw, err := os.ReadFile(cassetteName + ".yaml")
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "Authorization")
	assert.NotContains(t, string(raw), "method: PUT")
}

func TestRecorderKeepsKeysApart(t *testing.T) {
	const otherKey = "rdme_cmdtest_other"
	const otherBaseURL = "https://next.example.com"

	fake := seededFake()
	defer fake.Close()
	fake.SetProject(otherKey, otherBaseURL)

	r := newTestRecorder(t, fake, filepath.Join(t.TempDir(), "cassette"))
	defer r.Stop()

	m := recordedMigrator(t, fake, r, migrate.Config{
		Current: migrate.Credentials{APIKey: testKey, Version: "1.0"},
		New:     migrate.Credentials{APIKey: otherKey, Version: "2.0"},
	})
	report, err := m.MigrateAll(context.Background(), introMapping)
	require.NoError(t, err)

	assert.Equal(t, otherBaseURL+"/v2.0/docs/v2-intro", report.Outcomes[0].URL)
	assert.Equal(t, 2, fake.Count(http.MethodGet, "/"))
}

func TestMatchRecordedComparesBody(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "https://dash.readme.com/api/v1/docs/a", strings.NewReader(`{"x":1}`))
	require.NoError(t, err)
	req.Header.Set("x-readme-version", "2.0")

	recorded := cassette.Request{
		Method:  http.MethodGet,
		URL:     "https://dash.readme.com/api/v1/docs/a",
		Headers: http.Header{"X-Readme-Version": []string{"2.0"}},
		Body:    `{"x":1}`,
	}
	assert.True(t, matchRecorded(req, recorded))

	// the body is still readable after matching
	assert.True(t, matchRecorded(req, recorded))

	recorded.Body = `{"x":2}`
	assert.False(t, matchRecorded(req, recorded))

	recorded.Body = `{"x":1}`
	recorded.Headers = http.Header{"X-Readme-Version": []string{"1.0"}}
	assert.False(t, matchRecorded(req, recorded))
}
