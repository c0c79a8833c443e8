package readme_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/dnaeon/go-vcr.v3/recorder"

	"github.com/toothbrush/readme-migrate/readme"
)

// newReplayAPI serves requests from a recorded cassette, without touching the network.
func newReplayAPI(t *testing.T, version string) *readme.API {
	t.Helper()

	r, err := recorder.NewWithOptions(&recorder.Options{
		CassetteName:       "testdata/fixtures/migrate-intro",
		Mode:               recorder.ModeReplayOnly,
		SkipRequestLatency: true,
		RealTransport:      http.DefaultTransport,
	})
	require.NoError(t, err)
	t.Cleanup(func() { r.Stop() })

	api, err := readme.NewAPI(readme.DefaultBaseURL, "rdme_recorded", version)
	require.NoError(t, err)
	api.Client = r.GetDefaultClient()
	return api
}

func TestRecordedMigrationRoundTrip(t *testing.T) {
	ctx := context.Background()
	current := newReplayAPI(t, "1.0")

	project, err := current.GetProject(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://docs.owlet.dev", project.BaseURL)

	source, err := current.GetDoc(ctx, "v1-intro")
	require.NoError(t, err)
	assert.Equal(t, "Introduction", source.Title)
	assert.Equal(t, "Welcome to **Owlet**.", source.Body)

	next := newReplayAPI(t, "2.0")
	destination, err := next.GetDoc(ctx, "v2-intro")
	require.NoError(t, err)
	assert.Equal(t, "v2-intro", destination.Slug)

	err = next.UpdateDoc(ctx, destination.Slug, readme.DocUpdate{Body: source.Body, Title: source.Title})
	require.NoError(t, err)
}

func TestRecordedMissingDoc(t *testing.T) {
	api := newReplayAPI(t, "2.0")

	_, err := api.GetDoc(context.Background(), "v2-missing")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, readme.StatusCode(err))
}
