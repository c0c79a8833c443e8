package readme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointsKeepBasePath(t *testing.T) {
	api, err := NewAPI("https://dash.readme.com/api/v1", "key", "1.0")
	require.NoError(t, err)

	assert.Equal(t, "https://dash.readme.com/api/v1", api.projectEndpoint().String())

	doc, err := api.docEndpoint("getting-started")
	require.NoError(t, err)
	assert.Equal(t, "https://dash.readme.com/api/v1/docs/getting-started", doc.String())

	docs, err := api.docsEndpoint()
	require.NoError(t, err)
	assert.Equal(t, "https://dash.readme.com/api/v1/docs", docs.String())

	categories, err := api.categoriesEndpoint(CategoriesQuery{PerPage: 100, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, "https://dash.readme.com/api/v1/categories?page=2&perPage=100", categories.String())
}

func TestEndpointsOnBareHost(t *testing.T) {
	api, err := NewAPI("http://127.0.0.1:8080", "key", "")
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8080/", api.projectEndpoint().String())

	doc, err := api.docEndpoint("a b")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080/docs/a%20b", doc.String())
}

func TestDocEndpointRequiresSlug(t *testing.T) {
	api, err := NewAPI("", "key", "")
	require.NoError(t, err)

	_, err = api.docEndpoint("")
	assert.Error(t, err)
}
