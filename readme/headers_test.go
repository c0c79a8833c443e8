package readme_test

import (
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toothbrush/readme-migrate/readme"
)

func TestConstructHeadersDefaults(t *testing.T) {
	headers := readme.ConstructHeaders("rdme_secret", nil)

	assert.Equal(t, "application/json", headers.Get("Accept"))
	assert.Equal(t, "Basic "+base64.StdEncoding.EncodeToString([]byte("rdme_secret:")), headers.Get("Authorization"))
	assert.Len(t, headers, 2)
}

func TestConstructHeadersDropsPlaceholderValues(t *testing.T) {
	for _, value := range []string{"null", "undefined", ""} {
		t.Run("value_"+value, func(t *testing.T) {
			headers := readme.ConstructHeaders("key", map[string]string{
				readme.VersionHeader: value,
			})

			_, present := headers[http.CanonicalHeaderKey(readme.VersionHeader)]
			require.False(t, present)
			assert.Len(t, headers, 2)
		})
	}
}

func TestConstructHeadersKeepsRealValues(t *testing.T) {
	headers := readme.ConstructHeaders("key", map[string]string{
		readme.VersionHeader: "2.0",
		"Content-Type":       "application/json",
		"Accept":             "text/plain",
		"X-Nullable":         "nullish",
	})

	assert.Equal(t, "2.0", headers.Get(readme.VersionHeader))
	assert.Equal(t, "application/json", headers.Get("Content-Type"))
	assert.Equal(t, "text/plain", headers.Get("Accept"), "extra headers override defaults")
	assert.Equal(t, "nullish", headers.Get("X-Nullable"))
}
