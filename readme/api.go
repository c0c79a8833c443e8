package readme

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// DefaultBaseURL is the root of ReadMe's v1 REST API.
const DefaultBaseURL = "https://dash.readme.com/api/v1"

// VersionHeader selects which documentation version a request operates on.
const VersionHeader = "x-readme-version"

func NewAPI(baseURL string, apiKey string, version string) (*API, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if apiKey == "" {
		return nil, fmt.Errorf("readme: API key is empty, configure it with --current-api-key or CURRENT_README_API_KEY")
	}

	u, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return nil, fmt.Errorf("readme: couldn't parse REST API URL: %w", err)
	}

	// Endpoints are resolved relative to the base, which only works if the base path is a
	// "directory".
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	a := &API{
		BaseURI: u,
		Version: version,
		apiKey:  apiKey,
	}
	a.Client = &http.Client{}

	return a, nil
}

type API struct {
	// Root of the REST API, always ending in a slash.
	BaseURI *url.URL

	// An HTTP client - you can substitute VCR or whatnot.
	Client *http.Client

	// Documentation version sent in VersionHeader on version-scoped requests.  Empty means "let
	// the platform pick its default version".
	Version string

	apiKey string
}
