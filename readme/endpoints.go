package readme

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-querystring/query"
)

// projectEndpoint returns the API root, which describes the project the key belongs to:
// https://docs.readme.com/main/reference/getproject
func (a *API) projectEndpoint() *url.URL {
	ep := *a.BaseURI
	if ep.Path != "/" {
		ep.Path = strings.TrimSuffix(ep.Path, "/")
	}
	return &ep
}

// categoriesEndpoint returns the endpoint listing categories of a version:
// https://docs.readme.com/main/reference/getcategories
func (a *API) categoriesEndpoint(opts CategoriesQuery) (*url.URL, error) {
	ep, err := a.resolveEndpoint("categories")
	if err != nil {
		return nil, fmt.Errorf("readme: couldn't resolve endpoint: %w", err)
	}

	v, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("readme: couldn't encode query params: %w", err)
	}
	ep.RawQuery = v.Encode()

	return ep, nil
}

// docEndpoint returns the endpoint for reading or updating one doc:
// https://docs.readme.com/main/reference/getdoc
// https://docs.readme.com/main/reference/updatedoc
func (a *API) docEndpoint(slug string) (*url.URL, error) {
	if slug == "" {
		return nil, fmt.Errorf("readme: please provide a slug")
	}

	ep, err := a.resolveEndpoint("docs/" + url.PathEscape(slug))
	if err != nil {
		return nil, fmt.Errorf("readme: couldn't resolve endpoint: %w", err)
	}

	return ep, nil
}

// docsEndpoint returns the collection endpoint docs are created on:
// https://docs.readme.com/main/reference/createdoc
func (a *API) docsEndpoint() (*url.URL, error) {
	return a.resolveEndpoint("docs")
}

// Do a bit of error checking on endpoint format, and return it relative to the base URI.
func (a *API) resolveEndpoint(endpoint string) (*url.URL, error) {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("readme: failed to parse endpoint ref: %w", err)
	}

	return a.BaseURI.ResolveReference(ref), nil
}
