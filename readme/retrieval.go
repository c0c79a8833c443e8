package readme

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// GetProject returns metadata for the project the API key belongs to.
func (api *API) GetProject(ctx context.Context) (*Project, error) {
	ep := api.projectEndpoint()

	body, err := api.request(ctx, http.MethodGet, ep, false, nil)
	if err != nil {
		return nil, fmt.Errorf("readme: couldn't fetch project: %w", err)
	}

	var raw projectResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("readme: couldn't parse json response: %w", err)
	}

	project, err := raw.validate(ep.String())
	if err != nil {
		return nil, err
	}

	return &project, nil
}

// GetCategories lists the categories of the API's version.  Only the page described by opts is
// fetched.
func (api *API) GetCategories(ctx context.Context, opts CategoriesQuery) ([]Category, error) {
	ep, err := api.categoriesEndpoint(opts)
	if err != nil {
		return nil, fmt.Errorf("readme: couldn't get categories endpoint: %w", err)
	}

	body, err := api.request(ctx, http.MethodGet, ep, true, nil)
	if err != nil {
		return nil, fmt.Errorf("readme: couldn't fetch categories: %w", err)
	}

	var raw []categoryResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("readme: couldn't parse json response: %w", err)
	}

	categories := make([]Category, 0, len(raw))
	for _, r := range raw {
		category, err := r.validate(ep.String())
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, nil
}

func (api *API) GetDoc(ctx context.Context, slug string) (*Doc, error) {
	ep, err := api.docEndpoint(slug)
	if err != nil {
		return nil, fmt.Errorf("readme: couldn't get doc endpoint: %w", err)
	}

	body, err := api.request(ctx, http.MethodGet, ep, true, nil)
	if err != nil {
		return nil, fmt.Errorf("readme: couldn't fetch doc %s: %w", slug, err)
	}

	var raw docResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("readme: couldn't parse json response: %w", err)
	}

	doc, err := raw.validate(ep.String())
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

// DocExists reports whether a doc is reachable at slug.  Any HTTP status outside 2xx counts as
// "doesn't exist"; only failing to get a response at all is an error.
func (api *API) DocExists(ctx context.Context, slug string) (bool, error) {
	ep, err := api.docEndpoint(slug)
	if err != nil {
		return false, fmt.Errorf("readme: couldn't get doc endpoint: %w", err)
	}

	if _, err := api.request(ctx, http.MethodGet, ep, true, nil); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			return false, nil
		}
		return false, fmt.Errorf("readme: couldn't probe doc %s: %w", slug, err)
	}

	return true, nil
}

// UpdateDoc replaces body and title of the doc at slug.
func (api *API) UpdateDoc(ctx context.Context, slug string, update DocUpdate) error {
	ep, err := api.docEndpoint(slug)
	if err != nil {
		return fmt.Errorf("readme: couldn't get doc endpoint: %w", err)
	}

	if _, err := api.request(ctx, http.MethodPut, ep, true, update); err != nil {
		return fmt.Errorf("readme: couldn't update doc %s: %w", slug, err)
	}

	return nil
}

func (api *API) CreateDoc(ctx context.Context, doc DocCreate) error {
	ep, err := api.docsEndpoint()
	if err != nil {
		return fmt.Errorf("readme: couldn't get docs endpoint: %w", err)
	}

	if _, err := api.request(ctx, http.MethodPost, ep, true, doc); err != nil {
		return fmt.Errorf("readme: couldn't create doc %s: %w", doc.Slug, err)
	}

	return nil
}
