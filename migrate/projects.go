package migrate

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/toothbrush/readme-migrate/readme"
)

// projectCache remembers project metadata per API key, so a key shared by both sides of a
// migration is only looked up once per run.
type projectCache struct {
	group singleflight.Group

	mu       sync.Mutex
	projects map[string]readme.Project
}

func newProjectCache() *projectCache {
	return &projectCache{projects: make(map[string]readme.Project)}
}

func (c *projectCache) get(ctx context.Context, api *readme.API, creds Credentials) (readme.Project, error) {
	c.mu.Lock()
	project, ok := c.projects[creds.APIKey]
	c.mu.Unlock()
	if ok {
		return project, nil
	}

	v, err, _ := c.group.Do(creds.APIKey, func() (any, error) {
		fetched, err := api.GetProject(ctx)
		if err != nil {
			if isMalformed(err) {
				return nil, fmt.Errorf("migrate: project metadata for the %s API key: %w", creds.Slot, err)
			}
			return nil, &MetadataFetchError{
				Slot:   creds.Slot,
				Status: readme.StatusCode(err),
				Err:    err,
			}
		}

		c.mu.Lock()
		c.projects[creds.APIKey] = *fetched
		c.mu.Unlock()

		return *fetched, nil
	})
	if err != nil {
		return readme.Project{}, err
	}

	return v.(readme.Project), nil
}

// pageURL is where a doc is published, e.g. https://docs.example.com/v2.0/docs/intro.
func pageURL(project readme.Project, version string, slug string) string {
	return fmt.Sprintf("%s/v%s/docs/%s", strings.TrimSuffix(project.BaseURL, "/"), version, slug)
}
