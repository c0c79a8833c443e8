package migrate

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoGuideCategory means the target version only has API reference categories, so there's
// nowhere to put placeholder pages.
var ErrNoGuideCategory = errors.New("migrate: no guides categories found, please create one in the ReadMe dashboard and then run this again")

// MetadataFetchError means the project behind an API key couldn't be looked up.
type MetadataFetchError struct {
	Slot   Slot
	Status int
	Err    error
}

func (e *MetadataFetchError) Error() string {
	return fmt.Sprintf("migrate: received %s when attempting to fetch project metadata. Double-check the API key (--%s-api-key / %s_README_API_KEY)!%s",
		describeStatus(e.Status), e.Slot, strings.ToUpper(string(e.Slot)), cause(e.Status, e.Err))
}

func (e *MetadataFetchError) Unwrap() error { return e.Err }

// CategoriesFetchError means the category list of a version couldn't be read.
type CategoriesFetchError struct {
	Version string
	Status  int
	Err     error
}

func (e *CategoriesFetchError) Error() string {
	return fmt.Sprintf("migrate: received %s when attempting to fetch list of categories for version %q. Double-check the version (--new-version / NEW_VERSION)!%s",
		describeStatus(e.Status), e.Version, cause(e.Status, e.Err))
}

func (e *CategoriesFetchError) Unwrap() error { return e.Err }

// PageError is the detail shared by the per-page failures.
type PageError struct {
	Status int
	Slug   string
	// Where the page lives on the published docs site.
	URL string
	Err error
}

func (e PageError) Unwrap() error { return e.Err }

type SourcePageNotFoundError struct{ PageError }

func (e *SourcePageNotFoundError) Error() string {
	return fmt.Sprintf("migrate: source page not found: received %s when attempting to fetch data for %s. Double-check that this page exists in ReadMe!%s",
		describeStatus(e.Status), e.URL, cause(e.Status, e.Err))
}

type DestinationPageNotFoundError struct{ PageError }

func (e *DestinationPageNotFoundError) Error() string {
	return fmt.Sprintf("migrate: destination page not found: received %s when attempting to fetch data for %s. Try running 'readme-migrate create' to create this page!%s",
		describeStatus(e.Status), e.URL, cause(e.Status, e.Err))
}

type UpdateFailedError struct{ PageError }

func (e *UpdateFailedError) Error() string {
	return fmt.Sprintf("migrate: update failed: received %s when attempting to update %s%s",
		describeStatus(e.Status), e.URL, cause(e.Status, e.Err))
}

type CreateFailedError struct{ PageError }

func (e *CreateFailedError) Error() string {
	return fmt.Sprintf("migrate: create failed: received %s when attempting to create page located at %s%s",
		describeStatus(e.Status), e.URL, cause(e.Status, e.Err))
}

func describeStatus(status int) string {
	if status == 0 {
		return "no response"
	}
	return fmt.Sprintf("a %d", status)
}

// Without a status the underlying error is the only clue, so spell it out.
func cause(status int, err error) string {
	if status != 0 || err == nil {
		return ""
	}
	return fmt.Sprintf(" (%v)", err)
}
