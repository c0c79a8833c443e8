package readme

// See https://docs.readme.com/main/reference/getproject.  We only care about where the project's
// docs are published, for building links in messages.
type Project struct {
	Name    string `json:"name,omitempty"`
	SubPath string `json:"subpath,omitempty"`
	BaseURL string `json:"baseUrl"`
}

// See https://docs.readme.com/main/reference/getcategories.  Reference categories hold the API
// reference pages; everything else is a "guides" category.
type Category struct {
	ID        string `json:"id"`
	Title     string `json:"title,omitempty"`
	Slug      string `json:"slug,omitempty"`
	Reference bool   `json:"reference"`
}

// See https://docs.readme.com/main/reference/getdoc.
type Doc struct {
	Body  string `json:"body"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// DocUpdate is the PUT payload; only body and title are replaced.
type DocUpdate struct {
	Body  string `json:"body"`
	Title string `json:"title"`
}

// DocCreate is the POST payload for a new doc.
type DocCreate struct {
	Category string `json:"category"`
	Slug     string `json:"slug"`
	Body     string `json:"body"`
	Title    string `json:"title"`
}

// Wire shapes, with pointers so a missing field can be told apart from an empty one.

type projectResponse struct {
	Name    string  `json:"name"`
	SubPath string  `json:"subpath"`
	BaseURL *string `json:"baseUrl"`
}

type categoryResponse struct {
	ID        *string `json:"id"`
	Title     string  `json:"title"`
	Slug      string  `json:"slug"`
	Reference *bool   `json:"reference"`
}

type docResponse struct {
	Body  *string `json:"body"`
	Slug  *string `json:"slug"`
	Title *string `json:"title"`
}

func (r projectResponse) validate(endpoint string) (Project, error) {
	if r.BaseURL == nil || *r.BaseURL == "" {
		return Project{}, &MalformedResponseError{Endpoint: endpoint, Field: "baseUrl"}
	}
	return Project{Name: r.Name, SubPath: r.SubPath, BaseURL: *r.BaseURL}, nil
}

func (r categoryResponse) validate(endpoint string) (Category, error) {
	if r.ID == nil || *r.ID == "" {
		return Category{}, &MalformedResponseError{Endpoint: endpoint, Field: "id"}
	}
	if r.Reference == nil {
		return Category{}, &MalformedResponseError{Endpoint: endpoint, Field: "reference"}
	}
	return Category{ID: *r.ID, Title: r.Title, Slug: r.Slug, Reference: *r.Reference}, nil
}

func (r docResponse) validate(endpoint string) (Doc, error) {
	switch {
	case r.Slug == nil || *r.Slug == "":
		return Doc{}, &MalformedResponseError{Endpoint: endpoint, Field: "slug"}
	case r.Title == nil:
		return Doc{}, &MalformedResponseError{Endpoint: endpoint, Field: "title"}
	case r.Body == nil:
		// an empty body is fine, a missing one isn't
		return Doc{}, &MalformedResponseError{Endpoint: endpoint, Field: "body"}
	}
	return Doc{Body: *r.Body, Slug: *r.Slug, Title: *r.Title}, nil
}
