package readme

// CategoriesQuery defines the query parameters for:
// https://docs.readme.com/main/reference/getcategories
type CategoriesQuery struct {
	// Number of items to include in pagination (up to 100, defaults to 10).
	PerPage int `url:"perPage,omitempty"`
	// Used to specify further pages (starts at 1).
	Page int `url:"page,omitempty"`
}
