// Package testutil provides an in-process stand-in for the ReadMe REST API.
package testutil

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// RecordedRequest is what the fake saw for one call.
type RecordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

// FakeCategory is a category as served by the fake.
type FakeCategory struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Reference bool   `json:"reference"`
}

// FakeDoc is a doc as served by the fake.
type FakeDoc struct {
	Body     string `json:"body"`
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Category string `json:"category,omitempty"`
}

type routeKey struct {
	method string
	path   string
}

// FakeReadMe serves projects, categories and docs from memory.  Docs and categories are scoped
// by the x-readme-version header.
type FakeReadMe struct {
	server *httptest.Server

	mu         sync.Mutex
	projects   map[string]string // api key -> baseUrl
	categories map[string][]FakeCategory
	docs       map[string]map[string]FakeDoc // version -> slug -> doc
	aliases    map[string]map[string]string  // version -> requested slug -> stored slug
	statuses   map[routeKey]int
	raw        map[routeKey]string
	requests   []RecordedRequest
}

func NewFakeReadMe() *FakeReadMe {
	fake := &FakeReadMe{
		projects:   make(map[string]string),
		categories: make(map[string][]FakeCategory),
		docs:       make(map[string]map[string]FakeDoc),
		aliases:    make(map[string]map[string]string),
		statuses:   make(map[routeKey]int),
		raw:        make(map[routeKey]string),
	}
	fake.server = httptest.NewServer(http.HandlerFunc(fake.serve))
	return fake
}

func (f *FakeReadMe) URL() string { return f.server.URL }

func (f *FakeReadMe) Close() { f.server.Close() }

// Client returns an HTTP client wired to the fake's listener.
func (f *FakeReadMe) Client() *http.Client { return f.server.Client() }

func (f *FakeReadMe) SetProject(apiKey string, baseURL string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projects[apiKey] = baseURL
}

func (f *FakeReadMe) SetCategories(version string, categories ...FakeCategory) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.categories[version] = categories
}

func (f *FakeReadMe) SetDoc(version string, doc FakeDoc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.docs[version] == nil {
		f.docs[version] = make(map[string]FakeDoc)
	}
	f.docs[version][doc.Slug] = doc
}

// SetAlias makes a GET for requested return the doc stored under stored, the way ReadMe follows
// renamed slugs.
func (f *FakeReadMe) SetAlias(version string, requested string, stored string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.aliases[version] == nil {
		f.aliases[version] = make(map[string]string)
	}
	f.aliases[version][requested] = stored
}

// SetStatus forces every method+path call to answer with code and an empty JSON object.
func (f *FakeReadMe) SetStatus(method string, path string, code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[routeKey{method, path}] = code
}

// SetRawResponse forces a 200 with body for method+path.
func (f *FakeReadMe) SetRawResponse(method string, path string, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.raw[routeKey{method, path}] = body
}

func (f *FakeReadMe) Doc(version string, slug string) (FakeDoc, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[version][slug]
	return doc, ok
}

func (f *FakeReadMe) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]RecordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// Count returns how many requests matched method and path exactly.
func (f *FakeReadMe) Count(method string, path string) int {
	n := 0
	for _, r := range f.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// CountMethod returns how many requests used method.
func (f *FakeReadMe) CountMethod(method string) int {
	n := 0
	for _, r := range f.Requests() {
		if r.Method == method {
			n++
		}
	}
	return n
}

func (f *FakeReadMe) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, RecordedRequest{
		Method:   r.Method,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
		Header:   r.Header.Clone(),
		Body:     body,
	})
	key := routeKey{r.Method, r.URL.Path}
	code, forced := f.statuses[key]
	raw, hasRaw := f.raw[key]
	f.mu.Unlock()

	if forced {
		writeJSON(w, code, map[string]string{"error": http.StatusText(code)})
		return
	}
	if hasRaw {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, raw)
		return
	}

	apiKey, ok := basicKey(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "APIKEY_EMPTY"})
		return
	}
	version := r.Header.Get("x-readme-version")

	switch {
	case r.URL.Path == "/" && r.Method == http.MethodGet:
		f.serveProject(w, apiKey)
	case r.URL.Path == "/categories" && r.Method == http.MethodGet:
		f.serveCategories(w, version)
	case r.URL.Path == "/docs" && r.Method == http.MethodPost:
		f.createDoc(w, version, body)
	case strings.HasPrefix(r.URL.Path, "/docs/"):
		slug := strings.TrimPrefix(r.URL.Path, "/docs/")
		switch r.Method {
		case http.MethodGet:
			f.getDoc(w, version, slug)
		case http.MethodPut:
			f.updateDoc(w, version, slug, body)
		default:
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{})
		}
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "ROUTE_NOT_FOUND"})
	}
}

func (f *FakeReadMe) serveProject(w http.ResponseWriter, apiKey string) {
	f.mu.Lock()
	baseURL, ok := f.projects[apiKey]
	f.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "APIKEY_NOTFOUND"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": "fake", "baseUrl": baseURL})
}

func (f *FakeReadMe) serveCategories(w http.ResponseWriter, version string) {
	f.mu.Lock()
	categories, ok := f.categories[version]
	f.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "VERSION_NOTFOUND"})
		return
	}
	if categories == nil {
		categories = []FakeCategory{}
	}
	writeJSON(w, http.StatusOK, categories)
}

func (f *FakeReadMe) getDoc(w http.ResponseWriter, version string, slug string) {
	f.mu.Lock()
	if stored, ok := f.aliases[version][slug]; ok {
		slug = stored
	}
	doc, ok := f.docs[version][slug]
	f.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "DOC_NOTFOUND"})
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (f *FakeReadMe) updateDoc(w http.ResponseWriter, version string, slug string, body []byte) {
	var update struct {
		Body  string `json:"body"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(body, &update); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[version][slug]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "DOC_NOTFOUND"})
		return
	}
	doc.Body = update.Body
	doc.Title = update.Title
	f.docs[version][slug] = doc
	writeJSON(w, http.StatusOK, doc)
}

func (f *FakeReadMe) createDoc(w http.ResponseWriter, version string, body []byte) {
	var doc FakeDoc
	if err := json.Unmarshal(body, &doc); err != nil || doc.Slug == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("bad doc: %v", err)})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.docs[version][doc.Slug]; exists {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "DOC_EXISTS"})
		return
	}
	if f.docs[version] == nil {
		f.docs[version] = make(map[string]FakeDoc)
	}
	f.docs[version][doc.Slug] = doc
	writeJSON(w, http.StatusCreated, doc)
}

// basicKey returns the API key from "Basic base64(key:)".
func basicKey(r *http.Request) (string, bool) {
	encoded, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Basic ")
	if !ok {
		return "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", false
	}
	key, _, _ := strings.Cut(string(decoded), ":")
	return key, key != ""
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
