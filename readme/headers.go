package readme

import (
	"encoding/base64"
	"net/http"
)

// ConstructHeaders returns the headers every ReadMe request carries: JSON accept and Basic auth
// built from the API key (as username, with an empty password).  Any extra header whose value is
// empty, "null" or "undefined" is dropped; everything else is set, overriding a default of the
// same name.
func ConstructHeaders(apiKey string, extra map[string]string) http.Header {
	encodedKey := base64.StdEncoding.EncodeToString([]byte(apiKey + ":"))

	headers := http.Header{}
	headers.Set("Accept", "application/json")
	headers.Set("Authorization", "Basic "+encodedKey)

	for name, value := range extra {
		if !usableHeaderValue(value) {
			continue
		}
		headers.Set(name, value)
	}

	return headers
}

// Unset config values that have been stringified somewhere upstream look like these.
func usableHeaderValue(value string) bool {
	switch value {
	case "", "null", "undefined":
		return false
	}
	return true
}
