package readme

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// request performs one call against the API.  Version-scoped calls carry VersionHeader, and a
// non-nil payload is sent as JSON.
func (api *API) request(ctx context.Context, method string, ep *url.URL, versioned bool, payload any) ([]byte, error) {
	extra := map[string]string{}
	if versioned {
		extra[VersionHeader] = api.Version
	}

	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("readme: couldn't encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
		extra["Content-Type"] = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, ep.String(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("readme: couldn't instantiate http request: %w", err)
	}
	req.Header = ConstructHeaders(api.apiKey, extra)

	response, err := api.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("readme: couldn't perform http request: %w", err)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		response.Body.Close()
		return nil, fmt.Errorf("readme: couldn't read http response body: %w", err)
	}

	if err := response.Body.Close(); err != nil {
		return nil, fmt.Errorf("readme: couldn't close response body: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, &StatusError{
			Method:     method,
			URL:        ep.String(),
			StatusCode: response.StatusCode,
			Status:     response.Status,
			Body:       body,
		}
	}

	return body, nil
}
