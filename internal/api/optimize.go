package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	"github.com/diogo/malcolmweb/internal/device"
	apierrors "github.com/diogo/malcolmweb/internal/errors"
	"github.com/diogo/malcolmweb/internal/models"
)

// Optimize posts a device profile to the service and returns the
// recommendation list in the order the server produced it. There is no retry
// and no client-side interpretation of the entries; they are rendered
// verbatim by the caller.
func (c *MalcolmClient) Optimize(profile device.Profile) ([]string, error) {
	if c.IsClosed() {
		return nil, apierrors.ErrClientClosed
	}

	body, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}

	endpoint := c.endpoint(models.PathOptimize)
	req, err := fhttp.NewRequest(fhttp.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierrors.NewNetworkError("optimize", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != 200 {
		return nil, apierrors.NewAPIError(resp.StatusCode, endpoint, "optimize request failed")
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.NewNetworkError("optimize", endpoint, err)
	}

	return parseRecommendations(respBody)
}

// parseRecommendations extracts the recommendations sequence. A response
// without a recommendations array is a shape error, not an empty result.
func parseRecommendations(body []byte) ([]string, error) {
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewDecodeError("response is not JSON", "")
	}

	recs := gjson.GetBytes(body, "recommendations")
	if !recs.Exists() || !recs.IsArray() {
		return nil, apierrors.NewDecodeError("missing recommendations field", "recommendations")
	}

	var out []string
	for _, entry := range recs.Array() {
		out = append(out, entry.String())
	}
	return out, nil
}
