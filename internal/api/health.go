package api

import (
	"encoding/json"
	"fmt"
	"io"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/malcolmweb/internal/errors"
	"github.com/diogo/malcolmweb/internal/models"
)

// Health checks the service liveness endpoint and returns the reported status.
func (c *MalcolmClient) Health() (string, error) {
	body, err := c.get("health", models.PathHealthz)
	if err != nil {
		return "", err
	}

	status := gjson.GetBytes(body, "status")
	if !status.Exists() {
		return "", apierrors.NewDecodeError("missing status field", "status")
	}
	return status.String(), nil
}

// Meta returns the service's self-description (name, version, modes).
func (c *MalcolmClient) Meta() (map[string]any, error) {
	body, err := c.get("meta", models.PathMeta)
	if err != nil {
		return nil, err
	}

	var meta map[string]any
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, apierrors.NewDecodeError("response is not a JSON object", "")
	}
	return meta, nil
}

func (c *MalcolmClient) get(operation, path string) ([]byte, error) {
	if c.IsClosed() {
		return nil, apierrors.ErrClientClosed
	}

	endpoint := c.endpoint(path)
	req, err := fhttp.NewRequest(fhttp.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierrors.NewNetworkError(operation, endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != 200 {
		return nil, apierrors.NewAPIError(resp.StatusCode, endpoint, operation+" request failed")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.NewNetworkError(operation, endpoint, err)
	}
	return body, nil
}
