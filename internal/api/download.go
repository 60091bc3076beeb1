package api

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	fhttp "github.com/bogdanfinn/fhttp"

	apierrors "github.com/diogo/malcolmweb/internal/errors"
	"github.com/diogo/malcolmweb/internal/models"
)

// Download fetches a server-provided file by name and saves it under destDir,
// returning the path written. The filename is used as-is for the local copy.
func (c *MalcolmClient) Download(filename, destDir string) (string, error) {
	if c.IsClosed() {
		return "", apierrors.ErrClientClosed
	}
	if filename == "" {
		return "", apierrors.ErrNoFile
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	endpoint := c.endpoint(models.PathDownload) + "/" + url.PathEscape(filename)
	req, err := fhttp.NewRequest(fhttp.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apierrors.NewNetworkError("download", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != 200 {
		return "", apierrors.NewAPIError(resp.StatusCode, endpoint, "download failed")
	}

	// Strip any path components the server may have smuggled in.
	destPath := filepath.Join(destDir, filepath.Base(filename))
	out, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return destPath, nil
}
