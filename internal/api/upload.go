package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/malcolmweb/internal/errors"
	"github.com/diogo/malcolmweb/internal/models"
)

// UploadFile performs a one-shot multipart upload of the file at path and
// returns the server's feedback. An empty path never touches the network.
func (c *MalcolmClient) UploadFile(path string) (*models.UploadResult, error) {
	if path == "" {
		return nil, apierrors.ErrNoFile
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return c.UploadReader(file, filepath.Base(path))
}

// UploadReader uploads content from an io.Reader under the given filename.
func (c *MalcolmClient) UploadReader(r io.Reader, filename string) (*models.UploadResult, error) {
	if c.IsClosed() {
		return nil, apierrors.ErrClientClosed
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	// Single form field named "file", per the upload contract.
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("failed to write file data: %w", err)
	}
	_ = writer.Close()

	endpoint := c.endpoint(models.PathUpload)
	req, err := fhttp.NewRequest(fhttp.MethodPost, endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierrors.NewNetworkError("upload", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.NewNetworkError("upload", endpoint, err)
	}

	if resp.StatusCode != 200 && resp.StatusCode != 201 {
		return nil, apierrors.NewAPIError(resp.StatusCode, endpoint, serverMessage(respBody))
	}

	return parseUploadResult(respBody)
}

// serverMessage pulls the server's message field out of an error body, if any.
func serverMessage(body []byte) string {
	if msg := gjson.GetBytes(body, "message"); msg.Exists() {
		return msg.String()
	}
	return "upload failed"
}

func parseUploadResult(body []byte) (*models.UploadResult, error) {
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewDecodeError("response is not JSON", "")
	}

	feedback := gjson.GetBytes(body, "feedback")
	if !feedback.Exists() {
		return nil, apierrors.NewDecodeError("missing feedback field", "feedback")
	}

	return &models.UploadResult{
		Message:  gjson.GetBytes(body, "message").String(),
		Feedback: feedback.String(),
	}, nil
}
