package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/flfe/adminctl/internal/common"
)

// UploadFile posts a file to the backend's upload endpoint as multipart form
// data and returns the stored URL.
//
// This deliberately bypasses do: the request must keep the multipart content
// type, so the bearer header is attached manually here instead of going
// through the JSON pipeline.
func (c *HTTPClient) UploadFile(ctx context.Context, filename string, r io.Reader) (string, error) {
	const fallback = "failed to upload file"

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/files/upload", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.authorize(ctx, req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %s", common.ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", c.mapError(resp.StatusCode, body, fallback)
	}

	data, err := unwrap(body, fallback)
	if err != nil {
		return "", err
	}
	var result struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(data, &result); err != nil || result.URL == "" {
		return "", &Error{Status: resp.StatusCode, Message: fallback}
	}
	return result.URL, nil
}
