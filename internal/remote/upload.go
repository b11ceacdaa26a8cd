package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"worknest-console/internal/models"
)

type uploadResponse struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// Upload calls POST /upload with the document in the "file" field. The stored
// path is uploads/{filename}; the URL is the backend origin joined with the returned url.
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (*models.Attachment, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("buffer upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var resp uploadResponse
	if err := c.send(req, "/upload", &resp); err != nil {
		return nil, err
	}
	return &models.Attachment{
		Name: resp.Filename,
		Path: "uploads/" + resp.Filename,
		URL:  c.Origin + resp.URL,
	}, nil
}
