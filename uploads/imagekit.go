// Package uploads holds the client for the external image-storage service.
package uploads

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"skywatch/reports"
)

const defaultUploadURL = "https://upload.imagekit.io/api/v1/files/upload"

// Client uploads files to an ImageKit-style media endpoint. It implements
// reports.Uploader.
type Client struct {
	uploadURL  string
	privateKey string
	folder     string
	httpClient *http.Client
}

func New(uploadURL, privateKey, folder string) *Client {
	if uploadURL == "" {
		uploadURL = defaultUploadURL
	}
	return &Client{
		uploadURL:  uploadURL,
		privateKey: privateKey,
		folder:     folder,
		httpClient: &http.Client{Timeout: 25 * time.Second},
	}
}

type uploadResp struct {
	URL    string `json:"url"`
	FileID string `json:"fileId"`
}

// Upload sends the file as base64 form data and returns its stable URL and
// file id. Non-2xx responses come back as errors with the response body.
func (c *Client) Upload(ctx context.Context, data []byte, filename string) (reports.UploadResult, error) {
	form := url.Values{}
	form.Set("file", base64.StdEncoding.EncodeToString(data))
	form.Set("fileName", filename)
	if c.folder != "" {
		form.Set("folder", c.folder)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, strings.NewReader(form.Encode()))
	if err != nil {
		return reports.UploadResult{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.privateKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return reports.UploadResult{}, fmt.Errorf("upload call failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return reports.UploadResult{}, fmt.Errorf("upload non-2xx: %s, body: %s", resp.Status, string(body))
	}

	var out uploadResp
	if err := json.Unmarshal(body, &out); err != nil {
		return reports.UploadResult{}, fmt.Errorf("decode upload resp: %w", err)
	}
	if out.URL == "" {
		return reports.UploadResult{}, fmt.Errorf("upload resp missing url, body: %s", string(body))
	}
	return reports.UploadResult{URL: out.URL, FileID: out.FileID}, nil
}
