package pcm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"
)

var httpClient = &http.Client{
	Timeout: 120 * time.Second,
}

// Client calls the destination commerce API with bearer auth.
type Client struct {
	APIURL string
	Auth   *Auth
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	token, err := c.Auth.AccessToken()
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	return httpClient.Do(req)
}

type dataID struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// UploadFileByURL registers a remote image with the destination's file
// service and returns the file id to join into the import CSV.
func (c *Client) UploadFileByURL(fileURL string) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("file_location", fileURL); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", c.APIURL+"/v2/files", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("file upload status %d", resp.StatusCode)
	}

	var result dataID
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.Data.ID, nil
}
