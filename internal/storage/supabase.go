package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Uploader stores a blob and returns a public URL for it.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// SupabaseClient uploads objects to a Supabase storage bucket over its REST
// API and returns the public object URL.
type SupabaseClient struct {
	baseURL    string
	serviceKey string
	bucket     string
	hc         *http.Client
}

func NewSupabaseClient(baseURL, serviceKey, bucket string, timeout time.Duration) *SupabaseClient {
	return &SupabaseClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		bucket:     bucket,
		hc: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

func (c *SupabaseClient) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	// Overwrite an existing object with the same key rather than erroring.
	req.Header.Set("x-upsert", "true")

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 300))
		return "", fmt.Errorf("storage upload returned %d: %s", resp.StatusCode, detail)
	}
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, key), nil
}
