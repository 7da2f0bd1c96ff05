package api

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

type service struct {
	client *APIClient
}

// APIClient talks to the REST metadata service of a featurestore deployment.
type APIClient struct {
	cfg        *Configuration
	httpClient *http.Client

	common service

	MetadataApi *MetadataApiService
}

func NewAPIClient(cfg *Configuration) *APIClient {
	c := &APIClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 16,
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
	c.common.client = c
	c.MetadataApi = (*MetadataApiService)(&c.common)

	return c
}

// WithHTTPClient replaces the underlying http client.
func (c *APIClient) WithHTTPClient(client *http.Client) *APIClient {
	c.httpClient = client
	return c
}

func (c *APIClient) GetConfig() *Configuration {
	return c.cfg
}

func (c *APIClient) baseURL() string {
	domain := strings.TrimSuffix(c.cfg.GetDomain(), "/")
	if strings.HasPrefix(domain, "http://") || strings.HasPrefix(domain, "https://") {
		return domain
	}
	return "https://" + domain
}

func (c *APIClient) do(ctx context.Context, method, path string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL()+path, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if c.cfg.ApiKey != "" {
		req.Header.Set("Authorization", "ApiKey "+c.cfg.ApiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("metadata request failed, path:%s, err=%w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read metadata response failed, path:%s, err=%w", path, err)
	}

	return resp.StatusCode, body, nil
}
