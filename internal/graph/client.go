// Package graph provides the Microsoft Graph drive client used to locate and
// download resume documents from SharePoint.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the Microsoft Graph API endpoint.
const DefaultBaseURL = "https://graph.microsoft.com/v1.0"

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Error represents a failure to reach the file store or to locate a file.
type Error struct {
	URL        string
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("file store error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("file store error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the Graph client.
type Options struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() *Options {
	return &Options{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// Drive is a document library within a site.
type Drive struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Item is a drive item: a file or a folder.
type Item struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	WebURL string         `json:"webUrl"`
	Size   int64          `json:"size"`
	Folder map[string]any `json:"folder,omitempty"`
}

// IsFolder reports whether the item carries the folder facet.
func (i *Item) IsFolder() bool {
	return i.Folder != nil
}

// Client calls the Graph drive API. The bearer token is supplied per call;
// the client itself holds no credentials.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a Graph client.
func NewClient(opts *Options) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

// GetSiteID resolves a SharePoint site URL to its site ID.
func (c *Client) GetSiteID(ctx context.Context, token, siteURL string) (string, error) {
	// Accept both full URLs and bare host/path forms.
	if idx := strings.Index(siteURL, "://"); idx >= 0 {
		siteURL = siteURL[idx+3:]
	}
	parts := strings.Split(siteURL, "/")
	hostname := parts[0]
	path := "/" + strings.Join(parts[1:], "/")

	url := fmt.Sprintf("%s/sites/%s:%s", c.baseURL, hostname, path)

	var site struct {
		ID string `json:"id"`
	}
	if err := c.getJSON(ctx, token, url, &site); err != nil {
		return "", err
	}
	if site.ID == "" {
		return "", &Error{URL: url, Message: "site response missing id"}
	}
	return site.ID, nil
}

// ListDrives lists the document libraries of a site.
func (c *Client) ListDrives(ctx context.Context, token, siteID string) ([]Drive, error) {
	url := fmt.Sprintf("%s/sites/%s/drives", c.baseURL, siteID)

	var resp struct {
		Value []Drive `json:"value"`
	}
	if err := c.getJSON(ctx, token, url, &resp); err != nil {
		return nil, err
	}
	return resp.Value, nil
}

// GetFolderByPath retrieves folder metadata by drive-relative path.
func (c *Client) GetFolderByPath(ctx context.Context, token, siteID, driveID, path string) (*Item, error) {
	url := fmt.Sprintf("%s/sites/%s/drives/%s/root:/%s", c.baseURL, siteID, driveID, strings.Trim(path, "/"))

	var item Item
	if err := c.getJSON(ctx, token, url, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// ListChildren lists the items inside a folder.
func (c *Client) ListChildren(ctx context.Context, token, siteID, driveID, folderID string) ([]Item, error) {
	url := fmt.Sprintf("%s/sites/%s/drives/%s/items/%s/children", c.baseURL, siteID, driveID, folderID)

	var resp struct {
		Value []Item `json:"value"`
	}
	if err := c.getJSON(ctx, token, url, &resp); err != nil {
		return nil, err
	}
	return resp.Value, nil
}

// GetItem retrieves file metadata, including display name and web link.
func (c *Client) GetItem(ctx context.Context, token, siteID, driveID, itemID string) (*Item, error) {
	url := fmt.Sprintf("%s/sites/%s/drives/%s/items/%s", c.baseURL, siteID, driveID, itemID)

	var item Item
	if err := c.getJSON(ctx, token, url, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Download retrieves the raw bytes of a file.
func (c *Client) Download(ctx context.Context, token, siteID, driveID, itemID string) ([]byte, error) {
	url := fmt.Sprintf("%s/sites/%s/drives/%s/items/%s/content", c.baseURL, siteID, driveID, itemID)

	resp, err := c.get(ctx, token, url)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: url, Message: "failed to read file content", Cause: err}
	}
	return data, nil
}

func (c *Client) getJSON(ctx context.Context, token, url string, out any) error {
	resp, err := c.get(ctx, token, url)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{URL: url, Message: "failed to decode response", Cause: err}
	}
	return nil
}

func (c *Client) get(ctx context.Context, token, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{URL: url, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{URL: url, Message: "request failed", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, &Error{
			URL:        url,
			Message:    fmt.Sprintf("unexpected status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}
	return resp, nil
}
