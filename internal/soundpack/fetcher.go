package soundpack

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/keycl/keycl/internal/model"
)

// DefaultIndexURL is the fixed online library index: a directory listing of
// .keyclsound packages served by the GitHub contents API.
const DefaultIndexURL = "https://api.github.com/repos/OptionallyBlueStudios/KeyCL/contents/sounds"

// Fetch timeouts bound how long a hung network call can block an install.
const (
	TextFetchTimeout   = 15 * time.Second
	BinaryFetchTimeout = 30 * time.Second
)

// Client fetches the remote package index, descriptor bodies, and audio
// payloads. All fetch calls block and are expected to run off the UI
// thread.
type Client struct {
	http     *http.Client
	indexURL string
	log      *zap.Logger
}

// NewClient creates a fetch client. An empty indexURL selects the default
// online library.
func NewClient(indexURL string, log *zap.Logger) *Client {
	if indexURL == "" {
		indexURL = DefaultIndexURL
	}
	return &Client{
		http:     &http.Client{},
		indexURL: indexURL,
		log:      log,
	}
}

// ListPackages queries the index endpoint and returns the .keyclsound
// entries (name plus download locator) without fetching bodies.
func (c *Client) ListPackages(ctx context.Context) ([]model.RemotePackage, error) {
	ctx, cancel := context.WithTimeout(ctx, TextFetchTimeout)
	defer cancel()

	resp, err := c.get(ctx, c.indexURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var entries []model.RemotePackage
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, &NetworkError{URL: c.indexURL, Err: err}
	}

	packages := make([]model.RemotePackage, 0, len(entries))
	for _, entry := range entries {
		if strings.HasSuffix(strings.ToLower(entry.Name), PackageExtension) {
			packages = append(packages, entry)
		}
	}

	c.log.Debug("listed remote packages",
		zap.Int("total", len(entries)),
		zap.Int("packages", len(packages)))
	return packages, nil
}

// FetchText retrieves a descriptor body.
func (c *Client) FetchText(ctx context.Context, rawURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, TextFetchTimeout)
	defer cancel()

	resp, err := c.get(ctx, rawURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{URL: rawURL, Err: err}
	}
	return string(body), nil
}

// FetchBinary streams the payload to destPath with bounded memory. The
// body is written to a temporary file in the destination directory and
// renamed only on full success, so a partial download is never visible
// under the final name.
func (c *Client) FetchBinary(ctx context.Context, rawURL, destPath string) error {
	ctx, cancel := context.WithTimeout(ctx, BinaryFetchTimeout)
	defer cancel()

	resp, err := c.get(ctx, rawURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tmpPath := destPath + ".part-" + uuid.NewString()
	tmp, err := os.Create(tmpPath)
	if err != nil {
		return &PersistenceError{Path: tmpPath, Err: err}
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return &NetworkError{URL: rawURL, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &PersistenceError{Path: tmpPath, Err: err}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return &PersistenceError{Path: destPath, Err: err}
	}
	return nil
}

// get issues a GET and maps transport failures and non-success statuses to
// NetworkError. The caller owns the response body on success.
func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &NetworkError{URL: rawURL, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: rawURL, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, &NetworkError{URL: rawURL, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	return resp, nil
}
