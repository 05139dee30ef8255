package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
)

const (
	userAgent  = "ghapk"
	apiVersion = "2022-11-28"
	perPage    = 100
	// maxPages bounds pagination; 1000 releases is far beyond any listing we show
	maxPages = 10
)

// HTTPDoer is the subset of *http.Client used by Client.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client talks to the GitHub Releases API for a single repository.
type Client struct {
	baseURL string
	owner   string
	repo    string
	token   string
	http    HTTPDoer
}

// New creates a client. No client-side timeout is set; callers bound
// requests through the context.
func New(baseURL, owner, repo, token string) *Client {
	return NewWithDoer(baseURL, owner, repo, token, &http.Client{})
}

// NewWithDoer creates a client over a custom HTTP implementation.
func NewWithDoer(baseURL, owner, repo, token string, doer HTTPDoer) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		owner:   owner,
		repo:    repo,
		token:   token,
		http:    doer,
	}
}

func (c *Client) newRequest(ctx context.Context, url, accept string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// ListReleases fetches every release of the repository, newest first, in
// the order the API returns them. Drafts are included when the credential
// can see them.
func (c *Client) ListReleases(ctx context.Context) ([]Release, error) {
	const op = "list releases"

	url := fmt.Sprintf("%s/repos/%s/%s/releases?per_page=%d", c.baseURL, c.owner, c.repo, perPage)
	var all []Release
	for page := 0; url != "" && page < maxPages; page++ {
		req, err := c.newRequest(ctx, url, "application/vnd.github.v3+json")
		if err != nil {
			return nil, &Error{Op: op, Err: err}
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, &Error{Op: op, Err: fmt.Errorf("failed to fetch releases: %w", err)}
		}

		if err := checkStatus(resp); err != nil {
			_ = resp.Body.Close()
			return nil, &Error{Op: op, Status: resp.Status, Err: err}
		}

		var batch []Release
		err = json.NewDecoder(resp.Body).Decode(&batch)
		_ = resp.Body.Close()
		if err != nil {
			return nil, &Error{Op: op, Err: fmt.Errorf("failed to parse releases: %w", err)}
		}
		all = append(all, batch...)

		url = nextPage(resp.Header.Get("Link"))
	}
	if url != "" {
		log.Printf("%s: stopped after %d pages (%d releases), older releases are not listed", op, maxPages, len(all))
	}

	return all, nil
}

// FetchAsset opens the binary content of an asset. The caller closes the
// returned body. size is -1 when the server does not announce a length.
func (c *Client) FetchAsset(ctx context.Context, assetID int64) (body io.ReadCloser, size int64, err error) {
	op := fmt.Sprintf("fetch asset %d", assetID)

	url := fmt.Sprintf("%s/repos/%s/%s/releases/assets/%d", c.baseURL, c.owner, c.repo, assetID)
	req, err := c.newRequest(ctx, url, "application/octet-stream")
	if err != nil {
		return nil, 0, &Error{Op: op, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, &Error{Op: op, Err: fmt.Errorf("failed to download: %w", err)}
	}

	if err := checkStatus(resp); err != nil {
		_ = resp.Body.Close()
		return nil, 0, &Error{Op: op, Status: resp.Status, Err: err}
	}

	return resp.Body, resp.ContentLength, nil
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	}

	// GitHub puts a human readable reason in {"message": "..."}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err == nil && body.Message != "" {
		return errors.New(body.Message)
	}
	return errors.New("GitHub API error")
}

var linkNextRe = regexp.MustCompile(`<([^>]+)>\s*;\s*rel="next"`)

// nextPage extracts the rel="next" URL from a Link header.
func nextPage(link string) string {
	for _, part := range strings.Split(link, ",") {
		if m := linkNextRe.FindStringSubmatch(part); m != nil {
			return m[1]
		}
	}
	return ""
}
