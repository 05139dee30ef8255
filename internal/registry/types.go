package registry

import (
	"time"

	"github.com/pushchain/ghapk/internal/catalog"
)

// Release represents a GitHub release as returned by the REST API
type Release struct {
	ID          int64     `json:"id"`
	TagName     string    `json:"tag_name"`
	Name        *string   `json:"name"` // null when the release has no title
	Body        string    `json:"body"` // Changelog/release notes
	Draft       bool      `json:"draft"`
	Prerelease  bool      `json:"prerelease"`
	PublishedAt time.Time `json:"published_at"`
	HTMLURL     string    `json:"html_url"`
	Assets      []Asset   `json:"assets"`
}

// Asset represents a release asset
type Asset struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
	ContentType        string `json:"content_type"`
}

// ToCatalog converts the API representation into a catalog release.
func (r Release) ToCatalog() catalog.Release {
	out := catalog.Release{
		Tag:    r.TagName,
		Notes:  r.Body,
		Assets: make([]catalog.Asset, 0, len(r.Assets)),
	}
	if r.Name != nil {
		out.DisplayName = *r.Name
	}
	for _, a := range r.Assets {
		out.Assets = append(out.Assets, catalog.Asset{
			Name:        a.Name,
			RemoteID:    a.ID,
			DownloadRef: a.BrowserDownloadURL,
		})
	}
	return out
}
