package catalog

import (
	"strings"

	"golang.org/x/mod/semver"
)

// InstallableExt marks the asset a device can install.
const InstallableExt = ".apk"

// NoAsset is the asset id of a release without an installable asset.
const NoAsset int64 = -1

// Asset is a downloadable artifact attached to a release.
type Asset struct {
	Name        string
	RemoteID    int64  // id used to address the asset in the registry
	DownloadRef string // browser download URL
}

// Release is a published version with its notes and assets.
type Release struct {
	Tag         string
	Notes       string
	DisplayName string // optional
	Assets      []Asset
}

// Title returns the display name, falling back to the tag.
func (r Release) Title() string {
	if strings.TrimSpace(r.DisplayName) != "" {
		return r.DisplayName
	}
	return r.Tag
}

// InstallableAsset returns the first asset whose name ends in InstallableExt.
func (r Release) InstallableAsset() (Asset, bool) {
	for _, a := range r.Assets {
		if strings.HasSuffix(a.Name, InstallableExt) {
			return a, true
		}
	}
	return Asset{}, false
}

// InstallableAssetID returns the id of InstallableAsset or NoAsset.
func (r Release) InstallableAssetID() int64 {
	if a, ok := r.InstallableAsset(); ok {
		return a.RemoteID
	}
	return NoAsset
}

// Catalog is a read-only, ordered list of releases.
type Catalog struct {
	releases []Release
}

// New snapshots releases in registry order. The caller's slice is copied.
func New(releases []Release) *Catalog {
	cp := make([]Release, len(releases))
	for i, r := range releases {
		r.Assets = append([]Asset(nil), r.Assets...)
		cp[i] = r
	}
	return &Catalog{releases: cp}
}

// Len returns the number of releases.
func (c *Catalog) Len() int { return len(c.releases) }

// Releases returns a copy of the listing.
func (c *Catalog) Releases() []Release {
	return append([]Release(nil), c.releases...)
}

// Latest returns the release with the highest semantic-version tag.
// Tags that are not valid semver (with or without a leading "v") are skipped.
func (c *Catalog) Latest() (Release, bool) {
	best := -1
	bestVer := ""
	for i, r := range c.releases {
		v := canonical(r.Tag)
		if v == "" {
			continue
		}
		if best < 0 || semver.Compare(v, bestVer) > 0 {
			best, bestVer = i, v
		}
	}
	if best < 0 {
		return Release{}, false
	}
	return c.releases[best], true
}

func canonical(tag string) string {
	if !strings.HasPrefix(tag, "v") {
		tag = "v" + tag
	}
	if !semver.IsValid(tag) {
		return ""
	}
	return tag
}
