package selection

import "github.com/pushchain/ghapk/internal/catalog"

// Status is the install state of an item.
type Status int

const (
	// Idle is the initial state and the state after every deployment.
	Idle Status = iota
	// InProgress marks the item whose deployment is running.
	InProgress
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case InProgress:
		return "in progress"
	default:
		return "unknown"
	}
}

// Item is the view model for one release.
type Item struct {
	Tag     string
	Title   string
	Notes   string
	AssetID int64 // resolved installable asset id or catalog.NoAsset
	Status  Status
}

// HasAsset reports whether the release has an installable asset.
func (it Item) HasAsset() bool { return it.AssetID != catalog.NoAsset }

// ItemFromRelease builds an idle item, resolving the installable asset.
func ItemFromRelease(r catalog.Release) Item {
	return Item{
		Tag:     r.Tag,
		Title:   r.Title(),
		Notes:   r.Notes,
		AssetID: r.InstallableAssetID(),
		Status:  Idle,
	}
}
