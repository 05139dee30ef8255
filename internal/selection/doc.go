// Package selection implements the cursor-driven list of release items and
// the per-item install status.
//
// A List owns one Item per catalog release, in catalog order. The cursor
// moves with wrap-around and remembers the last selection across Deselect.
// A single pending slot records which item is being deployed; Activate fills
// it and Complete clears it, so at most one deployment runs at a time.
package selection
