// Package catalog holds the immutable snapshot of releases listed from the
// registry at startup. Nothing in the snapshot changes for the lifetime of
// the process.
package catalog
