// Package deploy runs one installation of a release's artifact:
//
//	resolve → download → transfer → install
//
// Each stage runs once; the first failure ends the run with a *StageError
// naming the stage (or ErrNoInstallableAsset when there is nothing to
// install). A successful run leaves no state behind except the scratch file.
package deploy
