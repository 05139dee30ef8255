package deploy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/pushchain/ghapk/internal/catalog"
	"github.com/pushchain/ghapk/internal/device"
	"github.com/pushchain/ghapk/internal/selection"
)

// AssetFetcher opens the content of a registry asset.
type AssetFetcher interface {
	FetchAsset(ctx context.Context, assetID int64) (io.ReadCloser, int64, error)
}

// Options configures where artifacts go.
type Options struct {
	ScratchPath string // local download target, shared by every run
	RemotePath  string // on-device target
	DeviceHost  string
	DevicePort  int
}

// Pipeline downloads, transfers and installs release artifacts. Runs must
// not overlap: the scratch file is shared. selection.List guarantees this.
type Pipeline struct {
	Assets AssetFetcher
	Device device.Client
	Opts   Options
	Logger *log.Logger
}

// New creates a pipeline logging through the standard logger.
func New(assets AssetFetcher, dev device.Client, opts Options) *Pipeline {
	return &Pipeline{Assets: assets, Device: dev, Opts: opts, Logger: log.Default()}
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.Logger != nil {
		p.Logger.Printf(format, args...)
	}
}

// Run executes every stage for item. report may be nil.
func (p *Pipeline) Run(ctx context.Context, item selection.Item, report Reporter) (Result, error) {
	runID := uuid.NewString()
	res := Result{RunID: runID, Tag: item.Tag}
	emit := func(ev Event) {
		ev.RunID, ev.Tag = runID, item.Tag
		if report != nil {
			report(ev)
		}
	}

	p.logf("run %s: start %s (asset %d)", runID, item.Tag, item.AssetID)

	emit(Event{Stage: StageResolve})
	if item.AssetID == catalog.NoAsset {
		p.logf("run %s: %v", runID, ErrNoInstallableAsset)
		return res, ErrNoInstallableAsset
	}

	emit(Event{Stage: StageDownload, Total: -1})
	n, err := p.download(ctx, item.AssetID, func(done, total int64) {
		emit(Event{Stage: StageDownload, Downloaded: done, Total: total})
	})
	if err != nil {
		p.logf("run %s: download: %v", runID, err)
		return res, &StageError{Stage: StageDownload, Err: err}
	}
	res.Bytes = n
	p.logf("run %s: downloaded %d bytes to %s", runID, n, p.Opts.ScratchPath)

	emit(Event{Stage: StageTransfer})
	conn, err := p.Device.Connect(ctx, p.Opts.DeviceHost, p.Opts.DevicePort)
	if err != nil {
		p.logf("run %s: connect: %v", runID, err)
		return res, &StageError{Stage: StageTransfer, Err: err}
	}
	defer func() { _ = conn.Close() }()

	if err := conn.Push(ctx, p.Opts.ScratchPath, p.Opts.RemotePath); err != nil {
		p.logf("run %s: push: %v", runID, err)
		return res, &StageError{Stage: StageTransfer, Err: err}
	}
	p.logf("run %s: pushed to %s", runID, p.Opts.RemotePath)

	emit(Event{Stage: StageInstall})
	out, err := conn.Shell(ctx, "pm", "install", "-r", p.Opts.RemotePath)
	res.Output = out
	if err == nil && strings.Contains(out, "Failure") {
		// Older servers exit 0 and only report in the output.
		err = errors.New(out)
	}
	if err != nil {
		p.logf("run %s: install: %v", runID, err)
		return res, &StageError{Stage: StageInstall, Err: err}
	}

	emit(Event{Stage: StageDone})
	p.logf("run %s: installed %s", runID, item.Tag)
	return res, nil
}

// ProgressFunc is called during download with bytes downloaded and total size
type ProgressFunc func(downloaded, total int64)

// download streams the asset into a temp file next to the scratch path and
// renames it into place, so the scratch path never holds a partial file.
func (p *Pipeline) download(ctx context.Context, assetID int64, progress ProgressFunc) (int64, error) {
	body, total, err := p.Assets.FetchAsset(ctx, assetID)
	if err != nil {
		return 0, err
	}
	defer func() { _ = body.Close() }()

	dir := filepath.Dir(p.Opts.ScratchPath)
	tmp, err := os.CreateTemp(dir, ".ghapk-download-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	var reader io.Reader = body
	if progress != nil {
		reader = &progressReader{reader: body, total: total, progress: progress}
	}

	n, err := io.Copy(tmp, reader)
	if err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return n, fmt.Errorf("failed to read download: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return n, fmt.Errorf("failed to write download: %w", err)
	}
	if err := os.Rename(tmpPath, p.Opts.ScratchPath); err != nil {
		os.Remove(tmpPath)
		return n, fmt.Errorf("failed to move download into place: %w", err)
	}
	return n, nil
}

// progressReader wraps a reader to report progress
type progressReader struct {
	reader     io.Reader
	total      int64
	downloaded int64
	progress   ProgressFunc
}

func (pr *progressReader) Read(b []byte) (int, error) {
	n, err := pr.reader.Read(b)
	pr.downloaded += int64(n)
	if n > 0 && pr.progress != nil {
		pr.progress(pr.downloaded, pr.total)
	}
	return n, err
}
