// Package fetch streams a remote artifact archive to local disk with
// incremental progress reporting.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/kokoro-js/jieba/iox"
	"github.com/kokoro-js/jieba/types"
)

// ArchiveName is the fixed local filename for the downloaded archive.
// Never derived from the URL, so untrusted registry metadata cannot
// steer the write path.
const ArchiveName = "jieba.tgz"

// Fetcher downloads one archive per call. Safe for reuse across calls;
// callers must not run two fetches into the same directory concurrently.
type Fetcher struct {
	http     *http.Client
	progress Progress
}

// New creates a fetcher reporting to the given progress sink. A nil sink
// disables reporting. No per-request timeout is set: artifact sizes vary
// by orders of magnitude, so cancellation is the caller's context.
func New(progress Progress) *Fetcher {
	if progress == nil {
		progress = NopProgress{}
	}
	return &Fetcher{
		http:     &http.Client{},
		progress: progress,
	}
}

// Fetch streams url to <destDir>/jieba.tgz and reports the outcome.
// Every transport and filesystem failure is classified as ErrDownload. A
// transfer that ends short of the declared length yields an aborted
// report and an ErrDownload; it never silently passes as complete.
func (f *Fetcher) Fetch(ctx context.Context, url, destDir string) (types.DownloadReport, error) {
	dest := filepath.Join(destDir, ArchiveName)
	report := types.DownloadReport{Status: types.DownloadAborted, Path: dest}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return report, types.NewInstallError(types.ErrDownload, "fetch", err)
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return report, types.NewInstallError(types.ErrDownload, "fetch", err)
	}
	defer iox.DiscardClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return report, types.NewInstallError(types.ErrDownload, "fetch",
			fmt.Errorf("%s: unexpected status %d", url, resp.StatusCode))
	}

	out, err := os.Create(dest)
	if err != nil {
		return report, types.NewInstallError(types.ErrDownload, "fetch", err)
	}

	total := resp.ContentLength // -1 when the server does not declare one
	written, copyErr := io.Copy(out, &progressReader{
		r:        resp.Body,
		total:    total,
		progress: f.progress,
	})
	report.Bytes = written

	if err := out.Close(); err != nil && copyErr == nil {
		copyErr = err
	}
	if copyErr != nil {
		return report, types.NewInstallError(types.ErrDownload, "fetch", copyErr)
	}
	if total >= 0 && written != total {
		return report, types.NewInstallError(types.ErrDownload, "fetch",
			fmt.Errorf("incomplete transfer: %d of %d bytes", written, total))
	}

	report.Status = types.DownloadComplete
	return report, nil
}

// progressReader reports cumulative transfer counts after every read.
type progressReader struct {
	r        io.Reader
	total    int64
	done     int64
	progress Progress
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.done += int64(n)
		notify(p.progress, p.done, p.total)
	}
	return n, err
}

// notify shields the transfer from a faulty progress sink: reporting is
// an observability side effect and must never abort the download.
func notify(progress Progress, done, total int64) {
	defer func() { _ = recover() }()
	progress.Update(done, total)
}
