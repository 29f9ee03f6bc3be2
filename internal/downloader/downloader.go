package downloader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/caedis/fabric-mod-manager/internal/logging"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// HTTPClient is used for all downloads. Tests may replace it.
var HTTPClient = http.DefaultClient

// ShowProgress controls the progress bar. It is only drawn when stderr is a
// terminal.
var ShowProgress = true

// DownloadToFile downloads url into destPath. The body is written to
// destPath+".tmp" first and renamed into place once complete, replacing any
// existing file.
func DownloadToFile(ctx context.Context, url, destPath string) error {
	name := filepath.Base(destPath)
	logging.Debugf("Verbose: download start file=%s url=%s\n", name, url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", name, err)
	}

	resp, err := HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading %s: HTTP %d", name, resp.StatusCode)
	}

	tmpPath := destPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}

	var dst io.Writer = f
	if bar := newProgressBar(resp.ContentLength, name); bar != nil {
		dst = io.MultiWriter(f, bar)
		defer bar.Close()
	}

	n, err := io.Copy(dst, resp.Body)
	closeErr := f.Close()
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing %s: %w", name, closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("finalizing %s: %w", name, err)
	}
	logging.Debugf("Verbose: download complete file=%s bytes=%d\n", name, n)

	return nil
}

func newProgressBar(size int64, name string) *progressbar.ProgressBar {
	if !ShowProgress || !term.IsTerminal(int(os.Stderr.Fd())) {
		return nil
	}
	return progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("  "+name),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
}
