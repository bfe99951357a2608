// SPDX-License-Identifier: Apache-2.0
package download

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
)

// ProgressCallback is called periodically during download with current progress
// percent is a float between 0 and 1 representing completion percentage
type ProgressCallback func(percent float64)

// Options configures the download
type Options struct {
	ProgressCallback ProgressCallback
	Headers          map[string]string
}

// File downloads a file from URL to destination with optional progress callback
func File(url, dest string, progressCallback ProgressCallback) error {
	return FileWithOptions(url, dest, &Options{
		ProgressCallback: progressCallback,
	})
}

// FileWithOptions downloads a file with custom options
func FileWithOptions(url, dest string, opts *Options) error {
	log.Debugf("Downloading %s to %s", url, dest)

	if opts == nil {
		opts = &Options{}
	}

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	totalSize := resp.ContentLength
	if opts.ProgressCallback == nil || totalSize <= 0 {
		if _, err := io.Copy(out, resp.Body); err != nil {
			return fmt.Errorf("failed to save: %w", err)
		}
		log.Debugf("Download complete: %s", dest)
		return nil
	}

	// Tracked copy: report progress per chunk
	downloaded := int64(0)
	buf := make([]byte, 32*1024)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			downloaded += int64(n)
			if _, writeErr := out.Write(buf[:n]); writeErr != nil {
				return fmt.Errorf("failed to write: %w", writeErr)
			}
			opts.ProgressCallback(float64(downloaded) / float64(totalSize))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read: %w", err)
		}
	}

	log.Debugf("Download complete: %s", dest)
	return nil
}
