// File: downloader/downloader.go
package downloader

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Starath/GridPath_BE/grid"
	"github.com/Starath/GridPath_BE/scrape"
)

const (
	DefaultMaxConcurrent = 10
	requestTimeout       = 30 * time.Second
)

// Client is shared by every download. HTTP/2 is disabled because some layout
// hosts reset h2 streams under parallel load.
var Client = &http.Client{
	Timeout: requestTimeout,
	Transport: &http.Transport{
		TLSNextProto: make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
	},
}

func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_", " ", "_",
		"!", "",
	)
	return replacer.Replace(strings.TrimSpace(name))
}

// fileName picks the saved name: the page's own name, else the last URL path
// segment without extension, else the host.
func fileName(rawURL, pageName string) string {
	name := pageName
	if name == "" {
		if parsed, err := url.Parse(rawURL); err == nil {
			base := path.Base(parsed.Path)
			name = strings.TrimSuffix(base, path.Ext(base))
			if name == "" || name == "." || name == "/" {
				name = parsed.Host
			}
		}
	}
	name = sanitizeFilename(name)
	if name == "" {
		name = "layout"
	}
	return name + ".json"
}

func downloadLayout(ctx context.Context, rawURL, outDir string) (string, error) {
	page, err := scrape.FetchLayout(ctx, Client, rawURL)
	if err != nil {
		return "", err
	}

	filePath := filepath.Join(outDir, fileName(rawURL, page.Name))
	// O_EXCL: layouts already on disk, or claimed by a concurrent download
	// of a page with the same name, are skipped.
	out, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, os.ErrExist) {
		log.Printf("[INFO] '%s' already exists, skipping %s\n", filePath, rawURL)
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("create %s: %w", filePath, err)
	}

	err = grid.WriteLayout(out, page.Name, page.Layout)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("save %s: %w", filePath, err)
	}
	log.Printf("[INFO] Saved '%s' -> '%s'\n", rawURL, filePath)
	return filePath, nil
}

// DownloadLayouts fetches every URL, at most maxConcurrent at a time, and
// writes each grid as a layout file in outDir. It returns the paths written
// (in URL order, skipped files omitted) and the failures joined into one error.
func DownloadLayouts(ctx context.Context, urls []string, outDir string, maxConcurrent int) ([]string, error) {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory '%s': %w", outDir, err)
	}
	log.Printf("[INFO] Downloading %d layouts into '%s'\n", len(urls), outDir)

	written := make([]string, len(urls))
	failures := make([]error, len(urls))

	var wg sync.WaitGroup
	sem := make(chan struct{}, maxConcurrent)

	for i, rawURL := range urls {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, rawURL string) {
			defer wg.Done()
			defer func() { <-sem }()

			filePath, err := downloadLayout(ctx, rawURL, outDir)
			if err != nil {
				log.Printf("[WARN] Failed to import %s: %v\n", rawURL, err)
				failures[i] = err
				return
			}
			written[i] = filePath
		}(i, rawURL)
	}
	wg.Wait()

	paths := make([]string, 0, len(urls))
	for _, p := range written {
		if p != "" {
			paths = append(paths, p)
		}
	}
	log.Printf("[INFO] Layout import finished: %d written, %d requested\n", len(paths), len(urls))
	return paths, errors.Join(failures...)
}
