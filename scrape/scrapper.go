// File: scrape/scrapper.go
package scrape

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/brotli"

	"github.com/Starath/GridPath_BE/grid"
)

var ErrNoGrid = errors.New("no grid table found")

const requestTimeout = 30 * time.Second

// DefaultClient is used when FetchLayout is given a nil client.
var DefaultClient = &http.Client{Timeout: requestTimeout}

// Page is a layout read from an HTML document.
type Page struct {
	Name   string
	Layout *grid.Layout
}

// FetchLayout downloads url and parses the grid table it contains.
func FetchLayout(ctx context.Context, client *http.Client, url string) (*Page, error) {
	if client == nil {
		client = DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "br, gzip")

	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d", url, res.StatusCode)
	}

	var reader io.Reader = res.Body
	switch strings.ToLower(res.Header.Get("Content-Encoding")) {
	case "br":
		reader = brotli.NewReader(res.Body)
	case "gzip":
		gz, err := gzip.NewReader(res.Body)
		if err != nil {
			return nil, fmt.Errorf("GET %s: gzip: %w", url, err)
		}
		defer gz.Close()
		reader = gz
	}

	page, err := ParseLayoutHTML(reader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	log.Printf("[INFO] Layout '%s' scraped from %s (%dx%d)", page.Name, url, page.Layout.Width, page.Layout.Height)
	return page, nil
}

// ParseLayoutHTML reads the first table with class "grid", or failing that
// the first table, as a layout. Each td is one cell; its state comes from a
// data-state attribute, a class among empty/obstacle/start/goal, or its text
// ('.', '#', 'S', 'G'). Rows without td cells are skipped.
func ParseLayoutHTML(r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	table := doc.Find("table.grid").First()
	if table.Length() == 0 {
		table = doc.Find("table").First()
	}
	if table.Length() == 0 {
		return nil, ErrNoGrid
	}

	var rows []string
	var parseErr error
	table.Find("tr").EachWithBreak(func(rowIndex int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() == 0 {
			return true
		}
		var sb strings.Builder
		cells.EachWithBreak(func(colIndex int, cell *goquery.Selection) bool {
			state, err := cellState(cell)
			if err != nil {
				parseErr = fmt.Errorf("row %d col %d: %w", len(rows), colIndex, err)
				return false
			}
			sb.WriteRune(state.Rune())
			return true
		})
		if parseErr != nil {
			return false
		}
		rows = append(rows, sb.String())
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if len(rows) == 0 {
		return nil, ErrNoGrid
	}

	layout, err := grid.ParseLayout(rows)
	if err != nil {
		return nil, err
	}

	name, ok := table.Attr("data-name")
	if !ok || strings.TrimSpace(name) == "" {
		name = doc.Find("title").First().Text()
	}
	return &Page{Name: strings.TrimSpace(name), Layout: layout}, nil
}

func cellState(cell *goquery.Selection) (grid.CellState, error) {
	if value, ok := cell.Attr("data-state"); ok {
		return grid.ParseState(value)
	}
	for _, class := range []string{"obstacle", "start", "goal", "empty"} {
		if cell.HasClass(class) {
			return grid.ParseState(class)
		}
	}
	text := strings.TrimSpace(cell.Text())
	if text == "" {
		return grid.Empty, nil
	}
	return grid.ParseState(text)
}
