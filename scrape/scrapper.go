// File: scrape/scrapper.go
package scrape

import (
	"bytes"
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

	"github.com/Starath/pathfindr/loadgrid"
)

// GridSelector locates the host page's grid table. Each tr is a row (y) and
// each td a column (x).
const GridSelector = "table.pf-grid"

// ErrNoGrid is returned when the page does not contain a usable grid table.
var ErrNoGrid = errors.New("no grid table found")

// DefaultClient is used when Fetch is given a nil client.
var DefaultClient = &http.Client{Timeout: 30 * time.Second}

// Fetch downloads url and returns its body, decoding brotli responses.
func Fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "pathfindr-grid-import/1.0")
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "br")

	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %d", url, res.StatusCode)
	}

	var reader io.Reader = res.Body
	switch strings.ToLower(res.Header.Get("Content-Encoding")) {
	case "br":
		reader = brotli.NewReader(res.Body)
	case "", "identity":
	default:
		return nil, fmt.Errorf("GET %s: unsupported content encoding %q", url, res.Header.Get("Content-Encoding"))
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// ParseGrid reads the first grid table of an HTML document. A cell is
// forbidden when it has class "forbidden" or data-forbidden="true".
func ParseGrid(r io.Reader) (*loadgrid.GridDefinition, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	table := doc.Find(GridSelector).First()
	if table.Length() == 0 {
		return nil, ErrNoGrid
	}

	rows := table.Find("tr")
	size := rows.Length()
	if size == 0 {
		return nil, fmt.Errorf("%w: table has no rows", ErrNoGrid)
	}

	var forbidden []int
	var rowErr error
	rows.EachWithBreak(func(y int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() != size {
			rowErr = fmt.Errorf("%w: row %d has %d cells, expected %d", loadgrid.ErrInvalidGrid, y, cells.Length(), size)
			return false
		}
		cells.Each(func(x int, cell *goquery.Selection) {
			flag, _ := cell.Attr("data-forbidden")
			if cell.HasClass("forbidden") || strings.EqualFold(strings.TrimSpace(flag), "true") {
				forbidden = append(forbidden, y*size+x)
			}
		})
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	return loadgrid.NewGridDefinition(size, forbidden)
}

// ScrapeGrid fetches the host page at url and imports its grid.
func ScrapeGrid(ctx context.Context, client *http.Client, url string) (*loadgrid.GridDefinition, error) {
	log.Printf("[INFO] Importing grid from %s", url)
	body, err := Fetch(ctx, client, url)
	if err != nil {
		return nil, err
	}
	def, err := ParseGrid(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	log.Printf("[INFO] Imported %dx%d grid with %d forbidden cells from %s", def.Size, def.Size, len(def.Forbidden), url)
	return def, nil
}
