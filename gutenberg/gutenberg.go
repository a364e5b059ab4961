// Package gutenberg downloads a plain-text book corpus: it crawls the Gutendex
// catalogue API page by page and then fetches each eligible book from Project
// Gutenberg. Both steps persist progress and resume where they stopped.
package gutenberg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jamesainslie/go-wordrank/internal/atomicfile"
)

const (
	// DefaultCatalogURL lists English books by authors born from 1900 on.
	DefaultCatalogURL = "https://gutendex.com/books/?author_year_start=1900&languages=en"

	// DefaultDownloadURL is the UTF-8 plain text of a book; %d is its ID.
	DefaultDownloadURL = "https://www.gutenberg.org/ebooks/%d.txt.utf-8"
)

// ErrUnexpectedStatus indicates the catalogue API answered with a status
// other than 200 or 429.
var ErrUnexpectedStatus = errors.New("gutenberg: unexpected status")

// Shelves whose books go into the corpus.
var wantedShelves = []string{
	"Category: Novels",
	"Category: Short Stories",
}

// Book is a catalogue entry. Only the fields the downloader needs are kept.
type Book struct {
	ID          int               `json:"id"`
	Title       string            `json:"title"`
	Bookshelves []string          `json:"bookshelves"`
	Formats     map[string]string `json:"formats"`
}

// Catalog is the crawled catalogue so far. Next is the URL of the page still
// to fetch, nil once the crawl is complete.
type Catalog struct {
	Results []Book  `json:"results"`
	Next    *string `json:"next"`
}

// Done reports whether every catalogue page has been fetched.
func (c *Catalog) Done() bool {
	return c.Next == nil
}

// LoadCatalog reads a persisted catalogue. ok is false if none exists yet.
func LoadCatalog(path string) (cat *Catalog, ok bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Catalog{}, false, nil
		}
		return nil, false, fmt.Errorf("reading catalog: %w", err)
	}

	cat = &Catalog{}
	if err := json.Unmarshal(data, cat); err != nil {
		return nil, false, fmt.Errorf("decoding catalog %s: %w", path, err)
	}
	return cat, true, nil
}

// SaveCatalog atomically replaces the persisted catalogue.
func SaveCatalog(path string, cat *Catalog) error {
	data, err := json.Marshal(cat)
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	if err := atomicfile.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("saving catalog: %w", err)
	}
	return nil
}

// Eligible reports whether b is on a wanted shelf and has a plain text format.
func Eligible(b Book) bool {
	shelved := false
	for _, shelf := range b.Bookshelves {
		for _, want := range wantedShelves {
			if shelf == want {
				shelved = true
			}
		}
	}
	if !shelved {
		return false
	}
	for format := range b.Formats {
		if strings.HasPrefix(format, "text/plain;") {
			return true
		}
	}
	return false
}

// FileName is the corpus file name of a book.
func FileName(id int) string {
	return strconv.Itoa(id) + ".txt"
}

// Client talks to the catalogue API and the book mirror.
type Client struct {
	http        *http.Client
	backoff     time.Duration
	downloadURL string
	userAgent   string
	logger      *slog.Logger
}

// New creates a Client.
func New(opts ...Option) *Client {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Client{
		http:        cfg.httpClient,
		backoff:     cfg.backoff,
		downloadURL: cfg.downloadURL,
		userAgent:   cfg.userAgent,
		logger:      cfg.logger,
	}
}

// Crawl fetches catalogue pages starting at startURL, or at the saved cursor
// when catalogPath already holds a partial crawl, and persists the catalogue
// after every page. A rate-limited page is retried after the backoff.
func (c *Client) Crawl(ctx context.Context, catalogPath, startURL string) (*Catalog, error) {
	cat, resumed, err := LoadCatalog(catalogPath)
	if err != nil {
		return nil, err
	}

	url := startURL
	if resumed {
		if cat.Done() {
			c.logger.Info("catalog complete", "books", len(cat.Results))
			return cat, nil
		}
		url = *cat.Next
		c.logger.Info("resuming crawl", "books", len(cat.Results), "next", url)
	}

	for url != "" {
		page, err := c.fetchPage(ctx, url)
		if err != nil {
			return cat, err
		}

		cat.Results = append(cat.Results, page.Results...)
		cat.Next = page.Next
		if err := SaveCatalog(catalogPath, cat); err != nil {
			return cat, err
		}

		url = ""
		if page.Next != nil {
			url = *page.Next
		}
	}

	c.logger.Info("catalog complete", "books", len(cat.Results))
	return cat, nil
}

func (c *Client) fetchPage(ctx context.Context, url string) (*Catalog, error) {
	for {
		c.logger.Info("getting page", "url", url)

		status, body, err := c.get(ctx, url)
		if err != nil {
			return nil, err
		}

		switch status {
		case http.StatusOK:
			var page Catalog
			if err := json.Unmarshal(body, &page); err != nil {
				return nil, fmt.Errorf("decoding page %s: %w", url, err)
			}
			return &page, nil
		case http.StatusTooManyRequests:
			c.logger.Warn("rate limited", "url", url, "backoff", c.backoff)
			if err := sleep(ctx, c.backoff); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, status, url)
		}
	}
}

// DownloadStats summarizes one Download call.
type DownloadStats struct {
	Downloaded int
	Present    int // already in the corpus directory
	Skipped    int // not eligible
}

// Download stores every eligible catalogue book missing from booksDir as
// <id>.txt. A failed download is retried after the backoff until it succeeds
// or ctx is done. Files are written atomically, so a partial book never
// appears in the corpus.
func (c *Client) Download(ctx context.Context, cat *Catalog, booksDir string) (DownloadStats, error) {
	var st DownloadStats
	if err := os.MkdirAll(booksDir, 0755); err != nil {
		return st, fmt.Errorf("creating books dir: %w", err)
	}

	for _, book := range cat.Results {
		path := filepath.Join(booksDir, FileName(book.ID))
		if _, err := os.Stat(path); err == nil {
			c.logger.Debug("skipping book", "title", book.Title, "id", book.ID)
			st.Present++
			continue
		}
		if !Eligible(book) {
			st.Skipped++
			continue
		}

		c.logger.Info("downloading", "title", book.Title, "id", book.ID)
		if err := c.downloadBook(ctx, book.ID, path); err != nil {
			return st, err
		}
		st.Downloaded++
	}
	return st, nil
}

func (c *Client) downloadBook(ctx context.Context, id int, path string) error {
	url := fmt.Sprintf(c.downloadURL, id)
	for {
		status, body, err := c.get(ctx, url)
		if err == nil && status == http.StatusOK {
			return atomicfile.WriteFile(path, body, 0644)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err == nil {
			err = fmt.Errorf("%w: %d", ErrUnexpectedStatus, status)
		}
		c.logger.Warn("download failed", "id", id, "err", err, "backoff", c.backoff)
		if err := sleep(ctx, c.backoff); err != nil {
			return err
		}
	}
}

func (c *Client) get(ctx context.Context, url string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("requesting %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading %s: %w", url, err)
	}
	return resp.StatusCode, body, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
