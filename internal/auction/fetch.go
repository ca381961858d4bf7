// Copyright (c) 2026 hkopenai and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package auction

// In this file: retrieval and parsing of a single auction list.

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/time/rate"

	"github.com/hkopenai/hkmisc/internal/network"
)

//go:generate mockgen -destination=mock_auction/mock_auction.go . Fetcher

// Fetcher retrieves the rows of one auction list.  A list that does not
// exist yields no rows and no error.
type Fetcher interface {
	Fetch(ctx context.Context, id Identifier) ([]Row, error)
}

// DefBaseURL is the location of the published auction lists.
const DefBaseURL = "https://www.gld.gov.hk/datagovhk/supplies-mgmt"

// maxPayload caps the size of a single list.  Real lists are well under 1 MiB.
var maxPayload int64 = 32 << 20

// StatusError is returned for HTTP statuses other than 2xx and 404.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.Code, http.StatusText(e.Code))
}

// HTTPFetcher fetches auction lists over HTTP.  It is safe for concurrent use.
type HTTPFetcher struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
	lg      *slog.Logger
}

// FetcherOption configures the HTTPFetcher.
type FetcherOption func(*HTTPFetcher)

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(cl *http.Client) FetcherOption {
	return func(f *HTTPFetcher) {
		if cl != nil {
			f.client = cl
		}
	}
}

// WithBaseURL sets the URL of the directory holding the lists.
func WithBaseURL(u string) FetcherOption {
	return func(f *HTTPFetcher) {
		if u != "" {
			f.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithLimiter throttles the requests.
func WithLimiter(l *rate.Limiter) FetcherOption {
	return func(f *HTTPFetcher) {
		f.limiter = l
	}
}

// WithFetcherLogger sets the logger.
func WithFetcherLogger(lg *slog.Logger) FetcherOption {
	return func(f *HTTPFetcher) {
		if lg != nil {
			f.lg = lg
		}
	}
}

// NewHTTPFetcher returns a fetcher for the publisher's site.
func NewHTTPFetcher(opts ...FetcherOption) *HTTPFetcher {
	f := &HTTPFetcher{
		client:  http.DefaultClient,
		baseURL: DefBaseURL,
		lg:      slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// URL returns the address of the list.  Numbers are not zero-padded.
func (f *HTTPFetcher) URL(id Identifier) string {
	return fmt.Sprintf("%s/auctionList_%d-%d_%s.csv", f.baseURL, id.ListNo, id.Year, id.Lang)
}

// Fetch downloads and parses the list.  A 404 response yields no rows.  Any
// other failure, timeouts included, is returned wrapped in ErrFetch.
func (f *HTTPFetcher) Fetch(ctx context.Context, id Identifier) ([]Row, error) {
	u := f.URL(id)
	var rows []Row
	err := network.Do(ctx, f.limiter, func() error {
		var err error
		rows, err = f.get(ctx, u)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, u, err)
	}
	return rows, nil
}

func (f *HTTPFetcher) get(ctx context.Context, u string) ([]Row, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		f.lg.DebugContext(ctx, "auction list not found", "url", u)
		return nil, nil
	}
	if resp.StatusCode < 200 || 299 < resp.StatusCode {
		return nil, &StatusError{Code: resp.StatusCode, URL: u}
	}

	cr := &countingReader{r: io.LimitReader(resp.Body, maxPayload+1)}
	rows, err := ReadCSV(cr)
	if err != nil {
		return nil, err
	}
	if cr.n > maxPayload {
		return nil, fmt.Errorf("payload exceeds %s", humanize.IBytes(uint64(maxPayload)))
	}
	f.lg.DebugContext(ctx, "auction list fetched", "url", u, "status", resp.StatusCode, "size", humanize.Bytes(uint64(cr.n)), "rows", len(rows))
	return rows, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// ReadCSV parses a UTF-8 auction list with an optional byte order mark.  The
// first record is the header.  Cells missing at the end of a short row are
// reported as absent, cells beyond the header are ignored.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("csv: %w", err)
		}
		var row Row
		for i, col := range header {
			if i >= len(rec) {
				break
			}
			row.set(col, rec[i])
		}
		rows = append(rows, row)
	}
	return rows, nil
}
