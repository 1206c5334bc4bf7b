package books

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service is the set of calls the UI makes against the books API.
// It is implemented by *Client and faked in tests.
type Service interface {
	List(ctx context.Context) ([]Book, error)
	Get(ctx context.Context, id int64) (Book, error)
	Create(ctx context.Context, book NewBook) (Book, error)
	Update(ctx context.Context, id int64, patch Patch) (Book, error)
	Delete(ctx context.Context, id int64) (DeleteResponse, error)
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// Client talks to the books REST API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	// DefaultAPIURL is the origin the UI talks to when nothing is configured.
	DefaultAPIURL = "http://localhost:3001"

	booksPath        = "/v1/books"
	defaultUserAgent = "readinglist/0.1"
	defaultTimeout   = 5 * time.Second
	requestIDHeader  = "X-Request-ID"
)

// NewClient builds a Client for the given API origin. A zero timeout uses the
// default of five seconds.
func NewClient(apiURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the API origin the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// List fetches the whole collection. ErrMalformedList is returned when the
// payload decodes but its books member is not an array.
func (c *Client) List(ctx context.Context) ([]Book, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload listEnvelope
	if err := c.do(ctx, http.MethodGet, booksPath, nil, &payload); err != nil {
		return nil, err
	}
	raw := bytes.TrimSpace(payload.Books)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, fmt.Errorf("%w: got %s", ErrMalformedList, truncateRaw(raw))
	}
	var list []Book
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}
	return list, nil
}

// Get fetches one book. Every failure collapses into ErrFetchBook.
func (c *Client) Get(ctx context.Context, id int64) (Book, error) {
	if c == nil {
		return Book{}, ErrFetchBook
	}
	var payload bookEnvelope
	if err := c.do(ctx, http.MethodGet, bookPath(id), nil, &payload); err != nil {
		log.Printf("fetch book %d: %v", id, err)
		return Book{}, ErrFetchBook
	}
	return payload.Book, nil
}

// Create posts a new book and returns the server's representation.
func (c *Client) Create(ctx context.Context, book NewBook) (Book, error) {
	if c == nil {
		return Book{}, fmt.Errorf("client is nil")
	}
	if book.Genres == nil {
		book.Genres = []string{}
	}
	var payload bookEnvelope
	if err := c.do(ctx, http.MethodPost, booksPath, book, &payload); err != nil {
		return Book{}, err
	}
	return payload.Book, nil
}

// Update sends a one-field partial update. Every failure collapses into
// ErrUpdateBook.
func (c *Client) Update(ctx context.Context, id int64, patch Patch) (Book, error) {
	if c == nil {
		return Book{}, ErrUpdateBook
	}
	if patch.IsZero() {
		log.Printf("update book %d: empty patch", id)
		return Book{}, ErrUpdateBook
	}
	var payload bookEnvelope
	if err := c.do(ctx, http.MethodPut, bookPath(id), patch, &payload); err != nil {
		log.Printf("update book %d %s: %v", id, patch.Field(), err)
		return Book{}, ErrUpdateBook
	}
	return payload.Book, nil
}

// Delete removes a book by id.
func (c *Client) Delete(ctx context.Context, id int64) (DeleteResponse, error) {
	if c == nil {
		return DeleteResponse{}, fmt.Errorf("client is nil")
	}
	var payload DeleteResponse
	if err := c.do(ctx, http.MethodDelete, bookPath(id), nil, &payload); err != nil {
		return DeleteResponse{}, err
	}
	return payload, nil
}

func bookPath(id int64) string {
	return booksPath + "/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("%s %s [%s] failed: %v", method, path, requestID, err)
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		log.Printf("%s %s [%s] returned status %d", method, path, requestID, resp.StatusCode)
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = DefaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", apiURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", apiURL)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

func truncateRaw(raw []byte) string {
	if len(raw) == 0 {
		return "nothing"
	}
	const limit = 40
	if len(raw) > limit {
		return string(raw[:limit]) + "..."
	}
	return string(raw)
}
