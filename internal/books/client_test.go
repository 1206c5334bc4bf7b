package books

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	require.NoError(t, err)
	assert.Equal(t, "http", u.Scheme)
	assert.Equal(t, "localhost:3001", u.Host)

	u, err = parseBaseURL("example.com:1234")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com:1234", u.String())

	u, err = parseBaseURL("https://example.com/path?x=1#frag")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", u.String())

	_, err = parseBaseURL("http://")
	assert.Error(t, err)
}

type recordedRequest struct {
	Method    string
	Path      string
	Body      string
	RequestID string
	UserAgent string
	CType     string
}

type apiStub struct {
	mu       sync.Mutex
	requests []recordedRequest
	handler  http.HandlerFunc
}

func (s *apiStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	s.mu.Lock()
	s.requests = append(s.requests, recordedRequest{
		Method:    r.Method,
		Path:      r.URL.Path,
		Body:      string(body),
		RequestID: r.Header.Get("X-Request-ID"),
		UserAgent: r.Header.Get("User-Agent"),
		CType:     r.Header.Get("Content-Type"),
	})
	s.mu.Unlock()
	s.handler(w, r)
}

func (s *apiStub) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *apiStub) last() recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[len(s.requests)-1]
}

func newStubClient(t *testing.T, handler http.HandlerFunc) (*Client, *apiStub) {
	t.Helper()
	stub := &apiStub{handler: handler}
	server := httptest.NewServer(stub)
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, time.Second)
	require.NoError(t, err)
	return c, stub
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_List(t *testing.T) {
	t.Parallel()

	c, stub := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"books": []Book{
				{ID: 1, Title: "Dune", Genres: []string{"sci-fi"}, Rating: 4.8},
				{ID: 2, Title: "Emma"},
			},
		})
	})

	list, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Dune", list[0].Title)
	assert.Equal(t, []string{"sci-fi"}, list[0].Genres)

	req := stub.last()
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/v1/books", req.Path)
	assert.NotEmpty(t, req.RequestID)
	assert.True(t, strings.HasPrefix(req.UserAgent, "readinglist/"))
}

func TestClient_ListMalformed(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"object":  `{"books": {"id": 1}}`,
		"null":    `{"books": null}`,
		"missing": `{"items": []}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(body))
			})
			_, err := c.List(context.Background())
			assert.ErrorIs(t, err, ErrMalformedList)
		})
	}
}

func TestClient_ListPropagatesStatusErrors(t *testing.T) {
	t.Parallel()

	c, _ := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.List(context.Background())
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.Contains(t, err.Error(), "returned status 500")
	assert.NotErrorIs(t, err, ErrMalformedList)
}

func TestClient_GetCollapsesFailures(t *testing.T) {
	t.Parallel()

	c, stub := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/books/7" {
			writeJSON(w, http.StatusOK, map[string]any{"book": Book{ID: 7, Title: "Dune"}})
			return
		}
		http.NotFound(w, r)
	})

	book, err := c.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), book.ID)
	assert.Equal(t, "/v1/books/7", stub.last().Path)

	_, err = c.Get(context.Background(), 8)
	assert.ErrorIs(t, err, ErrFetchBook)
	assert.Equal(t, "failed to fetch book details", err.Error())
}

func TestClient_CreateSendsFullPayload(t *testing.T) {
	t.Parallel()

	c, stub := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{"book": Book{ID: 11, Title: "Dune"}})
	})

	created, err := c.Create(context.Background(), NewBook{
		Title:     "Dune",
		Author:    "Herbert",
		Published: 1965,
		Pages:     412,
		Genres:    []string{"sci-fi", "classic"},
		Rating:    4.8,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), created.ID)

	req := stub.last()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/v1/books", req.Path)
	assert.Equal(t, "application/json", req.CType)
	assert.JSONEq(t, `{"title":"Dune","author":"Herbert","published":1965,"pages":412,"genres":["sci-fi","classic"],"rating":4.8,"isbn":""}`, req.Body)
}

func TestClient_CreatePropagatesErrors(t *testing.T) {
	t.Parallel()

	c, _ := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad", http.StatusBadRequest)
	})

	_, err := c.Create(context.Background(), NewBook{Title: "x"})
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.Code)
}

func TestClient_UpdateSendsOneField(t *testing.T) {
	t.Parallel()

	c, stub := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"book": Book{ID: 3, Rating: 4.5}})
	})

	patch, err := NewPatch(FieldRating, 4.5)
	require.NoError(t, err)

	updated, err := c.Update(context.Background(), 3, patch)
	require.NoError(t, err)
	assert.Equal(t, 4.5, updated.Rating)

	req := stub.last()
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/v1/books/3", req.Path)
	assert.JSONEq(t, `{"rating":4.5}`, req.Body)
}

func TestClient_UpdateCollapsesFailures(t *testing.T) {
	t.Parallel()

	c, stub := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	})

	patch, err := NewPatch(FieldTitle, "Emma")
	require.NoError(t, err)
	_, err = c.Update(context.Background(), 3, patch)
	assert.ErrorIs(t, err, ErrUpdateBook)

	_, err = c.Update(context.Background(), 3, Patch{})
	assert.ErrorIs(t, err, ErrUpdateBook)
	assert.Equal(t, 1, stub.count(), "an empty patch must not reach the server")
}

func TestClient_Delete(t *testing.T) {
	t.Parallel()

	c, stub := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/books/9" {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "book successfully deleted"})
	})

	resp, err := c.Delete(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "book successfully deleted", resp.Message)
	assert.Equal(t, http.MethodDelete, stub.last().Method)

	_, err = c.Delete(context.Background(), 10)
	assert.True(t, IsNotFound(err), "err = %v, want 404 status error", err)
}

func TestClient_HonoursContextCancellation(t *testing.T) {
	t.Parallel()

	c, _ := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.List(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled), "err = %v, want context.Canceled", err)
}

func TestClient_NilReceiver(t *testing.T) {
	var c *Client
	_, err := c.List(context.Background())
	assert.Error(t, err)
	_, err = c.Get(context.Background(), 1)
	assert.ErrorIs(t, err, ErrFetchBook)
}
