package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sushihentaime/blogplatform/internal/blogservice"
	"github.com/sushihentaime/blogplatform/internal/common"
	"github.com/sushihentaime/blogplatform/internal/postservice"
	"github.com/sushihentaime/blogplatform/internal/userservice"
	"golang.org/x/crypto/bcrypt"
)

const (
	testLogin    = "admin"
	testPassword = "qwerty"
)

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func testConfig() *Config {
	return &Config{
		Environment:       "testing",
		Version:           "test",
		BasicAuthLogin:    testLogin,
		BasicAuthPassword: testPassword,
		CacheTTL:          time.Minute,
	}
}

func newTestApplication(t *testing.T) (*application, *sql.DB) {
	db := common.TestDB("file://../../migrations", t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cache := common.NewCache(time.Minute, 2*time.Minute)

	app := &application{
		config: testConfig(),
		logger: logger,
	}
	app.blogService = blogservice.NewBlogService(db, cache)
	app.postService = postservice.NewPostService(db, cache, app.blogService)
	app.userService = userservice.NewUserService(db, userservice.NewBcryptHasher(bcrypt.MinCost), nil, logger)

	return app, db
}

type response struct {
	status int
	header http.Header
	body   []byte
}

// decode unmarshals the response body into v, failing the test on error.
func (res response) decode(t *testing.T, v any) {
	t.Helper()

	if err := json.Unmarshal(res.body, v); err != nil {
		t.Fatalf("could not decode %q: %v", res.body, err)
	}
}

func (ts *testServer) do(t *testing.T, method, path string, payload any, auth bool) response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		jsonPayload, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(jsonPayload)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.SetBasicAuth(testLogin, testPassword)
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	return response{status: res.StatusCode, header: res.Header, body: responseBody}
}

func (ts *testServer) get(t *testing.T, path string) response {
	return ts.do(t, http.MethodGet, path, nil, false)
}

func (ts *testServer) post(t *testing.T, path string, payload any) response {
	return ts.do(t, http.MethodPost, path, payload, true)
}

func (ts *testServer) put(t *testing.T, path string, payload any) response {
	return ts.do(t, http.MethodPut, path, payload, true)
}

func (ts *testServer) delete(t *testing.T, path string) response {
	return ts.do(t, http.MethodDelete, path, nil, true)
}

// reset empties every table through the public testing route.
func (ts *testServer) reset(t *testing.T) {
	t.Helper()

	if res := ts.delete(t, "/testing/all-data"); res.status != http.StatusNoContent {
		t.Fatalf("could not reset data: status %d", res.status)
	}
}

func (ts *testServer) createBlog(t *testing.T, name string) blogview {
	t.Helper()

	res := ts.post(t, "/blogs", map[string]any{
		"name":        name,
		"description": "about " + name,
		"websiteUrl":  "https://example.com/" + name,
	})
	if res.status != http.StatusCreated {
		t.Fatalf("could not create blog %q: status %d body %s", name, res.status, res.body)
	}

	var blog blogview
	res.decode(t, &blog)

	return blog
}

func (ts *testServer) createPost(t *testing.T, blogID, title string) postview {
	t.Helper()

	res := ts.post(t, "/posts", map[string]any{
		"title":            title,
		"shortDescription": "short " + title,
		"content":          "content of " + title,
		"blogId":           blogID,
	})
	if res.status != http.StatusCreated {
		t.Fatalf("could not create post %q: status %d body %s", title, res.status, res.body)
	}

	var post postview
	res.decode(t, &post)

	return post
}

// blogview, postview and userview mirror the response bodies with createdAt
// kept as the raw string clients receive.
type blogview struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	WebsiteURL   string `json:"websiteUrl"`
	CreatedAt    string `json:"createdAt"`
	IsMembership bool   `json:"isMembership"`
}

type postview struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	ShortDescription string `json:"shortDescription"`
	Content          string `json:"content"`
	BlogID           string `json:"blogId"`
	BlogName         string `json:"blogName"`
	CreatedAt        string `json:"createdAt"`
}

type userview struct {
	ID        string `json:"id"`
	Login     string `json:"login"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

type pageview[T any] struct {
	PagesCount int `json:"pagesCount"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
	Items      []T `json:"items"`
}

type errorsview struct {
	ErrorsMessages []common.FieldError `json:"errorsMessages"`
}
