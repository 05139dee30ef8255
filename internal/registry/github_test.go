package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// mockHTTPDoer is a test helper for mocking HTTP calls.
type mockHTTPDoer struct {
	doFunc func(*http.Request) (*http.Response, error)
	calls  int
}

func (m *mockHTTPDoer) Do(req *http.Request) (*http.Response, error) {
	m.calls++
	return m.doFunc(req)
}

func jsonResponse(t *testing.T, status int, v interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return &http.Response{
		StatusCode: status,
		Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Header:     make(http.Header),
		Body:       io.NopCloser(bytes.NewReader(body)),
	}
}

func strPtr(s string) *string { return &s }

func TestListReleases(t *testing.T) {
	releases := []Release{
		{TagName: "v1.1", Body: "second", Assets: []Asset{{ID: 2, Name: "notes.txt"}}},
		{TagName: "v1.0", Name: strPtr("First"), Body: "first", Assets: []Asset{{ID: 1, Name: "app.apk"}}},
	}

	tests := []struct {
		name       string
		statusCode int
		response   interface{}
		wantErr    error
		wantCount  int
	}{
		{
			name:       "successful fetch",
			statusCode: http.StatusOK,
			response:   releases,
			wantCount:  2,
		},
		{
			name:       "empty listing",
			statusCode: http.StatusOK,
			response:   []Release{},
			wantCount:  0,
		},
		{
			name:       "not found",
			statusCode: http.StatusNotFound,
			response:   map[string]string{"message": "Not Found"},
			wantErr:    ErrNotFound,
		},
		{
			name:       "bad credentials",
			statusCode: http.StatusUnauthorized,
			response:   map[string]string{"message": "Bad credentials"},
			wantErr:    ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockHTTPDoer{
				doFunc: func(req *http.Request) (*http.Response, error) {
					if req.Header.Get("Accept") != "application/vnd.github.v3+json" {
						t.Errorf("Accept header = %q", req.Header.Get("Accept"))
					}
					if req.Header.Get("User-Agent") != "ghapk" {
						t.Errorf("User-Agent header = %q", req.Header.Get("User-Agent"))
					}
					if req.Header.Get("Authorization") != "Bearer tok" {
						t.Errorf("Authorization header = %q", req.Header.Get("Authorization"))
					}
					if !strings.HasPrefix(req.URL.Path, "/repos/acme/app/releases") {
						t.Errorf("path = %q", req.URL.Path)
					}
					return jsonResponse(t, tt.statusCode, tt.response), nil
				},
			}

			c := NewWithDoer("https://api.example.com/", "acme", "app", "tok", mock)
			got, err := c.ListReleases(context.Background())

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ListReleases() error = %v, want %v", err, tt.wantErr)
				}
				var re *Error
				if !errors.As(err, &re) {
					t.Errorf("ListReleases() error type = %T, want *Error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ListReleases() error = %v", err)
			}
			if len(got) != tt.wantCount {
				t.Errorf("ListReleases() returned %d releases, want %d", len(got), tt.wantCount)
			}
		})
	}
}

func TestListReleases_APIMessage(t *testing.T) {
	mock := &mockHTTPDoer{
		doFunc: func(req *http.Request) (*http.Response, error) {
			return jsonResponse(t, http.StatusForbidden, map[string]string{"message": "API rate limit exceeded"}), nil
		},
	}

	_, err := NewWithDoer("https://api.example.com", "acme", "app", "tok", mock).ListReleases(context.Background())
	if err == nil {
		t.Fatal("ListReleases() expected error, got nil")
	}
	if !strings.Contains(err.Error(), "API rate limit exceeded") {
		t.Errorf("error %q should carry the API message", err.Error())
	}
	if !strings.Contains(err.Error(), "403") {
		t.Errorf("error %q should carry the status", err.Error())
	}
}

func TestListReleases_NetworkError(t *testing.T) {
	mock := &mockHTTPDoer{
		doFunc: func(req *http.Request) (*http.Response, error) {
			return nil, fmt.Errorf("network unreachable")
		},
	}

	_, err := NewWithDoer("https://api.example.com", "acme", "app", "tok", mock).ListReleases(context.Background())
	var re *Error
	if !errors.As(err, &re) {
		t.Fatalf("ListReleases() error = %v, want *Error", err)
	}
	if re.Status != "" {
		t.Errorf("transport failure should have no status, got %q", re.Status)
	}
}

func TestListReleases_InvalidJSON(t *testing.T) {
	mock := &mockHTTPDoer{
		doFunc: func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusOK,
				Header:     make(http.Header),
				Body:       io.NopCloser(strings.NewReader("{not json")),
			}, nil
		},
	}

	_, err := NewWithDoer("https://api.example.com", "acme", "app", "tok", mock).ListReleases(context.Background())
	if err == nil || !strings.Contains(err.Error(), "failed to parse releases") {
		t.Errorf("ListReleases() error = %v, want parse failure", err)
	}
}

func TestListReleases_Pagination(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("page") {
		case "":
			w.Header().Set("Link", fmt.Sprintf(`<%s/repos/acme/app/releases?per_page=100&page=2>; rel="next", <%s/repos/acme/app/releases?per_page=100&page=2>; rel="last"`, srv.URL, srv.URL))
			_ = json.NewEncoder(w).Encode([]Release{{TagName: "v3"}, {TagName: "v2"}})
		case "2":
			_ = json.NewEncoder(w).Encode([]Release{{TagName: "v1"}})
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	}))
	defer srv.Close()

	got, err := New(srv.URL, "acme", "app", "tok").ListReleases(context.Background())
	if err != nil {
		t.Fatalf("ListReleases() error = %v", err)
	}
	var tags []string
	for _, r := range got {
		tags = append(tags, r.TagName)
	}
	if strings.Join(tags, ",") != "v3,v2,v1" {
		t.Errorf("ListReleases() tags = %v, want [v3 v2 v1]", tags)
	}
}

func TestNextPage(t *testing.T) {
	tests := []struct {
		name string
		link string
		want string
	}{
		{"empty", "", ""},
		{"next and last", `<https://x/r?page=2>; rel="next", <https://x/r?page=5>; rel="last"`, "https://x/r?page=2"},
		{"last only", `<https://x/r?page=1>; rel="prev", <https://x/r?page=5>; rel="last"`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextPage(tt.link); got != tt.want {
				t.Errorf("nextPage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFetchAsset(t *testing.T) {
	payload := []byte("PK\x03\x04 fake apk bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/acme/app/releases/assets/42" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Accept") != "application/octet-stream" {
			t.Errorf("Accept header = %q", r.Header.Get("Accept"))
		}
		if r.Header.Get("X-GitHub-Api-Version") != "2022-11-28" {
			t.Errorf("X-GitHub-Api-Version = %q", r.Header.Get("X-GitHub-Api-Version"))
		}
		w.Header().Set("Content-Length", fmt.Sprint(len(payload)))
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	c := New(srv.URL, "acme", "app", "tok")

	body, size, err := c.FetchAsset(context.Background(), 42)
	if err != nil {
		t.Fatalf("FetchAsset() error = %v", err)
	}
	defer body.Close()
	got, _ := io.ReadAll(body)
	if !bytes.Equal(got, payload) {
		t.Errorf("FetchAsset() body = %q", got)
	}
	if size != int64(len(payload)) {
		t.Errorf("FetchAsset() size = %d, want %d", size, len(payload))
	}

	_, _, err = c.FetchAsset(context.Background(), 7)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("FetchAsset(missing) error = %v, want ErrNotFound", err)
	}
}

func TestReleaseToCatalog(t *testing.T) {
	r := Release{
		TagName: "v2.0.0",
		Name:    strPtr("Big one"),
		Body:    "notes",
		Assets: []Asset{
			{ID: 5, Name: "app.apk", BrowserDownloadURL: "https://example.com/app.apk"},
			{ID: 6, Name: "mapping.txt"},
		},
	}
	c := r.ToCatalog()
	if c.Tag != "v2.0.0" || c.DisplayName != "Big one" || c.Notes != "notes" {
		t.Errorf("ToCatalog() = %+v", c)
	}
	if len(c.Assets) != 2 || c.Assets[0].RemoteID != 5 || c.Assets[0].DownloadRef != "https://example.com/app.apk" {
		t.Errorf("ToCatalog() assets = %+v", c.Assets)
	}

	var untitled Release
	if err := json.Unmarshal([]byte(`{"tag_name":"v1","name":null,"body":"","assets":[]}`), &untitled); err != nil {
		t.Fatal(err)
	}
	if got := untitled.ToCatalog(); got.DisplayName != "" || got.Title() != "v1" {
		t.Errorf("null name should fall back to tag, got %+v", got)
	}
}

func TestListReleases_PageLimit(t *testing.T) {
	var logBuf bytes.Buffer
	log.SetOutput(&logBuf)
	t.Cleanup(func() { log.SetOutput(io.Discard) })

	mock := &mockHTTPDoer{doFunc: func(*http.Request) (*http.Response, error) {
		resp := jsonResponse(t, http.StatusOK, []Release{{TagName: "v0.1.0"}})
		resp.Header.Set("Link", `<https://api.example.com/repos/acme/app/releases?page=next>; rel="next"`)
		return resp, nil
	}}

	rels, err := NewWithDoer("https://api.example.com", "acme", "app", "tok", mock).ListReleases(context.Background())
	if err != nil {
		t.Fatalf("ListReleases() error = %v", err)
	}
	if mock.calls != maxPages {
		t.Errorf("requests = %d, want %d", mock.calls, maxPages)
	}
	if len(rels) != maxPages {
		t.Errorf("releases = %d, want %d", len(rels), maxPages)
	}
	if !strings.Contains(logBuf.String(), "stopped after 10 pages") {
		t.Errorf("truncation not logged: %q", logBuf.String())
	}
}
