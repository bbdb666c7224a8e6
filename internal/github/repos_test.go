package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

func pagedServer(t *testing.T, pages map[int]string, status map[int]int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orgs/acme/repos" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if got := r.URL.Query().Get("per_page"); got != "100" {
			t.Errorf("per_page = %q, want 100", got)
		}
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if code, ok := status[page]; ok {
			w.WriteHeader(code)
			return
		}
		body, ok := pages[page]
		if !ok {
			body = "[]"
		}
		fmt.Fprint(w, body)
	}))
}

func TestListOrgRepos_Pages(t *testing.T) {
	srv := pagedServer(t, map[int]string{
		1: `[{"name":"website","clone_url":"https://github.com/acme/website.git"},{"name":"api"}]`,
		2: `[{"name":"docs","archived":true}]`,
	}, nil)
	defer srv.Close()

	c := New(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	repos, err := c.ListOrgRepos(context.Background(), "acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repos) != 3 {
		t.Fatalf("got %d repos, want 3", len(repos))
	}
	if repos[0].CloneURL != "https://github.com/acme/website.git" {
		t.Errorf("CloneURL = %q", repos[0].CloneURL)
	}
	if !repos[2].Archived {
		t.Error("docs should be archived")
	}
	for _, r := range repos {
		if r.Source != SourceAPI {
			t.Errorf("%s: Source = %q, want %q", r.Name, r.Source, SourceAPI)
		}
	}
}

func TestListOrgRepos_Headers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "token s3cret" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != "orgbuild" {
			t.Errorf("User-Agent = %q", got)
		}
		fmt.Fprint(w, "[]")
	}))
	defer srv.Close()

	c := New(WithBaseURL(srv.URL+"/"), WithToken("s3cret"))
	if _, err := c.ListOrgRepos(context.Background(), "acme"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListOrgRepos_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"not found", http.StatusNotFound, ErrOrgNotFound},
		{"rate limited", http.StatusForbidden, ErrRateLimited},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := pagedServer(t, nil, map[int]int{1: tt.status})
			defer srv.Close()

			_, err := New(WithBaseURL(srv.URL)).ListOrgRepos(context.Background(), "acme")
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestListOrgRepos_ServerErrorFirstPage(t *testing.T) {
	srv := pagedServer(t, nil, map[int]int{1: http.StatusInternalServerError})
	defer srv.Close()

	if _, err := New(WithBaseURL(srv.URL)).ListOrgRepos(context.Background(), "acme"); err == nil {
		t.Error("expected error for 500 on first page")
	}
}

func TestListOrgRepos_LaterPageErrorKeepsCollected(t *testing.T) {
	srv := pagedServer(t, map[int]string{1: `[{"name":"website"}]`}, map[int]int{2: http.StatusBadGateway})
	defer srv.Close()

	repos, err := New(WithBaseURL(srv.URL)).ListOrgRepos(context.Background(), "acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repos) != 1 || repos[0].Name != "website" {
		t.Errorf("repos = %+v", repos)
	}
}

func TestListOrgRepos_BadJSON(t *testing.T) {
	srv := pagedServer(t, map[int]string{1: `{"message":"nope"`}, nil)
	defer srv.Close()

	if _, err := New(WithBaseURL(srv.URL)).ListOrgRepos(context.Background(), "acme"); err == nil {
		t.Error("expected parse error")
	}
}
