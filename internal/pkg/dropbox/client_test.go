package dropbox

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *MemoryTokenStore, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := NewMemoryTokenStore()
	client := NewClient(Config{
		ClientID:     "app-id",
		ClientSecret: "app-secret",
		BaseFolder:   "/Projects",
		Timeout:      5 * time.Second,
	}, store)
	client.apiBase = srv.URL
	client.authBase = srv.URL

	return client, store, srv
}

func decodeBody(t *testing.T, r *http.Request) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		t.Fatalf("decode request body: %v", err)
	}
	return body
}

func TestEnsureProjectFolders(t *testing.T) {
	var createdFolders []string
	var linkedPaths []string

	mux := http.NewServeMux()
	mux.HandleFunc("/2/files/create_folder_v2", func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		createdFolders = append(createdFolders, body["path"].(string))
		w.Write([]byte(`{"metadata":{}}`))
	})
	mux.HandleFunc("/2/sharing/create_shared_link_with_settings", func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		path := body["path"].(string)
		linkedPaths = append(linkedPaths, path)
		fmt.Fprintf(w, `{"url":"https://www.dropbox.com/sh%s"}`, path)
	})

	client, store, _ := newTestClient(t, mux)
	store.SaveAccessToken(context.Background(), "tok", time.Hour)

	links, err := client.EnsureProjectFolders(context.Background(), "123 Main Street", "Jordan Blake")
	if err != nil {
		t.Fatalf("provisioning failed: %v", err)
	}

	wantFolders := []string{
		"/Projects/123 Main Street - Jordan Blake",
		"/Projects/123 Main Street - Jordan Blake/Raw Photos",
		"/Projects/123 Main Street - Jordan Blake/Edited Media",
		"/Projects/123 Main Street - Jordan Blake/Final Media",
	}
	if len(createdFolders) != len(wantFolders) {
		t.Fatalf("created %v", createdFolders)
	}
	for i, want := range wantFolders {
		if createdFolders[i] != want {
			t.Errorf("folder[%d] = %q, want %q", i, createdFolders[i], want)
		}
	}

	if links.RawPhotos != "https://www.dropbox.com/sh/Projects/123 Main Street - Jordan Blake/Raw Photos" {
		t.Errorf("raw link = %q", links.RawPhotos)
	}
	if links.EditedMedia == "" || links.FinalMedia == "" {
		t.Errorf("links = %+v", links)
	}
	if len(linkedPaths) != 3 {
		t.Errorf("shared links for %v", linkedPaths)
	}
}

func TestEnsureProjectFoldersTreatsConflictAsSuccess(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/2/files/create_folder_v2", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error_summary":"path/conflict/folder/"}`))
	})
	mux.HandleFunc("/2/sharing/create_shared_link_with_settings", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"url":"https://www.dropbox.com/sh/existing"}`))
	})

	client, store, _ := newTestClient(t, mux)
	store.SaveAccessToken(context.Background(), "tok", time.Hour)

	if _, err := client.EnsureProjectFolders(context.Background(), "123 Main Street", "Jordan Blake"); err != nil {
		t.Fatalf("existing folders should not fail provisioning: %v", err)
	}
}

func TestSharedLinkConflictFallsBackToExisting(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/2/files/create_folder_v2", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"metadata":{}}`))
	})
	mux.HandleFunc("/2/sharing/create_shared_link_with_settings", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error_summary":"shared_link_already_exists/"}`))
	})
	mux.HandleFunc("/2/sharing/list_shared_links", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"links":[{"url":"https://www.dropbox.com/sh/reused"}]}`))
	})

	client, store, _ := newTestClient(t, mux)
	store.SaveAccessToken(context.Background(), "tok", time.Hour)

	links, err := client.EnsureProjectFolders(context.Background(), "123 Main Street", "Jordan Blake")
	if err != nil {
		t.Fatalf("provisioning failed: %v", err)
	}
	if links.RawPhotos != "https://www.dropbox.com/sh/reused" {
		t.Errorf("raw link = %q, want reused link", links.RawPhotos)
	}
}

func TestExpiredTokenIsRefreshedAndRetried(t *testing.T) {
	var refreshed bool

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.Form.Get("grant_type") != "refresh_token" {
			t.Errorf("grant_type = %q", r.Form.Get("grant_type"))
		}
		if r.Form.Get("refresh_token") != "refresh-1" {
			t.Errorf("refresh_token = %q", r.Form.Get("refresh_token"))
		}
		refreshed = true
		w.Write([]byte(`{"access_token":"fresh-token","expires_in":14400}`))
	})
	mux.HandleFunc("/2/files/create_folder_v2", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fresh-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"metadata":{}}`))
	})
	mux.HandleFunc("/2/sharing/create_shared_link_with_settings", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"url":"https://www.dropbox.com/sh/x"}`))
	})

	client, store, _ := newTestClient(t, mux)
	store.SaveAccessToken(context.Background(), "stale-token", time.Hour)
	store.SaveRefreshToken(context.Background(), "refresh-1")

	if _, err := client.EnsureProjectFolders(context.Background(), "123 Main Street", "Jordan Blake"); err != nil {
		t.Fatalf("provisioning failed: %v", err)
	}
	if !refreshed {
		t.Error("expected a token refresh")
	}

	tok, err := store.AccessToken(context.Background())
	if err != nil || tok != "fresh-token" {
		t.Errorf("stored token = %q, %v", tok, err)
	}
}

func TestExchangeCodeStoresTokens(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.Form.Get("grant_type") != "authorization_code" {
			t.Errorf("grant_type = %q", r.Form.Get("grant_type"))
		}
		if r.Form.Get("code") != "auth-code" {
			t.Errorf("code = %q", r.Form.Get("code"))
		}
		w.Write([]byte(`{"access_token":"at","refresh_token":"rt","expires_in":14400}`))
	})

	client, store, _ := newTestClient(t, mux)

	if err := client.ExchangeCode(context.Background(), "auth-code"); err != nil {
		t.Fatalf("exchange failed: %v", err)
	}

	at, _ := store.AccessToken(context.Background())
	rt, _ := store.RefreshToken(context.Background())
	if at != "at" || rt != "rt" {
		t.Errorf("stored tokens = %q / %q", at, rt)
	}
}

func TestAuthorizeURLRequestsOfflineAccess(t *testing.T) {
	client := NewClient(Config{
		ClientID:    "app-id",
		RedirectURI: "https://admin.example.com/api/v1/dropbox/callback",
	}, NewMemoryTokenStore())

	u := client.AuthorizeURL()
	for _, want := range []string{
		"client_id=app-id",
		"token_access_type=offline",
		"response_type=code",
	} {
		if !strings.Contains(u, want) {
			t.Errorf("authorize URL missing %q: %s", want, u)
		}
	}
}
