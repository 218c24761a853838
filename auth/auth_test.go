package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// tokenServer fakes the OAuth token endpoint. It accepts one authorization
// code and one refresh token and counts the grants it sees.
type tokenServer struct {
	code         string
	refreshToken string

	codeGrants    int
	refreshGrants int
}

func (s *tokenServer) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		switch r.PostForm.Get("grant_type") {
		case "authorization_code":
			s.codeGrants++
			if r.PostForm.Get("code") != s.code {
				w.WriteHeader(http.StatusBadRequest)
				fmt.Fprint(w, `{"error":"invalid_grant"}`)
				return
			}
		case "refresh_token":
			s.refreshGrants++
			if r.PostForm.Get("refresh_token") != s.refreshToken {
				w.WriteHeader(http.StatusBadRequest)
				fmt.Fprint(w, `{"error":"invalid_grant"}`)
				return
			}
		default:
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"at-1","refresh_token":"rt-rotated","token_type":"Bearer","expires_in":1200}`)
	}
}

func newClient(t *testing.T, srv *tokenServer, code, refresh string) *Client {
	t.Helper()
	ts := httptest.NewServer(srv.handler(t))
	t.Cleanup(ts.Close)
	return NewClient(Conf{
		ClientID:     "cid",
		ClientSecret: "secret",
		TokenURL:     ts.URL,
		Code:         code,
		RefreshToken: refresh,
	})
}

func TestBootstrap_CodeExchange(t *testing.T) {
	srv := &tokenServer{code: "auth-code"}
	c := newClient(t, srv, "auth-code", "")

	if err := c.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if srv.codeGrants != 1 {
		t.Fatalf("code grants = %d", srv.codeGrants)
	}

	// The rotated refresh token is kept, so the next refresh succeeds even
	// though the code is now consumed.
	srv.refreshToken = "rt-rotated"
	c.token = nil
	if err := c.Refresh(context.Background(), time.Minute); err != nil {
		t.Fatalf("Refresh after bootstrap: %v", err)
	}
	if srv.refreshGrants != 1 {
		t.Fatalf("refresh grants = %d", srv.refreshGrants)
	}
}

func TestBootstrap_ConsumedCodeFallsBackToRefresh(t *testing.T) {
	srv := &tokenServer{code: "other-code", refreshToken: "rt-seed"}
	c := newClient(t, srv, "stale-code", "rt-seed")

	if err := c.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if srv.codeGrants != 1 || srv.refreshGrants != 1 {
		t.Fatalf("grants = %d code, %d refresh", srv.codeGrants, srv.refreshGrants)
	}
}

func TestBootstrap_NothingConfigured(t *testing.T) {
	c := NewClient(Conf{ClientID: "cid", ClientSecret: "secret", TokenURL: "http://127.0.0.1:0"})
	err := c.Bootstrap(context.Background())
	if err == nil || !strings.Contains(err.Error(), "no usable authorization code or refresh token") {
		t.Fatalf("err = %v", err)
	}
}

func TestRefresh_SkipsWhileTokenValid(t *testing.T) {
	srv := &tokenServer{refreshToken: "rt-seed"}
	c := newClient(t, srv, "", "rt-seed")

	if err := c.Refresh(context.Background(), time.Minute); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	// expires_in is 1200s, so a 60s validity requirement is still met.
	if err := c.Refresh(context.Background(), time.Minute); err != nil {
		t.Fatalf("second Refresh: %v", err)
	}
	if srv.refreshGrants != 1 {
		t.Fatalf("refresh grants = %d, want 1", srv.refreshGrants)
	}
}

func TestSetAuthHeader(t *testing.T) {
	srv := &tokenServer{refreshToken: "rt-seed"}
	c := newClient(t, srv, "", "rt-seed")

	req := httptest.NewRequest(http.MethodGet, "http://provider.example/vehicles", nil)
	if err := c.SetAuthHeader(req); err != nil {
		t.Fatalf("SetAuthHeader: %v", err)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer at-1" {
		t.Fatalf("Authorization = %q", got)
	}
}
