package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCanFetchHonorsDisallow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
	}))
	defer srv.Close()

	checker := NewRobotsChecker("FactLens/0.1", 5*time.Second)
	ctx := context.Background()

	allowed, _, err := checker.CanFetch(ctx, srv.URL+"/articles/1")
	if err != nil {
		t.Fatal(err)
	}
	if !allowed {
		t.Error("public path should be allowed")
	}

	allowed, _, err = checker.CanFetch(ctx, srv.URL+"/private/doc")
	if err != nil {
		t.Fatal(err)
	}
	if allowed {
		t.Error("disallowed path should be blocked")
	}
}

func TestCanFetchAllowsWhenRobotsMissing(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	checker := NewRobotsChecker("FactLens/0.1", 5*time.Second)
	if !checker.IsAllowed(context.Background(), srv.URL+"/anything") {
		t.Error("missing robots.txt should allow fetching")
	}
}

func TestCanFetchAllowsWhenHostUnreachable(t *testing.T) {
	checker := NewRobotsChecker("FactLens/0.1", time.Second)
	allowed, _, err := checker.CanFetch(context.Background(), "http://127.0.0.1:1/page")
	if err != nil {
		t.Fatal(err)
	}
	if !allowed {
		t.Error("unreachable robots.txt should allow fetching")
	}
}

func TestProductToken(t *testing.T) {
	cases := map[string]string{
		"FactLens/0.1 (+https://github.com/mkravets/factlens)": "FactLens",
		"FactLens": "FactLens",
		"":         "",
	}
	for ua, want := range cases {
		if got := ProductToken(ua); got != want {
			t.Errorf("ProductToken(%q) = %q, want %q", ua, got, want)
		}
	}
}
