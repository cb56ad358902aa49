package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "railskit-test" {
			t.Errorf("missing user agent, got %q", r.Header.Get("User-Agent"))
		}
		switch r.URL.Path {
		case "/css/style.css":
			w.Write([]byte("body { margin: 0; }\n"))
		default:
			http.Error(w, "gone", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	f := NewHTTP(5*time.Second, "railskit-test")

	body, err := f.Fetch(context.Background(), srv.URL+"/css/style.css")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if string(body) != "body { margin: 0; }\n" {
		t.Fatalf("body = %q", body)
	}

	_, err = f.Fetch(context.Background(), srv.URL+"/missing.js")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Status != http.StatusNotFound {
		t.Fatalf("status = %d", statusErr.Status)
	}
}

func TestHTTPFetchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	if _, err := NewHTTP(time.Second, "").Fetch(context.Background(), url+"/x"); err == nil {
		t.Fatalf("expected error from closed server")
	}
}

func TestProbe(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	if err := NewHTTP(time.Second, "").Probe(context.Background(), srv.URL); err != nil {
		t.Fatalf("Probe returned error for a 404 server: %v", err)
	}
}
