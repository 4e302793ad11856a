package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jmylchreest/swatch/internal/security"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			if !strings.HasPrefix(r.Header.Get("User-Agent"), "swatch/") {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			_, _ = w.Write([]byte(r.Header.Get("X-Test")))
		case "/big":
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	ctx := context.Background()

	data, err := Fetch(ctx, srv.URL+"/ok", FetchOptions{Headers: map[string]string{"X-Test": "hello"}})
	if err != nil {
		t.Fatalf("Fetch(/ok) error = %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("Fetch(/ok) = %q, want hello", data)
	}

	if _, err := Fetch(ctx, srv.URL+"/missing", FetchOptions{}); err == nil {
		t.Error("Fetch(/missing) expected error")
	}

	data, err = Fetch(ctx, srv.URL+"/big", FetchOptions{MaxBytes: 64})
	if err != nil || len(data) != 64 {
		t.Errorf("Fetch(/big) at the limit = %d bytes, %v", len(data), err)
	}

	_, err = Fetch(ctx, srv.URL+"/big", FetchOptions{MaxBytes: 16})
	if !errors.Is(err, security.ErrSizeLimit) {
		t.Errorf("Fetch(/big) error = %v, want ErrSizeLimit", err)
	}
}
