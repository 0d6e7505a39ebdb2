package profile

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domain "peerlend-backend/internal/domain/profile"
)

func TestGet_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/profiles/") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user_id":"` + strings.Repeat("a", 32) + `","full_name":"Jane Doe","handle":"janedoe"}`))
	}))
	defer srv.Close()

	d := NewHTTPDirectory(srv.URL)
	p, err := d.Get(context.Background(), strings.Repeat("a", 32))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.FullName != "Jane Doe" || p.Handle != "janedoe" {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestGet_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	d := NewHTTPDirectory(srv.URL)
	_, err := d.Get(context.Background(), strings.Repeat("b", 32))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGet_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := NewHTTPDirectory(srv.URL)
	if _, err := d.Get(context.Background(), strings.Repeat("c", 32)); err == nil {
		t.Fatalf("expected error on 500")
	}
}

func TestGet_NotConfigured(t *testing.T) {
	d := NewHTTPDirectory("")
	if _, err := d.Get(context.Background(), "x"); err == nil {
		t.Fatalf("expected error when not configured")
	}
}
