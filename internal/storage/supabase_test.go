package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSupabaseUploadReturnsPublicURL(t *testing.T) {
	var gotPath, gotAuth, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewSupabaseClient(srv.URL, "service-key", "event-images", 5*time.Second)
	url, err := c.Upload(context.Background(), "abc123.png", "image/png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("upload returned error: %v", err)
	}

	if gotPath != "/storage/v1/object/event-images/abc123.png" {
		t.Fatalf("unexpected upload path %q", gotPath)
	}
	if gotAuth != "Bearer service-key" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotBody != "png-bytes" {
		t.Fatalf("body not forwarded, got %q", gotBody)
	}
	want := srv.URL + "/storage/v1/object/public/event-images/abc123.png"
	if url != want {
		t.Fatalf("public url mismatch: got %q want %q", url, want)
	}
}

func TestSupabaseUploadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bucket not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewSupabaseClient(srv.URL, "service-key", "missing", 5*time.Second)
	if _, err := c.Upload(context.Background(), "k", "image/png", strings.NewReader("x")); err == nil {
		t.Fatalf("expected error for non-2xx upload response")
	}
}
