package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSendGridSenderPostsExpectedPayload(t *testing.T) {
	var got sgPayload
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	s := NewSendGridSender("sg-key", "no-reply@example.edu", 5*time.Second)
	s.endpoint = srv.URL

	if err := s.SendVerification(context.Background(), "student@example.edu", "123456"); err != nil {
		t.Fatalf("send returned error: %v", err)
	}

	if auth != "Bearer sg-key" {
		t.Fatalf("unexpected authorization header %q", auth)
	}
	if len(got.Personalizations) != 1 || len(got.Personalizations[0].To) != 1 ||
		got.Personalizations[0].To[0].Email != "student@example.edu" {
		t.Fatalf("unexpected recipients: %+v", got.Personalizations)
	}
	if got.From.Email != "no-reply@example.edu" {
		t.Fatalf("unexpected from: %q", got.From.Email)
	}
	if len(got.Content) != 1 || !strings.Contains(got.Content[0].Value, "123456") {
		t.Fatalf("verification code missing from body: %+v", got.Content)
	}
}

func TestSendGridSenderReportsAPIFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden sender", http.StatusForbidden)
	}))
	defer srv.Close()

	s := NewSendGridSender("sg-key", "no-reply@example.edu", 5*time.Second)
	s.endpoint = srv.URL

	err := s.SendResetCode(context.Background(), "student@example.edu", "654321")
	if err == nil {
		t.Fatalf("expected error for non-2xx response")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Fatalf("error should carry the status code, got %v", err)
	}
}
