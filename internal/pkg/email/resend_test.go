package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResendClientSend(t *testing.T) {
	var got resendRequest
	var authHeader string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":"msg_1"}`))
	}))
	defer srv.Close()

	client := NewResendClient(ResendConfig{
		APIKey:    "re_test",
		FromEmail: "noreply@rephotosteam.com",
		FromName:  "RePhotos",
		ReplyTo:   "cooper@rephotos.ca",
	})
	client.endpoint = srv.URL

	err := client.Send(context.Background(), &Message{
		To:          []string{"jordan@example.com", "cooper@rephotos.ca"},
		Subject:     "📸 Booking Confirmation – RePhotos",
		TextContent: "Dear Jordan,",
	})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}

	if authHeader != "Bearer re_test" {
		t.Errorf("auth header = %q", authHeader)
	}
	if got.From != "RePhotos <noreply@rephotosteam.com>" {
		t.Errorf("from = %q", got.From)
	}
	if got.ReplyTo != "cooper@rephotos.ca" {
		t.Errorf("reply_to = %q", got.ReplyTo)
	}
	if len(got.To) != 2 {
		t.Errorf("to = %v", got.To)
	}
	if got.Text == "" || got.HTML != "" {
		t.Errorf("content: text=%q html=%q", got.Text, got.HTML)
	}
}

func TestResendClientSendErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid to address"}`))
	}))
	defer srv.Close()

	client := NewResendClient(ResendConfig{APIKey: "re_test", FromEmail: "noreply@rephotosteam.com"})
	client.endpoint = srv.URL

	err := client.Send(context.Background(), &Message{
		To:      []string{"not-an-email"},
		Subject: "x",
	})
	if err == nil {
		t.Fatal("expected error for 4xx response")
	}
}
