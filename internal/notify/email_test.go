package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testSender(url string) *BrevoSender {
	s := NewBrevoSender("test-key", "no-reply@tripbay.app", "Tripbay")
	s.endpoint = url
	return s
}

func TestBrevoSenderDeliversPayload(t *testing.T) {
	var received brevoPayload
	var apiKey string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("api-key")
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	s := testSender(server.URL)
	if err := s.Send(context.Background(), "ama@example.com", "Booking confirmed", "<h1>Hi</h1>"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if apiKey != "test-key" {
		t.Errorf("api key header missing, got %q", apiKey)
	}
	if received.Subject != "Booking confirmed" {
		t.Errorf("subject lost in transit: %q", received.Subject)
	}
	if len(received.To) != 1 || received.To[0]["email"] != "ama@example.com" {
		t.Errorf("unexpected recipients: %v", received.To)
	}
	if received.To[0]["name"] != "ama" {
		t.Errorf("recipient name should derive from the address, got %q", received.To[0]["name"])
	}
	if received.Sender["email"] != "no-reply@tripbay.app" {
		t.Errorf("unexpected sender: %v", received.Sender)
	}
}

func TestBrevoSenderRejectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid key"}`))
	}))
	defer server.Close()

	s := testSender(server.URL)
	err := s.Send(context.Background(), "ama@example.com", "subject", "body")
	if err == nil {
		t.Fatal("expected error for non-201 response")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error should carry the status code, got %v", err)
	}
}

func TestBrevoSenderValidatesRecipient(t *testing.T) {
	s := testSender("http://unused.invalid")
	if err := s.Send(context.Background(), "not-an-address", "subject", "body"); err == nil {
		t.Error("expected error for malformed recipient")
	}

	unconfigured := &BrevoSender{}
	if err := unconfigured.Send(context.Background(), "ama@example.com", "subject", "body"); err == nil {
		t.Error("expected error when the sender is unconfigured")
	}
}
