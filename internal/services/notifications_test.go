package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/harentsoaR/health-record-api/internal/config"
	"github.com/harentsoaR/health-record-api/internal/models"
)

func TestNewNotificationServiceDisabledWithoutKey(t *testing.T) {
	if svc := NewNotificationService(config.TextbeltConfig{URL: "http://example"}); svc != nil {
		t.Fatal("expected nil service without api key")
	}
}

func TestSend(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	svc := NewNotificationService(config.TextbeltConfig{APIKey: "k", URL: srv.URL})
	if err := svc.send(context.Background(), "+15550100", "hello"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if got["phone"] != "+15550100" || got["message"] != "hello" || got["key"] != "k" {
		t.Errorf("unexpected payload %v", got)
	}
}

func TestSendRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":"Out of quota"}`))
	}))
	defer srv.Close()

	svc := NewNotificationService(config.TextbeltConfig{APIKey: "k", URL: srv.URL})
	err := svc.send(context.Background(), "+15550100", "hello")
	if err == nil || !strings.Contains(err.Error(), "Out of quota") {
		t.Fatalf("expected quota error, got %v", err)
	}
}

func TestAppointmentMessage(t *testing.T) {
	msg := appointmentMessage(
		&models.User{FullName: "Ada"},
		&models.Appointment{Doctor: "Dr. Grey", Type: "Checkup", Date: "2026-11-02", Status: "Upcoming"},
	)
	want := "Hi Ada, your Checkup appointment with Dr. Grey on 2026-11-02 has been added (Upcoming)."
	if msg != want {
		t.Errorf("got %q, want %q", msg, want)
	}
}
