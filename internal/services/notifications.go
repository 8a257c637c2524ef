package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/harentsoaR/health-record-api/internal/config"
	"github.com/harentsoaR/health-record-api/internal/models"
)

const smsTimeout = 10 * time.Second

// NotificationService sends SMS messages through the Textbelt API.
type NotificationService struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewNotificationService returns nil when no Textbelt key is configured,
// which disables notifications.
func NewNotificationService(cfg config.TextbeltConfig) *NotificationService {
	if cfg.APIKey == "" {
		return nil
	}
	return &NotificationService{
		apiKey:   cfg.APIKey,
		endpoint: cfg.URL,
		client:   &http.Client{Timeout: smsTimeout},
	}
}

// SendAppointmentConfirmationSMS texts the user about a newly added appointment.
func (s *NotificationService) SendAppointmentConfirmationSMS(user *models.User, apt *models.Appointment) {
	if user.Phone == "" {
		log.Println("SMS not sent: user has no phone number.")
		return
	}

	// Send in a goroutine so it doesn't block the API response
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), smsTimeout)
		defer cancel()
		if err := s.send(ctx, user.Phone, appointmentMessage(user, apt)); err != nil {
			log.Printf("Failed to send SMS to %s: %v", user.Phone, err)
			return
		}
		log.Printf("Successfully sent SMS to %s", user.Phone)
	}()
}

func appointmentMessage(user *models.User, apt *models.Appointment) string {
	msg := fmt.Sprintf("Hi %s, your %s appointment with %s", user.FullName, apt.Type, apt.Doctor)
	if apt.Date != "" {
		msg += " on " + apt.Date
	}
	return msg + " has been added (" + apt.Status + ")."
}

type textbeltResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (s *NotificationService) send(ctx context.Context, phone, message string) error {
	postBody, err := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
		"key":     s.apiKey,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(postBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("textbelt request: %w", err)
	}
	defer resp.Body.Close()

	var result textbeltResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode textbelt response (status %d): %w", resp.StatusCode, err)
	}
	if !result.Success {
		return fmt.Errorf("textbelt rejected message: %s", result.Error)
	}
	return nil
}
