package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/school-portal/internal/service"
)

func TestSendgridMailerPrepare(t *testing.T) {
	mailer := NewSendgridMailer("key", "noreply@school.edu.sa", "school-portal")
	body := sgmail.GetRequestBody(mailer.prepare(service.MailMessage{
		To:      "huda@school.edu.sa",
		Subject: "Approved",
		Text:    "Welcome",
	}))

	var payload struct {
		From struct {
			Email string `json:"email"`
		} `json:"from"`
		Personalizations []struct {
			To []struct {
				Email string `json:"email"`
			} `json:"to"`
			Subject string `json:"subject"`
		} `json:"personalizations"`
		Content []struct {
			Type  string `json:"type"`
			Value string `json:"value"`
		} `json:"content"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))

	assert.Equal(t, "noreply@school.edu.sa", payload.From.Email)
	require.Len(t, payload.Personalizations, 1)
	assert.Equal(t, "[school-portal] Approved", payload.Personalizations[0].Subject)
	assert.Equal(t, "huda@school.edu.sa", payload.Personalizations[0].To[0].Email)
	require.Len(t, payload.Content, 1)
	assert.Equal(t, "Welcome", payload.Content[0].Value)
}

func TestSendgridMailerSend(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	mailer := NewSendgridMailer("key", "noreply@school.edu.sa", "school-portal")
	mailer.host = server.URL

	err := mailer.Send(context.Background(), service.MailMessage{To: "huda@school.edu.sa", Subject: "Approved", Text: "Welcome"})
	require.NoError(t, err)
	assert.Equal(t, endpoint, gotPath)
	assert.Equal(t, "Bearer key", gotAuth)
	assert.Contains(t, string(gotBody), "huda@school.edu.sa")
}

func TestSendgridMailerSendReportsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	mailer := NewSendgridMailer("bad", "noreply@school.edu.sa", "school-portal")
	mailer.host = server.URL

	err := mailer.Send(context.Background(), service.MailMessage{To: "huda@school.edu.sa", Subject: "Approved"})
	assert.ErrorContains(t, err, "status 401")
}

func TestSendgridMailerSendHonorsContext(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	mailer := NewSendgridMailer("key", "noreply@school.edu.sa", "school-portal")
	mailer.host = server.URL

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := mailer.Send(ctx, service.MailMessage{To: "huda@school.edu.sa", Subject: "Approved"})
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}
