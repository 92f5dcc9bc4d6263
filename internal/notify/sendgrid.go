package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/spec-kit/school-portal/internal/service"
)

const (
	defaultHost        = "https://api.sendgrid.com"
	endpoint           = "/v3/mail/send"
	defaultSendTimeout = 10 * time.Second
)

// SendgridMailer delivers notification e-mails through the SendGrid v3 API.
type SendgridMailer struct {
	key        string
	from       *sgmail.Email
	subjPrefix string
	host       string
	client     *rest.Client
}

var _ service.Mailer = (*SendgridMailer)(nil)

// NewSendgridMailer builds a mailer sending from the given address.
func NewSendgridMailer(apiKey, fromAddress, appName string) *SendgridMailer {
	return &SendgridMailer{
		key:        apiKey,
		from:       sgmail.NewEmail(appName, fromAddress),
		subjPrefix: "[" + appName + "] ",
		host:       defaultHost,
		client:     &rest.Client{HTTPClient: &http.Client{Timeout: defaultSendTimeout}},
	}
}

func (m *SendgridMailer) prepare(msg service.MailMessage) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = m.subjPrefix + msg.Subject
	p.AddTos(sgmail.NewEmail("", msg.To))

	v3 := sgmail.NewV3Mail()
	v3.SetFrom(m.from)
	v3.AddPersonalizations(p)
	v3.AddContent(sgmail.NewContent("text/plain", msg.Text))
	return v3
}

// Send posts msg to SendGrid. The call is bounded by ctx and the client timeout.
// Responses with a 4xx or 5xx status are errors.
func (m *SendgridMailer) Send(ctx context.Context, msg service.MailMessage) error {
	req := sendgrid.GetRequest(m.key, endpoint, m.host)
	req.Method = rest.Post
	req.Body = sgmail.GetRequestBody(m.prepare(msg))

	res, err := m.client.SendWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sending email: status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}
