// Package notify sends the post-submission emails: one to the operator with
// the lead details, one confirmation to the prospect.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"it-configurator/internal/common/errors"
	"it-configurator/internal/common/logger"
	"it-configurator/internal/common/metrics"
	"it-configurator/internal/configurator/catalog"
	"it-configurator/internal/leads"
)

// EmailSender is the slice of the SES client the mailer needs.
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

// Mailer delivers lead notifications via SES.
type Mailer struct {
	sender   EmailSender
	from     string
	operator string
	log      logger.Logger
}

func NewMailer(sender EmailSender, from, operator string, log logger.Logger) *Mailer {
	return &Mailer{sender: sender, from: from, operator: operator, log: log}
}

// NotifyLead sends both emails. The operator mail and the confirmation fail
// independently; one reaching its recipient is better than neither.
func (m *Mailer) NotifyLead(ctx context.Context, lead *leads.Lead) error {
	var failed []string

	if err := m.send(ctx, "operator", m.operator, operatorSubject(lead), operatorBody(lead)); err != nil {
		failed = append(failed, "operator")
		m.log.WithError(err).Warn("operator notification failed", map[string]interface{}{
			"lead_id": lead.ID,
		})
	}

	if err := m.send(ctx, "confirmation", lead.Email, confirmationSubject(), confirmationBody(lead)); err != nil {
		failed = append(failed, "confirmation")
		m.log.WithError(err).Warn("confirmation email failed", map[string]interface{}{
			"lead_id": lead.ID,
		})
	}

	if len(failed) > 0 {
		return errors.NewNotificationSendFailedError(strings.Join(failed, ","), fmt.Errorf("%d of 2 emails failed", len(failed)))
	}
	return nil
}

func (m *Mailer) send(ctx context.Context, kind, to, subject, body string) error {
	_, err := m.sender.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(m.from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
	})
	if err != nil {
		metrics.NotificationsSent.WithLabelValues(kind, "failed").Inc()
		return err
	}
	metrics.NotificationsSent.WithLabelValues(kind, "sent").Inc()
	return nil
}

func operatorSubject(lead *leads.Lead) string {
	return fmt.Sprintf("New IT configurator request from %s", lead.Name)
}

func operatorBody(lead *leads.Lead) string {
	var b strings.Builder
	b.WriteString("A new request came in via the IT configurator.\n\n")
	fmt.Fprintf(&b, "Name:    %s\n", lead.Name)
	fmt.Fprintf(&b, "Email:   %s\n", lead.Email)
	if lead.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", lead.Company)
	}
	if lead.Phone != "" {
		fmt.Fprintf(&b, "Phone:   %s\n", lead.Phone)
	}
	b.WriteString("\nRequested services:\n")
	for _, svc := range lead.Services {
		fmt.Fprintf(&b, "  - %s\n", catalog.ServiceKey(svc).DisplayName())
	}
	fmt.Fprintf(&b, "\nEstimated monthly price: %s EUR\n", lead.EstimatedPrice.Round(0).String())
	return b.String()
}

func confirmationSubject() string {
	return "We received your request"
}

func confirmationBody(lead *leads.Lead) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", lead.Name)
	b.WriteString("thank you for your request. We will review your configuration and get back to you shortly.\n\n")
	if len(lead.Services) > 0 {
		b.WriteString("Your selected services:\n")
		for _, svc := range lead.Services {
			fmt.Fprintf(&b, "  - %s\n", catalog.ServiceKey(svc).DisplayName())
		}
		fmt.Fprintf(&b, "\nEstimated monthly price: %s EUR\n\n", lead.EstimatedPrice.Round(0).String())
	}
	b.WriteString("The estimate is non-binding; your final offer may differ.\n\nBest regards\nYour IT team\n")
	return b.String()
}

// NoopNotifier is used when email delivery is disabled.
type NoopNotifier struct{}

func (NoopNotifier) NotifyLead(ctx context.Context, lead *leads.Lead) error { return nil }
