package service

import (
	"context"
	"fmt"
	"strings"

	"bikeshop-backend/internal/domain"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey   string
	from     string
	fromName string
}

func NewEmailService(apiKey, from, fromName string) EmailService {
	return &emailService{apiKey: apiKey, from: from, fromName: fromName}
}

// SendLowStockReport mails the list of parts running low to every recipient.
func (s *emailService) SendLowStockReport(ctx context.Context, to []string, parts []domain.Part) error {
	if len(to) == 0 || len(parts) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("The following parts are running low on stock:\n\n")
	for _, p := range parts {
		fmt.Fprintf(&b, "  %s: %d remaining\n", p.Name, p.StockQuantity)
	}
	b.WriteString("\nRestock soon to avoid rejected sales.\n")
	body := b.String()

	from := mail.NewEmail(s.fromName, s.from)
	client := sendgrid.NewSendClient(s.apiKey)

	for _, recipient := range to {
		message := mail.NewSingleEmail(from, "Low stock report", mail.NewEmail("", recipient), body, "")
		response, err := client.SendWithContext(ctx, message)
		if err != nil {
			return fmt.Errorf("send low stock report to %s: %w", recipient, err)
		}
		if response.StatusCode >= 400 {
			return fmt.Errorf("send low stock report to %s: sendgrid status %d", recipient, response.StatusCode)
		}
	}
	return nil
}
