package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"retail-pos-backend/internal/domain"
)

type emailService struct {
	apiKey   string
	from     string
	fromName string
}

func NewEmailService(apiKey, from, fromName string) EmailService {
	return &emailService{
		apiKey:   apiKey,
		from:     from,
		fromName: fromName,
	}
}

func (s *emailService) send(to, toName, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.from)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendReceipt(ctx context.Context, email, name string, sale *domain.Sale) error {
	subject := fmt.Sprintf("Your receipt for %s", sale.SaleID)
	plainText := fmt.Sprintf("Thanks for your purchase, %s. Subtotal $%.2f, discount $%.2f, tax $%.2f, total $%.2f.",
		name, sale.Subtotal, sale.Discount, sale.Tax, sale.Total)
	htmlContent := fmt.Sprintf(`<p>Thanks for your purchase, %s.</p>
<p>Subtotal: $%.2f<br>Discount: $%.2f<br>Tax: $%.2f<br><strong>Total: $%.2f</strong></p>`,
		name, sale.Subtotal, sale.Discount, sale.Tax, sale.Total)
	return s.send(email, name, subject, plainText, htmlContent)
}

func (s *emailService) SendOverdueReminder(ctx context.Context, email, name string, rental *domain.Rental) error {
	subject := fmt.Sprintf("Rental %s is overdue", rental.RentalID)
	plainText := fmt.Sprintf("Hi %s, your rental %s was due on %s. A late fee of $%.0f per day applies until it is returned.",
		name, rental.RentalID, rental.DueDate.Format("2006-01-02"), LateFeePerDay)
	htmlContent := fmt.Sprintf(`<p>Hi %s,</p><p>Your rental <strong>%s</strong> was due on %s. A late fee of $%.0f per day applies until it is returned.</p>`,
		name, rental.RentalID, rental.DueDate.Format("2006-01-02"), LateFeePerDay)
	return s.send(email, name, subject, plainText, htmlContent)
}
