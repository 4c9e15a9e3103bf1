package events

import (
	"context"
	"fmt"

	"collectrent/internal/domain"
	"collectrent/internal/logger"

	"github.com/google/uuid"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// AccountDirectory resolves an account id to its stored profile so the
// notifier can look up the lessee's email address.
type AccountDirectory interface {
	Account(ctx context.Context, id uuid.UUID) (*domain.Account, error)
}

// EmailNotifier mails the lessee when a rental ends. Only terminal
// rental events produce mail; everything else passes through silently.
type EmailNotifier struct {
	apiKey    string
	fromEmail string
	fromName  string
	accounts  AccountDirectory
}

func NewEmailNotifier(apiKey, fromEmail, fromName string, accounts AccountDirectory) *EmailNotifier {
	return &EmailNotifier{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		accounts:  accounts,
	}
}

func (n *EmailNotifier) Emit(ctx context.Context, event domain.Event) error {
	var subject, body string
	switch event.Type {
	case domain.EventRentalExpired:
		subject = fmt.Sprintf("Your rental of %s has ended", event.AssetID)
		body = fmt.Sprintf("The rental term for asset %s finished at tick %d. The asset is available to rent again.", event.AssetID, event.Tick)
	case domain.EventRentalDefaulted:
		subject = fmt.Sprintf("Rent payment failed for %s", event.AssetID)
		body = fmt.Sprintf("The rent payment of %d for asset %s could not be collected at tick %d, so the rental was terminated.", event.Amount, event.AssetID, event.Tick)
	default:
		return nil
	}

	account, err := n.accounts.Account(ctx, event.Lessee)
	if err != nil {
		return fmt.Errorf("resolve lessee %s: %w", event.Lessee, err)
	}
	if account.Email == "" {
		logger.WarnContext(ctx, "lessee has no email, skipping notification",
			"lessee", event.Lessee.String(),
			"asset_id", event.AssetID.String())
		return nil
	}

	return n.send(account.Email, subject, body)
}

func (n *EmailNotifier) send(to, subject, body string) error {
	from := mail.NewEmail(n.fromName, n.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(n.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
