package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"todo_service/internal/models"

	"gopkg.in/gomail.v2"
)

type Mailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string

	send func(...*gomail.Message) error
}

var ErrNoRecipient = errors.New("message has no recipient")

// Deliver decodes a queued account event and mails it. It matches
// rabbitmq.Handler.
func (m *Mailer) Deliver(_ context.Context, body []byte) error {
	const op = "mailer.Deliver"

	var msg models.Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if msg.Email == "" {
		return fmt.Errorf("%s: %w", op, ErrNoRecipient)
	}

	return m.Send(msg)
}

func (m *Mailer) Send(msg models.Message) error {
	const op = "mailer.Send"

	send := m.send
	if send == nil {
		send = gomail.NewDialer(m.Host, m.Port, m.Username, m.Password).DialAndSend
	}

	if err := send(m.Compose(msg)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Compose renders the mail for an account event.
func (m *Mailer) Compose(msg models.Message) *gomail.Message {
	from := m.From
	if from == "" {
		from = m.Username
	}

	mail := gomail.NewMessage()
	mail.SetHeader("From", from)
	mail.SetHeader("To", msg.Email)

	switch msg.Purpose {
	case models.PurposeWelcome:
		mail.SetHeader("Subject", "Welcome to ToDoList")
		mail.SetBody("text/plain", fmt.Sprintf(
			"Hi %s,\n\nyour ToDoList account is ready. Sign in with %s to start adding tasks.\n",
			msg.Name, msg.Email,
		))
	default:
		mail.SetHeader("Subject", "ToDoList account notice")
		mail.SetBody("text/plain", fmt.Sprintf("Hi %s,\n\nthere is news about your ToDoList account.\n", msg.Name))
	}

	return mail
}
