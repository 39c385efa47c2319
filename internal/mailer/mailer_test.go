package mailer

import (
	"bytes"
	"context"
	"testing"

	"todo_service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func TestCompose_Welcome(t *testing.T) {
	m := &Mailer{Username: "smtp-user@x.com", From: "todo@x.com"}

	mail := m.Compose(models.Message{Email: "a@x.com", Name: "Ann", Purpose: models.PurposeWelcome})

	assert.Equal(t, []string{"todo@x.com"}, mail.GetHeader("From"))
	assert.Equal(t, []string{"a@x.com"}, mail.GetHeader("To"))
	assert.Equal(t, []string{"Welcome to ToDoList"}, mail.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := mail.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Hi Ann,")
}

func TestCompose_FromFallsBackToUsername(t *testing.T) {
	m := &Mailer{Username: "smtp-user@x.com"}

	mail := m.Compose(models.Message{Email: "a@x.com", Name: "Ann", Purpose: "other"})

	assert.Equal(t, []string{"smtp-user@x.com"}, mail.GetHeader("From"))
	assert.Equal(t, []string{"ToDoList account notice"}, mail.GetHeader("Subject"))
}

func TestSend_Unreachable(t *testing.T) {
	m := &Mailer{Host: "127.0.0.1", Port: 1, From: "todo@x.com"}

	err := m.Send(models.Message{Email: "a@x.com", Name: "Ann", Purpose: models.PurposeWelcome})
	assert.Error(t, err)
}

func TestDeliver(t *testing.T) {
	var sent []*gomail.Message
	m := &Mailer{From: "todo@x.com", send: func(msgs ...*gomail.Message) error {
		sent = append(sent, msgs...)
		return nil
	}}

	err := m.Deliver(context.Background(), []byte(`{"to":"a@x.com","name":"Ann","purpose":"welcome"}`))
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"a@x.com"}, sent[0].GetHeader("To"))
}

func TestDeliver_BadPayload(t *testing.T) {
	m := &Mailer{send: func(...*gomail.Message) error {
		t.Fatal("nothing should be sent")
		return nil
	}}

	assert.Error(t, m.Deliver(context.Background(), []byte(`{`)))
	assert.ErrorIs(t, m.Deliver(context.Background(), []byte(`{"name":"Ann"}`)), ErrNoRecipient)
}
