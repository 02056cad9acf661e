package notification

import (
	"context"
	"errors"

	"photoblog-backend/pkg/resend"
)

// resendTransport adapts the Resend client to the Transport interface.
type resendTransport struct {
	client     *resend.Client
	from       string
	audienceID string
}

// NewResendTransport wires the Resend client as the email transport. The
// audience id is only required for broadcast mode.
func NewResendTransport(client *resend.Client, from, audienceID string) Transport {
	return &resendTransport{client: client, from: from, audienceID: audienceID}
}

func (t *resendTransport) Send(ctx context.Context, to, subject, html string) error {
	_, err := t.client.SendEmail(ctx, resend.SendEmailRequest{
		From:    t.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	return err
}

func (t *resendTransport) Broadcast(ctx context.Context, subject, html string) error {
	if t.audienceID == "" {
		return errors.New("broadcast requires an audience id")
	}
	_, err := t.client.SendBroadcast(ctx, t.audienceID, t.from, subject, html)
	return err
}
