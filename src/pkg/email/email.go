// Package email sends split summaries and test messages through one of
// three providers: mailgun, sendgrid or amazon ses.
package email

import (
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

type Provider string

const (
	ProviderMailgun  Provider = "mailgun"
	ProviderSendgrid Provider = "sendgrid"
	ProviderSES      Provider = "ses"
)

// Attachment is an optional file to attach to the message.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

/*
SendMessage sends one message to all recipients through the chosen provider.

sendEmails is a dry-run guard: when nil or false, the message is logged and
NOT sent. This keeps accidental sends out of local runs where the config
was not explicitly flipped.
*/
func SendMessage(
	provider Provider, sendEmails *bool,
	senderAddress string, recipientAddresses []string,
	subject, textBody, htmlBody string,
	attachments []Attachment,
) (e *xerr.Error) {
	if sendEmails == nil || !*sendEmails {
		tl.Log(
			tl.Notice, palette.YellowBold, "%s is off: NOT sending '%s' to %s",
			"send_emails", subject, strings.Join(recipientAddresses, ", "),
		)
		return nil
	}

	tl.Log(
		tl.Info, palette.Blue, "%s '%s' via %s to %s",
		"Sending", subject, provider, strings.Join(recipientAddresses, ", "),
	)

	switch provider {
	case ProviderMailgun:
		e = sendViaMailgun(senderAddress, recipientAddresses, subject, textBody, htmlBody, attachments)
	case ProviderSendgrid:
		e = sendViaSendgrid(senderAddress, recipientAddresses, subject, textBody, htmlBody, attachments)
	case ProviderSES:
		e = sendViaSES(senderAddress, recipientAddresses, subject, textBody, htmlBody, attachments)
	default:
		return xerr.NewError(nil, "Unknown email provider", provider)
	}
	if e != nil {
		return e
	}

	tl.Log(tl.Info1, palette.Green, "%s '%s' via %s", "Sent", subject, provider)
	return nil
}
