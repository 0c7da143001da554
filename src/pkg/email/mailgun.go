package email

import (
	"context"
	"os"
	"time"

	"github.com/mailgun/mailgun-go/v4"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

const mailgunSendTimeout = 30 * time.Second

// uses MAILGUN_DOMAIN and MAILGUN_API_KEY env vars
func sendViaMailgun(
	senderAddress string, recipientAddresses []string,
	subject, textBody, htmlBody string,
	attachments []Attachment,
) (e *xerr.Error) {
	domain := os.Getenv("MAILGUN_DOMAIN")
	apiKey := os.Getenv("MAILGUN_API_KEY")
	if domain == "" || apiKey == "" {
		return xerr.NewError(nil, "MAILGUN_DOMAIN or MAILGUN_API_KEY is not set", nil)
	}

	mg := mailgun.NewMailgun(domain, apiKey)

	message := mailgun.NewMessage(senderAddress, subject, textBody, recipientAddresses...)
	if htmlBody != "" {
		message.SetHTML(htmlBody)
	}
	for _, attachment := range attachments {
		message.AddBufferAttachment(attachment.Filename, attachment.Content)
	}

	ctx, cancel := context.WithTimeout(context.Background(), mailgunSendTimeout)
	defer cancel()

	response, id, sendErr := mg.Send(ctx, message)
	if sendErr != nil {
		return xerr.NewError(sendErr, "mailgun send failed", map[string]any{"domain": domain})
	}

	tl.Log(tl.Verbose, palette.GreenDim, "Mailgun accepted message id='%s' response='%s'", id, response)
	return nil
}
