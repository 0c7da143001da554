package email

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

// uses SENDGRID_API_KEY env var
func sendViaSendgrid(
	senderAddress string, recipientAddresses []string,
	subject, textBody, htmlBody string,
	attachments []Attachment,
) (e *xerr.Error) {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		return xerr.NewError(nil, "SENDGRID_API_KEY is not set", nil)
	}

	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail("", senderAddress))
	message.Subject = subject

	personalization := mail.NewPersonalization()
	for _, recipientAddress := range recipientAddresses {
		personalization.AddTos(mail.NewEmail("", recipientAddress))
	}
	message.AddPersonalizations(personalization)

	if textBody != "" {
		message.AddContent(mail.NewContent("text/plain", textBody))
	}
	if htmlBody != "" {
		message.AddContent(mail.NewContent("text/html", htmlBody))
	}

	for _, attachment := range attachments {
		encoded := base64.StdEncoding.EncodeToString(attachment.Content)
		message.AddAttachment(&mail.Attachment{
			Filename: attachment.Filename,
			Type:     attachment.ContentType,
			Content:  encoded,
		})
	}

	client := sendgrid.NewSendClient(apiKey)
	var response *rest.Response
	response, sendErr := client.Send(message)
	if sendErr != nil {
		return xerr.NewError(sendErr, "sendgrid send failed", nil)
	}
	if response.StatusCode >= http.StatusBadRequest {
		return xerr.NewError(
			fmt.Errorf("status is %v", response.StatusCode),
			"sendgrid rejected the message", response.Body,
		)
	}

	tl.Log(tl.Verbose, palette.GreenDim, "Sendgrid accepted message, status is %v", response.StatusCode)
	return nil
}
