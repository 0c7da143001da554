package email

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

const sesSendTimeout = 30 * time.Second

// uses AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_REGION env vars
func sendViaSES(
	senderAddress string, recipientAddresses []string,
	subject, textBody, htmlBody string,
	attachments []Attachment,
) (e *xerr.Error) {
	ctx, cancel := context.WithTimeout(context.Background(), sesSendTimeout)
	defer cancel()

	awsCfg, cfgErr := awsconfig.LoadDefaultConfig(ctx)
	if cfgErr != nil {
		return xerr.NewError(cfgErr, "Unable to load aws config", nil)
	}
	client := sesv2.NewFromConfig(awsCfg)

	// Simple content has no attachment support in sesv2; raw MIME would be
	// needed for that, which none of our callers use.
	if len(attachments) > 0 {
		tl.Log(tl.Warning, palette.YellowBold, "SES provider ignores %v attachment(s)", len(attachments))
	}

	body := types.Body{}
	if textBody != "" {
		body.Text = &types.Content{Data: aws.String(textBody)}
	}
	if htmlBody != "" {
		body.Html = &types.Content{Data: aws.String(htmlBody)}
	}

	output, sendErr := client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(senderAddress),
		Destination: &types.Destination{
			ToAddresses: recipientAddresses,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body:    &body,
			},
		},
	})
	if sendErr != nil {
		return xerr.NewError(sendErr, "ses send failed", nil)
	}

	tl.Log(tl.Verbose, palette.GreenDim, "SES accepted message id='%s'", aws.ToString(output.MessageId))
	return nil
}
