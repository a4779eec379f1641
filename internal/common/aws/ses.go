// internal/common/aws/ses.go
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESAPI is the slice of the SES client used here.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type Email struct {
	From     string
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

type EmailSender struct {
	api SESAPI
}

func NewEmailSender(api SESAPI) *EmailSender {
	return &EmailSender{api: api}
}

// Send delivers msg and returns the SES message ID.
func (s *EmailSender) Send(ctx context.Context, msg Email) (string, error) {
	if msg.To == "" {
		return "", fmt.Errorf("email recipient is empty")
	}

	body := &types.Body{Text: &types.Content{Data: aws.String(msg.TextBody), Charset: aws.String("UTF-8")}}
	if msg.HTMLBody != "" {
		body.Html = &types.Content{Data: aws.String(msg.HTMLBody), Charset: aws.String("UTF-8")}
	}

	out, err := s.api.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{ToAddresses: []string{msg.To}},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
			Body:    body,
		},
		Source: aws.String(msg.From),
	})
	if err != nil {
		return "", fmt.Errorf("ses send email: %w", err)
	}
	return aws.ToString(out.MessageId), nil
}
