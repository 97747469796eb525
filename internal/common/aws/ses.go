// internal/common/aws/ses.go
package aws

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// EmailAPI is the slice of the SES client the workers use.
type EmailAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func NewSESClient(cfg awssdk.Config) *ses.Client {
	return ses.NewFromConfig(cfg)
}

// BuildEmail assembles a single-recipient message. html may be empty.
func BuildEmail(from, to, subject, text, html string) *ses.SendEmailInput {
	body := &types.Body{
		Text: &types.Content{Data: awssdk.String(text), Charset: awssdk.String("UTF-8")},
	}
	if html != "" {
		body.Html = &types.Content{Data: awssdk.String(html), Charset: awssdk.String("UTF-8")}
	}

	return &ses.SendEmailInput{
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message: &types.Message{
			Subject: &types.Content{Data: awssdk.String(subject), Charset: awssdk.String("UTF-8")},
			Body:    body,
		},
		Source: awssdk.String(from),
	}
}
