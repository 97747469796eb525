// internal/common/aws/sns.go
package aws

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SMSAPI is the slice of the SNS client the workers use.
type SMSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

func NewSNSClient(cfg awssdk.Config) *sns.Client {
	return sns.NewFromConfig(cfg)
}

// BuildSMS assembles a transactional text message.
func BuildSMS(phone, message, senderID string) *sns.PublishInput {
	attrs := map[string]types.MessageAttributeValue{
		"AWS.SNS.SMS.SMSType": {DataType: awssdk.String("String"), StringValue: awssdk.String("Transactional")},
	}
	if senderID != "" {
		attrs["AWS.SNS.SMS.SenderID"] = types.MessageAttributeValue{DataType: awssdk.String("String"), StringValue: awssdk.String(senderID)}
	}

	return &sns.PublishInput{
		PhoneNumber:       awssdk.String(phone),
		Message:           awssdk.String(message),
		MessageAttributes: attrs,
	}
}
