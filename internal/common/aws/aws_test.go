package aws

import (
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEmail(t *testing.T) {
	in := BuildEmail("quiz@cpp41419.com", "learner@example.com", "Your matches", "plain", "")

	assert.Equal(t, "quiz@cpp41419.com", awssdk.ToString(in.Source))
	assert.Equal(t, []string{"learner@example.com"}, in.Destination.ToAddresses)
	assert.Equal(t, "Your matches", awssdk.ToString(in.Message.Subject.Data))
	assert.Equal(t, "plain", awssdk.ToString(in.Message.Body.Text.Data))
	assert.Nil(t, in.Message.Body.Html)

	withHTML := BuildEmail("a@b.co", "c@d.co", "s", "t", "<p>t</p>")
	require.NotNil(t, withHTML.Message.Body.Html)
	assert.Equal(t, "<p>t</p>", awssdk.ToString(withHTML.Message.Body.Html.Data))
}

func TestBuildSMS(t *testing.T) {
	in := BuildSMS("+61400000000", "hello", "CPP41419")

	assert.Equal(t, "+61400000000", awssdk.ToString(in.PhoneNumber))
	assert.Equal(t, "hello", awssdk.ToString(in.Message))
	assert.Equal(t, "CPP41419", awssdk.ToString(in.MessageAttributes["AWS.SNS.SMS.SenderID"].StringValue))

	_, ok := BuildSMS("+61400000000", "hello", "").MessageAttributes["AWS.SNS.SMS.SenderID"]
	assert.False(t, ok)
}
