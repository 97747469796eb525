package sendmatchsummary

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"rto-workers/internal/common/aws"
	"rto-workers/internal/common/errors"
	"rto-workers/internal/common/logger"
	"rto-workers/internal/common/validation"
	"rto-workers/internal/matcher"
	"rto-workers/internal/models"

	"github.com/google/uuid"
)

type Service struct {
	config  *Config
	catalog ProviderCatalog
	email   aws.EmailAPI
	sms     aws.SMSAPI
	logger  logger.Logger
	now     func() time.Time
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config:  config,
		catalog: deps.Catalog,
		email:   deps.Email,
		sms:     deps.SMS,
		logger:  deps.Logger,
		now:     time.Now,
	}
}

// Execute matches the learner's answers and delivers the summary on every
// enabled channel they gave a recipient for. It fails only when every
// attempted channel failed.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	email := strings.TrimSpace(input.Email)
	phone := strings.TrimSpace(input.Phone)

	switch strings.ToLower(strings.TrimSpace(input.Channel)) {
	case "":
	case models.ChannelEmail:
		phone = ""
	case models.ChannelSMS:
		email = ""
	default:
		return nil, errors.NewInvalidQuizInputError(fmt.Sprintf("channel: must be %q or %q", models.ChannelEmail, models.ChannelSMS))
	}

	if email == "" && phone == "" {
		return nil, errors.NewNoRecipientError()
	}
	if email != "" && !validation.ValidateEmail(email) {
		return nil, errors.NewInvalidQuizInputError("email: invalid format")
	}
	if phone != "" && !validation.ValidatePhone(phone) {
		return nil, errors.NewInvalidQuizInputError("phone: invalid format")
	}

	query := models.Query{DeliveryPreference: input.DeliveryPreference, Region: input.Region}
	result := matcher.Summarize(s.catalog.Providers(), query, s.config.RunnersUp)

	content, err := render(summaryView{
		FirstName: strings.TrimSpace(input.FirstName),
		Query:     models.Query{DeliveryPreference: strings.ToLower(strings.TrimSpace(query.DeliveryPreference)), Region: models.NormalizeRegion(query.Region)},
		Top:       result.TopMatch,
		RunnersUp: result.RunnersUp,
		Total:     result.TotalMatches,
	})
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	out := &Output{
		NotificationID: uuid.New().String(),
		TotalMatches:   result.TotalMatches,
		Deliveries:     []models.Notification{},
	}
	if result.TopMatch != nil {
		out.TopMatchID = result.TopMatch.ID
	}

	payload := map[string]interface{}{
		"deliveryPreference": query.DeliveryPreference,
		"region":             query.Region,
		"totalMatches":       result.TotalMatches,
		"topMatchId":         out.TopMatchID,
	}

	var attempted, delivered int
	var sendErrs []error

	if email != "" {
		n := s.newNotification(email, models.ChannelEmail, payload)
		switch {
		case !s.config.EmailEnabled || s.email == nil:
			n.Status = models.NotificationStatusDisabled
		default:
			attempted++
			if err := s.sendEmail(ctx, email, content); err != nil {
				n.Status = models.NotificationStatusFailed
				sendErrs = append(sendErrs, fmt.Errorf("email: %w", err))
			} else {
				n.Status = models.NotificationStatusSent
				out.EmailSent = true
				delivered++
			}
		}
		out.Deliveries = append(out.Deliveries, n)
	}

	if phone != "" {
		n := s.newNotification(phone, models.ChannelSMS, payload)
		switch {
		case !s.config.SMSEnabled || s.sms == nil:
			n.Status = models.NotificationStatusDisabled
		default:
			attempted++
			if err := s.sendSMS(ctx, phone, content); err != nil {
				n.Status = models.NotificationStatusFailed
				sendErrs = append(sendErrs, fmt.Errorf("sms: %w", err))
			} else {
				n.Status = models.NotificationStatusSent
				out.SMSSent = true
				delivered++
			}
		}
		out.Deliveries = append(out.Deliveries, n)
	}

	out.SentAt = s.now().UTC()

	switch {
	case attempted == 0:
		out.Status = models.NotificationStatusDisabled
	case delivered == 0:
		err := stderrors.Join(sendErrs...)
		s.logger.Error("match summary not delivered", map[string]interface{}{
			"notificationId": out.NotificationID,
			"error":          err.Error(),
		})
		return nil, errors.NewNotificationSendFailedError(channelsOf(out.Deliveries), err)
	case delivered < attempted:
		out.Status = models.NotificationStatusPartial
		s.logger.Warn("match summary partially delivered", map[string]interface{}{
			"notificationId": out.NotificationID,
			"error":          stderrors.Join(sendErrs...).Error(),
		})
	default:
		out.Status = models.NotificationStatusSent
	}

	s.logger.Info("match summary processed", map[string]interface{}{
		"notificationId": out.NotificationID,
		"status":         out.Status,
		"emailSent":      out.EmailSent,
		"smsSent":        out.SMSSent,
		"totalMatches":   out.TotalMatches,
	})

	return out, nil
}

func (s *Service) newNotification(recipient, channel string, payload map[string]interface{}) models.Notification {
	return models.Notification{
		ID:        uuid.New().String(),
		Recipient: recipient,
		Type:      models.NotificationTypeMatchSummary,
		Channel:   channel,
		Payload:   payload,
		SentAt:    s.now().UTC().Format(time.RFC3339),
	}
}

func (s *Service) sendEmail(ctx context.Context, to string, content *renderedSummary) error {
	res, err := s.email.SendEmail(ctx, aws.BuildEmail(s.config.FromEmail, to, content.Subject, content.Text, content.HTML))
	if err != nil {
		return err
	}
	if res != nil && res.MessageId != nil {
		s.logger.Debug("email accepted", map[string]interface{}{"messageId": *res.MessageId})
	}
	return nil
}

func (s *Service) sendSMS(ctx context.Context, phone string, content *renderedSummary) error {
	res, err := s.sms.Publish(ctx, aws.BuildSMS(phone, content.SMS, s.config.SenderID))
	if err != nil {
		return err
	}
	if res != nil && res.MessageId != nil {
		s.logger.Debug("sms accepted", map[string]interface{}{"messageId": *res.MessageId})
	}
	return nil
}

func channelsOf(deliveries []models.Notification) string {
	var channels []string
	for _, d := range deliveries {
		if d.Status == models.NotificationStatusFailed {
			channels = append(channels, d.Channel)
		}
	}
	return strings.Join(channels, ",")
}
