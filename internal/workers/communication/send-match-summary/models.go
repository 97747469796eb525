package sendmatchsummary

import (
	"time"

	"rto-workers/internal/common/aws"
	"rto-workers/internal/common/logger"
	"rto-workers/internal/models"
)

type Input struct {
	Email              string `json:"email,omitempty"`
	Phone              string `json:"phone,omitempty"`
	FirstName          string `json:"firstName,omitempty"`
	DeliveryPreference string `json:"deliveryPreference"`
	Region             string `json:"region"`
	// Channel restricts delivery to "email" or "sms". Empty means every
	// channel the input has a recipient for.
	Channel string `json:"channel,omitempty"`
}

type Output struct {
	NotificationID string                `json:"notificationId"`
	Status         string                `json:"status"`
	EmailSent      bool                  `json:"emailSent"`
	SMSSent        bool                  `json:"smsSent"`
	TopMatchID     string                `json:"topMatchId,omitempty"`
	TotalMatches   int                   `json:"totalMatches"`
	Deliveries     []models.Notification `json:"deliveries"`
	SentAt         time.Time             `json:"sentAt"`
}

// ProviderCatalog is satisfied by *catalog.Catalog.
type ProviderCatalog interface {
	Providers() []models.Provider
}

type ServiceDependencies struct {
	Catalog ProviderCatalog
	Email   aws.EmailAPI
	SMS     aws.SMSAPI
	Logger  logger.Logger
}
