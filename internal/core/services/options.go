package services

import (
	"time"

	"github.com/SscSPs/closing_tracker/internal/core/domain"
	"github.com/SscSPs/closing_tracker/internal/utils/retry"
	"github.com/google/uuid"
)

// UploadPolicy limits what the document registry accepts.
type UploadPolicy struct {
	MaxSizeBytes int64
	// AllowedContentTypes is matched exactly against the declared media type. Empty allows all.
	AllowedContentTypes []string
	Timeout             time.Duration
}

// DefaultUploadPolicy allows 50 MiB of PDF, Office, image and text files within two minutes.
func DefaultUploadPolicy() UploadPolicy {
	return UploadPolicy{
		MaxSizeBytes: 50 << 20,
		AllowedContentTypes: []string{
			"application/pdf",
			"application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			"application/vnd.ms-excel",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			"image/png",
			"image/jpeg",
			"text/plain",
			"text/csv",
		},
		Timeout: 2 * time.Minute,
	}
}

type serviceConfig struct {
	now            func() time.Time
	newID          func() string
	paymentTimeout time.Duration
	upload         UploadPolicy
	storageRetry   retry.Config
	conflictRetry  retry.Config
	dashboard      domain.DashboardOptions
}

func defaultServiceConfig() serviceConfig {
	conflictRetry := retry.DefaultConfig()
	conflictRetry.InitialDelay = 20 * time.Millisecond
	conflictRetry.Retryable = isConflict

	return serviceConfig{
		now:            func() time.Time { return time.Now().UTC() },
		newID:          uuid.NewString,
		paymentTimeout: 30 * time.Second,
		upload:         DefaultUploadPolicy(),
		storageRetry:   retry.DefaultConfig(),
		conflictRetry:  conflictRetry,
		dashboard:      domain.DefaultDashboardOptions(),
	}
}

// ServiceOption is a functional option shared by the tracker services
type ServiceOption func(*serviceConfig)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) ServiceOption {
	return func(c *serviceConfig) {
		c.now = now
	}
}

// WithIDGenerator replaces uuid generation for new entities.
func WithIDGenerator(newID func() string) ServiceOption {
	return func(c *serviceConfig) {
		c.newID = newID
	}
}

// WithPaymentTimeout bounds payment processing.
func WithPaymentTimeout(d time.Duration) ServiceOption {
	return func(c *serviceConfig) {
		if d > 0 {
			c.paymentTimeout = d
		}
	}
}

// WithUploadPolicy sets document size, type and time limits.
func WithUploadPolicy(p UploadPolicy) ServiceOption {
	return func(c *serviceConfig) {
		c.upload = p
	}
}

// WithStorageRetry sets the backoff used against document storage.
func WithStorageRetry(cfg retry.Config) ServiceOption {
	return func(c *serviceConfig) {
		c.storageRetry = cfg
	}
}

// WithDashboardOptions sets deadline windows and activity length.
func WithDashboardOptions(o domain.DashboardOptions) ServiceOption {
	return func(c *serviceConfig) {
		c.dashboard = o
	}
}

func buildConfig(options []ServiceOption) serviceConfig {
	cfg := defaultServiceConfig()
	for _, option := range options {
		option(&cfg)
	}
	return cfg
}
