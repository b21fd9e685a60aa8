package notifications

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"tripcoach/internal/shared/config"
)

// NotificationService is the composition-root facade over the producer,
// consumer and email delivery.
type NotificationService interface {
	SendNotification(ctx context.Context, notification *EmailNotification) error
	SendBatchNotifications(ctx context.Context, notifications []*EmailNotification) error

	SendBookingNotification(ctx context.Context, userID uuid.UUID, email, name string,
		bookingID, packageID uuid.UUID, notificationType NotificationType,
		templateData map[string]interface{}) error

	SendGuideNotification(ctx context.Context, userID uuid.UUID, email, name string,
		notificationType NotificationType, templateData map[string]interface{}) error

	Start(ctx context.Context) error
	Stop() error
	HealthCheck(ctx context.Context) error
}

type emailNotificationService struct {
	cfg          *config.Config
	producer     NotificationProducer
	consumer     NotificationConsumer
	publisher    *NotificationPublisher
	emailService EmailService

	numWorkers int
	isRunning  bool
	mu         sync.RWMutex
	ctx        context.Context
	cancel     context.CancelFunc
}

const defaultConsumerWorkers = 3

// NewEmailNotificationService wires the Kafka producer, the consumer group
// and the SMTP sender from application config. When SMTP credentials are
// missing it falls back to the mock sender so local development does not
// need a mail account.
func NewEmailNotificationService(cfg *config.Config) (NotificationService, error) {
	var emailService EmailService
	if cfg.Email.SMTPHost != "" && cfg.Email.SMTPUsername != "" {
		smtpService, err := NewSMTPEmailService(&SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
			UseTLS:    true,
		})
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP configuration: %w", err)
		}
		emailService = smtpService
	} else {
		log.Println("SMTP not configured, email delivery will be mocked")
		emailService = NewMockEmailService()
	}

	producerConfig := DefaultKafkaProducerConfig()
	producerConfig.Brokers = cfg.Kafka.Brokers
	producerConfig.NotificationTopic = cfg.Kafka.NotificationTopic

	producer, err := NewKafkaNotificationProducer(producerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification producer: %w", err)
	}

	consumerConfig := DefaultConsumerConfig()
	consumerConfig.Brokers = cfg.Kafka.Brokers
	consumerConfig.Topics = []string{cfg.Kafka.NotificationTopic}
	consumerConfig.GroupID = cfg.Kafka.ConsumerGroupID

	consumer, err := NewKafkaNotificationConsumer(consumerConfig, emailService)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification consumer: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &emailNotificationService{
		cfg:          cfg,
		producer:     producer,
		consumer:     consumer,
		publisher:    NewNotificationPublisher(producer),
		emailService: emailService,
		numWorkers:   defaultConsumerWorkers,
		ctx:          ctx,
		cancel:       cancel,
	}, nil
}

func (ens *emailNotificationService) Start(ctx context.Context) error {
	ens.mu.Lock()
	defer ens.mu.Unlock()

	if ens.isRunning {
		return fmt.Errorf("notification service is already running")
	}

	if err := ens.consumer.StartConsumers(ens.ctx, ens.numWorkers); err != nil {
		return fmt.Errorf("failed to start consumers: %w", err)
	}

	ens.isRunning = true
	log.Printf("Notification service started with %d workers", ens.numWorkers)

	return nil
}

func (ens *emailNotificationService) Stop() error {
	ens.mu.Lock()
	defer ens.mu.Unlock()

	if !ens.isRunning {
		return fmt.Errorf("notification service is not running")
	}

	ens.cancel()

	if err := ens.consumer.Stop(); err != nil {
		log.Printf("Error stopping consumer: %v", err)
	}

	if err := ens.producer.Close(); err != nil {
		log.Printf("Error closing producer: %v", err)
	}

	ens.isRunning = false
	log.Println("Notification service stopped")

	return nil
}

func (ens *emailNotificationService) SendNotification(ctx context.Context, notification *EmailNotification) error {
	return ens.producer.PublishNotification(ctx, notification)
}

func (ens *emailNotificationService) SendBatchNotifications(ctx context.Context, notifications []*EmailNotification) error {
	return ens.producer.PublishBatchNotifications(ctx, notifications)
}

func (ens *emailNotificationService) SendBookingNotification(ctx context.Context, userID uuid.UUID, email, name string,
	bookingID, packageID uuid.UUID, notificationType NotificationType,
	templateData map[string]interface{}) error {

	return ens.publisher.PublishBookingNotification(ctx, userID, email, name, bookingID, packageID, notificationType, templateData)
}

func (ens *emailNotificationService) SendGuideNotification(ctx context.Context, userID uuid.UUID, email, name string,
	notificationType NotificationType, templateData map[string]interface{}) error {

	return ens.publisher.PublishGuideNotification(ctx, userID, email, name, notificationType, templateData)
}

func (ens *emailNotificationService) HealthCheck(ctx context.Context) error {
	ens.mu.RLock()
	isRunning := ens.isRunning
	ens.mu.RUnlock()

	if !isRunning {
		return fmt.Errorf("notification service is not running")
	}

	if err := ens.producer.HealthCheck(ctx); err != nil {
		return fmt.Errorf("producer health check failed: %w", err)
	}

	if err := ens.consumer.HealthCheck(ctx); err != nil {
		return fmt.Errorf("consumer health check failed: %w", err)
	}

	return nil
}
