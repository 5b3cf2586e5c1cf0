package bootstrap

import (
	"order-intake-bot/internal/config"
	"order-intake-bot/internal/pkg/logger"
	"order-intake-bot/internal/pkg/mailer"
	"order-intake-bot/internal/repository/memory"
	"order-intake-bot/internal/service"
	"order-intake-bot/internal/telegram"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	Logger logger.ILogger
	Bot    *telegram.Bot

	ConversationService service.IConversationService
	ReferenceService    service.IReferenceService

	// Background services (exposed for main.go to run)
	ArchiveService service.IArchiveService
}

func NewContainer(cfg *config.Config) (*Container, error) {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.Email,
		)
	}

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Transport
	bot, err := telegram.NewBot(cfg.Bot.Token, sysLogger)
	if err != nil {
		return nil, err
	}

	// 4. Services
	sessionRepo := memory.NewSessionRepository()
	referenceService := service.NewReferenceService(cfg.Reference.URL, sysLogger)
	publisherService := service.NewPublisherService(cfg.Archive.Topic, pubSub)
	orderService := service.NewOrderService(bot, publisherService, sysLogger)
	conversationService := service.NewConversationService(
		sessionRepo,
		referenceService,
		orderService,
		bot,
		sysLogger,
	)
	archiveService := service.NewArchiveService(
		pubSub,
		cfg.Archive.Topic,
		cfg.Archive.Dir,
		cfg.Archive.Email,
		emailService,
		sysLogger,
	)

	return &Container{
		Logger:              sysLogger,
		Bot:                 bot,
		ConversationService: conversationService,
		ReferenceService:    referenceService,
		ArchiveService:      archiveService,
	}, nil
}
