package service

import (
	"context"
	"os"
	"path/filepath"

	"order-intake-bot/internal/pkg/logger"
	"order-intake-bot/internal/pkg/mailer"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IArchiveService consumes order-finalized events in the background and
// keeps a copy of every emitted workbook: one file on disk per order,
// plus an optional email to the back-office address. Archive failures are
// logged only; the user-facing delivery has already happened.
type IArchiveService interface {
	Consume(ctx context.Context) error
}

type archiveService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	archiveDir   string
	archiveEmail string
	emailService mailer.IEmailService
	logger       logger.ILogger
}

func NewArchiveService(
	pubSub *gochannel.GoChannel,
	topicName string,
	archiveDir string,
	archiveEmail string,
	emailService mailer.IEmailService,
	sysLogger logger.ILogger,
) IArchiveService {
	return &archiveService{
		pubSub:       pubSub,
		topicName:    topicName,
		archiveDir:   archiveDir,
		archiveEmail: archiveEmail,
		emailService: emailService,
		logger:       sysLogger,
	}
}

func (as *archiveService) Consume(ctx context.Context) error {
	messages, err := as.pubSub.Subscribe(ctx, as.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			as.processMessage(msg)
		}
	}()

	return nil
}

func (as *archiveService) processMessage(msg *message.Message) {
	orderID := msg.Metadata.Get(MetaOrderID)
	filename := msg.Metadata.Get(MetaFilename)
	if filename == "" {
		as.logger.Error("archive", "Order event without filename", map[string]interface{}{"order_id": orderID})
		msg.Ack() // malformed, retrying will not help
		return
	}

	if err := os.MkdirAll(as.archiveDir, 0o755); err != nil {
		as.logger.Error("archive", "Failed to create archive dir", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}

	// Prefix with the order ID so color-variant reorders from the same
	// user never overwrite each other.
	path := filepath.Join(as.archiveDir, orderID+"_"+filename)
	if err := os.WriteFile(path, msg.Payload, 0o644); err != nil {
		as.logger.Error("archive", "Failed to write archive copy", map[string]interface{}{
			"error": err.Error(),
			"path":  path,
		})
		msg.Nack()
		return
	}

	as.logger.Info("archive", "Order archived", map[string]interface{}{
		"order_id": orderID,
		"path":     path,
		"user":     msg.Metadata.Get(MetaUserName),
		"store":    msg.Metadata.Get(MetaStore),
		"products": msg.Metadata.Get(MetaProductCount),
	})

	if as.archiveEmail != "" && as.emailService != nil {
		if err := as.emailService.SendOrderCopy(as.archiveEmail, filename, msg.Payload,
			msg.Metadata.Get(MetaUserName), msg.Metadata.Get(MetaStore)); err != nil {
			as.logger.Warn("archive", "Failed to email archive copy", map[string]interface{}{"error": err.Error()})
		}
	}

	msg.Ack()
}
