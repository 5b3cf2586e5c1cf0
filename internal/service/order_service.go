package service

import (
	"context"
	"fmt"
	"strconv"

	"order-intake-bot/internal/model"
	"order-intake-bot/internal/pkg/logger"
	"order-intake-bot/pkg/spreadsheet"
)

type IOrderService interface {
	// BuildRows flattens a completed session into one row per confirmed
	// product, in confirmation order.
	BuildRows(sess *model.Session) ([]model.OrderRow, error)
	// Finalize writes the order workbook and delivers it: always to the
	// requester (errors propagate), and to the selected recipient when
	// one was chosen (failure there is a soft warning to the requester).
	Finalize(ctx context.Context, sess *model.Session, recipient *model.ReferenceRow) error
}

type orderService struct {
	messenger IMessenger
	publisher IPublisherService
	logger    logger.ILogger
}

func NewOrderService(messenger IMessenger, publisher IPublisherService, sysLogger logger.ILogger) IOrderService {
	return &orderService{
		messenger: messenger,
		publisher: publisher,
		logger:    sysLogger,
	}
}

func (o *orderService) BuildRows(sess *model.Session) ([]model.OrderRow, error) {
	if len(sess.Products) == 0 {
		return nil, ErrEmptySession
	}

	rows := make([]model.OrderRow, 0, len(sess.Products))
	for _, p := range sess.Products {
		rows = append(rows, model.OrderRow{
			UserName:      sess.Name,
			Store:         sess.Store,
			ShopID:        sess.ShopID,
			OwnerName:     sess.OwnerName,
			OwnerPhone:    sess.OwnerPhone,
			ProductCode:   p.Code,
			ProductColor:  p.Color,
			BadgeQuantity: p.BadgeQuantity,
			SizeRange:     p.SizeRange,
			Price:         p.Price,
			ImageFileID:   p.ImageFileID,
		})
	}
	return rows, nil
}

func (o *orderService) Finalize(ctx context.Context, sess *model.Session, recipient *model.ReferenceRow) error {
	rows, err := o.BuildRows(sess)
	if err != nil {
		return err
	}

	workbook, err := spreadsheet.WriteOrders(rows)
	if err != nil {
		return fmt.Errorf("write order workbook: %w", err)
	}
	filename := fmt.Sprintf("order_%d.xlsx", sess.UserID)

	// Primary delivery. Failure here aborts the turn.
	if err := o.messenger.SendDocument(ctx, sess.UserID, filename, workbook, "Here is your order file."); err != nil {
		return fmt.Errorf("deliver order to requester: %w", err)
	}

	if recipient != nil {
		o.deliverToRecipient(ctx, sess, *recipient, filename, workbook)
	}

	if err := o.publisher.PublishOrderFinalized(ctx, map[string]string{
		MetaFilename:     filename,
		MetaRequesterID:  strconv.FormatInt(sess.UserID, 10),
		MetaUserName:     sess.Name,
		MetaStore:        sess.Store,
		MetaProductCount: strconv.Itoa(len(rows)),
	}, workbook); err != nil {
		// Archival is best-effort; the user already has the file.
		o.logger.Warn("order", "Failed to publish order event", map[string]interface{}{"error": err.Error()})
	}

	o.logger.Info("order", "Order finalized", map[string]interface{}{
		"user_id":  sess.UserID,
		"store":    sess.Store,
		"products": len(rows),
	})
	return nil
}

func (o *orderService) deliverToRecipient(ctx context.Context, sess *model.Session, recipient model.ReferenceRow, filename string, workbook []byte) {
	caption := fmt.Sprintf("New order from %s for %s", sess.Name, sess.Store)

	chatID, err := strconv.ParseInt(recipient.Payload[model.PayloadContact], 10, 64)
	if err == nil {
		err = o.messenger.SendDocument(ctx, chatID, filename, workbook, caption)
	}
	if err != nil {
		o.logger.Error("order", "Failed to send file to recipient", map[string]interface{}{
			"recipient": recipient.DisplayName,
			"error":     err.Error(),
		})
		o.notify(ctx, sess.UserID, fmt.Sprintf("Could not send the file to %s. Please forward it manually.", recipient.DisplayName))
		return
	}

	o.notify(ctx, sess.UserID, fmt.Sprintf("Order has been sent to %s.", recipient.DisplayName))
}

func (o *orderService) notify(ctx context.Context, chatID int64, text string) {
	if err := o.messenger.SendText(ctx, chatID, text); err != nil {
		o.logger.Warn("order", "Failed to notify requester", map[string]interface{}{"error": err.Error()})
	}
}
