package telegram

import (
	"context"

	"order-intake-bot/internal/pkg/logger"
	"order-intake-bot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot is the Telegram transport: it long-polls for updates, decodes them
// into events at this boundary, and implements the outbound
// service.IMessenger port.
type Bot struct {
	api    *tgbotapi.BotAPI
	logger logger.ILogger
}

func NewBot(token string, sysLogger logger.ILogger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	sysLogger.Info("telegram", "Authorized", map[string]interface{}{"account": api.Self.UserName})
	return &Bot{
		api:    api,
		logger: sysLogger,
	}, nil
}

// Run blocks on the update channel until ctx is cancelled. Each update is
// dispatched on its own goroutine; the session repository's per-user lock
// keeps same-user events serialized.
func (b *Bot) Run(ctx context.Context, conversations service.IConversationService) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.dispatch(ctx, conversations, update)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, conversations service.IConversationService, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		// Stop the client-side spinner regardless of what the press maps to.
		if _, err := b.api.Request(tgbotapi.NewCallback(update.CallbackQuery.ID, "")); err != nil {
			b.logger.Warn("telegram", "Failed to answer callback", map[string]interface{}{"error": err.Error()})
		}
	}

	userID, ev, ok := Decode(update)
	if !ok {
		b.logger.Debug("telegram", "Update dropped at boundary", map[string]interface{}{"update_id": update.UpdateID})
		return
	}

	go func() {
		if err := conversations.HandleEvent(ctx, userID, ev); err != nil {
			b.logger.Error("telegram", "Event handling failed", map[string]interface{}{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
	}()
}

// --- service.IMessenger ---

func (b *Bot) SendText(_ context.Context, chatID int64, text string) error {
	_, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (b *Bot) SendReplyKeyboard(_ context.Context, chatID int64, text string, options []string) error {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(options))
	for _, opt := range options {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(opt)))
	}
	markup := tgbotapi.NewReplyKeyboard(rows...)
	markup.OneTimeKeyboard = true

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) SendInlineKeyboard(_ context.Context, chatID int64, text string, keyboard [][]service.Button) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = inlineMarkup(keyboard)
	sent, err := b.api.Send(msg)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

func (b *Bot) SendPhotoWithKeyboard(_ context.Context, chatID int64, fileID, caption string, keyboard [][]service.Button) (int, error) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(fileID))
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeMarkdown
	photo.ReplyMarkup = inlineMarkup(keyboard)
	sent, err := b.api.Send(photo)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

func (b *Bot) EditMessage(_ context.Context, chatID int64, messageID int, text string, keyboard [][]service.Button) error {
	if keyboard == nil {
		_, err := b.api.Send(tgbotapi.NewEditMessageText(chatID, messageID, text))
		return err
	}
	_, err := b.api.Send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, inlineMarkup(keyboard)))
	return err
}

func (b *Bot) DeleteMessage(_ context.Context, chatID int64, messageID int) error {
	_, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	return err
}

func (b *Bot) SendDocument(_ context.Context, chatID int64, filename string, file []byte, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: filename, Bytes: file})
	doc.Caption = caption
	_, err := b.api.Send(doc)
	return err
}

func inlineMarkup(keyboard [][]service.Button) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(keyboard))
	for _, row := range keyboard {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.Data))
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
