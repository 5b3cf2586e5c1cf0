package telegram

import (
	"order-intake-bot/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Decode turns a raw Telegram update into a user ID plus one event from
// the closed union. Updates that don't map to an event return ok=false
// and are dropped.
func Decode(update tgbotapi.Update) (int64, model.Event, bool) {
	if update.Message != nil {
		msg := update.Message
		userID := msg.From.ID

		if msg.IsCommand() {
			switch msg.Command() {
			case "start":
				return userID, model.Event{Type: model.EventStart}, true
			case "cancel":
				return userID, model.Event{Type: model.EventCancel}, true
			}
			return 0, model.Event{}, false
		}

		if len(msg.Photo) > 0 {
			// Last variant is the largest resolution.
			best := msg.Photo[len(msg.Photo)-1]
			return userID, model.Event{Type: model.EventPhoto, PhotoFileID: best.FileID}, true
		}

		if msg.Text != "" {
			return userID, model.Event{Type: model.EventText, Text: msg.Text}, true
		}

		return 0, model.Event{}, false
	}

	if update.CallbackQuery != nil && update.CallbackQuery.Message != nil {
		cq := update.CallbackQuery
		ev, ok := model.ParseCallback(cq.Data)
		if !ok {
			return 0, model.Event{}, false
		}
		ev.MessageID = cq.Message.MessageID
		return cq.From.ID, ev, true
	}

	return 0, model.Event{}, false
}
