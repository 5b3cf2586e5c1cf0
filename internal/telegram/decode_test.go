package telegram

import (
	"testing"

	"order-intake-bot/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func textUpdate(userID int64, text string, entities []tgbotapi.MessageEntity) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			From:     &tgbotapi.User{ID: userID},
			Text:     text,
			Entities: entities,
		},
	}
}

func commandUpdate(userID int64, command string) tgbotapi.Update {
	return textUpdate(userID, command, []tgbotapi.MessageEntity{
		{Type: "bot_command", Offset: 0, Length: len(command)},
	})
}

func TestDecode(t *testing.T) {
	cases := []struct {
		name   string
		update tgbotapi.Update
		userID int64
		event  model.Event
		ok     bool
	}{
		{
			name:   "start command",
			update: commandUpdate(42, "/start"),
			userID: 42,
			event:  model.Event{Type: model.EventStart},
			ok:     true,
		},
		{
			name:   "cancel command",
			update: commandUpdate(42, "/cancel"),
			userID: 42,
			event:  model.Event{Type: model.EventCancel},
			ok:     true,
		},
		{
			name:   "unknown command dropped",
			update: commandUpdate(42, "/help"),
			ok:     false,
		},
		{
			name:   "plain text",
			update: textUpdate(7, "Alice", nil),
			userID: 7,
			event:  model.Event{Type: model.EventText, Text: "Alice"},
			ok:     true,
		},
		{
			name: "photo uses largest variant",
			update: tgbotapi.Update{
				Message: &tgbotapi.Message{
					From: &tgbotapi.User{ID: 7},
					Photo: []tgbotapi.PhotoSize{
						{FileID: "thumb", Width: 90},
						{FileID: "medium", Width: 320},
						{FileID: "full", Width: 1280},
					},
				},
			},
			userID: 7,
			event:  model.Event{Type: model.EventPhoto, PhotoFileID: "full"},
			ok:     true,
		},
		{
			name: "sticker dropped",
			update: tgbotapi.Update{
				Message: &tgbotapi.Message{
					From:    &tgbotapi.User{ID: 7},
					Sticker: &tgbotapi.Sticker{FileID: "sticker-1"},
				},
			},
			ok: false,
		},
		{
			name: "selection callback",
			update: tgbotapi.Update{
				CallbackQuery: &tgbotapi.CallbackQuery{
					From:    &tgbotapi.User{ID: 9},
					Message: &tgbotapi.Message{MessageID: 55},
					Data:    "store_13",
				},
			},
			userID: 9,
			event:  model.Event{Type: model.EventSelect, List: model.ReferenceStores, Index: 13, MessageID: 55},
			ok:     true,
		},
		{
			name: "page nav callback",
			update: tgbotapi.Update{
				CallbackQuery: &tgbotapi.CallbackQuery{
					From:    &tgbotapi.User{ID: 9},
					Message: &tgbotapi.Message{MessageID: 55},
					Data:    "color_next_page",
				},
			},
			userID: 9,
			event:  model.Event{Type: model.EventPageNav, List: model.ReferenceColors, Direction: model.PageNext, MessageID: 55},
			ok:     true,
		},
		{
			name: "malformed callback dropped",
			update: tgbotapi.Update{
				CallbackQuery: &tgbotapi.CallbackQuery{
					From:    &tgbotapi.User{ID: 9},
					Message: &tgbotapi.Message{MessageID: 55},
					Data:    "store_abc",
				},
			},
			ok: false,
		},
		{
			name:   "empty update dropped",
			update: tgbotapi.Update{},
			ok:     false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			userID, ev, ok := Decode(tc.update)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if !ok {
				return
			}
			if userID != tc.userID {
				t.Errorf("userID = %d, want %d", userID, tc.userID)
			}
			if ev != tc.event {
				t.Errorf("event = %+v, want %+v", ev, tc.event)
			}
		})
	}
}
