package service

import "context"

// Button is one inline keyboard button: visible label plus the callback
// token sent back when pressed.
type Button struct {
	Text string
	Data string
}

// IMessenger is the outbound half of the chat transport, as needed by the
// conversation engine and the finalizer. Implemented by internal/telegram.
type IMessenger interface {
	SendText(ctx context.Context, chatID int64, text string) error
	// SendReplyKeyboard shows a one-time keyboard with one option per row.
	SendReplyKeyboard(ctx context.Context, chatID int64, text string, options []string) error
	// SendInlineKeyboard returns the sent message ID so menus can be
	// edited in place on pagination and deleted on selection.
	SendInlineKeyboard(ctx context.Context, chatID int64, text string, keyboard [][]Button) (int, error)
	SendPhotoWithKeyboard(ctx context.Context, chatID int64, fileID, caption string, keyboard [][]Button) (int, error)
	EditMessage(ctx context.Context, chatID int64, messageID int, text string, keyboard [][]Button) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	SendDocument(ctx context.Context, chatID int64, filename string, file []byte, caption string) error
}
