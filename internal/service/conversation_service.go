package service

import (
	"context"
	"fmt"

	"order-intake-bot/internal/model"
	"order-intake-bot/internal/pkg/logger"
	"order-intake-bot/internal/pkg/paging"
	"order-intake-bot/internal/repository/memory"
)

// Next-action menu literals, matched verbatim against the user's reply.
const (
	ActionSameColor  = "Add same product with different color"
	ActionNewProduct = "Add new product"
	ActionSave       = "Save to file"
)

var nextActionOptions = []string{ActionSameColor, ActionNewProduct, ActionSave}

var listPrompts = map[model.ReferenceKind]string{
	model.ReferenceStores:     "Please select a store/market",
	model.ReferenceColors:     "Please select a product color",
	model.ReferenceRecipients: "Please select a recipient",
}

// IConversationService is the order-intake state machine. One call per
// inbound event; events for the same user are serialized by the session
// repository's per-user lock.
type IConversationService interface {
	HandleEvent(ctx context.Context, userID int64, ev model.Event) error
}

type conversationService struct {
	sessions  *memory.SessionRepository
	reference IReferenceService
	orders    IOrderService
	messenger IMessenger
	logger    logger.ILogger
}

func NewConversationService(
	sessions *memory.SessionRepository,
	reference IReferenceService,
	orders IOrderService,
	messenger IMessenger,
	sysLogger logger.ILogger,
) IConversationService {
	return &conversationService{
		sessions:  sessions,
		reference: reference,
		orders:    orders,
		messenger: messenger,
		logger:    sysLogger,
	}
}

func (c *conversationService) HandleEvent(ctx context.Context, userID int64, ev model.Event) error {
	unlock := c.sessions.Lock(userID)
	defer unlock()

	// Control events work from any state.
	switch ev.Type {
	case model.EventStart:
		c.sessions.Save(model.NewSession(userID))
		return c.messenger.SendText(ctx, userID, "Welcome to the Indenim Bot! Please enter your name:")
	case model.EventCancel:
		c.sessions.Delete(userID)
		return c.messenger.SendText(ctx, userID, "Operation cancelled. Type /start to begin again.")
	}

	sess, ok := c.sessions.Get(userID)
	if !ok {
		c.logger.Debug("conversation", "Event without active session ignored", map[string]interface{}{
			"user_id": userID,
			"event":   ev.Type,
		})
		return nil
	}

	var err error
	switch sess.State {
	case model.StateAwaitName:
		err = c.handleName(ctx, sess, ev)
	case model.StateAwaitStoreChoice:
		err = c.handleStoreChoice(ctx, sess, ev)
	case model.StateAwaitShopID:
		err = c.handleShopID(ctx, sess, ev)
	case model.StateAwaitOwnerName:
		err = c.handleOwnerName(ctx, sess, ev)
	case model.StateAwaitOwnerPhone:
		err = c.handleOwnerPhone(ctx, sess, ev)
	case model.StateAwaitProductImage:
		err = c.handleProductImage(ctx, sess, ev)
	case model.StateAwaitProductCode:
		err = c.handleProductCode(ctx, sess, ev)
	case model.StateAwaitColorChoice:
		err = c.handleColorChoice(ctx, sess, ev)
	case model.StateAwaitBadgeQty:
		err = c.handleBadgeQty(ctx, sess, ev)
	case model.StateAwaitSizeRange:
		err = c.handleSizeRange(ctx, sess, ev)
	case model.StateAwaitPrice:
		err = c.handlePrice(ctx, sess, ev)
	case model.StateAwaitConfirmation:
		err = c.handleConfirmation(ctx, sess, ev)
	case model.StateAwaitNextAction:
		err = c.handleNextAction(ctx, sess, ev)
	case model.StateAwaitRecipientChoice:
		err = c.handleRecipientChoice(ctx, sess, ev)
	default:
		c.ignore(sess, ev)
	}
	if err != nil {
		c.logger.Error("conversation", "Turn aborted", map[string]interface{}{
			"user_id": userID,
			"state":   sess.State,
			"error":   err.Error(),
		})
		return err
	}

	if sess.State == model.StateTerminal {
		c.sessions.Delete(userID)
	} else {
		c.sessions.Save(sess)
	}
	return nil
}

// ignore logs a mismatched input for the current state and leaves the
// session untouched.
func (c *conversationService) ignore(sess *model.Session, ev model.Event) {
	c.logger.Debug("conversation", "Input ignored for state", map[string]interface{}{
		"user_id": sess.UserID,
		"state":   sess.State,
		"event":   ev.Type,
	})
}

func (c *conversationService) handleName(ctx context.Context, sess *model.Session, ev model.Event) error {
	if ev.Type != model.EventText {
		c.ignore(sess, ev)
		return nil
	}
	sess.Name = ev.Text

	if err := c.messenger.SendText(ctx, sess.UserID, "Loading store data, please wait..."); err != nil {
		return err
	}
	if err := c.reference.EnsureLoaded(ctx); err != nil {
		sess.State = model.StateTerminal
		return c.messenger.SendText(ctx, sess.UserID, "Failed to load store data. Please try again later.")
	}

	sess.BeginBrowse(model.ReferenceStores)
	if err := c.showListPage(ctx, sess, model.ReferenceStores, 0); err != nil {
		return err
	}
	sess.State = model.StateAwaitStoreChoice
	return nil
}

func (c *conversationService) handleStoreChoice(ctx context.Context, sess *model.Session, ev model.Event) error {
	switch {
	case ev.Type == model.EventPageNav && ev.List == model.ReferenceStores:
		return c.turnPage(ctx, sess, ev)
	case ev.Type == model.EventSelect && ev.List == model.ReferenceStores:
		row, err := c.reference.RowAt(model.ReferenceStores, ev.Index)
		if err != nil {
			return err
		}
		sess.Store = row.DisplayName
		text := fmt.Sprintf("Selected store: %s\n\nPlease enter the shop ID:", row.DisplayName)
		if err := c.messenger.EditMessage(ctx, sess.UserID, ev.MessageID, text, nil); err != nil {
			return err
		}
		sess.State = model.StateAwaitShopID
		return nil
	}
	c.ignore(sess, ev)
	return nil
}

func (c *conversationService) handleShopID(ctx context.Context, sess *model.Session, ev model.Event) error {
	if ev.Type != model.EventText {
		c.ignore(sess, ev)
		return nil
	}
	sess.ShopID = ev.Text
	if err := c.messenger.SendText(ctx, sess.UserID, "Please enter the name of the shop owner:"); err != nil {
		return err
	}
	sess.State = model.StateAwaitOwnerName
	return nil
}

func (c *conversationService) handleOwnerName(ctx context.Context, sess *model.Session, ev model.Event) error {
	if ev.Type != model.EventText {
		c.ignore(sess, ev)
		return nil
	}
	sess.OwnerName = ev.Text
	if err := c.messenger.SendText(ctx, sess.UserID, "Please enter the phone number of the shop owner:"); err != nil {
		return err
	}
	sess.State = model.StateAwaitOwnerPhone
	return nil
}

func (c *conversationService) handleOwnerPhone(ctx context.Context, sess *model.Session, ev model.Event) error {
	if ev.Type != model.EventText {
		c.ignore(sess, ev)
		return nil
	}
	sess.OwnerPhone = ev.Text
	if err := c.messenger.SendText(ctx, sess.UserID, "Now let's add products. Please send a product image:"); err != nil {
		return err
	}
	sess.State = model.StateAwaitProductImage
	return nil
}

func (c *conversationService) handleProductImage(ctx context.Context, sess *model.Session, ev model.Event) error {
	if ev.Type != model.EventPhoto {
		c.ignore(sess, ev)
		return nil
	}
	sess.Draft = &model.ProductDraft{ImageFileID: ev.PhotoFileID}
	if err := c.messenger.SendText(ctx, sess.UserID, "Please enter the product code:"); err != nil {
		return err
	}
	sess.State = model.StateAwaitProductCode
	return nil
}

func (c *conversationService) handleProductCode(ctx context.Context, sess *model.Session, ev model.Event) error {
	if ev.Type != model.EventText {
		c.ignore(sess, ev)
		return nil
	}
	sess.Draft.Code = ev.Text
	sess.BeginBrowse(model.ReferenceColors)
	if err := c.showListPage(ctx, sess, model.ReferenceColors, 0); err != nil {
		return err
	}
	sess.State = model.StateAwaitColorChoice
	return nil
}

func (c *conversationService) handleColorChoice(ctx context.Context, sess *model.Session, ev model.Event) error {
	switch {
	case ev.Type == model.EventPageNav && ev.List == model.ReferenceColors:
		return c.turnPage(ctx, sess, ev)
	case ev.Type == model.EventSelect && ev.List == model.ReferenceColors:
		row, err := c.reference.RowAt(model.ReferenceColors, ev.Index)
		if err != nil {
			return err
		}
		sess.Draft.Color = row.DisplayName
		text := fmt.Sprintf("Selected color: %s\n\nPlease enter the badge quantity:", row.DisplayName)
		if err := c.messenger.EditMessage(ctx, sess.UserID, ev.MessageID, text, nil); err != nil {
			return err
		}
		sess.State = model.StateAwaitBadgeQty
		return nil
	}
	c.ignore(sess, ev)
	return nil
}

func (c *conversationService) handleBadgeQty(ctx context.Context, sess *model.Session, ev model.Event) error {
	if ev.Type != model.EventText {
		c.ignore(sess, ev)
		return nil
	}
	sess.Draft.BadgeQuantity = ev.Text
	if err := c.messenger.SendText(ctx, sess.UserID, "Please enter the product size range:"); err != nil {
		return err
	}
	sess.State = model.StateAwaitSizeRange
	return nil
}

func (c *conversationService) handleSizeRange(ctx context.Context, sess *model.Session, ev model.Event) error {
	if ev.Type != model.EventText {
		c.ignore(sess, ev)
		return nil
	}
	sess.Draft.SizeRange = ev.Text
	if err := c.messenger.SendText(ctx, sess.UserID, "Please enter the product price:"); err != nil {
		return err
	}
	sess.State = model.StateAwaitPrice
	return nil
}

func (c *conversationService) handlePrice(ctx context.Context, sess *model.Session, ev model.Event) error {
	if ev.Type != model.EventText {
		c.ignore(sess, ev)
		return nil
	}
	sess.Draft.Price = ev.Text

	caption := "*Product Details:*\n\n" +
		fmt.Sprintf("📝 *Code:* %s\n", sess.Draft.Code) +
		fmt.Sprintf("🎨 *Color:* %s\n", sess.Draft.Color) +
		fmt.Sprintf("🏷️ *Badge Quantity:* %s\n", sess.Draft.BadgeQuantity) +
		fmt.Sprintf("📏 *Size Range:* %s\n", sess.Draft.SizeRange) +
		fmt.Sprintf("💰 *Price:* %s\n\n", sess.Draft.Price) +
		"Is this information correct?"

	keyboard := [][]Button{{
		{Text: "✅ Yes", Data: model.TokenConfirmYes},
		{Text: "❌ No", Data: model.TokenConfirmNo},
	}}

	msgID, err := c.messenger.SendPhotoWithKeyboard(ctx, sess.UserID, sess.Draft.ImageFileID, caption, keyboard)
	if err != nil {
		return err
	}
	sess.MenuMessageID = msgID
	sess.State = model.StateAwaitConfirmation
	return nil
}

func (c *conversationService) handleConfirmation(ctx context.Context, sess *model.Session, ev model.Event) error {
	switch ev.Type {
	case model.EventConfirmYes:
		if !sess.Draft.Complete() {
			return fmt.Errorf("confirm with incomplete draft for user %d", sess.UserID)
		}
		sess.ConfirmDraft()
		if err := c.messenger.DeleteMessage(ctx, sess.UserID, ev.MessageID); err != nil {
			c.logger.Warn("conversation", "Failed to delete confirmation message", map[string]interface{}{"error": err.Error()})
		}
		if err := c.messenger.SendReplyKeyboard(ctx, sess.UserID, "What would you like to do next?", nextActionOptions); err != nil {
			return err
		}
		sess.State = model.StateAwaitNextAction
		return nil

	case model.EventConfirmNo:
		if err := c.messenger.DeleteMessage(ctx, sess.UserID, ev.MessageID); err != nil {
			c.logger.Warn("conversation", "Failed to delete confirmation message", map[string]interface{}{"error": err.Error()})
		}
		keyboard := [][]Button{
			{{Text: "Change Color", Data: model.TokenEditColor}},
			{{Text: "Start New Product", Data: model.TokenEditNew}},
		}
		msgID, err := c.messenger.SendInlineKeyboard(ctx, sess.UserID, "What would you like to change?", keyboard)
		if err != nil {
			return err
		}
		sess.MenuMessageID = msgID
		return nil

	case model.EventEditColor:
		// Keep everything else on the draft, redo only the color.
		sess.Draft.Color = ""
		sess.BeginBrowse(model.ReferenceColors)
		if err := c.showListPage(ctx, sess, model.ReferenceColors, ev.MessageID); err != nil {
			return err
		}
		sess.State = model.StateAwaitColorChoice
		return nil

	case model.EventEditNew:
		sess.Draft = nil
		if err := c.messenger.DeleteMessage(ctx, sess.UserID, ev.MessageID); err != nil {
			c.logger.Warn("conversation", "Failed to delete edit menu", map[string]interface{}{"error": err.Error()})
		}
		if err := c.messenger.SendText(ctx, sess.UserID, "Let's add a new product. Please send a product image:"); err != nil {
			return err
		}
		sess.State = model.StateAwaitProductImage
		return nil
	}

	c.ignore(sess, ev)
	return nil
}

func (c *conversationService) handleNextAction(ctx context.Context, sess *model.Session, ev model.Event) error {
	if ev.Type != model.EventText {
		c.ignore(sess, ev)
		return nil
	}

	switch ev.Text {
	case ActionSameColor:
		if len(sess.Products) == 0 {
			return fmt.Errorf("clone requested with no confirmed products for user %d", sess.UserID)
		}
		sess.CloneLastForColor()
		sess.BeginBrowse(model.ReferenceColors)
		if err := c.showListPage(ctx, sess, model.ReferenceColors, 0); err != nil {
			return err
		}
		sess.State = model.StateAwaitColorChoice
		return nil

	case ActionNewProduct:
		if err := c.messenger.SendText(ctx, sess.UserID, "Please send a product image:"); err != nil {
			return err
		}
		sess.State = model.StateAwaitProductImage
		return nil

	case ActionSave:
		if len(sess.Products) == 0 {
			// The menu is only shown after a confirmed product, so this
			// is unreachable through the UI; guard anyway.
			return c.messenger.SendReplyKeyboard(ctx, sess.UserID, "There are no products yet. Please add one first.", nextActionOptions)
		}
		if err := c.messenger.SendText(ctx, sess.UserID, "Please select a recipient for this order:"); err != nil {
			return err
		}
		sess.BeginBrowse(model.ReferenceRecipients)
		if err := c.showListPage(ctx, sess, model.ReferenceRecipients, 0); err != nil {
			return err
		}
		sess.State = model.StateAwaitRecipientChoice
		return nil
	}

	// Unrecognized menu text: re-prompt instead of dropping the user into
	// a dead state.
	return c.messenger.SendReplyKeyboard(ctx, sess.UserID, "What would you like to do next?", nextActionOptions)
}

func (c *conversationService) handleRecipientChoice(ctx context.Context, sess *model.Session, ev model.Event) error {
	switch {
	case ev.Type == model.EventPageNav && ev.List == model.ReferenceRecipients:
		return c.turnPage(ctx, sess, ev)

	case ev.Type == model.EventRecipientSkip:
		return c.finish(ctx, sess, ev.MessageID, nil)

	case ev.Type == model.EventSelect && ev.List == model.ReferenceRecipients:
		row, err := c.reference.RowAt(model.ReferenceRecipients, ev.Index)
		if err != nil {
			return err
		}
		return c.finish(ctx, sess, ev.MessageID, &row)
	}
	c.ignore(sess, ev)
	return nil
}

func (c *conversationService) finish(ctx context.Context, sess *model.Session, menuMessageID int, recipient *model.ReferenceRow) error {
	if err := c.messenger.DeleteMessage(ctx, sess.UserID, menuMessageID); err != nil {
		c.logger.Warn("conversation", "Failed to delete recipient menu", map[string]interface{}{"error": err.Error()})
	}

	// A requester delivery failure aborts the turn with the session
	// intact, so the user can pick a recipient again.
	if err := c.orders.Finalize(ctx, sess, recipient); err != nil {
		return err
	}

	if err := c.messenger.SendText(ctx, sess.UserID, "Thank you! Your order has been saved. Type /start to place a new order."); err != nil {
		c.logger.Warn("conversation", "Failed to send closing message", map[string]interface{}{"error": err.Error()})
	}
	sess.State = model.StateTerminal
	return nil
}

// turnPage advances the page index (clamped at the edges) and re-renders
// the menu in place.
func (c *conversationService) turnPage(ctx context.Context, sess *model.Session, ev model.Event) error {
	count, err := c.reference.Count(ev.List)
	if err != nil {
		return err
	}
	w := paging.Page(count, sess.Pages[ev.List], paging.ItemsPerPage)

	var dir paging.Direction
	if ev.Direction == model.PagePrev {
		dir = paging.Prev
	} else {
		dir = paging.Next
	}
	sess.Pages[ev.List] = paging.Advance(w.PageIndex, w.TotalPages, dir)

	return c.showListPage(ctx, sess, ev.List, ev.MessageID)
}

// showListPage renders the current page of a reference list as an inline
// keyboard. A non-zero editMessageID edits the existing menu message;
// zero sends a new one.
func (c *conversationService) showListPage(ctx context.Context, sess *model.Session, kind model.ReferenceKind, editMessageID int) error {
	list, err := c.reference.List(kind)
	if err != nil {
		return err
	}
	w := paging.Page(len(list), sess.Pages[kind], paging.ItemsPerPage)
	sess.Pages[kind] = w.PageIndex

	var keyboard [][]Button
	for i := w.Start; i < w.End; i++ {
		keyboard = append(keyboard, []Button{{
			Text: list[i].DisplayName,
			Data: model.SelectToken(kind, i),
		}})
	}

	var nav []Button
	if w.HasPrev {
		nav = append(nav, Button{Text: "⬅️ Previous", Data: model.PageToken(kind, model.PagePrev)})
	}
	if w.HasNext {
		nav = append(nav, Button{Text: "Next ➡️", Data: model.PageToken(kind, model.PageNext)})
	}
	if len(nav) > 0 {
		keyboard = append(keyboard, nav)
	}

	if kind == model.ReferenceRecipients {
		keyboard = append(keyboard, []Button{{Text: "Skip - Send only to me", Data: model.TokenRecipientSkip}})
	}

	text := fmt.Sprintf("%s (Page %d/%d):", listPrompts[kind], w.PageIndex+1, w.TotalPages)

	if editMessageID != 0 {
		if err := c.messenger.EditMessage(ctx, sess.UserID, editMessageID, text, keyboard); err != nil {
			return err
		}
		sess.MenuMessageID = editMessageID
		return nil
	}

	msgID, err := c.messenger.SendInlineKeyboard(ctx, sess.UserID, text, keyboard)
	if err != nil {
		return err
	}
	sess.MenuMessageID = msgID
	return nil
}
