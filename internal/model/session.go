package model

// State is the position of a conversation in the order-intake flow.
type State int

const (
	StateStart State = iota
	StateAwaitName
	StateAwaitStoreChoice
	StateAwaitShopID
	StateAwaitOwnerName
	StateAwaitOwnerPhone
	StateAwaitProductImage
	StateAwaitProductCode
	StateAwaitColorChoice
	StateAwaitBadgeQty
	StateAwaitSizeRange
	StateAwaitPrice
	StateAwaitConfirmation
	StateAwaitNextAction
	StateAwaitRecipientChoice
	StateTerminal
)

// ProductDraft is one product entry under construction. Fields are filled
// in a fixed order; the draft is promoted into Session.Products only after
// the user confirms it.
type ProductDraft struct {
	ImageFileID   string
	Code          string
	Color         string
	BadgeQuantity string
	SizeRange     string
	Price         string
}

// Complete reports whether every field of the draft has been captured.
func (d *ProductDraft) Complete() bool {
	return d != nil &&
		d.ImageFileID != "" &&
		d.Code != "" &&
		d.Color != "" &&
		d.BadgeQuantity != "" &&
		d.SizeRange != "" &&
		d.Price != ""
}

// Session holds the full mutable state of one user's in-progress order.
// It lives in memory only; destroying it loses all in-progress data.
type Session struct {
	UserID     int64
	State      State
	Name       string
	Store      string
	ShopID     string
	OwnerName  string
	OwnerPhone string

	// Products only ever grows by appending a complete, confirmed draft.
	Products []ProductDraft
	Draft    *ProductDraft

	// Pages tracks the active page index per browsed reference list.
	Pages map[ReferenceKind]int

	// MenuMessageID is the live inline-menu message, edited in place on
	// pagination and deleted on selection.
	MenuMessageID int
}

func NewSession(userID int64) *Session {
	return &Session{
		UserID: userID,
		State:  StateAwaitName,
		Pages:  make(map[ReferenceKind]int),
	}
}

// BeginBrowse resets the page index for a fresh browse of the given list.
func (s *Session) BeginBrowse(kind ReferenceKind) {
	s.Pages[kind] = 0
}

// ConfirmDraft appends the current draft to the products list and clears
// it. The caller guarantees the draft is complete.
func (s *Session) ConfirmDraft() {
	s.Products = append(s.Products, *s.Draft)
	s.Draft = nil
}

// CloneLastForColor starts a fresh draft carrying everything from the last
// confirmed product except the color. The image file ID is reused on
// purpose: the photo shows the badge artwork, which does not change
// between color variants.
func (s *Session) CloneLastForColor() {
	last := s.Products[len(s.Products)-1]
	s.Draft = &ProductDraft{
		ImageFileID:   last.ImageFileID,
		Code:          last.Code,
		BadgeQuantity: last.BadgeQuantity,
		SizeRange:     last.SizeRange,
		Price:         last.Price,
	}
}
