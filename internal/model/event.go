package model

// EventType discriminates the closed set of inbound events. Button
// payloads are decoded into these variants once, at the transport
// boundary; business logic never inspects raw callback strings.
type EventType int

const (
	EventStart EventType = iota
	EventCancel
	EventText
	EventPhoto
	EventSelect
	EventPageNav
	EventConfirmYes
	EventConfirmNo
	EventEditColor
	EventEditNew
	EventRecipientSkip
)

type PageDirection int

const (
	PagePrev PageDirection = iota
	PageNext
)

// Event is one inbound occurrence for a single user.
type Event struct {
	Type EventType

	Text        string        // EventText
	PhotoFileID string        // EventPhoto
	List        ReferenceKind // EventSelect, EventPageNav, EventRecipientSkip
	Index       int           // EventSelect
	Direction   PageDirection // EventPageNav

	// MessageID of the originating callback message, when the event came
	// from a button press. Zero for plain messages.
	MessageID int
}
