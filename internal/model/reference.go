package model

// ReferenceKind identifies one of the three choice lists served by the
// remote reference workbook.
type ReferenceKind string

const (
	ReferenceStores     ReferenceKind = "stores"
	ReferenceColors     ReferenceKind = "colors"
	ReferenceRecipients ReferenceKind = "recipients"
)

// PayloadContact is the payload key carrying a recipient's chat ID.
const PayloadContact = "contact"

type ReferenceRow struct {
	DisplayName string
	Payload     map[string]string
}

// ReferenceList is immutable once loaded and shared read-only by all sessions.
type ReferenceList []ReferenceRow
