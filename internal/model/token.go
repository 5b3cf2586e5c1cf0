package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Callback tokens. Encoding and decoding both live here so no other
// package ever pattern-matches raw button payloads.
const (
	TokenConfirmYes    = "confirm_yes"
	TokenConfirmNo     = "confirm_no"
	TokenEditColor     = "edit_color"
	TokenEditNew       = "edit_new"
	TokenRecipientSkip = "recipient_skip"
)

var kindPrefix = map[ReferenceKind]string{
	ReferenceStores:     "store",
	ReferenceColors:     "color",
	ReferenceRecipients: "recipient",
}

// SelectToken encodes a list-selection button, e.g. "store_13".
func SelectToken(kind ReferenceKind, index int) string {
	return fmt.Sprintf("%s_%d", kindPrefix[kind], index)
}

// PageToken encodes a pagination button, e.g. "color_next_page".
func PageToken(kind ReferenceKind, dir PageDirection) string {
	if dir == PagePrev {
		return kindPrefix[kind] + "_prev_page"
	}
	return kindPrefix[kind] + "_next_page"
}

// ParseCallback decodes a raw callback payload into an Event. Unknown
// payloads return false and are dropped at the transport boundary.
func ParseCallback(data string) (Event, bool) {
	switch data {
	case TokenConfirmYes:
		return Event{Type: EventConfirmYes}, true
	case TokenConfirmNo:
		return Event{Type: EventConfirmNo}, true
	case TokenEditColor:
		return Event{Type: EventEditColor}, true
	case TokenEditNew:
		return Event{Type: EventEditNew}, true
	case TokenRecipientSkip:
		return Event{Type: EventRecipientSkip, List: ReferenceRecipients}, true
	}

	for kind, prefix := range kindPrefix {
		switch data {
		case prefix + "_prev_page":
			return Event{Type: EventPageNav, List: kind, Direction: PagePrev}, true
		case prefix + "_next_page":
			return Event{Type: EventPageNav, List: kind, Direction: PageNext}, true
		}
		if rest, ok := strings.CutPrefix(data, prefix+"_"); ok {
			index, err := strconv.Atoi(rest)
			if err != nil || index < 0 {
				return Event{}, false
			}
			return Event{Type: EventSelect, List: kind, Index: index}, true
		}
	}

	return Event{}, false
}
