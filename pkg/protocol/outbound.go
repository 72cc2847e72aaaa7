package protocol

// Command tags carried in the "command" field of panel→host envelopes.
// The host demultiplexes on command + tabType, so these strings are wire
// contract and must not change.
type Command string

const (
	CmdInsertCodeAtCursorPosition Command = "insert_code_at_cursor_position"
	CmdCodeWasCopiedToClipboard   Command = "code_was_copied_to_clipboard"
	CmdOpenDiff                   Command = "open-diff"
	CmdFollowUpWasClicked         Command = "follow-up-was-clicked"
	CmdChatPrompt                 Command = "chat-prompt"
	CmdStopResponse               Command = "stop-response"
	CmdNewTabWasCreated           Command = "new-tab-was-created"
	CmdTabWasRemoved              Command = "tab-was-removed"
	CmdChatItemVoted              Command = "chat-item-voted"
)

// Vote is the value carried by a chat-item-voted envelope.
type Vote string

const (
	VoteUp   Vote = "upvote"
	VoteDown Vote = "downvote"
)

// CodeSelectionType describes how the user selected code in the panel.
type CodeSelectionType string

const (
	SelectionCodeBlock CodeSelectionType = "selection"
	SelectionWholeFile CodeSelectionType = "block"
)

// CodeReference is an attribution span attached to inserted or copied code.
type CodeReference struct {
	LicenseName        string         `json:"licenseName,omitempty"`
	Repository         string         `json:"repository,omitempty"`
	URL                string         `json:"url,omitempty"`
	RecommendationSpan *ReferenceSpan `json:"recommendationContentSpan,omitempty"`
}

// ReferenceSpan is a half-open character range into the recommended code.
type ReferenceSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// FollowUpOption is one suggested next action offered to the user.
type FollowUpOption struct {
	PillText string `json:"pillText"`
	Prompt   string `json:"prompt,omitempty"`
	Type     string `json:"type,omitempty"`
}

// Base carries the fields every panel→host envelope must include. tabType
// identifies the session category so a shared transport can demultiplex.
type Base struct {
	Command Command `json:"command"`
	TabID   string  `json:"tabID"`
	TabType string  `json:"tabType"`
}

// Outbound is the closed set of panel→host envelopes. Only types in this
// package implement it.
type Outbound interface {
	outbound()
	Envelope() Base
}

func (b Base) outbound()      {}
func (b Base) Envelope() Base { return b }

// InsertCodeAtCursor asks the editor to insert code at the cursor.
type InsertCodeAtCursor struct {
	Base
	Code          *string            `json:"code,omitempty"`
	InsertionType *CodeSelectionType `json:"insertionType,omitempty"`
	CodeReference []CodeReference    `json:"codeReference,omitempty"`
}

// CopyCodeToClipboard reports that code was copied out of the panel.
type CopyCodeToClipboard struct {
	Base
	Code          *string            `json:"code,omitempty"`
	InsertionType *CodeSelectionType `json:"insertionType,omitempty"`
	CodeReference []CodeReference    `json:"codeReference,omitempty"`
}

// OpenDiff asks the host to open a diff view between two paths.
type OpenDiff struct {
	Base
	LeftPath  string `json:"leftPath"`
	RightPath string `json:"rightPath"`
}

// FollowUpClicked reports that the user picked a suggested follow-up.
type FollowUpClicked struct {
	Base
	FollowUp FollowUpOption `json:"followUp"`
}

// ChatPrompt forwards the user's typed prompt to the host.
type ChatPrompt struct {
	Base
	ChatMessage string `json:"chatMessage"`
}

// StopResponse asks the host to stop streaming the current answer. Delivery
// is best effort; the host may have already finished.
type StopResponse struct {
	Base
}

// NewTabWasCreated reports that the panel opened a tab.
type NewTabWasCreated struct {
	Base
}

// TabWasRemoved reports that the panel closed a tab.
type TabWasRemoved struct {
	Base
}

// ChatItemVoted reports an up/down vote on a chat item.
type ChatItemVoted struct {
	Base
	MessageID string `json:"messageId"`
	Vote      Vote   `json:"vote"`
}
