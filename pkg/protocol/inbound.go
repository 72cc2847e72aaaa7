package protocol

import "encoding/json"

// MessageType is the "type" discriminator of host→panel envelopes.
type MessageType string

const (
	TypeErrorMessage                 MessageType = "errorMessage"
	TypeShowInvalidTokenNotification MessageType = "showInvalidTokenNotification"
	TypeChatMessage                  MessageType = "chatMessage"
	TypeFilePathMessage              MessageType = "filePathMessage"
	TypeAsyncEventProgressMessage    MessageType = "asyncEventProgressMessage"
	TypeUpdatePlaceholderMessage     MessageType = "updatePlaceholderMessage"
	TypeChatInputEnabledMessage      MessageType = "chatInputEnabledMessage"
	TypeAuthenticationUpdateMessage  MessageType = "authenticationUpdateMessage"
)

// ChatItemType classifies a chat item for rendering.
type ChatItemType string

const (
	ItemAnswer       ChatItemType = "answer"
	ItemAnswerPart   ChatItemType = "answer-part"
	ItemPrompt       ChatItemType = "prompt"
	ItemSystemPrompt ChatItemType = "system-prompt"
	ItemCodeResult   ChatItemType = "code-result"
)

// Inbound is one host→panel envelope. Fields are populated per Type; the
// rest stay zero. Optional-on-the-wire fields are pointers so absence
// survives decoding. An unrecognized Type decodes fine and is ignored
// downstream, which keeps the panel compatible with newer hosts.
type Inbound struct {
	Type              MessageType      `json:"type"`
	TabID             string           `json:"tabID"`
	Message           *string          `json:"message,omitempty"`
	Title             string           `json:"title,omitempty"`
	MessageType       ChatItemType     `json:"messageType,omitempty"`
	MessageID         string           `json:"messageID,omitempty"`
	TriggerID         string           `json:"triggerID,omitempty"`
	ConversationID    string           `json:"conversationID,omitempty"`
	CanBeVoted        *bool            `json:"canBeVoted,omitempty"`
	FollowUps         []FollowUpOption `json:"followUps,omitempty"`
	FilePaths         []string         `json:"filePaths,omitempty"`
	InProgress        bool             `json:"inProgress,omitempty"`
	NewPlaceholder    string           `json:"newPlaceholder,omitempty"`
	Enabled           bool             `json:"enabled,omitempty"`
	FeatureDevEnabled bool             `json:"featureDevEnabled,omitempty"`
}

// Decode parses one host frame.
func Decode(data []byte) (Inbound, error) {
	var msg Inbound
	err := json.Unmarshal(data, &msg)
	return msg, err
}
