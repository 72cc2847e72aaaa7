package connector

import (
	"github.com/panelclaw/panelclaw/pkg/protocol"
)

// DefaultTabType tags every outbound envelope so a transport shared with
// other panel features can demultiplex this session category.
const DefaultTabType = "featuredev"

// followUpLabel is the prompt shown above follow-up pills. It is blanked
// for system-prompt items, which carry their own lead-in text.
const followUpLabel = "Please follow up with one of these"

// SendFunc is the only way outbound envelopes leave the connector. Any
// error it returns is the transport's, relayed untouched.
type SendFunc func(protocol.Outbound) error

// ChatItem is the rendering record handed to the answer-received callback.
// Body and CanBeVoted stay nil when the host omitted them.
type ChatItem struct {
	Type       protocol.ChatItemType
	Body       *string
	MessageID  string
	CanBeVoted *bool
	FollowUp   *FollowUpBlock
	FilePaths  []string
}

// FollowUpBlock is the follow-up prompt attached to a chat item, present
// only when the host sent a non-empty follow-up list.
type FollowUpBlock struct {
	Text    string
	Options []protocol.FollowUpOption
}

// FeedbackPayload is what the panel's feedback widget collects. Submission
// is not implemented by this component; see SendFeedback.
type FeedbackPayload struct {
	MessageID string
	Reason    string
	Comment   string
}

// Handlers is the capability record supplied at construction. A nil slot
// means the corresponding host event is silently dropped.
type Handlers struct {
	ChatAnswerReceived   func(tabID string, item ChatItem)
	AsyncEventProgress   func(tabID string, inProgress bool, message *string)
	Error                func(tabID, message, title string)
	Warning              func(tabID, message, title string)
	UpdatePlaceholder    func(tabID, placeholder string)
	ChatInputEnabled     func(tabID string, enabled bool)
	UpdateAuthentication func(featureDevEnabled bool)
}

type Config struct {
	// TabType overrides DefaultTabType; leave empty for the default.
	TabType  string
	Send     SendFunc
	Handlers Handlers
}

// Connector routes panel events to the host and host envelopes to the
// handler record. It holds no mutable state, so it is safe for the usual
// single-reader transport without locking.
type Connector struct {
	tabType  string
	send     SendFunc
	handlers Handlers
}

func New(cfg Config) *Connector {
	tabType := cfg.TabType
	if tabType == "" {
		tabType = DefaultTabType
	}
	return &Connector{
		tabType:  tabType,
		send:     cfg.Send,
		handlers: cfg.Handlers,
	}
}

func (c *Connector) base(cmd protocol.Command, tabID string) protocol.Base {
	return protocol.Base{Command: cmd, TabID: tabID, TabType: c.tabType}
}

func (c *Connector) deliver(msg protocol.Outbound) error {
	if c.send == nil {
		return nil
	}
	return c.send(msg)
}

// InsertCodeAtCursorPosition forwards a code-insert action. Optional
// arguments pass through as nil and stay absent on the wire.
func (c *Connector) InsertCodeAtCursorPosition(tabID string, code *string, selection *protocol.CodeSelectionType, refs []protocol.CodeReference) error {
	return c.deliver(&protocol.InsertCodeAtCursor{
		Base:          c.base(protocol.CmdInsertCodeAtCursorPosition, tabID),
		Code:          code,
		InsertionType: selection,
		CodeReference: refs,
	})
}

// CopyCodeToClipboard reports a copy action, same shape as insert.
func (c *Connector) CopyCodeToClipboard(tabID string, code *string, selection *protocol.CodeSelectionType, refs []protocol.CodeReference) error {
	return c.deliver(&protocol.CopyCodeToClipboard{
		Base:          c.base(protocol.CmdCodeWasCopiedToClipboard, tabID),
		Code:          code,
		InsertionType: selection,
		CodeReference: refs,
	})
}

// OpenDiff asks the host to open a diff view between two file paths.
func (c *Connector) OpenDiff(tabID, leftPath, rightPath string) error {
	return c.deliver(&protocol.OpenDiff{
		Base:      c.base(protocol.CmdOpenDiff, tabID),
		LeftPath:  leftPath,
		RightPath: rightPath,
	})
}

// FollowUpClicked forwards the follow-up option the user picked.
func (c *Connector) FollowUpClicked(tabID string, followUp protocol.FollowUpOption) error {
	return c.deliver(&protocol.FollowUpClicked{
		Base:     c.base(protocol.CmdFollowUpWasClicked, tabID),
		FollowUp: followUp,
	})
}

// RequestGenerativeAIAnswer forwards a chat prompt and returns an
// unsettled handle. The connector never settles it: the answer, if any,
// arrives through the answer-received callback, and whoever wires the two
// together owns the handle's completion. If the host never replies the
// handle never settles.
func (c *Connector) RequestGenerativeAIAnswer(tabID, prompt string) (*PendingAnswer, error) {
	err := c.deliver(&protocol.ChatPrompt{
		Base:        c.base(protocol.CmdChatPrompt, tabID),
		ChatMessage: prompt,
	})
	if err != nil {
		return nil, err
	}
	return newPendingAnswer(), nil
}

// StopResponse relays a stop request. It is not a guaranteed abort.
func (c *Connector) StopResponse(tabID string) error {
	return c.deliver(&protocol.StopResponse{Base: c.base(protocol.CmdStopResponse, tabID)})
}

// TabOpened reports a newly created panel tab.
func (c *Connector) TabOpened(tabID string) error {
	return c.deliver(&protocol.NewTabWasCreated{Base: c.base(protocol.CmdNewTabWasCreated, tabID)})
}

// TabRemoved reports a closed panel tab.
func (c *Connector) TabRemoved(tabID string) error {
	return c.deliver(&protocol.TabWasRemoved{Base: c.base(protocol.CmdTabWasRemoved, tabID)})
}

// VoteOnChatItem forwards an up/down vote on a chat item.
func (c *Connector) VoteOnChatItem(tabID, messageID string, vote protocol.Vote) error {
	return c.deliver(&protocol.ChatItemVoted{
		Base:      c.base(protocol.CmdChatItemVoted, tabID),
		MessageID: messageID,
		Vote:      vote,
	})
}

// SendFeedback is a stub. Telemetry submission is out of scope for this
// component; the payload is accepted and discarded.
func (c *Connector) SendFeedback(tabID string, feedback FeedbackPayload) error {
	_ = feedback
	return nil
}

// HandleMessageReceive classifies one host envelope and invokes at most
// one callback. Unrecognized types and nil callbacks are silent no-ops so
// the panel stays compatible with hosts that send newer message types.
func (c *Connector) HandleMessageReceive(msg protocol.Inbound) {
	switch msg.Type {
	case protocol.TypeErrorMessage:
		if c.handlers.Error != nil {
			c.handlers.Error(msg.TabID, deref(msg.Message), msg.Title)
		}
	case protocol.TypeShowInvalidTokenNotification:
		if c.handlers.Warning != nil {
			c.handlers.Warning(msg.TabID, deref(msg.Message), msg.Title)
		}
	case protocol.TypeChatMessage:
		if c.handlers.ChatAnswerReceived != nil {
			c.handlers.ChatAnswerReceived(msg.TabID, chatItemFromMessage(msg))
		}
	case protocol.TypeFilePathMessage:
		if c.handlers.ChatAnswerReceived != nil {
			c.handlers.ChatAnswerReceived(msg.TabID, chatItemFromFilePaths(msg))
		}
	case protocol.TypeAsyncEventProgressMessage:
		if c.handlers.AsyncEventProgress != nil {
			c.handlers.AsyncEventProgress(msg.TabID, msg.InProgress, msg.Message)
		}
	case protocol.TypeUpdatePlaceholderMessage:
		if c.handlers.UpdatePlaceholder != nil {
			c.handlers.UpdatePlaceholder(msg.TabID, msg.NewPlaceholder)
		}
	case protocol.TypeChatInputEnabledMessage:
		if c.handlers.ChatInputEnabled != nil {
			c.handlers.ChatInputEnabled(msg.TabID, msg.Enabled)
		}
	case protocol.TypeAuthenticationUpdateMessage:
		if c.handlers.UpdateAuthentication != nil {
			c.handlers.UpdateAuthentication(msg.FeatureDevEnabled)
		}
	}
}

func chatItemFromMessage(msg protocol.Inbound) ChatItem {
	item := ChatItem{
		Type:       msg.MessageType,
		Body:       msg.Message,
		MessageID:  firstNonEmpty(msg.MessageID, msg.TriggerID),
		CanBeVoted: msg.CanBeVoted,
	}
	if len(msg.FollowUps) > 0 {
		text := followUpLabel
		if msg.MessageType == protocol.ItemSystemPrompt {
			text = ""
		}
		item.FollowUp = &FollowUpBlock{Text: text, Options: msg.FollowUps}
	}
	return item
}

func chatItemFromFilePaths(msg protocol.Inbound) ChatItem {
	voted := true
	return ChatItem{
		Type:       protocol.ItemCodeResult,
		FilePaths:  msg.FilePaths,
		MessageID:  firstNonEmpty(msg.MessageID, msg.TriggerID, msg.ConversationID),
		CanBeVoted: &voted,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
