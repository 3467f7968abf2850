package internal

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sergi/go-diff/diffmatchpatch"
)

type MessageType string

const (
	MessageInitialPrompt MessageType = "initial_prompt"
	MessageDraft         MessageType = "draft"
	MessageFeedback      MessageType = "feedback"
	MessageRevisedDraft  MessageType = "revised_draft"
	MessageSystem        MessageType = "system"
)

// ChatMessage is a single turn in a drafting conversation.
type ChatMessage struct {
	ID        string      `json:"id"`
	Type      MessageType `json:"type"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

// History holds one conversation's messages: the initial request,
// drafts, feedback turns and revisions. It owns no retrieval state; the
// anchored retriever reads user messages from it to build enhanced
// queries.
type History struct {
	ConversationID string
	messages       []ChatMessage
	summary        string
	maxLength      int
	summarizeAt    int
}

func NewHistory() *History {
	return &History{
		ConversationID: uuid.NewString(),
		maxLength:      50,
		summarizeAt:    20,
	}
}

func (h *History) Add(content string, typ MessageType) string {
	msg := ChatMessage{
		ID:        uuid.NewString(),
		Type:      typ,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
	h.messages = append(h.messages, msg)

	if len(h.messages) >= h.summarizeAt {
		h.compact()
	}
	if len(h.messages) > h.maxLength {
		h.messages = h.messages[len(h.messages)-h.maxLength:]
	}
	return msg.ID
}

func (h *History) AddInitialPrompt(content string) string {
	return h.Add(content, MessageInitialPrompt)
}

func (h *History) AddDraft(content string) string {
	return h.Add(content, MessageDraft)
}

func (h *History) AddFeedback(content string) string {
	return h.Add(content, MessageFeedback)
}

func (h *History) AddRevisedDraft(content string) string {
	return h.Add(content, MessageRevisedDraft)
}

func (h *History) Messages() []ChatMessage {
	out := make([]ChatMessage, len(h.messages))
	copy(out, h.messages)
	return out
}

// UserMessages returns the contents of every user-authored turn
// (initial prompt and feedback) in chronological order.
func (h *History) UserMessages() []string {
	var out []string
	for _, msg := range h.messages {
		if msg.Type == MessageInitialPrompt || msg.Type == MessageFeedback {
			out = append(out, msg.Content)
		}
	}
	return out
}

func (h *History) ByType(typ MessageType) []ChatMessage {
	var out []ChatMessage
	for _, msg := range h.messages {
		if msg.Type == typ {
			out = append(out, msg)
		}
	}
	return out
}

// LatestDraft returns the most recent draft or revision, or nil.
func (h *History) LatestDraft() *ChatMessage {
	for i := len(h.messages) - 1; i >= 0; i-- {
		if h.messages[i].Type == MessageDraft || h.messages[i].Type == MessageRevisedDraft {
			msg := h.messages[i]
			return &msg
		}
	}
	return nil
}

// Context formats the conversation for inclusion in an LLM prompt. A
// compaction summary, when present, leads the block.
func (h *History) Context(maxMessages int) string {
	var parts []string
	if h.summary != "" {
		parts = append(parts, "CONVERSATION SUMMARY:\n"+h.summary)
	}

	msgs := h.messages
	if maxMessages > 0 && len(msgs) > maxMessages {
		msgs = msgs[len(msgs)-maxMessages:]
	}

	for _, msg := range msgs {
		parts = append(parts, fmt.Sprintf("[%s]: %s", typeLabel(msg.Type), msg.Content))
	}
	return strings.Join(parts, "\n\n")
}

func typeLabel(t MessageType) string {
	words := strings.Split(string(t), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Clear resets the conversation. Callers owning an AnchoredRetriever
// must reset it as well, or stale guidance leaks into the next
// conversation.
func (h *History) Clear() {
	h.ConversationID = uuid.NewString()
	h.messages = nil
	h.summary = ""
}

// compact folds older messages into a one-line summary, keeping the
// recent tail verbatim.
func (h *History) compact() {
	keep := h.summarizeAt / 2
	if keep > 10 {
		keep = 10
	}
	if len(h.messages) <= keep {
		return
	}

	old := h.messages[:len(h.messages)-keep]
	drafts, feedback := 0, 0
	for _, msg := range old {
		switch msg.Type {
		case MessageDraft, MessageRevisedDraft:
			drafts++
		case MessageFeedback:
			feedback++
		}
	}
	h.summary = fmt.Sprintf("Earlier conversation had %d messages with %d drafts and %d feedback points.",
		len(old), drafts, feedback)
	h.messages = h.messages[len(h.messages)-keep:]
}

// historyDocument is the serialized conversation shape.
type historyDocument struct {
	ConversationID string        `json:"conversation_id"`
	Summary        string        `json:"summary,omitempty"`
	Messages       []ChatMessage `json:"messages"`
}

// Export serializes the conversation for persistence or transfer.
func (h *History) Export() ([]byte, error) {
	doc := historyDocument{
		ConversationID: h.ConversationID,
		Summary:        h.summary,
		Messages:       h.messages,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export history: %w", err)
	}
	return data, nil
}

// ImportHistory restores a conversation exported with Export.
func ImportHistory(data []byte) (*History, error) {
	var doc historyDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("import history: %w", err)
	}
	if doc.ConversationID == "" {
		doc.ConversationID = uuid.NewString()
	}

	h := NewHistory()
	h.ConversationID = doc.ConversationID
	h.summary = doc.Summary
	h.messages = doc.Messages
	return h, nil
}

// DiffDrafts renders the change between two drafts for terminal
// display.
func DiffDrafts(previous, revised string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(previous, revised, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return dmp.DiffPrettyText(diffs)
}
