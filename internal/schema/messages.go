package schema

// Messages is the ordered conversation history sent to the model.
// It owns typed append methods so callers never build raw entries.
type Messages struct {
	Messages []Message
}

// NewMessages returns a Messages initialised with the given messages.
// Called with no arguments it returns an empty history ready for use.
func NewMessages(msgs ...Message) Messages {
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return Messages{Messages: out}
}

// Add appends msg as-is.
func (mh *Messages) Add(msg Message) {
	mh.Messages = append(mh.Messages, msg)
}

// AddSystem appends a system message.
func (mh *Messages) AddSystem(content string) {
	mh.Messages = append(mh.Messages, NewSystemMessage(content))
}

// AddUser appends a user message.
func (mh *Messages) AddUser(content string) {
	mh.Messages = append(mh.Messages, NewUserMessage(content))
}

// AddAssistant appends an assistant message.
func (mh *Messages) AddAssistant(content string) {
	mh.Messages = append(mh.Messages, NewAssistantMessage(content))
}

// Len returns the number of messages in the history.
func (mh Messages) Len() int { return len(mh.Messages) }

// Clone returns a deep copy of mh with an independent backing slice.
func (mh Messages) Clone() Messages {
	cloned := make([]Message, len(mh.Messages))
	copy(cloned, mh.Messages)
	return Messages{Messages: cloned}
}
