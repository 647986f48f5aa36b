// Package dialog implements the multi-step dialogue state machine driving
// every "collect structured data across several replies, then commit
// atomically" flow, together with the paginated selection sub-protocol.
//
// The package is transport-neutral: it consumes free-text replies and
// callback payloads tagged with a chat id, and produces Outcomes the
// transport adapter renders. The chat id doubles as the owner id — one
// person operating their own data in a private chat.
package dialog

// Button is one inline keyboard button. Data is the opaque callback
// payload delivered back through HandleCallback when pressed.
type Button struct {
	Label string
	Data  string
}

// Keyboard is rendered as rows of buttons under a message.
type Keyboard [][]Button

// Reply is one outbound message.
type Reply struct {
	Text     string
	Keyboard Keyboard
}

// Document is a generated file to deliver through the transport.
type Document struct {
	Name    string
	Data    []byte
	Caption string
}

// Outcome is everything the engine wants sent in response to one inbound
// action.
type Outcome struct {
	Replies  []Reply
	Document *Document
}

func textOutcome(texts ...string) *Outcome {
	o := &Outcome{}
	for _, t := range texts {
		o.Replies = append(o.Replies, Reply{Text: t})
	}
	return o
}

func (o *Outcome) addText(t string) *Outcome {
	o.Replies = append(o.Replies, Reply{Text: t})
	return o
}
