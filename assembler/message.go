package assembler

import (
	"fmt"
)

// Message is a diagnostic attached to a span of the source.
type Message struct {
	IsError    bool   // Error, otherwise informational.
	StartIndex int    // First source index of the span.
	EndIndex   int    // Source index just past the span.
	Text       string // Human readable text.
}

func (msg Message) String() string {
	kind := "info"
	if msg.IsError {
		kind = "error"
	}
	return fmt.Sprintf("%d-%d: %v: %v", msg.StartIndex, msg.EndIndex, kind, msg.Text)
}

// messageList accumulates the messages of one assembly run.
type messageList struct {
	messages []Message
	errors   int
}

func (ml *messageList) addError(start, end int, text string) {
	ml.messages = append(ml.messages, Message{IsError: true, StartIndex: start, EndIndex: end, Text: text})
	ml.errors++
}

func (ml *messageList) addInfo(start, end int, text string) {
	ml.messages = append(ml.messages, Message{StartIndex: start, EndIndex: end, Text: text})
}

// truncate drops every message after the first n.
func (ml *messageList) truncate(n int) {
	for _, msg := range ml.messages[n:] {
		if msg.IsError {
			ml.errors--
		}
	}
	ml.messages = ml.messages[:n]
}
