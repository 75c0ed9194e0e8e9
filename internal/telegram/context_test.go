package telegram_test

import (
	tb "gopkg.in/telebot.v3"
)

type sentMessage struct {
	what interface{}
	opts []interface{}
}

// fakeContext implements the parts of tb.Context the handlers touch. Calling any
// other method panics on the nil embedded interface.
type fakeContext struct {
	tb.Context

	sender  *tb.User
	text    string
	sendErr error
	sent    []sentMessage
}

func newFakeContext(chatID int64, text string) *fakeContext {
	return &fakeContext{
		sender: &tb.User{ID: chatID},
		text:   text,
	}
}

func (c *fakeContext) Sender() *tb.User {
	return c.sender
}

func (c *fakeContext) Text() string {
	return c.text
}

func (c *fakeContext) Send(what interface{}, opts ...interface{}) error {
	c.sent = append(c.sent, sentMessage{what: what, opts: opts})
	return c.sendErr
}
