// Package conversation keeps a bounded, expiring message history for a chat
// session.
package conversation

import (
	"sync"
	"time"

	"muxbot/internal/provider"
)

// Context holds conversation history bounded by message count and idle time.
//
// When more than maxMessages are appended, the oldest are dropped. When the
// conversation has been idle longer than the timeout, the history is cleared
// on the next access so a stale exchange does not leak into a new one.
type Context struct {
	mu          sync.Mutex
	messages    []provider.Message
	maxMessages int
	idleTimeout time.Duration
	lastActive  time.Time
	now         func() time.Time
}

// NewContext creates a conversation context. maxMessages <= 0 means
// unbounded; idleTimeout <= 0 disables expiry.
func NewContext(maxMessages int, idleTimeout time.Duration) *Context {
	return &Context{
		maxMessages: maxMessages,
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// Append records a message and refreshes the activity timestamp.
func (c *Context) Append(role, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.expireLocked()
	c.messages = append(c.messages, provider.Message{Role: role, Content: content})
	if c.maxMessages > 0 && len(c.messages) > c.maxMessages {
		c.messages = c.messages[len(c.messages)-c.maxMessages:]
	}
	c.lastActive = c.now()
}

// History returns a copy of the current messages.
func (c *Context) History() []provider.Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.expireLocked()
	out := make([]provider.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the current number of retained messages.
func (c *Context) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expireLocked()
	return len(c.messages)
}

// Clear drops all history.
func (c *Context) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
}

func (c *Context) expireLocked() {
	if c.idleTimeout <= 0 || c.lastActive.IsZero() || len(c.messages) == 0 {
		return
	}
	if c.now().Sub(c.lastActive) > c.idleTimeout {
		c.messages = nil
	}
}
