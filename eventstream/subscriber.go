// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package eventstream

import (
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// Subscriber pulls the messages published on the topics it subscribed to.
//
// The unexported methods prevent external implementations.
// Subscribers are created by a Stream via AddSubscriber().
type Subscriber interface {
	// ID returns the unique subscriber identifier.
	ID() string
	// Active reports whether the subscriber still receives messages.
	Active() bool
	// Topics returns the subscribed topics, sorted.
	Topics() []string
	// Iterator drains the buffered messages into a closed channel.
	Iterator() chan *Message
	// Shutdown stops the subscriber from receiving messages.
	Shutdown()

	signal(message *Message)
	subscribe(topic string)
	unsubscribe(topic string)
}

type subscriber struct {
	id     string
	active *atomic.Bool

	mu       sync.Mutex
	topics   map[string]struct{}
	messages []*Message
}

var _ Subscriber = (*subscriber)(nil)

func newSubscriber() *subscriber {
	return &subscriber{
		id:     uuid.NewString(),
		active: atomic.NewBool(true),
		topics: make(map[string]struct{}),
	}
}

func (s *subscriber) ID() string {
	return s.id
}

func (s *subscriber) Active() bool {
	return s.active.Load()
}

func (s *subscriber) Topics() []string {
	s.mu.Lock()
	topics := make([]string, 0, len(s.topics))
	for topic := range s.topics {
		topics = append(topics, topic)
	}
	s.mu.Unlock()
	slices.Sort(topics)
	return topics
}

func (s *subscriber) Shutdown() {
	s.active.Store(false)
}

// Iterator returns the messages buffered at the time of invocation,
// in publication order, through a closed channel.
func (s *subscriber) Iterator() chan *Message {
	s.mu.Lock()
	pending := s.messages
	s.messages = nil
	s.mu.Unlock()

	out := make(chan *Message, len(pending))
	for _, message := range pending {
		out <- message
	}
	close(out)
	return out
}

func (s *subscriber) signal(message *Message) {
	if !s.active.Load() {
		return
	}
	s.mu.Lock()
	s.messages = append(s.messages, message)
	s.mu.Unlock()
}

func (s *subscriber) subscribe(topic string) {
	s.mu.Lock()
	s.topics[topic] = struct{}{}
	s.mu.Unlock()
}

func (s *subscriber) unsubscribe(topic string) {
	s.mu.Lock()
	delete(s.topics, topic)
	s.mu.Unlock()
}
