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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream(t *testing.T) {
	t.Run("With Subscription", func(t *testing.T) {
		broker := New()
		t.Cleanup(broker.Close)

		cons := broker.AddSubscriber()
		require.NotNil(t, cons)
		require.NotEmpty(t, cons.ID())
		broker.Subscribe(cons, "t1")
		broker.Subscribe(cons, "t2")

		require.EqualValues(t, 1, broker.SubscribersCount("t1"))
		require.EqualValues(t, 1, broker.SubscribersCount("t2"))
		assert.Equal(t, []string{"t1", "t2"}, cons.Topics())

		broker.RemoveSubscriber(cons)
		assert.Zero(t, broker.SubscribersCount("t1"))
		assert.Zero(t, broker.SubscribersCount("t2"))
		assert.False(t, cons.Active())

		broker.Subscribe(cons, "t3")
		assert.Zero(t, broker.SubscribersCount("t3"))
	})
	t.Run("With Unsubscription", func(t *testing.T) {
		broker := New()
		t.Cleanup(broker.Close)

		cons := broker.AddSubscriber()
		broker.Subscribe(cons, "t1")
		broker.Subscribe(cons, "t2")

		broker.Unsubscribe(cons, "t1")
		assert.Zero(t, broker.SubscribersCount("t1"))
		require.EqualValues(t, 1, broker.SubscribersCount("t2"))
		assert.Equal(t, []string{"t2"}, cons.Topics())
	})
	t.Run("With Publication", func(t *testing.T) {
		broker := New()
		t.Cleanup(broker.Close)

		cons := broker.AddSubscriber()
		broker.Subscribe(cons, "t1")
		broker.Subscribe(cons, "t2")

		broker.Publish("t1", "hi")
		broker.Publish("t2", "hello")
		broker.Publish("t3", "nobody")

		var payloads []any
		for message := range cons.Iterator() {
			payloads = append(payloads, message.Payload())
		}
		assert.Equal(t, []any{"hi", "hello"}, payloads)

		// the iterator drained the buffer
		assert.Empty(t, cons.Iterator())
	})
	t.Run("With Broadcast", func(t *testing.T) {
		broker := New()
		t.Cleanup(broker.Close)

		cons := broker.AddSubscriber()
		broker.Subscribe(cons, "t1")
		broker.Subscribe(cons, "t2")

		broker.Broadcast("hi", []string{"t1", "t2"})

		var topics []string
		for message := range cons.Iterator() {
			topics = append(topics, message.Topic())
		}
		assert.Equal(t, []string{"t1", "t2"}, topics)
	})
	t.Run("With Close", func(t *testing.T) {
		broker := New()
		cons := broker.AddSubscriber()
		broker.Subscribe(cons, "t1")
		broker.Close()

		assert.False(t, cons.Active())
		assert.Zero(t, broker.SubscribersCount("t1"))
		broker.Publish("t1", "dropped")
		assert.Empty(t, cons.Iterator())
	})
}
