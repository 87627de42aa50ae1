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

package component

// EventKind identifies a lifecycle event.
type EventKind int

const (
	EventRegistered EventKind = iota
	EventResolved
	EventActivating
	EventActivated
	EventStarted
	EventStartFailure
	EventStopped
	EventDeactivated
	EventUnresolved
	EventUnregistered
	EventExtensionRegistered
	EventExtensionPending
	EventExtensionUnregistered
)

var eventNames = [...]string{
	EventRegistered:            "component.registered",
	EventResolved:              "component.resolved",
	EventActivating:            "component.activating",
	EventActivated:             "component.activated",
	EventStarted:               "component.started",
	EventStartFailure:          "component.start_failure",
	EventStopped:               "component.stopped",
	EventDeactivated:           "component.deactivated",
	EventUnresolved:            "component.unresolved",
	EventUnregistered:          "component.unregistered",
	EventExtensionRegistered:   "extension.registered",
	EventExtensionPending:      "extension.pending",
	EventExtensionUnregistered: "extension.unregistered",
}

// String returns the event kind name, also used as the event topic.
func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[k]
}

// EventKinds returns every event kind.
func EventKinds() []EventKind {
	kinds := make([]EventKind, len(eventNames))
	for i := range eventNames {
		kinds[i] = EventKind(i)
	}
	return kinds
}

// Event describes a lifecycle transition of a component or an extension.
type Event struct {
	Kind      EventKind
	Component Name
	Extension *Extension
	Err       error
}

// NewEvent creates a component Event.
func NewEvent(kind EventKind, name Name) *Event {
	return &Event{Kind: kind, Component: name}
}

// NewExtensionEvent creates an extension Event.
func NewExtensionEvent(kind EventKind, extension *Extension) *Event {
	return &Event{Kind: kind, Component: extension.Target(), Extension: extension}
}
