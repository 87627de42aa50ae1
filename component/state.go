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

// State is the lifecycle state of a registration.
type State int32

const (
	// Unregistered is the state of a registration that is not, or no longer, part of a registry.
	Unregistered State = iota
	// Registered means the registration is known but some requirements are missing.
	Registered
	// Resolved means every requirement is resolved. The instance is not yet activated.
	Resolved
	// Activating is held while the instance Activate callback runs.
	Activating
	// Activated means the instance is live and accepts extensions.
	Activated
	// StartFailure means the instance is activated but its Start callback failed.
	StartFailure
	// Started means the instance has been started.
	Started
)

var stateNames = [...]string{
	Unregistered: "UNREGISTERED",
	Registered:   "REGISTERED",
	Resolved:     "RESOLVED",
	Activating:   "ACTIVATING",
	Activated:    "ACTIVATED",
	StartFailure: "START_FAILURE",
	Started:      "STARTED",
}

// String returns the state name
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "UNKNOWN"
	}
	return stateNames[s]
}

// IsResolved reports whether the state is Resolved or any later state.
func (s State) IsResolved() bool {
	return s >= Resolved
}

// IsLive reports whether the instance has been activated.
func (s State) IsLive() bool {
	return s >= Activated
}
