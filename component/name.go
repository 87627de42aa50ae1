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

import (
	"regexp"
	"strings"

	gerrors "github.com/tochemey/compkit/errors"
	"github.com/tochemey/compkit/internal/validation"
)

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.:/\-]*$`)

// Name is the canonical identity of a component.
// Names may carry a type prefix separated by a colon, as in "service:search".
type Name string

// ParseName validates the given text and returns it as a Name.
func ParseName(text string) (Name, error) {
	err := validation.New(validation.FailFast()).
		AddAssertion(len(text) <= 255, "component name is too long").
		AddValidator(validation.NewPatternValidator(namePattern, text, gerrors.NewErrInvalidName(text))).
		Validate()
	if err != nil {
		return "", err
	}
	return Name(text), nil
}

// MustParseName is like ParseName but panics when the text is invalid.
func MustParseName(text string) Name {
	name, err := ParseName(text)
	if err != nil {
		panic(err)
	}
	return name
}

// String returns the name text
func (n Name) String() string {
	return string(n)
}

// Type returns the prefix before the first colon, or an empty string.
func (n Name) Type() string {
	if kind, _, ok := strings.Cut(string(n), ":"); ok {
		return kind
	}
	return ""
}

// Local returns the part after the first colon, or the whole name.
func (n Name) Local() string {
	if _, local, ok := strings.Cut(string(n), ":"); ok {
		return local
	}
	return string(n)
}

// Compare orders names by their canonical text.
func (n Name) Compare(other Name) int {
	return strings.Compare(string(n), string(other))
}

// Validate checks the name against the naming rules.
func (n Name) Validate() error {
	_, err := ParseName(string(n))
	return err
}
