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
	"fmt"
	"slices"

	gerrors "github.com/tochemey/compkit/errors"
)

// ContributionLoader turns an extension payload into the contributions
// handed to the target component.
type ContributionLoader func(extension *Extension) ([]any, error)

// ExtensionPoint is a named slot of a component accepting extensions.
type ExtensionPoint struct {
	name   string
	loader ContributionLoader
}

// NewExtensionPoint creates an ExtensionPoint. A nil loader hands the
// payload over as the only contribution.
func NewExtensionPoint(name string, loader ContributionLoader) *ExtensionPoint {
	return &ExtensionPoint{name: name, loader: loader}
}

// Name returns the extension point name
func (p *ExtensionPoint) Name() string {
	return p.name
}

// Load fills the extension contributions using the point loader.
func (p *ExtensionPoint) Load(extension *Extension) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = gerrors.NewErrContributionLoadFailure(p.name, gerrors.Recovered(r))
		}
	}()

	if p.loader == nil {
		if extension.payload != nil {
			extension.contributions = []any{extension.payload}
		}
		return nil
	}

	contributions, err := p.loader(extension)
	if err != nil {
		return gerrors.NewErrContributionLoadFailure(p.name, err)
	}
	extension.contributions = contributions
	return nil
}

// Extension is a contribution aimed at the extension point of a target component.
type Extension struct {
	target        Name
	point         string
	payload       any
	contributions []any
	declarer      Name
}

// NewExtension creates an Extension targeting the given component extension point.
func NewExtension(target Name, point string, payload any) *Extension {
	return &Extension{
		target:  target,
		point:   point,
		payload: payload,
	}
}

// Target returns the name of the target component
func (e *Extension) Target() Name {
	return e.target
}

// Point returns the target extension point name
func (e *Extension) Point() string {
	return e.point
}

// Payload returns the raw payload
func (e *Extension) Payload() any {
	return e.payload
}

// Contributions returns the loaded contributions.
func (e *Extension) Contributions() []any {
	return slices.Clone(e.contributions)
}

// Declarer returns the name of the component declaring the extension.
// It is empty for extensions registered directly on the container.
func (e *Extension) Declarer() Name {
	return e.declarer
}

// WithDeclarer sets the declaring component and returns the extension.
func (e *Extension) WithDeclarer(declarer Name) *Extension {
	e.declarer = declarer
	return e
}

// String returns a readable form of the extension
func (e *Extension) String() string {
	if e.declarer == "" {
		return fmt.Sprintf("%s#%s", e.target, e.point)
	}
	return fmt.Sprintf("%s#%s (declared by %s)", e.target, e.point, e.declarer)
}
