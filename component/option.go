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

// RegistrationOption is the interface that applies a registration option.
type RegistrationOption interface {
	// Apply sets the Option value of a registration.
	Apply(reg *Registration)
}

var _ RegistrationOption = RegistrationOptionFunc(nil)

// RegistrationOptionFunc implements the RegistrationOption interface.
type RegistrationOptionFunc func(*Registration)

func (f RegistrationOptionFunc) Apply(reg *Registration) {
	f(reg)
}

// WithAliases sets alternate names resolving to the component
func WithAliases(aliases ...Name) RegistrationOption {
	return RegistrationOptionFunc(func(reg *Registration) {
		reg.aliases = append(reg.aliases, aliases...)
	})
}

// WithRequires sets the names of the components this component depends on
func WithRequires(names ...Name) RegistrationOption {
	return RegistrationOptionFunc(func(reg *Registration) {
		reg.requires = append(reg.requires, names...)
	})
}

// WithExtensionPoints declares the extension points of the component
func WithExtensionPoints(points ...*ExtensionPoint) RegistrationOption {
	return RegistrationOptionFunc(func(reg *Registration) {
		reg.points = append(reg.points, points...)
	})
}

// WithExtensions declares extensions contributed by the component to other components.
// They are applied when the component is activated.
func WithExtensions(extensions ...*Extension) RegistrationOption {
	return RegistrationOptionFunc(func(reg *Registration) {
		for _, extension := range extensions {
			reg.extensions = append(reg.extensions, extension.WithDeclarer(reg.name))
		}
	})
}

// WithServices declares the service names the component provides
func WithServices(services ...string) RegistrationOption {
	return RegistrationOptionFunc(func(reg *Registration) {
		reg.services = append(reg.services, services...)
	})
}

// WithOrigin sets the origin token used for origin based unregistration
func WithOrigin(origin string) RegistrationOption {
	return RegistrationOptionFunc(func(reg *Registration) {
		reg.origin = origin
	})
}

// WithStartOrder sets the start order. Lower values start first.
func WithStartOrder(order int) RegistrationOption {
	return RegistrationOptionFunc(func(reg *Registration) {
		reg.startOrder = order
	})
}
