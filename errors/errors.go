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

package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidName is returned when a component name is empty or contains characters
	// outside of [a-zA-Z0-9_.:/-]. A valid name must start with an alphanumeric character.
	ErrInvalidName = errors.New("invalid component name")

	// ErrInvalidRegistration is returned when a registration is structurally invalid.
	ErrInvalidRegistration = errors.New("invalid registration")

	// ErrDuplicateComponent is returned when a component name is already registered.
	ErrDuplicateComponent = errors.New("duplicate component name")

	// ErrDuplicateAlias is returned when an alias collides with a live name or alias.
	ErrDuplicateAlias = errors.New("duplicate component alias")

	// ErrBlacklisted is returned when a registration targets a blacklisted name.
	ErrBlacklisted = errors.New("component is blacklisted")

	// ErrComponentNotFound is returned when a component cannot be found.
	ErrComponentNotFound = errors.New("component not found")

	// ErrAlreadyResolved indicates an attempt to resolve a component twice.
	ErrAlreadyResolved = errors.New("component already resolved")

	// ErrActivationFailure is returned when a component fails to activate.
	ErrActivationFailure = errors.New("component activation failed")

	// ErrDeactivationFailure is returned when a component fails to deactivate.
	ErrDeactivationFailure = errors.New("component deactivation failed")

	// ErrStartFailure is returned when a component fails to start.
	ErrStartFailure = errors.New("component start failed")

	// ErrStopFailure is returned when a component fails to stop.
	ErrStopFailure = errors.New("component stop failed")

	// ErrUnregisterFailure is returned when a component cannot be unregistered cleanly.
	ErrUnregisterFailure = errors.New("component unregistration failed")

	// ErrExtensionFailure is returned when an extension cannot be applied to its target.
	ErrExtensionFailure = errors.New("extension registration failed")

	// ErrContributionLoadFailure is returned when an extension payload cannot be loaded.
	ErrContributionLoadFailure = errors.New("failed to load contributions")

	// ErrServiceAlreadyProvided is returned when a service is claimed by a second provider.
	ErrServiceAlreadyProvided = errors.New("service already provided")

	// ErrServiceNotFound is returned when no resolved component provides the service.
	ErrServiceNotFound = errors.New("service not found")
)

// NewErrInvalidName formats an ErrInvalidName with the given name.
func NewErrInvalidName(name string) error {
	return fmt.Errorf("name=(%s) %w", name, ErrInvalidName)
}

// NewErrInvalidRegistration wraps the reason with ErrInvalidRegistration.
func NewErrInvalidRegistration(err error) error {
	return errors.Join(ErrInvalidRegistration, err)
}

// NewErrDuplicateComponent formats an ErrDuplicateComponent for the given name.
func NewErrDuplicateComponent(name string) error {
	return fmt.Errorf("component=(%s) %w", name, ErrDuplicateComponent)
}

// NewErrDuplicateAlias formats an ErrDuplicateAlias for the given alias and owner.
func NewErrDuplicateAlias(alias, owner string) error {
	return fmt.Errorf("alias=(%s) of component=(%s) %w", alias, owner, ErrDuplicateAlias)
}

// NewErrBlacklisted formats an ErrBlacklisted for the given name.
func NewErrBlacklisted(name string) error {
	return fmt.Errorf("component=(%s) %w", name, ErrBlacklisted)
}

// NewErrComponentNotFound formats an ErrComponentNotFound for the given name.
func NewErrComponentNotFound(name string) error {
	return fmt.Errorf("component=(%s) %w", name, ErrComponentNotFound)
}

// NewErrActivationFailure wraps the cause with ErrActivationFailure.
func NewErrActivationFailure(name string, err error) error {
	return fmt.Errorf("component=(%s) %w", name, errors.Join(ErrActivationFailure, err))
}

// NewErrDeactivationFailure wraps the cause with ErrDeactivationFailure.
func NewErrDeactivationFailure(name string, err error) error {
	return fmt.Errorf("component=(%s) %w", name, errors.Join(ErrDeactivationFailure, err))
}

// NewErrStartFailure wraps the cause with ErrStartFailure.
func NewErrStartFailure(name string, err error) error {
	return fmt.Errorf("component=(%s) %w", name, errors.Join(ErrStartFailure, err))
}

// NewErrStopFailure wraps the cause with ErrStopFailure.
func NewErrStopFailure(name string, err error) error {
	return fmt.Errorf("component=(%s) %w", name, errors.Join(ErrStopFailure, err))
}

// NewErrUnregisterFailure wraps the cause with ErrUnregisterFailure.
func NewErrUnregisterFailure(name string, err error) error {
	return fmt.Errorf("component=(%s) %w", name, errors.Join(ErrUnregisterFailure, err))
}

// NewErrExtensionFailure wraps the cause with ErrExtensionFailure.
func NewErrExtensionFailure(target, point string, err error) error {
	return fmt.Errorf("extension point=(%s) of component=(%s) %w", point, target, errors.Join(ErrExtensionFailure, err))
}

// NewErrContributionLoadFailure wraps the cause with ErrContributionLoadFailure.
func NewErrContributionLoadFailure(point string, err error) error {
	return fmt.Errorf("extension point=(%s) %w", point, errors.Join(ErrContributionLoadFailure, err))
}

// NewErrServiceAlreadyProvided formats an ErrServiceAlreadyProvided.
func NewErrServiceAlreadyProvided(service, provider, claimant string) error {
	return fmt.Errorf("service=(%s) provider=(%s) claimant=(%s) %w", service, provider, claimant, ErrServiceAlreadyProvided)
}

// NewErrServiceNotFound formats an ErrServiceNotFound for the given service.
func NewErrServiceNotFound(service string) error {
	return fmt.Errorf("service=(%s) %w", service, ErrServiceNotFound)
}

// PanicError defines the panic error
// wrapping the underlying error
type PanicError struct {
	err error
}

// enforce compilation error
var _ error = (*PanicError)(nil)

// NewPanicError creates an instance of PanicError
func NewPanicError(err error) *PanicError {
	return &PanicError{err}
}

// Error implements the standard error interface
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.err)
}

func (e *PanicError) Unwrap() error {
	return e.err
}

// InvariantError signals a broken internal invariant of the dependency graph.
// It is raised with panic and must never be swallowed.
type InvariantError struct {
	err error
}

var _ error = (*InvariantError)(nil)

// NewInvariantError returns an instance of InvariantError
func NewInvariantError(err error) *InvariantError {
	return &InvariantError{
		err: fmt.Errorf("invariant violation: %w", err),
	}
}

// Error implements the standard error interface
func (e *InvariantError) Error() string {
	return e.err.Error()
}

func (e *InvariantError) Unwrap() error {
	return e.err
}

// Recovered converts a recovered panic value into an error.
// Values that are already errors are wrapped in a PanicError.
func Recovered(r any) error {
	if err, ok := r.(error); ok {
		return NewPanicError(err)
	}
	return NewPanicError(fmt.Errorf("%v", r))
}
