package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// ConfigurationError means required credentials or settings are missing;
// the operator must run setup before a scan can succeed.
type ConfigurationError struct {
	msg string
}

func NewConfigurationError(msg string) error {
	return &ConfigurationError{msg: msg}
}

func (e *ConfigurationError) Error() string { return e.msg }

func IsConfiguration(err error) bool {
	_, ok := errors.Cause(err).(*ConfigurationError)
	return ok
}

// AuthenticationError means the dashboard rejected the login
// (bad credentials or an unhandled MFA challenge).
type AuthenticationError struct {
	msg string
}

func NewAuthenticationError(msg string) error {
	return &AuthenticationError{msg: msg}
}

func (e *AuthenticationError) Error() string { return e.msg }

func IsAuthentication(err error) bool {
	_, ok := errors.Cause(err).(*AuthenticationError)
	return ok
}

// TimeoutError means an expected page region never appeared within the
// bounded wait. Transient; the next watch iteration is the retry.
type TimeoutError struct {
	Target string
}

func NewTimeoutError(target string) error {
	return &TimeoutError{Target: target}
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out waiting for %s", e.Target)
}

func IsTimeout(err error) bool {
	_, ok := errors.Cause(err).(*TimeoutError)
	return ok
}

// NavigationError means a target link could not be loaded.
type NavigationError struct {
	URL string
	Err error
}

func NewNavigationError(url string, err error) error {
	return &NavigationError{URL: url, Err: err}
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigating to %q: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

func IsNavigation(err error) bool {
	_, ok := errors.Cause(err).(*NavigationError)
	return ok
}

// DeliveryError means the notification transport failed. Logged and
// swallowed by the notifier; never aborts a scan.
type DeliveryError struct {
	msg string
}

func NewDeliveryError(msg string) error {
	return &DeliveryError{msg: msg}
}

func (e *DeliveryError) Error() string { return e.msg }

func IsDelivery(err error) bool {
	_, ok := errors.Cause(err).(*DeliveryError)
	return ok
}
