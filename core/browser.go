package core

import (
	"context"
	"time"
)

type (
	// Browser owns the headless browsing context. One Page is created per
	// scan and navigated sequentially; the handle is not safe for
	// concurrent navigation.
	Browser interface {
		NewPage(ctx context.Context) (Page, error)
		Close() error
	}

	// Page is one navigable tab. Bounded waits fail with a TimeoutError
	// instead of hanging; navigation failures surface as NavigationError.
	Page interface {
		Navigate(url string) error
		// WaitSettled blocks until no network activity is pending.
		WaitSettled(timeout time.Duration) error
		// WaitReady blocks until the DOM has finished loading; a lighter
		// readiness bar than WaitSettled.
		WaitReady(timeout time.Duration) error
		WaitVisible(selector string, timeout time.Duration) error
		Has(selector string) (bool, error)
		HTML() (string, error)
		Fill(selector, value string) error
		// ClickMatch clicks the first element matching selector whose text
		// matches the given pattern.
		ClickMatch(selector, pattern string) error
		PressEnter() error
		Nodes(selector string) ([]Node, error)
		Close() error
	}

	// Node is one element within a page.
	Node interface {
		Text() (string, error)
		// Link returns the href of the node's first anchor;
		// ok is false when the node has none.
		Link() (href string, ok bool, err error)
	}
)
