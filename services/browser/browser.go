package browsersvc

import (
	"context"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/pkg/errors"

	"github.com/kacchan-writer/letus-watcher/core"
)

// Service drives a headless Chromium through go-rod.
type Service struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

var _ core.Browser = (*Service)(nil)

func New(conf *core.Config) (*Service, error) {
	l := launcher.New().Headless(!conf.Debug)
	u, err := l.Launch()
	if err != nil {
		return nil, errors.Wrap(err, "launching browser")
	}
	b := rod.New().ControlURL(u)
	if err = b.Connect(); err != nil {
		l.Cleanup()
		return nil, errors.Wrap(err, "connecting to browser")
	}
	return &Service{browser: b, launcher: l}, nil
}

func (s *Service) NewPage(ctx context.Context) (core.Page, error) {
	p, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, errors.Wrap(err, "opening page")
	}
	return &page{p: p.Context(ctx)}, nil
}

func (s *Service) Close() error {
	err := s.browser.Close()
	s.launcher.Cleanup()
	return errors.Wrap(err, "closing browser")
}

type page struct {
	p *rod.Page
}

var _ core.Page = (*page)(nil)

func (pg *page) Navigate(url string) error {
	if err := pg.p.Navigate(url); err != nil {
		return core.NewNavigationError(url, err)
	}
	if err := pg.p.WaitLoad(); err != nil {
		return core.NewNavigationError(url, err)
	}
	return nil
}

func (pg *page) WaitSettled(timeout time.Duration) error {
	if err := pg.p.WaitIdle(timeout); err != nil {
		return mapWaitErr(err, "page to settle")
	}
	return nil
}

func (pg *page) WaitReady(timeout time.Duration) error {
	if err := pg.p.Timeout(timeout).WaitLoad(); err != nil {
		return mapWaitErr(err, "page to load")
	}
	return nil
}

func (pg *page) WaitVisible(selector string, timeout time.Duration) error {
	if _, err := pg.p.Timeout(timeout).Element(selector); err != nil {
		return mapWaitErr(err, selector)
	}
	return nil
}

func (pg *page) Has(selector string) (bool, error) {
	ok, _, err := pg.p.Has(selector)
	return ok, errors.Wrapf(err, "probing %q", selector)
}

func (pg *page) HTML() (string, error) {
	html, err := pg.p.HTML()
	return html, errors.Wrap(err, "reading page content")
}

func (pg *page) Fill(selector, value string) error {
	el, err := pg.p.Element(selector)
	if err != nil {
		return errors.Wrapf(err, "finding %q", selector)
	}
	return errors.Wrapf(el.Input(value), "filling %q", selector)
}

func (pg *page) ClickMatch(selector, pattern string) error {
	el, err := pg.p.ElementR(selector, pattern)
	if err != nil {
		return errors.Wrapf(err, "finding %q by %q", selector, pattern)
	}
	return errors.Wrapf(el.Click(proto.InputMouseButtonLeft, 1), "clicking %q", pattern)
}

func (pg *page) PressEnter() error {
	return errors.Wrap(pg.p.Keyboard.Type(input.Enter), "pressing enter")
}

func (pg *page) Nodes(selector string) ([]core.Node, error) {
	els, err := pg.p.Elements(selector)
	if err != nil {
		return nil, errors.Wrapf(err, "listing %q", selector)
	}
	nodes := make([]core.Node, 0, len(els))
	for _, el := range els {
		nodes = append(nodes, &node{el: el})
	}
	return nodes, nil
}

func (pg *page) Close() error {
	return errors.Wrap(pg.p.Close(), "closing page")
}

type node struct {
	el *rod.Element
}

var _ core.Node = (*node)(nil)

func (n *node) Text() (string, error) {
	text, err := n.el.Text()
	return text, errors.Wrap(err, "reading element text")
}

func (n *node) Link() (string, bool, error) {
	ok, a, err := n.el.Has("a")
	if err != nil {
		return "", false, errors.Wrap(err, "probing element anchor")
	}
	if !ok {
		return "", false, nil
	}
	href, err := a.Attribute("href")
	if err != nil {
		return "", false, errors.Wrap(err, "reading anchor href")
	}
	if href == nil {
		return "", false, nil
	}
	return *href, true, nil
}

func mapWaitErr(err error, target string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return core.NewTimeoutError(target)
	}
	return errors.Wrap(err, "waiting for "+target)
}
