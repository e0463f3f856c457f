package scan

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/kacchan-writer/letus-watcher/core"
)

const (
	timelineRegionSel = `[data-region="timeline"]`

	// LETUS has shipped both SAML-style and plain field names.
	usernameFieldSel = `input[name="j_username"], input[name="username"]`
	passwordFieldSel = `input[name="j_password"], input[name="password"]`
	loginLinkSel     = `a, button`

	loginFailureMarker = "ログインエラー"
)

// Session obtains one usable, authenticated browsing context against the
// dashboard.
type Session struct {
	conf   *core.Config
	vault  core.SecretStore
	logger core.Logger
}

func NewSession(conf *core.Config, vault core.SecretStore, logger core.Logger) *Session {
	return &Session{conf: conf, vault: vault, logger: logger}
}

// Establish opens a page on the dashboard, logging in if the cached browser
// session has expired. On success the caller owns the returned page and must
// close it; on failure no handle escapes.
func (s *Session) Establish(ctx context.Context, browser core.Browser) (core.Page, error) {
	page, err := browser.NewPage(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "opening page")
	}

	if err = s.login(page); err != nil {
		_ = page.Close()
		return nil, err
	}
	return page, nil
}

func (s *Session) login(page core.Page) error {
	if err := page.Navigate(s.conf.DashboardURL); err != nil {
		return err
	}
	if ok, err := page.Has(timelineRegionSel); err != nil {
		return errors.Wrap(err, "probing dashboard")
	} else if ok {
		s.logger.Debug("reusing cached session")
		return nil
	}

	if err := page.ClickMatch(loginLinkSel, s.conf.LoginLinkPattern); err != nil {
		return err
	}
	if err := page.WaitSettled(s.conf.SettleTimeout); err != nil {
		return err
	}

	username, password, err := s.credentials()
	if err != nil {
		return err
	}
	if err = page.Fill(usernameFieldSel, username); err != nil {
		return err
	}
	if err = page.Fill(passwordFieldSel, password); err != nil {
		return err
	}
	if err = page.PressEnter(); err != nil {
		return err
	}
	if err = page.WaitSettled(s.conf.SettleTimeout); err != nil {
		return err
	}

	html, err := page.HTML()
	if err != nil {
		return errors.Wrap(err, "reading login result")
	}
	if strings.Contains(html, loginFailureMarker) {
		return core.NewAuthenticationError("login failed - check credentials/MFA")
	}
	return nil
}

func (s *Session) credentials() (username, password string, err error) {
	username, err = s.secret(core.SecretUsername)
	if err != nil {
		return "", "", err
	}
	password, err = s.secret(core.SecretPassword)
	if err != nil {
		return "", "", err
	}
	return username, password, nil
}

func (s *Session) secret(key string) (string, error) {
	val, err := s.vault.Get(key)
	if err != nil && !errors.Is(err, core.ErrSecretNotFound) {
		return "", errors.Wrapf(err, "reading %s from vault", key)
	}
	if val == "" {
		return "", core.NewConfigurationError("credentials not stored; run with --configure first")
	}
	return val, nil
}
