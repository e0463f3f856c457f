package notifysvc

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/kacchan-writer/letus-watcher/core"
)

// lineService pushes deadline alerts to the LINE Notify webhook. The bearer
// token is resolved per delivery: the configured LINE_NOTIFY_TOKEN first,
// then the vault. With no token at all the message goes to `out` instead,
// so an unconfigured setup still surfaces the alert.
type lineService struct {
	endpoint string
	envToken string
	vault    core.SecretStore
	logger   core.Logger
	client   *http.Client
	out      io.Writer
}

var _ core.NotifyService = (*lineService)(nil)

func NewLineService(conf *core.Config, vault core.SecretStore, logger core.Logger) *lineService {
	return &lineService{
		endpoint: conf.NotifyEndpoint,
		envToken: conf.NotifyToken,
		vault:    vault,
		logger:   logger,
		client:   &http.Client{Timeout: conf.NotifyTimeout},
		out:      os.Stdout,
	}
}

func (svc *lineService) SendDeadlineAlerts(alerts []core.Assignment) {
	msg := ComposeAlertMessage(alerts, time.Now().In(core.JST))

	token := svc.token()
	if token == "" {
		_, _ = fmt.Fprintln(svc.out, msg)
		return
	}
	if err := svc.post(token, msg); err != nil {
		// delivery failures never abort a scan; no retry either, the
		// next scan re-alerts anyway
		svc.logger.Error("delivering deadline alerts", err)
	}
}

func (svc *lineService) token() string {
	if svc.envToken != "" {
		return svc.envToken
	}
	token, err := svc.vault.Get(core.SecretLineToken)
	if err != nil && !errors.Is(err, core.ErrSecretNotFound) {
		svc.logger.Warn("reading notify token from vault", err)
	}
	return token
}

func (svc *lineService) post(token, msg string) error {
	form := url.Values{"message": {msg}}
	req, err := http.NewRequest(http.MethodPost, svc.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return core.NewDeliveryError(err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := svc.client.Do(req)
	if err != nil {
		return core.NewDeliveryError(err.Error())
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return core.NewDeliveryError(fmt.Sprintf("LINE Notify failed - status: %d - body: %s", res.StatusCode, body))
	}
	return nil
}
