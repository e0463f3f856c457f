package notifysvc

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/kacchan-writer/letus-watcher/core"
)

// consoleService writes the alert summary to the operator console. Used in
// debug runs where hitting the real webhook is unwanted.
type consoleService struct {
	out io.Writer
}

var _ core.NotifyService = (*consoleService)(nil)

func NewConsoleService() *consoleService {
	return &consoleService{out: os.Stdout}
}

func (svc *consoleService) SendDeadlineAlerts(alerts []core.Assignment) {
	_, _ = fmt.Fprintln(svc.out, ComposeAlertMessage(alerts, time.Now().In(core.JST)))
}

// Mock records deliveries instead of sending them.
type Mock struct {
	mu    sync.Mutex
	Calls [][]core.Assignment
}

var _ core.NotifyService = (*Mock)(nil)

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SendDeadlineAlerts(alerts []core.Assignment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, alerts)
}
