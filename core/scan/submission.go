package scan

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/kacchan-writer/letus-watcher/core"
)

// One marker per UI locale.
var submittedMarkers = []string{"提出済", "Submitted for grading"}

// Classifier decides whether an assignment's detail page shows it as
// submitted.
type Classifier struct {
	conf *core.Config
}

func NewClassifier(conf *core.Config) *Classifier {
	return &Classifier{conf: conf}
}

// IsSubmitted navigates the page to the assignment's detail link and looks
// for a submitted marker. An unreachable link is a navigation failure, never
// a silent "not submitted".
func (c *Classifier) IsSubmitted(page core.Page, link string) (bool, error) {
	if err := page.Navigate(link); err != nil {
		return false, err
	}
	if err := page.WaitReady(c.conf.PageTimeout); err != nil {
		return false, err
	}
	html, err := page.HTML()
	if err != nil {
		return false, errors.Wrap(err, "reading assignment page")
	}
	for _, marker := range submittedMarkers {
		if strings.Contains(html, marker) {
			return true, nil
		}
	}
	return false, nil
}
