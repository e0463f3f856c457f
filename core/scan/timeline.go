package scan

import (
	"github.com/pkg/errors"

	"github.com/kacchan-writer/letus-watcher/core"
)

const timelineItemSel = `[data-region="timeline-item"]`

// Extractor turns the dashboard's upcoming-activity region into assignment
// entries. It filters nothing: entries with unparseable or absent due dates
// are kept for the scanner to report.
type Extractor struct {
	conf *core.Config
}

func NewExtractor(conf *core.Config) *Extractor {
	return &Extractor{conf: conf}
}

func (x *Extractor) Extract(page core.Page) ([]core.Assignment, error) {
	if err := page.Navigate(x.conf.DashboardURL); err != nil {
		return nil, err
	}
	if err := page.WaitVisible(timelineRegionSel, x.conf.PageTimeout); err != nil {
		return nil, err
	}

	nodes, err := page.Nodes(timelineItemSel)
	if err != nil {
		return nil, errors.Wrap(err, "listing timeline items")
	}

	entries := make([]core.Assignment, 0, len(nodes))
	for _, node := range nodes {
		text, err := node.Text()
		if err != nil {
			return nil, errors.Wrap(err, "reading timeline item")
		}
		label := core.CleanString(text)

		var link string
		if href, ok, err := node.Link(); err != nil {
			return nil, errors.Wrap(err, "reading timeline item link")
		} else if ok {
			link = href
		}

		entries = append(entries, core.Assignment{
			Label: label,
			Link:  link,
			Due:   ParseDueDate(label),
		})
	}
	return entries, nil
}
