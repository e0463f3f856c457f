package scan

import (
	"context"
	"time"

	"github.com/kacchan-writer/letus-watcher/core"
)

var nowFunc = time.Now // mockable

type (
	// Report is the outcome of one scan.
	Report struct {
		// AtRisk holds unsubmitted assignments due within the window.
		AtRisk []core.Assignment
		// Unparsed holds entries whose due text matched no known shape.
		// They are never eligible for the window test, but hiding them
		// would hide real deadlines, so they are surfaced here.
		Unparsed []core.Assignment
	}

	// Scanner orchestrates one complete pass: session establishment,
	// timeline extraction, window filtering, submission classification and
	// a single notification.
	Scanner struct {
		conf       *core.Config
		logger     core.Logger
		browser    core.Browser
		session    *Session
		extractor  *Extractor
		classifier *Classifier
		notifier   core.NotifyService
	}
)

func NewScanner(
	conf *core.Config,
	logger core.Logger,
	browser core.Browser,
	vault core.SecretStore,
	notifier core.NotifyService,
) *Scanner {
	return &Scanner{
		conf:       conf,
		logger:     logger,
		browser:    browser,
		session:    NewSession(conf, vault, logger),
		extractor:  NewExtractor(conf),
		classifier: NewClassifier(conf),
		notifier:   notifier,
	}
}

// Scan checks every timeline entry due within the window and reports the
// unsubmitted ones, notifying once when any are found. The page handle is
// owned by this call and released exactly once, on every outcome.
//
// Classification is sequential: the single page handle cannot be navigated
// to two URLs at once.
func (s *Scanner) Scan(ctx context.Context, window time.Duration) (_ *Report, err error) {
	page, err := s.session.Establish(ctx, s.browser)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			s.logger.Warn("closing page", cerr)
		}
	}()

	entries, err := s.extractor.Extract(page)
	if err != nil {
		return nil, err
	}

	now := nowFunc().In(core.JST)
	threshold := now.Add(window)

	rpt := &Report{}
	for _, entry := range entries {
		if !entry.Due.Valid {
			rpt.Unparsed = append(rpt.Unparsed, entry)
			continue
		}
		if entry.Due.Time.After(threshold) {
			continue
		}
		if entry.Link == "" {
			// cannot verify submission; too risky to skip
			s.logger.Warn("timeline item has no detail link; treating as unsubmitted", entry)
			rpt.AtRisk = append(rpt.AtRisk, entry)
			continue
		}
		submitted, err := s.classifier.IsSubmitted(page, entry.Link)
		if err != nil {
			return nil, err
		}
		if !submitted {
			rpt.AtRisk = append(rpt.AtRisk, entry)
		}
	}

	if len(rpt.AtRisk) > 0 {
		s.notifier.SendDeadlineAlerts(rpt.AtRisk)
	}
	return rpt, nil
}
