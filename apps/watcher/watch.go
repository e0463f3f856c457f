package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/kacchan-writer/letus-watcher/core"
	"github.com/kacchan-writer/letus-watcher/core/scan"
)

// maxAuthFailures bounds how often the watch loop re-attempts a rejected
// login before stopping, so a wrong password does not hammer the login
// endpoint all night.
const maxAuthFailures = 3

type scanRunner interface {
	Scan(ctx context.Context, window time.Duration) (*scan.Report, error)
}

// watch runs one scan per interval until the context is canceled. Strict
// request-response cadence: no two scans ever overlap.
func watch(ctx context.Context, scanner scanRunner, interval, window time.Duration, quiet bool, logger core.Logger, out io.Writer) error {
	authFailures := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		rpt, err := scanner.Scan(ctx, window)
		switch {
		case err == nil:
			authFailures = 0
			reportScan(rpt, quiet, out)
		case core.IsConfiguration(err):
			// retrying cannot fix missing credentials
			return err
		case core.IsAuthentication(err):
			authFailures++
			if authFailures >= maxAuthFailures {
				return errors.Wrapf(err, "%d consecutive authentication failures", authFailures)
			}
			logger.Error("scan failed", err)
		case ctx.Err() != nil:
			return nil // interrupted mid-scan
		default:
			authFailures = 0
			logger.Error("scan failed", err) // transient; the next tick is the retry
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
	}
}

func reportScan(rpt *scan.Report, quiet bool, out io.Writer) {
	for _, entry := range rpt.Unparsed {
		fmt.Fprintf(out, "Could not read a due date from: %s\n", entry.Label)
	}
	if len(rpt.AtRisk) == 0 && !quiet {
		fmt.Fprintln(out, "No deadlines soon.")
	}
}
