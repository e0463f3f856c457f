package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kacchan-writer/letus-watcher/core"
	"github.com/kacchan-writer/letus-watcher/core/scan"
	browsersvc "github.com/kacchan-writer/letus-watcher/services/browser"
	logsvc "github.com/kacchan-writer/letus-watcher/services/logger"
	notifysvc "github.com/kacchan-writer/letus-watcher/services/notify"
	secretstore "github.com/kacchan-writer/letus-watcher/storage/secrets"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "WATCHER : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")

	opts, err := parseArgs(os.Args)
	if err != nil {
		os.Exit(2) // flag package already printed usage
	}
	validate, trans := newValidator()
	if err = opts.validate(validate, trans); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	vault := secretstore.New(conf)

	// setup commands short-circuit all scanning
	switch {
	case opts.Configure:
		if err = configure(vault, os.Stdin, os.Stdout); err != nil {
			logger.Fatal(fmt.Sprintf("configuring: %v", err), err)
		}
		return
	case opts.ClearCreds:
		if err = clearCredentials(vault); err != nil {
			logger.Fatal(fmt.Sprintf("clearing credentials: %v", err), err)
		}
		fmt.Println("Credentials cleared.")
		return
	}

	if err = run(conf, logger, vault, opts); err != nil {
		logger.Error(fmt.Sprintf("watcher stopped: %v", err), err)
		os.Exit(1)
	}
}

func run(conf *core.Config, logger core.Logger, vault core.SecretStore, opts *options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	browser, err := browsersvc.New(conf)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := browser.Close(); cerr != nil {
			logger.Warn("closing browser", cerr)
		}
	}()

	var notifier core.NotifyService
	if conf.Debug {
		notifier = notifysvc.NewConsoleService()
	} else {
		notifier = notifysvc.NewLineService(conf, vault, logger)
	}
	scanner := scan.NewScanner(conf, logger, browser, vault, notifier)

	window := time.Duration(opts.DueWithin) * time.Hour

	if opts.WatchEvery > 0 {
		interval := time.Duration(opts.WatchEvery) * time.Minute
		fmt.Printf("Watching LETUS every %d min... (Ctrl+C to stop)\n", opts.WatchEvery)
		if err = watch(ctx, scanner, interval, window, opts.Quiet, logger, os.Stdout); err != nil {
			return err
		}
		fmt.Println("Stopped.")
		return nil
	}

	rpt, err := scanner.Scan(ctx, window)
	if err != nil {
		return err
	}
	reportScan(rpt, opts.Quiet, os.Stdout)
	return nil
}
