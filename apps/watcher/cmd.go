package main

import (
	"flag"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pkg/errors"
)

type options struct {
	Configure  bool
	ClearCreds bool
	DueWithin  int `validate:"gt=0"`
	WatchEvery int `validate:"gte=0"`
	Quiet      bool
}

func parseArgs(args []string) (*options, error) {
	fs := flag.NewFlagSet("letus-watcher", flag.ContinueOnError)
	opts := new(options)
	fs.BoolVar(&opts.Configure, "configure", false, "store credentials in the OS keyring and exit")
	fs.BoolVar(&opts.ClearCreds, "clear-credentials", false, "delete stored credentials and exit")
	fs.IntVar(&opts.DueWithin, "due-within", 48, "deadline window in hours")
	fs.IntVar(&opts.WatchEvery, "watch", 0, "continuous mode: check every `MIN` minutes (0 disables)")
	fs.BoolVar(&opts.Quiet, "quiet", false, "suppress output when no alerts")
	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}
	return opts, nil
}

func (o *options) validate(validate *validator.Validate, trans ut.Translator) error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, verr := range verrs {
		msgs = append(msgs, verr.Translate(trans))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func newValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	trans, _ := uni.GetTranslator("en")
	_ = entranslations.RegisterDefaultTranslations(validate, trans)
	return validate, trans
}
