package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// InputConfig configures a free-text prompt.
type InputConfig struct {
	Message string
	Default string
	Help    string
}

// SelectConfig configures a single-select prompt. DefaultIndex points into
// Options.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Help         string
	PageSize     int
}

// PromptDriver abstracts the terminal so render logic can be tested with a
// scripted driver.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	// Select returns the index of the chosen option.
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	Info(ctx context.Context, msg string) error
}

// DriverOption configures the survey driver.
type DriverOption func(*surveyDriver)

// WithStdio overrides the terminal files. Prompts render on out, which
// defaults to stderr so stdout stays reserved for the payload.
func WithStdio(in, out *os.File) DriverOption {
	return func(d *surveyDriver) {
		if in != nil {
			d.in = in
		}
		if out != nil {
			d.out = out
		}
	}
}

type surveyDriver struct {
	in  *os.File
	out *os.File
}

// NewSurveyDriver returns the default driver backed by survey.
func NewSurveyDriver(options ...DriverOption) PromptDriver {
	d := &surveyDriver{in: os.Stdin, out: os.Stderr}
	for _, opt := range options {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

func (d *surveyDriver) stdio() survey.AskOpt {
	return survey.WithStdio(d.in, d.out, d.out)
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	if err := survey.AskOne(prompt, &out, d.stdio()); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

// Select answers into an int so survey records the option index; labels of
// different options may be identical.
func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}
	prompt := &survey.Select{
		Message: cfg.Message,
		Options: cfg.Options,
		Help:    cfg.Help,
	}
	if cfg.PageSize > 0 {
		prompt.PageSize = cfg.PageSize
	}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.DefaultIndex
	}
	var idx int
	if err := survey.AskOne(prompt, &idx, d.stdio()); err != nil {
		return -1, translateSurveyErr(err)
	}
	return idx, nil
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
