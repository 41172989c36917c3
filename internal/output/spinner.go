package output

import (
	"context"

	"github.com/charmbracelet/huh/spinner"
)

// WithSpinner runs action under a titled spinner while stdout is a
// terminal, and plain (no spinner) otherwise — registry clones and
// updates run over the network and can take long enough that a bare
// hang looks like a stuck CLI.
//
// The spinner's own Action callback can't return an error, so action
// runs in its own goroutine; the Action callback waits for its result
// (or for ctx to end) and records it for WithSpinner to return.
func WithSpinner(ctx context.Context, title string, action func() error) error {
	if !IsTTY() {
		return action()
	}

	errCh := make(chan error, 1)
	go func() { errCh <- action() }()

	var err error
	_ = spinner.New().Title(title).Action(func() {
		select {
		case <-ctx.Done():
			err = ctx.Err()
		case err = <-errCh:
		}
	}).Run()

	return err
}
