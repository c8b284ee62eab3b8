// Package prompt holds the overwrite-confirmation policy. Writing over an
// existing file is the one operation guarded behind operator consent, so the
// policy is injected rather than read from the terminal directly.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrDestinationExists reports a write that was refused because the target
// already exists and the policy did not approve overwriting it.
var ErrDestinationExists = errors.New("destination already exists")

// Policy decides whether an existing target file may be overwritten.
type Policy interface {
	Confirm(target string) (bool, error)
}

// AllowAll approves every overwrite. Used with --overwrite.
type AllowAll struct{}

func (AllowAll) Confirm(string) (bool, error) { return true, nil }

// DenyAll refuses every overwrite.
type DenyAll struct{}

func (DenyAll) Confirm(string) (bool, error) { return false, nil }

// Terminal asks the operator on the controlling terminal. When stdin is not
// a terminal it fails closed instead of blocking or silently approving.
type Terminal struct {
	In  *os.File  // defaults to os.Stdin
	Out io.Writer // defaults to os.Stderr
}

func (t Terminal) Confirm(target string) (bool, error) {
	in := t.In
	if in == nil {
		in = os.Stdin
	}
	out := t.Out
	if out == nil {
		out = os.Stderr
	}

	if !term.IsTerminal(int(in.Fd())) {
		return false, nil
	}

	fmt.Fprintf(out, "%s already exists, overwrite? [y/N] ", target)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// EnsureWritable checks whether path may be written under the policy. A
// missing target is always writable; an existing one needs the policy's
// approval, and refusal is ErrDestinationExists.
func EnsureWritable(p Policy, path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	ok, err := p.Confirm(path)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: %w", path, ErrDestinationExists)
	}
	return nil
}
