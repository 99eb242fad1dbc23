// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package viewer launches an external PDF viewer detached from the caller.
package viewer

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

// System selects the platform's default opener (open or xdg-open).
const System = "system"

// ErrUnsupportedPlatform is returned when no opener is known for the GOOS.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// executor abstracts process launching for testing.
type executor interface {
	LookPath(file string) (string, error)
	Start(name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec. Start does not
// wait for the child so the viewer outlives this process.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// Opener opens PDFs with a configured viewer.
type Opener struct {
	reader string
	goos   string
	exec   executor
}

// New returns an Opener for the named reader. An empty name means System.
func New(reader string) *Opener {
	return newOpener(reader, runtime.GOOS, &osExecutor{})
}

func newOpener(reader, goos string, exec executor) *Opener {
	if reader == "" {
		reader = System
	}
	return &Opener{reader: reader, goos: goos, exec: exec}
}

// Open launches the viewer on path and returns once the process has started.
func (o *Opener) Open(path string) error {
	name, args, err := o.command(path)
	if err != nil {
		return err
	}
	if _, err := o.exec.LookPath(name); err != nil {
		return fmt.Errorf("viewer %s not found: %w", name, err)
	}
	if err := o.exec.Start(name, args...); err != nil {
		return fmt.Errorf("starting %s: %w", name, err)
	}
	return nil
}

// command returns the program and arguments used to open path.
func (o *Opener) command(path string) (string, []string, error) {
	switch o.goos {
	case "darwin":
		switch o.reader {
		case "skim":
			return "open", []string{"-a", "Skim", path}, nil
		case "preview":
			return "open", []string{"-a", "Preview", path}, nil
		case System:
			return "open", []string{path}, nil
		}
	case "linux", "freebsd", "openbsd", "netbsd":
		switch o.reader {
		case "zathura", "evince", "okular":
			return o.reader, []string{path}, nil
		case System:
			return "xdg-open", []string{path}, nil
		}
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, o.goos)
	}
	// Any other name is treated as a program on PATH.
	return o.reader, []string{path}, nil
}
