package loader

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Process is a started helper.
type Process interface {
	Pid() int
	Wait() error
}

// Launcher starts a helper without waiting for it.
type Launcher interface {
	Start(argv []string) (Process, error)
}

// ExecLauncher starts helpers as child processes sharing our stdio.
type ExecLauncher struct{}

type execProcess struct {
	cmd *exec.Cmd
}

func (p *execProcess) Pid() int { return p.cmd.Process.Pid }
func (p *execProcess) Wait() error { return p.cmd.Wait() }

// Start runs argv[0] with the remaining arguments.
func (ExecLauncher) Start(argv []string) (Process, error) {
	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &execProcess{cmd: cmd}, nil
}

type helper struct {
	name string
	proc Process
}

// Group tracks started helpers so they can be awaited together.
type Group struct {
	launcher Launcher
	logger   *zap.Logger
	started  []helper
}

// NewGroup creates an empty Group. A nil launcher means ExecLauncher.
func NewGroup(launcher Launcher, logger *zap.Logger) *Group {
	if launcher == nil {
		launcher = ExecLauncher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Group{launcher: launcher, logger: logger}
}

// Start launches a helper and records it for WaitAll.
func (g *Group) Start(name string, argv []string) error {
	proc, err := g.launcher.Start(argv)
	if err != nil {
		g.logger.Error("failed to start helper", zap.String("helper", name), zap.Strings("argv", argv), zap.Error(err))
		return fmt.Errorf("start %s: %w", name, err)
	}
	g.logger.Debug("helper started", zap.String("helper", name), zap.Int("pid", proc.Pid()), zap.Strings("argv", argv))
	g.started = append(g.started, helper{name: name, proc: proc})
	return nil
}

// Len returns the number of started helpers.
func (g *Group) Len() int {
	return len(g.started)
}

// WaitAll waits for every started helper in start order. A failing helper
// does not stop the wait for the others; all failures are combined.
func (g *Group) WaitAll() error {
	var err error
	for _, h := range g.started {
		err = multierr.Append(err, WaitAndWarn(h.name, h.proc, g.logger))
	}
	g.started = nil
	return err
}

// WaitAndWarn waits for proc and logs a warning if it did not exit cleanly.
func WaitAndWarn(name string, proc Process, logger *zap.Logger) error {
	err := proc.Wait()
	if err == nil {
		logger.Debug("helper succeeded", zap.String("helper", name))
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			logger.Warn("helper terminated by signal", zap.String("helper", name), zap.Stringer("signal", status.Signal()))
			return fmt.Errorf("%w: %s terminated by signal %s", ErrHelperFailed, name, status.Signal())
		}
		logger.Warn("helper failed", zap.String("helper", name), zap.Int("exit_code", exitErr.ExitCode()))
		return fmt.Errorf("%w: %s exited with code %d", ErrHelperFailed, name, exitErr.ExitCode())
	}

	logger.Warn("failed to wait for helper", zap.String("helper", name), zap.Error(err))
	return fmt.Errorf("%w: %s: %w", ErrHelperFailed, name, err)
}
