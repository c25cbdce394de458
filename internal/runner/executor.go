// Package runner spawns the process an invoker built and captures everything
// the invoker needs to parse: stdout, stderr, exit code and wall-clock
// duration. Exactly one final capture is delivered per invocation, even when
// the run is killed by timeout.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

type Config struct {
	Command    string
	Args       []string
	Dir        string        // working directory, must exist
	Stdin      string        // prompt text when the invoker uses stdin; empty otherwise
	StdoutFile string        // optional transcript tee target
	StderrFile string        // optional transcript tee target
	Timeout    time.Duration // zero means no timeout
	Verbose    bool
}

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
	StatusTimeout Status = "timeout"
)

type Result struct {
	Command  string
	Status   Status
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Execute runs the command to completion and returns the captured output.
// The command is an argument vector, never a shell string. Only setup
// problems (missing working directory, unwritable transcript file, binary
// that cannot start) return an error; anything the process itself does is
// reported through the Result.
func Execute(config *Config) (*Result, error) {
	if config.Dir != "" {
		info, err := os.Stat(config.Dir)
		if err != nil {
			return nil, fmt.Errorf("working directory %s: %w", config.Dir, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("working directory %s is not a directory", config.Dir)
		}
	}

	ctx := context.Background()
	if config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, config.Command, config.Args...)
	cmd.Dir = config.Dir

	if config.Stdin != "" {
		cmd.Stdin = strings.NewReader(config.Stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if config.StdoutFile != "" {
		f, err := os.Create(config.StdoutFile)
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout transcript %s: %w", config.StdoutFile, err)
		}
		defer func() { _ = f.Close() }()
		cmd.Stdout = io.MultiWriter(&stdout, f)
	}
	if config.StderrFile != "" {
		f, err := os.Create(config.StderrFile)
		if err != nil {
			return nil, fmt.Errorf("failed to create stderr transcript %s: %w", config.StderrFile, err)
		}
		defer func() { _ = f.Close() }()
		cmd.Stderr = io.MultiWriter(&stderr, f)
	}
	if config.Verbose {
		cmd.Stderr = io.MultiWriter(cmd.Stderr, os.Stderr)
	}

	startTime := time.Now()
	err := cmd.Run()
	duration := time.Since(startTime)

	exitCode := 0
	status := StatusSuccess
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			status = StatusTimeout
			exitCode = -1
		} else if exitError, ok := err.(*exec.ExitError); ok {
			status = StatusFailure
			if ws, ok := exitError.Sys().(syscall.WaitStatus); ok {
				exitCode = ws.ExitStatus()
			} else {
				exitCode = 1
			}
		} else {
			return nil, fmt.Errorf("failed to start command: %w", err)
		}
	}

	return &Result{
		Command:  config.Command,
		Status:   status,
		ExitCode: exitCode,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: duration,
	}, nil
}
