package host

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/google/shlex"
)

// ExecRunner starts processes on the local host with os/exec.
type ExecRunner struct{}

// Start launches command with the rendered argument string split into argv.
func (ExecRunner) Start(ctx context.Context, command string, settings ProcessSettings) (Process, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil, errors.New("empty command")
	}

	argv, err := shlex.Split(settings.Arguments.Render())
	if err != nil {
		return nil, fmt.Errorf("failed to split arguments: %w", err)
	}

	cmd := exec.CommandContext(ctx, command, argv...)
	cmd.Dir = settings.WorkingDirectory

	p := &execProcess{cmd: cmd}
	cmd.Stdout = teeWriter(&p.stdout, settings.Stdout)
	cmd.Stderr = teeWriter(&p.stderr, settings.Stderr)

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return p, nil
}

func teeWriter(buf *lockedBuffer, mirror io.Writer) io.Writer {
	if mirror == nil {
		return buf
	}
	return io.MultiWriter(buf, mirror)
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type execProcess struct {
	cmd    *exec.Cmd
	stdout lockedBuffer
	stderr lockedBuffer

	once    sync.Once
	waitErr error
	exited  bool
	code    int
}

func (p *execProcess) WaitForExit() error {
	p.once.Do(func() {
		err := p.cmd.Wait()
		p.exited = true
		if p.cmd.ProcessState != nil {
			p.code = p.cmd.ProcessState.ExitCode()
		}
		var exitErr *exec.ExitError
		if err != nil && !errors.As(err, &exitErr) {
			p.waitErr = err
		}
	})
	return p.waitErr
}

func (p *execProcess) ExitCode() int {
	if !p.exited {
		return -1
	}
	return p.code
}

func (p *execProcess) Exited() bool { return p.exited }

func (p *execProcess) Stdout() string { return p.stdout.String() }

func (p *execProcess) Stderr() string { return p.stderr.String() }
