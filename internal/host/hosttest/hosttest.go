// Package hosttest provides in-memory fakes for the host collaborators.
package hosttest

import (
	"context"
	"io"
	"sync"

	"github.com/google/shlex"
	"github.com/sammcj/xamarin-devtools/internal/host"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// WorkDir is the working directory reported by hosts built with NewHost.
const WorkDir = "/work"

// NewHost returns a Host over a memory file system with a recording runner.
func NewHost(unix bool) (*host.Host, *FakeRunner) {
	fs := afero.NewMemMapFs()
	_ = fs.MkdirAll(WorkDir, 0o755)
	runner := &FakeRunner{}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &host.Host{
		FS:      fs,
		Env:     FakeEnvironment{Unix: unix, Dir: WorkDir},
		Runner:  runner,
		Globber: host.FSGlobber{FS: fs},
		Logger:  logger,
	}, runner
}

// FakeEnvironment is a fixed Environment.
type FakeEnvironment struct {
	Unix bool
	Dir  string
}

func (e FakeEnvironment) IsUnix() bool             { return e.Unix }
func (e FakeEnvironment) WorkingDirectory() string { return e.Dir }

// Invocation records one Start call.
type Invocation struct {
	Command          string
	Arguments        string
	SafeArguments    string
	WorkingDirectory string
}

// Args splits the recorded argument string back into tokens.
func (i Invocation) Args() []string {
	args, err := shlex.Split(i.Arguments)
	if err != nil {
		return nil
	}
	return args
}

// FakeRunner records invocations and returns FakeProcess handles.
type FakeRunner struct {
	mu          sync.Mutex
	Invocations []Invocation

	// ExitCode is the exit code every started process reports.
	ExitCode int
	// StartErr makes Start fail.
	StartErr error
	// NoHandle makes Start return a nil process without an error.
	NoHandle bool
	// OnStart runs before the handle is returned, e.g. to create artifacts.
	OnStart func(inv Invocation)
	Stdout  string
}

func (r *FakeRunner) Start(_ context.Context, command string, settings host.ProcessSettings) (host.Process, error) {
	inv := Invocation{
		Command:          command,
		Arguments:        settings.Arguments.Render(),
		SafeArguments:    settings.Arguments.RenderSafe(),
		WorkingDirectory: settings.WorkingDirectory,
	}

	r.mu.Lock()
	r.Invocations = append(r.Invocations, inv)
	r.mu.Unlock()

	if r.StartErr != nil {
		return nil, r.StartErr
	}
	if r.NoHandle {
		return nil, nil
	}
	if r.OnStart != nil {
		r.OnStart(inv)
	}
	return &FakeProcess{Code: r.ExitCode, Out: r.Stdout}, nil
}

// Calls returns the number of recorded invocations.
func (r *FakeRunner) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Invocations)
}

// Last returns the most recent invocation.
func (r *FakeRunner) Last() Invocation {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Invocations) == 0 {
		return Invocation{}
	}
	return r.Invocations[len(r.Invocations)-1]
}

// FakeProcess is a process that has already finished with Code.
type FakeProcess struct {
	Code    int
	Out     string
	Err     string
	Waited  bool
	WaitErr error
}

func (p *FakeProcess) WaitForExit() error {
	p.Waited = true
	return p.WaitErr
}

func (p *FakeProcess) ExitCode() int {
	if !p.Waited {
		return -1
	}
	return p.Code
}

func (p *FakeProcess) Exited() bool   { return p.Waited }
func (p *FakeProcess) Stdout() string { return p.Out }
func (p *FakeProcess) Stderr() string { return p.Err }
