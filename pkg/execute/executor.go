// pkg/execute/executor.go
package execute

import (
	"bufio"
	"context"
	"os/exec"
	"strings"
	"sync"
)

// warningPrefix marks pip stderr lines that are diagnostics, not failures.
// They are mirrored to the sink but excluded from the error accumulation.
const warningPrefix = "WARNING"

// Local runs executables on the local system.
type Local struct {
	sink Sink
}

// NewLocal creates a local executor mirroring output to sink. A nil sink
// discards diagnostics.
func NewLocal(sink Sink) *Local {
	if sink == nil {
		sink = nopSink{}
	}
	return &Local{sink: sink}
}

// Run starts name with args, streams both output channels to the sink, and
// returns the accumulated stdout. A nonzero exit yields *ExitError carrying
// the filtered stderr; a start failure yields *SpawnError. Cancelling ctx
// kills the process and returns ctx.Err().
func (l *Local) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return "", &SpawnError{Command: name, Err: err}
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return "", &SpawnError{Command: name, Err: err}
	}

	l.sink.Command(name, args)

	if err := cmd.Start(); err != nil {
		return "", &SpawnError{Command: name, Err: err}
	}

	var stdout, stderr strings.Builder
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(stdoutPipe)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			l.sink.Line(line)
			stdout.WriteString(line)
			stdout.WriteByte('\n')
		}
	}()

	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(stderrPipe)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			l.sink.Line(line)
			if strings.HasPrefix(strings.TrimSpace(line), warningPrefix) {
				continue
			}
			stderr.WriteString(line)
			stderr.WriteByte('\n')
		}
	}()

	wg.Wait()
	err = cmd.Wait()

	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", &ExitError{
				Command: name,
				Code:    exitErr.ExitCode(),
				Stderr:  strings.TrimSpace(stderr.String()),
			}
		}
		return "", &SpawnError{Command: name, Err: err}
	}

	return stdout.String(), nil
}
