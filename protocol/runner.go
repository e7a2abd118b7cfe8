package protocol

import (
	"context"
	"time"

	"github.com/optolink/bridge/link"
	"github.com/optolink/bridge/optoerr"
	"go.uber.org/zap"
)

// SessionIdleTimeout is the budget a session has to produce its next queued
// command before the runner gives up and returns to Unsynchronized.
const SessionIdleTimeout = 500 * time.Millisecond

// SyncByte is the byte the device emits to invite a new session.
const SyncByte = 0x05

// StartByte tells the device the controller is ready to exchange frames.
const StartByte = 0x01

type slot struct {
	cmd    Command
	result chan Result
}

// Result is what a queued Command eventually resolves to.
type Result struct {
	Answer Answer
	Err    error
}

// Runner drives the KW wire protocol's Unsynchronized/Synchronized state
// machine over a link.Link, serializing every Command enqueued via Execute.
type Runner struct {
	link   *link.Link
	queue  chan slot
	logger *zap.SugaredLogger
}

// NewRunner builds a Runner that exchanges frames over l. logger may be nil.
func NewRunner(l *link.Link, logger *zap.SugaredLogger) *Runner {
	return &Runner{
		link:   l,
		queue:  make(chan slot, 64),
		logger: logger,
	}
}

func (r *Runner) logf(format string, args ...any) {
	if r.logger != nil {
		r.logger.Debugf(format, args...)
	}
}

// Execute enqueues cmd and blocks until the runner has resolved it or ctx is
// done. Per the completion contract, the runner always resolves the slot
// exactly once even if the caller stops waiting — Execute here simply stops
// observing it.
func (r *Runner) Execute(ctx context.Context, cmd Command) (Answer, error) {
	s := slot{cmd: cmd, result: make(chan Result, 1)}
	select {
	case r.queue <- s:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case res := <-s.result:
		return res.Answer, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Run drives the state machine until ctx is canceled. It should be launched
// in its own goroutine by start_communication.
func (r *Runner) Run(ctx context.Context) {
	r.link.Flush()
	for {
		if ctx.Err() != nil {
			return
		}
		r.unsynchronized(ctx)
	}
}

// unsynchronized reads single bytes, discarding everything but the sync
// byte, then — iff the queue is non-empty — opens a session.
func (r *Runner) unsynchronized(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		data, err := r.link.Read(ctx, 1)
		if err != nil || len(data) == 0 {
			continue
		}
		if data[0] != SyncByte {
			continue
		}
		select {
		case s := <-r.queue:
			if _, err := r.link.Write([]byte{StartByte}); err != nil {
				r.logf("session open write failed: %v", err)
				s.result <- Result{Err: optoerr.Wrap(optoerr.KindLink, "session open", err)}
				continue
			}
			r.session(ctx, s)
			return
		default:
			// no work waiting; ignore this sync byte and keep polling
		}
	}
}

// session runs the command-exchange sub-loop starting from the first slot
// already dequeued by unsynchronized, returning once the session ends
// (idle timeout or resync).
func (r *Runner) session(ctx context.Context, first slot) {
	s := first
	for {
		if err := r.exchange(ctx, s); err != nil {
			return // resync: protocol error or link error
		}
		next, err := r.nextWithinSession(ctx)
		if err != nil {
			return // session idle timeout: benign, back to Unsynchronized
		}
		s = next
	}
}

func (r *Runner) nextWithinSession(ctx context.Context) (slot, error) {
	timer := time.NewTimer(SessionIdleTimeout)
	defer timer.Stop()
	select {
	case s := <-r.queue:
		return s, nil
	case <-timer.C:
		return slot{}, optoerr.ErrSessionTimeout
	case <-ctx.Done():
		return slot{}, ctx.Err()
	}
}

// exchange writes one command and reads its reply, resolving slot. It
// returns a non-nil error exactly when the session must end (resync).
func (r *Runner) exchange(ctx context.Context, s slot) error {
	if _, err := r.link.Write(s.cmd.Bytes()); err != nil {
		werr := optoerr.Wrap(optoerr.KindLink, "write command", err)
		s.result <- Result{Err: werr}
		return werr
	}
	reply, err := r.link.Read(ctx, s.cmd.ExpectedReplyLen())
	if err != nil {
		werr := optoerr.Wrap(optoerr.KindLink, "read reply", err)
		s.result <- Result{Err: werr}
		return werr
	}
	if allSyncBytes(reply) {
		rerr := optoerr.New(optoerr.KindProtocolResync, "reply was all sync bytes, resynchronizing")
		s.result <- Result{Err: rerr}
		return rerr
	}
	answer, err := s.cmd.HandleReply(reply)
	if err != nil {
		s.result <- Result{Err: err}
		return err
	}
	s.result <- Result{Answer: answer}
	return nil
}

func allSyncBytes(data []byte) bool {
	for _, b := range data {
		if b != SyncByte {
			return false
		}
	}
	return true
}
