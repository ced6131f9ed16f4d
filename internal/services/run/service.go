package run

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"quantumtie/internal/domain"
	"quantumtie/internal/glow"
	"quantumtie/internal/netcheck"
)

// Defaults for Config.
const (
	DefaultInterval         = 5 * time.Second
	DefaultStallTimeout     = 60 * time.Second
	DefaultPollInterval     = time.Second
	DefaultSubmitRetry      = 500 * time.Millisecond
	DefaultMinLocalThinking = 3 * time.Second
)

// ErrStalled is returned by a poll that saw no progress after Running
// within the stall timeout.
var ErrStalled = errors.New("queue appears to have stalled")

// Config tunes the loop timings. Zero values take the defaults.
type Config struct {
	Interval         time.Duration // wait between runs
	StallTimeout     time.Duration // Running for longer abandons the job
	PollInterval     time.Duration
	SubmitRetry      time.Duration // sleep after a failed submit
	MinLocalThinking time.Duration // minimum animation for local jobs
}

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if c.StallTimeout <= 0 {
		c.StallTimeout = DefaultStallTimeout
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.SubmitRetry <= 0 {
		c.SubmitRetry = DefaultSubmitRetry
	}
	if c.MinLocalThinking < 0 {
		c.MinLocalThinking = 0
	}
	return c
}

// Orienter rotates the displays to match the accelerometer.
type Orienter interface {
	Orient(prev int) (int, error)
}

// Summary describes how a Run ended.
type Summary struct {
	Runs     int
	Pattern  domain.Pattern // last result shown
	Count    int            // shots of Pattern
	Shutdown bool           // shutdown requested from the joystick
}

// Service runs the submit/poll/display loop.
type Service struct {
	state   *glow.State
	backend domain.Backend
	circuit domain.Circuit
	log     *log.Logger
	cfg     Config

	pinger  domain.Pinger
	pingURL string
	orient  Orienter
	events  <-chan domain.StickEvent

	angle   int
	summary Summary
}

// Option configures a Service.
type Option func(*Service)

// WithPing pings url before each run of a remote backend.
func WithPing(p domain.Pinger, url string) Option {
	return func(s *Service) { s.pinger, s.pingURL = p, url }
}

// WithOrienter rotates the displays before each run.
func WithOrienter(o Orienter, initial int) Option {
	return func(s *Service) { s.orient, s.angle = o, initial }
}

// WithStick reads joystick events while waiting.
func WithStick(st domain.Stick) Option {
	return func(s *Service) {
		if st != nil {
			s.events = st.Events()
		}
	}
}

// WithConfig sets the loop timings.
func WithConfig(c Config) Option {
	return func(s *Service) { s.cfg = c.withDefaults() }
}

// New returns a run loop for circuit on backend, drawing through state.
func New(state *glow.State, b domain.Backend, c domain.Circuit, logger *log.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Service{state: state, backend: b, circuit: c, log: logger, cfg: Config{}.withDefaults()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Run loops until a real processor has run once, the joystick stops it, or
// ctx is done. After a single run the result stays up until ctx is done or
// the joystick is held.
func (s *Service) Run(ctx context.Context) (Summary, error) {
	looping := true
	for looping && ctx.Err() == nil {
		s.summary.Runs++
		if s.reachable(ctx) {
			looping = s.once(ctx)
		}
		if ctx.Err() != nil {
			break
		}

		wait := s.cfg.Interval
		if looping {
			s.log.Info("waiting before next run", "interval", wait)
		} else {
			wait = 0
			s.log.Info("single run finished; hold the joystick or interrupt to exit")
		}
		stop, shutdown := s.wait(ctx, wait)
		if shutdown {
			s.summary.Shutdown = true
			return s.summary, nil
		}
		if stop {
			break
		}
	}
	return s.summary, nil
}

// reachable pings a remote service. Local backends are always reachable.
func (s *Service) reachable(ctx context.Context) bool {
	if s.backend.Local() || s.pinger == nil || s.pingURL == "" {
		return true
	}
	code, err := s.pinger.Ping(ctx, s.pingURL)
	if err != nil {
		s.log.Warn("connection problem", "url", s.pingURL, "err", err)
		return false
	}
	if code != http.StatusOK {
		s.log.Warn("service not ready", "status", code, "msg", netcheck.Message(code))
		return false
	}
	return true
}

// once performs one submit and poll. It returns whether to keep looping.
func (s *Service) once(ctx context.Context) bool {
	if s.orient != nil {
		angle, err := s.orient.Orient(s.angle)
		if err != nil {
			s.log.Debug("orientation unavailable", "err", err)
		}
		s.angle = angle
	}
	s.state.SetShowLogo(true)
	s.state.SetThinking(true)

	if !s.backend.Local() {
		st, err := s.backend.Status(ctx)
		if err != nil {
			s.log.Warn("problem getting backend status; waiting to try again", "backend", s.backend.Name(), "err", err)
			s.idle()
			return true
		}
		s.log.Info("backend status", "backend", st.Name, "status", st.StatusMsg, "operational", st.Operational, "pending", st.PendingJobs)
		if !st.Active() {
			s.idle()
			return true
		}
	}

	s.log.Info("executing quantum circuit", "backend", s.backend.Name(), "run", s.summary.Runs)
	started := time.Now()
	job, err := s.backend.Submit(ctx, s.circuit)
	if err != nil {
		s.log.Error("submit failed", "backend", s.backend.Name(), "err", err)
		s.idle()
		sleep(ctx, s.cfg.SubmitRetry)
		return true
	}
	looping := s.backend.Local() || s.backend.Simulator()
	if s.summary.Runs < 3 {
		s.log.Info("job submitted", "job", job.ID(), "backend", s.backend.Name(), "looping", looping)
	}
	s.state.SetShowLogo(false)

	status, err := s.poll(ctx, job)
	switch {
	case errors.Is(err, ErrStalled):
		s.log.Warn("queue appears to have stalled; abandoning job", "job", job.ID(), "retry", looping)
		s.cancel(job)
		s.idle()
		return looping
	case err != nil:
		s.cancel(job)
		s.idle()
		return looping
	}

	switch status {
	case domain.JobDone:
		counts, err := job.Result(ctx)
		if err != nil {
			s.log.Error("fetching result failed", "job", job.ID(), "err", err)
			s.idle()
			return looping
		}
		pattern, value := counts.Max()
		s.log.Info("result", "max_value", value, "max_pattern", pattern, "shots", counts.Shots())
		if s.backend.Local() {
			sleep(ctx, s.cfg.MinLocalThinking-time.Since(started))
		}
		s.summary.Pattern, s.summary.Count = pattern, value
		s.state.ShowResult(pattern)
		return looping
	case domain.JobCancelled:
		s.log.Warn("job cancelled at backend", "job", job.ID(), "retry", looping)
	default:
		s.log.Error("job failed", "job", job.ID(), "status", status, "err", jobErr(job), "retry", looping)
	}
	s.idle()
	return looping
}

// poll waits for a final job status.
func (s *Service) poll(ctx context.Context, job domain.Job) (domain.JobStatus, error) {
	var (
		runningSince time.Time
		last         domain.JobStatus
	)
	for {
		st, err := job.Status(ctx)
		switch {
		case ctx.Err() != nil:
			return "", ctx.Err()
		case err != nil:
			s.log.Warn("job status error", "job", job.ID(), "err", err)
		default:
			if st != last {
				s.log.Debug("job status", "job", job.ID(), "status", st)
				last = st
			}
			if st.Final() {
				return st, nil
			}
			if st == domain.JobRunning && runningSince.IsZero() {
				runningSince = time.Now()
			}
		}
		if !runningSince.IsZero() && time.Since(runningSince) > s.cfg.StallTimeout {
			return last, ErrStalled
		}
		if !sleep(ctx, s.cfg.PollInterval) {
			return "", ctx.Err()
		}
	}
}

// wait blocks for d (forever when d is 0) or until a joystick event or ctx.
func (s *Service) wait(ctx context.Context, d time.Duration) (stop, shutdown bool) {
	var timeout <-chan time.Time
	if d > 0 {
		t := time.NewTimer(d)
		defer t.Stop()
		timeout = t.C
	}
	for {
		select {
		case <-ctx.Done():
			return true, false
		case <-timeout:
			return false, false
		case ev, ok := <-s.events:
			if !ok {
				s.events = nil
				continue
			}
			switch {
			case ev.Action == domain.ActionHeld && ev.Direction == domain.StickMiddle:
				s.log.Info("shutdown requested from joystick")
				s.state.RequestShutdown()
				return true, true
			case ev.Action == domain.ActionHeld:
				s.log.Info("looping stopped from joystick")
				return true, false
			case ev.Action == domain.ActionPressed && d > 0:
				s.state.Flash()
				return false, false
			}
		}
	}
}

// idle stops the animation and shows the last pattern again.
func (s *Service) idle() {
	s.state.SetShowLogo(false)
	s.state.SetThinking(false)
}

func (s *Service) cancel(job domain.Job) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := job.Cancel(ctx); err != nil {
		s.log.Debug("cancel failed", "job", job.ID(), "err", err)
	}
}

// jobErr returns the failure reason of jobs that carry one.
func jobErr(job domain.Job) error {
	switch j := job.(type) {
	case interface{ Err() error }:
		return j.Err()
	case interface{ Reason() string }:
		if r := j.Reason(); r != "" {
			return errors.New(r)
		}
	}
	return fmt.Errorf("job %s", job.ID())
}

// sleep waits for d or ctx. It reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
