// Copyright (c) 2024-2025 Blockwatch Data Inc.
// Author: alex@blockwatch.cc

package monitor

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"blockwatch.cc/packdb/util"
)

type State string

const (
	STATE_STARTING State = "starting" // no sample collected yet
	STATE_RUNNING  State = "running"  // sampling on schedule
	STATE_STOPPING State = "stopping" // shutting down
	STATE_STOPPED  State = "stopped"  // sampler exited
	STATE_FAILED   State = "failed"   // last sampling pass failed
)

type Config struct {
	Root      string        // procfs mount point, default /proc
	Interval  time.Duration // sampling interval, default 5s
	History   *History      // optional sample store
	Publisher *Publisher    // optional sample broadcaster
	Aliases   *AliasSet     // optional device metadata
}

// Monitor samples procfs on a wall clock schedule and keeps the two
// most recent samples for rate computation. History writes and zeromq
// broadcasts ride on the sampling goroutine.
type Monitor struct {
	sync.RWMutex
	state State
	cfg   Config

	// read-mostly thread-safe access
	last atomic.Value // *Sample
	prev atomic.Value // *Sample

	samples int64
	errors  int64

	// coordinated shutdown
	quit   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(cfg Config) *Monitor {
	if cfg.Root == "" {
		cfg.Root = "/proc"
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Monitor{
		state:  STATE_STARTING,
		cfg:    cfg,
		quit:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (m *Monitor) setState(state State) {
	m.Lock()
	m.state = state
	m.Unlock()
}

// Start launches the sampling goroutine.
func (m *Monitor) Start() {
	log.Infof("Starting system monitor for %s at %s intervals.", m.cfg.Root, m.cfg.Interval)
	go m.runSampler()
}

// Stop shuts the sampler down and waits for it to exit, at most until
// ctx is cancelled. The history store stays open, closing it is the
// owner's business.
func (m *Monitor) Stop(ctx context.Context) {
	// run only once
	select {
	case <-m.quit:
		return
	default:
	}
	log.Info("Stopping system monitor.")
	m.setState(STATE_STOPPING)
	close(m.quit)

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		// force-stop the sampler
		m.cancel()
		<-done
	case <-done:
		m.cancel()
	}
	m.setState(STATE_STOPPED)
	log.Info("Stopped system monitor.")
}

func (m *Monitor) runSampler() {
	m.wg.Add(1)
	defer m.wg.Done()

	// first sample right away so consumers see data before the first tick
	m.sampleOnce()

	tick := util.NewWallTicker(m.cfg.Interval, 0)
	defer tick.Stop()
	for {
		select {
		case <-m.quit:
			return
		case <-m.ctx.Done():
			return
		case <-tick.C:
			m.sampleOnce()
		}
	}
}

func (m *Monitor) sampleOnce() {
	s, err := TakeSample(m.cfg.Root)
	if err != nil {
		atomic.AddInt64(&m.errors, 1)
		m.setState(STATE_FAILED)
		log.Errorf("monitor: %v", err)
		return
	}
	if last := m.Last(); last != nil {
		m.prev.Store(last)
	}
	m.last.Store(s)
	atomic.AddInt64(&m.samples, 1)
	m.setState(STATE_RUNNING)

	if h := m.cfg.History; h != nil {
		if err := h.Put(s); err != nil {
			log.Errorf("monitor: history: %v", err)
		}
	}
	if p := m.cfg.Publisher; p != nil {
		if err := p.Publish(s); err != nil {
			log.Errorf("monitor: publish: %v", err)
		}
	}
}

// Last returns the most recent sample or nil before the first pass.
func (m *Monitor) Last() *Sample {
	s, _ := m.last.Load().(*Sample)
	return s
}

// Usage returns rates between the two most recent samples. Before the
// second pass it fails with ErrNoSample.
func (m *Monitor) Usage() (*Usage, error) {
	prev, _ := m.prev.Load().(*Sample)
	return UsageBetween(prev, m.Last())
}

// Interval returns the wall clock sampling interval.
func (m *Monitor) Interval() time.Duration {
	return m.cfg.Interval
}

// Aliases returns the configured device alias set, may be nil.
func (m *Monitor) Aliases() *AliasSet {
	return m.cfg.Aliases
}

// History returns the configured sample store, may be nil.
func (m *Monitor) History() *History {
	return m.cfg.History
}

func (m *Monitor) State() State {
	m.RLock()
	defer m.RUnlock()
	return m.state
}

// Status describes the sampler for monitoring endpoints.
type Status struct {
	State    State     `json:"state"`
	Procfs   string    `json:"procfs"`
	Interval float64   `json:"interval"`
	Samples  int64     `json:"samples"`
	Errors   int64     `json:"errors"`
	LastTime time.Time `json:"last_time,omitempty"`
}

func (m *Monitor) Status() Status {
	s := Status{
		State:    m.State(),
		Procfs:   m.cfg.Root,
		Interval: m.cfg.Interval.Seconds(),
		Samples:  atomic.LoadInt64(&m.samples),
		Errors:   atomic.LoadInt64(&m.errors),
	}
	if last := m.Last(); last != nil {
		s.LastTime = last.Timestamp
	}
	return s
}
