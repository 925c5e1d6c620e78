package feed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"snapfix/types"
)

// DefaultInterval is how often the feed is polled.
const DefaultInterval = 5 * time.Second

// Fetcher loads the normalized feed. *Client implements it.
type Fetcher interface {
	FetchAnalyses(ctx context.Context) ([]types.AnalysisRecord, error)
}

// Result is the outcome of one poll tick.
type Result struct {
	TickID  string
	Records []types.AnalysisRecord
	Err     error
	At      time.Time
}

// Handler receives poll events. Calls are never concurrent with each other.
type Handler interface {
	PollStarted(tickID string)
	PollFinished(res Result)
}

// HandlerFuncs adapts a pair of functions to Handler. Nil funcs are skipped.
type HandlerFuncs struct {
	Started  func(tickID string)
	Finished func(res Result)
}

func (h HandlerFuncs) PollStarted(tickID string) {
	if h.Started != nil {
		h.Started(tickID)
	}
}

func (h HandlerFuncs) PollFinished(res Result) {
	if h.Finished != nil {
		h.Finished(res)
	}
}

// Poller fetches the feed once on Start and then on a fixed interval until Stop.
// A tick that fires while a fetch is still running is skipped, so results are
// delivered in the order the fetches were issued.
type Poller struct {
	fetcher  Fetcher
	handler  Handler
	interval time.Duration
	cron     *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc

	running   sync.Mutex
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewPoller creates a poller; nothing runs until Start.
func NewPoller(fetcher Fetcher, interval time.Duration, handler Handler) *Poller {
	logger := cron.PrintfLogger(log.Default())
	ctx, cancel := context.WithCancel(context.Background())
	return &Poller{
		fetcher:  fetcher,
		handler:  handler,
		interval: interval,
		cron:     cron.New(cron.WithLogger(logger), cron.WithChain(cron.Recover(logger))),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// fixedInterval is a cron schedule without cron's one-second rounding.
type fixedInterval time.Duration

func (f fixedInterval) Next(t time.Time) time.Time {
	return t.Add(time.Duration(f))
}

// Start fetches immediately and schedules the interval. Calling Start again is
// a no-op.
func (p *Poller) Start() error {
	if p.interval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", p.interval)
	}
	p.startOnce.Do(func() {
		p.cron.Schedule(fixedInterval(p.interval), cron.FuncJob(p.poll))
		p.cron.Start()
		go p.poll()
	})
	return nil
}

// Trigger runs an extra poll now unless one is already in flight.
func (p *Poller) Trigger() {
	go p.poll()
}

// Stop releases the schedule, cancels an in-flight fetch and waits for it.
// No handler call happens after Stop returns. Safe to call more than once.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		p.cancel()
		<-p.cron.Stop().Done()
		p.running.Lock()
		p.running.Unlock()
	})
}

func (p *Poller) poll() {
	if p.ctx.Err() != nil {
		return
	}
	if !p.running.TryLock() {
		log.Printf("⏭️  poll skipped: previous fetch still in flight")
		return
	}
	defer p.running.Unlock()
	if p.ctx.Err() != nil {
		return
	}

	tickID := uuid.NewString()
	p.handler.PollStarted(tickID)

	started := time.Now()
	records, err := p.fetcher.FetchAnalyses(p.ctx)
	if errors.Is(err, context.Canceled) || p.ctx.Err() != nil {
		return
	}

	if err != nil {
		log.Printf("❌ poll %s failed after %s: %v", tickID[:8], time.Since(started).Round(time.Millisecond), err)
	} else {
		log.Printf("🔄 poll %s loaded %d analyses in %s", tickID[:8], len(records), time.Since(started).Round(time.Millisecond))
	}

	p.handler.PollFinished(Result{
		TickID:  tickID,
		Records: records,
		Err:     err,
		At:      time.Now(),
	})
}
