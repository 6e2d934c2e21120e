package game

import (
	"context"
	"time"
)

const recordTimeout = 2 * time.Second

// ScoreRecords persists the best score.
type ScoreRecords interface {
	BestScore(ctx context.Context) (int, error)
	SetBestScore(ctx context.Context, score int) error
}

// Logger receives engine diagnostics.
type Logger interface {
	Printf(format string, v ...any)
}

// Options configures an Engine.
type Options struct {
	Holes         int
	Duration      int
	AdvisorPeriod time.Duration
	Picker        Picker
	Advisor       *Advisor
	Records       ScoreRecords
	Observer      Observer
	Logger        Logger
}

// Engine drives a Session with three periodic activities: the countdown, the
// spawner and the advisor. Every state change runs on the scheduler thread.
type Engine struct {
	sched         Scheduler
	session       *Session
	advisor       *Advisor
	advisorPeriod time.Duration
	records       ScoreRecords
	obs           Observer
	log           Logger

	ctx    context.Context
	cancel context.CancelFunc

	countdown Timer
	spawner   Timer
	advising  Timer
	expiry    Timer

	// epoch changes on every lifecycle transition; advisor continuations
	// issued under an older epoch are dropped.
	epoch uint64
	best  int
}

// NewEngine constructs an idle Engine.
func NewEngine(sched Scheduler, opts Options) *Engine {
	obs := opts.Observer
	if obs == nil {
		obs = nopObserver{}
	}
	period := opts.AdvisorPeriod
	if period <= 0 {
		period = DefaultAdvisorPeriod
	}
	period = max(period, MinAdvisorPeriod)
	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		sched:         sched,
		session:       NewSession(opts.Holes, opts.Duration, opts.Picker, obs),
		advisor:       opts.Advisor,
		advisorPeriod: period,
		records:       opts.Records,
		obs:           obs,
		log:           opts.Logger,
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Start begins a new round, cancelling anything left from the previous one.
func (e *Engine) Start() {
	e.sched.Post(e.start)
}

// Reset stops all activity and returns the board to idle.
func (e *Engine) Reset() {
	e.sched.Post(e.reset)
}

// Attempt registers a strike on target.
func (e *Engine) Attempt(target int) {
	e.sched.Post(func() { e.session.RegisterAttempt(target) })
}

// Close stops all activity without recording the round and abandons any
// in-flight advisor call.
func (e *Engine) Close() {
	e.sched.Post(func() {
		e.stopTimers()
		e.epoch++
		e.session.End()
	})
	e.cancel()
}

func (e *Engine) start() {
	e.stopTimers()
	e.epoch++
	e.session.Start()
	e.loadBest()
	e.obs.Observe(Started{Snapshot: e.session.Snapshot(), Holes: e.session.Holes(), Best: e.best})

	e.countdown = e.sched.Every(CountdownPeriod, e.tick)
	e.restartSpawner()
	if e.advisor != nil {
		e.advising = e.sched.Every(e.advisorPeriod, e.cycle)
	}
}

func (e *Engine) reset() {
	e.stopTimers()
	e.epoch++
	e.session.Reset()
	e.obs.Observe(Reset{Snapshot: e.session.Snapshot(), Message: ReadyMessage})
}

func (e *Engine) tick() {
	if e.session.Tick() {
		e.end()
	}
}

func (e *Engine) end() {
	if !e.session.Running() {
		return
	}
	e.stopTimers()
	e.epoch++
	final, last := e.session.End()
	best, newBest := e.recordBest(final.Score)
	e.obs.Observe(Ended{Snapshot: final, LastTarget: last, Best: best, NewBest: newBest})
}

func (e *Engine) spawn() {
	act, ok := e.session.Activate()
	if !ok {
		return
	}
	e.expiry = e.sched.AfterFunc(time.Duration(act.VisibleMs)*time.Millisecond, func() {
		e.session.Expire(act.Token, act.Target)
	})
}

// restartSpawner replaces the spawn timer; periodic timers cannot be retargeted.
func (e *Engine) restartSpawner() {
	if e.spawner != nil {
		e.spawner.Stop()
	}
	interval := time.Duration(e.session.SpawnInterval()) * time.Millisecond
	e.spawner = e.sched.Every(interval, e.spawn)
}

func (e *Engine) cycle() {
	if !e.session.Running() {
		return
	}
	perf := e.session.Snapshot().Performance()
	epoch := e.epoch
	advisor := e.advisor
	ctx := e.ctx
	e.sched.Go(func() func() {
		adv := advisor.Consult(ctx, perf)
		return func() { e.applyAdvice(epoch, adv) }
	})
}

func (e *Engine) applyAdvice(epoch uint64, adv Advice) {
	if epoch != e.epoch || !e.session.Running() {
		return
	}
	if adv.Err != nil {
		e.logf("advisor fallback: %v", adv.Err)
	}
	before, after := e.session.ApplyDifficulty(adv.Verdict.Difficulty)
	e.restartSpawner()
	e.obs.Observe(Adjusted{
		Verdict:     adv.Verdict,
		Fallback:    adv.Fallback(),
		SpawnBefore: before,
		SpawnAfter:  after,
	})
}

func (e *Engine) stopTimers() {
	stopAll{e.countdown, e.spawner, e.advising, e.expiry}.Stop()
	e.countdown, e.spawner, e.advising, e.expiry = nil, nil, nil, nil
}

func (e *Engine) loadBest() {
	if e.records == nil {
		return
	}
	ctx, cancel := context.WithTimeout(e.ctx, recordTimeout)
	defer cancel()
	best, err := e.records.BestScore(ctx)
	if err != nil {
		e.logf("failed to load best score: %v", err)
		return
	}
	e.best = best
}

func (e *Engine) recordBest(score int) (int, bool) {
	if score <= e.best {
		return e.best, false
	}
	e.best = score
	if e.records != nil {
		ctx, cancel := context.WithTimeout(e.ctx, recordTimeout)
		defer cancel()
		if err := e.records.SetBestScore(ctx, score); err != nil {
			e.logf("failed to save best score: %v", err)
		}
	}
	return score, true
}

func (e *Engine) logf(format string, v ...any) {
	if e.log == nil {
		return
	}
	e.log.Printf(format, v...)
}
