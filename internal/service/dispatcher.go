package service

import (
	"context"
	"errors"
	"sync"

	"github.com/dafibh/spendsense/spendsense-backend/internal/domain"
	"github.com/dafibh/spendsense/spendsense-backend/internal/websocket"
	"github.com/rs/zerolog"
)

// ErrDispatcherStopped is returned for commands submitted after Stop
var ErrDispatcherStopped = errors.New("dispatcher stopped")

// DefaultQueueSize is the command queue capacity
const DefaultQueueSize = 64

type request struct {
	cmd   Command // nil for a read-only snapshot request
	reply chan result
}

type result struct {
	analysis *domain.Analysis
	err      error
}

// Dispatcher is the single event loop in front of the engine. Commands are
// applied one at a time: mutate, recompute, save, publish.
type Dispatcher struct {
	engine         *Engine
	stateService   *StateService
	eventPublisher websocket.EventPublisher
	logger         zerolog.Logger
	queue          chan request
	stopCh         chan struct{}
	doneCh         chan struct{}
	mu             sync.Mutex
	running        bool
	stopOnce       sync.Once
}

// NewDispatcher creates a new Dispatcher. stateService may be nil to skip saving.
func NewDispatcher(engine *Engine, stateService *StateService, logger zerolog.Logger, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Dispatcher{
		engine:       engine,
		stateService: stateService,
		logger:       logger.With().Str("component", "dispatcher").Logger(),
		queue:        make(chan request, queueSize),
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (d *Dispatcher) SetEventPublisher(publisher websocket.EventPublisher) {
	d.eventPublisher = publisher
}

// publishEvent publishes a WebSocket event if a publisher is configured
func (d *Dispatcher) publishEvent(event websocket.Event) {
	if d.eventPublisher != nil {
		d.eventPublisher.Publish(event)
	}
}

// Start begins processing commands
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return
	}
	d.running = true
	d.mu.Unlock()

	d.logger.Info().Int("queue_size", cap(d.queue)).Msg("Starting dispatcher")
	go d.run(ctx)
}

// Stop waits for the command in flight to finish and stops the loop
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()

	d.logger.Info().Msg("Stopping dispatcher")
	d.stopOnce.Do(func() { close(d.stopCh) })
	<-d.doneCh
	d.logger.Info().Msg("Dispatcher stopped")
}

// IsRunning returns whether the loop is running
func (d *Dispatcher) IsRunning() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

// Submit queues cmd and waits for its result
func (d *Dispatcher) Submit(ctx context.Context, cmd Command) (*domain.Analysis, error) {
	return d.do(ctx, request{cmd: cmd, reply: make(chan result, 1)})
}

// Analysis returns the current analysis without mutating anything
func (d *Dispatcher) Analysis(ctx context.Context) (*domain.Analysis, error) {
	return d.do(ctx, request{reply: make(chan result, 1)})
}

func (d *Dispatcher) do(ctx context.Context, req request) (*domain.Analysis, error) {
	select {
	case <-d.stopCh:
		return nil, ErrDispatcherStopped
	default:
	}

	select {
	case d.queue <- req:
	case <-d.stopCh:
		return nil, ErrDispatcherStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case res := <-req.reply:
		return res.analysis, res.err
	case <-d.doneCh:
		select {
		case res := <-req.reply:
			return res.analysis, res.err
		default:
			return nil, ErrDispatcherStopped
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (d *Dispatcher) run(ctx context.Context) {
	defer close(d.doneCh)
	defer func() {
		d.mu.Lock()
		d.running = false
		d.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-d.stopCh:
			return
		case req := <-d.queue:
			req.reply <- d.handle(ctx, req.cmd)
		}
	}
}

func (d *Dispatcher) handle(ctx context.Context, cmd Command) result {
	if cmd == nil {
		analysis, err := d.engine.Analyze()
		return result{analysis: analysis, err: err}
	}

	analysis, err := d.engine.Execute(cmd)
	if err != nil {
		d.logger.Debug().Err(err).Str("command", cmd.Name()).Msg("Command rejected")
		return result{err: err}
	}

	if d.stateService != nil {
		if err := d.stateService.Save(ctx, d.engine.State()); err != nil {
			d.logger.Error().Err(err).Str("command", cmd.Name()).Msg("Failed to save state")
		}
	}

	d.publishEvent(websocket.AnalysisUpdated(cmd.Name(), analysis))

	d.logger.Info().
		Str("command", cmd.Name()).
		Str("total_spent", analysis.TotalSpent.StringFixed(2)).
		Int("expenses", len(analysis.Expenses)).
		Int("warnings", len(analysis.Warnings)).
		Msg("Command applied")

	return result{analysis: analysis}
}
