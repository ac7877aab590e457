package core

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mindslayer001/tracebug/internal/backend"
	"github.com/mindslayer001/tracebug/internal/eventbus"
	"github.com/mindslayer001/tracebug/internal/models"
)

// Analyzer submits a snippet and returns the backend's analysis
type Analyzer interface {
	SubmitSnippet(ctx context.Context, code string) (*models.AnalysisResponse, error)
}

type AnalysisService struct {
	analyzer Analyzer
	state    *AnalysisState
	eventBus *eventbus.EventBus
	logger   *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	pushMu   sync.Mutex // keeps snapshot order equal to send order
}

// NewAnalysisService creates the submission controller. analyzer may be nil
// when no backend is configured; submissions then fail immediately.
func NewAnalysisService(analyzer Analyzer, eb *eventbus.EventBus, logger *zap.Logger) *AnalysisService {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &AnalysisService{
		analyzer: analyzer,
		state:    NewAnalysisState(),
		eventBus: eb,
		logger:   logger.Named("core"),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start runs the core logic in a goroutine
func (as *AnalysisService) Start() {
	as.pushStateToUI()
	as.wg.Add(1)
	go as.eventLoop()
}

// Stop cancels in-flight submissions and waits for every goroutine to exit
func (as *AnalysisService) Stop() {
	as.cancel()
	as.wg.Wait()
}

func (as *AnalysisService) IsReady() bool {
	return as.analyzer != nil
}

func (as *AnalysisService) State() models.SubmissionState {
	state, _ := as.state.Snapshot()
	return state
}

func (as *AnalysisService) eventLoop() {
	defer as.wg.Done()
	for {
		select {
		case <-as.ctx.Done():
			return
		case event, ok := <-as.eventBus.UIToCore():
			if !ok {
				return
			}
			as.handleUIEvent(event)
		}
	}
}

func (as *AnalysisService) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.SubmitSnippetEvent:
		as.Submit(e.Code)
	case eventbus.ResetEvent:
		as.Reset()
	}
}

// Submit validates code and, unless a submission is already pending, sends
// it to the backend on its own goroutine. The outcome lands in the state
// only if no Reset or newer Submit happened meanwhile.
func (as *AnalysisService) Submit(code string) {
	generation, err := as.state.Begin(code)
	switch {
	case errors.Is(err, ErrSubmissionPending):
		as.logger.Debug("submission ignored while pending")
		return
	case errors.Is(err, ErrEmptySnippet):
		as.logger.Debug("rejected empty snippet")
		as.pushStateToUI()
		return
	}
	as.pushStateToUI()

	id := uuid.NewString()
	as.logger.Info("submitting snippet",
		zap.String("submission", id),
		zap.Uint64("generation", generation),
		zap.Int("bytes", len(code)))

	if as.analyzer == nil {
		as.finish(id, generation, nil, errors.New("no analysis backend configured"))
		return
	}

	as.wg.Add(1)
	go func() {
		defer as.wg.Done()
		resp, err := as.analyzer.SubmitSnippet(as.ctx, code)
		as.finish(id, generation, resp, err)
	}()
}

// Reset drops any held response or error and supersedes in-flight work
func (as *AnalysisService) Reset() {
	as.state.Reset()
	as.logger.Debug("state reset", zap.Uint64("generation", as.state.Generation()))
	as.pushStateToUI()
}

func (as *AnalysisService) finish(id string, generation uint64, resp *models.AnalysisResponse, err error) {
	var applied bool
	switch {
	case err != nil:
		as.logger.Warn("submission failed",
			zap.String("submission", id),
			zap.Uint64("generation", generation),
			zap.Error(err))
		applied = as.state.Fail(generation, ErrorMessage(err))
	case resp == nil:
		applied = as.state.Fail(generation, "Empty response from backend")
	default:
		as.logger.Info("submission succeeded",
			zap.String("submission", id),
			zap.Uint64("generation", generation),
			zap.Int("length", resp.Length))
		applied = as.state.Complete(generation, *resp)
	}

	if !applied {
		as.logger.Debug("discarded superseded result",
			zap.String("submission", id),
			zap.Uint64("generation", generation))
		return
	}
	as.pushStateToUI()
}

func (as *AnalysisService) pushStateToUI() {
	as.pushMu.Lock()
	defer as.pushMu.Unlock()

	state, revision := as.state.Snapshot()
	if err := as.eventBus.SendToUI(eventbus.StateUpdateEvent{
		State:    state,
		Revision: revision,
	}); err != nil {
		as.logger.Error("failed to send state to UI", zap.Error(err))
	}
}

// ErrorMessage converts a submission error into the text shown to the user
func ErrorMessage(err error) string {
	var httpErr *backend.HTTPError
	var transportErr *backend.TransportError
	var decodeErr *backend.DecodeError

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Error()
	case errors.As(err, &transportErr):
		return transportErr.Error()
	case errors.As(err, &decodeErr):
		return decodeErr.Error()
	case err == nil || err.Error() == "":
		return "Error connecting to backend"
	}
	return err.Error()
}
