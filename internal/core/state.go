package core

import (
	"errors"
	"strings"
	"sync"

	"github.com/mindslayer001/tracebug/internal/models"
)

const emptySnippetMessage = "Please enter some code to analyze"

var (
	// ErrSubmissionPending is returned by Begin while a submission is in flight
	ErrSubmissionPending = errors.New("a submission is already in progress")
	// ErrEmptySnippet is returned by Begin for blank input
	ErrEmptySnippet = errors.New(emptySnippetMessage)
)

// AnalysisState manages the submission lifecycle. Every transition and
// generation check happens under one lock.
type AnalysisState struct {
	mu         sync.RWMutex
	state      models.SubmissionState
	generation uint64 // bumped by Begin and Reset
	revision   uint64 // bumped by every transition
}

func NewAnalysisState() *AnalysisState {
	return &AnalysisState{
		state: models.IdleState(),
	}
}

// Begin validates the snippet and moves to Pending. It returns the
// generation the eventual result must carry. Blank input moves to Failed
// and returns ErrEmptySnippet; a submission already in flight is left
// alone and ErrSubmissionPending is returned.
func (as *AnalysisState) Begin(code string) (uint64, error) {
	as.mu.Lock()
	defer as.mu.Unlock()

	if as.state.IsPending() {
		return 0, ErrSubmissionPending
	}
	if strings.TrimSpace(code) == "" {
		as.transition(models.FailedState(emptySnippetMessage))
		return 0, ErrEmptySnippet
	}

	as.generation++
	as.transition(models.PendingState())
	return as.generation, nil
}

// Complete records a successful response. It reports false and changes
// nothing if generation has been superseded.
func (as *AnalysisState) Complete(generation uint64, resp models.AnalysisResponse) bool {
	as.mu.Lock()
	defer as.mu.Unlock()

	if !as.isCurrent(generation) {
		return false
	}
	as.transition(models.SucceededState(resp))
	return true
}

// Fail records a failed submission under the same staleness rule as Complete
func (as *AnalysisState) Fail(generation uint64, message string) bool {
	as.mu.Lock()
	defer as.mu.Unlock()

	if !as.isCurrent(generation) {
		return false
	}
	as.transition(models.FailedState(message))
	return true
}

// Reset returns to Idle and invalidates any submission in flight
func (as *AnalysisState) Reset() {
	as.mu.Lock()
	defer as.mu.Unlock()

	as.generation++
	as.transition(models.IdleState())
}

// Snapshot returns the current state with its revision
func (as *AnalysisState) Snapshot() (models.SubmissionState, uint64) {
	as.mu.RLock()
	defer as.mu.RUnlock()
	return as.state, as.revision
}

func (as *AnalysisState) IsPending() bool {
	as.mu.RLock()
	defer as.mu.RUnlock()
	return as.state.IsPending()
}

func (as *AnalysisState) Generation() uint64 {
	as.mu.RLock()
	defer as.mu.RUnlock()
	return as.generation
}

func (as *AnalysisState) isCurrent(generation uint64) bool {
	return as.state.IsPending() && generation == as.generation
}

func (as *AnalysisState) transition(next models.SubmissionState) {
	as.state = next
	as.revision++
}
