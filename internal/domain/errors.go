package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is the base of every missing-entity error.
	ErrNotFound = errors.New("not found")

	// ErrEmptyTopics is returned when there is nothing to schedule.
	ErrEmptyTopics = errors.New("no topics to schedule")

	// ErrInsufficientTime is the base of InsufficientTimeError.
	ErrInsufficientTime = errors.New("insufficient time before exam")

	// ErrDuplicateActiveRoadmap is the base of DuplicateActiveRoadmapError.
	ErrDuplicateActiveRoadmap = errors.New("active roadmap already exists for source")

	// ErrConcurrentUpdate signals a lost optimistic version check.
	ErrConcurrentUpdate = errors.New("roadmap was modified concurrently")

	// ErrInvalidInput marks request or entity validation failures.
	ErrInvalidInput = errors.New("invalid input")
)

// MinHorizonDays is the shortest plan the allocator accepts.
const MinHorizonDays = 7

// InsufficientTimeError reports a horizon too short to plan.
type InsufficientTimeError struct {
	HorizonDays int
	StudyDays   int
}

func (e *InsufficientTimeError) Error() string {
	if e.HorizonDays < MinHorizonDays {
		return fmt.Sprintf("not enough time: %d day(s) until exam, need at least %d", e.HorizonDays, MinHorizonDays)
	}
	return fmt.Sprintf("not enough time: %d day(s) until exam leaves %d study day(s)", e.HorizonDays, e.StudyDays)
}

func (e *InsufficientTimeError) Unwrap() error { return ErrInsufficientTime }

// DuplicateActiveRoadmapError reports an existing active roadmap for a source.
type DuplicateActiveRoadmapError struct {
	OwnerID    string
	SourceID   string
	ExistingID string
}

func (e *DuplicateActiveRoadmapError) Error() string {
	if e.ExistingID != "" {
		return fmt.Sprintf("active roadmap %s already exists for source %s", e.ExistingID, e.SourceID)
	}
	return fmt.Sprintf("active roadmap already exists for source %s", e.SourceID)
}

func (e *DuplicateActiveRoadmapError) Unwrap() error { return ErrDuplicateActiveRoadmap }

type DayNotFoundError struct {
	RoadmapID string
	DayNumber int
}

func (e *DayNotFoundError) Error() string {
	return fmt.Sprintf("day %d not found in roadmap %s", e.DayNumber, e.RoadmapID)
}

func (e *DayNotFoundError) Unwrap() error { return ErrNotFound }

type RoadmapNotFoundError struct {
	ID string
}

func (e *RoadmapNotFoundError) Error() string {
	if e.ID == "" {
		return "roadmap not found"
	}
	return fmt.Sprintf("roadmap %s not found", e.ID)
}

func (e *RoadmapNotFoundError) Unwrap() error { return ErrNotFound }

type SourceNotFoundError struct {
	ID string
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("source %s not found", e.ID)
}

func (e *SourceNotFoundError) Unwrap() error { return ErrNotFound }

type TaskNotFoundError struct {
	ID string
}

func (e *TaskNotFoundError) Error() string {
	return fmt.Sprintf("task %s not found", e.ID)
}

func (e *TaskNotFoundError) Unwrap() error { return ErrNotFound }

// ValidationError collects entity-level validation failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

type DeckNotFoundError struct {
	ID string
}

func (e *DeckNotFoundError) Error() string {
	return fmt.Sprintf("flashcard deck %s not found", e.ID)
}

func (e *DeckNotFoundError) Unwrap() error { return ErrNotFound }

type CardNotFoundError struct {
	DeckID string
	Index  int
}

func (e *CardNotFoundError) Error() string {
	return fmt.Sprintf("card %d not found in deck %s", e.Index, e.DeckID)
}

func (e *CardNotFoundError) Unwrap() error { return ErrNotFound }

type MockTestNotFoundError struct {
	ID string
}

func (e *MockTestNotFoundError) Error() string {
	return fmt.Sprintf("mock test %s not found", e.ID)
}

func (e *MockTestNotFoundError) Unwrap() error { return ErrNotFound }
