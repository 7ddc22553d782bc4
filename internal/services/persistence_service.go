package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"shindan/internal/diagnosis"
	"shindan/internal/repositories"
	"shindan/pkg/utils"
)

// Storage keys. These are the original application's localStorage keys;
// keeping them lets old snapshots round-trip.
const (
	keyAnswers  = "diagnosis_answers"
	keyHistory  = "diagnosis_history"
	keyErrorLog = "error_logs"
)

// PersistenceServiceInterface is the bounded persistence layer: the answer
// snapshot, the 10-entry diagnosis history and the 100-entry error log.
// Every failure is caught here, recorded in the error log and returned as a
// value; nothing below this boundary takes the process down.
type PersistenceServiceInterface interface {
	SaveAnswers(ctx context.Context, answers diagnosis.AnswerSet) error
	LoadAnswers(ctx context.Context) (*diagnosis.AnswerSet, error)
	ClearAnswers(ctx context.Context) error

	AppendHistory(ctx context.Context, entry diagnosis.HistoryEntry) error
	LoadHistory(ctx context.Context) ([]diagnosis.HistoryEntry, error)
	ClearHistory(ctx context.Context) error

	AppendErrorLog(ctx context.Context, logContext, message string) error
	LoadErrorLog(ctx context.Context) ([]diagnosis.ErrorLogEntry, error)

	ClearAll(ctx context.Context) error
}

func NewPersistenceService(storage repositories.StorageRepositoryInterface, log *zap.Logger) PersistenceServiceInterface {
	return &PersistenceService{storage: storage, log: log}
}

type PersistenceService struct {
	// mu serializes every operation: sessions are isolated upstream, but the
	// history and error log collections are process-wide with a single
	// writer, and eviction is a read-modify-write cycle.
	mu      sync.Mutex
	storage repositories.StorageRepositoryInterface
	log     *zap.Logger
}

func (p *PersistenceService) SaveAnswers(ctx context.Context, answers diagnosis.AnswerSet) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	payload, err := json.Marshal(answers)
	if err != nil {
		return p.fail(ctx, "saveAnswers", err)
	}
	if err := p.storage.Set(ctx, keyAnswers, string(payload)); err != nil {
		return p.fail(ctx, "saveAnswers", err)
	}
	return nil
}

// LoadAnswers returns nil with no error when no snapshot exists.
func (p *PersistenceService) LoadAnswers(ctx context.Context) (*diagnosis.AnswerSet, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	raw, ok, err := p.storage.Get(ctx, keyAnswers)
	if err != nil {
		return nil, p.fail(ctx, "loadAnswers", err)
	}
	if !ok {
		return nil, nil
	}
	var answers diagnosis.AnswerSet
	if err := json.Unmarshal([]byte(raw), &answers); err != nil {
		p.report(ctx, "loadAnswers", err)
		return nil, fmt.Errorf("%w: answers snapshot", utils.ErrCorruptPayload)
	}
	return &answers, nil
}

func (p *PersistenceService) ClearAnswers(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.storage.Remove(ctx, keyAnswers); err != nil {
		return p.fail(ctx, "clearAnswers", err)
	}
	return nil
}

// AppendHistory prepends the entry and trims to the cap, newest first. A
// corrupt or unreadable stored list is logged and replaced rather than
// propagated; losing old history must not block recording a new diagnosis.
func (p *PersistenceService) AppendHistory(ctx context.Context, entry diagnosis.HistoryEntry) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var entries []diagnosis.HistoryEntry
	if raw, ok, err := p.storage.Get(ctx, keyHistory); err != nil {
		p.report(ctx, "appendHistory", err)
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &entries); err != nil {
			p.report(ctx, "appendHistory", err)
			entries = nil
		}
	}

	entries = append([]diagnosis.HistoryEntry{entry}, entries...)
	if len(entries) > diagnosis.HistoryLimit {
		entries = entries[:diagnosis.HistoryLimit]
	}

	payload, err := json.Marshal(entries)
	if err != nil {
		return p.fail(ctx, "appendHistory", err)
	}
	if err := p.storage.Set(ctx, keyHistory, string(payload)); err != nil {
		return p.fail(ctx, "appendHistory", err)
	}
	return nil
}

func (p *PersistenceService) LoadHistory(ctx context.Context) ([]diagnosis.HistoryEntry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	raw, ok, err := p.storage.Get(ctx, keyHistory)
	if err != nil {
		return nil, p.fail(ctx, "loadHistory", err)
	}
	if !ok {
		return []diagnosis.HistoryEntry{}, nil
	}
	var entries []diagnosis.HistoryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		p.report(ctx, "loadHistory", err)
		return nil, fmt.Errorf("%w: history", utils.ErrCorruptPayload)
	}
	return entries, nil
}

func (p *PersistenceService) ClearHistory(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.storage.Remove(ctx, keyHistory); err != nil {
		return p.fail(ctx, "clearHistory", err)
	}
	return nil
}

func (p *PersistenceService) AppendErrorLog(ctx context.Context, logContext, message string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.appendErrorLogLocked(ctx, logContext, message)
}

func (p *PersistenceService) LoadErrorLog(ctx context.Context) ([]diagnosis.ErrorLogEntry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	raw, ok, err := p.storage.Get(ctx, keyErrorLog)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrStorageFailure, err)
	}
	if !ok {
		return []diagnosis.ErrorLogEntry{}, nil
	}
	var entries []diagnosis.ErrorLogEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("%w: error log", utils.ErrCorruptPayload)
	}
	return entries, nil
}

func (p *PersistenceService) ClearAll(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.storage.Clear(ctx); err != nil {
		return p.fail(ctx, "clearAll", err)
	}
	return nil
}

// appendErrorLogLocked evicts past the cap like history does. Its own
// storage failures are only zap-logged; recursing into itself would loop.
func (p *PersistenceService) appendErrorLogLocked(ctx context.Context, logContext, message string) error {
	entry := diagnosis.ErrorLogEntry{
		Timestamp: time.Now(),
		Context:   logContext,
		Message:   message,
	}

	var entries []diagnosis.ErrorLogEntry
	if raw, ok, err := p.storage.Get(ctx, keyErrorLog); err == nil && ok {
		if err := json.Unmarshal([]byte(raw), &entries); err != nil {
			entries = nil
		}
	}

	entries = append([]diagnosis.ErrorLogEntry{entry}, entries...)
	if len(entries) > diagnosis.ErrorLogLimit {
		entries = entries[:diagnosis.ErrorLogLimit]
	}

	payload, err := json.Marshal(entries)
	if err != nil {
		p.log.Error("error log marshal failed", zap.Error(err))
		return fmt.Errorf("%w: %v", utils.ErrStorageFailure, err)
	}
	if err := p.storage.Set(ctx, keyErrorLog, string(payload)); err != nil {
		p.log.Error("error log write failed", zap.Error(err))
		return fmt.Errorf("%w: %v", utils.ErrStorageFailure, err)
	}
	return nil
}

// fail records the failure in the bounded error log and wraps it in the
// storage sentinel for the caller. Callers hold mu.
func (p *PersistenceService) fail(ctx context.Context, logContext string, err error) error {
	p.report(ctx, logContext, err)
	return fmt.Errorf("%w: %v", utils.ErrStorageFailure, err)
}

func (p *PersistenceService) report(ctx context.Context, logContext string, err error) {
	p.log.Warn("storage operation failed",
		zap.String("context", logContext),
		zap.Error(err),
	)
	_ = p.appendErrorLogLocked(ctx, logContext, err.Error())
}
