package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"shindan/internal/diagnosis"
	"shindan/pkg/utils"
)

// DiagnosisServiceInterface drives diagnosis sessions end to end: state
// transitions, best-effort persistence after every accepted answer, and
// presenter notifications. Each caller gets an isolated session; the shared
// history and error log are serialized inside the persistence layer.
type DiagnosisServiceInterface interface {
	Start(ctx context.Context, mode diagnosis.Mode, resume bool, p diagnosis.Presenter) (*diagnosis.Session, error)
	Current(ctx context.Context, sessionID string, p diagnosis.Presenter) (*diagnosis.Session, error)
	Submit(ctx context.Context, sessionID, questionID string, value interface{}, p diagnosis.Presenter) (*diagnosis.Session, error)
	Toggle(ctx context.Context, sessionID, questionID, choice string) ([]string, error)
	Continue(ctx context.Context, sessionID string, p diagnosis.Presenter) (*diagnosis.Session, error)
	Back(ctx context.Context, sessionID string, step int, p diagnosis.Presenter) (*diagnosis.Session, error)
	Finalize(ctx context.Context, sessionID string, p diagnosis.Presenter) (*diagnosis.Session, error)
	Reset(ctx context.Context, sessionID string) error
}

func NewDiagnosisService(persistence PersistenceServiceInterface, log *zap.Logger, sessionTTL time.Duration) DiagnosisServiceInterface {
	return &DiagnosisService{
		sessions:    gocache.New(sessionTTL, sessionTTL/2),
		persistence: persistence,
		log:         log,
	}
}

type DiagnosisService struct {
	sessions    *gocache.Cache
	persistence PersistenceServiceInterface
	log         *zap.Logger
}

func (d *DiagnosisService) Start(ctx context.Context, mode diagnosis.Mode, resume bool, p diagnosis.Presenter) (*diagnosis.Session, error) {
	session, err := diagnosis.NewSession(uuid.New().String(), mode)
	if err != nil {
		return nil, err
	}

	if resume {
		// Best effort: a missing or unreadable snapshot just means a clean
		// start, same as the original app after a storage wipe. The snapshot
		// is restricted to the requested mode's questions so a detailed
		// snapshot cannot leak call-time, apps or contract answers into a
		// quick session.
		if saved, err := d.persistence.LoadAnswers(ctx); err == nil && saved != nil {
			restored := saved.ForMode(mode)
			session.Answers = &restored
		}
	}

	d.sessions.SetDefault(session.ID, session)
	d.log.Info("diagnosis started",
		zap.String("session_id", session.ID),
		zap.String("mode", string(mode)),
	)

	d.saveSnapshot(ctx, session, p)
	p.ShowStep(session.Step, diagnosis.StepCount(session.Mode), session.CurrentQuestion())
	return session, nil
}

func (d *DiagnosisService) Current(ctx context.Context, sessionID string, p diagnosis.Presenter) (*diagnosis.Session, error) {
	session, err := d.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == diagnosis.StatusCompleted && session.Result != nil {
		p.ShowResult(*session.Result, session.Answers.Snapshot())
	} else {
		p.ShowStep(session.Step, diagnosis.StepCount(session.Mode), session.CurrentQuestion())
	}
	return session, nil
}

func (d *DiagnosisService) Submit(ctx context.Context, sessionID, questionID string, value interface{}, p diagnosis.Presenter) (*diagnosis.Session, error) {
	session, err := d.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Submit(questionID, value); err != nil {
		if utils.IsValidationError(err) {
			p.ShowError(err.Error())
		}
		return nil, err
	}

	d.saveSnapshot(ctx, session, p)
	p.ShowStep(session.Step, diagnosis.StepCount(session.Mode), session.CurrentQuestion())
	return session, nil
}

func (d *DiagnosisService) Toggle(ctx context.Context, sessionID, questionID, choice string) ([]string, error) {
	session, err := d.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	selected, err := session.ToggleChoice(questionID, choice)
	if err != nil {
		return nil, err
	}
	d.saveSnapshot(ctx, session, nil)
	return selected, nil
}

func (d *DiagnosisService) Continue(ctx context.Context, sessionID string, p diagnosis.Presenter) (*diagnosis.Session, error) {
	session, err := d.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Continue(); err != nil {
		return nil, err
	}
	p.ShowStep(session.Step, diagnosis.StepCount(session.Mode), session.CurrentQuestion())
	return session, nil
}

func (d *DiagnosisService) Back(ctx context.Context, sessionID string, step int, p diagnosis.Presenter) (*diagnosis.Session, error) {
	session, err := d.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Back(step); err != nil {
		return nil, err
	}
	p.ShowStep(session.Step, diagnosis.StepCount(session.Mode), session.CurrentQuestion())
	return session, nil
}

// Finalize runs the engine, appends a history entry and presents the result.
// History append failures are already logged at the persistence boundary and
// do not undo the completed session.
func (d *DiagnosisService) Finalize(ctx context.Context, sessionID string, p diagnosis.Presenter) (*diagnosis.Session, error) {
	session, err := d.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	result, err := session.Finalize()
	if err != nil {
		return nil, err
	}

	answers := session.Answers.Snapshot()
	now := time.Now()
	entry := diagnosis.HistoryEntry{
		Timestamp:       now,
		Date:            utils.FormatDisplayJST(now),
		Carrier:         answers.Carrier,
		Price:           answers.Price,
		DataUsage:       answers.DataUsage,
		Members:         answers.Members,
		Needs:           answers.Needs,
		RecommendedPlan: result.Summary(),
	}
	if err := d.persistence.AppendHistory(ctx, entry); err != nil {
		p.ShowError("データの保存に失敗しました")
	}

	d.log.Info("diagnosis completed",
		zap.String("session_id", session.ID),
		zap.String("mode", string(session.Mode)),
		zap.Int("monthly_savings", result.MonthlySavings),
		zap.Int("plan_count", len(result.Plans)),
	)
	p.ShowResult(result, answers)
	return session, nil
}

// Reset is always accepted: it drops the session and clears the persisted
// answer snapshot. History is deliberately kept.
func (d *DiagnosisService) Reset(ctx context.Context, sessionID string) error {
	d.sessions.Delete(sessionID)
	if err := d.persistence.ClearAnswers(ctx); err != nil {
		// Already logged downstream; reset still succeeds.
		d.log.Warn("snapshot clear failed during reset", zap.String("session_id", sessionID))
	}
	return nil
}

func (d *DiagnosisService) lookup(sessionID string) (*diagnosis.Session, error) {
	v, ok := d.sessions.Get(sessionID)
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	return v.(*diagnosis.Session), nil
}

// saveSnapshot autosaves after a mutation. Persistence is best-effort: a
// failure surfaces as a transient notice and the session continues.
func (d *DiagnosisService) saveSnapshot(ctx context.Context, session *diagnosis.Session, p diagnosis.Presenter) {
	if err := d.persistence.SaveAnswers(ctx, session.Answers.Snapshot()); err != nil && p != nil {
		p.ShowError("データの保存に失敗しました")
	}
}
