// Package journal keeps an audit trail of every applied outcome: one row
// per session and one per ledger change, stored through GORM in sqlite or
// postgres.
package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/CodexForgeBR/travel-manager/internal/ledger"
)

// ErrNotFound is returned for an unknown session.
var ErrNotFound = errors.New("journal: session not found")

// Recorder is what the session driver writes to.
type Recorder interface {
	StartSession(ctx context.Context, id string, mode ledger.Mode, budget int) error
	Record(ctx context.Context, e Entry) error
	FinishSession(ctx context.Context, id, status string, reason ledger.Reason) error
	Close() error
}

// Session is a journaled session.
type Session struct {
	ID            string
	Mode          ledger.Mode
	InitialBudget int
	Status        string
	Reason        ledger.Reason
	StartedAt     time.Time
	FinishedAt    *time.Time
}

// Entry is one journaled outcome or feedback adjustment.
type Entry struct {
	SessionID string
	Cycle     int
	Worker    string
	Action    string
	Status    string
	Message   string
	Payload   map[string]any
	Changes   []ledger.Change

	BudgetBefore, BudgetAfter             int
	SatisfactionBefore, SatisfactionAfter int
	CompletenessBefore, CompletenessAfter int
	EnergyBefore, EnergyAfter             int

	RecordedAt time.Time
}

// NewEntry builds the entry for an outcome applied to a worker. before
// and after are the ledger around the apply call.
func NewEntry(sessionID string, cycle int, worker ledger.WorkerID, action ledger.ActionID, o ledger.Outcome, d ledger.Delta, before, after *ledger.TripState) Entry {
	e := Entry{
		SessionID:          sessionID,
		Cycle:              cycle,
		Worker:             string(worker),
		Action:             string(action),
		Status:             string(o.Status),
		Message:            o.Message,
		Payload:            o.Effect.Payload(),
		Changes:            d.Changes,
		BudgetBefore:       before.BudgetRemaining,
		BudgetAfter:        after.BudgetRemaining,
		SatisfactionBefore: before.CustomerSatisfaction,
		SatisfactionAfter:  after.CustomerSatisfaction,
		CompletenessBefore: before.TripCompleteness,
		CompletenessAfter:  after.TripCompleteness,
	}
	if w, ok := before.Worker(worker); ok {
		e.EnergyBefore = w.Energy
	}
	if w, ok := after.Worker(worker); ok {
		e.EnergyAfter = w.Energy
	}
	return e
}

// Store is the GORM-backed Recorder.
type Store struct {
	db *gorm.DB
}

// Open connects to driver/dsn and migrates the schema.
func Open(driver, dsn string) (*Store, error) {
	db, err := openGorm(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if err := db.AutoMigrate(&sessionRow{}, &entryRow{}); err != nil {
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	return &Store{db: db}, nil
}

// StartSession registers a session. Starting a known session again (a
// resume) marks it in progress.
func (s *Store) StartSession(ctx context.Context, id string, mode ledger.Mode, budget int) error {
	if id == "" {
		return errors.New("session id is required")
	}
	row := sessionRow{
		ID:            id,
		Mode:          string(mode),
		InitialBudget: budget,
		Status:        "IN_PROGRESS",
		StartedAt:     time.Now().UTC(),
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{"status": row.Status, "reason": "", "finished_at": nil}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	return nil
}

// Record appends an entry.
func (s *Store) Record(ctx context.Context, e Entry) error {
	row, err := entryRowFrom(e)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("record entry: %w", err)
	}
	return nil
}

// FinishSession stores the final status and termination reason.
func (s *Store) FinishSession(ctx context.Context, id, status string, reason ledger.Reason) error {
	now := time.Now().UTC()
	res := s.db.WithContext(ctx).Model(&sessionRow{}).Where("id = ?", id).Updates(map[string]any{
		"status":      status,
		"reason":      string(reason),
		"finished_at": now,
	})
	if res.Error != nil {
		return fmt.Errorf("finish session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Session returns one session.
func (s *Store) Session(ctx context.Context, id string) (Session, error) {
	var row sessionRow
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Session{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return Session{}, fmt.Errorf("get session: %w", err)
	}
	return row.toSession(), nil
}

// Entries returns a session's entries in the order they were recorded.
func (s *Store) Entries(ctx context.Context, sessionID string) ([]Entry, error) {
	var rows []entryRow
	if err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	out := make([]Entry, 0, len(rows))
	for _, r := range rows {
		e, err := r.toEntry()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.Close()
}

type sessionRow struct {
	ID            string     `gorm:"primaryKey;size:64"`
	Mode          string     `gorm:"size:32;not null"`
	InitialBudget int        `gorm:"not null"`
	Status        string     `gorm:"size:32;not null"`
	Reason        string     `gorm:"size:64"`
	StartedAt     time.Time  `gorm:"not null"`
	FinishedAt    *time.Time
}

func (sessionRow) TableName() string {
	return "sessions"
}

func (r sessionRow) toSession() Session {
	return Session{
		ID:            r.ID,
		Mode:          ledger.Mode(r.Mode),
		InitialBudget: r.InitialBudget,
		Status:        r.Status,
		Reason:        ledger.Reason(r.Reason),
		StartedAt:     r.StartedAt,
		FinishedAt:    r.FinishedAt,
	}
}

type entryRow struct {
	ID                 uint   `gorm:"primaryKey;autoIncrement"`
	SessionID          string `gorm:"size:64;not null;index"`
	Cycle              int    `gorm:"not null"`
	Worker             string `gorm:"size:64;not null"`
	Action             string `gorm:"size:64;not null"`
	Status             string `gorm:"size:16;not null"`
	Message            string `gorm:"type:text"`
	Payload            string `gorm:"type:text"`
	Changes            string `gorm:"type:text"`
	BudgetBefore       int
	BudgetAfter        int
	SatisfactionBefore int
	SatisfactionAfter  int
	CompletenessBefore int
	CompletenessAfter  int
	EnergyBefore       int
	EnergyAfter        int
	RecordedAt         time.Time `gorm:"not null"`
}

func (entryRow) TableName() string {
	return "journal_entries"
}

func entryRowFrom(e Entry) (entryRow, error) {
	if e.SessionID == "" {
		return entryRow{}, errors.New("entry session id is required")
	}
	payload, err := json.Marshal(e.Payload)
	if err != nil {
		return entryRow{}, fmt.Errorf("encode payload: %w", err)
	}
	changes, err := json.Marshal(e.Changes)
	if err != nil {
		return entryRow{}, fmt.Errorf("encode changes: %w", err)
	}
	at := e.RecordedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}
	return entryRow{
		SessionID:          e.SessionID,
		Cycle:              e.Cycle,
		Worker:             e.Worker,
		Action:             e.Action,
		Status:             e.Status,
		Message:            e.Message,
		Payload:            string(payload),
		Changes:            string(changes),
		BudgetBefore:       e.BudgetBefore,
		BudgetAfter:        e.BudgetAfter,
		SatisfactionBefore: e.SatisfactionBefore,
		SatisfactionAfter:  e.SatisfactionAfter,
		CompletenessBefore: e.CompletenessBefore,
		CompletenessAfter:  e.CompletenessAfter,
		EnergyBefore:       e.EnergyBefore,
		EnergyAfter:        e.EnergyAfter,
		RecordedAt:         at,
	}, nil
}

func (r entryRow) toEntry() (Entry, error) {
	e := Entry{
		SessionID:          r.SessionID,
		Cycle:              r.Cycle,
		Worker:             r.Worker,
		Action:             r.Action,
		Status:             r.Status,
		Message:            r.Message,
		BudgetBefore:       r.BudgetBefore,
		BudgetAfter:        r.BudgetAfter,
		SatisfactionBefore: r.SatisfactionBefore,
		SatisfactionAfter:  r.SatisfactionAfter,
		CompletenessBefore: r.CompletenessBefore,
		CompletenessAfter:  r.CompletenessAfter,
		EnergyBefore:       r.EnergyBefore,
		EnergyAfter:        r.EnergyAfter,
		RecordedAt:         r.RecordedAt,
	}
	if r.Payload != "" {
		if err := json.Unmarshal([]byte(r.Payload), &e.Payload); err != nil {
			return Entry{}, fmt.Errorf("decode payload of entry %d: %w", r.ID, err)
		}
	}
	if r.Changes != "" {
		if err := json.Unmarshal([]byte(r.Changes), &e.Changes); err != nil {
			return Entry{}, fmt.Errorf("decode changes of entry %d: %w", r.ID, err)
		}
	}
	return e, nil
}
