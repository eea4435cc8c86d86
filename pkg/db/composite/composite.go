// Package composite writes a header row together with its child rows as one
// atomic unit.
package composite

import (
	"context"
	"errors"
	"time"

	"github.com/maderas/backend/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrHeaderNotFound = errors.New("header not found")

const (
	OutcomeCommitted  = "committed"
	OutcomeRolledBack = "rolled_back"
)

// Dependent is a child table whose rows reference the header through Column.
type Dependent struct {
	Table  string
	Column string
}

// Observer receives the outcome of every finished transaction.
type Observer interface {
	ObserveTx(table, operation, outcome string, elapsed time.Duration)
}

type Option func(*Writer)

// WithTimeout bounds connection acquisition and the transaction itself.
func WithTimeout(d time.Duration) Option {
	return func(w *Writer) { w.timeout = d }
}

func WithObserver(o Observer) Option {
	return func(w *Writer) { w.observer = o }
}

func WithLogger(log *zap.Logger) Option {
	return func(w *Writer) {
		if log != nil {
			w.log = log
		}
	}
}

type Writer struct {
	db         *gorm.DB
	header     string
	key        string
	dependents []Dependent
	timeout    time.Duration
	observer   Observer
	log        *zap.Logger
}

// New builds a writer for header. Dependents are deleted in the given order
// before the header row.
func New(conn *gorm.DB, header, key string, dependents []Dependent, opts ...Option) *Writer {
	w := &Writer{
		db:         conn,
		header:     header,
		key:        key,
		dependents: append([]Dependent(nil), dependents...),
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Create runs fn in a transaction. fn must write through the tx it receives;
// any error it returns rolls back every row written so far.
func (w *Writer) Create(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return w.run(ctx, "create", fn)
}

// Update runs fn in a transaction, like Create.
func (w *Writer) Update(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return w.run(ctx, "update", fn)
}

// Delete removes every dependent row and then the header row. A missing
// header still commits the (empty) dependent deletes and reports
// ErrHeaderNotFound.
func (w *Writer) Delete(ctx context.Context, id any) error {
	var affected int64
	err := w.run(ctx, "delete", func(tx *gorm.DB) error {
		for _, dep := range w.dependents {
			if err := tx.Exec("DELETE FROM "+dep.Table+" WHERE "+dep.Column+" = ?", id).Error; err != nil {
				return err
			}
		}

		res := tx.Exec("DELETE FROM "+w.header+" WHERE "+w.key+" = ?", id)
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrHeaderNotFound
	}
	return nil
}

func (w *Writer) run(ctx context.Context, operation string, fn func(tx *gorm.DB) error) error {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	start := time.Now()
	err := w.db.WithContext(ctx).Transaction(fn)
	elapsed := time.Since(start)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			err = errors.Join(err, ctxErr)
		}
		w.observe(operation, OutcomeRolledBack, elapsed)
		w.log.Debug("composite transaction rolled back",
			zap.String("table", w.header),
			zap.String("operation", operation),
			zap.Error(err),
		)
		return db.Classify(err)
	}

	w.observe(operation, OutcomeCommitted, elapsed)
	return nil
}

func (w *Writer) observe(operation, outcome string, elapsed time.Duration) {
	if w.observer == nil {
		return
	}
	w.observer.ObserveTx(w.header, operation, outcome, elapsed)
}
