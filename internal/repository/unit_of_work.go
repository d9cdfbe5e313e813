package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"

	"gorm.io/gorm"
)

var (
	ErrCommitInProgress  = errors.New("commit already in progress")
	ErrInvalidEntity     = errors.New("entity must be a non-nil pointer")
	ErrPhaseClosed       = errors.New("pending phase is closed")
	ErrStoreSealed       = errors.New("store hooks are sealed")
	ErrNoRowsAffected    = errors.New("no rows affected")
	ErrMissingPrimaryKey = errors.New("entity has no primary key value")
)

// CommitHook observes the pending operations of a commit before anything is
// written. It runs exactly once per Commit and may extend the commit's inserts
// through PendingPhase.Enqueue.
type CommitHook interface {
	BeforeCommit(ctx context.Context, phase *PendingPhase) error
}

// AfterCommitHook is implemented by hooks that want the entities they
// enqueued once the transaction has committed.
type AfterCommitHook interface {
	AfterCommit(ctx context.Context, enqueued []any)
}

// Store is the entry point to the persistence engine. Hooks are registered at
// startup and read-only once the store is sealed.
type Store struct {
	db     *gorm.DB
	hooks  []CommitHook
	sealed bool
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

// Use registers commit hooks. Hooks run in registration order.
func (s *Store) Use(hooks ...CommitHook) error {
	if s.sealed {
		return ErrStoreSealed
	}
	s.hooks = append(s.hooks, hooks...)
	return nil
}

// Seal freezes the hook list. Call before the store is shared between requests.
func (s *Store) Seal() {
	s.sealed = true
}

// Begin starts a new unit of work. A UnitOfWork belongs to one request and is
// not safe for concurrent use.
func (s *Store) Begin() *UnitOfWork {
	return &UnitOfWork{db: s.db, hooks: s.hooks}
}

// PendingPhase is the view hooks get of a commit that has not been written yet.
type PendingPhase struct {
	inserts  []any
	updates  []any
	deletes  []any
	enqueued []any
	closed   bool
}

func (p *PendingPhase) Inserts() []any { return slices.Clone(p.inserts) }
func (p *PendingPhase) Updates() []any { return slices.Clone(p.updates) }
func (p *PendingPhase) Deletes() []any { return slices.Clone(p.deletes) }

// Enqueue adds an insert to the commit in progress. Enqueued entities are
// written after the business operations and are not shown to hooks again.
func (p *PendingPhase) Enqueue(entity any) error {
	if p.closed {
		return ErrPhaseClosed
	}
	if err := checkEntity(entity); err != nil {
		return err
	}
	p.enqueued = append(p.enqueued, entity)
	return nil
}

// UnitOfWork collects inserts, updates and deletes and writes them in a single
// transaction on Commit.
type UnitOfWork struct {
	db         *gorm.DB
	hooks      []CommitHook
	inserts    []any
	updates    []any
	deletes    []any
	committing bool
}

func (u *UnitOfWork) Add(entity any) error {
	return u.schedule(&u.inserts, entity)
}

// Update schedules an existing row for rewrite. The entity must carry its
// primary key; updates never fall back to an insert.
func (u *UnitOfWork) Update(entity any) error {
	return u.schedule(&u.updates, entity, u.requirePrimaryKey)
}

func (u *UnitOfWork) Delete(entity any) error {
	return u.schedule(&u.deletes, entity)
}

func (u *UnitOfWork) schedule(set *[]any, entity any, checks ...func(any) error) error {
	if u.committing {
		return ErrCommitInProgress
	}
	if err := checkEntity(entity); err != nil {
		return err
	}
	for _, check := range checks {
		if err := check(entity); err != nil {
			return err
		}
	}
	*set = append(*set, entity)
	return nil
}

func (u *UnitOfWork) requirePrimaryKey(entity any) error {
	stmt := &gorm.Statement{DB: u.db}
	if err := stmt.Parse(entity); err != nil {
		return fmt.Errorf("%T: %w", entity, err)
	}
	if len(stmt.Schema.PrimaryFields) == 0 {
		return fmt.Errorf("%T: %w", entity, ErrMissingPrimaryKey)
	}
	rv := reflect.ValueOf(entity)
	for _, field := range stmt.Schema.PrimaryFields {
		if _, zero := field.ValueOf(context.Background(), rv); zero {
			return fmt.Errorf("%T: %w", entity, ErrMissingPrimaryKey)
		}
	}
	return nil
}

// Pending reports the number of scheduled operations.
func (u *UnitOfWork) Pending() int {
	return len(u.inserts) + len(u.updates) + len(u.deletes)
}

// Rollback discards everything scheduled so far.
func (u *UnitOfWork) Rollback() {
	u.reset()
}

// Commit runs the pending phase, then writes inserts, updates, deletes and
// hook-enqueued inserts in one transaction. The scheduled operations are
// consumed whether or not the commit succeeds.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.committing {
		return ErrCommitInProgress
	}
	if u.Pending() == 0 {
		return nil
	}

	u.committing = true
	defer func() {
		u.committing = false
		u.reset()
	}()

	phase := &PendingPhase{
		inserts: u.inserts,
		updates: u.updates,
		deletes: u.deletes,
	}
	for _, hook := range u.hooks {
		if err := hook.BeforeCommit(ctx, phase); err != nil {
			return fmt.Errorf("pre-commit hook failed: %w", err)
		}
	}
	phase.closed = true

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, entity := range u.inserts {
			if err := tx.Create(entity).Error; err != nil {
				return fmt.Errorf("insert %T: %w", entity, err)
			}
		}
		for _, entity := range u.updates {
			result := tx.Model(entity).Select("*").Omit("CreatedAt").Updates(entity)
			if result.Error != nil {
				return fmt.Errorf("update %T: %w", entity, result.Error)
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("update %T: %w", entity, ErrNoRowsAffected)
			}
		}
		for _, entity := range u.deletes {
			result := tx.Delete(entity)
			if result.Error != nil {
				return fmt.Errorf("delete %T: %w", entity, result.Error)
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("delete %T: %w", entity, ErrNoRowsAffected)
			}
		}
		for _, entity := range phase.enqueued {
			if err := tx.Create(entity).Error; err != nil {
				return fmt.Errorf("insert %T: %w", entity, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, hook := range u.hooks {
		if after, ok := hook.(AfterCommitHook); ok {
			after.AfterCommit(ctx, phase.enqueued)
		}
	}
	return nil
}

func (u *UnitOfWork) reset() {
	u.inserts = nil
	u.updates = nil
	u.deletes = nil
}

func checkEntity(entity any) error {
	if entity == nil {
		return ErrInvalidEntity
	}
	v := reflect.ValueOf(entity)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return ErrInvalidEntity
	}
	return nil
}
