package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Repositories struct {
	Photo      PhotoRepository
	Collection CollectionRepository
	Link       LinkRepository
	Project    ProjectRepository
	Skill      SkillRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Photo:      NewPhotoRepository(db),
		Collection: NewCollectionRepository(db),
		Link:       NewLinkRepository(db),
		Project:    NewProjectRepository(db),
		Skill:      NewSkillRepository(db),
	}
}

const pqUniqueViolation = "23505"

// uniqueViolation returns the violated constraint name when err is a
// PostgreSQL unique violation.
func uniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return pqErr.Constraint, true
	}
	return "", false
}

func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
