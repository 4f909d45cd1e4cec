package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/journal"
)

type journalRepository struct {
	db *sqlx.DB
}

var _ journal.Repository = (*journalRepository)(nil)

func NewJournalRepository(db *sqlx.DB) journal.Repository {
	return &journalRepository{db: db}
}

func (repo *journalRepository) CreateEntry(ctx context.Context, e journal.Entry) (journal.Entry, error) {
	e.CreatedAt = e.CreatedAt.UTC()
	_, err := repo.db.NamedExecContext(ctx,
		"INSERT INTO journal_entries (id, user_id, content, mood_rating, created_at) "+
			"VALUES (:id, :user_id, :content, :mood_rating, :created_at)",
		e,
	)
	if err != nil {
		return journal.Entry{}, errors.Wrap(err, "inserting journal entry")
	}
	return e, nil
}

func (repo *journalRepository) ListEntries(ctx context.Context, ownerID string, limit int) ([]journal.Entry, error) {
	entries := make([]journal.Entry, 0)
	ord := core.DBOrdering{Field: "created_at"}
	query := repo.db.Rebind(
		"SELECT id, user_id, content, mood_rating, created_at FROM journal_entries " +
			"WHERE user_id = ? ORDER BY " + ord.String() + " LIMIT ?",
	)
	if err := repo.db.SelectContext(ctx, &entries, query, ownerID, limit); err != nil {
		return nil, errors.Wrap(err, "selecting journal entries")
	}
	for i := range entries {
		entries[i].CreatedAt = entries[i].CreatedAt.UTC()
	}
	return entries, nil
}
