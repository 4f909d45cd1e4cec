package inmemdb

import (
	"context"
	"sort"

	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/journal"
)

type journalRepository struct {
	db *journalTable
}

func NewJournalRepository(db *DB) journal.Repository {
	return &journalRepository{db: db.journal}
}

func (repo *journalRepository) CreateEntry(_ context.Context, e journal.Entry) (journal.Entry, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.rows = append(repo.db.rows, e)
	return e, nil
}

func (repo *journalRepository) ListEntries(_ context.Context, ownerID string, limit int) ([]journal.Entry, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	entries := make([]journal.Entry, 0)
	for i := len(repo.db.rows) - 1; i >= 0; i-- { // latest insert first on equal timestamps
		if e := repo.db.rows[i]; e.OwnerID == ownerID {
			entries = append(entries, e)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].CreatedAt.After(entries[j].CreatedAt) })
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
