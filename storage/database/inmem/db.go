// Package inmemdb keeps the app data in process memory, for DEV runs and tests.
package inmemdb

import (
	"sync"

	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/assessment"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/journal"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/user"
)

type (
	DB struct {
		user       *userTable
		assessment *responseTable
		journal    *journalTable
	}

	userTable struct {
		mutex sync.RWMutex
		table map[string]*user.User
	}

	responseTable struct {
		mutex sync.RWMutex
		rows  []assessment.Response // insertion order
	}

	journalTable struct {
		mutex sync.RWMutex
		rows  []journal.Entry // insertion order
	}
)

func NewDB() *DB {
	return &DB{
		user:       &userTable{table: make(map[string]*user.User)},
		assessment: &responseTable{},
		journal:    &journalTable{},
	}
}
