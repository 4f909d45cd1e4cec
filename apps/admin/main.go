package main

import (
	"log"
	"os"

	"github.com/pkg/errors"

	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/user"
	logsvc "github.com/Prajwal-weladi/mentalhealthsupportsystem-96/services/logger"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/storage/database"
	sqlxrepos "github.com/Prajwal-weladi/mentalhealthsupportsystem-96/storage/database/sqlx"
)

var logger core.Logger

func main() {
	conf := core.NewConfig()

	stdLogger := log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	rollbarLogger := logsvc.NewRollbarLogger(stdLogger, conf)
	rollbarLogger.Enable(!conf.Debug)
	logger = rollbarLogger

	if conf.Database.Engine == database.EngineMemory {
		errAndDie(errors.New("admin needs a persistent database engine (postgres or sqlite3)"))
	}

	// set up DB
	errAndDie(database.CreateIfNotExist(conf))
	db, err := database.Open(conf)
	errAndDie(err)

	// start CLI
	cli := commandLine{
		conf:   conf,
		db:     db,
		usrSvc: user.NewService(sqlxrepos.NewUserRepository(db)),
		out:    os.Stdout,
	}
	err = cli.run(os.Args)
	_ = db.Close()
	if err != nil {
		if err != errHelp {
			logger.Error("error: "+err.Error(), err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
}
