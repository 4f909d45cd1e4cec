package dig_container

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/Prajwal-weladi/mentalhealthsupportsystem-96/apps/api/echo"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/assessment"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/dashboard"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/journal"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/user"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/video"
	logsvc "github.com/Prajwal-weladi/mentalhealthsupportsystem-96/services/logger"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/storage/database"
	inmemdb "github.com/Prajwal-weladi/mentalhealthsupportsystem-96/storage/database/inmem"
	sqlxrepos "github.com/Prajwal-weladi/mentalhealthsupportsystem-96/storage/database/sqlx"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

// Storage is the repository set of the configured database engine.
type Storage struct {
	dig.Out
	DB         *sqlx.DB // nil for the memory engine
	User       user.Repository
	Assessment assessment.Repository
	Journal    journal.Repository
}

type StorageParam struct {
	dig.In
	DB *sqlx.DB
}

type ServerParams struct {
	dig.In
	Conf          *core.Config
	Logger        core.Logger
	UserSvc       *user.Service
	AssessmentSvc *assessment.Service
	JournalSvc    *journal.Service
	DashboardSvc  *dashboard.Service
	Players       *video.Registry
	Validate      *validator.Validate
	Translator    ut.Translator
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newStorage(conf *core.Config, loggerParam DBLoggerParam) Storage {
	if conf.Database.Engine == database.EngineMemory {
		mem := inmemdb.NewDB()
		return Storage{
			User:       inmemdb.NewUserRepository(mem),
			Assessment: inmemdb.NewAssessmentRepository(mem),
			Journal:    inmemdb.NewJournalRepository(mem),
		}
	}

	setUp := func() (*sqlx.DB, error) {
		if err := database.CreateIfNotExist(conf); err != nil {
			return nil, err
		}

		db, err := database.Open(conf)
		if err != nil {
			return nil, err
		}

		if err = database.Migrate(context.Background(), db, conf.Database.Engine); err != nil {
			return nil, err
		}
		return db, nil
	}

	db, err := setUp()
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	return Storage{
		DB:         db,
		User:       sqlxrepos.NewUserRepository(db),
		Assessment: sqlxrepos.NewAssessmentRepository(db),
		Journal:    sqlxrepos.NewJournalRepository(db),
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

func newValidator(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	assessment.InitValidators(validate, translator)
	return validate
}

func newServer(p ServerParams) *echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:          p.Conf,
		Logger:        p.Logger,
		UserSvc:       p.UserSvc,
		AssessmentSvc: p.AssessmentSvc,
		JournalSvc:    p.JournalSvc,
		DashboardSvc:  p.DashboardSvc,
		Players:       p.Players,
		Validate:      p.Validate,
		Translator:    p.Translator,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newStorage))
	must(c.Provide(newTranslator))
	must(c.Provide(newValidator))
	must(c.Provide(user.NewService))
	must(c.Provide(assessment.NewService))
	must(c.Provide(assessment.NewLoader))
	must(c.Provide(journal.NewService))
	must(c.Provide(dashboard.NewService))
	must(c.Provide(video.NewRegistry))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
