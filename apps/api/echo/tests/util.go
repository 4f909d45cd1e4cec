package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	. "github.com/Prajwal-weladi/mentalhealthsupportsystem-96/apps/api/echo"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/assessment"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/dashboard"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/journal"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/user"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/video"
	logsvc "github.com/Prajwal-weladi/mentalhealthsupportsystem-96/services/logger"
	inmemdb "github.com/Prajwal-weladi/mentalhealthsupportsystem-96/storage/database/inmem"
	testutil "github.com/Prajwal-weladi/mentalhealthsupportsystem-96/tests"
)

var (
	conf           *core.Config
	usrRepo        user.Repository
	assessmentRepo assessment.Repository

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errNoUser       = httpErr{Error: "user not authenticated"}
)

// setup builds a server on fresh in-memory repositories.
// A non-nil jRepo replaces the journal repository.
func setup(t *testing.T, jRepo ...journal.Repository) *Server {
	conf = testutil.NewConfig(t)
	db := inmemdb.NewDB()
	usrRepo = inmemdb.NewUserRepository(db)
	assessmentRepo = inmemdb.NewAssessmentRepository(db)
	journalRepo := inmemdb.NewJournalRepository(db)
	if len(jRepo) > 0 && jRepo[0] != nil {
		journalRepo = jRepo[0]
	}

	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "API : ", 0), conf)
	logger.Enable(false)

	validate, translator := user.NewTestValidator()
	assessment.InitValidators(validate, translator)

	journalSvc := journal.NewService(journalRepo)
	return NewServer(ServerDeps{
		Conf:          conf,
		Logger:        logger,
		UserSvc:       user.NewService(usrRepo),
		AssessmentSvc: assessment.NewService(assessmentRepo),
		JournalSvc:    journalSvc,
		DashboardSvc:  dashboard.NewService(assessment.NewLoader(assessmentRepo), journalSvc, logger, conf),
		Players:       video.NewRegistry(),
		Validate:      validate,
		Translator:    translator,
	})
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	token, err := GenerateToken(conf, GetUserClaims(conf, usr))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

// do serves one request and returns the recorder.
func do(app http.Handler, method, path, token string, data ...[]byte) *httptest.ResponseRecorder {
	req, rec := newAuthRequest(method, path, token, data...)
	app.ServeHTTP(rec, req)
	return rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

// decode unmarshals a JSON object response.
func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode() failed: %v; body %s", err, rec.Body.String())
	}
	return m
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, app http.Handler, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			rec := do(app, method, tt.path, tt.token, tt.body)
			checkCodeAndData(t, tt, rec)
		})
	}
}
