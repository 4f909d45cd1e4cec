package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/assessment"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/journal"
	testutil "github.com/Prajwal-weladi/mentalhealthsupportsystem-96/tests"
)

func action(t *testing.T, a string) []byte {
	return marchallObj(t, map[string]string{"action": a})
}

func Test_dashboardApi_firstVisit(t *testing.T) {
	app := setup(t)
	amy := testutil.CreateUser(t, usrRepo, "Amy Pond", "amy@test.edu", "Gr0nimo!x", nil, true)
	token := getToken(t, amy)

	rec := do(app, http.MethodGet, "/v1/dashboard", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(app, http.MethodGet, "/v1/dashboard", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	snap := decode(t, rec)
	assert.Equal(t, "welcome_prompt", snap["state"])
	assert.Equal(t, "Welcome back, Amy!", snap["greeting"])
	assert.Nil(t, snap["phq9"])
	assert.Nil(t, snap["gad7"])
	assert.Nil(t, snap["mood"])
	assert.Empty(t, snap["recent_scores"])
	assert.Empty(t, snap["notifications"])
	assert.Len(t, snap["mood_scale"], 10)
	av := snap["avatar"].(map[string]interface{})
	assert.Equal(t, "AP", av["initials"])
	assert.Equal(t, "lg", av["size"])

	runHTTPTests(t, app, []httpTest{
		{name: "unknown action", method: http.MethodPost, path: "/v1/dashboard/actions", body: action(t, "dance"), token: token, wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "unknown dashboard action"})},
		{name: "internal action", method: http.MethodPost, path: "/v1/dashboard/actions", body: action(t, "prompt_required"), token: token, wantCode: http.StatusBadRequest},
		{name: "complete from prompt", method: http.MethodPost, path: "/v1/dashboard/actions", body: action(t, "complete"), token: token, wantCode: http.StatusBadRequest},
	})

	// the prompt stays up across reloads until dismissed
	rec = do(app, http.MethodGet, "/v1/dashboard", token)
	assert.Equal(t, "welcome_prompt", decode(t, rec)["state"])

	rec = do(app, http.MethodPost, "/v1/dashboard/actions", token, action(t, "skip_prompt"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "normal", decode(t, rec)["state"])

	rec = do(app, http.MethodPost, "/v1/dashboard/actions", token, action(t, "skip_prompt"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "invalid dashboard transition")

	// every mount asks again while a questionnaire is missing
	rec = do(app, http.MethodGet, "/v1/dashboard", token)
	assert.Equal(t, "welcome_prompt", decode(t, rec)["state"])

	rec = do(app, http.MethodPost, "/v1/dashboard/actions", token, action(t, "complete"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "invalid dashboard transition")
}

func Test_dashboardApi_returningUser(t *testing.T) {
	app := setup(t)
	amy := testutil.CreateUser(t, usrRepo, "Amy Pond", "amy@test.edu", "Gr0nimo!x", nil, true)
	token := getToken(t, amy)

	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	testutil.CreateResponse(t, assessmentRepo, amy.ID, assessment.PHQ9, []int{0, 0, 0, 1, 1, 1, 0, 0, 0}, at)
	testutil.CreateResponse(t, assessmentRepo, amy.ID, assessment.GAD7, []int{3, 3, 3, 2, 2, 2, 1}, at.Add(time.Hour))

	rec := do(app, http.MethodGet, "/v1/dashboard", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	snap := decode(t, rec)
	assert.Equal(t, "normal", snap["state"])
	assert.Len(t, snap["recent_scores"], 2)

	phq9 := snap["phq9"].(map[string]interface{})
	assert.Equal(t, "Depression Assessment", phq9["title"])
	assert.EqualValues(t, 3, phq9["total_score"])
	assert.EqualValues(t, 27, phq9["max_score"])
	assert.Equal(t, "Minimal", phq9["severity_level"])
	assert.Equal(t, "default", phq9["badge_variant"])

	gad7 := snap["gad7"].(map[string]interface{})
	assert.EqualValues(t, 16, gad7["total_score"])
	assert.Equal(t, "Severe", gad7["severity_level"])
	assert.Equal(t, "destructive", gad7["badge_variant"])
}

func Test_dashboardApi_selectMood(t *testing.T) {
	app := setup(t)
	amy := testutil.CreateUser(t, usrRepo, "Amy Pond", "amy@test.edu", "Gr0nimo!x", nil, true)
	token := getToken(t, amy)

	runHTTPTests(t, app, []httpTest{
		{name: "Auth required", method: http.MethodPut, path: "/v1/dashboard/mood", body: []byte(`{"rating": 5}`), wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "too low", method: http.MethodPut, path: "/v1/dashboard/mood", body: []byte(`{"rating": 0}`), token: token, wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"rating": "mood rating must be between 1 and 10"})},
		{name: "too high", method: http.MethodPut, path: "/v1/dashboard/mood", body: []byte(`{"rating": 11}`), token: token, wantCode: http.StatusBadRequest},
		{name: "not a number", method: http.MethodPut, path: "/v1/dashboard/mood", body: []byte(`{"rating": "great"}`), token: token, wantCode: http.StatusBadRequest},
	})

	rec := do(app, http.MethodPut, "/v1/dashboard/mood", token, []byte(`{"rating": 7}`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	m := decode(t, rec)["mood"].(map[string]interface{})
	assert.EqualValues(t, 7, m["rating"])
	assert.Equal(t, "🙂", m["emoji"])
	assert.Equal(t, "You selected: 🙂 (7/10)", m["acknowledgment"])
}

func Test_assessmentApi(t *testing.T) {
	app := setup(t)
	amy := testutil.CreateUser(t, usrRepo, "Amy Pond", "amy@test.edu", "Gr0nimo!x", nil, true)
	token := getToken(t, amy)

	body := func(kind string, answers ...int) []byte {
		return marchallObj(t, assessment.NewResponse{Kind: assessment.Kind(kind), Answers: answers})
	}

	runHTTPTests(t, app, []httpTest{
		{name: "Auth required", path: "/v1/assessments", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "none yet", path: "/v1/assessments", token: token, wantCode: http.StatusOK, wantData: marchallList(t)},
		{name: "unknown kind", method: http.MethodPost, path: "/v1/assessments", body: body("BDI", 1, 1), token: token, wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"kind": "must be one of: PHQ9, GAD7"})},
		{name: "missing answers", method: http.MethodPost, path: "/v1/assessments", body: body("GAD7"), token: token, wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"answers": "this field is required"})},
		{name: "answer count", method: http.MethodPost, path: "/v1/assessments", body: body("GAD7", 1, 1, 1), token: token, wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"answers": "GAD7 requires 7 answers"})},
		{name: "answer range", method: http.MethodPost, path: "/v1/assessments", body: body("GAD7", 1, 1, 1, 1, 1, 1, 4), token: token, wantCode: http.StatusBadRequest},
	})

	// the first visit raises the prompt; the PHQ-9 starts from it
	do(app, http.MethodGet, "/v1/dashboard", token)
	rec := do(app, http.MethodPost, "/v1/dashboard/actions", token, action(t, "start_phq9"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "phq9_active", decode(t, rec)["state"])

	rec = do(app, http.MethodPost, "/v1/assessments", token, body("PHQ9", 2, 2, 2, 2, 1, 1, 1, 0, 0))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	data := decode(t, rec)
	resp := data["response"].(map[string]interface{})
	assert.EqualValues(t, 11, resp["total_score"])
	assert.Equal(t, "Moderate", resp["severity_level"])
	assert.Equal(t, amy.ID, resp["user_id"])

	snap := data["dashboard"].(map[string]interface{})
	assert.Equal(t, "normal", snap["state"])
	phq9 := snap["phq9"].(map[string]interface{})
	assert.EqualValues(t, 11, phq9["total_score"])
	assert.Equal(t, "destructive", phq9["badge_variant"])

	rec = do(app, http.MethodGet, "/v1/assessments", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"questionnaire_type":"PHQ9"`)
}

func Test_journalApi(t *testing.T) {
	app := setup(t)
	amy := testutil.CreateUser(t, usrRepo, "Amy Pond", "amy@test.edu", "Gr0nimo!x", nil, true)
	token := getToken(t, amy)

	runHTTPTests(t, app, []httpTest{
		{name: "Auth required", path: "/v1/journal", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "empty", path: "/v1/journal", token: token, wantCode: http.StatusOK, wantData: marchallList(t)},
		{name: "blank entry is skipped", method: http.MethodPost, path: "/v1/journal", body: []byte(`{"content": "  \n "}`), token: token, wantCode: http.StatusOK, wantData: []byte(`{"saved": false}`)},
	})

	// the selected mood goes with the entry and is then cleared
	do(app, http.MethodPut, "/v1/dashboard/mood", token, []byte(`{"rating": 3}`))
	rec := do(app, http.MethodPost, "/v1/journal", token, []byte(`{"content": "Raggedy Doctor"}`))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	res := decode(t, rec)
	assert.Equal(t, true, res["saved"])
	entry := res["entry"].(map[string]interface{})
	assert.Equal(t, "Raggedy Doctor", entry["content"])
	assert.EqualValues(t, 3, entry["mood_rating"])
	assert.Equal(t, map[string]interface{}{
		"title":       "Journal entry saved",
		"description": "Your thoughts have been recorded.",
		"variant":     "default",
	}, res["notification"])

	rec = do(app, http.MethodGet, "/v1/dashboard", token)
	assert.Nil(t, decode(t, rec)["mood"])

	rec = do(app, http.MethodPost, "/v1/journal", token, []byte(`{"content": "Fish custard", "mood_rating": 9}`))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(app, http.MethodGet, "/v1/journal", token)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "Fish custard", list[0]["content"])
	assert.Equal(t, "Raggedy Doctor", list[1]["content"])

	rec = do(app, http.MethodGet, "/v1/journal?limit=1", token)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

type failingJournalRepo struct{}

func (failingJournalRepo) CreateEntry(context.Context, journal.Entry) (journal.Entry, error) {
	return journal.Entry{}, errors.New("connection refused")
}

func (failingJournalRepo) ListEntries(context.Context, string, int) ([]journal.Entry, error) {
	return nil, errors.New("connection refused")
}

func Test_journalApi_storeFailure(t *testing.T) {
	app := setup(t, failingJournalRepo{})
	amy := testutil.CreateUser(t, usrRepo, "Amy Pond", "amy@test.edu", "Gr0nimo!x", nil, true)
	token := getToken(t, amy)

	do(app, http.MethodPut, "/v1/dashboard/mood", token, []byte(`{"rating": 8}`))

	runHTTPTests(t, app, []httpTest{
		{
			name: "save reports a notification", method: http.MethodPost, path: "/v1/journal", body: []byte(`{"content": "Bow ties are cool"}`), token: token,
			wantCode: http.StatusOK,
			wantData: []byte(`{"saved": false, "notification": {"title": "Error", "description": "Failed to save journal entry.", "variant": "destructive"}}`),
		},
		{name: "list fails", path: "/v1/journal", token: token, wantCode: http.StatusInternalServerError, wantData: marchallObj(t, httpErr{Error: "Internal Server Error"})},
	})

	// the mood survives a failed save
	rec := do(app, http.MethodGet, "/v1/dashboard", token)
	m := decode(t, rec)["mood"].(map[string]interface{})
	assert.EqualValues(t, 8, m["rating"])
}
