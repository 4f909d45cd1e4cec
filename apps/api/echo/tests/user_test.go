package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/Prajwal-weladi/mentalhealthsupportsystem-96/apps/api/echo"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/user"
	testutil "github.com/Prajwal-weladi/mentalhealthsupportsystem-96/tests"
)

func Test_userApi_register(t *testing.T) {
	app := setup(t)
	testutil.CreateUser(t, usrRepo, "Amy Pond", "amy@test.edu", "Gr0nimo!x", nil, true)

	body := func(name, email, pwd, confirm string) []byte {
		return marchallObj(t, map[string]interface{}{
			"full_name":        name,
			"email":            email,
			"password":         pwd,
			"password_confirm": confirm,
			"roles":            []string{user.RoleAdmin},
		})
	}

	t.Run("created as student", func(t *testing.T) {
		rec := do(app, http.MethodPost, "/v1/users/register", "", body(" Rory Williams ", "Rory@Test.edu", "C3nturion#", "C3nturion#"))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var got user.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.NotEmpty(t, got.ID)
		assert.Equal(t, "Rory Williams", got.FullName)
		assert.Equal(t, "rory@test.edu", got.Email)
		assert.True(t, got.IsActive)
		assert.Equal(t, []string{user.RoleStudent}, got.Roles)
		assert.NotContains(t, rec.Body.String(), "password")

		stored, err := usrRepo.GetUserByEmail(context.Background(), "rory@test.edu")
		require.NoError(t, err)
		assert.NoError(t, stored.CheckPassword("C3nturion#"))
	})

	tests := []struct {
		name      string
		body      []byte
		wantField string
		wantError string
	}{
		{name: "duplicate email", body: body("Amy", "AMY@test.edu", "C3nturion#", "C3nturion#"), wantField: "email", wantError: user.ErrEmailExists.Error()},
		{name: "blank name", body: body("   ", "river@test.edu", "C3nturion#", "C3nturion#"), wantField: "full_name", wantError: "this field is required"},
		{name: "bad email", body: body("River", "river", "C3nturion#", "C3nturion#"), wantField: "email"},
		{name: "mismatch", body: body("River", "river@test.edu", "C3nturion#", "C3nturion$"), wantField: "password_confirm"},
		{name: "short password", body: body("River", "river@test.edu", "Ab1!", "Ab1!"), wantField: "password", wantError: "password must contain at least 8 characters"},
		{name: "weak password", body: body("River", "river@test.edu", "spoilers", "spoilers"), wantField: "password", wantError: user.PasswordPolicyText("pwdcplx")},
		{name: "password like name", body: body("River Song", "river@test.edu", "R1ver$ong", "R1ver$ong"), wantField: "password", wantError: user.PasswordPolicyText("pwdtoosim")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(app, http.MethodPost, "/v1/users/register", "", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			data := decode(t, rec)
			require.Contains(t, data, tt.wantField)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, data[tt.wantField])
			}
		})
	}

	t.Run("malformed body", func(t *testing.T) {
		rec := do(app, http.MethodPost, "/v1/users/register", "", []byte(`{"email": 42`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "malformed request", decode(t, rec)["error"])
	})
}

func Test_userApi_login(t *testing.T) {
	app := setup(t)
	amy := testutil.CreateUser(t, usrRepo, "Amy Pond", "amy@test.edu", "Gr0nimo!x", nil, true)
	testutil.CreateUser(t, usrRepo, "Clara Oswald", "clara@test.edu", "Imp0ssible!", nil, false)

	body := func(email, pwd string) []byte {
		return marchallObj(t, LoginRequest{Email: email, Password: pwd})
	}

	runHTTPTests(t, app, []httpTest{
		{name: "unknown email", method: http.MethodPost, path: "/v1/users/login", body: body("nobody@test.edu", "Gr0nimo!x"), wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "authentication failed"})},
		{name: "wrong password", method: http.MethodPost, path: "/v1/users/login", body: body("amy@test.edu", "geronimo"), wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "authentication failed"})},
		{name: "deactivated", method: http.MethodPost, path: "/v1/users/login", body: body("clara@test.edu", "Imp0ssible!"), wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "account deactivated"})},
		{name: "missing password", method: http.MethodPost, path: "/v1/users/login", body: body("amy@test.edu", ""), wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"password": "this field is required"})},
	})

	t.Run("success", func(t *testing.T) {
		rec := do(app, http.MethodPost, "/v1/users/login", "", body(" AMY@test.edu ", "Gr0nimo!x"))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		claims := new(Claims)
		_, err := jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) { return []byte(conf.SecretKey), nil })
		require.NoError(t, err)
		assert.Equal(t, amy.ID, claims.Subject)
		assert.Equal(t, "Amy Pond", claims.FullName)

		stored, err := usrRepo.GetUserByID(context.Background(), amy.ID)
		require.NoError(t, err)
		assert.NotNil(t, stored.LastLogin)

		// the token opens the authed endpoints
		rec = do(app, http.MethodGet, "/v1/users/me", resp.Token)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func Test_userApi_me(t *testing.T) {
	app := setup(t)
	amy := testutil.CreateUser(t, usrRepo, "Amy Pond", "amy@test.edu", "Gr0nimo!x", nil, true)
	ghost := user.User{ID: "ghost", Email: "ghost@test.edu"}

	expired := GetUserClaims(conf, amy)
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	expiredToken, err := GenerateToken(conf, expired)
	require.NoError(t, err)

	runHTTPTests(t, app, []httpTest{
		{name: "Auth required", path: "/v1/users/me", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "bad token", path: "/v1/users/me", token: "not-a-jwt", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, httpErr{Error: "invalid or expired jwt"})},
		{name: "expired token", path: "/v1/users/me", token: expiredToken, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, httpErr{Error: "invalid or expired jwt"})},
		{name: "unknown user", path: "/v1/users/me", token: getToken(t, ghost), wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errNoUser)},
		{name: "trailing slash", path: "/v1/users/me/", token: getToken(t, amy), wantCode: http.StatusOK, wantData: marchallObj(t, amy)},
	})
}

func Test_userApi_refreshToken(t *testing.T) {
	app := setup(t)
	amy := testutil.CreateUser(t, usrRepo, "Amy Pond", "amy@test.edu", "Gr0nimo!x", nil, true)
	clara := testutil.CreateUser(t, usrRepo, "Clara Oswald", "clara@test.edu", "Imp0ssible!", nil, false)

	stale := GetUserClaims(conf, amy, time.Now().Add(-conf.Server.JWTRefreshExpirationDelta-time.Minute).Unix())
	staleToken, err := GenerateToken(conf, stale)
	require.NoError(t, err)

	runHTTPTests(t, app, []httpTest{
		{name: "Auth required", method: http.MethodPost, path: "/v1/users/token-refresh", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "deactivated", method: http.MethodPost, path: "/v1/users/token-refresh", token: getToken(t, clara), wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "account deactivated"})},
		{name: "refresh expired", method: http.MethodPost, path: "/v1/users/token-refresh", token: staleToken, wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "refresh has expired"})},
	})

	t.Run("keeps the original issue time", func(t *testing.T) {
		orig := GetUserClaims(conf, amy, time.Now().Add(-time.Hour).Unix())
		token, err := GenerateToken(conf, orig)
		require.NoError(t, err)

		rec := do(app, http.MethodPost, "/v1/users/token-refresh", token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var resp LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		claims := new(Claims)
		_, err = jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) { return []byte(conf.SecretKey), nil })
		require.NoError(t, err)
		assert.Equal(t, orig.OrigIssuedAt, claims.OrigIssuedAt)
	})
}
