package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/Prajwal-weladi/mentalhealthsupportsystem-96/apps/api/echo"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/avatar"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/video"
	testutil "github.com/Prajwal-weladi/mentalhealthsupportsystem-96/tests"
)

func toList(videos []video.Video) []interface{} {
	out := make([]interface{}, 0, len(videos))
	for _, v := range videos {
		out = append(out, v)
	}
	return out
}

func Test_videoApi_catalog(t *testing.T) {
	app := setup(t)

	meditation, err := video.Get("meditation-1")
	require.NoError(t, err)
	sleep, err := video.Get("sleep-6")
	require.NoError(t, err)

	categories := make([]interface{}, 0, len(video.Categories))
	for _, c := range video.Categories {
		categories = append(categories, CategoryView{Name: c, Style: video.StyleOf(c)})
	}

	runHTTPTests(t, app, []httpTest{
		{name: "all", path: "/v1/videos", wantCode: http.StatusOK, wantData: marchallList(t, toList(video.Catalog())...)},
		{name: "category=All", path: "/v1/videos?category=All", wantCode: http.StatusOK, wantData: marchallList(t, toList(video.Catalog())...)},
		{name: "category=Meditation", path: "/v1/videos?category=Meditation", wantCode: http.StatusOK, wantData: marchallList(t, meditation)},
		{name: "category is case-sensitive", path: "/v1/videos?category=meditation", wantCode: http.StatusOK, wantData: marchallList(t)},
		{name: "unknown category", path: "/v1/videos?category=Cooking", wantCode: http.StatusOK, wantData: marchallList(t)},
		{name: "featured", path: "/v1/videos/featured", wantCode: http.StatusOK, wantData: marchallList(t, toList(video.Featured())...)},
		{name: "categories", path: "/v1/videos/categories", wantCode: http.StatusOK, wantData: marchallList(t, categories...)},
		{name: "retrieve", path: "/v1/videos/sleep-6", wantCode: http.StatusOK, wantData: marchallObj(t, sleep)},
		{name: "retrieve (unknown)", path: "/v1/videos/nope", wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "video not found"})},
	})
}

func Test_videoApi_players(t *testing.T) {
	app := setup(t)
	amy := testutil.CreateUser(t, usrRepo, "Amy Pond", "amy@test.edu", "Gr0nimo!x", nil, true)
	rory := testutil.CreateUser(t, usrRepo, "Rory Williams", "rory@test.edu", "C3nturion#", nil, true)
	token := getToken(t, amy)

	open := func(videoID string, modal, autoplay bool) map[string]interface{} {
		rec := do(app, http.MethodPost, "/v1/players", token, marchallObj(t, OpenPlayerRequest{VideoID: videoID, Modal: modal, Autoplay: autoplay}))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		return decode(t, rec)
	}

	runHTTPTests(t, app, []httpTest{
		{name: "Auth required", method: http.MethodPost, path: "/v1/players", body: marchallObj(t, OpenPlayerRequest{VideoID: "sleep-6"}), wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "video required", method: http.MethodPost, path: "/v1/players", body: []byte(`{}`), token: token, wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"video_id": "this field is required"})},
		{name: "unknown video", method: http.MethodPost, path: "/v1/players", body: marchallObj(t, OpenPlayerRequest{VideoID: "nope"}), token: token, wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "video not found"})},
		{name: "unknown player", method: http.MethodPost, path: "/v1/players/nope/play", token: token, wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "player not found"})},
		{name: "nothing playing", path: "/v1/players/now-playing", token: token, wantCode: http.StatusNoContent},
	})

	t.Run("modal", func(t *testing.T) {
		p := open("breathing-3", true, true)
		assert.Equal(t, "collapsed", p["state"])
		assert.Equal(t, "https://img.youtube.com/vi/GZzhk9jEkkI/maxresdefault.jpg", p["thumbnail"])
		assert.Nil(t, p["embed_url"])
		assert.Equal(t, map[string]interface{}{"icon": "Wind", "color": "bg-kawaii-pink text-white"}, p["style"])
		id := p["id"].(string)

		// players are private to their owner
		rec := do(app, http.MethodPost, "/v1/players/"+id+"/play", getToken(t, rory))
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = do(app, http.MethodPost, "/v1/players/"+id+"/close", token)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "a collapsed player cannot be closed")

		rec = do(app, http.MethodPost, "/v1/players/"+id+"/play", token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		p = decode(t, rec)
		assert.Equal(t, "expanded", p["state"])
		assert.Equal(t, "https://www.youtube.com/embed/GZzhk9jEkkI?autoplay=1&rel=0", p["embed_url"])
		assert.Nil(t, p["thumbnail"])

		rec = do(app, http.MethodGet, "/v1/players/now-playing", token)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "breathing-3", decode(t, rec)["id"])

		rec = do(app, http.MethodPost, "/v1/players/"+id+"/play", token)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "already expanded")

		rec = do(app, http.MethodPost, "/v1/players/"+id+"/close", token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "collapsed", decode(t, rec)["state"])

		rec = do(app, http.MethodGet, "/v1/players/now-playing", token)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("inline", func(t *testing.T) {
		p := open("depression-5", false, false)
		id := p["id"].(string)

		rec := do(app, http.MethodPost, "/v1/players/"+id+"/play", token)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://www.youtube.com/embed/z-IR48Mb3W0?autoplay=0&rel=0", decode(t, rec)["embed_url"])

		rec = do(app, http.MethodPost, "/v1/players/"+id+"/close", token)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "inline players have no close control")

		rec = do(app, http.MethodGet, "/v1/players/now-playing", token)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func Test_avatarApi(t *testing.T) {
	app := setup(t)
	online, offline := true, false

	runHTTPTests(t, app, []httpTest{
		{
			name: "generated", path: "/v1/avatar?name=Amy%20Pond", wantCode: http.StatusOK,
			wantData: marchallObj(t, avatar.Render(conf.AvatarService, avatar.Options{Name: "Amy Pond"})),
		},
		{
			name: "mood, presence & size", path: "/v1/avatar?name=Rory&mood=calm&online=true&size=xl", wantCode: http.StatusOK,
			wantData: marchallObj(t, avatar.Render(conf.AvatarService, avatar.Options{
				Name: "Rory", Mood: avatar.MoodCalm, ShowMoodBadge: true, Online: &online, Size: avatar.SizeXLarge,
			})),
		},
		{
			name: "offline with image", path: "/v1/avatar?name=Clara&online=false&image_url=https://cdn.test/clara.png", wantCode: http.StatusOK,
			wantData: marchallObj(t, avatar.Render(conf.AvatarService, avatar.Options{
				Name: "Clara", ImageURL: "https://cdn.test/clara.png", Online: &offline,
			})),
		},
		{name: "bad online flag", path: "/v1/avatar?name=Clara&online=maybe", wantCode: http.StatusBadRequest},
		{
			name: "unknown size", path: "/v1/avatar?name=Clara&size=huge", wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"size": "must be one of: sm md lg xl"}),
		},
	})

	rec := do(app, http.MethodGet, "/v1/avatar?name=Amy%20Pond&mood=grumpy", "")
	require.Equal(t, http.StatusOK, rec.Code)
	v := decode(t, rec)
	assert.Equal(t, "https://ui-avatars.com/api/?name=Amy%20Pond&background=b4a7d6&color=fff&size=200&format=svg&bold=true&rounded=true", v["image_url"])
	assert.Equal(t, map[string]interface{}{"emoji": "😐", "class": "bg-muted"}, v["mood_badge"])
	assert.Equal(t, "md", v["size"])
}
