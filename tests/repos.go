package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/assessment"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/journal"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/user"
)

// Repos groups the repositories of one storage backend.
type Repos struct {
	User       user.Repository
	Assessment assessment.Repository
	Journal    journal.Repository
}

// RunRepositoryTests checks the behaviour every storage backend must share.
func RunRepositoryTests(t *testing.T, repos Repos) {
	ctx := context.Background()

	t.Run("users", func(t *testing.T) {
		amy := CreateUser(t, repos.User, "Amy Pond", "amy@test.edu", "Gr0nimo!x", nil, true)
		rory := CreateUser(t, repos.User, "Rory Williams", "rory@test.edu", "", []string{user.RoleCounselor, user.RoleAdmin}, true)

		got, err := repos.User.GetUserByID(ctx, amy.ID)
		require.NoError(t, err)
		assert.Equal(t, amy.Email, got.Email)
		assert.Equal(t, []string{user.RoleStudent}, got.Roles)
		assert.NoError(t, got.CheckPassword("Gr0nimo!x"))
		assert.Nil(t, got.LastLogin)

		got, err = repos.User.GetUserByEmail(ctx, "rory@test.edu")
		require.NoError(t, err)
		assert.Equal(t, rory.ID, got.ID)
		assert.Equal(t, []string{user.RoleCounselor, user.RoleAdmin}, got.Roles)

		_, err = repos.User.GetUserByID(ctx, uuid.NewString())
		assert.Equal(t, user.ErrNotFound, err)
		_, err = repos.User.GetUserByEmail(ctx, "nobody@test.edu")
		assert.Equal(t, user.ErrNotFound, err)

		assert.Equal(t, user.ErrEmailExists, repos.User.CheckEmailUniqueness(ctx, "amy@test.edu"))
		assert.NoError(t, repos.User.CheckEmailUniqueness(ctx, "amy@test.edu", amy.ID))
		assert.NoError(t, repos.User.CheckEmailUniqueness(ctx, "river@test.edu"))

		login := time.Now().UTC().Truncate(time.Microsecond)
		amy.FullName = "Amelia Pond"
		amy.LastLogin = &login
		updated, err := repos.User.UpdateUser(ctx, amy)
		require.NoError(t, err)
		assert.Equal(t, "Amelia Pond", updated.FullName)
		require.NotNil(t, updated.LastLogin)
		assert.True(t, login.Equal(*updated.LastLogin))

		_, err = repos.User.UpdateUser(ctx, user.User{ID: uuid.NewString(), Email: "ghost@test.edu"})
		assert.Equal(t, user.ErrNotFound, err)
	})

	t.Run("assessments", func(t *testing.T) {
		usr := CreateUser(t, repos.User, "Clara Oswald", "clara@test.edu", "", nil, true)
		other := CreateUser(t, repos.User, "Danny Pink", "danny@test.edu", "", nil, true)

		kinds, err := repos.Assessment.CompletedKinds(ctx, usr.ID)
		require.NoError(t, err)
		assert.Empty(t, kinds)

		base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
		for i := 0; i < 12; i++ {
			CreateResponse(t, repos.Assessment, usr.ID, assessment.PHQ9, []int{0, 0, 0, 0, 0, 0, 0, 0, i % 4}, base.Add(time.Duration(i)*time.Hour))
		}
		latestGAD := CreateResponse(t, repos.Assessment, usr.ID, assessment.GAD7, []int{2, 2, 2, 2, 2, 2, 2}, base.Add(100*time.Hour))
		CreateResponse(t, repos.Assessment, other.ID, assessment.GAD7, []int{3, 3, 3, 3, 3, 3, 3}, base.Add(200*time.Hour))

		kinds, err = repos.Assessment.CompletedKinds(ctx, usr.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []assessment.Kind{assessment.PHQ9, assessment.GAD7}, kinds)

		scores, err := repos.Assessment.RecentScores(ctx, usr.ID, assessment.RecentLimit)
		require.NoError(t, err)
		require.Len(t, scores, assessment.RecentLimit)
		assert.Equal(t, latestGAD.Score(), scores[0])
		for i := 1; i < len(scores); i++ {
			assert.False(t, scores[i].CompletedAt.After(scores[i-1].CompletedAt), "scores must be newest first")
		}
		assert.True(t, base.Add(11*time.Hour).Equal(scores[1].CompletedAt))
	})

	t.Run("journal", func(t *testing.T) {
		usr := CreateUser(t, repos.User, "River Song", "river@test.edu", "", nil, true)
		seven := 7
		base := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)

		first, err := repos.Journal.CreateEntry(ctx, journal.Entry{ID: uuid.NewString(), OwnerID: usr.ID, Content: "Spoilers", CreatedAt: base})
		require.NoError(t, err)
		second, err := repos.Journal.CreateEntry(ctx, journal.Entry{ID: uuid.NewString(), OwnerID: usr.ID, Content: "Hello sweetie", MoodRating: &seven, CreatedAt: base.Add(time.Minute)})
		require.NoError(t, err)

		entries, err := repos.Journal.ListEntries(ctx, usr.ID, 10)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, second.ID, entries[0].ID)
		require.NotNil(t, entries[0].MoodRating)
		assert.Equal(t, 7, *entries[0].MoodRating)
		assert.Equal(t, first.ID, entries[1].ID)
		assert.Nil(t, entries[1].MoodRating)

		entries, err = repos.Journal.ListEntries(ctx, usr.ID, 1)
		require.NoError(t, err)
		assert.Len(t, entries, 1)

		entries, err = repos.Journal.ListEntries(ctx, uuid.NewString(), 10)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
