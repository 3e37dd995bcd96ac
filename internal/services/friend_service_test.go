package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Dias221467/Levelup_Fitness/internal/models"
	"github.com/Dias221467/Levelup_Fitness/pkg/apierrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFriendStore is an in-memory friendUserStore backed by a map of users.
type fakeFriendStore struct {
	users       map[string]*models.User
	added       []models.FriendEntry
	removed     []string
	searchHits  []models.User
	searchCalls int
}

func (f *fakeFriendStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, apierrors.NotFound("user not found")
	}
	copied := *user
	return &copied, nil
}

func (f *fakeFriendStore) AddFriend(_ context.Context, owner string, entry models.FriendEntry) error {
	if _, ok := f.users[owner]; !ok {
		return apierrors.NotFound("user not found")
	}
	f.added = append(f.added, entry)
	return nil
}

func (f *fakeFriendStore) RemoveFriend(_ context.Context, owner, target string) error {
	if _, ok := f.users[owner]; !ok {
		return apierrors.NotFound("user not found")
	}
	f.removed = append(f.removed, target)
	return nil
}

func (f *fakeFriendStore) SearchUsers(_ context.Context, _, _ string, _ int64) ([]models.User, error) {
	f.searchCalls++
	return f.searchHits, nil
}

type noopFeed struct{}

func (noopFeed) LogActivity(_ context.Context, _, _, _ string) {}

func newFriendFixture(users ...*models.User) (*FriendService, *fakeFriendStore) {
	store := &fakeFriendStore{users: map[string]*models.User{}}
	for _, u := range users {
		store.users[u.Username] = u
	}
	return &FriendService{userRepo: store, activity: noopFeed{}}, store
}

func TestAddFriendSelfIsInvalidInput(t *testing.T) {
	// The self-add guard runs before any store access.
	svc := &FriendService{}

	_, err := svc.AddFriend(context.Background(), "argus", "argus")
	assert.True(t, errors.Is(err, apierrors.ErrInvalidInput), "expected InvalidInput, got %v", err)
}

func TestAddFriendBlankTargetIsInvalidInput(t *testing.T) {
	svc := &FriendService{}

	_, err := svc.AddFriend(context.Background(), "argus", "   ")
	assert.True(t, errors.Is(err, apierrors.ErrInvalidInput), "expected InvalidInput, got %v", err)
}

func TestAddFriendUnknownUsersAreNotFound(t *testing.T) {
	svc, _ := newFriendFixture(&models.User{Username: "argus"})

	_, err := svc.AddFriend(context.Background(), "ghost", "argus")
	assert.True(t, errors.Is(err, apierrors.ErrNotFound), "missing owner: expected NotFound, got %v", err)

	_, err = svc.AddFriend(context.Background(), "argus", "ghost")
	assert.True(t, errors.Is(err, apierrors.ErrNotFound), "missing target: expected NotFound, got %v", err)
}

func TestAddFriendSnapshotsTargetLevel(t *testing.T) {
	svc, store := newFriendFixture(
		&models.User{Username: "argus"},
		&models.User{Username: "bob", Progression: models.Progression{Level: 7}},
	)

	entry, err := svc.AddFriend(context.Background(), "argus", "bob")
	require.NoError(t, err)

	assert.Equal(t, "bob", entry.Username)
	assert.Equal(t, 7, entry.Level)
	require.Len(t, store.added, 1)
	assert.Equal(t, *entry, store.added[0])
}

func TestAddFriendReAddIsNoOp(t *testing.T) {
	svc, store := newFriendFixture(
		&models.User{
			Username: "argus",
			Friends:  []models.FriendEntry{{Username: "bob", Level: 3}},
		},
		&models.User{Username: "bob", Progression: models.Progression{Level: 9}},
	)

	entry, err := svc.AddFriend(context.Background(), "argus", "bob")
	require.NoError(t, err)

	// The existing edge wins: no new push, level snapshot stays stale.
	assert.Empty(t, store.added)
	assert.Equal(t, 3, entry.Level)
}

func TestRemoveFriend(t *testing.T) {
	svc, store := newFriendFixture(&models.User{Username: "argus"})

	require.NoError(t, svc.RemoveFriend(context.Background(), "argus", "bob"))
	assert.Equal(t, []string{"bob"}, store.removed)

	err := svc.RemoveFriend(context.Background(), "ghost", "bob")
	assert.True(t, errors.Is(err, apierrors.ErrNotFound), "expected NotFound, got %v", err)
}

func TestSearchUsersExcludesRequester(t *testing.T) {
	svc, store := newFriendFixture()
	store.searchHits = []models.User{
		{Username: "argus", Progression: models.Progression{Level: 4}},
		{Username: "argonaut", Progression: models.Progression{Level: 2}},
		{Username: "margarita"},
	}

	results, err := svc.SearchUsers(context.Background(), "arg", "argus")
	require.NoError(t, err)

	require.Len(t, results, 2)
	for _, r := range results {
		assert.NotEqual(t, "argus", r.Username)
	}
	assert.Equal(t, models.PublicUser{Username: "argonaut", Level: 2}, results[0])
	assert.Equal(t, models.PublicUser{Username: "margarita", Level: 1}, results[1])
}

func TestSearchUsersBlankFragment(t *testing.T) {
	svc, store := newFriendFixture()

	results, err := svc.SearchUsers(context.Background(), "   ", "argus")
	require.NoError(t, err)

	assert.Empty(t, results)
	assert.Zero(t, store.searchCalls, "blank fragment must not hit the store")
}
