package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medflow-hq/medflow/internal/domain/models"
	"github.com/medflow-hq/medflow/internal/repository/memory"
	"github.com/medflow-hq/medflow/internal/repository/slots"
)

func seededService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(memory.NewStore(), nil, nil)
	require.NoError(t, svc.EnsureDefaultAdmin(context.Background()))
	return svc
}

func TestEnsureDefaultAdminSeedsOnce(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store, nil, nil)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaultAdmin(ctx))
	require.NoError(t, svc.EnsureDefaultAdmin(ctx))

	users, err := slots.Load[[]models.User](ctx, store, slots.SlotUsers, nil)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "admin", users[0].Username)
	assert.Equal(t, "Super Admin", users[0].Name)
}

func TestEnsureDefaultAdminKeepsExistingUsers(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	existing := []models.User{{ID: 7, Username: "owner", Password: "pw", Role: "admin", Name: "Owner"}}
	require.NoError(t, slots.Save(ctx, store, slots.SlotUsers, existing))

	svc := NewService(store, nil, nil)
	require.NoError(t, svc.EnsureDefaultAdmin(ctx))

	users, err := slots.Load[[]models.User](ctx, store, slots.SlotUsers, nil)
	require.NoError(t, err)
	assert.Equal(t, existing, users)
}

func TestLoginSuccessSetsSession(t *testing.T) {
	svc := seededService(t)
	ctx := context.Background()

	result, err := svc.Login(ctx, "admin", "123")
	require.NoError(t, err)
	require.True(t, result.Success)
	require.NotNil(t, result.User)
	assert.Equal(t, "Super Admin", result.User.Name)
	assert.NotEmpty(t, result.Token)

	session, err := svc.CurrentSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, result.Token, session.Token)
	assert.Equal(t, "admin", session.User.Username)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := seededService(t)
	ctx := context.Background()

	wrongPassword, err := svc.Login(ctx, "admin", "nope")
	require.NoError(t, err)
	unknownUser, err := svc.Login(ctx, "ghost", "123")
	require.NoError(t, err)

	assert.False(t, wrongPassword.Success)
	assert.False(t, unknownUser.Success)
	assert.Equal(t, InvalidCredentialsMessage, wrongPassword.Message)
	assert.Equal(t, wrongPassword.Message, unknownUser.Message)
	assert.Nil(t, wrongPassword.User)

	session, err := svc.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestLoginIsCaseSensitive(t *testing.T) {
	svc := seededService(t)

	result, err := svc.Login(context.Background(), "Admin", "123")
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestLogoutClearsSession(t *testing.T) {
	svc := seededService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "admin", "123")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx))

	session, err := svc.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)

	// Logging out with no session is fine.
	require.NoError(t, svc.Logout(ctx))
}

func TestAuthenticate(t *testing.T) {
	svc := seededService(t)
	ctx := context.Background()

	result, err := svc.Login(ctx, "admin", "123")
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, result.Token)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "admin", user.Username)

	user, err = svc.Authenticate(ctx, "bogus-token")
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = svc.Authenticate(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, user)
}
