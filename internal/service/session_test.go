package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-course-api/internal/models"
	"github.com/pribylovaa/go-course-api/internal/storage"
)

func TestIssueSessionToken_OK(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := &models.User{ID: uuid.New(), Email: "ann@example.com"}

	var saved *models.SessionToken
	st.EXPECT().SaveSessionToken(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tok *models.SessionToken) error {
			saved = tok
			return nil
		})

	plain, err := svc.IssueSessionToken(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, plain)

	// В хранилище попадает только хэш, не исходное значение.
	require.NotNil(t, saved)
	require.Equal(t, user.ID, saved.UserID)
	require.NotEqual(t, plain, saved.TokenHash)
	require.Equal(t, hashSessionToken(plain), saved.TokenHash)
	require.WithinDuration(t, time.Now().UTC().Add(svc.cfg.SessionTokenTTL), saved.ExpiresAt, 2*time.Second)
}

func TestIssueSessionToken_RetriesOnCollision(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := &models.User{ID: uuid.New()}

	gomock.InOrder(
		st.EXPECT().SaveSessionToken(gomock.Any(), gomock.Any()).Return(storage.ErrAlreadyExists),
		st.EXPECT().SaveSessionToken(gomock.Any(), gomock.Any()).Return(nil),
	)

	plain, err := svc.IssueSessionToken(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, plain)
}

func TestIssueSessionToken_CollisionExceeded(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().SaveSessionToken(gomock.Any(), gomock.Any()).
		Return(storage.ErrAlreadyExists).Times(5)

	_, err := svc.IssueSessionToken(context.Background(), &models.User{ID: uuid.New()})
	require.ErrorIs(t, err, ErrSessionTokenCollision)
}

func TestResolveSessionToken_RoundTrip(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	user := &models.User{ID: uuid.New(), Email: "ann@example.com"}

	var saved *models.SessionToken
	st.EXPECT().SaveSessionToken(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tok *models.SessionToken) error {
			saved = tok
			return nil
		})

	plain, err := svc.IssueSessionToken(context.Background(), user)
	require.NoError(t, err)

	st.EXPECT().SessionTokenByHash(gomock.Any(), hashSessionToken(plain)).
		DoAndReturn(func(context.Context, string) (*models.SessionToken, error) {
			return saved, nil
		})
	st.EXPECT().UserByID(gomock.Any(), user.ID).Return(user, nil)

	got, err := svc.ResolveSessionToken(context.Background(), plain)
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
}

func TestResolveSessionToken_UnknownOrEmpty(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.ResolveSessionToken(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidToken)

	st.EXPECT().SessionTokenByHash(gomock.Any(), gomock.Any()).
		Return(nil, storage.ErrNotFound)

	_, err = svc.ResolveSessionToken(context.Background(), "no-such-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolveSessionToken_Expired(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	now := time.Now().UTC()
	st.EXPECT().SessionTokenByHash(gomock.Any(), gomock.Any()).
		Return(&models.SessionToken{
			TokenHash: "hash",
			UserID:    uuid.New(),
			CreatedAt: now.Add(-2 * time.Hour),
			ExpiresAt: now.Add(-time.Hour),
		}, nil)

	_, err := svc.ResolveSessionToken(context.Background(), "stale-token")
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestRevokeSessionTokens_OKAndIdempotent(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	userID := uuid.New()

	// Двойной вызов — обе попытки успешны, в том числе без единого токена.
	st.EXPECT().DeleteSessionTokensByUser(gomock.Any(), userID).Return(nil).Times(2)

	require.NoError(t, svc.RevokeSessionTokens(context.Background(), userID))
	require.NoError(t, svc.RevokeSessionTokens(context.Background(), userID))
}

func TestRevokeSessionTokens_StorageError(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	boom := errors.New("db down")
	st.EXPECT().DeleteSessionTokensByUser(gomock.Any(), gomock.Any()).Return(boom)

	err := svc.RevokeSessionTokens(context.Background(), uuid.New())
	require.ErrorIs(t, err, boom)
}
