package usecase

import (
	"context"
	"testing"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/dto/request"
	"movie-booking/pkg/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	svc       *Service
	store     *memStore
	publisher *recordingPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := newMemStore()
	publisher := &recordingPublisher{}
	config := &utils.Config{
		Session: utils.SessionConfig{TTL: time.Hour},
		Ticket:  utils.TicketConfig{Issuer: "Test Cinema"},
	}
	return &testEnv{
		svc:       NewService(store.repository(), publisher, config, zap.NewNop()),
		store:     store,
		publisher: publisher,
	}
}

// signIn registers username (unless it exists) and returns its resolved context.
func (e *testEnv) signIn(t *testing.T, username string) entity.UserContext {
	t.Helper()
	ctx := context.Background()
	guest := entity.GuestContext()

	if u, _ := e.store.repository().User.FindByUsername(ctx, username); u == nil {
		_, err := e.svc.Auth.Register(ctx, guest, &request.RegisterRequest{
			Username: username,
			Password: "secret123",
			Email:    username + "@example.com",
			Phone:    "081234567890",
		})
		require.NoError(t, err)
	}

	auth, err := e.svc.Auth.Login(ctx, guest, &request.LoginRequest{Identifier: username, Password: "secret123"}, request.ClientInfo{})
	require.NoError(t, err)

	uc, err := e.svc.Auth.ResolveContext(ctx, auth.Token)
	require.NoError(t, err)
	return uc
}

func (e *testEnv) admin(t *testing.T) entity.UserContext {
	t.Helper()
	err := e.svc.Auth.SeedAdmin(context.Background(), utils.AdminConfig{
		Username: "root",
		Email:    "root@example.com",
		Password: "secret123",
		Phone:    "0000000000",
	})
	require.NoError(t, err)
	return e.signIn(t, "root")
}

func showDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format(entity.DateLayout)
}

// addMovie creates a movie priced at 50000 with one show time days from today.
func (e *testEnv) addMovie(t *testing.T, title string, days int) (movieID, showTimeID string) {
	t.Helper()
	detail, err := e.svc.MovieManager.AddMovie(context.Background(), e.admin(t), &request.MovieRequest{
		Title: title,
		Genre: "Drama",
		Price: 50000,
		ShowTimes: []request.ShowTimeRequest{
			{Date: showDate(days), StartTime: "19:00", EndTime: "21:00"},
		},
	})
	require.NoError(t, err)
	require.Len(t, detail.ShowTimes, 1)
	return detail.ID, detail.ShowTimes[0].ID
}
