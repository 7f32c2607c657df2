package user_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dagua-alejandro/unesum-redes-academico/core"
	"github.com/Dagua-alejandro/unesum-redes-academico/core/user"
	appfs "github.com/Dagua-alejandro/unesum-redes-academico/fs"
	emailsvc "github.com/Dagua-alejandro/unesum-redes-academico/services/email"
	inmemdb "github.com/Dagua-alejandro/unesum-redes-academico/storage/database/inmem"
)

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func testConfig() *core.Config {
	return &core.Config{
		Env:                      "TEST",
		TestMode:                 true,
		AppName:                  "UNESUM Redes",
		SecretKey:                "secret",
		FrontendBaseURL:          "http://localhost:3000",
		DefaultFromEmail:         "noreply@localhost",
		ConfirmationTimeoutDelta: 3 * 24 * time.Hour,
	}
}

func setup(t *testing.T) (*user.Service, user.Repository, *core.Config) {
	t.Helper()
	conf := testConfig()
	core.ParseEmailTemplates(conf, appfs.FS, nopLogger{})

	db, err := inmemdb.Open()
	require.NoError(t, err)
	repo := inmemdb.NewUserRepository(db)
	svc := user.NewService(repo, emailsvc.NewConsoleServiceMock(conf), conf)
	return svc, repo, conf
}

func TestService_Register(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	sent := len(emailsvc.SentMessages)
	usr, err := svc.Register(ctx, user.NewUser{Name: "Jane Doe", Email: "jane@test.ec", Password: "s3cur3&sane"})
	require.NoError(t, err)

	assert.NotEmpty(t, usr.ID)
	assert.Equal(t, user.RoleStudent, usr.Role)
	assert.False(t, usr.Active(), "fresh accounts must be pending")
	assert.NoError(t, usr.CheckPassword("s3cur3&sane"))

	require.Equal(t, sent+1, len(emailsvc.SentMessages), "confirmation mail not sent")
	msg := emailsvc.SentMessages[len(emailsvc.SentMessages)-1]
	assert.Equal(t, "Confirm your account", msg.Subject)
	assert.True(t, strings.Contains(msg.TextContent, "/auth/confirm?uid="))
}

func TestService_ConfirmAccount(t *testing.T) {
	svc, _, conf := setup(t)
	ctx := context.Background()

	usr, err := svc.Register(ctx, user.NewUser{Name: "Jane Doe", Email: "jane@test.ec", Password: "s3cur3&sane"})
	require.NoError(t, err)

	token, err := user.MakeToken(conf, usr)
	require.NoError(t, err)
	uid := user.EncodeUID(usr)

	t.Run("invalid uid", func(t *testing.T) {
		_, err := svc.ConfirmAccount(ctx, "l'mao!", token)
		assert.Equal(t, user.ErrInvalidToken, err)
	})
	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.ConfirmAccount(ctx, user.EncodeUID(user.User{ID: "nope"}), token)
		assert.Equal(t, user.ErrInvalidToken, err)
	})
	t.Run("valid token activates", func(t *testing.T) {
		confirmed, err := svc.ConfirmAccount(ctx, uid, token)
		require.NoError(t, err)
		assert.True(t, confirmed.Active())
	})
	t.Run("token single-use", func(t *testing.T) {
		_, err := svc.ConfirmAccount(ctx, uid, token)
		assert.Equal(t, user.ErrInvalidToken, err)
	})
}

func TestService_ChangeRole(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	usr, err := svc.Register(ctx, user.NewUser{Name: "Jane Doe", Email: "jane@test.ec", Password: "s3cur3&sane"})
	require.NoError(t, err)

	t.Run("unknown role rejected before the repository", func(t *testing.T) {
		_, err := svc.ChangeRole(ctx, usr.ID, user.UpdateRole{Role: "superuser"})
		vErr, ok := err.(*core.ValidationError)
		require.True(t, ok, "want *core.ValidationError, got %v", err)
		assert.Equal(t, "role", vErr.Fields[0].Field)
	})
	t.Run("valid role applied", func(t *testing.T) {
		updated, err := svc.ChangeRole(ctx, usr.ID, user.UpdateRole{Role: user.RoleInstructor})
		require.NoError(t, err)
		assert.Equal(t, user.RoleInstructor, updated.Role)
	})
	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.ChangeRole(ctx, "nope", user.UpdateRole{Role: user.RoleAdmin})
		assert.Equal(t, user.ErrNotFound, err)
	})
}

func TestService_Delete(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	usr, err := svc.Register(ctx, user.NewUser{Name: "Jane Doe", Email: "jane@test.ec", Password: "s3cur3&sane"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, usr.ID))

	// deleting an already-deleted profile reports not found
	assert.Equal(t, user.ErrNotFound, svc.Delete(ctx, usr.ID))
}

func TestService_CheckEmailUniqueness(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	usr, err := svc.Register(ctx, user.NewUser{Name: "Jane Doe", Email: "jane@test.ec", Password: "s3cur3&sane"})
	require.NoError(t, err)

	err = svc.CheckEmailUniqueness("jane@test.ec")
	vErr, ok := err.(*core.ValidationError)
	require.True(t, ok, "want *core.ValidationError, got %v", err)
	assert.Equal(t, "email", vErr.Fields[0].Field)

	// the user itself can be excluded
	assert.NoError(t, svc.CheckEmailUniqueness("jane@test.ec", usr))
	assert.NoError(t, svc.CheckEmailUniqueness("other@test.ec"))
}
