package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/atlaslingo/darlingo/internal/entity"
)

func newAuthFixture(t *testing.T) (*fakeUserRepo, *authUsecase) {
	t.Helper()
	users := newFakeUserRepo()
	uc := NewAuthUsecase(users, "test-secret", 15*time.Minute, 7*24*time.Hour).(*authUsecase)
	uc.clock = fixedNow
	return users, uc
}

func TestRegisterAndVerifyToken(t *testing.T) {
	ctx := context.Background()
	_, uc := newAuthFixture(t)

	user, tokens, err := uc.Register(ctx, " Amina@Example.com ", "s3cret-pass", "Amina")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "amina@example.com" {
		t.Errorf("email = %q, want normalized lowercase", user.Email)
	}
	if user.PasswordHash == "s3cret-pass" || user.PasswordHash == "" {
		t.Error("password stored unhashed")
	}
	if user.Level != entity.LevelA2 {
		t.Errorf("level = %q, want default a2", user.Level)
	}

	userID, err := uc.VerifyAccessToken(tokens.AccessToken)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if userID != user.ID {
		t.Errorf("token subject = %d, want %d", userID, user.ID)
	}

	// A refresh token must not pass as an access token.
	if _, err := uc.VerifyAccessToken(tokens.RefreshToken); err != entity.ErrInvalidToken {
		t.Errorf("refresh-as-access err = %v, want %v", err, entity.ErrInvalidToken)
	}
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	_, uc := newAuthFixture(t)

	if _, _, err := uc.Register(ctx, "not-an-email", "s3cret-pass", "Amina"); err != entity.ErrInvalidUserEmail {
		t.Errorf("bad email err = %v, want %v", err, entity.ErrInvalidUserEmail)
	}
	if _, _, err := uc.Register(ctx, "amina@example.com", "short", "Amina"); err != entity.ErrInvalidPassword {
		t.Errorf("short password err = %v, want %v", err, entity.ErrInvalidPassword)
	}
	if _, _, err := uc.Register(ctx, "amina@example.com", "s3cret-pass", " "); err != entity.ErrInvalidUserName {
		t.Errorf("blank name err = %v, want %v", err, entity.ErrInvalidUserName)
	}

	if _, _, err := uc.Register(ctx, "amina@example.com", "s3cret-pass", "Amina"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := uc.Register(ctx, "AMINA@example.com", "s3cret-pass", "Other"); err != entity.ErrDuplicateUser {
		t.Errorf("duplicate email err = %v, want %v", err, entity.ErrDuplicateUser)
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	_, uc := newAuthFixture(t)
	if _, _, err := uc.Register(ctx, "amina@example.com", "s3cret-pass", "Amina"); err != nil {
		t.Fatal(err)
	}

	user, tokens, err := uc.Login(ctx, "amina@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatal("login returned empty tokens")
	}
	if user.DisplayName != "Amina" {
		t.Errorf("display name = %q", user.DisplayName)
	}

	if _, _, err := uc.Login(ctx, "amina@example.com", "wrong-pass"); err != entity.ErrInvalidPassword {
		t.Errorf("wrong password err = %v, want %v", err, entity.ErrInvalidPassword)
	}
	if _, _, err := uc.Login(ctx, "nobody@example.com", "s3cret-pass"); err != entity.ErrInvalidPassword {
		t.Errorf("unknown email err = %v, want %v", err, entity.ErrInvalidPassword)
	}
}

func TestRefreshRoundTrip(t *testing.T) {
	ctx := context.Background()
	_, uc := newAuthFixture(t)
	user, tokens, err := uc.Register(ctx, "amina@example.com", "s3cret-pass", "Amina")
	if err != nil {
		t.Fatal(err)
	}

	fresh, err := uc.Refresh(ctx, tokens.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	userID, err := uc.VerifyAccessToken(fresh.AccessToken)
	if err != nil {
		t.Fatal(err)
	}
	if userID != user.ID {
		t.Errorf("refreshed subject = %d, want %d", userID, user.ID)
	}

	// Access tokens are not accepted for refresh.
	if _, err := uc.Refresh(ctx, tokens.AccessToken); err != entity.ErrInvalidToken {
		t.Errorf("access-as-refresh err = %v, want %v", err, entity.ErrInvalidToken)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	ctx := context.Background()
	_, uc := newAuthFixture(t)
	_, tokens, err := uc.Register(ctx, "amina@example.com", "s3cret-pass", "Amina")
	if err != nil {
		t.Fatal(err)
	}

	uc.clock = func() time.Time { return fixedNow().Add(16 * time.Minute) }
	if _, err := uc.VerifyAccessToken(tokens.AccessToken); err != entity.ErrInvalidToken {
		t.Errorf("expired token err = %v, want %v", err, entity.ErrInvalidToken)
	}
}
