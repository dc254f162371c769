package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/atlaslingo/darlingo/internal/entity"
	"github.com/atlaslingo/darlingo/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// TokenPair is the issued credential set returned on register and login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthUsecase handles account registration, login, and JWT verification.
type AuthUsecase interface {
	Register(ctx context.Context, email, password, displayName string) (*entity.User, *TokenPair, error)
	Login(ctx context.Context, email, password string) (*entity.User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	// VerifyAccessToken returns the user id carried by a valid access token.
	VerifyAccessToken(token string) (int64, error)
}

type authUsecase struct {
	users      repository.UserRepository
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration

	clock func() time.Time
}

func NewAuthUsecase(users repository.UserRepository, secret string, accessTTL, refreshTTL time.Duration) AuthUsecase {
	return &authUsecase{
		users:      users,
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		clock:      time.Now,
	}
}

func (u *authUsecase) Register(ctx context.Context, email, password, displayName string) (*entity.User, *TokenPair, error) {
	user := &entity.User{Email: email, DisplayName: displayName}
	user.Normalize(u.clock())
	if err := user.Validate(); err != nil {
		return nil, nil, err
	}
	if len(password) < minPasswordLength {
		return nil, nil, entity.ErrInvalidPassword
	}

	existing, err := u.users.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, entity.ErrDuplicateUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}
	user.PasswordHash = string(hash)

	created, err := u.users.Create(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	tokens, err := u.issueTokens(created.ID)
	if err != nil {
		return nil, nil, err
	}
	return created, tokens, nil
}

func (u *authUsecase) Login(ctx context.Context, email, password string) (*entity.User, *TokenPair, error) {
	probe := &entity.User{Email: email}
	probe.Normalize(u.clock())

	user, err := u.users.FindByEmail(ctx, probe.Email)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, entity.ErrInvalidPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, entity.ErrInvalidPassword
	}

	tokens, err := u.issueTokens(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, tokenType, err := u.parseToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if tokenType != "refresh" {
		return nil, entity.ErrInvalidToken
	}
	if _, err := u.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return u.issueTokens(userID)
}

func (u *authUsecase) VerifyAccessToken(token string) (int64, error) {
	userID, tokenType, err := u.parseToken(token)
	if err != nil {
		return 0, err
	}
	if tokenType != "access" {
		return 0, entity.ErrInvalidToken
	}
	return userID, nil
}

func (u *authUsecase) issueTokens(userID int64) (*TokenPair, error) {
	access, err := u.signToken(userID, "access", u.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := u.signToken(userID, "refresh", u.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (u *authUsecase) signToken(userID int64, tokenType string, ttl time.Duration) (string, error) {
	now := u.clock()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(userID, 10),
		"type": tokenType,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.secret)
}

func (u *authUsecase) parseToken(raw string) (int64, string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, entity.ErrInvalidToken
		}
		return u.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return u.clock() }))
	if err != nil || !token.Valid {
		return 0, "", entity.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", entity.ErrInvalidToken
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return 0, "", entity.ErrInvalidToken
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || userID <= 0 {
		return 0, "", entity.ErrInvalidToken
	}
	tokenType, _ := claims["type"].(string)
	return userID, tokenType, nil
}
