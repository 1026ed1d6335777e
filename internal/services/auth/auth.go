// Package auth содержит бизнес-логику аутентификации участников:
// регистрацию и вход по почте с паролем, а также обмен кода авторизации
// внешнего OAuth-провайдера на сессионный JWT.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/magabrotheeeer/gym-membership/internal/config"
	"github.com/magabrotheeeer/gym-membership/internal/lib/jwt"
	"github.com/magabrotheeeer/gym-membership/internal/lib/password"
	"github.com/magabrotheeeer/gym-membership/internal/models"
)

// ErrInvalidCredentials возвращается при неверной паре почта/пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

// MemberStore определяет методы хранилища, нужные аутентификации.
type MemberStore interface {
	CreateMember(ctx context.Context, m models.Member, passwordHash string) (string, error)
	ReadMemberByEmail(ctx context.Context, email string) (*models.Member, string, error)
	ReadMember(ctx context.Context, uid string) (*models.Member, error)
	GetOrCreateMemberByEmail(ctx context.Context, name, email string) (*models.Member, error)
}

// Service реализует сценарии аутентификации.
type Service struct {
	store MemberStore
	maker jwt.Maker
	oauth *oauth2.Config

	userInfoURL string
	log         *slog.Logger
}

// New создает новый экземпляр Service. Настройки OAuth берутся из конфига,
// endpoint провайдера задаётся парой auth_url/token_url.
func New(store MemberStore, maker jwt.Maker, cfg config.OAuth, log *slog.Logger) *Service {
	return &Service{
		store: store,
		maker: maker,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
			},
		},
		userInfoURL: cfg.UserInfoURL,
		log:         log,
	}
}

// Register создаёт участника с хэшированным паролем и возвращает JWT.
func (s *Service) Register(ctx context.Context, name, email, phone, rawPassword string) (string, *models.Member, error) {
	hash, err := password.GetHash(rawPassword)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	uid, err := s.store.CreateMember(ctx, models.Member{
		Name:  name,
		Email: email,
		Phone: phone,
	}, hash)
	if err != nil {
		return "", nil, err
	}
	s.log.Info("registered new member", slog.String("uuid", uid))

	m, err := s.store.ReadMember(ctx, uid)
	if err != nil {
		return "", nil, err
	}

	token, err := s.maker.GenerateToken(m.UUID, m.Email)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, m, nil
}

// Login проверяет пару почта/пароль и возвращает JWT.
// Участники, созданные через OAuth, пароля не имеют и войти так не могут.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (string, *models.Member, error) {
	m, hash, err := s.store.ReadMemberByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if hash == "" {
		return "", nil, ErrInvalidCredentials
	}
	if err := password.CompareHash(hash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.maker.GenerateToken(m.UUID, m.Email)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, m, nil
}

// userInfo — ответ userinfo-эндпоинта провайдера идентификации.
type userInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ExchangeCode обменивает код авторизации OAuth-провайдера на сессионный JWT.
// Участник находится по почте из userinfo или создаётся при первом входе.
func (s *Service) ExchangeCode(ctx context.Context, code string) (string, *models.Member, error) {
	const op = "auth.ExchangeCode"

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	info, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if info.Email == "" {
		return "", nil, fmt.Errorf("%s: provider returned no email", op)
	}
	if info.Name == "" {
		info.Name = info.Email
	}

	m, err := s.store.GetOrCreateMemberByEmail(ctx, info.Name, info.Email)
	if err != nil {
		return "", nil, err
	}
	s.log.Info("oauth login", slog.String("uuid", m.UUID))

	sessionToken, err := s.maker.GenerateToken(m.UUID, m.Email)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return sessionToken, m, nil
}

func (s *Service) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*userInfo, error) {
	client := s.oauth.Client(ctx, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned %d", resp.StatusCode)
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}
