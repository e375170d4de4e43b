package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/amrokhaled/future-diplomates-api/internal/config"
	"github.com/amrokhaled/future-diplomates-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

const (
	CookieName    = "auth_token"
	TokenDuration = 24 * time.Hour
)

// Service is the identity collaborator: OAuth login, JWT cookie sessions
// and the admin allow-list policy. The intake and adjudication packages
// never see provider details.
type Service struct {
	oauthConfig *oauth2.Config
	db          *gorm.DB
	cfg         *config.Config
}

func NewService(cfg *config.Config, db *gorm.DB) *Service {
	return &Service{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.OAuthClientID,
			ClientSecret: cfg.OAuthClientSecret,
			RedirectURL:  cfg.OAuthRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.OAuthAuthURL,
				TokenURL: cfg.OAuthTokenURL,
			},
		},
		db:  db,
		cfg: cfg,
	}
}

func (s *Service) HandleLogin(w http.ResponseWriter, r *http.Request) {
	url := s.oauthConfig.AuthCodeURL("state", oauth2.AccessTypeOnline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

func (s *Service) HandleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Code not found", http.StatusBadRequest)
		return
	}

	token, err := s.oauthConfig.Exchange(r.Context(), code)
	if err != nil {
		http.Error(w, "Failed to exchange token", http.StatusInternalServerError)
		return
	}

	client := s.oauthConfig.Client(r.Context(), token)
	resp, err := client.Get(s.cfg.OAuthUserInfoURL)
	if err != nil {
		http.Error(w, "Failed to get user info", http.StatusInternalServerError)
		return
	}
	defer resp.Body.Close()

	var claims struct {
		Subject string `json:"sub"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		http.Error(w, "Failed to decode user info", http.StatusInternalServerError)
		return
	}

	var user models.User
	if err := s.db.FirstOrInit(&user, models.User{Subject: claims.Subject}).Error; err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	user.Username = claims.Name
	user.Email = claims.Email
	user.Avatar = claims.Picture

	if err := s.db.Save(&user).Error; err != nil {
		http.Error(w, "Failed to save user", http.StatusInternalServerError)
		return
	}

	jwtToken, err := s.GenerateToken(user.ID)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    jwtToken,
		Expires:  time.Now().Add(TokenDuration),
		HttpOnly: true,
		Path:     "/",
	})

	http.Redirect(w, r, s.cfg.FrontendURL, http.StatusTemporaryRedirect)
}

func (s *Service) GenerateToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// CurrentUser resolves the cookie to a stored user.
func (s *Service) CurrentUser(ctx context.Context, cookieHeader string) (*models.User, error) {
	userID, err := s.Authorize(ctx, cookieHeader)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// OptionalUser is the intake path's identity hook: it never fails the
// caller. Lookups are bounded by the configured timeout and any failure,
// including the deadline, degrades to an anonymous guest.
func (s *Service) OptionalUser(ctx context.Context, cookieHeader string) *models.User {
	tctx, cancel := context.WithTimeout(ctx, s.cfg.AuthTimeout)
	defer cancel()

	user, err := s.CurrentUser(tctx, cookieHeader)
	if err != nil {
		return nil
	}
	return user
}
