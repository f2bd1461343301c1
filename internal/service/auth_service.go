package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"energen/internal/config"
	"energen/internal/dto"
	"energen/internal/model"
	"energen/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Token kinds carried in the "tipo" claim.
const (
	TokenAcceso  = "access"
	TokenRefresh = "refresh"
)

const bcryptCost = 12

// Revocador tracks logged-out token ids.
type Revocador interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) bool
}

type AuthService interface {
	Registrar(ctx context.Context, req dto.SignupRequest) (*dto.SignupResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	// Logout revokes the access token identified by jti and the session sid
	// it belongs to, so refresh tokens of that session stop working too. The
	// user returns to the dashboard view for the next session.
	Logout(ctx context.Context, userID uuid.UUID, jti, sid string, expira time.Time) error
	Perfil(ctx context.Context, userID uuid.UUID) (*dto.UsuarioResponse, error)
	ActualizarPreferencias(ctx context.Context, userID uuid.UUID, req dto.PreferenciasRequest) (*dto.UsuarioResponse, error)
	AlternarTema(ctx context.Context, userID uuid.UUID) (*dto.UsuarioResponse, error)
}

type authService struct {
	repo      repository.UsuarioRepository
	cfg       *config.Config
	revocados Revocador
	now       func() time.Time
}

// NewAuthService wires the service. revocados may be nil, in which case
// logout only resets preferences and tokens live until they expire.
func NewAuthService(repo repository.UsuarioRepository, cfg *config.Config, revocados Revocador) AuthService {
	return &authService{repo: repo, cfg: cfg, revocados: revocados, now: time.Now}
}

func (s *authService) Registrar(ctx context.Context, req dto.SignupRequest) (*dto.SignupResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &model.Usuario{
		Email:        email,
		Nombre:       nombreDesdeEmail(email),
		PasswordHash: string(hash),
		Tema:         model.TemaClaro,
		UltimaVista:  model.VistaDashboard,
		Activo:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailRegistrado
		}
		return nil, fmt.Errorf("creando usuario: %w", err)
	}
	log.Info().Str("email", email).Msg("auth: usuario registrado")
	return &dto.SignupResponse{
		Message: "Cuenta creada. Ya puede iniciar sesion.",
		User:    mapUsuario(user),
	}, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, ErrCredenciales
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrCredenciales
	}
	return s.emitirTokens(user, uuid.NewString())
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalido
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["tipo"] != TokenRefresh {
		return nil, ErrTokenInvalido
	}
	jti, _ := claims["jti"].(string)
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return nil, ErrTokenInvalido
	}
	if s.revocados != nil && (s.revocados.IsRevoked(ctx, sid) || (jti != "" && s.revocados.IsRevoked(ctx, jti))) {
		return nil, ErrTokenInvalido
	}
	userIDStr, _ := claims["user_id"].(string)
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, ErrTokenInvalido
	}

	user, err := s.repo.FindByID(ctx, uid)
	if err != nil || !user.Activo {
		return nil, ErrUsuarioNoEncontrado
	}

	// Refresh tokens rotate: the one just used cannot be replayed.
	if s.revocados != nil && jti != "" {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			if err := s.revocados.Revoke(ctx, jti, exp.Sub(s.now())); err != nil {
				log.Warn().Err(err).Msg("auth: no se pudo revocar refresh token")
			}
		}
	}
	return s.emitirTokens(user, sid)
}

func (s *authService) Logout(ctx context.Context, userID uuid.UUID, jti, sid string, expira time.Time) error {
	if s.revocados != nil {
		if jti != "" {
			if err := s.revocados.Revoke(ctx, jti, expira.Sub(s.now())); err != nil {
				return fmt.Errorf("revocando token: %w", err)
			}
		}
		// Refresh rotation keeps the sid, so it must outlive the newest
		// refresh token of the session.
		if sid != "" {
			if err := s.revocados.Revoke(ctx, sid, s.refreshTTL()); err != nil {
				return fmt.Errorf("revocando sesion: %w", err)
			}
		}
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return ErrUsuarioNoEncontrado
	}
	if err := s.repo.UpdatePreferencias(ctx, userID, user.Tema, model.VistaDashboard); err != nil {
		return fmt.Errorf("reiniciando vista: %w", err)
	}
	return nil
}

func (s *authService) Perfil(ctx context.Context, userID uuid.UUID) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil || !user.Activo {
		return nil, ErrUsuarioNoEncontrado
	}
	resp := mapUsuario(user)
	return &resp, nil
}

func (s *authService) ActualizarPreferencias(ctx context.Context, userID uuid.UUID, req dto.PreferenciasRequest) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUsuarioNoEncontrado
	}
	tema, vista := user.Tema, user.UltimaVista
	if req.Theme != nil {
		tema = model.Tema(*req.Theme)
		if !tema.Valido() {
			return nil, nuevaValidacion("theme", "Tema invalido.")
		}
	}
	if req.View != nil {
		vista = model.Vista(*req.View)
		if !vista.Valida() {
			return nil, nuevaValidacion("view", "Vista invalida.")
		}
	}
	return s.guardarPreferencias(ctx, user, tema, vista)
}

func (s *authService) AlternarTema(ctx context.Context, userID uuid.UUID) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUsuarioNoEncontrado
	}
	return s.guardarPreferencias(ctx, user, user.Tema.Alternar(), user.UltimaVista)
}

func (s *authService) guardarPreferencias(ctx context.Context, user *model.Usuario, tema model.Tema, vista model.Vista) (*dto.UsuarioResponse, error) {
	if err := s.repo.UpdatePreferencias(ctx, user.ID, tema, vista); err != nil {
		return nil, fmt.Errorf("guardando preferencias: %w", err)
	}
	user.Tema, user.UltimaVista = tema, vista
	resp := mapUsuario(user)
	return &resp, nil
}

func (s *authService) refreshTTL() time.Duration {
	return time.Duration(s.cfg.JWTRefreshHours) * time.Hour
}

// emitirTokens issues an access/refresh pair for session sid.
func (s *authService) emitirTokens(user *model.Usuario, sid string) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(user, TokenAcceso, sid, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, TokenRefresh, sid, s.refreshTTL())
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         mapUsuario(user),
	}, nil
}

func (s *authService) generateToken(user *model.Usuario, tipo, sid string, duration time.Duration) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"tipo":    tipo,
		"sid":     sid,
		"jti":     uuid.NewString(),
		"exp":     now.Add(duration).Unix(),
		"iat":     now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func mapUsuario(u *model.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:     u.ID.String(),
		Email:  u.Email,
		Nombre: u.Nombre,
		Theme:  string(u.Tema),
		View:   string(u.UltimaVista),
	}
}

// nombreDesdeEmail uses the local part as display name until the user sets
// one.
func nombreDesdeEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return email
	}
	return local
}
