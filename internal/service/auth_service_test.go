package service

import (
	"context"
	"testing"
	"time"

	"energen/internal/dto"
	"energen/internal/model"
	"energen/internal/repository/repotest"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (AuthService, *memRevocador, *repotest.Store) {
	t.Helper()
	store := repotest.NewStore()
	rev := newMemRevocador()
	svc := NewAuthService(store.Usuarios(), testConfig(), rev)
	_, err := svc.Registrar(context.Background(), dto.SignupRequest{Email: "Admin@EnerGen.com", Password: "secreto1"})
	require.NoError(t, err)
	return svc, rev, store
}

func parseClaims(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte(testConfig().JWTSecret), nil
	})
	require.NoError(t, err)
	return parsed.Claims.(jwt.MapClaims)
}

func TestAuthService_RegistrarNormalizaEmail(t *testing.T) {
	store := repotest.NewStore()
	svc := NewAuthService(store.Usuarios(), testConfig(), nil)

	resp, err := svc.Registrar(context.Background(), dto.SignupRequest{Email: " Ana@Energen.com ", Password: "123456"})
	require.NoError(t, err)
	assert.Equal(t, "ana@energen.com", resp.User.Email)
	assert.Equal(t, "ana", resp.User.Nombre)
	assert.Equal(t, string(model.TemaClaro), resp.User.Theme)
	assert.Equal(t, string(model.VistaDashboard), resp.User.View)
}

func TestAuthService_RegistrarDuplicado(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	_, err := svc.Registrar(context.Background(), dto.SignupRequest{Email: "admin@energen.com", Password: "otraclave"})
	assert.ErrorIs(t, err, ErrEmailRegistrado)
}

func TestAuthService_Login(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "admin@energen.com", Password: "secreto1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)

	access := parseClaims(t, resp.AccessToken)
	assert.Equal(t, TokenAcceso, access["tipo"])
	assert.Equal(t, resp.User.ID, access["user_id"])
	assert.NotEmpty(t, access["jti"])
	refresh := parseClaims(t, resp.RefreshToken)
	assert.Equal(t, TokenRefresh, refresh["tipo"])
	assert.NotEmpty(t, access["sid"])
	assert.Equal(t, access["sid"], refresh["sid"])
}

func TestAuthService_LoginCredencialesInvalidas(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "admin@energen.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, ErrCredenciales)
	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "nadie@energen.com", Password: "secreto1"})
	assert.ErrorIs(t, err, ErrCredenciales)
}

func TestAuthService_RefreshRota(t *testing.T) {
	svc, rev, _ := newAuthFixture(t)
	login, err := svc.Login(context.Background(), dto.LoginRequest{Email: "admin@energen.com", Password: "secreto1"})
	require.NoError(t, err)

	nuevo, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, nuevo.RefreshToken)
	assert.Len(t, rev.revocados, 1)
	assert.Equal(t, parseClaims(t, login.RefreshToken)["sid"], parseClaims(t, nuevo.AccessToken)["sid"])

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenInvalido)
}

func TestAuthService_RefreshRechazaAccessToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	login, err := svc.Login(context.Background(), dto.LoginRequest{Email: "admin@energen.com", Password: "secreto1"})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), login.AccessToken)
	assert.ErrorIs(t, err, ErrTokenInvalido)
	_, err = svc.Refresh(context.Background(), "basura")
	assert.ErrorIs(t, err, ErrTokenInvalido)
}

func TestAuthService_RefreshExpirado(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	login, err := svc.Login(context.Background(), dto.LoginRequest{Email: "admin@energen.com", Password: "secreto1"})
	require.NoError(t, err)

	svc.(*authService).now = func() time.Time { return time.Now().Add(25 * time.Hour) }
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenInvalido)
}

func TestAuthService_LogoutRevocaYVuelveAlDashboard(t *testing.T) {
	ctx := context.Background()
	svc, rev, _ := newAuthFixture(t)
	login, err := svc.Login(ctx, dto.LoginRequest{Email: "admin@energen.com", Password: "secreto1"})
	require.NoError(t, err)
	uid := mustUUID(t, login.User.ID)

	_, err = svc.ActualizarPreferencias(ctx, uid, dto.PreferenciasRequest{Theme: ptr("dark"), View: ptr("CLIENTS")})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, uid, "jti-123", "sid-123", time.Now().Add(time.Hour)))
	assert.True(t, rev.IsRevoked(ctx, "jti-123"))
	assert.True(t, rev.IsRevoked(ctx, "sid-123"))
	assert.Equal(t, 24*time.Hour, rev.revocados["sid-123"])

	perfil, err := svc.Perfil(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "DASHBOARD", perfil.View)
	assert.Equal(t, "dark", perfil.Theme)
}

func TestAuthService_LogoutInvalidaRefreshDeLaSesion(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAuthFixture(t)
	login, err := svc.Login(ctx, dto.LoginRequest{Email: "admin@energen.com", Password: "secreto1"})
	require.NoError(t, err)
	otra, err := svc.Login(ctx, dto.LoginRequest{Email: "admin@energen.com", Password: "secreto1"})
	require.NoError(t, err)

	access := parseClaims(t, login.AccessToken)
	require.NoError(t, svc.Logout(ctx, mustUUID(t, login.User.ID),
		access["jti"].(string), access["sid"].(string), time.Now().Add(time.Hour)))

	_, err = svc.Refresh(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenInvalido)

	// Other sessions of the same user are untouched.
	_, err = svc.Refresh(ctx, otra.RefreshToken)
	assert.NoError(t, err)
}

func TestAuthService_LogoutInvalidaRefreshRotado(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAuthFixture(t)
	login, err := svc.Login(ctx, dto.LoginRequest{Email: "admin@energen.com", Password: "secreto1"})
	require.NoError(t, err)
	rotado, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)

	access := parseClaims(t, rotado.AccessToken)
	require.NoError(t, svc.Logout(ctx, mustUUID(t, login.User.ID),
		access["jti"].(string), access["sid"].(string), time.Now().Add(time.Hour)))

	_, err = svc.Refresh(ctx, rotado.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenInvalido)
}

func TestAuthService_RefreshSinSesion(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	claims := jwt.MapClaims{
		"user_id": "00000000-0000-0000-0000-000000000001",
		"tipo":    TokenRefresh,
		"jti":     "j",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testConfig().JWTSecret))
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenInvalido)
}

func TestAuthService_Preferencias(t *testing.T) {
	ctx := context.Background()
	svc, _, store := newAuthFixture(t)
	u, err := store.Usuarios().FindByEmail(ctx, "admin@energen.com")
	require.NoError(t, err)

	resp, err := svc.ActualizarPreferencias(ctx, u.ID, dto.PreferenciasRequest{View: ptr("NEW_TRANSACTION")})
	require.NoError(t, err)
	assert.Equal(t, "NEW_TRANSACTION", resp.View)
	assert.Equal(t, "light", resp.Theme)

	_, err = svc.ActualizarPreferencias(ctx, u.ID, dto.PreferenciasRequest{Theme: ptr("sepia")})
	var verr *ValidacionError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Campos, "theme")

	resp, err = svc.AlternarTema(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "dark", resp.Theme)
	resp, err = svc.AlternarTema(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "light", resp.Theme)
	assert.Equal(t, "NEW_TRANSACTION", resp.View)
}
