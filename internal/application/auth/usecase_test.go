package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hotel-stock-api/internal/application/auth"
	"github.com/jhoicas/hotel-stock-api/internal/application/dto"
	"github.com/jhoicas/hotel-stock-api/internal/domain"
	"github.com/jhoicas/hotel-stock-api/internal/domain/entity"
	"github.com/jhoicas/hotel-stock-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/hotel-stock-api/pkg/jwt"
)

func setupAuth(t *testing.T) (*auth.UseCase, *memory.UserRepo) {
	t.Helper()
	repo := memory.NewUserRepository()
	uc := auth.NewUseCase(repo, auth.JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		ExpMinutes: 60,
		Issuer:     "hotel-stock-test",
	})
	return uc, repo
}

func TestRegisterUser(t *testing.T) {
	uc, _ := setupAuth(t)

	user, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Username:   "maria.perez",
		Password:   "contraseña-segura",
		Name:       "María Pérez",
		Role:       entity.RoleDepartamento,
		Department: "habitaciones",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "maria.perez", user.Username)
	assert.Equal(t, entity.RoleDepartamento, user.Role)
	assert.Equal(t, "habitaciones", user.Department)
}

// Sin rol explícito, el registro asigna el rol de menor privilegio.
func TestRegisterUser_RolPorDefecto(t *testing.T) {
	uc, _ := setupAuth(t)

	user, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Username: "pedro",
		Password: "contraseña-segura",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleDepartamento, user.Role)
	assert.Equal(t, "pedro", user.Name, "sin nombre, se usa el username")
}

func TestRegisterUser_UsernameDuplicado(t *testing.T) {
	uc, _ := setupAuth(t)
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "maria", Password: "contraseña-segura"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Username: "maria", Password: "otra-contraseña"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLogin_Exitoso(t *testing.T) {
	uc, _ := setupAuth(t)
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Username:   "maria",
		Password:   "contraseña-segura",
		Name:       "María Pérez",
		Role:       entity.RoleAdmin,
		Department: "administración",
	})
	require.NoError(t, err)

	res, err := uc.Login(ctx, dto.LoginRequest{Username: "maria", Password: "contraseña-segura"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	assert.Equal(t, "maria", res.User.Username)

	// El token lleva los datos de sesión que consume el middleware
	claims, err := pkgjwt.Parse("test-secret-key-for-unit-tests", res.Token)
	require.NoError(t, err)
	assert.Equal(t, "María Pérez", claims.Name)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
	assert.Equal(t, "administración", claims.Department)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc, _ := setupAuth(t)
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "maria", Password: "contraseña-segura"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "maria", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _ := setupAuth(t)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "fantasma", Password: "lo-que-sea"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
