package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memUserRepo fake en memoria de UserRepository. findErr permite simular
// fallos de almacenamiento en FindByEmail.
type memUserRepo struct {
	users   map[string]*entity.User // por email
	findErr error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.users[u.Email] = u
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.users[email], nil
}

func testJWTConfig() JWTConfig {
	return JWTConfig{Secret: "secreto-de-test", ExpMinutes: 15, Issuer: "compras-api-test"}
}

func TestRegisterUser_CreaConHashYRolPorDefecto(t *testing.T) {
	repo := newMemUserRepo()
	uc := NewAuthUseCase(repo, testJWTConfig())

	out, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email:    "bodega@acme.cl",
		Password: "clave-segura",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleBodeguero, out.Role)
	assert.Equal(t, "bodega@acme.cl", out.Name) // sin nombre, usa el email

	stored := repo.users["bodega@acme.cl"]
	require.NotNil(t, stored)
	assert.True(t, stored.Active)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("clave-segura")))
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	repo := newMemUserRepo()
	uc := NewAuthUseCase(repo, testJWTConfig())

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email:    "dup@acme.cl",
		Password: "clave-segura",
	})
	require.NoError(t, err)

	_, err = uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email:    "dup@acme.cl",
		Password: "otra-clave-123",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_FalloDeAlmacenamiento_SePropaga(t *testing.T) {
	repo := newMemUserRepo()
	repo.findErr = errors.New("conexión perdida")
	uc := NewAuthUseCase(repo, testJWTConfig())

	// Un fallo al consultar el email no debe interpretarse como "email libre":
	// el error se propaga y no se crea ningún usuario.
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email:    "x@acme.cl",
		Password: "clave-segura",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Empty(t, repo.users)
}

func TestRegisterUser_Validaciones(t *testing.T) {
	uc := NewAuthUseCase(newMemUserRepo(), testJWTConfig())

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "a@b.cl", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_CredencialesValidasEInvalidas(t *testing.T) {
	repo := newMemUserRepo()
	uc := NewAuthUseCase(repo, testJWTConfig())

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email:    "login@acme.cl",
		Password: "clave-segura",
		Role:     entity.RoleComprador,
	})
	require.NoError(t, err)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "login@acme.cl", Password: "clave-segura"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleComprador, out.User.Role)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "login@acme.cl", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@acme.cl", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	repo := newMemUserRepo()
	uc := NewAuthUseCase(repo, testJWTConfig())

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email:    "baja@acme.cl",
		Password: "clave-segura",
	})
	require.NoError(t, err)
	repo.users["baja@acme.cl"].Active = false

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "baja@acme.cl", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
