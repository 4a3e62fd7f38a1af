package authenticating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	fbdomain "github.com/alexnetofit/facedash/infrastructure/integrator/facebook/domain"
	fbmocks "github.com/alexnetofit/facedash/infrastructure/integrator/facebook/mocks"
	"github.com/alexnetofit/facedash/infrastructure/repository/mocks"
	"github.com/alexnetofit/facedash/internal/config"
	"github.com/alexnetofit/facedash/internal/domain"
)

func newTestService(t *testing.T) (*Service, *mocks.MockUserRepository, *fbmocks.MockAdsIntegrator) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	mockAdsService := fbmocks.NewMockAdsIntegrator(ctrl)

	cfg := &config.Config{SecretKey: "segredo-de-teste"}
	service := NewService(mockUserRepo, mockAdsService, cfg).(*Service)

	return service, mockUserRepo, mockAdsService
}

func hashPassword(t *testing.T, password string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestService_LoginUser(t *testing.T) {
	t.Run("Login válido deve retornar token verificável", func(t *testing.T) {
		service, mockUserRepo, _ := newTestService(t)

		mockUserRepo.EXPECT().
			GetUserByEmail("maria@example.com").
			Return(&domain.User{
				ID:           1,
				Name:         "Maria",
				Email:        "maria@example.com",
				PasswordHash: hashPassword(t, "senha-correta"),
				Active:       true,
				RoleID:       2,
			}, nil)

		token, err := service.LoginUser("maria@example.com", "senha-correta")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := service.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, 1, claims.UserID)
		assert.Equal(t, "Maria", claims.UserName)
		assert.Equal(t, 2, claims.UserRoleID)
	})

	t.Run("Email deve ser normalizado antes da consulta", func(t *testing.T) {
		service, mockUserRepo, _ := newTestService(t)

		mockUserRepo.EXPECT().
			GetUserByEmail("maria@example.com").
			Return(&domain.User{
				ID:           1,
				Email:        "maria@example.com",
				PasswordHash: hashPassword(t, "senha-correta"),
				Active:       true,
				RoleID:       2,
			}, nil)

		token, err := service.LoginUser("  MARIA@Example.com ", "senha-correta")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("Senha incorreta deve retornar erro de credenciais", func(t *testing.T) {
		service, mockUserRepo, _ := newTestService(t)

		mockUserRepo.EXPECT().
			GetUserByEmail("maria@example.com").
			Return(&domain.User{
				ID:           1,
				Email:        "maria@example.com",
				PasswordHash: hashPassword(t, "senha-correta"),
				Active:       true,
			}, nil)

		token, err := service.LoginUser("maria@example.com", "senha-errada")

		assert.Empty(t, token)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Usuário inexistente deve retornar erro", func(t *testing.T) {
		service, mockUserRepo, _ := newTestService(t)

		mockUserRepo.EXPECT().
			GetUserByEmail("ninguem@example.com").
			Return(nil, nil)

		token, err := service.LoginUser("ninguem@example.com", "qualquer")

		assert.Empty(t, token)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("Usuário desativado deve retornar erro", func(t *testing.T) {
		service, mockUserRepo, _ := newTestService(t)

		mockUserRepo.EXPECT().
			GetUserByEmail("inativo@example.com").
			Return(&domain.User{
				ID:           3,
				Email:        "inativo@example.com",
				PasswordHash: hashPassword(t, "senha"),
				Active:       false,
			}, nil)

		token, err := service.LoginUser("inativo@example.com", "senha")

		assert.Empty(t, token)
		assert.ErrorIs(t, err, ErrUserDisabled)
	})

	t.Run("Campos vazios devem retornar erro de validação", func(t *testing.T) {
		service, _, _ := newTestService(t)

		token, err := service.LoginUser("", "")

		assert.Empty(t, token)
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})
}

func TestService_CreateUser(t *testing.T) {
	t.Run("Deve criar usuário com senha com hash e papel padrão", func(t *testing.T) {
		service, mockUserRepo, _ := newTestService(t)

		mockUserRepo.EXPECT().
			GetUserByEmail("novo@example.com").
			Return(nil, nil)

		mockUserRepo.EXPECT().
			CreateUser(gomock.Any()).
			DoAndReturn(func(user *domain.User) (*domain.User, error) {
				assert.NotEqual(t, "senha123", user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("senha123")))
				assert.Equal(t, 2, user.RoleID)
				assert.True(t, user.Active)

				user.ID = 10
				return user, nil
			})

		user, err := service.CreateUser(&domain.User{
			Name:         "Novo",
			Email:        "Novo@Example.com",
			PasswordHash: "senha123",
		})

		assert.NoError(t, err)
		assert.Equal(t, 10, user.ID)
		assert.Equal(t, "novo@example.com", user.Email)
	})

	t.Run("Email já cadastrado deve retornar erro", func(t *testing.T) {
		service, mockUserRepo, _ := newTestService(t)

		mockUserRepo.EXPECT().
			GetUserByEmail("existente@example.com").
			Return(&domain.User{ID: 5, Email: "existente@example.com"}, nil)

		user, err := service.CreateUser(&domain.User{
			Name:         "Duplicado",
			Email:        "existente@example.com",
			PasswordHash: "senha123",
		})

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("Dados obrigatórios ausentes devem retornar erro", func(t *testing.T) {
		service, _, _ := newTestService(t)

		user, err := service.CreateUser(&domain.User{Email: "sem-nome@example.com"})

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})
}

func TestService_ConnectFacebook(t *testing.T) {
	t.Run("Token válido deve gravar as credenciais do Facebook", func(t *testing.T) {
		service, mockUserRepo, mockAdsService := newTestService(t)

		mockUserRepo.EXPECT().
			GetUserByID(1).
			Return(&domain.User{ID: 1, Name: "Maria", Active: true}, nil)

		mockAdsService.EXPECT().
			VerifyUserToken("fb-token").
			Return(&fbdomain.TokenDebugData{IsValid: true, AppID: "123"}, nil)

		mockAdsService.EXPECT().
			GetUserProfile("fb-token").
			Return(&fbdomain.FacebookUser{ID: "fb-user-9", Email: "maria@example.com"}, nil)

		mockUserRepo.EXPECT().
			UpdateFacebookCredentials(1, "fb-user-9", "fb-token").
			Return(nil)

		user, err := service.ConnectFacebook(1, "fb-token")

		assert.NoError(t, err)
		assert.NotNil(t, user.FacebookUserID)
		assert.Equal(t, "fb-user-9", *user.FacebookUserID)
		assert.True(t, user.HasFacebookConnection())
	})

	t.Run("Token inválido não persiste nada", func(t *testing.T) {
		service, mockUserRepo, mockAdsService := newTestService(t)

		mockUserRepo.EXPECT().
			GetUserByID(1).
			Return(&domain.User{ID: 1, Active: true}, nil)

		mockAdsService.EXPECT().
			VerifyUserToken("fb-token-expirado").
			Return(&fbdomain.TokenDebugData{IsValid: false}, nil)

		user, err := service.ConnectFacebook(1, "fb-token-expirado")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrInvalidFacebookToken)
	})

	t.Run("Token vazio deve retornar erro de validação", func(t *testing.T) {
		service, _, _ := newTestService(t)

		user, err := service.ConnectFacebook(1, "")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})

	t.Run("Usuário inexistente deve retornar erro", func(t *testing.T) {
		service, mockUserRepo, _ := newTestService(t)

		mockUserRepo.EXPECT().
			GetUserByID(99).
			Return(nil, nil)

		user, err := service.ConnectFacebook(99, "fb-token")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestService_ValidateToken(t *testing.T) {
	t.Run("Token adulterado deve ser rejeitado", func(t *testing.T) {
		service, _, _ := newTestService(t)

		claims, err := service.ValidateToken("token.invalido.aqui")

		assert.Nil(t, claims)
		assert.Error(t, err)
	})
}

func TestHandleEmail(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Maria@Example.com", "maria@example.com"},
		{"  joao@example.com  ", "joao@example.com"},
		{"com espaco@example.com", "comespaco@example.com"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, handleEmail(tt.input))
	}
}
