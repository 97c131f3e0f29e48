package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jeanheinriich/agendamentos-sub004/internal/application/auth"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/dto"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
	"github.com/jeanheinriich/agendamentos-sub004/internal/testutil/memstore"
	"github.com/jeanheinriich/agendamentos-sub004/pkg/jwt"
)

func setup(t *testing.T) (*memstore.Store, *auth.AuthUseCase) {
	t.Helper()
	st := memstore.New()
	st.AddContractor("A", "Alfa")
	hash, err := bcrypt.GenerateFromPassword([]byte("s3nha"), bcrypt.MinCost)
	require.NoError(t, err)
	st.Users["u1"] = entity.User{
		ID: "u1", ContractorID: "A", Email: "ana@alfa.com", PasswordHash: string(hash),
		Name: "Ana", Role: entity.RoleOperator, Status: "active",
	}
	uc := auth.NewAuthUseCase(st.UserRepo(), st.ContractorRepo(), auth.JWTConfig{Secret: "k", ExpMinutes: 10, Issuer: "fleet"})
	return st, uc
}

func TestLogin_Exitoso(t *testing.T) {
	_, uc := setup(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@alfa.com", Password: "s3nha"})
	require.NoError(t, err)
	assert.Equal(t, "A", out.User.ContractorID)

	userID, contractorID, role, err := jwt.Parse("k", out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, "A", contractorID)
	assert.Equal(t, entity.RoleOperator, role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	_, uc := setup(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@alfa.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@alfa.com", Password: "s3nha"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_ContratanteBloqueado(t *testing.T) {
	st, uc := setup(t)
	c := st.Contractors["A"]
	c.Blocked = true
	st.Contractors["A"] = c

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@alfa.com", Password: "s3nha"})
	assert.ErrorIs(t, err, domain.ErrBlocked)
}
