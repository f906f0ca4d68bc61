package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/service"
)

func TestUserUpdate_PartialFields(t *testing.T) {
	ctx := context.Background()
	users := newMemUserRepo()
	user := &domain.User{FirstName: "Ann", LastName: "Lee", Email: "a@x.com", Role: domain.RoleUser}
	require.NoError(t, users.Create(ctx, user))

	svc := service.NewUserService(users, zap.NewNop())

	newFirst := "Anna"
	updated, err := svc.Update(ctx, user.ID, service.UserUpdate{FirstName: &newFirst})
	require.NoError(t, err)
	assert.Equal(t, "Anna", updated.FirstName)
	assert.Equal(t, "Lee", updated.LastName, "absent fields stay unchanged")
	assert.Equal(t, "a@x.com", updated.Email)
}

func TestUserUpdate_EmailConflict(t *testing.T) {
	ctx := context.Background()
	users := newMemUserRepo()
	first := &domain.User{FirstName: "Ann", Email: "a@x.com", Role: domain.RoleUser}
	second := &domain.User{FirstName: "Bob", Email: "b@x.com", Role: domain.RoleUser}
	require.NoError(t, users.Create(ctx, first))
	require.NoError(t, users.Create(ctx, second))

	svc := service.NewUserService(users, zap.NewNop())

	taken := "a@x.com"
	_, err := svc.Update(ctx, second.ID, service.UserUpdate{Email: &taken})
	assertDomainCode(t, err, "EMAIL_TAKEN")
}

func TestUserRemove_Missing(t *testing.T) {
	svc := service.NewUserService(newMemUserRepo(), zap.NewNop())
	err := svc.Remove(context.Background(), "missing")
	assertDomainCode(t, err, "NOT_FOUND")
}
