package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hallbook/config"
	"hallbook/infras/otel/mocks"
	userMocks "hallbook/internal/domains/user/mocks"
	"hallbook/internal/domains/user/model"
	"hallbook/internal/domains/user/model/dto"
	"hallbook/internal/domains/user/service"
	"hallbook/shared/cache"
	cacheMocks "hallbook/shared/cache/mocks"
	"hallbook/shared/constant"
	gDto "hallbook/shared/dto"
	"hallbook/shared/failure"
	gModel "hallbook/shared/model"
	"hallbook/shared/timezone"
)

const userID = "user-id-123"

type serviceMocks struct {
	repo  *userMocks.MockUser
	cache *cacheMocks.MockRedisCache
}

func newService(t *testing.T) (service.User, serviceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := serviceMocks{
		repo:  userMocks.NewMockUser(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(m.repo, cfg, m.cache, mocks.NewOtel())

	return svc, m
}

func stringPtr(s string) *string {
	return &s
}

func activeUser() model.User {
	return model.User{
		ID:       userID,
		Email:    "test@example.com",
		Password: "hashed-password",
		Role:     constant.RoleUser,
		FullName: stringPtr("Test User"),
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "system",
			ModifiedBy: "system",
		},
	}
}

func adminContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")
}

func TestUserService_Create(t *testing.T) {
	t.Run("successfully creates user with default role", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user model.User) error {
				assert.Equal(t, constant.RoleUser, user.Role)
				assert.True(t, user.Active)
				assert.NotEqual(t, "password123", user.Password)

				return nil
			})

		m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Create(adminContext(), dto.CreateUserRequest{
			Email:    "new@example.com",
			Password: "password123",
		})

		assert.NoError(t, err)
	})

	t.Run("fails when email already registered", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		err := svc.Create(adminContext(), dto.CreateUserRequest{
			Email:    "taken@example.com",
			Password: "password123",
		})

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("fails when repository errors", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, errors.New("database error"))

		err := svc.Create(adminContext(), dto.CreateUserRequest{
			Email:    "new@example.com",
			Password: "password123",
		})

		assert.Error(t, err)
	})
}

func TestUserService_Get(t *testing.T) {
	t.Run("returns user on cache miss", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(activeUser(), nil)

		m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).AnyTimes()

		res, err := svc.Get(context.Background(), userID)

		assert.NoError(t, err)
		assert.Equal(t, userID, res.ID)
		assert.Equal(t, "test@example.com", res.Email)
	})

	t.Run("returns not found for unknown user", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{}, nil)

		_, err := svc.Get(context.Background(), "unknown-id")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestUserService_GetAll(t *testing.T) {
	t.Run("returns users with pagination", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).Times(2)

		m.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(1, nil)

		m.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.User{activeUser()}, nil)

		m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).AnyTimes()

		res, err := svc.GetAll(context.Background(), gDto.QueryParams{Limit: 10}, gDto.FilterGroup{})

		assert.NoError(t, err)
		assert.Len(t, res.Users, 1)
		assert.Equal(t, 1, res.TotalData)
	})
}

func TestUserService_Update(t *testing.T) {
	t.Run("successfully updates user", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Update(adminContext(), dto.UpdateUserRequest{FullName: stringPtr("Renamed User")}, userID)

		assert.NoError(t, err)
	})

	t.Run("fails on empty update request", func(t *testing.T) {
		svc, _ := newService(t)

		err := svc.Update(adminContext(), dto.UpdateUserRequest{}, userID)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("returns not found for unknown user", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Update(adminContext(), dto.UpdateUserRequest{FullName: stringPtr("Renamed User")}, "unknown-id")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestUserService_Deactivate(t *testing.T) {
	t.Run("deactivates user instead of deleting", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, false, fields[model.FieldActive])

				return nil
			})

		m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.Deactivate(adminContext(), userID)

		assert.NoError(t, err)
	})

	t.Run("returns not found for unknown user", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Deactivate(adminContext(), "unknown-id")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
