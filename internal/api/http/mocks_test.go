package http

import (
	"context"

	"reuse-loop-backend/internal/domain"
	"reuse-loop-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockContainerService
type MockContainerService struct {
	mock.Mock
}

func (m *MockContainerService) CreateContainers(ctx context.Context, count int32) ([]domain.Container, error) {
	args := m.Called(ctx, count)
	return args.Get(0).([]domain.Container), args.Error(1)
}
func (m *MockContainerService) RegisterContainer(ctx context.Context, id domain.ContainerID) (*domain.Container, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Container), args.Error(1)
}
func (m *MockContainerService) GetContainer(ctx context.Context, id domain.ContainerID) (*domain.Container, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Container), args.Error(1)
}
func (m *MockContainerService) ListContainers(ctx context.Context, filter domain.ContainerFilter) ([]domain.Container, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Container), args.Error(1)
}
func (m *MockContainerService) TransitionContainer(ctx context.Context, id domain.ContainerID, next domain.ContainerStatus, opts service.TransitionOptions) (*domain.Container, error) {
	args := m.Called(ctx, id, next, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Container), args.Error(1)
}
func (m *MockContainerService) AssignContainers(ctx context.Context, ids []domain.ContainerID, holder domain.HolderID, kind domain.HolderKind) ([]domain.Container, error) {
	args := m.Called(ctx, ids, holder, kind)
	return args.Get(0).([]domain.Container), args.Error(1)
}
func (m *MockContainerService) AccrueHours(ctx context.Context, hours int32) (int64, error) {
	args := m.Called(ctx, hours)
	return args.Get(0).(int64), args.Error(1)
}
