// Package service contains hand-maintained testify mocks for the domain
// service interfaces.
package service

import (
	"context"
	"time"

	"soko/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockEventPublisher is a mock implementation of service.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

// NewMockEventPublisher creates a new mock and registers expectation
// assertions for test cleanup.
func NewMockEventPublisher(t testingT) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEventPublisher) PublishListingEvent(ctx context.Context, event *service.ListingEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()

	return args.Error(0)
}

// MockCache is a mock implementation of service.Cache.
type MockCache struct {
	mock.Mock
}

// NewMockCache creates a new mock and registers expectation assertions for
// test cleanup.
func NewMockCache(t testingT) *MockCache {
	m := &MockCache{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)

	if value, ok := args.Get(0).([]byte); ok {
		return value, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)

	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	callArgs := make([]any, 0, len(keys)+1)
	callArgs = append(callArgs, ctx)
	for _, key := range keys {
		callArgs = append(callArgs, key)
	}

	args := m.Called(callArgs...)

	return args.Error(0)
}

func (m *MockCache) Close() error {
	args := m.Called()

	return args.Error(0)
}

// MockIdentityVerifier is a mock implementation of service.IdentityVerifier.
type MockIdentityVerifier struct {
	mock.Mock
}

// NewMockIdentityVerifier creates a new mock and registers expectation
// assertions for test cleanup.
func NewMockIdentityVerifier(t testingT) *MockIdentityVerifier {
	m := &MockIdentityVerifier{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockIdentityVerifier) Verify(ctx context.Context, token string) (*service.Identity, error) {
	args := m.Called(ctx, token)

	if identity, ok := args.Get(0).(*service.Identity); ok {
		return identity, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockQRCodeService is a mock implementation of service.QRCodeService.
type MockQRCodeService struct {
	mock.Mock
}

// NewMockQRCodeService creates a new mock and registers expectation
// assertions for test cleanup.
func NewMockQRCodeService(t testingT) *MockQRCodeService {
	m := &MockQRCodeService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockQRCodeService) GenerateContactQR(link string) ([]byte, error) {
	args := m.Called(link)

	if image, ok := args.Get(0).([]byte); ok {
		return image, args.Error(1)
	}

	return nil, args.Error(1)
}
