package usecase_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/stretchr/testify/mock"

	"github.com/i2y/graphqlmcp/internal/domain"
)

// MockCatalogFetcher is a mock implementation of the CatalogFetcher interface.
type MockCatalogFetcher struct {
	mock.Mock
}

func (m *MockCatalogFetcher) FetchCatalog(ctx context.Context) domain.Catalog {
	args := m.Called(ctx)
	return args.Get(0).(domain.Catalog)
}

// MockSchemaRepository is a mock implementation of the SchemaRepository interface.
type MockSchemaRepository struct {
	mock.Mock
}

func (m *MockSchemaRepository) Load(ctx context.Context, descriptor domain.SchemaDescriptor) ([]byte, error) {
	args := m.Called(ctx, descriptor)
	result := args.Get(0)
	if result == nil {
		return nil, args.Error(1)
	}
	return result.([]byte), args.Error(1)
}

// MockOperationChecker is a mock implementation of the OperationChecker interface.
type MockOperationChecker struct {
	mock.Mock
}

func (m *MockOperationChecker) Check(ctx context.Context, descriptor domain.SchemaDescriptor, operation string) (string, error) {
	args := m.Called(ctx, descriptor, operation)
	return args.String(0), args.Error(1)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

var adminSchema = domain.SchemaDescriptor{
	API:     "admin",
	ID:      "admin_2025-01",
	Version: "2025-01",
	URL:     "https://example.com/admin_2025-01.json",
}
