package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/i2y/graphqlmcp/internal/domain"
	"github.com/i2y/graphqlmcp/internal/usecase"
)

type MockSchemaWarmer struct {
	mock.Mock
}

func (m *MockSchemaWarmer) Warm(ctx context.Context, descriptor domain.SchemaDescriptor) error {
	return m.Called(ctx, descriptor).Error(0)
}

func warmCatalog() domain.Catalog {
	return domain.Catalog{
		Schemas:       []domain.SchemaDescriptor{adminSchema},
		APIs:          []domain.APIInfo{{Name: "admin"}},
		Versions:      []string{"2025-01"},
		LatestVersion: "2025-01",
	}
}

func TestWarmSchemaUseCase_Execute(t *testing.T) {
	tests := []struct {
		name       string
		api        string
		version    string
		setupMocks func(repo *MockSchemaRepository, warmer *MockSchemaWarmer)
		wantErr    string
	}{
		{
			name:    "latest version by default",
			api:     "admin",
			version: "",
			setupMocks: func(repo *MockSchemaRepository, warmer *MockSchemaWarmer) {
				repo.On("Load", mock.Anything, adminSchema).Return([]byte(`{}`), nil).Once()
				warmer.On("Warm", mock.Anything, adminSchema).Return(nil).Once()
			},
		},
		{
			name:       "unknown api",
			api:        "bogus",
			version:    "2025-01",
			setupMocks: func(repo *MockSchemaRepository, warmer *MockSchemaWarmer) {},
			wantErr:    "Currently supported schemas: admin (2025-01)",
		},
		{
			name:    "download failure",
			api:     "admin",
			version: "2025-01",
			setupMocks: func(repo *MockSchemaRepository, warmer *MockSchemaWarmer) {
				repo.On("Load", mock.Anything, adminSchema).Return(nil, errors.New("status 404 Not Found")).Once()
			},
			wantErr: "failed to load schema admin_2025-01: status 404 Not Found",
		},
		{
			name:    "warmer failure",
			api:     "admin",
			version: "2025-01",
			setupMocks: func(repo *MockSchemaRepository, warmer *MockSchemaWarmer) {
				repo.On("Load", mock.Anything, adminSchema).Return([]byte(`{}`), nil).Once()
				warmer.On("Warm", mock.Anything, adminSchema).Return(errors.New("undefined type Widget")).Once()
			},
			wantErr: "failed to warm schema admin_2025-01: undefined type Widget",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := new(MockCatalogFetcher)
			fetcher.On("FetchCatalog", mock.Anything).Return(warmCatalog())
			repo := new(MockSchemaRepository)
			warmer := new(MockSchemaWarmer)
			tt.setupMocks(repo, warmer)

			uc := usecase.NewWarmSchemaUseCase(fetcher, repo, newTestLogger(), warmer)
			got, err := uc.Execute(context.Background(), tt.api, tt.version)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, adminSchema, got)
			}
			repo.AssertExpectations(t)
			warmer.AssertExpectations(t)
		})
	}
}
