package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/fabric-atlas/pkg/models/api"
	"github.com/de-tools/fabric-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAnalytics struct {
	mock.Mock
}

func (m *mockAnalytics) GetAnalytics(ctx context.Context, source string, now time.Time) (domain.OrderAnalytics, error) {
	args := m.Called(ctx, source, now)
	return args.Get(0).(domain.OrderAnalytics), args.Error(1)
}

func (m *mockAnalytics) GetReport(ctx context.Context, source string, now time.Time) (*domain.Report, error) {
	args := m.Called(ctx, source, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *mockAnalytics) ListSources(ctx context.Context) ([]domain.SourceProfile, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.SourceProfile), args.Error(1)
}

type mockSync struct {
	mock.Mock
}

func (m *mockSync) Start(ctx context.Context, source string) error {
	return m.Called(ctx, source).Error(0)
}

func (m *mockSync) Cancel(ctx context.Context, source string) error {
	return m.Called(ctx, source).Error(0)
}

func (m *mockSync) Status(ctx context.Context) ([]domain.SyncState, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.SyncState), args.Error(1)
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	mockSvc := new(mockAnalytics)
	mockCtrl := new(mockSync)

	config := Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Analytics: mockSvc,
			Sync:      mockCtrl,
			Logger:    logger,
		},
	}
	router := ConfigureRouter(config)
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name           string
		method         string
		path           string
		setupMocks     func()
		expectedStatus int
		expected       interface{}
		parseResponse  func([]byte) (interface{}, error)
	}{
		{
			name:   "ListSources",
			method: http.MethodGet,
			path:   "/api/v1/sources",
			setupMocks: func() {
				mockSvc.On("ListSources", mock.Anything).
					Return([]domain.SourceProfile{{Name: "store", Type: domain.SourceTypeStore}}, nil)
			},
			expectedStatus: http.StatusOK,
			expected:       []api.Source{{Name: "store", Type: "store"}},
			parseResponse:  unmarshalResponse[[]api.Source](),
		},
		{
			name:   "GetAnalytics",
			method: http.MethodGet,
			path:   "/api/v1/sources/store/analytics?date=2024-06-10",
			setupMocks: func() {
				mockSvc.On("GetAnalytics", mock.Anything, "store", day).
					Return(domain.OrderAnalytics{TotalSales: 12.5, AverageOrderValue: 12.5}, nil)
			},
			expectedStatus: http.StatusOK,
			expected: api.OrderAnalytics{
				Source:            "store",
				Date:              "2024-06-10",
				StatusData:        []api.StatusCount{},
				DailyData:         []api.DailyPoint{},
				TotalSales:        12.5,
				AverageOrderValue: 12.5,
				TopCategories:     []api.CategorySales{},
			},
			parseResponse: unmarshalResponse[api.OrderAnalytics](),
		},
		{
			name:           "GetAnalytics_InvalidDate",
			method:         http.MethodGet,
			path:           "/api/v1/sources/store/analytics?date=tomorrow",
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			expected:       api.Error{Error: "date must be formatted as YYYY-MM-DD"},
			parseResponse:  unmarshalResponse[api.Error](),
		},
		{
			name:   "GetAnalytics_UnknownSource",
			method: http.MethodGet,
			path:   "/api/v1/sources/missing/analytics?date=2024-06-10",
			setupMocks: func() {
				mockSvc.On("GetAnalytics", mock.Anything, "missing", day).
					Return(domain.OrderAnalytics{}, domain.ErrSourceNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expected:       api.Error{Error: domain.ErrSourceNotFound.Error()},
			parseResponse:  unmarshalResponse[api.Error](),
		},
		{
			name:   "StartSync",
			method: http.MethodPost,
			path:   "/api/v1/sources/warehouse/sync",
			setupMocks: func() {
				mockCtrl.On("Start", mock.Anything, "warehouse").Return(nil)
			},
			expectedStatus: http.StatusAccepted,
			expected:       "",
			parseResponse:  rawResponse,
		},
		{
			name:   "CancelSync",
			method: http.MethodDelete,
			path:   "/api/v1/sources/warehouse/sync",
			setupMocks: func() {
				mockCtrl.On("Cancel", mock.Anything, "warehouse").Return(nil)
			},
			expectedStatus: http.StatusNoContent,
			expected:       "",
			parseResponse:  rawResponse,
		},
		{
			name:   "ListSyncs",
			method: http.MethodGet,
			path:   "/api/v1/sync",
			setupMocks: func() {
				mockCtrl.On("Status", mock.Anything).Return([]domain.SyncState{}, nil)
			},
			expectedStatus: http.StatusOK,
			expected:       []api.SyncState{},
			parseResponse:  unmarshalResponse[[]api.SyncState](),
		},
		{
			name:           "UnknownRoute",
			method:         http.MethodGet,
			path:           "/api/v1/workspaces",
			setupMocks:     func() {},
			expectedStatus: http.StatusNotFound,
			expected:       "404 page not found\n",
			parseResponse:  rawResponse,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()
			req, err := http.NewRequest(tc.method, testServer.URL+tc.path, nil)
			require.NoError(t, err)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			actual, err := tc.parseResponse(body)
			require.NoError(t, err, "Failed to parse response")

			assert.Equal(t, tc.expected, actual)
		})
	}

	mockSvc.AssertExpectations(t)
	mockCtrl.AssertExpectations(t)
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var response T
		err := json.Unmarshal(data, &response)
		return response, err
	}
}

func rawResponse(data []byte) (interface{}, error) {
	return string(data), nil
}
