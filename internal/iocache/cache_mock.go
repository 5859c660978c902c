package iocache

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/jmallard/shelfwatch/schema"
)

// Testify mocks for the persistence interfaces. Exported so command and
// core tests can stub out the stores without touching a real backend.

// MockCacheManager mocks contract.CacheManager.
type MockCacheManager struct {
	mock.Mock
}

var _ contract.CacheManager = &MockCacheManager{}

func (m *MockCacheManager) GetCacheStore() contract.CacheStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CacheStore)
	return store
}

func (m *MockCacheManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// MockCacheStore mocks contract.CacheStore.
type MockCacheStore struct {
	mock.Mock
}

var _ contract.CacheStore = &MockCacheStore{}

func (m *MockCacheStore) Get(key string) ([]byte, int, int64, error) {
	args := m.Called(key)
	return args.Get(0).([]byte), args.Int(1), args.Get(2).(int64), args.Error(3)
}

func (m *MockCacheStore) Set(key string, data []byte, version int, ts int64) error {
	args := m.Called(key, data, version, ts)
	return args.Error(0)
}

func (m *MockCacheStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockCacheStore) GetStatus() (schema.CacheStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}

// MockHistoryStore mocks contract.HistoryStore.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{}

func (m *MockHistoryStore) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHistoryStore) EndRun(runID int64, endTime time.Time, totalForecasts int) error {
	args := m.Called(runID, endTime, totalForecasts)
	return args.Error(0)
}

func (m *MockHistoryStore) RecordForecast(runID int64, result schema.ForecastResult) error {
	args := m.Called(runID, result)
	return args.Error(0)
}

func (m *MockHistoryStore) GetAllRuns() ([]schema.RunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.RunRecord)
	return runs, args.Error(1)
}

func (m *MockHistoryStore) GetAllForecasts() ([]schema.ForecastRowRecord, error) {
	args := m.Called()
	rows, _ := args.Get(0).([]schema.ForecastRowRecord)
	return rows, args.Error(1)
}

func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
