package usecase

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/naka-gawa/dockerhub-pulls/internal/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockStore is a mock implementation of the gateway.SheetStore interface.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) ReadRange(ctx context.Context, rng string) ([][]interface{}, error) {
	args := m.Called(ctx, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]interface{}), args.Error(1)
}

func (m *mockStore) WriteRange(ctx context.Context, rng string, values [][]interface{}, inputOption string) error {
	args := m.Called(ctx, rng, values, inputOption)
	return args.Error(0)
}

func fixedNow() time.Time {
	return time.Date(2024, time.January, 2, 9, 0, 0, 0, time.UTC)
}

func TestUpdater_Update(t *testing.T) {
	store := new(mockStore)
	store.On("ReadRange", mock.Anything, RawTab).Return([][]interface{}{
		{"Code", "Latest", "01/01/2024"},
		{"a", "5", "5"},
		{"b", "15", "15"},
		{"retired", "1", "1"},
	}, nil)
	store.On("WriteRange", mock.Anything, RawTab, [][]interface{}{
		{"Code", "Latest", "01/01/2024", "02/01/2024"},
		{"a", 10, "5", 10},
		{"b", 20, "15", 20},
		{"retired", "1", "1"},
	}, gateway.InputRaw).Return(nil)
	store.On("ReadRange", mock.Anything, PreprocessedTab).Return([][]interface{}{
		{"Code", "Latest", "01/01/2024", ""},
		{"a"},
		{"b"},
		{"retired"},
	}, nil)
	store.On("WriteRange", mock.Anything, PreprocessedTab, [][]interface{}{
		{"Code", "Latest", "01/01/2024", "02/01/2024"},
		{"a", "=Raw!D2 - Raw!C2", "", "=Raw!D2 - Raw!C2"},
		{"b", "=Raw!D3 - Raw!C3", "", "=Raw!D3 - Raw!C3"},
		{"retired", "=Raw!D4 - Raw!C4", "", "=Raw!D4 - Raw!C4"},
	}, gateway.InputUserEntered).Return(nil)

	updater := NewUpdater(store, log.New(io.Discard, "", 0), fixedNow)
	result, err := updater.Update(context.Background(), map[string]int{"a": 10, "b": 20})

	require.NoError(t, err)
	assert.Equal(t, &UpdateResult{Date: "02/01/2024", RawColumn: "D", PreprocessedColumn: "D"}, result)
	store.AssertExpectations(t)
}

func TestUpdater_Update_Errors(t *testing.T) {
	testCases := []struct {
		name           string
		setup          func(s *mockStore)
		expectedErrMsg string
	}{
		{
			name: "Raw read fails",
			setup: func(s *mockStore) {
				s.On("ReadRange", mock.Anything, RawTab).Return(nil, errors.New("forbidden"))
			},
			expectedErrMsg: "forbidden",
		},
		{
			name: "Raw has no Latest column",
			setup: func(s *mockStore) {
				s.On("ReadRange", mock.Anything, RawTab).Return([][]interface{}{{"Code"}}, nil)
			},
			expectedErrMsg: `Raw tab has no "Latest" header column`,
		},
		{
			name: "Pre-processed has no Latest column",
			setup: func(s *mockStore) {
				s.On("ReadRange", mock.Anything, RawTab).Return([][]interface{}{{"Code", "Latest"}}, nil)
				s.On("WriteRange", mock.Anything, RawTab, mock.Anything, gateway.InputRaw).Return(nil)
				s.On("ReadRange", mock.Anything, PreprocessedTab).Return([][]interface{}{{"Code"}}, nil)
			},
			expectedErrMsg: `Pre-processed tab has no "Latest" header column`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := new(mockStore)
			tc.setup(store)

			result, err := NewUpdater(store, log.New(io.Discard, "", 0), fixedNow).Update(context.Background(), map[string]int{"a": 1})

			assert.Error(t, err)
			assert.Contains(t, err.Error(), tc.expectedErrMsg)
			assert.Nil(t, result)
			store.AssertExpectations(t)
		})
	}
}
