package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelier/config"
	"hotelier/infras/otel/mocks"
	roomMocks "hotelier/internal/domains/room/mocks"
	"hotelier/internal/domains/room/model"
	"hotelier/internal/domains/room/model/dto"
	"hotelier/internal/domains/room/service"
	cacheMocks "hotelier/shared/cache/mocks"
	"hotelier/shared/failure"
)

func createRequest(t *testing.T, payload string) dto.CreateRoomRequest {
	t.Helper()

	var req dto.CreateRoomRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	return req
}

func updateRequest(t *testing.T, payload string) dto.UpdateRoomRequest {
	t.Helper()

	var req dto.UpdateRoomRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	return req
}

func TestRoomService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	notes := "corner suite"
	rooms := []model.Room{
		{ID: 2, Name: "202", RoomType: "suite", NightlyRate: 250, Status: model.StatusAvailable, Notes: &notes},
		{ID: 1, Name: "101", RoomType: "double", NightlyRate: 120.5, Status: model.StatusOccupied},
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantLen   int
	}{
		{
			name: "cache hit",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
			wantLen: 0,
		},
		{
			name: "cache miss, rooms from db",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					List(gomock.Any()).
					Return(rooms, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			wantLen: 2,
		},
		{
			name: "cache miss, empty table yields empty slice",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					List(gomock.Any()).
					Return(nil, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			wantLen: 0,
		},
		{
			name: "repository error",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					List(gomock.Any()).
					Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.List(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
				assert.Equal(t, "Unable to load rooms.", err.Error())
			} else {
				assert.NoError(t, err)
				assert.Len(t, result, tt.wantLen)
			}
		})
	}
}

func TestRoomService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	stored := model.Room{ID: 7, Name: "101", RoomType: "double", NightlyRate: 120, Status: model.StatusAvailable}

	tests := []struct {
		name         string
		payload      string
		setupMock    func()
		wantErr      bool
		wantCode     int
		wantMessages []string
	}{
		{
			name:    "successful creation reads the row back",
			payload: `{"name":"101","roomType":"double","nightlyRate":120}`,
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(int64(7), nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), int64(7)).
					Return(stored, true, nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name:      "validation failure collects every message",
			payload:   `{"nightlyRate":-1,"status":"closed"}`,
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
			wantMessages: []string{
				"Room name is required.",
				"Room type is required.",
				"Nightly rate must be a positive number.",
				"Status is invalid.",
			},
		},
		{
			name:    "insert failure",
			payload: `{"name":"101","roomType":"double","nightlyRate":120}`,
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(int64(0), errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
		{
			name:    "read-back failure",
			payload: `{"name":"101","roomType":"double","nightlyRate":120}`,
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(int64(7), nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), int64(7)).
					Return(model.Room{}, false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Create(context.Background(), createRequest(t, tt.payload))

			if !tt.wantErr {
				assert.NoError(t, err)
				assert.Equal(t, int64(7), result.ID)
				assert.Equal(t, "101", result.Name)

				return
			}

			assert.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))

			if len(tt.wantMessages) > 0 {
				var validation *failure.Validation
				require.ErrorAs(t, err, &validation)
				assert.Equal(t, tt.wantMessages, validation.Messages)
			}
		})
	}
}

func TestRoomService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	stored := model.Room{ID: 7, Name: "101", RoomType: "double", NightlyRate: 140, Status: model.StatusMaintenance}

	tests := []struct {
		name      string
		payload   string
		setupMock func()
		wantErr   bool
		wantCode  int
		wantMsg   string
	}{
		{
			name:    "successful sparse update",
			payload: `{"nightlyRate":140,"status":"maintenance"}`,
			setupMock: func() {
				mockRepo.EXPECT().
					Update(gomock.Any(), int64(7), gomock.Any()).
					Return(int64(1), nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), int64(7)).
					Return(stored, true, nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name:      "empty payload is rejected before storage",
			payload:   `{}`,
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
			wantMsg:   "No valid fields to update.",
		},
		{
			name:      "unknown keys only is rejected before storage",
			payload:   `{"floor":3}`,
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
			wantMsg:   "No valid fields to update.",
		},
		{
			name:      "present invalid field fails validation",
			payload:   `{"name":"   "}`,
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name:    "zero affected rows",
			payload: `{"status":"occupied"}`,
			setupMock: func() {
				mockRepo.EXPECT().
					Update(gomock.Any(), int64(7), gomock.Any()).
					Return(int64(0), nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
			wantMsg:  "Room not found.",
		},
		{
			name:    "update failure",
			payload: `{"status":"occupied"}`,
			setupMock: func() {
				mockRepo.EXPECT().
					Update(gomock.Any(), int64(7), gomock.Any()).
					Return(int64(0), errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
			wantMsg:  "Unable to update room.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Update(context.Background(), 7, updateRequest(t, tt.payload))

			if !tt.wantErr {
				assert.NoError(t, err)
				assert.Equal(t, float64(140), result.NightlyRate)
				assert.Equal(t, model.StatusMaintenance, result.Status)

				return
			}

			assert.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))

			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, err.Error())
			}
		})
	}
}

func TestRoomService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
		wantMsg   string
	}{
		{
			name: "successful delete",
			setupMock: func() {
				mockRepo.EXPECT().
					Delete(gomock.Any(), int64(7)).
					Return(int64(1), nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "zero affected rows",
			setupMock: func() {
				mockRepo.EXPECT().
					Delete(gomock.Any(), int64(7)).
					Return(int64(0), nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
			wantMsg:  "Room not found.",
		},
		{
			name: "delete failure",
			setupMock: func() {
				mockRepo.EXPECT().
					Delete(gomock.Any(), int64(7)).
					Return(int64(0), errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
			wantMsg:  "Unable to delete room.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(context.Background(), 7)

			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}

			assert.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))

			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, err.Error())
			}
		})
	}
}
