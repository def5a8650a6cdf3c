package room_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMocks "hotelier/infras/otel/mocks"
	"hotelier/internal/domains/room/model/dto"
	serviceMocks "hotelier/internal/domains/room/service/mocks"
	roomHandler "hotelier/internal/handlers/room"
	"hotelier/shared/failure"
)

func newRouter(t *testing.T) (*chi.Mux, *serviceMocks.MockRoom) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockService := serviceMocks.NewMockRoom(ctrl)
	handler := roomHandler.New(mockService, otelMocks.NewOtel())

	router := chi.NewRouter()
	router.Get("/v1/rooms", handler.GetRooms)
	router.Post("/v1/rooms", handler.CreateRoom)
	router.Put("/v1/rooms/{id}", handler.UpdateRoom)
	router.Delete("/v1/rooms/{id}", handler.DeleteRoom)

	return router, mockService
}

func TestGetRooms(t *testing.T) {
	t.Run("empty listing serializes as an array", func(t *testing.T) {
		router, mockService := newRouter(t)

		mockService.EXPECT().
			List(gomock.Any()).
			Return([]dto.RoomResponse{}, nil)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `[]`, recorder.Body.String())
	})

	t.Run("rooms are returned bare, not enveloped", func(t *testing.T) {
		router, mockService := newRouter(t)

		notes := "corner suite"
		mockService.EXPECT().
			List(gomock.Any()).
			Return([]dto.RoomResponse{
				{ID: 2, Name: "202", RoomType: "suite", NightlyRate: 250, Status: "available", Notes: &notes},
				{ID: 1, Name: "101", RoomType: "double", NightlyRate: 120.5, Status: "occupied"},
			}, nil)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `[
			{"id":2,"name":"202","roomType":"suite","nightlyRate":250,"status":"available","notes":"corner suite"},
			{"id":1,"name":"101","roomType":"double","nightlyRate":120.5,"status":"occupied","notes":null}
		]`, recorder.Body.String())
	})

	t.Run("storage failure stays generic", func(t *testing.T) {
		router, mockService := newRouter(t)

		mockService.EXPECT().
			List(gomock.Any()).
			Return(nil, failure.InternalFromString("Unable to load rooms."))

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.JSONEq(t, `{"message":"Unable to load rooms."}`, recorder.Body.String())
	})
}

func TestCreateRoom(t *testing.T) {
	t.Run("created room is echoed with 201", func(t *testing.T) {
		router, mockService := newRouter(t)

		mockService.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(dto.RoomResponse{ID: 7, Name: "101", RoomType: "double", NightlyRate: 120, Status: "available"}, nil)

		request := httptest.NewRequest(http.MethodPost, "/v1/rooms", strings.NewReader(`{"name":"101","roomType":"double","nightlyRate":120}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		assert.JSONEq(t, `{"id":7,"name":"101","roomType":"double","nightlyRate":120,"status":"available","notes":null}`, recorder.Body.String())
	})

	t.Run("validation failure lists every message", func(t *testing.T) {
		router, mockService := newRouter(t)

		mockService.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(dto.RoomResponse{}, failure.ValidationErrors([]string{"Room name is required.", "Room type is required.", "Nightly rate must be a positive number."}))

		request := httptest.NewRequest(http.MethodPost, "/v1/rooms", strings.NewReader(`{}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.JSONEq(t, `{"errors":["Room name is required.","Room type is required.","Nightly rate must be a positive number."]}`, recorder.Body.String())
	})

	t.Run("malformed body behaves like an empty one", func(t *testing.T) {
		router, mockService := newRouter(t)

		mockService.EXPECT().
			Create(gomock.Any(), dto.CreateRoomRequest{}).
			Return(dto.RoomResponse{}, failure.ValidationErrors([]string{"Room name is required."}))

		request := httptest.NewRequest(http.MethodPost, "/v1/rooms", strings.NewReader(`{not json`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestUpdateRoom(t *testing.T) {
	t.Run("updated room is echoed", func(t *testing.T) {
		router, mockService := newRouter(t)

		mockService.EXPECT().
			Update(gomock.Any(), int64(7), gomock.Any()).
			Return(dto.RoomResponse{ID: 7, Name: "101", RoomType: "double", NightlyRate: 140, Status: "maintenance"}, nil)

		request := httptest.NewRequest(http.MethodPut, "/v1/rooms/7", strings.NewReader(`{"nightlyRate":140,"status":"maintenance"}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"id":7,"name":"101","roomType":"double","nightlyRate":140,"status":"maintenance","notes":null}`, recorder.Body.String())
	})

	t.Run("unknown room", func(t *testing.T) {
		router, mockService := newRouter(t)

		mockService.EXPECT().
			Update(gomock.Any(), int64(9), gomock.Any()).
			Return(dto.RoomResponse{}, failure.NotFound("Room not found."))

		request := httptest.NewRequest(http.MethodPut, "/v1/rooms/9", strings.NewReader(`{"status":"occupied"}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.JSONEq(t, `{"message":"Room not found."}`, recorder.Body.String())
	})

	t.Run("invalid id never reaches the service", func(t *testing.T) {
		for _, id := range []string{"abc", "0", "-3", "1.5"} {
			router, _ := newRouter(t)

			request := httptest.NewRequest(http.MethodPut, "/v1/rooms/"+id, strings.NewReader(`{"status":"occupied"}`))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.JSONEq(t, `{"message":"Invalid room id."}`, recorder.Body.String())
		}
	})
}

func TestDeleteRoom(t *testing.T) {
	t.Run("removed", func(t *testing.T) {
		router, mockService := newRouter(t)

		mockService.EXPECT().
			Delete(gomock.Any(), int64(7)).
			Return(nil)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/v1/rooms/7", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"message":"Room removed."}`, recorder.Body.String())
	})

	t.Run("unknown room", func(t *testing.T) {
		router, mockService := newRouter(t)

		mockService.EXPECT().
			Delete(gomock.Any(), int64(9)).
			Return(failure.NotFound("Room not found."))

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/v1/rooms/9", nil))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		router, _ := newRouter(t)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/v1/rooms/abc", nil))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.JSONEq(t, `{"message":"Invalid room id."}`, recorder.Body.String())
	})
}
