package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"reuse-loop-backend/internal/domain"
	"reuse-loop-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		domain.ErrNotFound:            http.StatusNotFound,
		domain.ErrUnknownUser:         http.StatusNotFound,
		domain.ErrDuplicateID:         http.StatusConflict,
		domain.ErrInvalidTransition:   http.StatusConflict,
		domain.ErrInsufficientStock:   http.StatusUnprocessableEntity,
		domain.ErrInsufficientBalance: http.StatusUnprocessableEntity,
		domain.ErrInvalidArgument:     http.StatusBadRequest,
		errors.New("boom"):            http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, statusFor(err), err.Error())
	}
}

func containerRouter(svc *MockContainerService) http.Handler {
	return NewRouter(Services{Containers: svc})
}

func TestContainerHandler_List(t *testing.T) {
	svc := new(MockContainerService)
	router := containerRouter(svc)

	t.Run("Success", func(t *testing.T) {
		svc.On("ListContainers", mock.Anything, domain.ContainerFilter{Status: domain.ContainerStatusClean, IDContains: "C0"}).
			Return([]domain.Container{{ID: "C001", Status: domain.ContainerStatusClean}}, nil).Once()

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/containers?status=CLEAN&q=C0", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"C001"`)
	})

	t.Run("BadStatus", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/containers?status=LOST", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestContainerHandler_Create(t *testing.T) {
	svc := new(MockContainerService)
	router := containerRouter(svc)

	t.Run("ByCount", func(t *testing.T) {
		svc.On("CreateContainers", mock.Anything, int32(2)).
			Return([]domain.Container{{ID: "C001"}, {ID: "C002"}}, nil).Once()

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/containers", strings.NewReader(`{"count":2}`)))
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("ByID", func(t *testing.T) {
		svc.On("RegisterContainer", mock.Anything, domain.ContainerID("BOWL-1")).
			Return(nil, domain.ErrDuplicateID).Once()

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/containers", strings.NewReader(`{"id":"BOWL-1"}`)))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("UnknownField", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/containers", strings.NewReader(`{"size":"XL"}`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestContainerHandler_Transition(t *testing.T) {
	svc := new(MockContainerService)
	router := containerRouter(svc)

	t.Run("Return", func(t *testing.T) {
		svc.On("TransitionContainer", mock.Anything, domain.ContainerID("C001"), domain.ContainerStatusReturned,
			mock.MatchedBy(func(opts service.TransitionOptions) bool {
				return opts.ReturnedClean != nil && *opts.ReturnedClean
			})).
			Return(&domain.Container{ID: "C001", Status: domain.ContainerStatusReturned}, nil).Once()

		rec := httptest.NewRecorder()
		body := strings.NewReader(`{"status":"RETURNED","returned_clean":true}`)
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/containers/C001/transition", body))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("InvalidTransition", func(t *testing.T) {
		svc.On("TransitionContainer", mock.Anything, domain.ContainerID("C002"), domain.ContainerStatusClean, mock.Anything).
			Return(nil, domain.ErrInvalidTransition).Once()

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/containers/C002/transition", strings.NewReader(`{"status":"CLEAN"}`)))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("InternalErrorHidden", func(t *testing.T) {
		svc.On("TransitionContainer", mock.Anything, domain.ContainerID("C003"), domain.ContainerStatusClean, mock.Anything).
			Return(nil, errors.New("connection reset")).Once()

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/containers/C003/transition", strings.NewReader(`{"status":"CLEAN"}`)))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection reset")
	})

	svc.AssertExpectations(t)
}
