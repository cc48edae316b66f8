package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"garage-scheduler/internal/domain/garage"
	"garage-scheduler/internal/domain/lot"
	"garage-scheduler/internal/handler/api"
	resdto "garage-scheduler/internal/handler/dto/response"
	"garage-scheduler/internal/handler/httptest"
	"garage-scheduler/internal/pkg/clock"
	"garage-scheduler/internal/pkg/errs"
	"garage-scheduler/internal/usecase"
	usecasemock "garage-scheduler/internal/usecase/mock"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var baseTime = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

type BookingHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockUseCase *usecasemock.MockBookingUseCase
	clock       *clock.MockClock
	handler     *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockUseCase = usecasemock.NewMockBookingUseCase(s.mockCtrl)
	s.clock = clock.NewMockClock(baseTime)
	s.handler = api.NewBookingHandler(s.mockUseCase, s.clock)

	s.router.POST("/bookings", s.handler.CreateBooking)
	s.router.GET("/lots", s.handler.ListLots)
	s.router.GET("/lots/:id/history", s.handler.LotHistory)
	s.router.GET("/audit", s.handler.AuditTotals)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

// ================================================================================
// TestCreateBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	url := "/bookings"

	s.Run("success: returns 201 with the booked lot", func() {
		result := &usecase.BookingResult{
			BookingID:   uuid.New(),
			LotID:       3,
			DurationSec: 600,
			Start:       baseTime,
			End:         baseTime.Add(10 * time.Minute),
		}
		s.mockUseCase.EXPECT().Book(gomock.Any(), int64(600)).Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"durationSec": 600})

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Empty(cmp.Diff(*resdto.FromBookingResult(result), body))
	})

	s.Run("full: returns 409 with Retry-After and next available detail", func() {
		next := baseTime.Add(90*time.Second + 500*time.Millisecond)
		s.mockUseCase.EXPECT().Book(gomock.Any(), int64(60)).
			Return(&usecase.BookingResult{LotID: garage.FullSentinel, Start: next, Full: true}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"durationSec": 60})

		body := httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "garage is full")
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Retry-After": "91"})

		var detail resdto.GarageFullDetail
		s.Require().NoError(json.Unmarshal(body.Detail, &detail))
		s.True(next.Equal(detail.NextAvailable))
	})

	s.Run("full: Retry-After is never negative", func() {
		s.mockUseCase.EXPECT().Book(gomock.Any(), int64(60)).
			Return(&usecase.BookingResult{LotID: garage.FullSentinel, Start: baseTime.Add(-time.Minute), Full: true}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"durationSec": 60})

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "garage is full")
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Retry-After": "0"})
	})

	s.Run("error: 400 on malformed or missing body", func() {
		cases := []struct {
			name string
			body any
		}{
			{name: "malformed JSON", body: `{"durationSec":`},
			{name: "missing durationSec", body: map[string]any{}},
			{name: "zero durationSec", body: map[string]any{"durationSec": 0}},
			{name: "wrong type", body: map[string]any{"durationSec": "ten"}},
			{name: "durationSec over one year", body: map[string]any{"durationSec": 31536001}},
			{name: "durationSec at int64 max", body: `{"durationSec":9223372036854775807}`},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, tc.body)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
			})
		}
	})

	s.Run("error maps use case failures to status codes", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
			expectMsg  string
		}{
			{
				name:       "negative duration is 400",
				err:        errs.Wrap(errs.ErrInvalidArgument, "duration -5"),
				expectCode: http.StatusBadRequest,
				expectMsg:  "Invalid argument",
			},
			{
				name:       "canceled wait is 503",
				err:        errs.Mark(errs.Wrap(context.Canceled, "waiting for a lot"), errs.ErrCanceled),
				expectCode: http.StatusServiceUnavailable,
				expectMsg:  "canceled",
			},
			{
				name:       "invalid state is 500",
				err:        errs.Wrap(errs.ErrInvalidState, "lot 1 busy"),
				expectCode: http.StatusInternalServerError,
				expectMsg:  "Internal server error",
			},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockUseCase.EXPECT().Book(gomock.Any(), int64(-5)).Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"durationSec": -5})
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
			})
		}
	})
}

// ================================================================================
// TestListLots
// ================================================================================

func (s *BookingHandlerTestSuite) TestListLots() {
	s.Run("success: renders snapshot with free lots as null", func() {
		booked := lot.Timestamp(baseTime.Unix())
		snap := &garage.Snapshot{
			Capacity:  3,
			Withdrawn: 1,
			Lots: []lot.View{
				{ID: 2, NextAvailable: lot.Free},
				{ID: 1, NextAvailable: booked + 60, History: []lot.Timestamp{booked}},
			},
			Stats: garage.Stats{Allocated: 1, Full: 2, Rejected: 3},
		}
		s.mockUseCase.EXPECT().Lots(gomock.Any()).Return(snap, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/lots", nil)

		var body resdto.LotsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)

		next := baseTime.Add(time.Minute)
		want := resdto.LotsResponse{
			Capacity:  3,
			Withdrawn: 1,
			Lots: []resdto.LotResponse{
				{ID: 2, NextAvailable: nil, History: []time.Time{}},
				{ID: 1, NextAvailable: &next, History: []time.Time{baseTime}},
			},
			Stats: resdto.StatsResponse{Allocated: 1, Full: 2, Rejected: 3},
		}
		s.Empty(cmp.Diff(want, body))
	})
}

// ================================================================================
// TestLotHistory
// ================================================================================

func (s *BookingHandlerTestSuite) TestLotHistory() {
	s.Run("success: default limit", func() {
		starts := []time.Time{baseTime.Add(time.Hour), baseTime}
		s.mockUseCase.EXPECT().History(gomock.Any(), 4, 20).Return(starts, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/lots/4/history", nil)

		var body resdto.LotHistoryResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(4, body.LotID)
		s.Empty(cmp.Diff(starts, body.Starts))
	})

	s.Run("success: explicit limit", func() {
		s.mockUseCase.EXPECT().History(gomock.Any(), 1, 5).Return([]time.Time{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/lots/1/history?limit=5", nil)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 on bad path or query", func() {
		cases := []struct {
			name string
			path string
			msg  string
		}{
			{name: "non-numeric id", path: "/lots/abc/history", msg: "Invalid lot ID format"},
			{name: "zero limit", path: "/lots/1/history?limit=0", msg: "Invalid limit"},
			{name: "limit too large", path: "/lots/1/history?limit=1001", msg: "Invalid limit"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, tc.path, nil)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, tc.msg)
			})
		}
	})

	s.Run("error: 400 on lot out of range", func() {
		s.mockUseCase.EXPECT().History(gomock.Any(), 99, 20).
			Return(nil, errs.Wrap(errs.ErrInvalidArgument, "lot 99 out of range")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/lots/99/history", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid argument")
	})

	s.Run("error: 404 when audit log disabled", func() {
		s.mockUseCase.EXPECT().History(gomock.Any(), 1, 20).Return(nil, usecase.ErrAuditDisabled).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/lots/1/history", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Audit log disabled")
	})
}

// ================================================================================
// TestAuditTotals
// ================================================================================

func (s *BookingHandlerTestSuite) TestAuditTotals() {
	s.Run("success", func() {
		s.mockUseCase.EXPECT().AuditTotals(gomock.Any()).
			Return(&usecase.AuditTotals{Booked: 7, Full: 2}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/audit", nil)

		var body resdto.AuditTotalsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(resdto.AuditTotalsResponse{Booked: 7, Full: 2}, body)
	})

	s.Run("error: backend failure is 500", func() {
		s.mockUseCase.EXPECT().AuditTotals(gomock.Any()).
			Return(nil, errs.New("redis: connection refused")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/audit", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
