package api

import (
	"math"
	"net/http"
	"strconv"

	reqdto "garage-scheduler/internal/handler/dto/request"
	resdto "garage-scheduler/internal/handler/dto/response"
	"garage-scheduler/internal/handler/httperr"
	"garage-scheduler/internal/pkg/clock"
	"garage-scheduler/internal/pkg/errs"
	"garage-scheduler/internal/usecase"

	"github.com/gin-gonic/gin"
)

var errGarageFull = errs.New("garage full")

type BookingHandler struct {
	bookingUseCase usecase.BookingUseCase
	clock          clock.Clock
}

func NewBookingHandler(bookingUseCase usecase.BookingUseCase, clock clock.Clock) *BookingHandler {
	return &BookingHandler{
		bookingUseCase: bookingUseCase,
		clock:          clock,
	}
}

// @Summary Book a lot
// @Description Book the earliest available lot for durationSec seconds starting now
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response "garage full, detail holds nextAvailable"
// @Failure 429 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	res, err := h.bookingUseCase.Book(c.Request.Context(), req.DurationSec)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	if res.Full {
		c.Header("Retry-After", strconv.FormatInt(h.retryAfterSeconds(res), 10))
		httperr.AbortWithError(c, http.StatusConflict,
			errs.Wrapf(errGarageFull, "next lot frees at %s", res.Start),
			"garage is full",
			resdto.GarageFullDetail{NextAvailable: res.Start})
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingResult(res))
}

// @Summary List lots
// @Description Capacity, lots currently idle in the pool ordered by availability, and allocation counters
// @Tags lots
// @Produce json
// @Success 200 {object} resdto.LotsResponse
// @Router /api/lots [get]
func (h *BookingHandler) ListLots(c *gin.Context) {
	snap, err := h.bookingUseCase.Lots(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	res, err := resdto.FromSnapshot(snap)
	if err != nil {
		httperr.Abort(c, errs.Wrap(err, "map lots snapshot"))
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Lot booking history
// @Description Audited booking starts of one lot, newest first
// @Tags lots
// @Produce json
// @Param id path int true "Lot ID"
// @Param limit query int false "Maximum entries (1..1000)" default(20)
// @Success 200 {object} resdto.LotHistoryResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response "audit log disabled"
// @Router /api/lots/{id}/history [get]
func (h *BookingHandler) LotHistory(c *gin.Context) {
	lotID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid lot ID format", nil)
		return
	}

	var q reqdto.LotHistoryQuery
	if bindErr := c.ShouldBindQuery(&q); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid limit", nil)
		return
	}

	starts, err := h.bookingUseCase.History(c.Request.Context(), lotID, q.Limit)
	if err != nil {
		h.abortAuditError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.LotHistoryResponse{LotID: lotID, Starts: starts})
}

// @Summary Audit totals
// @Description Number of successful and full booking attempts recorded by the audit log
// @Tags audit
// @Produce json
// @Success 200 {object} resdto.AuditTotalsResponse
// @Failure 404 {object} httperr.Response "audit log disabled"
// @Router /api/audit [get]
func (h *BookingHandler) AuditTotals(c *gin.Context) {
	totals, err := h.bookingUseCase.AuditTotals(c.Request.Context())
	if err != nil {
		h.abortAuditError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAuditTotals(totals))
}

func (h *BookingHandler) abortAuditError(c *gin.Context, err error) {
	if errs.Is(err, usecase.ErrAuditDisabled) {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Audit log disabled", nil)
		return
	}
	httperr.Abort(c, err)
}

func (h *BookingHandler) retryAfterSeconds(res *usecase.BookingResult) int64 {
	wait := res.Start.Sub(h.clock.Now()).Seconds()
	return max(0, int64(math.Ceil(wait)))
}
