package usecase

//go:generate mockgen -source=booking.go -destination=mock/booking.go -package=mock

import (
	"context"
	"log/slog"
	"time"

	"garage-scheduler/internal/domain/garage"
	"garage-scheduler/internal/domain/lot"
	"garage-scheduler/internal/pkg/clock"
	"garage-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

type BookingResult struct {
	BookingID   uuid.UUID
	LotID       int
	DurationSec int64
	Start       time.Time
	End         time.Time
	// Full reports that no lot was free. Start then holds the best-effort
	// instant the earliest lot frees up, and End is zero.
	Full bool
}

type BookingUseCase interface {
	Book(ctx context.Context, durationSec int64) (*BookingResult, error)
	Lots(ctx context.Context) (*garage.Snapshot, error)
	// History returns up to limit audited booking starts of lotID, newest first.
	History(ctx context.Context, lotID int, limit int) ([]time.Time, error)
	AuditTotals(ctx context.Context) (*AuditTotals, error)
}

// ErrAuditDisabled is returned by audit reads when no AuditLog is configured.
var ErrAuditDisabled = errs.New("audit log disabled")

type bookingUseCaseImpl struct {
	allocator Allocator
	audit     AuditLog
	clock     clock.Clock
	logger    *slog.Logger
}

func NewBookingUseCase(allocator Allocator, audit AuditLog, clock clock.Clock, logger *slog.Logger) BookingUseCase {
	return &bookingUseCaseImpl{
		allocator: allocator,
		audit:     audit,
		clock:     clock,
		logger:    logger,
	}
}

func (u *bookingUseCaseImpl) Book(ctx context.Context, durationSec int64) (*BookingResult, error) {
	out, err := u.allocator.Allocate(ctx, durationSec)
	if err != nil {
		u.logAllocateError(ctx, durationSec, err)
		return nil, err
	}

	ev := BookingEvent{
		ID:          uuid.New(),
		LotID:       out.LotID,
		Start:       out.Start,
		DurationSec: durationSec,
		Full:        out.Full(),
		At:          u.clock.Now(),
	}
	if u.audit != nil {
		if auditErr := u.audit.Record(ctx, ev); auditErr != nil {
			u.logger.WarnContext(ctx, "failed to record booking event",
				slog.String("booking_id", ev.ID.String()),
				slog.String("error", auditErr.Error()),
			)
		}
	}

	res := &BookingResult{
		BookingID:   ev.ID,
		LotID:       out.LotID,
		DurationSec: durationSec,
		Start:       toTime(out.Start),
		Full:        out.Full(),
	}
	if out.Full() {
		u.logger.InfoContext(ctx, "garage full",
			slog.Int64("duration_sec", durationSec),
			slog.Time("next_available", res.Start),
		)
		return res, nil
	}

	res.End = toTime(out.Start + lot.Timestamp(durationSec))
	u.logger.DebugContext(ctx, "lot booked",
		slog.String("booking_id", ev.ID.String()),
		slog.Int("lot_id", out.LotID),
		slog.Time("start", res.Start),
		slog.Time("end", res.End),
	)
	return res, nil
}

func (u *bookingUseCaseImpl) Lots(_ context.Context) (*garage.Snapshot, error) {
	snap := u.allocator.Snapshot()
	return &snap, nil
}

func (u *bookingUseCaseImpl) History(ctx context.Context, lotID int, limit int) ([]time.Time, error) {
	if lotID < 1 || lotID > u.allocator.Capacity() {
		return nil, errs.Wrapf(errs.ErrInvalidArgument, "lot %d out of range 1..%d", lotID, u.allocator.Capacity())
	}
	if u.audit == nil {
		return nil, ErrAuditDisabled
	}

	starts, err := u.audit.LotHistory(ctx, lotID, limit)
	if err != nil {
		return nil, errs.Wrapf(err, "history of lot %d", lotID)
	}
	out := make([]time.Time, len(starts))
	for i, ts := range starts {
		out[i] = toTime(ts)
	}
	return out, nil
}

func (u *bookingUseCaseImpl) AuditTotals(ctx context.Context) (*AuditTotals, error) {
	if u.audit == nil {
		return nil, ErrAuditDisabled
	}
	totals, err := u.audit.Totals(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "audit totals")
	}
	return &totals, nil
}

func (u *bookingUseCaseImpl) logAllocateError(ctx context.Context, durationSec int64, err error) {
	attrs := []any{
		slog.Int64("duration_sec", durationSec),
		slog.String("error", err.Error()),
	}
	switch {
	case errs.Is(err, errs.ErrInvalidState):
		// a busy lot reached commit: the queue ordering is broken
		attrs = append(attrs, slog.Any("stack", errs.ExtractStackLines(err, 12)))
		u.logger.ErrorContext(ctx, "lot booked while busy", attrs...)
	case errs.Is(err, errs.ErrCanceled):
		u.logger.WarnContext(ctx, "allocation canceled while waiting for a lot", attrs...)
	default:
		u.logger.DebugContext(ctx, "allocation rejected", attrs...)
	}
}

func toTime(ts lot.Timestamp) time.Time {
	return time.Unix(int64(ts), 0).UTC()
}
