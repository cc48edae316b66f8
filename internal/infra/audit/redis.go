package audit

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"garage-scheduler/internal/domain/lot"
	"garage-scheduler/internal/infra"
	"garage-scheduler/internal/usecase"

	"github.com/redis/go-redis/v9"
)

// RedisLog layout, under prefix:
//
//	<prefix>:total            hash   booked|full -> count (never expires)
//	<prefix>:lot:<id>         list   booking starts, newest first, capped
//	<prefix>:booking:<uuid>   hash   one booking record, expires after ttl
type RedisLog struct {
	rdb *redis.Client

	prefix       string
	ttl          time.Duration
	historyLimit int64
}

type RedisOption func(*RedisLog)

func WithRedisPrefix(prefix string) RedisOption {
	return func(r *RedisLog) { r.prefix = strings.Trim(prefix, ":") }
}

func WithRedisTTL(d time.Duration) RedisOption {
	return func(r *RedisLog) { r.ttl = d }
}

func WithRedisHistoryLimit(n int) RedisOption {
	return func(r *RedisLog) {
		if n > 0 {
			r.historyLimit = int64(n)
		}
	}
}

func NewRedisLog(rdb *redis.Client, opts ...RedisOption) *RedisLog {
	r := &RedisLog{
		rdb:          rdb,
		prefix:       "garage:audit",
		ttl:          24 * time.Hour,
		historyLimit: 1000,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *RedisLog) totalKey() string            { return r.prefix + ":total" }
func (r *RedisLog) lotKey(id int) string        { return fmt.Sprintf("%s:lot:%d", r.prefix, id) }
func (r *RedisLog) bookingKey(id string) string { return r.prefix + ":booking:" + id }

func (r *RedisLog) Record(ctx context.Context, ev usecase.BookingEvent) error {
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}

	field := "booked"
	if ev.Full {
		field = "full"
	}

	pipe := r.rdb.Pipeline()
	pipe.HIncrBy(ctx, r.totalKey(), field, 1)

	if !ev.Full {
		lotKey := r.lotKey(ev.LotID)
		pipe.LPush(ctx, lotKey, int64(ev.Start))
		pipe.LTrim(ctx, lotKey, 0, r.historyLimit-1)

		bookingKey := r.bookingKey(ev.ID.String())
		pipe.HSet(ctx, bookingKey,
			"lot", ev.LotID,
			"start", int64(ev.Start),
			"duration_sec", ev.DurationSec,
			"at", at.UTC().Format(time.RFC3339),
		)
		if r.ttl > 0 {
			pipe.Expire(ctx, bookingKey, r.ttl)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return infra.WrapStoreErr(infra.KindUnavailable, "record booking event", err)
	}
	return nil
}

func (r *RedisLog) LotHistory(ctx context.Context, lotID int, limit int) ([]lot.Timestamp, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	vals, err := r.rdb.LRange(ctx, r.lotKey(lotID), 0, stop).Result()
	if err != nil {
		return nil, infra.WrapStoreErr(infra.KindUnavailable, fmt.Sprintf("read history of lot %d", lotID), err)
	}

	out := make([]lot.Timestamp, 0, len(vals))
	for _, v := range vals {
		ts, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, infra.WrapStoreErr(infra.KindCorrupt, fmt.Sprintf("history entry %q of lot %d", v, lotID), err)
		}
		out = append(out, lot.Timestamp(ts))
	}
	return out, nil
}

func (r *RedisLog) Totals(ctx context.Context) (usecase.AuditTotals, error) {
	vals, err := r.rdb.HGetAll(ctx, r.totalKey()).Result()
	if err != nil {
		return usecase.AuditTotals{}, infra.WrapStoreErr(infra.KindUnavailable, "read audit totals", err)
	}

	var t usecase.AuditTotals
	if v, ok := vals["booked"]; ok {
		if t.Booked, err = strconv.ParseInt(v, 10, 64); err != nil {
			return usecase.AuditTotals{}, infra.WrapStoreErr(infra.KindCorrupt, fmt.Sprintf("booked counter %q", v), err)
		}
	}
	if v, ok := vals["full"]; ok {
		if t.Full, err = strconv.ParseInt(v, 10, 64); err != nil {
			return usecase.AuditTotals{}, infra.WrapStoreErr(infra.KindCorrupt, fmt.Sprintf("full counter %q", v), err)
		}
	}
	return t, nil
}
