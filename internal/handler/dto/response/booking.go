package response

import (
	"time"

	"garage-scheduler/internal/domain/garage"
	"garage-scheduler/internal/domain/lot"
	"garage-scheduler/internal/usecase"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	BookingID   uuid.UUID `json:"bookingId"`
	LotID       int       `json:"lotId"`
	DurationSec int64     `json:"durationSec"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

// GarageFullDetail is the error detail of a 409 booking response.
type GarageFullDetail struct {
	NextAvailable time.Time `json:"nextAvailable"`
}

type LotResponse struct {
	ID int `json:"id"`
	// NextAvailable is null for a lot that was never booked.
	NextAvailable *time.Time  `json:"nextAvailable"`
	History       []time.Time `json:"history"`
}

type StatsResponse struct {
	Allocated int64 `json:"allocated"`
	Full      int64 `json:"full"`
	Rejected  int64 `json:"rejected"`
}

type LotsResponse struct {
	Capacity  int           `json:"capacity"`
	Withdrawn int           `json:"withdrawn"`
	Lots      []LotResponse `json:"lots"`
	Stats     StatsResponse `json:"stats"`
}

type LotHistoryResponse struct {
	LotID  int         `json:"lotId"`
	Starts []time.Time `json:"starts"`
}

type AuditTotalsResponse struct {
	Booked int64 `json:"booked"`
	Full   int64 `json:"full"`
}

func FromBookingResult(r *usecase.BookingResult) *BookingResponse {
	return &BookingResponse{
		BookingID:   r.BookingID,
		LotID:       r.LotID,
		DurationSec: r.DurationSec,
		Start:       r.Start,
		End:         r.End,
	}
}

var lotCopyOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: lot.Timestamp(0),
			DstType: (*time.Time)(nil),
			Fn: func(src any) (any, error) {
				ts := src.(lot.Timestamp)
				if ts == lot.Free {
					return (*time.Time)(nil), nil
				}
				t := unixUTC(ts)
				return &t, nil
			},
		},
		{
			SrcType: []lot.Timestamp{},
			DstType: []time.Time{},
			Fn: func(src any) (any, error) {
				starts := src.([]lot.Timestamp)
				out := make([]time.Time, len(starts))
				for i, ts := range starts {
					out[i] = unixUTC(ts)
				}
				return out, nil
			},
		},
	},
}

func FromLotView(v lot.View) (LotResponse, error) {
	var res LotResponse
	if err := copier.CopyWithOption(&res, v, lotCopyOption); err != nil {
		return LotResponse{}, err
	}
	if res.History == nil {
		res.History = []time.Time{}
	}
	return res, nil
}

func FromSnapshot(s *garage.Snapshot) (*LotsResponse, error) {
	res := &LotsResponse{
		Capacity:  s.Capacity,
		Withdrawn: s.Withdrawn,
		Lots:      make([]LotResponse, 0, len(s.Lots)),
	}
	if err := copier.Copy(&res.Stats, s.Stats); err != nil {
		return nil, err
	}
	for _, v := range s.Lots {
		l, err := FromLotView(v)
		if err != nil {
			return nil, err
		}
		res.Lots = append(res.Lots, l)
	}
	return res, nil
}

func FromAuditTotals(t *usecase.AuditTotals) *AuditTotalsResponse {
	return &AuditTotalsResponse{Booked: t.Booked, Full: t.Full}
}

func unixUTC(ts lot.Timestamp) time.Time {
	return time.Unix(int64(ts), 0).UTC()
}
