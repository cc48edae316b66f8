package request

type CreateBookingRequest struct {
	// Zero fails binding as missing. Negative values pass and are rejected by the pool.
	DurationSec int64 `json:"durationSec" binding:"required,max=31536000"`
}

type LotHistoryQuery struct {
	Limit int `form:"limit,default=20" binding:"min=1,max=1000"`
}
