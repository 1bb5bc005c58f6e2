package models

// Requests for dashboard HTTP endpoints. Defined in domain for consistency and reuse.

type SelectRequest struct {
	Ticker string `query:"ticker" json:"ticker" validate:"required,min=1,max=12"`
}

type HistoryRequest struct {
	Ticker   string `query:"ticker" json:"ticker" validate:"required,min=1,max=12"`
	Period   string `query:"period" json:"period" default:"1y" validate:"oneof=1d 5d 30d 1mo 3mo 6mo 1y"`
	Interval string `query:"interval" json:"interval" default:"1d" validate:"oneof=1d 1h 30m"`
}

type AlertsRangeRequest struct {
	StartDate string `query:"start_date" json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"end_date" json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}
