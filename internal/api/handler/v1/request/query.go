package request

import "time"

// ListQuery is the paging query shared by list endpoints.
type ListQuery struct {
	Status string `form:"status"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

type PartQuery struct {
	Query  string `form:"q"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

type BinQuery struct {
	Warehouse string `form:"warehouse"`
	Section   string `form:"section"`
}

type QuoteQuery struct {
	LeadID uint   `form:"lead_id"`
	Status string `form:"status"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

type MovementQuery struct {
	PartID uint      `form:"part_id"`
	From   time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To     time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit  int       `form:"limit"`
}

type ReportQuery struct {
	Warehouse string `form:"warehouse"`
}
