package dto

// CreateClosingRequest body para POST /api/closings.
type CreateClosingRequest struct {
	Year  int `json:"year" validate:"required,min=1000,max=9999"`
	Month int `json:"month" validate:"required,min=1,max=12"`
}

// MonthPreviewDTO estadísticas en vivo de un mes, sin crear cierre.
type MonthPreviewDTO struct {
	Year        int   `json:"year"`
	Month       int   `json:"month"`
	SalesCount  int   `json:"salesCount"`
	TotalSales  int64 `json:"totalSales"`
	TotalPaid   int64 `json:"totalPaid"`
	TotalUnpaid int64 `json:"totalUnpaid"`
	IsClosed    bool  `json:"isClosed"`
}
