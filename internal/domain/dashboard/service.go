package dashboard

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// Stats aggregates the admin dashboard numbers. Revenue figures come from
// the persisted booking totals; nothing is re-priced here.
type Stats struct {
	TotalBookings     int `json:"total_bookings"`
	PendingBookings   int `json:"pending_bookings"`
	EditingBookings   int `json:"editing_bookings"`
	DeliveredBookings int `json:"delivered_bookings"`
	CompletedBookings int `json:"completed_bookings"`
	CancelledBookings int `json:"cancelled_bookings"`

	BookingsThisWeek  int `json:"bookings_this_week"`
	BookingsThisMonth int `json:"bookings_this_month"`
	UpcomingShoots    int `json:"upcoming_shoots"`

	UnassignedEditing int `json:"unassigned_editing"`
	InEditing         int `json:"in_editing"`

	PaidRevenue      float64 `json:"paid_revenue"`
	OutstandingTotal float64 `json:"outstanding_total"`
	RefundedTotal    float64 `json:"refunded_total"`
	RevenueThisMonth float64 `json:"revenue_this_month"`
}

// Service aggregates booking statistics
type Service struct {
	db *sqlx.DB
}

// NewService creates the dashboard service
func NewService(db *sqlx.DB) *Service {
	return &Service{db: db}
}

// GetStats returns the dashboard aggregates. Individual queries fail soft so
// a single bad aggregate never blanks the whole dashboard.
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	now := time.Now()
	startOfWeek := now.AddDate(0, 0, -int(now.Weekday()))
	startOfWeek = time.Date(startOfWeek.Year(), startOfWeek.Month(), startOfWeek.Day(), 0, 0, 0, 0, time.UTC)
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	_ = s.db.GetContext(ctx, &stats.TotalBookings,
		`SELECT COUNT(*) FROM bookings`)

	statusCounts := []struct {
		status string
		dest   *int
	}{
		{"pending", &stats.PendingBookings},
		{"editing", &stats.EditingBookings},
		{"delivered", &stats.DeliveredBookings},
		{"completed", &stats.CompletedBookings},
		{"cancelled", &stats.CancelledBookings},
	}
	for _, sc := range statusCounts {
		_ = s.db.GetContext(ctx, sc.dest,
			`SELECT COUNT(*) FROM bookings WHERE status = $1`, sc.status)
	}

	_ = s.db.GetContext(ctx, &stats.BookingsThisWeek,
		`SELECT COUNT(*) FROM bookings WHERE created_at >= $1`, startOfWeek)

	_ = s.db.GetContext(ctx, &stats.BookingsThisMonth,
		`SELECT COUNT(*) FROM bookings WHERE created_at >= $1`, startOfMonth)

	_ = s.db.GetContext(ctx, &stats.UpcomingShoots,
		`SELECT COUNT(*) FROM bookings
		 WHERE preferred_date >= $1 AND status NOT IN ('cancelled', 'completed')`, today)

	_ = s.db.GetContext(ctx, &stats.UnassignedEditing,
		`SELECT COUNT(*) FROM bookings
		 WHERE editing_status = 'unassigned' AND status NOT IN ('cancelled', 'completed')`)

	_ = s.db.GetContext(ctx, &stats.InEditing,
		`SELECT COUNT(*) FROM bookings WHERE editing_status = 'in_editing'`)

	_ = s.db.GetContext(ctx, &stats.PaidRevenue,
		`SELECT COALESCE(SUM(total_amount), 0) FROM bookings WHERE payment_status = 'paid'`)

	_ = s.db.GetContext(ctx, &stats.OutstandingTotal,
		`SELECT COALESCE(SUM(total_amount), 0) FROM bookings
		 WHERE payment_status = 'not_paid' AND status != 'cancelled'`)

	_ = s.db.GetContext(ctx, &stats.RefundedTotal,
		`SELECT COALESCE(SUM(total_amount), 0) FROM bookings WHERE payment_status = 'refunded'`)

	_ = s.db.GetContext(ctx, &stats.RevenueThisMonth,
		`SELECT COALESCE(SUM(total_amount), 0) FROM bookings
		 WHERE payment_status = 'paid' AND created_at >= $1`, startOfMonth)

	return stats, nil
}
