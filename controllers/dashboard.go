// controllers/dashboard.go
package controllers

import (
	"net/http"
	"time"

	"cleanfoss-backend/config"
	"cleanfoss-backend/models"
	"cleanfoss-backend/utils"

	"github.com/gin-gonic/gin"
)

type DashboardOverview struct {
	TotalCustomers   int64            `json:"totalCustomers"`
	MonthlyRevenue   float64          `json:"monthlyRevenue"`
	TotalBookings    int64            `json:"totalBookings"`
	PendingBookings  int64            `json:"pendingBookings"`
	BookingsToday    int64            `json:"bookingsToday"`
	TopServices      []ServiceSummary `json:"topServices"`
	UpcomingBookings []models.Booking `json:"upcomingBookings"`
}

type ServiceSummary struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

func GetDashboardOverview(c *gin.Context) {
	companyID, ok := currentCompanyID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Company ID not found in context")
		return
	}

	var overview DashboardOverview

	config.DB.Model(&models.User{}).
		Joins("JOIN bookings ON bookings.customer_id = users.id").
		Where("bookings.company_id = ?", companyID).
		Distinct("users.id").
		Count(&overview.TotalCustomers)

	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	config.DB.Model(&models.Booking{}).
		Where("company_id = ? AND created_at >= ? AND status IN ?",
			companyID, firstOfMonth,
			[]string{models.BookingConfirmed, models.BookingInProgress, models.BookingCompleted}).
		Select("COALESCE(SUM(total_price), 0)").Scan(&overview.MonthlyRevenue)

	config.DB.Model(&models.Booking{}).Where("company_id = ?", companyID).
		Count(&overview.TotalBookings)

	config.DB.Model(&models.Booking{}).
		Where("company_id = ? AND status = ?", companyID, models.BookingPending).
		Count(&overview.PendingBookings)

	startOfDay := utils.BeginningOfDay(now)
	config.DB.Model(&models.Booking{}).
		Where("company_id = ? AND scheduled_at >= ? AND scheduled_at < ?",
			companyID, startOfDay, startOfDay.AddDate(0, 0, 1)).
		Count(&overview.BookingsToday)

	config.DB.Raw(`
        SELECT bs.name, COUNT(*) AS count, COALESCE(SUM(bs.total), 0) AS revenue
        FROM booking_services bs
        JOIN bookings b ON b.id = bs.booking_id
        WHERE b.company_id = ?
        GROUP BY bs.name
        ORDER BY revenue DESC
        LIMIT 5
    `, companyID).Scan(&overview.TopServices)

	config.DB.Preload("Services").
		Where("company_id = ? AND scheduled_at >= ? AND status IN ?",
			companyID, now, []string{models.BookingPending, models.BookingConfirmed}).
		Order("scheduled_at ASC").
		Limit(10).
		Find(&overview.UpcomingBookings)

	c.JSON(http.StatusOK, overview)
}
