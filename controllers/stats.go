package controllers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"queueflow-backend/config"
	"queueflow-backend/models"
	"queueflow-backend/utils"

	"github.com/gin-gonic/gin"
)

type todayStats struct {
	TotalTokens     int64    `json:"-"`
	ActiveTokens    int64    `json:"-"`
	CompletedTokens int64    `json:"-"`
	AvgWaitTime     *float64 `json:"-"`
}

type serviceStat struct {
	ServiceName string   `json:"service_name"`
	Count       int64    `json:"count"`
	AvgWait     *float64 `json:"avg_wait"`
}

type peakHour struct {
	Hour  int   `json:"hour"`
	Count int64 `json:"count"`
}

type dailyStat struct {
	Date      time.Time `json:"date"`
	Tokens    int64     `json:"tokens"`
	Completed int64     `json:"completed"`
}

// GetStats returns today's headline numbers for the admin dashboard.
func GetStats(c *gin.Context) {
	today := utils.BeginningOfDay(time.Now())

	var stats todayStats
	err := config.DB.Raw(`
		SELECT
			COUNT(*) AS total_tokens,
			COUNT(CASE WHEN status IN ('waiting', 'in_progress') THEN 1 END) AS active_tokens,
			COUNT(CASE WHEN status = 'completed' THEN 1 END) AS completed_tokens,
			AVG(CASE WHEN status = 'completed' THEN estimated_wait_time END) AS avg_wait_time
		FROM tokens
		WHERE created_at >= ?
	`, today).Scan(&stats).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve stats")
		return
	}

	var activeBranches int64
	config.DB.Model(&models.Branch{}).Where("is_active = true").Count(&activeBranches)

	var activeStaff int64
	config.DB.Model(&models.Staff{}).Where("is_active = true").Count(&activeStaff)

	c.JSON(http.StatusOK, gin.H{
		"totalTokensToday": stats.TotalTokens,
		"activeTokens":     stats.ActiveTokens,
		"completedTokens":  stats.CompletedTokens,
		"averageWaitTime":  roundedMinutes(stats.AvgWaitTime),
		"activeBranches":   activeBranches,
		"activeStaff":      activeStaff,
	})
}

// GetAnalytics returns the windowed analytics series for the admin
// analytics page. Average service time comes from completed tokens'
// updated_at minus created_at.
func GetAnalytics(c *gin.Context) {
	days := 7
	if v := c.Query("days"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			days = parsed
		}
	}
	start := utils.BeginningOfDay(time.Now().AddDate(0, 0, -days))

	var basic struct {
		TotalTokens     int64    `json:"-"`
		CompletedTokens int64    `json:"-"`
		CancelledTokens int64    `json:"-"`
		AvgWaitTime     *float64 `json:"-"`
		AvgServiceTime  *float64 `json:"-"`
	}
	err := config.DB.Raw(`
		SELECT
			COUNT(*) AS total_tokens,
			COUNT(CASE WHEN status = 'completed' THEN 1 END) AS completed_tokens,
			COUNT(CASE WHEN status = 'cancelled' THEN 1 END) AS cancelled_tokens,
			AVG(CASE WHEN status = 'completed' THEN estimated_wait_time END) AS avg_wait_time,
			AVG(CASE WHEN status = 'completed' THEN
				EXTRACT(EPOCH FROM (updated_at - created_at))/60
			END) AS avg_service_time
		FROM tokens
		WHERE created_at >= ?
	`, start).Scan(&basic).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve analytics")
		return
	}

	var serviceStats []serviceStat
	config.DB.Raw(`
		SELECT s.name AS service_name, COUNT(t.id) AS count, AVG(t.estimated_wait_time) AS avg_wait
		FROM tokens t
		JOIN services s ON t.service_id = s.id
		WHERE t.created_at >= ?
		GROUP BY s.id, s.name
		ORDER BY count DESC
	`, start).Scan(&serviceStats)

	var peakHours []peakHour
	config.DB.Raw(`
		SELECT EXTRACT(HOUR FROM created_at) AS hour, COUNT(*) AS count
		FROM tokens
		WHERE created_at >= ?
		GROUP BY EXTRACT(HOUR FROM created_at)
		ORDER BY count DESC
	`, start).Scan(&peakHours)

	var dailyStats []dailyStat
	config.DB.Raw(`
		SELECT DATE(created_at) AS date, COUNT(*) AS tokens,
			COUNT(CASE WHEN status = 'completed' THEN 1 END) AS completed
		FROM tokens
		WHERE created_at >= ?
		GROUP BY DATE(created_at)
		ORDER BY date DESC
	`, start).Scan(&dailyStats)

	c.JSON(http.StatusOK, gin.H{
		"totalTokens":        basic.TotalTokens,
		"completedTokens":    basic.CompletedTokens,
		"cancelledTokens":    basic.CancelledTokens,
		"averageWaitTime":    roundedMinutes(basic.AvgWaitTime),
		"averageServiceTime": roundedMinutes(basic.AvgServiceTime),
		"serviceStats":       serviceStats,
		"peakHours":          peakHours,
		"dailyStats":         dailyStats,
	})
}

func roundedMinutes(v *float64) int {
	if v == nil {
		return 0
	}
	return int(math.Round(*v))
}
