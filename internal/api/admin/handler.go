package admin

import (
	"net/http"

	"festival-app/database"
	"festival-app/internal/domain/festivals"
	"festival-app/internal/domain/performances"
	"festival-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type AdminUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

type AdminStats struct {
	TotalUsers          int            `json:"total_users"`
	FestivalsByState    map[string]int `json:"festivals_by_state"`
	PerformancesByState map[string]int `json:"performances_by_state"`
}

func AdminDashboard(c *gin.Context) {
	var stats AdminStats

	var totalUsers int64
	database.DB.Model(&users.User{}).Count(&totalUsers)
	stats.TotalUsers = int(totalUsers)

	type stateCount struct {
		State string
		Count int
	}

	var festivalCounts []stateCount
	database.DB.Model(&festivals.Festival{}).
		Select("state, COUNT(id) as count").
		Group("state").
		Scan(&festivalCounts)

	stats.FestivalsByState = map[string]int{}
	for _, sc := range festivalCounts {
		stats.FestivalsByState[sc.State] = sc.Count
	}

	var performanceCounts []stateCount
	database.DB.Model(&performances.Performance{}).
		Select("state, COUNT(id) as count").
		Group("state").
		Scan(&performanceCounts)

	stats.PerformancesByState = map[string]int{}
	for _, sc := range performanceCounts {
		stats.PerformancesByState[sc.State] = sc.Count
	}

	c.JSON(http.StatusOK, stats)
}

func ListAllUsers(c *gin.Context) {
	var all []users.User
	if err := database.DB.Order("id ASC").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	out := make([]AdminUser, 0, len(all))
	for _, u := range all {
		out = append(out, AdminUser{
			ID:       u.ID,
			Username: u.Username,
			Email:    u.Email,
			Role:     string(u.Role),
			Status:   string(u.Status),
		})
	}

	c.JSON(http.StatusOK, out)
}

func GetUserDetails(c *gin.Context) {
	userID := c.Param("id")

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var created []performances.Performance
	if err := database.DB.Where("creator_id = ?", user.ID).Find(&created).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load performances"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":         user,
		"performances": created,
	})
}

// PUT /admin/users/:id/role
func SetUserRole(c *gin.Context) {
	var input struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := users.Role(input.Role)
	if !role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := database.DB.Model(&user).Update("role", role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "role": role})
}

// PUT /admin/users/:id/status — activates or deactivates an account. A
// deactivated account is denied by the workflow engine on every
// state-mutating call.
func SetUserStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := users.AccountStatus(input.Status)
	if status != users.StatusActive && status != users.StatusInactive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := database.DB.Model(&user).Update("status", status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "account_status": status})
}
