package performances

import (
	"net/http"

	"festival-app/database"
	"festival-app/internal/api/httperr"
	"festival-app/internal/domain/performances"
	"festival-app/internal/workflow"

	"github.com/gin-gonic/gin"
)

var wf *workflow.PerformanceWorkflow

// Init wires the handlers to the performance workflow. Called once from
// route registration.
func Init(w *workflow.PerformanceWorkflow) {
	wf = w
}

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

func pathID(c *gin.Context) (uint, bool) {
	var uri struct {
		ID uint `uri:"id" binding:"required"`
	}
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uri.ID, true
}

// POST /festivals/:id/performances
func CreatePerformance(c *gin.Context) {
	festID, ok := pathID(c)
	if !ok {
		return
	}

	var req CreatePerformanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	p, err := wf.Create(userID, festID, workflow.CreatePerformanceInput{
		Name:        req.Name,
		Description: req.Description,
		Genre:       req.Genre,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPerformanceDTO(p))
}

// GET /festivals/:id/performances — filter + sort listing.
func ListPerformances(c *gin.Context) {
	festID, ok := pathID(c)
	if !ok {
		return
	}

	q := database.DB.Model(&performances.Performance{}).
		Preload("BandMembers").
		Where("festival_id = ?", festID)

	if state := c.Query("state"); state != "" {
		q = q.Where("state = ?", state)
	}
	if genre := c.Query("genre"); genre != "" {
		q = q.Where("genre = ?", genre)
	}
	if name := c.Query("q"); name != "" {
		q = q.Where("name ILIKE ?", "%"+name+"%")
	}

	switch c.DefaultQuery("sort", "name") {
	case "created_at":
		q = q.Order("created_at DESC")
	case "score":
		q = q.Order("review_score DESC NULLS LAST")
	default:
		q = q.Order("name ASC")
	}

	var list []performances.Performance
	if err := q.Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load performances"})
		return
	}

	out := make([]PerformanceDTO, 0, len(list))
	for i := range list {
		out = append(out, toPerformanceDTO(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}

// GET /performances/:id
func GetPerformance(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var p performances.Performance
	if err := database.DB.Preload("BandMembers").First(&p, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Performance not found"})
		return
	}

	c.JSON(http.StatusOK, toPerformanceDTO(&p))
}

func transition(c *gin.Context, fn func(actorID, performanceID uint) (*performances.Performance, error)) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	p, err := fn(userID, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toPerformanceDTO(p))
}

// POST /performances/:id/submit
func Submit(c *gin.Context) { transition(c, wf.Submit) }

// POST /performances/:id/approve
func Approve(c *gin.Context) { transition(c, wf.Approve) }

// POST /performances/:id/accept
func Accept(c *gin.Context) { transition(c, wf.Accept) }

// POST /performances/:id/review
func Review(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	p, err := wf.Review(userID, id, workflow.ReviewInput{
		Score:    req.Score,
		Comments: req.Comments,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toPerformanceDTO(p))
}

// POST /performances/:id/reject
func Reject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	p, err := wf.Reject(userID, id, req.Reason)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toPerformanceDTO(p))
}

// POST /performances/:id/final-submit
func FinalSubmit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req FinalSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	p, err := wf.FinalSubmit(userID, id, workflow.FinalSubmissionInput{
		Setlist:          req.Setlist,
		RehearsalSlots:   req.RehearsalSlots,
		PerformanceSlots: req.PerformanceSlots,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toPerformanceDTO(p))
}

// DELETE /performances/:id — withdraw, creator only, CREATED only.
func Withdraw(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := wf.Withdraw(userID, id); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "withdrawn"})
}

// PUT /performances/:id/staff
func AssignStaff(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req AssignStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	p, err := wf.AssignStaff(userID, id, req.StaffID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toPerformanceDTO(p))
}

// POST /performances/:id/band-members
func AddBandMember(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req AddBandMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	p, err := wf.AddBandMember(userID, id, req.Username)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toPerformanceDTO(p))
}
