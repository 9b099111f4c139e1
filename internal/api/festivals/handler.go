package festivals

import (
	"net/http"

	"festival-app/database"
	"festival-app/internal/api/httperr"
	"festival-app/internal/domain/festivals"
	"festival-app/internal/workflow"

	"github.com/gin-gonic/gin"
)

var wf *workflow.FestivalWorkflow

// Init wires the handlers to the festival workflow. Called once from
// route registration.
func Init(w *workflow.FestivalWorkflow) {
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

func festivalID(c *gin.Context) (uint, bool) {
	var uri struct {
		ID uint `uri:"id" binding:"required"`
	}
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid festival id"})
		return 0, false
	}
	return uri.ID, true
}

// POST /festivals
func CreateFestival(c *gin.Context) {
	var req CreateFestivalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	f, err := wf.Create(userID, workflow.CreateFestivalInput{
		Name:        req.Name,
		Description: req.Description,
		Venue:       req.Venue,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, toFestivalDTO(f))
}

// GET /festivals — filter + sort listing. Not part of the workflow
// core; reads go straight to the database.
func ListFestivals(c *gin.Context) {
	q := database.DB.Model(&festivals.Festival{}).Preload("Organizers")

	if state := c.Query("state"); state != "" {
		q = q.Where("state = ?", state)
	}
	if name := c.Query("q"); name != "" {
		q = q.Where("name ILIKE ?", "%"+name+"%")
	}

	switch c.DefaultQuery("sort", "name") {
	case "start_date":
		q = q.Order("start_date ASC NULLS LAST")
	case "created_at":
		q = q.Order("created_at DESC")
	default:
		q = q.Order("name ASC")
	}

	var list []festivals.Festival
	if err := q.Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load festivals"})
		return
	}

	out := make([]FestivalDTO, 0, len(list))
	for i := range list {
		out = append(out, toFestivalDTO(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}

// GET /festivals/:id
func GetFestival(c *gin.Context) {
	id, ok := festivalID(c)
	if !ok {
		return
	}

	var f festivals.Festival
	if err := database.DB.Preload("Organizers").First(&f, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Festival not found"})
		return
	}

	c.JSON(http.StatusOK, toFestivalDTO(&f))
}

// PUT /festivals/:id
func UpdateFestival(c *gin.Context) {
	id, ok := festivalID(c)
	if !ok {
		return
	}

	var req UpdateFestivalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	f, err := wf.Update(userID, id, workflow.UpdateFestivalInput{
		Description: req.Description,
		Venue:       req.Venue,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, toFestivalDTO(f))
}

func advance(c *gin.Context, fn func(actorID, festivalID uint) (*festivals.Festival, error)) {
	id, ok := festivalID(c)
	if !ok {
		return
	}
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	f, err := fn(userID, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toFestivalDTO(f))
}

// POST /festivals/:id/start-submission
func StartSubmission(c *gin.Context) { advance(c, wf.StartSubmission) }

// POST /festivals/:id/start-assignment
func StartAssignment(c *gin.Context) { advance(c, wf.StartAssignment) }

// POST /festivals/:id/start-review
func StartReview(c *gin.Context) { advance(c, wf.StartReview) }

// POST /festivals/:id/start-scheduling
func StartScheduling(c *gin.Context) { advance(c, wf.StartScheduling) }

// POST /festivals/:id/start-final-submission
func StartFinalSubmission(c *gin.Context) { advance(c, wf.StartFinalSubmission) }

// POST /festivals/:id/announce
func Announce(c *gin.Context) { advance(c, wf.Announce) }

// POST /festivals/:id/start-decision — also reports the names of
// performances auto-rejected by the cascade.
func StartDecision(c *gin.Context) {
	id, ok := festivalID(c)
	if !ok {
		return
	}
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	f, autoRejected, err := wf.StartDecision(userID, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if autoRejected == nil {
		autoRejected = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"festival":      toFestivalDTO(f),
		"auto_rejected": autoRejected,
	})
}
