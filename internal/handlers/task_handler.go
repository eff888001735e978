package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/httpresp"
	ucTask "github.com/BruksfildServices01/coach-platform/internal/usecase/task"
	"github.com/BruksfildServices01/coach-platform/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

// TaskUseCases groups the task engine operations served over HTTP.
type TaskUseCases struct {
	ListCategories *ucTask.ListCategories
	CreateCategory *ucTask.CreateCategory
	DeleteCategory *ucTask.DeleteCategory

	ListTasks  *ucTask.ListTasks
	CreateTask *ucTask.CreateTask
	UpdateTask *ucTask.UpdateTask
	DeleteTask *ucTask.DeleteTask
	Assign     *ucTask.AssignTask

	ListInstances  *ucTask.ListInstances
	CreateProgress *ucTask.CreateProgress
	ListProgress   *ucTask.ListProgress
}

type TaskHandler struct {
	uc TaskUseCases
}

func NewTaskHandler(uc TaskUseCases) *TaskHandler {
	return &TaskHandler{uc: uc}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,notblank,max=100"`
	Color string `json:"color" binding:"omitempty,hexcolor"`
}

type CreateTaskRequest struct {
	CategoryID  *uuid.UUID `json:"category_id"`
	Title       string     `json:"title" binding:"required,notblank,max=200"`
	Description string     `json:"description"`
	IsTemplate  bool       `json:"is_template"`
}

type UpdateTaskRequest struct {
	CategoryID    *uuid.UUID `json:"category_id"`
	ClearCategory bool       `json:"clear_category"`
	Title         *string    `json:"title" binding:"omitempty,max=200"`
	Description   *string    `json:"description"`
	IsTemplate    *bool      `json:"is_template"`
}

type AssignTaskRequest struct {
	ClientID uuid.UUID `json:"client_id" binding:"required"`
	DueDate  string    `json:"due_date"`
}

type BulkAssignTaskRequest struct {
	ClientIDs []uuid.UUID `json:"client_ids" binding:"required,min=1"`
	DueDate   string      `json:"due_date"`
}

type CreateProgressRequest struct {
	Percentage *int   `json:"percentage" binding:"required,percentage"`
	Notes      string `json:"notes" binding:"max=2000"`
}

// ======================================================
// CATEGORIES
// ======================================================

func (h *TaskHandler) ListCategories(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	out, err := h.uc.ListCategories.Execute(c.Request.Context(), actor)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *TaskHandler) CreateCategory(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, validators.BindError(err))
		return
	}

	out, err := h.uc.CreateCategory.Execute(c.Request.Context(), actor, req.Name, req.Color)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, out)
}

func (h *TaskHandler) DeleteCategory(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.uc.DeleteCategory.Execute(c.Request.Context(), actor, id); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ======================================================
// TASKS
// ======================================================

func (h *TaskHandler) ListTasks(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	out, err := h.uc.ListTasks.Execute(c.Request.Context(), actor, boolQuery(c, "templates"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, validators.BindError(err))
		return
	}

	out, err := h.uc.CreateTask.Execute(c.Request.Context(), actor, ucTask.TaskInput{
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		IsTemplate:  req.IsTemplate,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, out)
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, validators.BindError(err))
		return
	}

	out, err := h.uc.UpdateTask.Execute(c.Request.Context(), actor, id, ucTask.TaskPatch{
		CategoryID:    req.CategoryID,
		ClearCategory: req.ClearCategory,
		Title:         req.Title,
		Description:   req.Description,
		IsTemplate:    req.IsTemplate,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.uc.DeleteTask.Execute(c.Request.Context(), actor, id); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ======================================================
// ASSIGNMENT
// ======================================================

func (h *TaskHandler) Assign(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, validators.BindError(err))
		return
	}
	due, err := dayPtr("due_date", req.DueDate)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	out, err := h.uc.Assign.Execute(c.Request.Context(), actor, id, req.ClientID, due)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, out)
}

func (h *TaskHandler) BulkAssign(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req BulkAssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, validators.BindError(err))
		return
	}
	due, err := dayPtr("due_date", req.DueDate)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	out, err := h.uc.Assign.ExecuteBulk(c.Request.Context(), actor, id, req.ClientIDs, due)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.CreatedList(c, out)
}

// ======================================================
// INSTANCES & PROGRESS
// ======================================================

func (h *TaskHandler) ListInstances(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	clientID, err := uuidQuery(c, "client_id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	taskID, err := uuidQuery(c, "task_id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	out, err := h.uc.ListInstances.Execute(c.Request.Context(), actor, ucTask.InstanceQuery{
		ClientID: clientID,
		TaskID:   taskID,
		Status:   c.Query("status"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *TaskHandler) ListProgress(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	out, err := h.uc.ListProgress.Execute(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *TaskHandler) CreateProgress(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req CreateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, validators.BindError(err))
		return
	}

	out, err := h.uc.CreateProgress.Execute(c.Request.Context(), actor, id, *req.Percentage, req.Notes)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, out)
}
