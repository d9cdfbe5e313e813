package handlers

import (
	"net/http"

	"notas/internal/services"

	"github.com/gin-gonic/gin"
)

type ProjectRequest struct {
	Code        string `json:"code" binding:"required,max=40"`
	Name        string `json:"name" binding:"required,max=160"`
	Description string `json:"description"`
	ClientID    *uint  `json:"client_id"`
	BudgetCents int64  `json:"budget_cents" binding:"gte=0"`
}

func (r ProjectRequest) dto() services.ProjectDTO {
	return services.ProjectDTO{
		Code:        r.Code,
		Name:        r.Name,
		Description: r.Description,
		ClientID:    r.ClientID,
		BudgetCents: r.BudgetCents,
	}
}

func (h *Handler) ListProjects(c *gin.Context) {
	projects, err := h.projectService.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": projects})
}

func (h *Handler) CreateProject(c *gin.Context) {
	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	project, err := h.projectService.Create(c.Request.Context(), req.dto())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *Handler) GetProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	project, err := h.projectService.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) UpdateProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	project, err := h.projectService.Update(c.Request.Context(), id, req.dto())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) ArchiveProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	project, removed, err := h.projectService.Archive(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project, "removed_expenses": removed})
}

func (h *Handler) DeleteProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.projectService.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
