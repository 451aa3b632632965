package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rackwise/rackwise/internal/catalog/repository"
	"github.com/rackwise/rackwise/internal/catalog/service"
)

type ProjectHandler struct {
	svc *service.ProjectService
}

func NewProjectHandler(svc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// List GET /projects?status=
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.svc.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"items": projects, "total": len(projects)})
}

// Get GET /projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "project not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, p)
}

// Create POST /projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var input service.CreateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	p, err := h.svc.Create(c.Request.Context(), &input, c.GetString("user_id"))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Created(c, p)
}

// Update PUT /projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	var input service.UpdateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	p, err := h.svc.Update(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, p)
}

// Delete DELETE /projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"deleted": true})
}
