package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"cumplimed/backend/internal/dto"
	"cumplimed/backend/internal/service"
	"cumplimed/backend/pkg/response"
)

// DocumentHandler módulo de documentos controlados
type DocumentHandler struct {
	docSvc service.DocumentService
}

// NewDocumentHandler crea un DocumentHandler
func NewDocumentHandler(docSvc service.DocumentService) *DocumentHandler {
	return &DocumentHandler{docSvc: docSvc}
}

// CreateDocument crea un documento controlado
// POST /api/v1/documents
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validación de parámetros fallida")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	doc, err := h.docSvc.Create(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleDocumentError(c, err)
		return
	}

	response.Created(c, doc)
}

// ListDocuments lista los documentos controlados
// GET /api/v1/documents
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	docs, err := h.docSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": docs})
}

// GetDocument obtiene el detalle de un documento
// GET /api/v1/documents/:id
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "el ID del documento no puede estar vacío")
		return
	}

	doc, err := h.docSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleDocumentError(c, err)
		return
	}

	response.OK(c, doc)
}

// SubmitForReview pasa un documento DRAFT a revisión
// POST /api/v1/documents/:id/submit-review
func (h *DocumentHandler) SubmitForReview(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "el ID del documento no puede estar vacío")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	doc, err := h.docSvc.SubmitForReview(c.Request.Context(), id, actor)
	if err != nil {
		h.handleDocumentError(c, err)
		return
	}

	response.OK(c, doc)
}

// ApproveDocument aprueba un documento y vuelve obsoletas las demás versiones
// POST /api/v1/documents/:id/approve
func (h *DocumentHandler) ApproveDocument(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "el ID del documento no puede estar vacío")
		return
	}

	var req dto.ApproveDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validación de parámetros fallida")
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	doc, err := h.docSvc.Approve(c.Request.Context(), id, &req, actor)
	if err != nil {
		h.handleDocumentError(c, err)
		return
	}

	response.OK(c, doc)
}

// GetActiveDocuments documentos vigentes para un proceso
// GET /api/v1/documents/active?process=...
func (h *DocumentHandler) GetActiveDocuments(c *gin.Context) {
	var req dto.ActiveDocumentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "validación de parámetros fallida")
		return
	}

	docs, err := h.docSvc.GetActiveByProcess(c.Request.Context(), req.Process)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": docs})
}

// handleDocumentError mapea los errores de negocio del módulo
func (h *DocumentHandler) handleDocumentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDocumentNotFound):
		response.NotFound(c, 11001, "documento controlado no encontrado")
	case errors.Is(err, service.ErrInvalidState):
		response.Conflict(c, 11002, err.Error())
	case errors.Is(err, service.ErrMissingControlledDocument):
		response.UnprocessableEntity(c, 11003, err.Error())
	default:
		response.InternalError(c)
	}
}
