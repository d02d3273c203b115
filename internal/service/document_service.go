package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"cumplimed/backend/internal/dto"
	"cumplimed/backend/internal/model"
	"cumplimed/backend/internal/repository"
)

// ── Errores del módulo de documentos ──

var (
	ErrDocumentNotFound = errors.New("documento controlado no encontrado")
)

// DocumentService ciclo de vida de documentos controlados y resolución de
// "documento vigente por proceso"
type DocumentService interface {
	Create(ctx context.Context, req *dto.CreateDocumentRequest, actor string) (*dto.DocumentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.DocumentResponse, error)
	List(ctx context.Context) ([]dto.DocumentResponse, error)
	SubmitForReview(ctx context.Context, id string, actor string) (*dto.DocumentResponse, error)
	Approve(ctx context.Context, id string, req *dto.ApproveDocumentRequest, actor string) (*dto.DocumentResponse, error)
	// GetActiveByProcess consulta canónica "qué regla aplica hoy"
	GetActiveByProcess(ctx context.Context, process string) ([]dto.DocumentResponse, error)
	AssertActiveProcessDocument(ctx context.Context, process string) error
	// AssertActiveDocumentCode versión por código exacto, usada por los
	// motores de etiquetado y liberación con los códigos obligatorios de la
	// configuración operacional
	AssertActiveDocumentCode(ctx context.Context, code string) error
}

type documentService struct {
	repo   *repository.Repository
	audit  *auditor
	logger *zap.Logger
}

// NewDocumentService crea una instancia de DocumentService
func NewDocumentService(repo *repository.Repository, logger *zap.Logger) DocumentService {
	return &documentService{
		repo:   repo,
		audit:  newAuditor(repo.Audit, logger),
		logger: logger,
	}
}

// ────────────────────── Create ──────────────────────

func (s *documentService) Create(ctx context.Context, req *dto.CreateDocumentRequest, actor string) (*dto.DocumentResponse, error) {
	effectiveDate, err := parseDate(req.EffectiveDate)
	if err != nil {
		return nil, fmt.Errorf("effective_date inválida: %w", err)
	}
	expiresAt, err := parseDate(req.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("expires_at inválida: %w", err)
	}

	version := 1
	if req.Version != nil {
		version = *req.Version
	}

	doc := &model.ControlledDocument{
		Code:          req.Code,
		Title:         req.Title,
		Process:       req.Process,
		Category:      req.Category,
		Version:       version,
		Status:        model.DocumentStatusDraft,
		Content:       req.Content,
		EffectiveDate: effectiveDate,
		ExpiresAt:     expiresAt,
	}
	doc.CreatedBy = &actor

	if err := s.repo.Document.Create(ctx, doc); err != nil {
		s.logger.Error("error creando documento controlado", zap.Error(err))
		return nil, err
	}

	s.audit.emit(ctx, "ControlledDocument", doc.DocumentID, "CREAR", actor, map[string]interface{}{
		"code":    doc.Code,
		"version": doc.Version,
	})

	resp := toDocumentResponse(doc)
	return &resp, nil
}

// ────────────────────── Consultas ──────────────────────

func (s *documentService) GetByID(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	doc, err := s.repo.Document.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		s.logger.Error("error consultando documento", zap.Error(err))
		return nil, err
	}
	resp := toDocumentResponse(doc)
	return &resp, nil
}

func (s *documentService) List(ctx context.Context) ([]dto.DocumentResponse, error) {
	docs, err := s.repo.Document.List(ctx)
	if err != nil {
		s.logger.Error("error listando documentos", zap.Error(err))
		return nil, err
	}
	return toDocumentResponses(docs), nil
}

// ────────────────────── SubmitForReview ──────────────────────

func (s *documentService) SubmitForReview(ctx context.Context, id string, actor string) (*dto.DocumentResponse, error) {
	doc, err := s.repo.Document.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	// Solo DRAFT puede pasar a revisión
	if doc.Status != model.DocumentStatusDraft {
		return nil, fmt.Errorf("%w: el documento %s está en estado %s", ErrInvalidState, doc.Code, doc.Status)
	}

	doc.Status = model.DocumentStatusInReview
	doc.UpdatedBy = &actor
	if err := s.repo.Document.Update(ctx, doc); err != nil {
		s.logger.Error("error enviando documento a revisión", zap.Error(err))
		return nil, err
	}

	s.audit.emit(ctx, "ControlledDocument", doc.DocumentID, "ENVIAR_REVISION", actor, nil)

	resp := toDocumentResponse(doc)
	return &resp, nil
}

// ────────────────────── Approve ──────────────────────

func (s *documentService) Approve(ctx context.Context, id string, req *dto.ApproveDocumentRequest, actor string) (*dto.DocumentResponse, error) {
	doc, err := s.repo.Document.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	if doc.Status != model.DocumentStatusDraft && doc.Status != model.DocumentStatusInReview {
		return nil, fmt.Errorf("%w: el documento %s está en estado %s", ErrInvalidState, doc.Code, doc.Status)
	}

	now := time.Now()
	doc.Status = model.DocumentStatusApproved
	doc.ApprovedBy = &actor
	doc.ApprovedAt = &now
	if req != nil && req.ApprovalMethod != nil {
		doc.ApprovalMethod = req.ApprovalMethod
	}
	if doc.EffectiveDate == nil {
		doc.EffectiveDate = &now
	}
	doc.UpdatedBy = &actor

	// Aprobación + degradación de hermanas en una sola transacción:
	// a lo sumo una versión APPROVED vigente por código.
	if err := s.repo.Document.ApproveAndDemoteSiblings(ctx, doc); err != nil {
		s.logger.Error("error aprobando documento", zap.Error(err))
		return nil, err
	}

	s.audit.emit(ctx, "ControlledDocument", doc.DocumentID, "APROBAR", actor, map[string]interface{}{
		"code":    doc.Code,
		"version": doc.Version,
	})

	resp := toDocumentResponse(doc)
	return &resp, nil
}

// ────────────────────── Vigencia ──────────────────────

func (s *documentService) GetActiveByProcess(ctx context.Context, process string) ([]dto.DocumentResponse, error) {
	docs, err := s.repo.Document.ListActiveByProcess(ctx, process, time.Now())
	if err != nil {
		s.logger.Error("error consultando documentos vigentes", zap.Error(err))
		return nil, err
	}
	return toDocumentResponses(docs), nil
}

func (s *documentService) AssertActiveProcessDocument(ctx context.Context, process string) error {
	docs, err := s.repo.Document.ListActiveByProcess(ctx, process, time.Now())
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("%w para el proceso %s", ErrMissingControlledDocument, process)
	}
	return nil
}

func (s *documentService) AssertActiveDocumentCode(ctx context.Context, code string) error {
	docs, err := s.repo.Document.ListActiveByCode(ctx, code, time.Now())
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("%w con código %s", ErrMissingControlledDocument, code)
	}
	return nil
}

// ────────────────────── Mapeo ──────────────────────

func toDocumentResponse(doc *model.ControlledDocument) dto.DocumentResponse {
	return dto.DocumentResponse{
		ID:             doc.DocumentID,
		Code:           doc.Code,
		Title:          doc.Title,
		Process:        doc.Process,
		Category:       doc.Category,
		Version:        doc.Version,
		Status:         doc.Status,
		Content:        doc.Content,
		EffectiveDate:  formatTimestamp(doc.EffectiveDate),
		ExpiresAt:      formatTimestamp(doc.ExpiresAt),
		ApprovedBy:     doc.ApprovedBy,
		ApprovedAt:     formatTimestamp(doc.ApprovedAt),
		ApprovalMethod: doc.ApprovalMethod,
		CreatedAt:      doc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      doc.UpdatedAt.Format(time.RFC3339),
	}
}

func toDocumentResponses(docs []model.ControlledDocument) []dto.DocumentResponse {
	out := make([]dto.DocumentResponse, 0, len(docs))
	for i := range docs {
		out = append(out, toDocumentResponse(&docs[i]))
	}
	return out
}
