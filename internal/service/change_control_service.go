package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cumplimed/backend/internal/dto"
	"cumplimed/backend/internal/model"
	"cumplimed/backend/internal/repository"
)

// ── Errores del módulo de control de cambios ──

var (
	ErrChangeControlNotFound = errors.New("control de cambios no encontrado")
)

// ChangeControlService ciclo de vida de controles de cambio con quórum de
// aprobación por nivel de impacto
type ChangeControlService interface {
	Create(ctx context.Context, req *dto.CreateChangeControlRequest, actor string) (*dto.ChangeControlResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ChangeControlResponse, error)
	List(ctx context.Context) ([]dto.ChangeControlResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateChangeControlRequest, actor string) (*dto.ChangeControlResponse, error)
	UpsertApproval(ctx context.Context, changeControlID string, req *dto.UpsertApprovalRequest, actor string) (*dto.ChangeControlResponse, error)
}

type changeControlService struct {
	repo   *repository.Repository
	audit  *auditor
	logger *zap.Logger
}

// NewChangeControlService crea una instancia de ChangeControlService
func NewChangeControlService(repo *repository.Repository, logger *zap.Logger) ChangeControlService {
	return &changeControlService{
		repo:   repo,
		audit:  newAuditor(repo.Audit, logger),
		logger: logger,
	}
}

// generateChangeControlCode código único derivado del tiempo, p. ej.
// CC-20260415-103205-9F2A
func generateChangeControlCode(now time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:4])
	return fmt.Sprintf("CC-%s-%s", now.Format("20060102-150405"), suffix)
}

// ────────────────────── Create ──────────────────────

func (s *changeControlService) Create(ctx context.Context, req *dto.CreateChangeControlRequest, actor string) (*dto.ChangeControlResponse, error) {
	cc := &model.ChangeControl{
		Code:             generateChangeControlCode(time.Now()),
		Title:            req.Title,
		Description:      req.Description,
		Type:             req.Type,
		ImpactLevel:      req.ImpactLevel,
		Status:           model.ChangeControlStatusDraft,
		LinkedDocumentID: req.LinkedDocument,
		AffectedOrderID:  req.AffectedOrder,
		AffectedBatchID:  req.AffectedBatch,
	}
	cc.CreatedBy = &actor

	if err := s.repo.ChangeControl.Create(ctx, cc); err != nil {
		s.logger.Error("error creando control de cambios", zap.Error(err))
		return nil, err
	}

	s.audit.emit(ctx, "ChangeControl", cc.ChangeControlID, "CREAR", actor, map[string]interface{}{
		"code":         cc.Code,
		"impact_level": cc.ImpactLevel,
	})

	resp := toChangeControlResponse(cc, nil)
	return &resp, nil
}

// ────────────────────── Consultas ──────────────────────

func (s *changeControlService) GetByID(ctx context.Context, id string) (*dto.ChangeControlResponse, error) {
	cc, err := s.repo.ChangeControl.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChangeControlNotFound
		}
		s.logger.Error("error consultando control de cambios", zap.Error(err))
		return nil, err
	}
	resp := toChangeControlResponse(cc, cc.Approvals)
	return &resp, nil
}

func (s *changeControlService) List(ctx context.Context) ([]dto.ChangeControlResponse, error) {
	ccs, err := s.repo.ChangeControl.List(ctx)
	if err != nil {
		s.logger.Error("error listando controles de cambio", zap.Error(err))
		return nil, err
	}
	out := make([]dto.ChangeControlResponse, 0, len(ccs))
	for i := range ccs {
		out = append(out, toChangeControlResponse(&ccs[i], ccs[i].Approvals))
	}
	return out, nil
}

// ────────────────────── UpsertApproval ──────────────────────

func (s *changeControlService) UpsertApproval(ctx context.Context, changeControlID string, req *dto.UpsertApprovalRequest, actor string) (*dto.ChangeControlResponse, error) {
	cc, err := s.repo.ChangeControl.GetByID(ctx, changeControlID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChangeControlNotFound
		}
		return nil, err
	}

	// No se registran aprobaciones sobre estados terminales
	if cc.Status == model.ChangeControlStatusImplemented || cc.Status == model.ChangeControlStatusCancelled {
		return nil, fmt.Errorf("%w: el control %s está %s", ErrInvalidState, cc.Code, cc.Status)
	}

	// Upsert por rol: una fila por rol distinto por control de cambios
	approval, err := s.repo.ChangeControl.GetApprovalByRole(ctx, changeControlID, req.Role)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		approval = &model.ChangeControlApproval{
			ChangeControlID: changeControlID,
			Role:            req.Role,
		}
		approval.CreatedBy = &actor
	}

	approval.Decision = req.Decision
	approval.Approver = req.Approver
	approval.DecisionNotes = req.DecisionNotes
	if req.Decision == model.ApprovalDecisionPending {
		// La decisión vuelve a PENDIENTE: se limpia la fecha de decisión
		approval.DecidedAt = nil
	} else {
		now := time.Now()
		approval.DecidedAt = &now
	}
	approval.UpdatedBy = &actor

	if err := s.repo.ChangeControl.SaveApproval(ctx, approval); err != nil {
		s.logger.Error("error guardando aprobación", zap.Error(err))
		return nil, err
	}

	// Registrar cualquier aprobación sobre un DRAFT lo promueve a evaluación
	if cc.Status == model.ChangeControlStatusDraft {
		cc.Status = model.ChangeControlStatusInEvaluation
		cc.UpdatedBy = &actor
		if err := s.repo.ChangeControl.Update(ctx, cc); err != nil {
			s.logger.Error("error promoviendo control de cambios a evaluación", zap.Error(err))
			return nil, err
		}
	}

	s.audit.emit(ctx, "ChangeControl", cc.ChangeControlID, "REGISTRAR_APROBACION", actor, map[string]interface{}{
		"role":     req.Role,
		"decision": req.Decision,
	})

	return s.GetByID(ctx, changeControlID)
}

// ────────────────────── Update ──────────────────────

func (s *changeControlService) Update(ctx context.Context, id string, req *dto.UpdateChangeControlRequest, actor string) (*dto.ChangeControlResponse, error) {
	cc, err := s.repo.ChangeControl.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChangeControlNotFound
		}
		return nil, err
	}

	if cc.Status == model.ChangeControlStatusImplemented || cc.Status == model.ChangeControlStatusCancelled {
		return nil, fmt.Errorf("%w: el control %s está %s", ErrInvalidState, cc.Code, cc.Status)
	}

	// El quórum se evalúa ANTES de mutar cualquier campo, y siempre contra
	// las aprobaciones ya persistidas — nunca contra el payload.
	if req.Status != nil && *req.Status == model.ChangeControlStatusApproved {
		if err := s.assertApprovalRequirements(ctx, cc); err != nil {
			return nil, err
		}
	}

	if req.Title != nil {
		cc.Title = *req.Title
	}
	if req.Description != nil {
		cc.Description = *req.Description
	}
	if req.Type != nil {
		cc.Type = *req.Type
	}
	if req.ImpactLevel != nil {
		cc.ImpactLevel = *req.ImpactLevel
	}
	if req.LinkedDocument != nil {
		cc.LinkedDocumentID = req.LinkedDocument
	}
	if req.AffectedOrder != nil {
		cc.AffectedOrderID = req.AffectedOrder
	}
	if req.AffectedBatch != nil {
		cc.AffectedBatchID = req.AffectedBatch
	}
	if req.Status != nil {
		cc.Status = *req.Status
	}
	cc.UpdatedBy = &actor

	if err := s.repo.ChangeControl.Update(ctx, cc); err != nil {
		s.logger.Error("error actualizando control de cambios", zap.Error(err))
		return nil, err
	}

	s.audit.emit(ctx, "ChangeControl", cc.ChangeControlID, "ACTUALIZAR", actor, map[string]interface{}{
		"status": cc.Status,
	})

	return s.GetByID(ctx, id)
}

// assertApprovalRequirements regla esencial del módulo: ninguna aprobación
// RECHAZADO, y un mínimo de APROBADO según el nivel de impacto persistido
// (CRITICO exige 2, el resto 1).
func (s *changeControlService) assertApprovalRequirements(ctx context.Context, cc *model.ChangeControl) error {
	approvals, err := s.repo.ChangeControl.ListApprovals(ctx, cc.ChangeControlID)
	if err != nil {
		return err
	}

	approved := 0
	for _, a := range approvals {
		switch a.Decision {
		case model.ApprovalDecisionRejected:
			return fmt.Errorf("%w: rol %s", ErrQuorumRejected, a.Role)
		case model.ApprovalDecisionApproved:
			approved++
		}
	}

	required := 1
	if cc.ImpactLevel == model.ImpactLevelCritical {
		required = 2
	}
	if approved < required {
		return fmt.Errorf("%w: se requieren %d aprobaciones y hay %d", ErrQuorumNotMet, required, approved)
	}
	return nil
}

// ────────────────────── Mapeo ──────────────────────

func toChangeControlResponse(cc *model.ChangeControl, approvals []model.ChangeControlApproval) dto.ChangeControlResponse {
	apprs := make([]dto.ApprovalResponse, 0, len(approvals))
	for i := range approvals {
		a := &approvals[i]
		apprs = append(apprs, dto.ApprovalResponse{
			ID:            a.ApprovalID,
			Role:          a.Role,
			Approver:      a.Approver,
			Decision:      a.Decision,
			DecisionNotes: a.DecisionNotes,
			DecidedAt:     formatTimestamp(a.DecidedAt),
		})
	}
	return dto.ChangeControlResponse{
		ID:             cc.ChangeControlID,
		Code:           cc.Code,
		Title:          cc.Title,
		Description:    cc.Description,
		Type:           cc.Type,
		ImpactLevel:    cc.ImpactLevel,
		Status:         cc.Status,
		LinkedDocument: cc.LinkedDocumentID,
		AffectedOrder:  cc.AffectedOrderID,
		AffectedBatch:  cc.AffectedBatchID,
		Approvals:      apprs,
		CreatedAt:      cc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      cc.UpdatedAt.Format(time.RFC3339),
	}
}
