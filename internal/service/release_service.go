package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"cumplimed/backend/internal/dto"
	"cumplimed/backend/internal/model"
	"cumplimed/backend/internal/repository"
)

// ── Errores del módulo de liberación ──

var (
	ErrReleaseNotFound = errors.New("liberación de lote no encontrada")
)

// ReleaseService checklist de liberación, compuerta de cinco pasos y firma QA
type ReleaseService interface {
	UpsertChecklist(ctx context.Context, req *dto.UpsertChecklistRequest, actor string) (*dto.ReleaseResponse, error)
	Sign(ctx context.Context, batchID string, req *dto.SignReleaseRequest, actor string) (*dto.ReleaseResponse, error)
	GetByBatch(ctx context.Context, batchID string) (*dto.ReleaseResponse, error)
}

type releaseService struct {
	repo     *repository.Repository
	cfgSvc   SystemConfigService
	docSvc   DocumentService
	labelSvc LabelService
	audit    *auditor
	logger   *zap.Logger
}

// NewReleaseService crea una instancia de ReleaseService
func NewReleaseService(
	repo *repository.Repository,
	cfgSvc SystemConfigService,
	docSvc DocumentService,
	labelSvc LabelService,
	logger *zap.Logger,
) ReleaseService {
	return &releaseService{
		repo:     repo,
		cfgSvc:   cfgSvc,
		docSvc:   docSvc,
		labelSvc: labelSvc,
		audit:    newAuditor(repo.Audit, logger),
		logger:   logger,
	}
}

// ────────────────────── UpsertChecklist ──────────────────────

func (s *releaseService) UpsertChecklist(ctx context.Context, req *dto.UpsertChecklistRequest, actor string) (*dto.ReleaseResponse, error) {
	// Documento controlado de liberación vigente
	snap, err := s.cfgSvc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.docSvc.AssertActiveDocumentCode(ctx, snap.ReleaseDocumentCode); err != nil {
		return nil, err
	}

	if _, err := s.repo.Batch.GetByID(ctx, req.ProductionBatchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBatchNotFound
		}
		return nil, err
	}

	// Una fila por lote (upsert)
	release, err := s.repo.Release.GetByBatch(ctx, req.ProductionBatchID)
	isNew := false
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		isNew = true
		release = &model.BatchRelease{ProductionBatchID: req.ProductionBatchID}
		release.CreatedBy = &actor
	}

	release.QCApproved = req.QCApproved
	release.LabelingValidated = req.LabelingValidated
	release.DocumentsCurrent = req.DocumentsCurrent
	release.EvidencesComplete = req.EvidencesComplete
	release.ChecklistNotes = req.ChecklistNotes
	release.RejectedReason = req.RejectedReason
	if req.RejectedReason != nil && *req.RejectedReason != "" {
		release.Status = model.ReleaseStatusRejected
	} else {
		release.Status = model.ReleaseStatusPending
	}

	// Un checklist nuevo invalida siempre la firma anterior
	release.SignedBy = nil
	release.ApprovalMethod = nil
	release.ApprovalSignature = nil
	release.SignedAt = nil
	release.UpdatedBy = &actor

	if isNew {
		err = s.repo.Release.Create(ctx, release)
	} else {
		err = s.repo.Release.Save(ctx, release)
	}
	if err != nil {
		s.logger.Error("error guardando checklist de liberación", zap.Error(err))
		return nil, err
	}

	s.audit.emit(ctx, "BatchRelease", release.ReleaseID, "GUARDAR_CHECKLIST", actor, map[string]interface{}{
		"batch_id": req.ProductionBatchID,
		"status":   release.Status,
	})

	resp := toReleaseResponse(release)
	return &resp, nil
}

// ────────────────────── Sign ──────────────────────

// Sign ejecuta la compuerta ordenada de cinco pasos; cada paso corta en el
// primer fallo con un mensaje específico para que el operador sepa exactamente
// qué precondición falló. Ninguna mutación ocurre si algún paso falla.
func (s *releaseService) Sign(ctx context.Context, batchID string, req *dto.SignReleaseRequest, actor string) (*dto.ReleaseResponse, error) {
	release, err := s.repo.Release.GetByBatch(ctx, batchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReleaseNotFound
		}
		return nil, err
	}

	// Paso 1: el checklist no puede estar rechazado
	if release.Status == model.ReleaseStatusRejected {
		reason := ""
		if release.RejectedReason != nil {
			reason = ": " + *release.RejectedReason
		}
		return nil, fmt.Errorf("%w: el checklist fue rechazado%s", ErrReleaseBlocked, reason)
	}

	// Paso 2: los cuatro ítems del checklist deben estar marcados
	var missing []string
	if !release.QCApproved {
		missing = append(missing, "qcApproved")
	}
	if !release.LabelingValidated {
		missing = append(missing, "labelingValidated")
	}
	if !release.DocumentsCurrent {
		missing = append(missing, "documentsCurrent")
	}
	if !release.EvidencesComplete {
		missing = append(missing, "evidencesComplete")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: checklist incompleto (%s)", ErrReleaseBlocked, strings.Join(missing, ", "))
	}

	// Paso 3: estado de calidad y empaque del lote
	batch, err := s.repo.Batch.GetByID(ctx, batchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBatchNotFound
		}
		return nil, err
	}
	if batch.QCStatus != model.QCStatusPassed || batch.PackagingStatus != model.PackagingStatusPacked {
		return nil, fmt.Errorf("%w: el lote debe tener QC PASSED y empaque PACKED (QC=%s, empaque=%s)",
			ErrReleaseBlocked, batch.QCStatus, batch.PackagingStatus)
	}

	// Paso 4: aptitud de despacho del motor de etiquetado
	readiness, err := s.labelSvc.ValidateDispatchReadiness(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if !readiness.Eligible {
		return nil, fmt.Errorf("%w: %s", ErrReleaseBlocked, strings.Join(readiness.Errors, "; "))
	}

	// Paso 5: sin desviaciones/OOS abiertas
	issues, err := s.repo.Deviation.ListOpenIssues(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if len(issues) > 0 {
		return nil, fmt.Errorf("%w: %d desviación(es) abierta(s): %s",
			ErrReleaseBlocked, len(issues), strings.Join(issues, "; "))
	}

	now := time.Now()
	release.Status = model.ReleaseStatusReleased
	release.SignedBy = &actor
	release.ApprovalMethod = &req.ApprovalMethod
	release.ApprovalSignature = &req.ApprovalSignature
	release.SignedAt = &now
	release.DocumentsCurrent = true
	release.UpdatedBy = &actor

	if err := s.repo.Release.Save(ctx, release); err != nil {
		s.logger.Error("error firmando liberación", zap.Error(err))
		return nil, err
	}

	s.audit.emit(ctx, "BatchRelease", release.ReleaseID, "FIRMAR_LIBERACION", actor, map[string]interface{}{
		"batch_id": batchID,
		"method":   req.ApprovalMethod,
	})

	resp := toReleaseResponse(release)
	return &resp, nil
}

// ────────────────────── GetByBatch ──────────────────────

func (s *releaseService) GetByBatch(ctx context.Context, batchID string) (*dto.ReleaseResponse, error) {
	release, err := s.repo.Release.GetByBatch(ctx, batchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReleaseNotFound
		}
		s.logger.Error("error consultando liberación", zap.Error(err))
		return nil, err
	}
	resp := toReleaseResponse(release)
	return &resp, nil
}

// ────────────────────── Mapeo ──────────────────────

func toReleaseResponse(release *model.BatchRelease) dto.ReleaseResponse {
	return dto.ReleaseResponse{
		ID:                release.ReleaseID,
		ProductionBatchID: release.ProductionBatchID,
		QCApproved:        release.QCApproved,
		LabelingValidated: release.LabelingValidated,
		DocumentsCurrent:  release.DocumentsCurrent,
		EvidencesComplete: release.EvidencesComplete,
		ChecklistNotes:    release.ChecklistNotes,
		RejectedReason:    release.RejectedReason,
		Status:            release.Status,
		SignedBy:          release.SignedBy,
		ApprovalMethod:    release.ApprovalMethod,
		SignedAt:          formatTimestamp(release.SignedAt),
		CreatedAt:         release.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         release.UpdatedAt.Format(time.RFC3339),
	}
}
