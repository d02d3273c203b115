package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cumplimed/backend/internal/dto"
	"cumplimed/backend/internal/model"
	"cumplimed/backend/internal/repository"
)

// ── Errores del módulo de retiros ──

var (
	ErrRecallNotFound = errors.New("caso de retiro no encontrado")
)

// RecallService ciclo de vida de retiros de producto, cobertura y notificaciones
type RecallService interface {
	Create(ctx context.Context, req *dto.CreateRecallRequest, actor string) (*dto.RecallResponse, error)
	GetByID(ctx context.Context, id string) (*dto.RecallResponse, error)
	List(ctx context.Context) ([]dto.RecallResponse, error)
	UpdateProgress(ctx context.Context, id string, req *dto.UpdateRecallProgressRequest, actor string) (*dto.RecallResponse, error)
	Close(ctx context.Context, id string, req *dto.CloseRecallRequest, actor string) (*dto.RecallResponse, error)
	AddNotification(ctx context.Context, id string, req *dto.AddNotificationRequest, actor string) (*dto.RecallResponse, error)
}

type recallService struct {
	repo   *repository.Repository
	audit  *auditor
	logger *zap.Logger
}

// NewRecallService crea una instancia de RecallService
func NewRecallService(repo *repository.Repository, logger *zap.Logger) RecallService {
	return &recallService{
		repo:   repo,
		audit:  newAuditor(repo.Audit, logger),
		logger: logger,
	}
}

func generateRecallCode(now time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:4])
	return fmt.Sprintf("REC-%s-%s", now.Format("20060102-150405"), suffix)
}

// round2 redondeo a dos decimales
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// coverage porcentaje de cobertura en [0,100]; 0 si no hay afectados
func coverage(retrieved, affected int) float64 {
	if affected <= 0 {
		return 0
	}
	return round2(float64(retrieved) / float64(affected) * 100)
}

// ────────────────────── Create ──────────────────────

func (s *recallService) Create(ctx context.Context, req *dto.CreateRecallRequest, actor string) (*dto.RecallResponse, error) {
	now := time.Now()
	recall := &model.RecallCase{
		Code:                  generateRecallCode(now),
		ScopeType:             req.ScopeType,
		LotCode:               req.LotCode,
		SerialCode:            req.SerialCode,
		Reason:                req.Reason,
		AffectedQuantity:      req.AffectedQuantity,
		RetrievedQuantity:     0,
		CoveragePercent:       0,
		Status:                model.RecallStatusOpen,
		StartedAt:             now,
		TargetResponseMinutes: req.TargetResponseMinutes,
	}
	recall.CreatedBy = &actor

	if err := s.repo.Recall.Create(ctx, recall); err != nil {
		s.logger.Error("error creando caso de retiro", zap.Error(err))
		return nil, err
	}

	s.audit.emit(ctx, "RecallCase", recall.RecallID, "ABRIR", actor, map[string]interface{}{
		"code":       recall.Code,
		"scope_type": recall.ScopeType,
	})

	resp := toRecallResponse(recall, nil)
	return &resp, nil
}

// ────────────────────── Consultas ──────────────────────

func (s *recallService) GetByID(ctx context.Context, id string) (*dto.RecallResponse, error) {
	recall, err := s.repo.Recall.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecallNotFound
		}
		s.logger.Error("error consultando caso de retiro", zap.Error(err))
		return nil, err
	}
	resp := toRecallResponse(recall, recall.Notifications)
	return &resp, nil
}

func (s *recallService) List(ctx context.Context) ([]dto.RecallResponse, error) {
	recalls, err := s.repo.Recall.List(ctx)
	if err != nil {
		s.logger.Error("error listando casos de retiro", zap.Error(err))
		return nil, err
	}
	out := make([]dto.RecallResponse, 0, len(recalls))
	for i := range recalls {
		out = append(out, toRecallResponse(&recalls[i], recalls[i].Notifications))
	}
	return out, nil
}

// ────────────────────── UpdateProgress ──────────────────────

func (s *recallService) UpdateProgress(ctx context.Context, id string, req *dto.UpdateRecallProgressRequest, actor string) (*dto.RecallResponse, error) {
	recall, err := s.repo.Recall.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecallNotFound
		}
		return nil, err
	}

	if recall.Status == model.RecallStatusClosed {
		return nil, fmt.Errorf("%w: el caso %s está cerrado", ErrInvalidState, recall.Code)
	}
	if req.RetrievedQuantity > recall.AffectedQuantity {
		return nil, fmt.Errorf("%w: recuperadas=%d, afectadas=%d",
			ErrInvalidQuantity, req.RetrievedQuantity, recall.AffectedQuantity)
	}

	recall.RetrievedQuantity = req.RetrievedQuantity
	recall.CoveragePercent = coverage(recall.RetrievedQuantity, recall.AffectedQuantity)
	// El primer avance promueve el caso a ejecución
	if recall.Status == model.RecallStatusOpen {
		recall.Status = model.RecallStatusExecuting
	}
	recall.UpdatedBy = &actor

	if err := s.repo.Recall.Update(ctx, recall); err != nil {
		s.logger.Error("error actualizando avance del retiro", zap.Error(err))
		return nil, err
	}

	s.audit.emit(ctx, "RecallCase", recall.RecallID, "ACTUALIZAR_AVANCE", actor, map[string]interface{}{
		"retrieved": recall.RetrievedQuantity,
		"coverage":  recall.CoveragePercent,
	})

	resp := toRecallResponse(recall, recall.Notifications)
	return &resp, nil
}

// ────────────────────── Close ──────────────────────

func (s *recallService) Close(ctx context.Context, id string, req *dto.CloseRecallRequest, actor string) (*dto.RecallResponse, error) {
	recall, err := s.repo.Recall.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecallNotFound
		}
		return nil, err
	}

	if recall.Status == model.RecallStatusClosed {
		return nil, fmt.Errorf("%w: el caso %s ya está cerrado", ErrInvalidState, recall.Code)
	}

	endedAt, err := parseTimestamp(req.EndedAt)
	if err != nil {
		return nil, fmt.Errorf("ended_at inválida: %w", err)
	}
	if endedAt == nil {
		now := time.Now()
		endedAt = &now
	}

	actualMinutes := req.ActualResponseMinutes
	if actualMinutes == nil {
		// Tiempo real de respuesta: minutos transcurridos, mínimo 1
		elapsed := int(math.Round(endedAt.Sub(recall.StartedAt).Minutes()))
		if elapsed < 1 {
			elapsed = 1
		}
		actualMinutes = &elapsed
	}

	recall.Status = model.RecallStatusClosed
	recall.EndedAt = endedAt
	recall.ClosureEvidence = &req.ClosureEvidence
	recall.ActualResponseMinutes = actualMinutes
	recall.CoveragePercent = coverage(recall.RetrievedQuantity, recall.AffectedQuantity)
	recall.UpdatedBy = &actor

	if err := s.repo.Recall.Update(ctx, recall); err != nil {
		s.logger.Error("error cerrando caso de retiro", zap.Error(err))
		return nil, err
	}

	s.audit.emit(ctx, "RecallCase", recall.RecallID, "CERRAR", actor, map[string]interface{}{
		"coverage":         recall.CoveragePercent,
		"response_minutes": *actualMinutes,
	})

	resp := toRecallResponse(recall, recall.Notifications)
	return &resp, nil
}

// ────────────────────── AddNotification ──────────────────────

func (s *recallService) AddNotification(ctx context.Context, id string, req *dto.AddNotificationRequest, actor string) (*dto.RecallResponse, error) {
	recall, err := s.repo.Recall.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecallNotFound
		}
		return nil, err
	}

	if recall.Status == model.RecallStatusClosed {
		return nil, fmt.Errorf("%w: el caso %s está cerrado", ErrInvalidState, recall.Code)
	}

	sentAt, err := parseTimestamp(req.SentAt)
	if err != nil {
		return nil, fmt.Errorf("sent_at inválida: %w", err)
	}

	status := model.NotificationStatusPending
	if req.Status != nil {
		status = *req.Status
	}

	notification := &model.RecallNotification{
		RecallID:  recall.RecallID,
		Recipient: req.Recipient,
		Channel:   req.Channel,
		Status:    status,
		SentAt:    sentAt,
	}
	notification.CreatedBy = &actor

	if err := s.repo.Recall.AddNotification(ctx, notification); err != nil {
		s.logger.Error("error agregando notificación de retiro", zap.Error(err))
		return nil, err
	}

	// La primera notificación también promueve el caso a ejecución,
	// igual que el primer avance de recuperación
	if recall.Status == model.RecallStatusOpen {
		recall.Status = model.RecallStatusExecuting
		recall.UpdatedBy = &actor
		if err := s.repo.Recall.Update(ctx, recall); err != nil {
			s.logger.Error("error promoviendo caso de retiro a ejecución", zap.Error(err))
			return nil, err
		}
	}

	s.audit.emit(ctx, "RecallCase", recall.RecallID, "AGREGAR_NOTIFICACION", actor, map[string]interface{}{
		"recipient": req.Recipient,
		"channel":   req.Channel,
	})

	return s.GetByID(ctx, id)
}

// ────────────────────── Mapeo ──────────────────────

func toRecallResponse(recall *model.RecallCase, notifications []model.RecallNotification) dto.RecallResponse {
	notifs := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		n := &notifications[i]
		notifs = append(notifs, dto.NotificationResponse{
			ID:             n.NotificationID,
			Recipient:      n.Recipient,
			Channel:        n.Channel,
			Status:         n.Status,
			SentAt:         formatTimestamp(n.SentAt),
			AcknowledgedAt: formatTimestamp(n.AcknowledgedAt),
		})
	}
	return dto.RecallResponse{
		ID:                    recall.RecallID,
		Code:                  recall.Code,
		ScopeType:             recall.ScopeType,
		LotCode:               recall.LotCode,
		SerialCode:            recall.SerialCode,
		Reason:                recall.Reason,
		AffectedQuantity:      recall.AffectedQuantity,
		RetrievedQuantity:     recall.RetrievedQuantity,
		CoveragePercent:       recall.CoveragePercent,
		Status:                recall.Status,
		StartedAt:             recall.StartedAt.Format(time.RFC3339),
		EndedAt:               formatTimestamp(recall.EndedAt),
		TargetResponseMinutes: recall.TargetResponseMinutes,
		ActualResponseMinutes: recall.ActualResponseMinutes,
		Notifications:         notifs,
	}
}
