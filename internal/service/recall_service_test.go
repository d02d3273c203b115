package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"cumplimed/backend/internal/dto"
	"cumplimed/backend/internal/model"
)

// ── Ayudantes de prueba ──

func setupTestRecallService() (RecallService, *testRepos) {
	repos := newTestRepos()
	svc := NewRecallService(repos.repository(), zap.NewNop())
	return svc, repos
}

func seedRecall(repos *testRepos, id string, affected int, status string) *model.RecallCase {
	lot := "L1"
	recall := &model.RecallCase{
		RecallID:         id,
		Code:             "REC-20260301-080000-TEST",
		ScopeType:        model.LabelScopeLot,
		LotCode:          &lot,
		AffectedQuantity: affected,
		Status:           status,
		StartedAt:        time.Now().Add(-90 * time.Minute),
	}
	repos.recall.recalls[id] = recall
	return recall
}

// ── Create ──

func TestRecallService_Create_OpensCase(t *testing.T) {
	svc, _ := setupTestRecallService()

	lot := "L1"
	result, err := svc.Create(context.Background(), &dto.CreateRecallRequest{
		ScopeType:        model.LabelScopeLot,
		LotCode:          &lot,
		Reason:           "defecto de esterilidad",
		AffectedQuantity: 200,
	}, "qa-001")
	if err != nil {
		t.Fatalf("Create debería funcionar: %v", err)
	}
	if result.Status != model.RecallStatusOpen {
		t.Errorf("un caso nuevo nace ABIERTO, quedó %s", result.Status)
	}
	if result.CoveragePercent != 0 {
		t.Errorf("la cobertura inicial es 0, quedó %.2f", result.CoveragePercent)
	}
	if !strings.HasPrefix(result.Code, "REC-") {
		t.Errorf("el código generado debe llevar prefijo REC-, quedó %s", result.Code)
	}
}

// ── UpdateProgress ──

func TestRecallService_UpdateProgress_PromotesAndComputesCoverage(t *testing.T) {
	svc, repos := setupTestRecallService()
	seedRecall(repos, "rec-1", 300, model.RecallStatusOpen)

	result, err := svc.UpdateProgress(context.Background(), "rec-1", &dto.UpdateRecallProgressRequest{
		RetrievedQuantity: 100,
	}, "qa-001")
	if err != nil {
		t.Fatalf("UpdateProgress debería funcionar: %v", err)
	}
	if result.Status != model.RecallStatusExecuting {
		t.Errorf("el primer avance promueve a EN_EJECUCION, quedó %s", result.Status)
	}
	// 100/300 redondeado a dos decimales
	if result.CoveragePercent != 33.33 {
		t.Errorf("cobertura esperada 33.33, quedó %.2f", result.CoveragePercent)
	}
}

// Reaplicar el mismo avance produce la misma cobertura.
func TestRecallService_UpdateProgress_Idempotent(t *testing.T) {
	svc, repos := setupTestRecallService()
	seedRecall(repos, "rec-1", 300, model.RecallStatusOpen)

	first, err := svc.UpdateProgress(context.Background(), "rec-1", &dto.UpdateRecallProgressRequest{RetrievedQuantity: 100}, "qa-001")
	if err != nil {
		t.Fatalf("primer UpdateProgress: %v", err)
	}
	second, err := svc.UpdateProgress(context.Background(), "rec-1", &dto.UpdateRecallProgressRequest{RetrievedQuantity: 100}, "qa-001")
	if err != nil {
		t.Fatalf("segundo UpdateProgress: %v", err)
	}
	if first.CoveragePercent != second.CoveragePercent {
		t.Errorf("la cobertura debe ser idempotente: %.2f vs %.2f", first.CoveragePercent, second.CoveragePercent)
	}
}

func TestRecallService_UpdateProgress_CoverageBounds(t *testing.T) {
	svc, repos := setupTestRecallService()
	seedRecall(repos, "rec-1", 200, model.RecallStatusOpen)

	result, err := svc.UpdateProgress(context.Background(), "rec-1", &dto.UpdateRecallProgressRequest{RetrievedQuantity: 200}, "qa-001")
	if err != nil {
		t.Fatalf("UpdateProgress debería funcionar: %v", err)
	}
	if result.CoveragePercent != 100 {
		t.Errorf("recuperación total = 100%%, quedó %.2f", result.CoveragePercent)
	}
	if result.CoveragePercent < 0 || result.CoveragePercent > 100 {
		t.Errorf("la cobertura debe quedar en [0,100], quedó %.2f", result.CoveragePercent)
	}
}

func TestRecallService_UpdateProgress_OverAffectedRejected(t *testing.T) {
	svc, repos := setupTestRecallService()
	seedRecall(repos, "rec-1", 200, model.RecallStatusOpen)

	_, err := svc.UpdateProgress(context.Background(), "rec-1", &dto.UpdateRecallProgressRequest{RetrievedQuantity: 201}, "qa-001")
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("esperado ErrInvalidQuantity, obtenido: %v", err)
	}
}

func TestRecallService_UpdateProgress_ClosedRejected(t *testing.T) {
	svc, repos := setupTestRecallService()
	seedRecall(repos, "rec-1", 200, model.RecallStatusClosed)

	_, err := svc.UpdateProgress(context.Background(), "rec-1", &dto.UpdateRecallProgressRequest{RetrievedQuantity: 10}, "qa-001")
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("un caso cerrado no admite avances, obtenido: %v", err)
	}
}

// ── Close ──

func TestRecallService_Close_Success(t *testing.T) {
	svc, repos := setupTestRecallService()
	seedRecall(repos, "rec-1", 200, model.RecallStatusExecuting)

	result, err := svc.Close(context.Background(), "rec-1", &dto.CloseRecallRequest{
		ClosureEvidence: "acta de destrucción 042",
	}, "qa-001")
	if err != nil {
		t.Fatalf("Close debería funcionar: %v", err)
	}
	if result.Status != model.RecallStatusClosed {
		t.Errorf("esperado CERRADO, quedó %s", result.Status)
	}
	if result.EndedAt == nil {
		t.Error("el cierre debe registrar la fecha de fin")
	}
	// Caso sembrado 90 minutos atrás
	if result.ActualResponseMinutes == nil || *result.ActualResponseMinutes < 89 || *result.ActualResponseMinutes > 91 {
		t.Errorf("el tiempo real de respuesta debe derivarse del transcurrido: %v", result.ActualResponseMinutes)
	}
}

func TestRecallService_Close_MinimumOneMinute(t *testing.T) {
	svc, repos := setupTestRecallService()
	recall := seedRecall(repos, "rec-1", 200, model.RecallStatusOpen)
	recall.StartedAt = time.Now()

	result, err := svc.Close(context.Background(), "rec-1", &dto.CloseRecallRequest{
		ClosureEvidence: "acta de destrucción 042",
	}, "qa-001")
	if err != nil {
		t.Fatalf("Close debería funcionar: %v", err)
	}
	if result.ActualResponseMinutes == nil || *result.ActualResponseMinutes < 1 {
		t.Errorf("el tiempo de respuesta derivado nunca baja de 1 minuto: %v", result.ActualResponseMinutes)
	}
}

func TestRecallService_Close_ExplicitMinutesKept(t *testing.T) {
	svc, repos := setupTestRecallService()
	seedRecall(repos, "rec-1", 200, model.RecallStatusExecuting)

	minutes := 45
	result, err := svc.Close(context.Background(), "rec-1", &dto.CloseRecallRequest{
		ClosureEvidence:       "acta de destrucción 042",
		ActualResponseMinutes: &minutes,
	}, "qa-001")
	if err != nil {
		t.Fatalf("Close debería funcionar: %v", err)
	}
	if result.ActualResponseMinutes == nil || *result.ActualResponseMinutes != 45 {
		t.Errorf("el valor explícito prevalece sobre el derivado: %v", result.ActualResponseMinutes)
	}
}

func TestRecallService_Close_AlreadyClosed(t *testing.T) {
	svc, repos := setupTestRecallService()
	seedRecall(repos, "rec-1", 200, model.RecallStatusClosed)

	_, err := svc.Close(context.Background(), "rec-1", &dto.CloseRecallRequest{
		ClosureEvidence: "acta",
	}, "qa-001")
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("esperado ErrInvalidState, obtenido: %v", err)
	}
}

// ── AddNotification ──

func TestRecallService_AddNotification_PromotesOpenCase(t *testing.T) {
	svc, repos := setupTestRecallService()
	seedRecall(repos, "rec-1", 200, model.RecallStatusOpen)

	result, err := svc.AddNotification(context.Background(), "rec-1", &dto.AddNotificationRequest{
		Recipient: "Distribuidora Andina",
		Channel:   "correo",
	}, "qa-001")
	if err != nil {
		t.Fatalf("AddNotification debería funcionar: %v", err)
	}
	if result.Status != model.RecallStatusExecuting {
		t.Errorf("la primera notificación promueve a EN_EJECUCION, quedó %s", result.Status)
	}
	if len(result.Notifications) != 1 {
		t.Errorf("la notificación debe quedar asociada al caso, hay %d", len(result.Notifications))
	}
	if result.Notifications[0].Status != model.NotificationStatusPending {
		t.Errorf("sin estado explícito la notificación nace PENDIENTE, quedó %s", result.Notifications[0].Status)
	}
}

func TestRecallService_AddNotification_ClosedRejected(t *testing.T) {
	svc, repos := setupTestRecallService()
	seedRecall(repos, "rec-1", 200, model.RecallStatusClosed)

	_, err := svc.AddNotification(context.Background(), "rec-1", &dto.AddNotificationRequest{
		Recipient: "Distribuidora Andina",
		Channel:   "correo",
	}, "qa-001")
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("un caso cerrado no admite notificaciones, obtenido: %v", err)
	}
}

func TestRecallService_GetByID_NotFound(t *testing.T) {
	svc, _ := setupTestRecallService()

	_, err := svc.GetByID(context.Background(), "no-existe")
	if !errors.Is(err, ErrRecallNotFound) {
		t.Errorf("esperado ErrRecallNotFound, obtenido: %v", err)
	}
}

// ── coverage ──

func TestCoverage_ZeroAffected(t *testing.T) {
	if got := coverage(10, 0); got != 0 {
		t.Errorf("sin afectados la cobertura es 0, obtenido %.2f", got)
	}
}

func TestCoverage_Rounding(t *testing.T) {
	if got := coverage(1, 3); got != 33.33 {
		t.Errorf("1/3 redondeado a dos decimales = 33.33, obtenido %.2f", got)
	}
	if got := coverage(2, 3); got != 66.67 {
		t.Errorf("2/3 redondeado a dos decimales = 66.67, obtenido %.2f", got)
	}
}
