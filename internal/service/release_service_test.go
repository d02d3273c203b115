package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"cumplimed/backend/internal/dto"
	"cumplimed/backend/internal/model"
)

// ── Ayudantes de prueba ──

func setupTestReleaseService() (ReleaseService, *testRepos) {
	repos := newTestRepos()
	logger := zap.NewNop()
	repo := repos.repository()
	cfgSvc := NewSystemConfigService(repo, nil, logger)
	docSvc := NewDocumentService(repo, logger)
	labelSvc := NewLabelService(repo, cfgSvc, docSvc, logger)
	svc := NewReleaseService(repo, cfgSvc, docSvc, labelSvc, logger)

	// Documentos vigentes de liberación y etiquetado, y un lote listo
	seedDocument(repos, "doc-lib", "POE-LIB-001", 1, model.DocumentStatusApproved)
	seedDocument(repos, "doc-etq", "POE-ETQ-001", 1, model.DocumentStatusApproved)
	repos.batch.batches["b1"] = &model.ProductionBatch{
		BatchID:         "b1",
		BatchNumber:     "LOTE-2026-001",
		ProductID:       "p1",
		QCStatus:        model.QCStatusPassed,
		PackagingStatus: model.PackagingStatusPacked,
	}
	return svc, repos
}

func fullChecklist() *dto.UpsertChecklistRequest {
	return &dto.UpsertChecklistRequest{
		ProductionBatchID: "b1",
		QCApproved:        true,
		LabelingValidated: true,
		DocumentsCurrent:  true,
		EvidencesComplete: true,
	}
}

// seedValidatedLotLabel etiqueta de lote VALIDADA para pasar el paso 4
func seedValidatedLotLabel(repos *testRepos, batchID string) {
	repos.label.labels["lbl-"+batchID] = &model.RegulatoryLabel{
		LabelID:           "lbl-" + batchID,
		ProductionBatchID: batchID,
		ScopeType:         model.LabelScopeLot,
		Status:            model.LabelStatusValidated,
	}
}

func signRequest() *dto.SignReleaseRequest {
	return &dto.SignReleaseRequest{
		ApprovalMethod:    "firma_electronica",
		ApprovalSignature: "qa-001:2026-03-01T10:00:00Z",
	}
}

// ── UpsertChecklist ──

func TestReleaseService_UpsertChecklist_CreatesPending(t *testing.T) {
	svc, _ := setupTestReleaseService()

	result, err := svc.UpsertChecklist(context.Background(), fullChecklist(), "qa-001")
	if err != nil {
		t.Fatalf("UpsertChecklist debería funcionar: %v", err)
	}
	if result.Status != model.ReleaseStatusPending {
		t.Errorf("esperado PENDIENTE_LIBERACION, quedó %s", result.Status)
	}
}

func TestReleaseService_UpsertChecklist_RejectedReason(t *testing.T) {
	svc, _ := setupTestReleaseService()

	reason := "evidencias ilegibles"
	req := fullChecklist()
	req.RejectedReason = &reason

	result, err := svc.UpsertChecklist(context.Background(), req, "qa-001")
	if err != nil {
		t.Fatalf("UpsertChecklist debería funcionar: %v", err)
	}
	if result.Status != model.ReleaseStatusRejected {
		t.Errorf("con motivo de rechazo el estado es RECHAZADO, quedó %s", result.Status)
	}
}

// Guardar el checklist invalida siempre cualquier firma previa.
func TestReleaseService_UpsertChecklist_ClearsSignature(t *testing.T) {
	svc, repos := setupTestReleaseService()
	seedValidatedLotLabel(repos, "b1")

	if _, err := svc.UpsertChecklist(context.Background(), fullChecklist(), "qa-001"); err != nil {
		t.Fatalf("UpsertChecklist: %v", err)
	}
	if _, err := svc.Sign(context.Background(), "b1", signRequest(), "qa-001"); err != nil {
		t.Fatalf("Sign: %v", err)
	}

	result, err := svc.UpsertChecklist(context.Background(), fullChecklist(), "qa-002")
	if err != nil {
		t.Fatalf("segundo UpsertChecklist: %v", err)
	}
	if result.SignedBy != nil || result.SignedAt != nil {
		t.Error("re-guardar el checklist debe invalidar la firma anterior")
	}
	if result.Status != model.ReleaseStatusPending {
		t.Errorf("el lote vuelve a PENDIENTE_LIBERACION, quedó %s", result.Status)
	}
}

func TestReleaseService_UpsertChecklist_MissingReleaseDocument(t *testing.T) {
	svc, repos := setupTestReleaseService()
	repos.document.docs["doc-lib"].Status = model.DocumentStatusDraft

	_, err := svc.UpsertChecklist(context.Background(), fullChecklist(), "qa-001")
	if !errors.Is(err, ErrMissingControlledDocument) {
		t.Errorf("sin documento de liberación vigente esperado ErrMissingControlledDocument, obtenido: %v", err)
	}
}

func TestReleaseService_UpsertChecklist_BatchNotFound(t *testing.T) {
	svc, _ := setupTestReleaseService()

	req := fullChecklist()
	req.ProductionBatchID = "no-existe"

	_, err := svc.UpsertChecklist(context.Background(), req, "qa-001")
	if !errors.Is(err, ErrBatchNotFound) {
		t.Errorf("esperado ErrBatchNotFound, obtenido: %v", err)
	}
}

// ── Sign: compuerta de cinco pasos ──

func TestReleaseService_Sign_HappyPath(t *testing.T) {
	svc, repos := setupTestReleaseService()
	seedValidatedLotLabel(repos, "b1")

	if _, err := svc.UpsertChecklist(context.Background(), fullChecklist(), "qa-001"); err != nil {
		t.Fatalf("UpsertChecklist: %v", err)
	}

	result, err := svc.Sign(context.Background(), "b1", signRequest(), "qa-001")
	if err != nil {
		t.Fatalf("Sign debería funcionar: %v", err)
	}
	if result.Status != model.ReleaseStatusReleased {
		t.Errorf("esperado LIBERADO_QA, quedó %s", result.Status)
	}
	if result.SignedBy == nil || *result.SignedBy != "qa-001" {
		t.Error("la firma debe registrar al actor")
	}
	if result.SignedAt == nil {
		t.Error("la firma debe registrar la fecha")
	}
	if !result.DocumentsCurrent {
		t.Error("al firmar se reconfirma la vigencia documental")
	}
}

func TestReleaseService_Sign_Step1RejectedChecklist(t *testing.T) {
	svc, _ := setupTestReleaseService()

	reason := "evidencias ilegibles"
	req := fullChecklist()
	req.RejectedReason = &reason
	if _, err := svc.UpsertChecklist(context.Background(), req, "qa-001"); err != nil {
		t.Fatalf("UpsertChecklist: %v", err)
	}

	_, err := svc.Sign(context.Background(), "b1", signRequest(), "qa-001")
	if !errors.Is(err, ErrReleaseBlocked) {
		t.Fatalf("esperado ErrReleaseBlocked, obtenido: %v", err)
	}
	if !strings.Contains(err.Error(), "rechazado") {
		t.Errorf("el mensaje debe señalar el checklist rechazado: %v", err)
	}
}

func TestReleaseService_Sign_Step2ListsMissingItems(t *testing.T) {
	svc, _ := setupTestReleaseService()

	req := fullChecklist()
	req.QCApproved = false
	req.EvidencesComplete = false
	if _, err := svc.UpsertChecklist(context.Background(), req, "qa-001"); err != nil {
		t.Fatalf("UpsertChecklist: %v", err)
	}

	_, err := svc.Sign(context.Background(), "b1", signRequest(), "qa-001")
	if !errors.Is(err, ErrReleaseBlocked) {
		t.Fatalf("esperado ErrReleaseBlocked, obtenido: %v", err)
	}
	if !strings.Contains(err.Error(), "qcApproved") || !strings.Contains(err.Error(), "evidencesComplete") {
		t.Errorf("el mensaje debe enumerar los ítems faltantes: %v", err)
	}
}

// El paso 3 (QC/empaque) corta antes de evaluar la aptitud de despacho: con
// el lote sin QC y además sin etiqueta, el mensaje es el de QC.
func TestReleaseService_Sign_Step3PrecedesStep4(t *testing.T) {
	svc, repos := setupTestReleaseService()
	repos.batch.batches["b1"].QCStatus = model.QCStatusPending

	if _, err := svc.UpsertChecklist(context.Background(), fullChecklist(), "qa-001"); err != nil {
		t.Fatalf("UpsertChecklist: %v", err)
	}

	_, err := svc.Sign(context.Background(), "b1", signRequest(), "qa-001")
	if !errors.Is(err, ErrReleaseBlocked) {
		t.Fatalf("esperado ErrReleaseBlocked, obtenido: %v", err)
	}
	if !strings.Contains(err.Error(), "QC") {
		t.Errorf("el mensaje debe ser el del paso de QC/empaque: %v", err)
	}
	if strings.Contains(err.Error(), "etiqueta") {
		t.Errorf("el paso 4 no debe evaluarse si falló el paso 3: %v", err)
	}
}

func TestReleaseService_Sign_Step4DispatchReadiness(t *testing.T) {
	svc, _ := setupTestReleaseService()

	// Lote con QC y empaque en orden pero sin etiqueta de lote validada
	if _, err := svc.UpsertChecklist(context.Background(), fullChecklist(), "qa-001"); err != nil {
		t.Fatalf("UpsertChecklist: %v", err)
	}

	_, err := svc.Sign(context.Background(), "b1", signRequest(), "qa-001")
	if !errors.Is(err, ErrReleaseBlocked) {
		t.Fatalf("esperado ErrReleaseBlocked, obtenido: %v", err)
	}
	if !strings.Contains(err.Error(), "etiqueta de lote") {
		t.Errorf("el mensaje debe provenir de la aptitud de despacho: %v", err)
	}
}

func TestReleaseService_Sign_Step5OpenDeviations(t *testing.T) {
	svc, repos := setupTestReleaseService()
	seedValidatedLotLabel(repos, "b1")
	repos.deviation.issues["b1"] = []string{"DEV-001 (DESVIACION_PROCESO)", "OOS-002 (OOS)"}

	if _, err := svc.UpsertChecklist(context.Background(), fullChecklist(), "qa-001"); err != nil {
		t.Fatalf("UpsertChecklist: %v", err)
	}

	_, err := svc.Sign(context.Background(), "b1", signRequest(), "qa-001")
	if !errors.Is(err, ErrReleaseBlocked) {
		t.Fatalf("esperado ErrReleaseBlocked, obtenido: %v", err)
	}
	if !strings.Contains(err.Error(), "2 desviación(es) abierta(s)") {
		t.Errorf("el mensaje debe contar las desviaciones abiertas: %v", err)
	}
	if !strings.Contains(err.Error(), "DEV-001") {
		t.Errorf("el mensaje debe incluir los códigos de incidencia: %v", err)
	}
}

func TestReleaseService_Sign_NoChecklistYet(t *testing.T) {
	svc, _ := setupTestReleaseService()

	_, err := svc.Sign(context.Background(), "b1", signRequest(), "qa-001")
	if !errors.Is(err, ErrReleaseNotFound) {
		t.Errorf("sin checklist previo esperado ErrReleaseNotFound, obtenido: %v", err)
	}
}

// Una compuerta fallida no muta la liberación.
func TestReleaseService_Sign_FailedGateLeavesReleaseUntouched(t *testing.T) {
	svc, repos := setupTestReleaseService()
	repos.batch.batches["b1"].QCStatus = model.QCStatusFailed

	if _, err := svc.UpsertChecklist(context.Background(), fullChecklist(), "qa-001"); err != nil {
		t.Fatalf("UpsertChecklist: %v", err)
	}

	if _, err := svc.Sign(context.Background(), "b1", signRequest(), "qa-001"); err == nil {
		t.Fatal("la firma debía fallar")
	}

	release := repos.release.releases["b1"]
	if release.Status != model.ReleaseStatusPending {
		t.Errorf("el estado debe seguir PENDIENTE_LIBERACION, quedó %s", release.Status)
	}
	if release.SignedBy != nil {
		t.Error("una firma fallida no debe dejar firmante")
	}
}

// ── GetByBatch ──

func TestReleaseService_GetByBatch_NotFound(t *testing.T) {
	svc, _ := setupTestReleaseService()

	_, err := svc.GetByBatch(context.Background(), "no-existe")
	if !errors.Is(err, ErrReleaseNotFound) {
		t.Errorf("esperado ErrReleaseNotFound, obtenido: %v", err)
	}
}
