package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"cumplimed/backend/internal/dto"
	"cumplimed/backend/internal/model"
)

// ── Ayudantes de prueba ──

func setupTestDocumentService() (DocumentService, *testRepos) {
	repos := newTestRepos()
	svc := NewDocumentService(repos.repository(), zap.NewNop())
	return svc, repos
}

// seedDocument siembra un documento directamente en el mock
func seedDocument(repos *testRepos, id, code string, version int, status string) *model.ControlledDocument {
	doc := &model.ControlledDocument{
		DocumentID: id,
		Code:       code,
		Title:      "Procedimiento " + code,
		Process:    model.ProcessLabeling,
		Version:    version,
		Status:     status,
	}
	repos.document.docs[id] = doc
	return doc
}

// ── Create ──

func TestDocumentService_Create_Success(t *testing.T) {
	svc, _ := setupTestDocumentService()

	req := &dto.CreateDocumentRequest{
		Code:    "POE-ETQ-001",
		Title:   "Procedimiento de etiquetado",
		Process: model.ProcessLabeling,
	}

	result, err := svc.Create(context.Background(), req, "qa-001")
	if err != nil {
		t.Fatalf("Create debería funcionar: %v", err)
	}
	if result.Status != model.DocumentStatusDraft {
		t.Errorf("un documento nuevo debe nacer DRAFT, quedó %s", result.Status)
	}
	if result.Version != 1 {
		t.Errorf("versión por defecto esperada 1, quedó %d", result.Version)
	}
}

func TestDocumentService_Create_BadDate(t *testing.T) {
	svc, _ := setupTestDocumentService()

	bad := "15/01/2026"
	req := &dto.CreateDocumentRequest{
		Code:          "POE-ETQ-001",
		Title:         "Procedimiento de etiquetado",
		Process:       model.ProcessLabeling,
		EffectiveDate: &bad,
	}

	if _, err := svc.Create(context.Background(), req, "qa-001"); err == nil {
		t.Error("una fecha con formato inválido debe rechazarse")
	}
}

// ── SubmitForReview ──

func TestDocumentService_SubmitForReview_FromDraft(t *testing.T) {
	svc, repos := setupTestDocumentService()
	seedDocument(repos, "doc-1", "POE-ETQ-001", 1, model.DocumentStatusDraft)

	result, err := svc.SubmitForReview(context.Background(), "doc-1", "qa-001")
	if err != nil {
		t.Fatalf("SubmitForReview debería funcionar: %v", err)
	}
	if result.Status != model.DocumentStatusInReview {
		t.Errorf("esperado IN_REVIEW, quedó %s", result.Status)
	}
}

func TestDocumentService_SubmitForReview_InvalidState(t *testing.T) {
	svc, repos := setupTestDocumentService()
	seedDocument(repos, "doc-1", "POE-ETQ-001", 1, model.DocumentStatusApproved)

	_, err := svc.SubmitForReview(context.Background(), "doc-1", "qa-001")
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("esperado ErrInvalidState, obtenido: %v", err)
	}
}

func TestDocumentService_SubmitForReview_NotFound(t *testing.T) {
	svc, _ := setupTestDocumentService()

	_, err := svc.SubmitForReview(context.Background(), "no-existe", "qa-001")
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("esperado ErrDocumentNotFound, obtenido: %v", err)
	}
}

// ── Approve ──

func TestDocumentService_Approve_SetsApprovalFields(t *testing.T) {
	svc, repos := setupTestDocumentService()
	seedDocument(repos, "doc-1", "POE-ETQ-001", 1, model.DocumentStatusInReview)

	method := "firma_electronica"
	result, err := svc.Approve(context.Background(), "doc-1", &dto.ApproveDocumentRequest{ApprovalMethod: &method}, "qa-001")
	if err != nil {
		t.Fatalf("Approve debería funcionar: %v", err)
	}
	if result.Status != model.DocumentStatusApproved {
		t.Errorf("esperado APPROVED, quedó %s", result.Status)
	}
	if result.ApprovedBy == nil || *result.ApprovedBy != "qa-001" {
		t.Error("ApprovedBy debe quedar con el actor que aprueba")
	}
	if result.EffectiveDate == nil {
		t.Error("sin fecha explícita la vigencia arranca en la aprobación")
	}
}

// Aprobar una versión degrada cualquier hermana APPROVED del mismo código:
// nunca hay dos versiones vigentes a la vez.
func TestDocumentService_Approve_DemotesSiblings(t *testing.T) {
	svc, repos := setupTestDocumentService()
	seedDocument(repos, "doc-v1", "POE-ETQ-001", 1, model.DocumentStatusApproved)
	seedDocument(repos, "doc-v2", "POE-ETQ-001", 2, model.DocumentStatusInReview)

	if _, err := svc.Approve(context.Background(), "doc-v2", nil, "qa-001"); err != nil {
		t.Fatalf("Approve debería funcionar: %v", err)
	}

	approved := 0
	for _, d := range repos.document.docs {
		if d.Code == "POE-ETQ-001" && d.Status == model.DocumentStatusApproved {
			approved++
		}
	}
	if approved != 1 {
		t.Errorf("debe quedar exactamente 1 versión APPROVED por código, hay %d", approved)
	}
	if repos.document.docs["doc-v1"].Status != model.DocumentStatusObsolete {
		t.Errorf("la versión anterior debe quedar OBSOLETE, quedó %s", repos.document.docs["doc-v1"].Status)
	}
}

func TestDocumentService_Approve_SeveralApprovalsStillOneActive(t *testing.T) {
	svc, repos := setupTestDocumentService()
	seedDocument(repos, "doc-v1", "POE-ETQ-001", 1, model.DocumentStatusDraft)
	seedDocument(repos, "doc-v2", "POE-ETQ-001", 2, model.DocumentStatusDraft)
	seedDocument(repos, "doc-v3", "POE-ETQ-001", 3, model.DocumentStatusDraft)

	for _, id := range []string{"doc-v1", "doc-v2", "doc-v3"} {
		if _, err := svc.Approve(context.Background(), id, nil, "qa-001"); err != nil {
			t.Fatalf("Approve(%s) debería funcionar: %v", id, err)
		}
	}

	approved := 0
	for _, d := range repos.document.docs {
		if d.Status == model.DocumentStatusApproved {
			approved++
		}
	}
	if approved != 1 {
		t.Errorf("tras cualquier secuencia de aprobaciones debe haber 1 sola vigente, hay %d", approved)
	}
}

func TestDocumentService_Approve_ObsoleteRejected(t *testing.T) {
	svc, repos := setupTestDocumentService()
	seedDocument(repos, "doc-1", "POE-ETQ-001", 1, model.DocumentStatusObsolete)

	_, err := svc.Approve(context.Background(), "doc-1", nil, "qa-001")
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("esperado ErrInvalidState, obtenido: %v", err)
	}
}

// ── Vigencia ──

func TestDocumentService_AssertActiveDocumentCode_Missing(t *testing.T) {
	svc, _ := setupTestDocumentService()

	err := svc.AssertActiveDocumentCode(context.Background(), "POE-ETQ-001")
	if !errors.Is(err, ErrMissingControlledDocument) {
		t.Errorf("esperado ErrMissingControlledDocument, obtenido: %v", err)
	}
}

func TestDocumentService_AssertActiveDocumentCode_ExpiredNotActive(t *testing.T) {
	svc, repos := setupTestDocumentService()
	doc := seedDocument(repos, "doc-1", "POE-ETQ-001", 1, model.DocumentStatusApproved)
	past := time.Now().Add(-24 * time.Hour)
	doc.ExpiresAt = &past

	err := svc.AssertActiveDocumentCode(context.Background(), "POE-ETQ-001")
	if !errors.Is(err, ErrMissingControlledDocument) {
		t.Errorf("un documento vencido no cuenta como vigente, obtenido: %v", err)
	}
}

func TestDocumentService_AssertActiveDocumentCode_Active(t *testing.T) {
	svc, repos := setupTestDocumentService()
	seedDocument(repos, "doc-1", "POE-ETQ-001", 1, model.DocumentStatusApproved)

	if err := svc.AssertActiveDocumentCode(context.Background(), "POE-ETQ-001"); err != nil {
		t.Errorf("el documento aprobado sin fechas restrictivas es vigente: %v", err)
	}
}

func TestDocumentService_GetActiveByProcess_FiltersFuture(t *testing.T) {
	svc, repos := setupTestDocumentService()
	doc := seedDocument(repos, "doc-1", "POE-ETQ-001", 1, model.DocumentStatusApproved)
	future := time.Now().Add(48 * time.Hour)
	doc.EffectiveDate = &future

	result, err := svc.GetActiveByProcess(context.Background(), model.ProcessLabeling)
	if err != nil {
		t.Fatalf("GetActiveByProcess debería funcionar: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("un documento con vigencia futura no debe listarse, hay %d", len(result))
	}
}
