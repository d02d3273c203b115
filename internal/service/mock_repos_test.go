package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"cumplimed/backend/internal/model"
	"cumplimed/backend/internal/repository"
)

// ── Mock DocumentRepository ──

type mockDocumentRepo struct {
	docs map[string]*model.ControlledDocument
	seq  int
}

func newMockDocumentRepo() *mockDocumentRepo {
	return &mockDocumentRepo{docs: make(map[string]*model.ControlledDocument)}
}

func (m *mockDocumentRepo) Create(_ context.Context, doc *model.ControlledDocument) error {
	if doc.DocumentID == "" {
		m.seq++
		doc.DocumentID = fmt.Sprintf("doc-%d", m.seq)
	}
	m.docs[doc.DocumentID] = doc
	return nil
}

func (m *mockDocumentRepo) GetByID(_ context.Context, id string) (*model.ControlledDocument, error) {
	if d, ok := m.docs[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDocumentRepo) List(_ context.Context) ([]model.ControlledDocument, error) {
	var result []model.ControlledDocument
	for _, d := range m.docs {
		result = append(result, *d)
	}
	return result, nil
}

func (m *mockDocumentRepo) Update(_ context.Context, doc *model.ControlledDocument) error {
	m.docs[doc.DocumentID] = doc
	return nil
}

func (m *mockDocumentRepo) ApproveAndDemoteSiblings(_ context.Context, doc *model.ControlledDocument) error {
	for _, d := range m.docs {
		if d.Code == doc.Code && d.DocumentID != doc.DocumentID && d.Status == model.DocumentStatusApproved {
			d.Status = model.DocumentStatusObsolete
		}
	}
	m.docs[doc.DocumentID] = doc
	return nil
}

func (m *mockDocumentRepo) isActive(d *model.ControlledDocument, now time.Time) bool {
	if d.Status != model.DocumentStatusApproved {
		return false
	}
	if d.ExpiresAt != nil && !d.ExpiresAt.After(now) {
		return false
	}
	if d.EffectiveDate != nil && d.EffectiveDate.After(now) {
		return false
	}
	return true
}

func (m *mockDocumentRepo) ListActiveByProcess(_ context.Context, process string, now time.Time) ([]model.ControlledDocument, error) {
	var result []model.ControlledDocument
	for _, d := range m.docs {
		if d.Process == process && m.isActive(d, now) {
			result = append(result, *d)
		}
	}
	return result, nil
}

func (m *mockDocumentRepo) ListActiveByCode(_ context.Context, code string, now time.Time) ([]model.ControlledDocument, error) {
	var result []model.ControlledDocument
	for _, d := range m.docs {
		if d.Code == code && m.isActive(d, now) {
			result = append(result, *d)
		}
	}
	return result, nil
}

// ── Mock ChangeControlRepository ──

type mockChangeControlRepo struct {
	ccs       map[string]*model.ChangeControl
	approvals map[string]*model.ChangeControlApproval // clave ccID+"/"+role
	seq       int
}

func newMockChangeControlRepo() *mockChangeControlRepo {
	return &mockChangeControlRepo{
		ccs:       make(map[string]*model.ChangeControl),
		approvals: make(map[string]*model.ChangeControlApproval),
	}
}

func (m *mockChangeControlRepo) Create(_ context.Context, cc *model.ChangeControl) error {
	if cc.ChangeControlID == "" {
		m.seq++
		cc.ChangeControlID = fmt.Sprintf("cc-%d", m.seq)
	}
	m.ccs[cc.ChangeControlID] = cc
	return nil
}

func (m *mockChangeControlRepo) GetByID(ctx context.Context, id string) (*model.ChangeControl, error) {
	cc, ok := m.ccs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	approvals, _ := m.ListApprovals(ctx, id)
	cc.Approvals = approvals
	return cc, nil
}

func (m *mockChangeControlRepo) List(_ context.Context) ([]model.ChangeControl, error) {
	var result []model.ChangeControl
	for _, cc := range m.ccs {
		result = append(result, *cc)
	}
	return result, nil
}

func (m *mockChangeControlRepo) Update(_ context.Context, cc *model.ChangeControl) error {
	m.ccs[cc.ChangeControlID] = cc
	return nil
}

func (m *mockChangeControlRepo) GetApprovalByRole(_ context.Context, ccID, role string) (*model.ChangeControlApproval, error) {
	if a, ok := m.approvals[ccID+"/"+role]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockChangeControlRepo) SaveApproval(_ context.Context, approval *model.ChangeControlApproval) error {
	if approval.ApprovalID == "" {
		m.seq++
		approval.ApprovalID = fmt.Sprintf("appr-%d", m.seq)
	}
	m.approvals[approval.ChangeControlID+"/"+approval.Role] = approval
	return nil
}

func (m *mockChangeControlRepo) ListApprovals(_ context.Context, ccID string) ([]model.ChangeControlApproval, error) {
	var result []model.ChangeControlApproval
	for _, a := range m.approvals {
		if a.ChangeControlID == ccID {
			result = append(result, *a)
		}
	}
	return result, nil
}

// ── Mock LabelRepository ──

type mockLabelRepo struct {
	labels map[string]*model.RegulatoryLabel
	seq    int
}

func newMockLabelRepo() *mockLabelRepo {
	return &mockLabelRepo{labels: make(map[string]*model.RegulatoryLabel)}
}

func (m *mockLabelRepo) Create(_ context.Context, label *model.RegulatoryLabel) error {
	if label.LabelID == "" {
		m.seq++
		label.LabelID = fmt.Sprintf("lbl-%d", m.seq)
	}
	m.labels[label.LabelID] = label
	return nil
}

func (m *mockLabelRepo) Save(_ context.Context, label *model.RegulatoryLabel) error {
	m.labels[label.LabelID] = label
	return nil
}

func (m *mockLabelRepo) GetByID(_ context.Context, id string) (*model.RegulatoryLabel, error) {
	if l, ok := m.labels[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLabelRepo) GetLotLabel(_ context.Context, batchID string) (*model.RegulatoryLabel, error) {
	for _, l := range m.labels {
		if l.ProductionBatchID == batchID && l.ScopeType == model.LabelScopeLot && l.BatchUnitID == nil {
			return l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLabelRepo) GetByUnit(_ context.Context, unitID string) (*model.RegulatoryLabel, error) {
	for _, l := range m.labels {
		if l.BatchUnitID != nil && *l.BatchUnitID == unitID {
			return l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLabelRepo) ListByBatch(_ context.Context, batchID string) ([]model.RegulatoryLabel, error) {
	var result []model.RegulatoryLabel
	for _, l := range m.labels {
		if l.ProductionBatchID == batchID {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (m *mockLabelRepo) CountValidatedSerials(_ context.Context, unitIDs []string) (int64, error) {
	ids := make(map[string]bool, len(unitIDs))
	for _, id := range unitIDs {
		ids[id] = true
	}
	var count int64
	for _, l := range m.labels {
		if l.ScopeType == model.LabelScopeSerial && l.Status == model.LabelStatusValidated &&
			l.BatchUnitID != nil && ids[*l.BatchUnitID] {
			count++
		}
	}
	return count, nil
}

// ── Mock ReleaseRepository ──

type mockReleaseRepo struct {
	releases map[string]*model.BatchRelease // clave batchID
	seq      int
}

func newMockReleaseRepo() *mockReleaseRepo {
	return &mockReleaseRepo{releases: make(map[string]*model.BatchRelease)}
}

func (m *mockReleaseRepo) Create(_ context.Context, release *model.BatchRelease) error {
	if release.ReleaseID == "" {
		m.seq++
		release.ReleaseID = fmt.Sprintf("rel-%d", m.seq)
	}
	m.releases[release.ProductionBatchID] = release
	return nil
}

func (m *mockReleaseRepo) Save(_ context.Context, release *model.BatchRelease) error {
	m.releases[release.ProductionBatchID] = release
	return nil
}

func (m *mockReleaseRepo) GetByBatch(_ context.Context, batchID string) (*model.BatchRelease, error) {
	if r, ok := m.releases[batchID]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock RecallRepository ──

type mockRecallRepo struct {
	recalls       map[string]*model.RecallCase
	notifications []model.RecallNotification
	seq           int
}

func newMockRecallRepo() *mockRecallRepo {
	return &mockRecallRepo{recalls: make(map[string]*model.RecallCase)}
}

func (m *mockRecallRepo) Create(_ context.Context, recall *model.RecallCase) error {
	if recall.RecallID == "" {
		m.seq++
		recall.RecallID = fmt.Sprintf("rec-%d", m.seq)
	}
	m.recalls[recall.RecallID] = recall
	return nil
}

func (m *mockRecallRepo) GetByID(ctx context.Context, id string) (*model.RecallCase, error) {
	recall, ok := m.recalls[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	recall.Notifications, _ = m.ListNotifications(ctx, id)
	return recall, nil
}

func (m *mockRecallRepo) List(_ context.Context) ([]model.RecallCase, error) {
	var result []model.RecallCase
	for _, r := range m.recalls {
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockRecallRepo) Update(_ context.Context, recall *model.RecallCase) error {
	m.recalls[recall.RecallID] = recall
	return nil
}

func (m *mockRecallRepo) AddNotification(_ context.Context, notification *model.RecallNotification) error {
	if notification.NotificationID == "" {
		m.seq++
		notification.NotificationID = fmt.Sprintf("ntf-%d", m.seq)
	}
	m.notifications = append(m.notifications, *notification)
	return nil
}

func (m *mockRecallRepo) ListNotifications(_ context.Context, recallID string) ([]model.RecallNotification, error) {
	var result []model.RecallNotification
	for _, n := range m.notifications {
		if n.RecallID == recallID {
			result = append(result, n)
		}
	}
	return result, nil
}

// ── Mock BatchRepository ──

type mockBatchRepo struct {
	batches map[string]*model.ProductionBatch
	units   map[string]*model.BatchUnit
}

func newMockBatchRepo() *mockBatchRepo {
	return &mockBatchRepo{
		batches: make(map[string]*model.ProductionBatch),
		units:   make(map[string]*model.BatchUnit),
	}
}

func (m *mockBatchRepo) GetByID(_ context.Context, id string) (*model.ProductionBatch, error) {
	if b, ok := m.batches[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBatchRepo) GetUnit(_ context.Context, unitID string) (*model.BatchUnit, error) {
	if u, ok := m.units[unitID]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBatchRepo) ListDispatchableUnits(_ context.Context, batchID string) ([]model.BatchUnit, error) {
	var result []model.BatchUnit
	for _, u := range m.units {
		if u.ProductionBatchID == batchID && u.Packaged && u.QCPassed && !u.Rejected {
			result = append(result, *u)
		}
	}
	return result, nil
}

// ── Mock ProductRepository ──

type mockProductRepo struct {
	products map[string]*model.Product
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[string]*model.Product)}
}

func (m *mockProductRepo) GetByID(_ context.Context, id string) (*model.Product, error) {
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock DeviationRepository ──

type mockDeviationRepo struct {
	issues map[string][]string // batchID → descripciones abiertas
}

func newMockDeviationRepo() *mockDeviationRepo {
	return &mockDeviationRepo{issues: make(map[string][]string)}
}

func (m *mockDeviationRepo) ListOpenIssues(_ context.Context, batchID string) ([]string, error) {
	return m.issues[batchID], nil
}

// ── Mock SystemConfigRepository ──

type mockSystemConfigRepo struct {
	cfg *model.SystemConfig
}

func newMockSystemConfigRepo() *mockSystemConfigRepo {
	return &mockSystemConfigRepo{
		cfg: &model.SystemConfig{
			ConfigID:             "cfg-1",
			OperationMode:        model.OperationModeLot,
			LabelingDocumentCode: "POE-ETQ-001",
			ReleaseDocumentCode:  "POE-LIB-001",
		},
	}
}

func (m *mockSystemConfigRepo) Get(_ context.Context) (*model.SystemConfig, error) {
	if m.cfg == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.cfg, nil
}

func (m *mockSystemConfigRepo) Update(_ context.Context, cfg *model.SystemConfig) error {
	m.cfg = cfg
	return nil
}

// ── Mock AuditRepository ──

type mockAuditRepo struct {
	entries []model.AuditLog
}

func newMockAuditRepo() *mockAuditRepo {
	return &mockAuditRepo{}
}

func (m *mockAuditRepo) Log(_ context.Context, entry *model.AuditLog) error {
	m.entries = append(m.entries, *entry)
	return nil
}

// ── Ensamble ──

// testRepos agrupa los mocks para que cada prueba pueda sembrar estado
type testRepos struct {
	document      *mockDocumentRepo
	changeControl *mockChangeControlRepo
	label         *mockLabelRepo
	release       *mockReleaseRepo
	recall        *mockRecallRepo
	batch         *mockBatchRepo
	product       *mockProductRepo
	deviation     *mockDeviationRepo
	systemConfig  *mockSystemConfigRepo
	audit         *mockAuditRepo
}

func newTestRepos() *testRepos {
	return &testRepos{
		document:      newMockDocumentRepo(),
		changeControl: newMockChangeControlRepo(),
		label:         newMockLabelRepo(),
		release:       newMockReleaseRepo(),
		recall:        newMockRecallRepo(),
		batch:         newMockBatchRepo(),
		product:       newMockProductRepo(),
		deviation:     newMockDeviationRepo(),
		systemConfig:  newMockSystemConfigRepo(),
		audit:         newMockAuditRepo(),
	}
}

func (t *testRepos) repository() *repository.Repository {
	return &repository.Repository{
		Document:      t.document,
		ChangeControl: t.changeControl,
		Label:         t.label,
		Release:       t.release,
		Recall:        t.recall,
		Batch:         t.batch,
		Product:       t.product,
		Deviation:     t.deviation,
		SystemConfig:  t.systemConfig,
		Audit:         t.audit,
	}
}
