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

// ── Errores del módulo de etiquetado ──

var (
	ErrLabelNotFound = errors.New("etiqueta regulatoria no encontrada")
	ErrBatchNotFound = errors.New("lote de producción no encontrado")
)

// LabelService validación de etiquetas regulatorias, síntesis del valor de
// codificación y chequeo de aptitud de despacho
type LabelService interface {
	Upsert(ctx context.Context, req *dto.UpsertLabelRequest, actor string) (*dto.LabelResponse, error)
	GetByID(ctx context.Context, id string) (*dto.LabelResponse, error)
	ListByBatch(ctx context.Context, batchID string) ([]dto.LabelResponse, error)
	// ValidateDispatchReadiness lectura pura (solo emite auditoría); su
	// resultado lo reutiliza tal cual la compuerta de liberación
	ValidateDispatchReadiness(ctx context.Context, batchID string) (*dto.DispatchReadinessResponse, error)
}

type labelService struct {
	repo   *repository.Repository
	cfgSvc SystemConfigService
	docSvc DocumentService
	audit  *auditor
	logger *zap.Logger
}

// NewLabelService crea una instancia de LabelService
func NewLabelService(repo *repository.Repository, cfgSvc SystemConfigService, docSvc DocumentService, logger *zap.Logger) LabelService {
	return &labelService{
		repo:   repo,
		cfgSvc: cfgSvc,
		docSvc: docSvc,
		audit:  newAuditor(repo.Audit, logger),
		logger: logger,
	}
}

// ────────────────────── Upsert ──────────────────────

func (s *labelService) Upsert(ctx context.Context, req *dto.UpsertLabelRequest, actor string) (*dto.LabelResponse, error) {
	// 1. Documento controlado de etiquetado vigente
	snap, err := s.cfgSvc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.docSvc.AssertActiveDocumentCode(ctx, snap.LabelingDocumentCode); err != nil {
		return nil, err
	}

	// 2. Modo de operación global
	if snap.OperationMode == model.OperationModeLot && req.ScopeType == model.LabelScopeSerial {
		return nil, fmt.Errorf("%w: el modo global es %s", ErrModeViolation, snap.OperationMode)
	}

	// 3. Resolución y validación de la unidad destino
	var unit *model.BatchUnit
	switch req.ScopeType {
	case model.LabelScopeSerial:
		if req.BatchUnitID == nil {
			return nil, fmt.Errorf("%w: alcance SERIAL requiere una unidad", ErrScopeMismatch)
		}
		unit, err = s.repo.Batch.GetUnit(ctx, *req.BatchUnitID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: unidad %s no existe", ErrScopeMismatch, *req.BatchUnitID)
			}
			return nil, err
		}
		if unit.ProductionBatchID != req.ProductionBatchID {
			return nil, fmt.Errorf("%w: la unidad no pertenece al lote indicado", ErrScopeMismatch)
		}
	case model.LabelScopeLot:
		if req.BatchUnitID != nil {
			return nil, fmt.Errorf("%w: alcance LOTE no admite unidad", ErrScopeMismatch)
		}
	}

	batch, err := s.repo.Batch.GetByID(ctx, req.ProductionBatchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBatchNotFound
		}
		return nil, err
	}

	// 4. Defaults regulatorios del producto + validez del registro INVIMA
	manufacturerName, invimaCode, err := s.resolveRegulatoryDefaults(ctx, batch.ProductID, req.ManufacturerName, req.InvimaCode)
	if err != nil {
		return nil, err
	}

	manufactureDate, err := time.Parse(dateLayout, req.ManufactureDate)
	if err != nil {
		return nil, fmt.Errorf("manufacture_date inválida: %w", err)
	}
	expirationDate, err := parseDate(req.ExpirationDate)
	if err != nil {
		return nil, fmt.Errorf("expiration_date inválida: %w", err)
	}

	// 5. Código interno por defecto para el estándar INTERNO
	internalCode := req.InternalCode
	if req.CodingStandard == model.CodingStandardInternal && !has(internalCode) {
		def := DefaultInternalCode(req.LotCode, req.SerialCode)
		internalCode = &def
	}

	// 6. Localizar la fila a upsert según la clave de negocio
	label, err := s.findExisting(ctx, req)
	if err != nil {
		return nil, err
	}
	isNew := label == nil
	if isNew {
		label = &model.RegulatoryLabel{}
		label.CreatedBy = &actor
	}

	label.ProductionBatchID = req.ProductionBatchID
	label.BatchUnitID = req.BatchUnitID
	label.ScopeType = req.ScopeType
	label.DeviceType = req.DeviceType
	label.CodingStandard = req.CodingStandard
	label.LotCode = req.LotCode
	label.SerialCode = req.SerialCode
	label.ManufactureDate = manufactureDate
	label.ExpirationDate = expirationDate
	label.GTIN = req.GTIN
	label.UdiDi = req.UdiDi
	label.UdiPi = req.UdiPi
	label.ManufacturerName = manufacturerName
	label.InvimaCode = invimaCode
	label.InternalCode = internalCode
	label.UpdatedBy = &actor

	fields := LabelFields{
		ScopeType:       label.ScopeType,
		DeviceType:      label.DeviceType,
		CodingStandard:  label.CodingStandard,
		LotCode:         label.LotCode,
		SerialCode:      label.SerialCode,
		ManufactureDate: label.ManufactureDate,
		ExpirationDate:  label.ExpirationDate,
		GTIN:            label.GTIN,
		UdiDi:           label.UdiDi,
		UdiPi:           label.UdiPi,
		InternalCode:    label.InternalCode,
	}

	// 7. Validación pura: cualquier error deja la etiqueta BLOQUEADA
	validationErrs := ValidateLabelFields(fields)
	label.ValidationErrors = model.StringArray(validationErrs)
	if len(validationErrs) > 0 {
		label.Status = model.LabelStatusBlocked
	} else {
		label.Status = model.LabelStatusValidated
	}

	// 8. Síntesis pura del valor de codificación
	label.CodingValue = BuildCodingValue(label.CodingStandard, fields)

	if isNew {
		err = s.repo.Label.Create(ctx, label)
	} else {
		err = s.repo.Label.Save(ctx, label)
	}
	if err != nil {
		s.logger.Error("error guardando etiqueta regulatoria", zap.Error(err))
		return nil, err
	}

	s.audit.emit(ctx, "RegulatoryLabel", label.LabelID, "UPSERT", actor, map[string]interface{}{
		"scope_type": label.ScopeType,
		"status":     label.Status,
		"errors":     len(validationErrs),
	})

	resp := toLabelResponse(label)
	return &resp, nil
}

// resolveRegulatoryDefaults fabricante y código INVIMA con fallback al
// registro sanitario vinculado al producto; exige registro ACTIVO y vigente
// cuando el producto lo requiere.
func (s *labelService) resolveRegulatoryDefaults(ctx context.Context, productID string, manufacturerName, invimaCode *string) (*string, *string, error) {
	product, err := s.repo.Product.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Sin producto de referencia no hay defaults que resolver
			return manufacturerName, invimaCode, nil
		}
		return nil, nil, err
	}

	reg := product.Registration
	if reg != nil {
		if !has(manufacturerName) {
			manufacturerName = &reg.ManufacturerName
		}
		if !has(invimaCode) {
			invimaCode = &reg.InvimaCode
		}
	}

	if product.RequiresInvima {
		if !has(invimaCode) {
			return nil, nil, fmt.Errorf("%w: el producto %s exige código INVIMA", ErrRegistrationInvalid, product.Reference)
		}
		if reg != nil {
			now := time.Now()
			if reg.Status != model.RegistrationStatusActive {
				return nil, nil, fmt.Errorf("%w: el registro %s está %s", ErrRegistrationInvalid, reg.InvimaCode, reg.Status)
			}
			if reg.ValidFrom != nil && now.Before(*reg.ValidFrom) {
				return nil, nil, fmt.Errorf("%w: el registro %s aún no está vigente", ErrRegistrationInvalid, reg.InvimaCode)
			}
			if reg.ValidUntil != nil && now.After(*reg.ValidUntil) {
				return nil, nil, fmt.Errorf("%w: el registro %s está vencido", ErrRegistrationInvalid, reg.InvimaCode)
			}
		}
	}

	return manufacturerName, invimaCode, nil
}

// findExisting busca la fila a actualizar según la unicidad de negocio:
// una etiqueta LOTE por lote (unidad nula), una etiqueta SERIAL por unidad.
func (s *labelService) findExisting(ctx context.Context, req *dto.UpsertLabelRequest) (*model.RegulatoryLabel, error) {
	var (
		label *model.RegulatoryLabel
		err   error
	)
	if req.ScopeType == model.LabelScopeSerial {
		label, err = s.repo.Label.GetByUnit(ctx, *req.BatchUnitID)
	} else {
		label, err = s.repo.Label.GetLotLabel(ctx, req.ProductionBatchID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return label, nil
}

// ────────────────────── Consultas ──────────────────────

func (s *labelService) GetByID(ctx context.Context, id string) (*dto.LabelResponse, error) {
	label, err := s.repo.Label.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLabelNotFound
		}
		s.logger.Error("error consultando etiqueta", zap.Error(err))
		return nil, err
	}
	resp := toLabelResponse(label)
	return &resp, nil
}

func (s *labelService) ListByBatch(ctx context.Context, batchID string) ([]dto.LabelResponse, error) {
	labels, err := s.repo.Label.ListByBatch(ctx, batchID)
	if err != nil {
		s.logger.Error("error listando etiquetas del lote", zap.Error(err))
		return nil, err
	}
	out := make([]dto.LabelResponse, 0, len(labels))
	for i := range labels {
		out = append(out, toLabelResponse(&labels[i]))
	}
	return out, nil
}

// ────────────────────── Aptitud de despacho ──────────────────────

func (s *labelService) ValidateDispatchReadiness(ctx context.Context, batchID string) (*dto.DispatchReadinessResponse, error) {
	snap, err := s.cfgSvc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	readinessErrs := []string{}

	// Exactamente una etiqueta LOTE en estado VALIDADA
	lotLabel, err := s.repo.Label.GetLotLabel(ctx, batchID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if lotLabel == nil || lotLabel.Status != model.LabelStatusValidated {
		readinessErrs = append(readinessErrs, "falta la etiqueta de lote validada")
	}

	// En modo serial, cada unidad despachable necesita etiqueta SERIAL validada
	required, validated := 0, 0
	if snap.OperationMode == model.OperationModeSerial {
		units, err := s.repo.Batch.ListDispatchableUnits(ctx, batchID)
		if err != nil {
			return nil, err
		}
		required = len(units)
		unitIDs := make([]string, 0, len(units))
		for _, u := range units {
			unitIDs = append(unitIDs, u.UnitID)
		}
		count, err := s.repo.Label.CountValidatedSerials(ctx, unitIDs)
		if err != nil {
			return nil, err
		}
		validated = int(count)
		if missing := required - validated; missing > 0 {
			readinessErrs = append(readinessErrs,
				fmt.Sprintf("faltan %d etiqueta(s) SERIAL validada(s)", missing))
		}
	}

	result := &dto.DispatchReadinessResponse{
		Eligible:              len(readinessErrs) == 0,
		Errors:                readinessErrs,
		RequiredSerialLabels:  required,
		ValidatedSerialLabels: validated,
	}

	s.audit.emit(ctx, "ProductionBatch", batchID, "VALIDAR_DESPACHO", "", map[string]interface{}{
		"eligible": result.Eligible,
		"errors":   len(readinessErrs),
	})

	return result, nil
}

// ────────────────────── Mapeo ──────────────────────

func toLabelResponse(label *model.RegulatoryLabel) dto.LabelResponse {
	manufactureDate := label.ManufactureDate.Format(dateLayout)
	validationErrs := []string(label.ValidationErrors)
	if validationErrs == nil {
		validationErrs = []string{}
	}
	return dto.LabelResponse{
		ID:                label.LabelID,
		ProductionBatchID: label.ProductionBatchID,
		BatchUnitID:       label.BatchUnitID,
		ScopeType:         label.ScopeType,
		DeviceType:        label.DeviceType,
		CodingStandard:    label.CodingStandard,
		LotCode:           label.LotCode,
		SerialCode:        label.SerialCode,
		ManufactureDate:   manufactureDate,
		ExpirationDate:    formatDate(label.ExpirationDate),
		GTIN:              label.GTIN,
		UdiDi:             label.UdiDi,
		UdiPi:             label.UdiPi,
		ManufacturerName:  label.ManufacturerName,
		InvimaCode:        label.InvimaCode,
		InternalCode:      label.InternalCode,
		CodingValue:       label.CodingValue,
		Status:            label.Status,
		ValidationErrors:  validationErrs,
		CreatedAt:         label.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         label.UpdatedAt.Format(time.RFC3339),
	}
}
