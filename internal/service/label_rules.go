package service

import (
	"fmt"
	"strings"
	"time"

	"cumplimed/backend/internal/model"
)

// LabelFields campos de una etiqueta relevantes para validación y codificación.
// Las dos funciones sobre este tipo son transformaciones puras y deterministas:
// ni leen ni escriben estado.
type LabelFields struct {
	ScopeType       string
	DeviceType      string
	CodingStandard  string
	LotCode         string
	SerialCode      *string
	ManufactureDate time.Time // el valor cero significa ausente
	ExpirationDate  *time.Time
	GTIN            *string
	UdiDi           *string
	UdiPi           *string
	InternalCode    *string
}

func has(s *string) bool { return s != nil && *s != "" }

// ValidateLabelFields valida los campos de la etiqueta según alcance, clase de
// dispositivo y estándar de codificación. Nunca lanza pánico; una etiqueta con
// errores persiste en estado BLOQUEADA.
func ValidateLabelFields(f LabelFields) []string {
	errs := []string{}

	if f.LotCode == "" {
		errs = append(errs, "lotCode es obligatorio")
	}
	if f.ManufactureDate.IsZero() {
		errs = append(errs, "manufactureDate es obligatoria")
	}
	if f.ScopeType == model.LabelScopeSerial && !has(f.SerialCode) {
		errs = append(errs, "serialCode es obligatorio para alcance SERIAL")
	}
	// Solo los dispositivos CLASE_I pueden omitir la fecha de vencimiento
	if f.ExpirationDate == nil && f.DeviceType != model.DeviceTypeClassI {
		errs = append(errs, "expirationDate es obligatoria para dispositivos "+f.DeviceType)
	}

	switch f.CodingStandard {
	case model.CodingStandardGS1:
		if !has(f.GTIN) {
			errs = append(errs, "gtin es obligatorio para el estándar GS1")
		}
	case model.CodingStandardHIBCC:
		if !has(f.UdiDi) {
			errs = append(errs, "udiDi es obligatorio para el estándar HIBCC")
		}
	case model.CodingStandardInternal:
		if !has(f.InternalCode) {
			errs = append(errs, "internalCode es obligatorio para el estándar INTERNO")
		}
	}

	return errs
}

// BuildCodingValue sintetiza el valor de codificación según el estándar:
//
//	GS1:     (01){gtin}(10){lot}[(17){AAMMDD venc.}][(21){serial}]
//	HIBCC:   HIBCC-{udiDi}-{lot}[-{serial}][-{udiPi}]
//	INTERNO: el código interno tal cual
func BuildCodingValue(standard string, f LabelFields) string {
	switch standard {
	case model.CodingStandardGS1:
		var b strings.Builder
		gtin := ""
		if f.GTIN != nil {
			gtin = *f.GTIN
		}
		fmt.Fprintf(&b, "(01)%s(10)%s", gtin, f.LotCode)
		if f.ExpirationDate != nil {
			fmt.Fprintf(&b, "(17)%s", f.ExpirationDate.Format("060102"))
		}
		if has(f.SerialCode) {
			fmt.Fprintf(&b, "(21)%s", *f.SerialCode)
		}
		return b.String()

	case model.CodingStandardHIBCC:
		udiDi := ""
		if f.UdiDi != nil {
			udiDi = *f.UdiDi
		}
		parts := []string{"HIBCC", udiDi, f.LotCode}
		if has(f.SerialCode) {
			parts = append(parts, *f.SerialCode)
		}
		if has(f.UdiPi) {
			parts = append(parts, *f.UdiPi)
		}
		return strings.Join(parts, "-")

	case model.CodingStandardInternal:
		if f.InternalCode != nil {
			return *f.InternalCode
		}
		return ""
	}
	return ""
}

// DefaultInternalCode valor por defecto del código interno para el estándar
// INTERNO: "{lote}-{serial}" si hay serial, el lote en caso contrario.
func DefaultInternalCode(lotCode string, serialCode *string) string {
	if has(serialCode) {
		return lotCode + "-" + *serialCode
	}
	return lotCode
}
