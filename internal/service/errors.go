package service

import "errors"

// ── Taxonomía de errores de negocio del núcleo de cumplimiento ──
// Todos son síncronos y abortan la operación completa; los handlers los
// traducen a HTTP con errors.Is.

var (
	// ErrInvalidState operación intentada desde un estado que no la permite
	ErrInvalidState = errors.New("la operación no está permitida en el estado actual")

	// ErrQuorumNotMet aprobaciones insuficientes para el nivel de impacto
	ErrQuorumNotMet = errors.New("quórum de aprobaciones insuficiente")

	// ErrQuorumRejected existe al menos una aprobación rechazada
	ErrQuorumRejected = errors.New("el control de cambios tiene aprobaciones rechazadas")

	// ErrMissingControlledDocument no hay documento controlado vigente para el proceso/código obligatorio
	ErrMissingControlledDocument = errors.New("no existe documento controlado vigente")

	// ErrModeViolation operación de alcance SERIAL con el modo global en lote
	ErrModeViolation = errors.New("operación serial no permitida en modo lote")

	// ErrScopeMismatch inconsistencia unidad/lote/alcance de etiqueta
	ErrScopeMismatch = errors.New("alcance inconsistente entre etiqueta, lote y unidad")

	// ErrRegistrationInvalid registro INVIMA faltante, inactivo o fuera de vigencia
	ErrRegistrationInvalid = errors.New("registro sanitario INVIMA inválido")

	// ErrReleaseBlocked alguno de los pasos de la compuerta de liberación falló
	ErrReleaseBlocked = errors.New("liberación bloqueada")

	// ErrInvalidQuantity cantidad recuperada mayor que la afectada
	ErrInvalidQuantity = errors.New("la cantidad recuperada no puede superar la afectada")
)
