package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidTransition  = errors.New("transición de estado inválida")
	ErrScheduleConflict   = errors.New("el mecánico ya tiene una cita en ese horario")
)

// InsufficientStockError identifica el repuesto cuyo stock no alcanza.
// Envuelve ErrInsufficientStock para que errors.Is siga funcionando en los handlers.
type InsufficientStockError struct {
	PartID    string
	PartName  string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return "stock insuficiente para " + e.PartName + " (" + e.PartID + ")"
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
