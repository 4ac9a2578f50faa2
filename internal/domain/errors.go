package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrPeriodAlreadyClosed = errors.New("el período ya está cerrado")
	ErrPeriodLocked        = errors.New("el período está siendo cerrado por otro proceso")
	ErrInvalidImportFormat = errors.New("formato de archivo inválido")
)
