package ports

import "context"

// Metrics define el puerto de salida para los contadores de negocio.
// El adaptador Prometheus vive en infrastructure/metrics; NopMetrics sirve para tests.
type Metrics interface {
	// SaleRecorded cuenta una venta y suma su importe (KRW).
	SaleRecorded(amount int64)
	// ClosingCreated cuenta un cierre mensual creado.
	ClosingCreated()
	// ClosingRejected cuenta un intento de cierre rechazado (reason: duplicate, locked, invalid).
	ClosingRejected(reason string)
}

// PeriodLocker bloqueo distribuido opcional alrededor del cierre de un período.
// Lock devuelve ErrPeriodLocked si otro proceso tiene el período tomado.
type PeriodLocker interface {
	Lock(ctx context.Context, key string) (unlock func(context.Context) error, err error)
}

// NopMetrics implementación vacía de Metrics.
type NopMetrics struct{}

func (NopMetrics) SaleRecorded(int64) {}
func (NopMetrics) ClosingCreated() {}
func (NopMetrics) ClosingRejected(string) {}

var _ Metrics = NopMetrics{}
