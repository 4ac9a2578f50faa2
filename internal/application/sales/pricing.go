package sales

import (
	"fmt"
	"strings"

	"github.com/jhoicas/saeron-inventario/internal/domain"
)

// PricingPolicy decide cómo se trata el total enviado por el cliente al registrar una venta.
type PricingPolicy string

const (
	// PricingAllowDiscount acepta un total entre 0 y cantidad*precio (descuento manual).
	PricingAllowDiscount PricingPolicy = "allow-discount"
	// PricingStrict exige que el total, si viene, sea exactamente cantidad*precio.
	PricingStrict PricingPolicy = "strict"
)

// ParsePricingPolicy interpreta el valor de configuración (vacío = allow-discount).
func ParsePricingPolicy(s string) (PricingPolicy, error) {
	switch PricingPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PricingAllowDiscount:
		return PricingAllowDiscount, nil
	case PricingStrict:
		return PricingStrict, nil
	default:
		return "", fmt.Errorf("política de precios desconocida %q", s)
	}
}

// Total calcula el total de la venta según la política. requested nil significa recalcular.
func (p PricingPolicy) Total(quantity, unitPrice int64, requested *int64) (int64, error) {
	list, err := domain.MulAmount(quantity, unitPrice)
	if err != nil {
		return 0, err
	}
	if requested == nil {
		return list, nil
	}
	t := *requested
	switch p {
	case PricingStrict:
		if t != list {
			return 0, fmt.Errorf("total %d distinto de %d: %w", t, list, domain.ErrInvalidInput)
		}
	default:
		if t < 0 || t > list {
			return 0, fmt.Errorf("total %d fuera de [0, %d]: %w", t, list, domain.ErrInvalidInput)
		}
	}
	return t, nil
}
