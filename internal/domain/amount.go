package domain

import (
	"fmt"
	"math"
)

// MulAmount cantidad*precio en KRW. Operandos negativos o un producto fuera de int64 son ErrInvalidInput.
func MulAmount(quantity, price int64) (int64, error) {
	if quantity < 0 || price < 0 {
		return 0, ErrInvalidInput
	}
	if price != 0 && quantity > math.MaxInt64/price {
		return 0, fmt.Errorf("importe %d x %d desborda: %w", quantity, price, ErrInvalidInput)
	}
	return quantity * price, nil
}

// AddAmount suma importes no negativos sin desbordar.
func AddAmount(a, b int64) (int64, error) {
	if a < 0 || b < 0 {
		return 0, ErrInvalidInput
	}
	if a > math.MaxInt64-b {
		return 0, fmt.Errorf("importe %d + %d desborda: %w", a, b, ErrInvalidInput)
	}
	return a + b, nil
}
