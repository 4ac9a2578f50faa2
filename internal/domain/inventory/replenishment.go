// Package inventory contiene reglas de dominio del stock que no dependen del estado.
package inventory

import "github.com/shopspring/decimal"

// IdealStockFactor multiplicador del mínimo que define el stock ideal tras reponer.
var IdealStockFactor = decimal.RequireFromString("1.5")

// IdealStock = ceil(minQuantity * IdealStockFactor). Un mínimo <= 0 da 0.
func IdealStock(minQuantity int64) int64 {
	if minQuantity <= 0 {
		return 0
	}
	return decimal.NewFromInt(minQuantity).Mul(IdealStockFactor).Ceil().IntPart()
}

// OrderQuantity unidades a pedir para llegar al stock ideal (nunca negativo).
func OrderQuantity(current, minQuantity int64) int64 {
	qty := IdealStock(minQuantity) - current
	if qty < 0 {
		return 0
	}
	return qty
}

// Shortfall déficit contra el mínimo; 0 si el producto está en o sobre su mínimo.
func Shortfall(current, minQuantity int64) int64 {
	if current >= minQuantity {
		return 0
	}
	return minQuantity - current
}
