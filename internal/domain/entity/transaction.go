package entity

import "time"

// Tipos de transacción de stock.
const (
	TransactionTypeIn  = "in"  // entrada
	TransactionTypeOut = "out" // salida
)

// Transaction movimiento de stock. Inmutable; el log es append-only (más reciente primero).
type Transaction struct {
	ID        ID        `json:"id"`
	ProductID ID        `json:"productId"`
	Type      string    `json:"type"`
	Quantity  int64     `json:"quantity"` // siempre positiva; el signo lo da Type
	Date      time.Time `json:"date"`
	Note      string    `json:"note"`
	User      string    `json:"user"`
}
