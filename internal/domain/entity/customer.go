package entity

import "time"

// Tipos de cliente.
const (
	CustomerTypeB2B = "B2B"
	CustomerTypeB2C = "B2C"
)

// Customer representa un cliente. TotalPurchase acumula el total de sus pedidos.
type Customer struct {
	ID             ID        `json:"id"`
	Code           string    `json:"code"` // CST-NNN
	Name           string    `json:"name"`
	Contact        string    `json:"contact"`
	Email          string    `json:"email"`
	Address        string    `json:"address"`
	Manager        string    `json:"manager"`
	ManagerPhone   string    `json:"managerPhone"`
	CustomerType   string    `json:"customerType"`
	Grade          string    `json:"grade,omitempty"`
	TotalPurchase  int64     `json:"totalPurchase"`
	RegisteredDate time.Time `json:"registeredDate"`
}
