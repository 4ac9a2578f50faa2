package entity

import "time"

// Namespaces de persistencia (uno por almacén lógico).
const (
	NamespaceInventory = "saeron-inventory-storage"
	NamespaceSales     = "saeron-sales-storage"
)

// StateSnapshot contenido serializado de un namespace junto con su versión.
// Version 0 significa que el namespace aún no existe en el almacén.
type StateSnapshot struct {
	Namespace string
	Payload   []byte
	Version   int64
	UpdatedAt time.Time
}
