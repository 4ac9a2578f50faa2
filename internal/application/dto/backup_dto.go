package dto

import (
	"encoding/json"
	"time"

	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
)

// BackupDocument archivo de respaldo del inventario.
// products y transactions son obligatorios al importar; el resto es opcional.
type BackupDocument struct {
	Products        []entity.Product        `json:"products"`
	Transactions    []entity.Transaction    `json:"transactions"`
	Categories      []string                `json:"categories,omitempty"`
	Sales           []entity.Sale           `json:"sales,omitempty"`
	MonthlyClosings []entity.MonthlyClosing `json:"monthlyClosings,omitempty"`
	Quotes          []entity.Quote          `json:"quotes,omitempty"`
	ExportDate      time.Time               `json:"exportDate"`
}

// ImportResultDTO resumen de una importación.
type ImportResultDTO struct {
	Products     int `json:"products"`
	Transactions int `json:"transactions"`
	Sales        int `json:"sales"`
	Closings     int `json:"closings"`
	Quotes       int `json:"quotes"`
}

// RawBackup se usa para verificar la presencia de las claves obligatorias.
type RawBackup map[string]json.RawMessage
