package entity

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// ID identificador de entidad. En JSON acepta string o número: los respaldos
// del sistema anterior usan timestamps numéricos como id.
type ID string

// NewID genera un ID nuevo (UUID v4).
func NewID() ID {
	return ID(uuid.New().String())
}

// UnmarshalJSON acepta "abc", 1700000000000 o null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id inválido %s: %w", string(b), err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }
