package dto

import (
	"encoding/json"
	"fmt"
)

// DecimalText conserva el texto literal de un decimal recibido en JSON. Acepta tanto
// "0.1" como 0.1; la validación del valor queda para el motor de préstamos.
type DecimalText string

// UnmarshalJSON acepta un string o un número JSON.
func (d *DecimalText) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = DecimalText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("se esperaba un número o un texto: %w", err)
	}
	*d = DecimalText(n)
	return nil
}

// Raw devuelve el texto recibido, o nil si el campo no vino.
func (d *DecimalText) Raw() *string {
	if d == nil {
		return nil
	}
	s := string(*d)
	return &s
}
