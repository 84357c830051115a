package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Oficinas is a user's office assignment: none, a single office, or a set of
// offices. The column predates the multi-office feature, so stored values can
// be NULL, a bare office name, or a JSON string array; Scan accepts all three
// and Value writes the most compact form back.
type Oficinas struct {
	valores []string
}

func OficinaUnica(nombre string) Oficinas {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return Oficinas{}
	}
	return Oficinas{valores: []string{nombre}}
}

func VariasOficinas(nombres []string) Oficinas {
	limpios := make([]string, 0, len(nombres))
	for _, n := range nombres {
		n = strings.TrimSpace(n)
		if n != "" {
			limpios = append(limpios, n)
		}
	}
	return Oficinas{valores: limpios}
}

func (o Oficinas) Vacia() bool { return len(o.valores) == 0 }

func (o Oficinas) EsMultiple() bool { return len(o.valores) > 1 }

// Unica returns the office name when exactly one is assigned.
func (o Oficinas) Unica() (string, bool) {
	if len(o.valores) == 1 {
		return o.valores[0], true
	}
	return "", false
}

func (o Oficinas) Lista() []string {
	out := make([]string, len(o.valores))
	copy(out, o.valores)
	return out
}

// MarshalJSON mirrors the wire shape clients already expect: null, a plain
// string, or an array.
func (o Oficinas) MarshalJSON() ([]byte, error) {
	switch len(o.valores) {
	case 0:
		return []byte("null"), nil
	case 1:
		return json.Marshal(o.valores[0])
	default:
		return json.Marshal(o.valores)
	}
}

func (o *Oficinas) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		o.valores = nil
		return nil
	}
	if strings.HasPrefix(s, "[") {
		var lista []string
		if err := json.Unmarshal(data, &lista); err != nil {
			return err
		}
		*o = VariasOficinas(lista)
		return nil
	}
	var una string
	if err := json.Unmarshal(data, &una); err != nil {
		return err
	}
	*o = OficinaUnica(una)
	return nil
}

func (o Oficinas) Value() (driver.Value, error) {
	switch len(o.valores) {
	case 0:
		return nil, nil
	case 1:
		return o.valores[0], nil
	default:
		b, err := json.Marshal(o.valores)
		if err != nil {
			return nil, err
		}
		return string(b), nil
	}
}

func (o *Oficinas) Scan(src any) error {
	if src == nil {
		o.valores = nil
		return nil
	}
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("oficinas: cannot scan %T", src)
	}

	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		o.valores = nil
		return nil
	}
	if strings.HasPrefix(s, "[") {
		var lista []string
		if err := json.Unmarshal([]byte(s), &lista); err == nil {
			*o = VariasOficinas(lista)
			return nil
		}
		// legacy rows may hold a literal name starting with '['
	}
	*o = OficinaUnica(s)
	return nil
}
