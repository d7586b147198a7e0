package inventory

import (
	"strings"

	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain"
	"github.com/ashiqmuneeb/Inventory-Pro/internal/domain/entity"
)

// SKUDelimiter separa el código de producto y los valores de opción en un código SKU.
const SKUDelimiter = "-"

// Choice es la opción elegida para una dimensión dentro de una combinación.
type Choice struct {
	Dimension *entity.VariantDimension
	Option    *entity.VariantOption
}

// Combination es una opción por dimensión, en el orden de las dimensiones.
type Combination []Choice

// Values devuelve los valores de opción en orden de dimensión.
func (c Combination) Values() []string {
	out := make([]string, len(c))
	for i, ch := range c {
		out[i] = ch.Option.Value
	}
	return out
}

// Combinations calcula el producto cartesiano de las opciones de cada dimensión.
// Sin dimensiones, o con alguna dimensión vacía, no hay combinaciones.
// El orden es lexicográfico respecto a la posición de dimensiones y opciones (la última dimensión varía más rápido).
func Combinations(dims []*entity.VariantDimension) []Combination {
	if len(dims) == 0 {
		return nil
	}
	total := 1
	for _, d := range dims {
		if len(d.Options) == 0 {
			return nil
		}
		total *= len(d.Options)
	}

	out := make([]Combination, 0, total)
	idx := make([]int, len(dims))
	for {
		combo := make(Combination, len(dims))
		for i, d := range dims {
			combo[i] = Choice{Dimension: d, Option: d.Options[idx[i]]}
		}
		out = append(out, combo)

		// odómetro: avanza la última dimensión y acarrea hacia la izquierda
		i := len(dims) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(dims[i].Options) {
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			return out
		}
	}
}

// ComposeSKUCode une el código de producto con los valores de opción usando SKUDelimiter.
func ComposeSKUCode(productCode string, values []string) string {
	parts := make([]string, 0, len(values)+1)
	parts = append(parts, productCode)
	parts = append(parts, values...)
	return strings.Join(parts, SKUDelimiter)
}

// DimensionSpec es la declaración de una dimensión con sus opciones, previa a persistirse.
type DimensionSpec struct {
	Name    string
	Options []string
}

// NormalizeDimensions normaliza nombres y valores (NFC + trim) y valida la declaración:
// nombres de dimensión únicos por producto, valores únicos por dimensión y sin el delimitador.
// field es el prefijo usado para reportar los campos inválidos.
func NormalizeDimensions(field string, specs []DimensionSpec) ([]DimensionSpec, error) {
	verr := &domain.ValidationError{}
	out := make([]DimensionSpec, 0, len(specs))
	seenDims := make(map[string]struct{}, len(specs))
	for i, s := range specs {
		name := NormalizeText(s.Name)
		dimField := field + "[" + itoa(i) + "].name"
		switch {
		case name == "":
			verr.Add(dimField, "el nombre de la dimensión es obligatorio")
		default:
			if _, dup := seenDims[name]; dup {
				verr.Add(dimField, "dimensión duplicada: "+name)
			}
			seenDims[name] = struct{}{}
		}

		values := make([]string, 0, len(s.Options))
		seenValues := make(map[string]struct{}, len(s.Options))
		for j, raw := range s.Options {
			v := NormalizeText(raw)
			optField := field + "[" + itoa(i) + "].options[" + itoa(j) + "]"
			if msg := validateSegment(v); msg != "" {
				verr.Add(optField, msg)
				continue
			}
			if _, dup := seenValues[v]; dup {
				verr.Add(optField, "opción duplicada: "+v)
				continue
			}
			seenValues[v] = struct{}{}
			values = append(values, v)
		}
		out = append(out, DimensionSpec{Name: name, Options: values})
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

// ValidateProductCode normaliza y valida un código de producto.
func ValidateProductCode(code string) (string, error) {
	c := NormalizeText(code)
	if msg := validateSegment(c); msg != "" {
		return "", domain.NewValidationError("code", msg)
	}
	return c, nil
}

// ValidateOptionValue normaliza y valida un valor de opción suelto.
func ValidateOptionValue(field, value string) (string, error) {
	v := NormalizeText(value)
	if msg := validateSegment(v); msg != "" {
		return "", domain.NewValidationError(field, msg)
	}
	return v, nil
}

// validateSegment revisa un segmento de código SKU; devuelve el mensaje de error o "".
func validateSegment(s string) string {
	switch {
	case s == "":
		return "no puede estar vacío"
	case strings.Contains(s, SKUDelimiter):
		return "no puede contener el delimitador \"" + SKUDelimiter + "\""
	}
	return ""
}
