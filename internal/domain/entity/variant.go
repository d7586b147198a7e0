package entity

// VariantDimension es un eje de variación de un producto (ej. "Color", "Size").
// Position conserva el orden de declaración y define el orden de composición del código SKU.
type VariantDimension struct {
	ID        string
	ProductID string
	Name      string
	Position  int64
	Options   []*VariantOption
}

// VariantOption es un valor concreto de una dimensión (ej. "Red").
type VariantOption struct {
	ID          string
	DimensionID string
	Value       string
	Position    int64
}
