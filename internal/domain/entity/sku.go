package entity

import "time"

// SKU es una variante concreta de un producto: exactamente una opción por dimensión.
type SKU struct {
	ID        string
	ProductID string
	Code      string
	Seq       int64 // orden de creación, asignado por el almacenamiento
	Options   []SKUOption
	CreatedAt time.Time
}

// SKUOption asigna una opción de una dimensión a un SKU. Los nombres se completan al leer.
type SKUOption struct {
	SKUID         string
	DimensionID   string
	OptionID      string
	DimensionName string
	OptionValue   string
}
