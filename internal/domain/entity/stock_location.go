package entity

import "time"

// Tipos de ubicación de stock.
const (
	LocationTypeWarehouse = "warehouse"
	LocationTypeSite      = "site"
)

// Estados de ubicación.
const (
	LocationStatusActive   = "active"
	LocationStatusInactive = "inactive"
)

// StockLocation representa una bodega o sitio donde se almacena inventario.
// Code es el identificador legible (p. ej. LOC001) que se registra en el libro de movimientos.
type StockLocation struct {
	ID        string
	Code      string
	Name      string
	Type      string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive indica si la ubicación acepta movimientos.
func (l *StockLocation) IsActive() bool {
	return l.Status == LocationStatusActive
}

// ValidLocationType indica si t es un tipo de ubicación soportado.
func ValidLocationType(t string) bool {
	return t == LocationTypeWarehouse || t == LocationTypeSite
}

// ValidLocationStatus indica si s es un estado de ubicación soportado.
func ValidLocationStatus(s string) bool {
	return s == LocationStatusActive || s == LocationStatusInactive
}
