package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de inventario.
const (
	MovementTypeReceipt     = "receipt"     // entrada por recepción
	MovementTypeTransfer    = "transfer"    // traslado entre ubicaciones
	MovementTypeConsumption = "consumption" // salida / consumo
	MovementTypeAdjustment  = "adjustment"  // ajuste con signo
)

// MovementIDPrefix prefijo del identificador legible de movimiento.
const MovementIDPrefix = "MOV"

// StockMovement es una entrada inmutable del libro de movimientos.
// Quantity lleva signo según el tipo: receipt positivo, consumption negativo, adjustment con signo.
// Sequence es el número asignado al confirmar; MovementID es su forma legible (MOV0001).
type StockMovement struct {
	ID           string
	MovementID   string
	Sequence     int64
	Timestamp    time.Time
	Type         string
	SKU          string
	ItemName     string
	Quantity     decimal.Decimal
	FromLocation string // código de ubicación origen, vacío si no aplica
	ToLocation   string // código de ubicación destino, vacío si no aplica
	Reference    string // número de orden de compra, nota de ajuste, etc.
	PerformedBy  string
	Notes        string
}

// FormatMovementID formatea una secuencia como MOV0001. Secuencias mayores a 9999 crecen en ancho.
func FormatMovementID(seq int64) string {
	return fmt.Sprintf("%s%04d", MovementIDPrefix, seq)
}

// ParseMovementSequence extrae la secuencia numérica de un identificador MOV0001.
func ParseMovementSequence(movementID string) (int64, bool) {
	digits, ok := strings.CutPrefix(movementID, MovementIDPrefix)
	if !ok || digits == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// ValidMovementType indica si t es un tipo de movimiento soportado.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeReceipt, MovementTypeTransfer, MovementTypeConsumption, MovementTypeAdjustment:
		return true
	}
	return false
}
