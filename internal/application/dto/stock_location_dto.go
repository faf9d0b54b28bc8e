package dto

import "time"

// CreateStockLocationRequest entrada para crear una ubicación.
type CreateStockLocationRequest struct {
	Code   string `json:"code" validate:"required,min=1,max=50"`
	Name   string `json:"name" validate:"required,min=1,max=200"`
	Type   string `json:"type" validate:"omitempty,oneof=warehouse site"`
	Status string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// UpdateStockLocationRequest entrada para actualizar nombre y estado (código y tipo son inmutables).
type UpdateStockLocationRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=200"`
	Status *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// StockLocationResponse salida de una ubicación.
type StockLocationResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StockLocationListResponse lista paginada de ubicaciones.
type StockLocationListResponse struct {
	Items []StockLocationResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
