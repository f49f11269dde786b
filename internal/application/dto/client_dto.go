package dto

import "time"

// CreateClientRequest entrada para crear un cliente.
type CreateClientRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	ContactName  string `json:"contact_name" validate:"omitempty,max=200"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	Website      string `json:"website" validate:"omitempty,url"`
	Notes        string `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateClientRequest entrada para actualizar un cliente (campos opcionales).
type UpdateClientRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=200"`
	ContactName  *string `json:"contact_name" validate:"omitempty,max=200"`
	ContactEmail *string `json:"contact_email" validate:"omitempty,email"`
	Website      *string `json:"website" validate:"omitempty,url"`
	Notes        *string `json:"notes" validate:"omitempty,max=2000"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ContactName  string    `json:"contact_name"`
	ContactEmail string    `json:"contact_email"`
	Website      string    `json:"website"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ClientListResponse lista paginada de clientes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
