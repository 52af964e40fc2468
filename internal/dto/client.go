package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/payzen/payzen_backend/internal/core/domain"
)

// CreateClientRequest is the body for adding a client.
type CreateClientRequest struct {
	FirstName   string `json:"firstName" validate:"required,max=60"`
	LastName    string `json:"lastName" validate:"required,max=60"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required,clientphone"`
	Address     string `json:"address" validate:"required,max=255"`
}

// UpdateClientRequest defines the client fields that may change.
type UpdateClientRequest struct {
	FirstName   *string `json:"firstName" validate:"omitempty,max=60"`
	LastName    *string `json:"lastName" validate:"omitempty,max=60"`
	Email       *string `json:"email" validate:"omitempty,email"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,clientphone"`
	Address     *string `json:"address" validate:"omitempty,max=255"`
}

// ClientQuery holds the query string parameters for listing clients.
type ClientQuery struct {
	Page    int    `form:"page"`
	Limit   int    `form:"limit"`
	Name    string `form:"name"`
	Email   string `form:"email"`
	Include string `form:"include"` // comma separated response fields
	Exclude string `form:"exclude"`
}

// ClientResponse is the public view of a client.
type ClientResponse struct {
	ClientID          string    `json:"clientID"`
	ClientName        string    `json:"clientName"`
	ClientEmail       string    `json:"clientEmail"`
	ClientPhoneNumber string    `json:"clientPhoneNumber"`
	ClientAddress     string    `json:"clientAddress"`
	InvoiceSequence   int64     `json:"invoiceSequence"`
	CreatedAt         time.Time `json:"createdAt"`
}

// ToClientResponse converts a domain.Client to a ClientResponse DTO
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:          c.ClientID,
		ClientName:        c.ClientName,
		ClientEmail:       c.ClientEmail,
		ClientPhoneNumber: c.ClientPhoneNumber,
		ClientAddress:     c.ClientAddress,
		InvoiceSequence:   c.InvoiceSequence,
		CreatedAt:         c.CreatedAt,
	}
}

// clientFields maps selectable field names to their value in a ClientResponse.
var clientFields = map[string]func(ClientResponse) any{
	"clientID":          func(c ClientResponse) any { return c.ClientID },
	"clientName":        func(c ClientResponse) any { return c.ClientName },
	"clientEmail":       func(c ClientResponse) any { return c.ClientEmail },
	"clientPhoneNumber": func(c ClientResponse) any { return c.ClientPhoneNumber },
	"clientAddress":     func(c ClientResponse) any { return c.ClientAddress },
	"invoiceSequence":   func(c ClientResponse) any { return c.InvoiceSequence },
	"createdAt":         func(c ClientResponse) any { return c.CreatedAt },
}

// SplitFields splits a comma separated field list, dropping blanks.
func SplitFields(raw string) []string {
	fields := []string{}
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// ValidateClientFields returns an error naming the first field that is not selectable.
func ValidateClientFields(fields ...[]string) error {
	for _, list := range fields {
		for _, f := range list {
			if _, ok := clientFields[f]; !ok {
				return fmt.Errorf("unknown client field %q", f)
			}
		}
	}
	return nil
}

// ProjectClient keeps the include fields (all fields when include is empty) minus the exclude fields.
func ProjectClient(c ClientResponse, include, exclude []string) map[string]any {
	out := make(map[string]any, len(clientFields))
	if len(include) == 0 {
		for name, get := range clientFields {
			out[name] = get(c)
		}
	} else {
		for _, name := range include {
			if get, ok := clientFields[name]; ok {
				out[name] = get(c)
			}
		}
	}
	for _, name := range exclude {
		delete(out, name)
	}
	return out
}

// ClientPageResponse is one page of projected clients.
type ClientPageResponse struct {
	Items []map[string]any `json:"items"`
	domain.PageInfo
}
