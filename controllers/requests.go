package controllers

import (
	"fmt"
	"strings"

	"go-commerce-api/models"
)

// Request schemas are validated here, at the boundary, independent of any
// constraint the persistence layer might also enforce.

type registerRequest struct {
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Address  models.Address `json:"address"`
}

func (r *registerRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if !validEmail(r.Email) {
		return fmt.Errorf("a valid email is required")
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *loginRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return fmt.Errorf("email and password are required")
	}
	return nil
}

type googleLoginRequest struct {
	IDToken string `json:"id_token"`
}

func (r *googleLoginRequest) Validate() error {
	if r.IDToken == "" {
		return fmt.Errorf("id_token is required")
	}
	return nil
}

type orderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type createOrderRequest struct {
	// Items may be empty, in which case the caller's cart is used.
	Items         []orderItemRequest `json:"items"`
	Address       models.Address     `json:"address"`
	PaymentMethod string             `json:"payment_method"`
}

func (r *createOrderRequest) Validate() error {
	if r.PaymentMethod != "card" && r.PaymentMethod != "cod" {
		return fmt.Errorf("payment_method must be \"card\" or \"cod\"")
	}
	if strings.TrimSpace(r.Address.Street) == "" || strings.TrimSpace(r.Address.City) == "" {
		return fmt.Errorf("shipping address with street and city is required")
	}
	for _, item := range r.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("item quantity must be positive")
		}
	}
	return nil
}

type paymentStatusRequest struct {
	OrderID         string `json:"order_id"`
	PaymentIntentID string `json:"payment_intent_id"`
	// Status is the caller's claim. It is re-verified with the gateway and
	// never applied directly.
	Status string `json:"status"`
}

func (r *paymentStatusRequest) Validate() error {
	if r.OrderID == "" || r.PaymentIntentID == "" {
		return fmt.Errorf("order_id and payment_intent_id are required")
	}
	return nil
}

type statusUpdateRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

func (r *statusUpdateRequest) Validate() error {
	if r.Status == "" {
		return fmt.Errorf("status is required")
	}
	return nil
}

type productRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images"`
}

func (r *productRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if r.Price <= 0 {
		return fmt.Errorf("price must be positive")
	}
	if r.Stock < 0 {
		return fmt.Errorf("stock cannot be negative")
	}
	return nil
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}
