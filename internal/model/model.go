// Package model defines the entities persisted by the service and the
// request/response shapes exchanged over HTTP.
package model

// Client is a registered customer. ID is the caller-supplied external
// identifier; IntID is assigned by the server from a persistent sequence and
// is what GET /clients/{id} reports back as "id".
type Client struct {
	ID    string `json:"id" bson:"id"`
	IntID int64  `json:"intId" bson:"intId"`
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
}

// Product is a catalog entry keyed by a caller-supplied external identifier.
type Product struct {
	ID          string  `json:"id" bson:"id"`
	Name        string  `json:"name" bson:"name"`
	Category    string  `json:"category" bson:"category"`
	Description string  `json:"description" bson:"description"`
	Price       float64 `json:"price" bson:"price"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ProductID string `json:"productId" bson:"productId"`
	Quantity  int    `json:"quantity" bson:"quantity"`
}

// Order references a client and a non-empty list of items. The ID is
// server-assigned ("ord" + sequence number). Items are never mutated after
// creation and the referenced client/products are only guaranteed to exist
// at creation time.
type Order struct {
	ID       string      `json:"id" bson:"id"`
	ClientID string      `json:"clientId" bson:"clientId"`
	Items    []OrderItem `json:"items" bson:"items"`
}

// RegisterClientRequest is the body of PUT /clients. Pointer fields
// distinguish absent from empty so validation can report missing fields.
type RegisterClientRequest struct {
	ID    *string `json:"id"`
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// RegisterProductRequest is the body of PUT /products.
type RegisterProductRequest struct {
	ID          *string  `json:"id"`
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

// PlaceOrderRequest is the body of PUT /orders.
type PlaceOrderRequest struct {
	ClientID *string      `json:"clientId"`
	Items    *[]OrderItem `json:"items"`
}

// ClientResponse is returned by GET /clients/{id}. The "id" field carries the
// server-assigned integer, not the external string identifier; this mirrors
// the contract of the service this one replaces.
type ClientResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderResponse is an order as listed under GET /clients/{id}/orders, with
// the clientId stripped.
type OrderResponse struct {
	ID    string      `json:"id"`
	Items []OrderItem `json:"items"`
}
