package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCOD   PaymentMethod = "COD"
	PaymentMethodEsewa PaymentMethod = "Esewa"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCOD || m == PaymentMethodEsewa
}

type User struct {
	ID        uuid.UUID
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Category struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CategoryID  *uuid.UUID
	PhotoURL    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Service is a gym offering: a class, a membership package, a training plan.
type Service struct {
	ID              uuid.UUID
	Name            string
	Description     string
	Price           decimal.Decimal
	DurationMinutes int
	PhotoURL        *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Trainer struct {
	ID         uuid.UUID
	Name       string
	Speciality string
	Bio        string
	PhotoURL   *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CartItem is one (user, product) line. The pair is unique; repeat adds
// merge quantity into the existing row.
type CartItem struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	ProductID    uuid.UUID
	Quantity     int
	Product      *Product
	CategoryName *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Order carries a contact snapshot copied at checkout; later profile edits
// must not change where an already-placed order ships.
type Order struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	FullName      string
	Email         string
	Phone         string
	Address       string
	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
	Status        OrderStatus
	Subtotal      decimal.Decimal
	Shipping      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	Notes         string
	Items         []OrderItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItem snapshots name and price at the time of purchase, so historical
// orders stay accurate after the product is renamed, repriced or deleted.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Name      string
	Price     decimal.Decimal
	Quantity  int
	Subtotal  decimal.Decimal
	CreatedAt time.Time
}

type ContactMessage struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Subject   string
	Message   string
	CreatedAt time.Time
}

type NotificationKind string

const (
	NotificationOrderConfirmation NotificationKind = "order_confirmation"
	NotificationOrderStatusUpdate NotificationKind = "order_status_update"
	NotificationContactReceived   NotificationKind = "contact_received"
)

// NotificationMessage is the payload published to the notifications queue.
// ID doubles as the consumer-side idempotency key.
type NotificationMessage struct {
	ID            uuid.UUID        `json:"id"`
	Kind          NotificationKind `json:"kind"`
	Recipient     string           `json:"recipient"`
	RecipientName string           `json:"recipient_name"`
	OrderID       *uuid.UUID       `json:"order_id,omitempty"`
	OrderStatus   OrderStatus      `json:"order_status,omitempty"`
	PaymentStatus PaymentStatus    `json:"payment_status,omitempty"`
	Subject       string           `json:"subject,omitempty"`
	Body          string           `json:"body,omitempty"`
}
