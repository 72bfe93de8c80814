package domain

import "time"

type OrderID int64

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusDelivered OrderStatus = "DELIVERED"
)

type Order struct {
	ID             OrderID       `json:"id"`
	CustomerID     UserID        `json:"customer_id"`
	RestaurantID   RestaurantID  `json:"restaurant_id"`
	OrderText      string        `json:"order_text"`
	Status         OrderStatus   `json:"status"`
	ContainersUsed int32         `json:"containers_used"`
	ContainerIDs   []ContainerID `json:"container_ids"`
	CreatedOn      time.Time     `json:"created_on"`
	DeliveredOn    *time.Time    `json:"delivered_on,omitempty"`
}

type OrderFilter struct {
	CustomerID   UserID
	RestaurantID RestaurantID
	Status       OrderStatus
}
