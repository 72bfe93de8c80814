package domain

import "time"

type RequestID int64

type RequestStatus string

const (
	RequestStatusOpen      RequestStatus = "OPEN"
	RequestStatusFulfilled RequestStatus = "FULFILLED"
)

// Request is a restaurant's ask for more clean stock.
type Request struct {
	ID             RequestID     `json:"id"`
	RestaurantID   RestaurantID  `json:"restaurant_id"`
	RestaurantName string        `json:"restaurant_name"`
	NumRequested   int32         `json:"num_requested"`
	Status         RequestStatus `json:"status"`
	ContainerIDs   []ContainerID `json:"container_ids"`
	CreatedAt      time.Time     `json:"created_at"`
	FulfilledAt    *time.Time    `json:"fulfilled_at,omitempty"`
}

type RequestFilter struct {
	RestaurantID RestaurantID
	Status       RequestStatus
}
