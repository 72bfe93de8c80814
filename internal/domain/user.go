package domain

import "time"

type UserID string

type User struct {
	ID        UserID    `json:"id"`
	Name      string    `json:"name"`
	Points    int32     `json:"points"`
	CreatedOn time.Time `json:"created_on"`
}

type CustomerSummary struct {
	UserID             UserID        `json:"user_id"`
	Points             int32         `json:"points"`
	HeldContainers     []ContainerID `json:"held_containers"`
	ActiveDepositCents int32         `json:"active_deposit_cents"`
}
