package domain

import "time"

type RestaurantID string

type Restaurant struct {
	ID        RestaurantID `json:"id"`
	Name      string       `json:"name"`
	CreatedOn time.Time    `json:"created_on"`
}
