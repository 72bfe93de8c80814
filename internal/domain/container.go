package domain

import (
	"fmt"
	"slices"
	"time"
)

type ContainerID string

// HolderID identifies whoever currently holds a container: a customer's
// UserID or a RestaurantID.
type HolderID string

type ContainerStatus string

const (
	ContainerStatusClean       ContainerStatus = "CLEAN"
	ContainerStatusDistributed ContainerStatus = "DISTRIBUTED"
	ContainerStatusInUse       ContainerStatus = "IN_USE"
	ContainerStatusReturned    ContainerStatus = "RETURNED"
)

var containerTransitions = map[ContainerStatus][]ContainerStatus{
	ContainerStatusClean:       {ContainerStatusDistributed, ContainerStatusInUse},
	ContainerStatusDistributed: {ContainerStatusInUse, ContainerStatusClean},
	ContainerStatusInUse:       {ContainerStatusReturned},
	ContainerStatusReturned:    {ContainerStatusClean},
}

func (s ContainerStatus) Valid() bool {
	_, ok := containerTransitions[s]
	return ok
}

// NextStatuses lists the statuses reachable from s.
func (s ContainerStatus) NextStatuses() []ContainerStatus {
	return slices.Clone(containerTransitions[s])
}

func ParseContainerStatus(s string) (ContainerStatus, error) {
	status := ContainerStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("%w: unknown container status %q", ErrInvalidArgument, s)
	}
	return status, nil
}

type HolderKind string

const (
	HolderKindCustomer   HolderKind = "CUSTOMER"
	HolderKindRestaurant HolderKind = "RESTAURANT"
)

// AssignedStatus is the status a container takes when handed to this kind of holder.
func (k HolderKind) AssignedStatus() ContainerStatus {
	if k == HolderKindRestaurant {
		return ContainerStatusDistributed
	}
	return ContainerStatusInUse
}

type Container struct {
	ID           ContainerID     `json:"id"`
	Status       ContainerStatus `json:"status"`
	HoursInUse   int32           `json:"hours_in_use"`
	TimesUsed    int32           `json:"times_used"`
	Owner        HolderID        `json:"owner"`
	DepositCents int32           `json:"deposit_cents"`
	History      []HolderID      `json:"history"`
	CreatedOn    time.Time       `json:"created_on"`
	UpdatedOn    time.Time       `json:"updated_on"`
}

type ContainerFilter struct {
	Status     ContainerStatus
	IDContains string
	Owner      HolderID
}

func NewContainer(id ContainerID) *Container {
	return &Container{
		ID:      id,
		Status:  ContainerStatusClean,
		History: []HolderID{},
	}
}

func (c *Container) CanTransitionTo(next ContainerStatus) bool {
	return slices.Contains(containerTransitions[c.Status], next)
}

// AssignableTo reports whether the container can be handed to a holder of the given kind.
func (c *Container) AssignableTo(kind HolderKind) bool {
	return c.CanTransitionTo(kind.AssignedStatus())
}

// AssignTo hands the container to holder. Customers are charged
// depositCents; restaurants hold stock without a deposit.
func (c *Container) AssignTo(holder HolderID, kind HolderKind, depositCents int32) error {
	if holder == "" {
		return fmt.Errorf("%w: holder is required", ErrInvalidArgument)
	}
	next := kind.AssignedStatus()
	if !c.CanTransitionTo(next) {
		return fmt.Errorf("%w: container %s cannot move from %s to %s", ErrInvalidTransition, c.ID, c.Status, next)
	}
	if kind == HolderKindRestaurant {
		depositCents = 0
	} else if depositCents <= 0 {
		return fmt.Errorf("%w: customer deposit must be positive", ErrInvalidArgument)
	}

	c.Status = next
	c.Owner = holder
	c.DepositCents = depositCents
	c.HoursInUse = 0
	c.History = append(c.History, holder)
	return nil
}

// MarkReturned moves an IN_USE container to RETURNED and releases its
// deposit. The owner is kept until the container is cleaned.
func (c *Container) MarkReturned() error {
	if !c.CanTransitionTo(ContainerStatusReturned) {
		return fmt.Errorf("%w: container %s cannot move from %s to %s", ErrInvalidTransition, c.ID, c.Status, ContainerStatusReturned)
	}
	c.Status = ContainerStatusReturned
	c.DepositCents = 0
	return nil
}

// MarkClean puts the container back into the clean pool.
func (c *Container) MarkClean() error {
	if !c.CanTransitionTo(ContainerStatusClean) {
		return fmt.Errorf("%w: container %s cannot move from %s to %s", ErrInvalidTransition, c.ID, c.Status, ContainerStatusClean)
	}
	c.Status = ContainerStatusClean
	c.Owner = ""
	c.DepositCents = 0
	c.HoursInUse = 0
	c.TimesUsed++
	return nil
}

// Held reports whether the container is out with a holder and accruing hours.
func (c *Container) Held() bool {
	return c.Status == ContainerStatusDistributed || c.Status == ContainerStatusInUse
}

func (c *Container) Clone() *Container {
	out := *c
	out.History = slices.Clone(c.History)
	if out.History == nil {
		out.History = []HolderID{}
	}
	return &out
}
