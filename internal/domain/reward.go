package domain

type Reward struct {
	Name       string `json:"name"`
	CostPoints int32  `json:"cost_points"`
}

// SpinOutcome is one segment of the prize wheel. Voucher segments carry no
// points; they are recorded but never redeemed by the backend.
type SpinOutcome struct {
	Segment string `json:"segment"`
	Points  int32  `json:"points"`
	Voucher bool   `json:"voucher"`
}

type SpinResult struct {
	Outcome SpinOutcome `json:"outcome"`
	Cost    int32       `json:"cost"`
	Balance int32       `json:"balance"`
}
