package response

import "time"

type Contractor struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Trade     string    `json:"trade"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CISStatus string    `json:"cisStatus"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// ContractorRate is the agency rate lookup for a contractor's trade.
// Known is false for trades outside the rate table; the UI then asks
// for a manual figure.
type ContractorRate struct {
	ContractorID uint   `json:"contractorId"`
	Trade        string `json:"trade"`
	DayRate      int    `json:"dayRate"`
	Known        bool   `json:"known"`
}
