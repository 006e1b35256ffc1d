package receipt

import "time"

// Submission is a receipt as posted by a client, before validation
type Submission struct {
	Retailer     string          `json:"retailer"`
	PurchaseDate string          `json:"purchaseDate"`
	PurchaseTime string          `json:"purchaseTime"`
	Items        []SubmittedItem `json:"items"`
	Total        string          `json:"total"`
}

// SubmittedItem is a line item as posted by a client
type SubmittedItem struct {
	ShortDescription string `json:"shortDescription"`
	Price            string `json:"price"`
}

// Receipt represents a validated purchase record
type Receipt struct {
	Retailer    string    `json:"retailer"`
	PurchasedAt time.Time `json:"purchasedAt"` // purchase date and time of day
	Items       []Item    `json:"items"`
	Total       Cents     `json:"total"`
}

// Item represents a validated line item
type Item struct {
	ShortDescription string `json:"shortDescription"`
	Price            Cents  `json:"price"`
}

// ScoredReceipt is a receipt together with the points computed when it was submitted
type ScoredReceipt struct {
	ID      string   `json:"id"`
	Points  int      `json:"points"`
	Receipt *Receipt `json:"receipt"`
}

// clone returns a copy that shares no mutable state with s
func (s *ScoredReceipt) clone() *ScoredReceipt {
	cp := *s
	if s.Receipt != nil {
		r := *s.Receipt
		r.Items = append([]Item(nil), s.Receipt.Items...)
		cp.Receipt = &r
	}
	return &cp
}
