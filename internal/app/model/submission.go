package model

import (
	"time"

	"gorm.io/gorm"
)

type SubmissionStatus string

const (
	SubmissionCompleted SubmissionStatus = "completed" // every order group succeeded
	SubmissionPartial   SubmissionStatus = "partial"   // regular order survived, fish order failed
	SubmissionFailed    SubmissionStatus = "failed"    // nothing was created, or the combined abort fired
)

// OrderSubmission is the journal record of one checkout attempt. Support
// staff use it to look up the surviving order id after a partial success,
// and the admin export reads from it.
type OrderSubmission struct {
	ID             uint             `gorm:"primarykey" json:"id"`
	CartKey        string           `gorm:"size:120;index" json:"cart_key"`
	UserID         *uint            `gorm:"index" json:"user_id,omitempty"`
	Zone           ShippingZone     `gorm:"type:varchar(20)" json:"zone"`
	PaymentMethod  PaymentMethod    `gorm:"type:varchar(30)" json:"payment_method"`
	ItemCount      int              `json:"item_count"`
	RegularOrderID string           `gorm:"type:varchar(60)" json:"regular_order_id,omitempty"`
	FishOrderID    string           `gorm:"type:varchar(60)" json:"fish_order_id,omitempty"`
	Subtotal       float64          `json:"subtotal"`
	ShippingFee    float64          `json:"shipping_fee"`
	TotalAmount    float64          `json:"total_amount"`
	WeightKg       float64          `json:"weight_kg"`
	Status         SubmissionStatus `gorm:"type:varchar(20);index" json:"status"`
	FailureDetail  string           `gorm:"type:text" json:"failure_detail,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (OrderSubmission) TableName() string {
	return "order_submissions"
}
