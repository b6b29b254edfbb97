package models

import "time"

// Order single-product order
type Order struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"userId"`
	ProductID   uint      `gorm:"index;not null" json:"productId"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Expected    time.Time `json:"expected"`
	Total       Money     `gorm:"type:decimal(12,2);not null;default:0" json:"total"`
	PaymentMode string    `gorm:"type:varchar(10);not null;default:'COD'" json:"paymentMode"`
	Status      string    `gorm:"type:varchar(20);index;not null" json:"status"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName table name
func (Order) TableName() string {
	return "orders"
}
