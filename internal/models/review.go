package models

import "time"

// Review product rating left by a customer
type Review struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"index:idx_review_user_product_created;not null" json:"userId"`
	ProductID uint      `gorm:"index;index:idx_review_user_product_created;not null" json:"productId"`
	Rating    int       `gorm:"not null" json:"rating"`
	Feedback  string    `gorm:"type:text" json:"feedback"`
	CreatedAt time.Time `gorm:"index:idx_review_user_product_created" json:"createdAt"`

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName table name
func (Review) TableName() string {
	return "reviews"
}
