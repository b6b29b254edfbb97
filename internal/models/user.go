package models

import "time"

// User storefront customer account
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(120);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash
	MobNo     *string   `gorm:"type:varchar(20)" json:"mobNo"`
	Role      string    `gorm:"type:varchar(20);not null;default:'customer'" json:"role"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Address *Address `gorm:"foreignKey:UserID" json:"address,omitempty"`
}

// TableName table name
func (User) TableName() string {
	return "users"
}

// HasMobile reports whether a mobile number is on file
func (u *User) HasMobile() bool {
	return u != nil && u.MobNo != nil && *u.MobNo != ""
}

// Address one delivery address per user
type Address struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	UserID      uint      `gorm:"uniqueIndex;not null" json:"userId"`
	State       string    `gorm:"type:varchar(100);not null" json:"state"`
	City        string    `gorm:"type:varchar(100);not null" json:"city"`
	Pincode     string    `gorm:"type:varchar(12);not null" json:"pincode"`
	AddressLine string    `gorm:"type:varchar(255);not null" json:"addressLine"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName table name
func (Address) TableName() string {
	return "addresses"
}
