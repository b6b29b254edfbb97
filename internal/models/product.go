package models

import "time"

// Product catalog item
type Product struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Price       Money     `gorm:"type:decimal(12,2);not null;default:0" json:"price"`
	Discount    int       `gorm:"not null;default:0" json:"discount"` // percent 0-100
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	Category    string    `gorm:"type:varchar(20);index;not null" json:"category"` // men / women
	Sizes       string    `gorm:"type:varchar(100)" json:"sizes"`                  // comma separated
	Delivery    int       `gorm:"not null;default:0" json:"delivery"`              // days
	ShipCharge  Money     `gorm:"type:decimal(12,2);not null;default:0" json:"shipCharge"`
	Returnable  int       `gorm:"not null;default:0" json:"returnable"` // days
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`

	Images     []Image     `gorm:"foreignKey:ProductID" json:"images"`
	Reviews    []Review    `gorm:"foreignKey:ProductID" json:"reviews"`
	Highlights []Highlight `gorm:"foreignKey:ProductID" json:"highlights"`
}

// TableName table name
func (Product) TableName() string {
	return "products"
}

// PrimaryImageURL the primary image url, or the first image when none is flagged
func (p *Product) PrimaryImageURL() string {
	if p == nil || len(p.Images) == 0 {
		return ""
	}
	for _, img := range p.Images {
		if img.IsPrimary {
			return img.URL
		}
	}
	return p.Images[0].URL
}

// Image product picture hosted on the CDN
type Image struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	URL       string `gorm:"type:varchar(500);not null" json:"url"`
	IsPrimary bool   `gorm:"not null;default:false" json:"isPrimary"`
	ProductID uint   `gorm:"index;not null" json:"productId"`
	PublicID  string `gorm:"type:varchar(255)" json:"publicId"`
}

// TableName table name
func (Image) TableName() string {
	return "images"
}

// Highlight key/value product fact
type Highlight struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	Key       string `gorm:"type:varchar(100);not null" json:"key"`
	Value     string `gorm:"type:varchar(255);not null" json:"value"`
	ProductID uint   `gorm:"index;not null" json:"productId"`
}

// TableName table name
func (Highlight) TableName() string {
	return "highlights"
}
