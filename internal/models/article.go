package models

// Article is a shippable item with a fixed-point price.
type Article struct {
	Record
	Name  string `gorm:"size:100;not null" json:"name"`
	Price Price  `gorm:"type:decimal(10,2);not null" json:"price"`
	SKU   string `gorm:"size:30;not null" json:"sku"`
}

// TableName sets the table name.
func (Article) TableName() string {
	return "articles"
}
