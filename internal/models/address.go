package models

import "fmt"

// Address is a plain value entity with no owner.
type Address struct {
	Record
	Street     string `gorm:"size:100;not null" json:"street"`
	City       string `gorm:"size:100;not null" json:"city"`
	Country    string `gorm:"size:100;not null" json:"country"`
	PostalCode string `gorm:"size:100;not null" json:"postal_code"`
}

// TableName sets the table name.
func (Address) TableName() string {
	return "addresses"
}

func (a *Address) String() string {
	return fmt.Sprintf("%s %s, %s, %s", a.Street, a.PostalCode, a.City, a.Country)
}
