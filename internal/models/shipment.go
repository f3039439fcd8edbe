package models

import (
	"fmt"

	"github.com/google/uuid"
)

// UserShipment tracks one parcel owned by a user. Article and address
// references are protected: they cannot be removed while a shipment
// still points at them. Deleting the owning user removes the shipment.
type UserShipment struct {
	Record
	UserID            uint      `gorm:"index;not null" json:"user"`
	ArticleID         uuid.UUID `gorm:"type:uuid;index;not null" json:"article"`
	ArticleQuantity   int       `gorm:"not null;default:1" json:"article_quantity"`
	TrackingNumber    string    `gorm:"size:100;not null" json:"tracking_number"`
	Carrier           string    `gorm:"size:100;not null" json:"carrier"`
	Status            string    `gorm:"size:20;not null;default:'in-transit'" json:"status"`
	SenderAddressID   uuid.UUID `gorm:"type:uuid;index;not null" json:"sender_address"`
	ReceiverAddressID uuid.UUID `gorm:"type:uuid;index;not null" json:"receiver_address"`

	User            *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Article         *Article `gorm:"foreignKey:ArticleID;constraint:OnDelete:RESTRICT" json:"article_detail,omitempty"`
	SenderAddress   *Address `gorm:"foreignKey:SenderAddressID;constraint:OnDelete:RESTRICT" json:"sender_address_detail,omitempty"`
	ReceiverAddress *Address `gorm:"foreignKey:ReceiverAddressID;constraint:OnDelete:RESTRICT" json:"receiver_address_detail,omitempty"`
}

// TableName sets the table name.
func (UserShipment) TableName() string {
	return "user_shipments"
}

// OwnerID reports the controlling principal for ownership checks.
func (s *UserShipment) OwnerID() (uint, bool) {
	return s.UserID, true
}

func (s *UserShipment) String() string {
	return fmt.Sprintf("%d: %s - %s", s.UserID, s.TrackingNumber, s.Status)
}
