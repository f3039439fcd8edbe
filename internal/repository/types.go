package repository

import "github.com/google/uuid"

// AddressListFilter narrows address listings.
type AddressListFilter struct {
	Page           int
	PageSize       int
	Street         string
	City           string
	Country        string
	PostalCode     string
	IncludeTrashed bool
}

// ArticleListFilter narrows article listings.
type ArticleListFilter struct {
	Page           int
	PageSize       int
	Name           string
	SKU            string
	IncludeTrashed bool
}

// ShipmentListFilter narrows shipment listings. A zero UserID means no
// ownership restriction.
type ShipmentListFilter struct {
	Page           int
	PageSize       int
	UserID         uint
	ArticleID      uuid.UUID
	Carrier        string
	Status         string
	TrackingNumber string
	IncludeTrashed bool
}

// RevisionListFilter narrows history ledger reads.
type RevisionListFilter struct {
	Page       int
	PageSize   int
	EntityType string
	EntityID   uuid.UUID
	ActorID    uint
}
