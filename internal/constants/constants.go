package constants

// Shipment status values.
const (
	ShipmentStatusInTransit   = "in-transit"
	ShipmentStatusInboundScan = "inbound-scan"
	ShipmentStatusDelivery    = "delivery"
	ShipmentStatusTransit     = "transit"
	ShipmentStatusScanned     = "scanned"
)

// ShipmentStatuses lists every accepted status value.
var ShipmentStatuses = []string{
	ShipmentStatusInTransit,
	ShipmentStatusInboundScan,
	ShipmentStatusDelivery,
	ShipmentStatusTransit,
	ShipmentStatusScanned,
}

// IsValidShipmentStatus reports whether value is an accepted status.
func IsValidShipmentStatus(value string) bool {
	for _, status := range ShipmentStatuses {
		if status == value {
			return true
		}
	}
	return false
}

// Permission object names, one per protected model.
const (
	ObjectAddress  = "address"
	ObjectArticle  = "article"
	ObjectShipment = "usershipment"
)

// Permission actions, derived from the HTTP method of a request.
const (
	ActionView   = "view"
	ActionAdd    = "add"
	ActionChange = "change"
	ActionDelete = "delete"
)

// Revision actions recorded in the history ledger.
const (
	RevisionActionCreate = "create"
	RevisionActionUpdate = "update"
	RevisionActionDelete = "delete"
)
