package domain

import "fmt"

type VendorAction string

const (
	VendorActionAccept    VendorAction = "accept"
	VendorActionPreparing VendorAction = "preparing"
	VendorActionReady     VendorAction = "ready"
	VendorActionDelivered VendorAction = "delivered"
	VendorActionCancel    VendorAction = "cancel"
)

var vendorActionStatus = map[VendorAction]OrderStatus{
	VendorActionAccept:    OrderStatusAccepted,
	VendorActionPreparing: OrderStatusPreparing,
	VendorActionReady:     OrderStatusOnTheWay,
	VendorActionDelivered: OrderStatusDelivered,
	VendorActionCancel:    OrderStatusCancelled,
}

// TargetStatus maps a vendor form action to the status it sets.
func (a VendorAction) TargetStatus() (OrderStatus, error) {
	s, ok := vendorActionStatus[a]
	if !ok {
		return "", fmt.Errorf("%w: unknown action %q", ErrValidation, string(a))
	}
	return s, nil
}
