package domain

// CourierStatus represents the delivery status of a courier.
type CourierStatus string

// List of possible courier statuses
const (
	StatusPickedUp     CourierStatus = "Picked up"
	StatusOutToDeliver CourierStatus = "Out to deliver"
	StatusInTransit    CourierStatus = "In transit"
	StatusDelivered    CourierStatus = "Delivered"
)

// List of allowed statuses
var allowedStatuses = [...]CourierStatus{
	StatusPickedUp, StatusOutToDeliver, StatusInTransit, StatusDelivered,
}

// Valid checks if the CourierStatus is one of the four allowed values.
func (s CourierStatus) Valid() bool {
	for _, v := range allowedStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Statuses returns the allowed status values in display order.
func Statuses() []CourierStatus {
	out := make([]CourierStatus, len(allowedStatuses))
	copy(out, allowedStatuses[:])
	return out
}
