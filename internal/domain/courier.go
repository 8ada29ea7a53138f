package domain

// Courier represents a tracked delivery unit.
//
// LocationURL is denormalized from the courier_location table: listings join
// it in and default it to "" for couriers without a location row.
type Courier struct {
	ID                 int64
	Number             string
	Status             CourierStatus
	Place              string
	DeliveryPersonName string
	DeliveryPersonID   string
	OwnerUsername      string
	LocationURL        string
}

// DeliveryPerson is the contact info shown for a courier. It is read off the
// denormalized courier columns, not the delivery_persons table.
type DeliveryPerson struct {
	Name    string
	Contact string
}
