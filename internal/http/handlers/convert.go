package handlers

import "courier-track/internal/domain"

func (r createCourierRequest) toModel() *domain.Courier {
	return &domain.Courier{
		Number:             r.Number,
		OwnerUsername:      r.OwnerUsername,
		Status:             r.Status,
		Place:              r.Place,
		DeliveryPersonName: r.DeliveryPersonName,
		DeliveryPersonID:   r.DeliveryPersonID,
		LocationURL:        r.LocationURL,
	}
}

func modelToResponse(c domain.Courier) courierDTO {
	return courierDTO{
		ID:                 c.ID,
		Number:             c.Number,
		Status:             c.Status,
		Place:              c.Place,
		DeliveryPersonName: c.DeliveryPersonName,
		DeliveryPersonID:   c.DeliveryPersonID,
		OwnerUsername:      c.OwnerUsername,
		LocationURL:        c.LocationURL,
	}
}

func modelsToResponse(list []domain.Courier) []courierDTO {
	out := make([]courierDTO, 0, len(list))
	for _, c := range list {
		out = append(out, modelToResponse(c))
	}
	return out
}
