package handlers

import "courier-track/internal/domain"

type registerRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Phone           string `json:"phone"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
}

type createCourierRequest struct {
	Number             string               `json:"courier_number"`
	OwnerUsername      string               `json:"owner_username"`
	Status             domain.CourierStatus `json:"status"`
	Place              string               `json:"place"`
	DeliveryPersonName string               `json:"delivery_person_name"`
	DeliveryPersonID   string               `json:"delivery_person_id"`
	LocationURL        string               `json:"location_url"`
}

type updateStatusRequest struct {
	Status domain.CourierStatus `json:"status"`
}

type courierDTO struct {
	ID                 int64                `json:"id"`
	Number             string               `json:"courier_number"`
	Status             domain.CourierStatus `json:"status"`
	Place              string               `json:"place"`
	DeliveryPersonName string               `json:"delivery_person_name"`
	DeliveryPersonID   string               `json:"delivery_person_id"`
	OwnerUsername      string               `json:"owner_username"`
	LocationURL        string               `json:"location_url"`
}

type locationResponse struct {
	Location string `json:"location"`
}

type trackResponse struct {
	Link string `json:"link"`
}

type deliveryPersonDTO struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}
