package update_booking_status

import (
	"github.com/m04kA/barber-booking/internal/service/bookings/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"` // confirmed, in_progress, completed, cancelled, no_show
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest() *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{Status: r.Status}
}

// TransitionErrorResponse ответ на недопустимую смену статуса
type TransitionErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	From    string `json:"from"`
	To      string `json:"to"`
}
