package grpc

import (
	"github.com/google/uuid"

	"github.com/dealerfin/dealerfin/internal/application/dto"
)

// Envelope messages for calls whose use-case input or output is not already a
// single DTO.

type Empty struct{}

type IDRequest struct {
	ID uuid.UUID `json:"id"`
}

type FinanceRequestList struct {
	Requests []dto.FinanceRequestResponse `json:"requests"`
}

type OfferList struct {
	Offers []dto.OfferResponse `json:"offers"`
}

type OfferGroupList struct {
	Groups []dto.OfferGroup `json:"groups"`
}

// ListPackagesRequest lists the whole catalog, or only the packages eligible
// for VehicleID when it is set.
type ListPackagesRequest struct {
	ActiveOnly  bool   `json:"active_only"`
	VehicleID   string `json:"vehicle_id,omitempty"`
	FinanceType string `json:"finance_type,omitempty"`
}

type PackageList struct {
	Packages []dto.PackageResponse `json:"packages"`
}

type ListNotificationsRequest struct {
	Limit int `json:"limit"`
}

type NotificationList struct {
	Notifications []dto.NotificationResponse `json:"notifications"`
}

type DealershipList struct {
	Dealerships []dto.DealershipResponse `json:"dealerships"`
}

type AdvisorOption struct {
	Value         string `json:"value"`
	Label         string `json:"label"`
	LeasePoints   int    `json:"lease_points"`
	FinancePoints int    `json:"finance_points"`
}

type AdvisorQuestion struct {
	ID       int             `json:"id"`
	Question string          `json:"question"`
	Options  []AdvisorOption `json:"options"`
}

type AdvisorQuestionList struct {
	Questions []AdvisorQuestion `json:"questions"`
}
