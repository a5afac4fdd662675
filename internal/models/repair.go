package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Statuts d'une demande de réparation
const (
	RepairStatusRequested  = "Requested"
	RepairStatusApproved   = "Approved"
	RepairStatusInProgress = "In Progress"
	RepairStatusCompleted  = "Completed"
	RepairStatusCancelled  = "Cancelled"
)

type RepairRequest struct {
	ID            gocql.UUID `json:"id"`
	UserPhone     string     `json:"user_phone"`
	DeviceBrand   string     `json:"device_brand"`
	DeviceModel   string     `json:"device_model"`
	Issue         string     `json:"issue"`
	PreferredDate time.Time  `json:"preferred_date"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

var repairTransitions = map[string][]string{
	RepairStatusRequested:  {RepairStatusApproved, RepairStatusCancelled},
	RepairStatusApproved:   {RepairStatusInProgress, RepairStatusCancelled},
	RepairStatusInProgress: {RepairStatusCompleted, RepairStatusCancelled},
	RepairStatusCompleted:  {},
	RepairStatusCancelled:  {},
}

// IsValidRepairStatus vérifie qu'un statut de réparation existe
func IsValidRepairStatus(status string) bool {
	_, ok := repairTransitions[status]
	return ok
}

// CanTransitionRepair vérifie qu'une transition de statut est légale
func CanTransitionRepair(from, to string) bool {
	for _, next := range repairTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
