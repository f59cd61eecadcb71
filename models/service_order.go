package models

import (
	"time"

	"gorm.io/datatypes"
)

// OrderPart is a catalog item selected on a service order
type OrderPart struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// CostSummary is the derived money view of a service order
type CostSummary struct {
	PartsRevenue     float64 `json:"partsRevenue" db:"parts_revenue"`
	PartsCost        float64 `json:"partsCost" db:"parts_cost"`
	LaborCost        float64 `json:"laborCost" db:"labor_cost"`
	TotalCost        float64 `json:"totalCost" db:"total_cost"`
	EstimatedInvoice float64 `json:"estimatedInvoice" db:"estimated_invoice"`
	EstimatedProfit  float64 `json:"estimatedProfit" db:"estimated_profit"`
	EstimatedMargin  float64 `json:"estimatedMargin" db:"estimated_margin"`
}

// ServiceOrder is a billable maintenance or installation job against a site
type ServiceOrder struct {
	ID            string `json:"id" db:"id" gorm:"type:text;primaryKey;not null"`
	Title         string `json:"title" db:"title" gorm:"type:text;not null"`
	IssuerID      string `json:"issuerId" db:"issuer_id" gorm:"type:text;not null"`
	SiteID        string `json:"siteId" db:"site_id" gorm:"type:text;not null;index"`
	Type          string `json:"type" db:"type" gorm:"type:text;not null"`
	Priority      string `json:"priority" db:"priority" gorm:"type:text;not null;default:'Medium'"`
	Description   string `json:"description" db:"description" gorm:"type:text"`
	ScheduledDate Date   `json:"scheduledDate" db:"scheduled_date" gorm:"type:date"`
	TechnicianID  string `json:"technicianId" db:"technician_id" gorm:"type:text;not null"`

	ExistingPowerSetup       string  `json:"existingPowerSetup,omitempty" db:"existing_power_setup" gorm:"type:text"`
	ProposedPowerSetup       string  `json:"proposedPowerSetup,omitempty" db:"proposed_power_setup" gorm:"type:text"`
	EnergyDemand             float64 `json:"energyDemand" db:"energy_demand" gorm:"type:numeric;default:0"`
	SolarCapacity            float64 `json:"solarCapacity" db:"solar_capacity" gorm:"type:numeric;default:0"`
	BatteryCapacity          float64 `json:"batteryCapacity" db:"battery_capacity" gorm:"type:numeric;default:0"`
	RectifierDetails         string  `json:"rectifierDetails,omitempty" db:"rectifier_details" gorm:"type:text"`
	EstimatedSolarProduction float64 `json:"estimatedSolarProduction" db:"estimated_solar_production" gorm:"type:numeric;default:0"`

	EstimatedHours float64 `json:"estimatedHours" db:"estimated_hours" gorm:"type:numeric;default:0"`
	LaborRate      float64 `json:"laborRate" db:"labor_rate" gorm:"type:numeric;default:0"`
	TravelCost     float64 `json:"travelCost" db:"travel_cost" gorm:"type:numeric;default:0"`
	OtherCosts     float64 `json:"otherCosts" db:"other_costs" gorm:"type:numeric;default:0"`
	OverheadCosts  float64 `json:"overheadCosts" db:"overhead_costs" gorm:"type:numeric;default:0"`
	Notes          string  `json:"notes,omitempty" db:"notes" gorm:"type:text"`

	SelectedParts datatypes.JSONSlice[OrderPart] `json:"selectedParts" db:"selected_parts" gorm:"type:jsonb"`
	Costs         CostSummary                    `json:"costs" gorm:"embedded;embeddedPrefix:cost_"`

	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
