package models

// InventoryItem is an entry of the parts catalog.
// UnitCost is the selling price and BuyingPrice what the company pays.
type InventoryItem struct {
	ID             string  `json:"id" db:"id" gorm:"type:text;primaryKey;not null"`
	Name           string  `json:"name" db:"name" gorm:"type:text;not null"`
	Category       string  `json:"category" db:"category" gorm:"type:text;not null;index"`
	UnitCost       float64 `json:"unitCost" db:"unit_cost" gorm:"type:numeric;not null;default:0"`
	BuyingPrice    float64 `json:"buyingPrice" db:"buying_price" gorm:"type:numeric;not null;default:0"`
	Quantity       int     `json:"quantity" db:"quantity" gorm:"type:integer;not null;default:0"`
	Specifications string  `json:"specifications,omitempty" db:"specifications" gorm:"type:text"`
}

// DefaultCatalog is the stock catalog seeded into fresh stores.
func DefaultCatalog() []InventoryItem {
	return []InventoryItem{
		{ID: "INV-1001", Name: "Solar Panel 250W", Category: "Solar Panels", UnitCost: 15000, BuyingPrice: 12000, Quantity: 25, Specifications: "Monocrystalline, 250W, 24V, Efficiency: 21%, Dimensions: 1650x992x35mm"},
		{ID: "INV-1002", Name: "Inverter 3kW", Category: "Inverters", UnitCost: 45000, BuyingPrice: 38000, Quantity: 12, Specifications: "Pure Sine Wave, 3kW, 48V, MPPT, Efficiency: 97%, LCD Display"},
		{ID: "INV-1003", Name: "Battery 12V 200Ah", Category: "Batteries", UnitCost: 32000, BuyingPrice: 26000, Quantity: 18, Specifications: "Lithium Iron Phosphate, 12V, 200Ah, 2400Wh, Cycle Life: 4000 cycles"},
		{ID: "INV-1004", Name: "Mounting Bracket", Category: "Mounting Systems", UnitCost: 4500, BuyingPrice: 3200, Quantity: 40, Specifications: "Aluminum, Adjustable Tilt: 10-60°, Wind Resistance: 60m/s"},
		{ID: "INV-1005", Name: "Solar Cable 10m", Category: "Cables & Wiring", UnitCost: 2500, BuyingPrice: 1800, Quantity: 60, Specifications: "6mm², Double Insulated, UV Resistant, Temperature Range: -40°C to +90°C"},
		{ID: "INV-1006", Name: "MC4 Connector Pair", Category: "Connectors", UnitCost: 800, BuyingPrice: 500, Quantity: 100, Specifications: "IP67 Waterproof, 30A, 1000V DC, TÜV Certified"},
		{ID: "INV-1007", Name: "Charge Controller 30A", Category: "Controllers", UnitCost: 12000, BuyingPrice: 9500, Quantity: 15, Specifications: "MPPT, 30A, 12/24V Auto, LCD Display, Max PV Input: 150V"},
		{ID: "INV-1008", Name: "Junction Box", Category: "Accessories", UnitCost: 3500, BuyingPrice: 2500, Quantity: 30, Specifications: "IP65 Waterproof, 4-Way, UV Resistant, Pre-wired"},
		{ID: "INV-1009", Name: "Fuse 15A", Category: "Accessories", UnitCost: 500, BuyingPrice: 300, Quantity: 50, Specifications: "15A, 1000V DC, gPV Type, 10x38mm"},
		{ID: "INV-1010", Name: "Grounding Kit", Category: "Installation", UnitCost: 6000, BuyingPrice: 4500, Quantity: 20, Specifications: "Copper Wire 6mm², Ground Rod 1.2m, Clamps and Connectors Included"},
		{ID: "INV-1011", Name: "Rectifier 48V 50A", Category: "Power Systems", UnitCost: 35000, BuyingPrice: 28000, Quantity: 8, Specifications: "Input: 180-264VAC, Output: 48VDC, 50A, Efficiency: 96%, Hot-swappable"},
		{ID: "INV-1012", Name: "Battery Monitor", Category: "Monitoring", UnitCost: 8500, BuyingPrice: 6800, Quantity: 15, Specifications: "Bluetooth, App Control, SOC Display, Voltage Range: 8-70V"},
	}
}
