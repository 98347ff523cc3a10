package domain

// Category identifies one of the storefront's three product lines.
type Category string

const (
	CategoryCars        Category = "cars"
	CategoryMotorcycles Category = "motorcycles"
	CategoryPhones      Category = "phones"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryCars, CategoryMotorcycles, CategoryPhones:
		return true
	}
	return false
}

// ProductStatus tracks availability of a listing.
type ProductStatus string

const (
	ProductAvailable ProductStatus = "available"
	ProductReserved  ProductStatus = "reserved"
	ProductSold      ProductStatus = "sold"
)

// ProductCondition distinguishes new stock from pre-owned.
type ProductCondition string

const (
	ConditionNew      ProductCondition = "new"
	ConditionPreOwned ProductCondition = "pre-owned"
)

// Product is the catalog's value object. The store layer references products
// by value and never mutates one; a Product held by a cart line or a
// reservation is a snapshot taken at the time it was added.
type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Price       float64          `json:"price"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	Category    Category         `json:"category"`
	Status      ProductStatus    `json:"status,omitempty"`
	Condition   ProductCondition `json:"condition,omitempty"`
	Mileage     int              `json:"mileage,omitempty"`
	CategoryID  int              `json:"categoryId,omitempty"`

	// Vehicle details, populated for cars and motorcycles.
	Year         int    `json:"year,omitempty"`
	Transmission string `json:"transmission,omitempty"`
	Horsepower   int    `json:"horsepower,omitempty"`
	EngineSize   string `json:"engineSize,omitempty"`
	FuelType     string `json:"fuelType,omitempty"`
	VehicleType  string `json:"vehicleType,omitempty"`
	Displacement int    `json:"displacement,omitempty"`
}

// ShippingMethod is a checkout shipping option presented to the buyer.
type ShippingMethod struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	EstimatedDays string  `json:"estimatedDays"`
}
