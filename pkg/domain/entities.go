// Package domain defines the persistent entities, enumerations, and partial
// update (patch) types used by the dealerdesk store.
package domain

import "time"

// DealershipStatus enumerates the tracked lifecycle states of a dealership.
type DealershipStatus string

// Canonical dealership statuses.
const (
	DealershipStatusProspect   DealershipStatus = "prospect"
	DealershipStatusOnboarding DealershipStatus = "onboarding"
	DealershipStatusActive     DealershipStatus = "active"
	DealershipStatusCancelled  DealershipStatus = "cancelled"
)

// OrderStatus enumerates purchase order workflow states.
type OrderStatus string

// Canonical order statuses.
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusFulfilled OrderStatus = "fulfilled"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ShopperStatus enumerates QA test-shopper account states.
type ShopperStatus string

// Canonical shopper statuses.
const (
	ShopperStatusActive   ShopperStatus = "active"
	ShopperStatusInactive ShopperStatus = "inactive"
)

// ShopperPriority ranks how urgently a shopper account needs attention.
type ShopperPriority string

// Canonical shopper priorities.
const (
	ShopperPriorityLow    ShopperPriority = "low"
	ShopperPriorityMedium ShopperPriority = "medium"
	ShopperPriorityHigh   ShopperPriority = "high"
)

// FeatureStatus enumerates feature-tracking record states.
type FeatureStatus string

// Canonical feature statuses.
const (
	FeatureStatusPlanned    FeatureStatus = "planned"
	FeatureStatusInProgress FeatureStatus = "in_progress"
	FeatureStatusReleased   FeatureStatus = "released"
)

// EnterpriseGroup is a parent organization that may own zero or more
// dealerships. Deleting a group nulls the reference on its dealerships; it
// never deletes them.
type EnterpriseGroup struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Dealership is the primary tracked business entity.
type Dealership struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	EnterpriseGroupID *string          `json:"enterprise_group_id"`
	Status            DealershipStatus `json:"status"`
	CRMProvider       string           `json:"crm_provider"`
	ContractValue     float64          `json:"contract_value"`
	PurchaseDate      string           `json:"purchase_date"`
	Address           string           `json:"address"`
	City              string           `json:"city"`
	State             string           `json:"state"`
	Zip               string           `json:"zip"`
	SystemID          string           `json:"system_id"`
	StoreCode         string           `json:"store_code"`
	Favorite          bool             `json:"favorite"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// WebsiteLink associates a dealership with one of its web properties. Rows
// with an empty PrimaryURL are never persisted.
type WebsiteLink struct {
	ID           string `json:"id"`
	DealershipID string `json:"dealership_id"`
	PrimaryURL   string `json:"primary_url"`
	ClientID     string `json:"client_id"`
}

// DealershipContacts holds the named contacts for a dealership. At most one
// row exists per dealership; writes replace any prior row.
type DealershipContacts struct {
	ID                 string `json:"id"`
	DealershipID       string `json:"dealership_id"`
	SalesRep           string `json:"sales_rep"`
	EnrollmentContact  string `json:"enrollment_contact"`
	AssignedSpecialist string `json:"assigned_specialist"`
	POCName            string `json:"poc_name"`
	POCPhone           string `json:"poc_phone"`
	POCEmail           string `json:"poc_email"`
}

// OrderProduct is a single line item on an order.
type OrderProduct struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// Order is a purchase order scoped to a dealership.
type Order struct {
	ID            string         `json:"id"`
	DealershipID  string         `json:"dealership_id"`
	OrderNumber   string         `json:"order_number"`
	Products      []OrderProduct `json:"products"`
	Amount        float64        `json:"amount"`
	OrderDate     string         `json:"order_date"`
	CompletedDate string         `json:"completed_date"`
	Status        OrderStatus    `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
}

// Shopper is a QA test-shopper account. CreatedAt is immutable once set.
type Shopper struct {
	ID         string          `json:"id"`
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Status     ShopperStatus   `json:"status"`
	Priority   ShopperPriority `json:"priority"`
	Notes      string          `json:"notes"`
	AssignedTo string          `json:"assigned_to"`
	CreatedAt  time.Time       `json:"created_at"`
}

// NewFeature is a feature-tracking record.
type NewFeature struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      FeatureStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}

// TeamMember is an internal team roster entry.
type TeamMember struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ProviderProduct is a catalog entry pairing a provider with a product it
// sells.
type ProviderProduct struct {
	ID        string    `json:"id"`
	Provider  string    `json:"provider"`
	Product   string    `json:"product"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// DealershipWithRelations is the denormalized read-side join of a dealership
// with its group, website links, contacts, and orders. EnterpriseGroup is a
// derived view only; composite writes ignore it.
type DealershipWithRelations struct {
	Dealership
	EnterpriseGroup *EnterpriseGroup    `json:"enterprise_group,omitempty"`
	WebsiteLinks    []WebsiteLink       `json:"website_links"`
	Contacts        *DealershipContacts `json:"contacts,omitempty"`
	Orders          []Order             `json:"orders"`
}
