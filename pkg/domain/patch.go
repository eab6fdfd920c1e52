package domain

import "encoding/json"

// Field wraps a patch value with a defined flag so that absent fields can be
// told apart from zero values. A field left undefined is preserved on the
// stored record; a defined field overwrites it, including explicit nulls on
// pointer-typed fields.
type Field[T any] struct {
	defined bool
	value   T
}

// Set returns a defined field carrying the given value.
func Set[T any](value T) Field[T] {
	return Field[T]{defined: true, value: value}
}

// Defined reports whether the field carries a value.
func (f Field[T]) Defined() bool { return f.defined }

// Value returns the carried value; the zero value when undefined.
func (f Field[T]) Value() T { return f.value }

// UnmarshalJSON marks the field defined whenever the key is present in the
// payload, matching the shallow-merge contract for form submissions.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.value = v
	f.defined = true
	return nil
}

// MarshalJSON emits the carried value, or null when undefined.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.defined {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

// EnterpriseGroupPatch is a partial enterprise group payload.
type EnterpriseGroupPatch struct {
	ID          string        `json:"id"`
	Name        Field[string] `json:"name"`
	Description Field[string] `json:"description"`
}

// Apply overlays the defined fields onto g.
func (p EnterpriseGroupPatch) Apply(g *EnterpriseGroup) {
	if p.Name.Defined() {
		g.Name = p.Name.Value()
	}
	if p.Description.Defined() {
		g.Description = p.Description.Value()
	}
}

// DealershipPatch is a partial dealership payload.
type DealershipPatch struct {
	ID                string                  `json:"id"`
	Name              Field[string]           `json:"name"`
	EnterpriseGroupID Field[*string]          `json:"enterprise_group_id"`
	Status            Field[DealershipStatus] `json:"status"`
	CRMProvider       Field[string]           `json:"crm_provider"`
	ContractValue     Field[float64]          `json:"contract_value"`
	PurchaseDate      Field[string]           `json:"purchase_date"`
	Address           Field[string]           `json:"address"`
	City              Field[string]           `json:"city"`
	State             Field[string]           `json:"state"`
	Zip               Field[string]           `json:"zip"`
	SystemID          Field[string]           `json:"system_id"`
	StoreCode         Field[string]           `json:"store_code"`
	Favorite          Field[bool]             `json:"favorite"`
}

// Apply overlays the defined fields onto d.
func (p DealershipPatch) Apply(d *Dealership) {
	if p.Name.Defined() {
		d.Name = p.Name.Value()
	}
	if p.EnterpriseGroupID.Defined() {
		d.EnterpriseGroupID = p.EnterpriseGroupID.Value()
	}
	if p.Status.Defined() {
		d.Status = p.Status.Value()
	}
	if p.CRMProvider.Defined() {
		d.CRMProvider = p.CRMProvider.Value()
	}
	if p.ContractValue.Defined() {
		d.ContractValue = p.ContractValue.Value()
	}
	if p.PurchaseDate.Defined() {
		d.PurchaseDate = p.PurchaseDate.Value()
	}
	if p.Address.Defined() {
		d.Address = p.Address.Value()
	}
	if p.City.Defined() {
		d.City = p.City.Value()
	}
	if p.State.Defined() {
		d.State = p.State.Value()
	}
	if p.Zip.Defined() {
		d.Zip = p.Zip.Value()
	}
	if p.SystemID.Defined() {
		d.SystemID = p.SystemID.Value()
	}
	if p.StoreCode.Defined() {
		d.StoreCode = p.StoreCode.Value()
	}
	if p.Favorite.Defined() {
		d.Favorite = p.Favorite.Value()
	}
}

// OrderPatch is a partial order payload.
type OrderPatch struct {
	ID            string                `json:"id"`
	DealershipID  Field[string]         `json:"dealership_id"`
	OrderNumber   Field[string]         `json:"order_number"`
	Products      Field[[]OrderProduct] `json:"products"`
	Amount        Field[float64]        `json:"amount"`
	OrderDate     Field[string]         `json:"order_date"`
	CompletedDate Field[string]         `json:"completed_date"`
	Status        Field[OrderStatus]    `json:"status"`
}

// Apply overlays the defined fields onto o. Products is replaced wholesale,
// never merged element-wise.
func (p OrderPatch) Apply(o *Order) {
	if p.DealershipID.Defined() {
		o.DealershipID = p.DealershipID.Value()
	}
	if p.OrderNumber.Defined() {
		o.OrderNumber = p.OrderNumber.Value()
	}
	if p.Products.Defined() {
		o.Products = append([]OrderProduct(nil), p.Products.Value()...)
	}
	if p.Amount.Defined() {
		o.Amount = p.Amount.Value()
	}
	if p.OrderDate.Defined() {
		o.OrderDate = p.OrderDate.Value()
	}
	if p.CompletedDate.Defined() {
		o.CompletedDate = p.CompletedDate.Value()
	}
	if p.Status.Defined() {
		o.Status = p.Status.Value()
	}
}

// ShopperPatch is a partial shopper payload.
type ShopperPatch struct {
	ID         string                 `json:"id"`
	FirstName  Field[string]          `json:"first_name"`
	LastName   Field[string]          `json:"last_name"`
	Email      Field[string]          `json:"email"`
	Phone      Field[string]          `json:"phone"`
	Status     Field[ShopperStatus]   `json:"status"`
	Priority   Field[ShopperPriority] `json:"priority"`
	Notes      Field[string]          `json:"notes"`
	AssignedTo Field[string]          `json:"assigned_to"`
}

// Apply overlays the defined fields onto s.
func (p ShopperPatch) Apply(s *Shopper) {
	if p.FirstName.Defined() {
		s.FirstName = p.FirstName.Value()
	}
	if p.LastName.Defined() {
		s.LastName = p.LastName.Value()
	}
	if p.Email.Defined() {
		s.Email = p.Email.Value()
	}
	if p.Phone.Defined() {
		s.Phone = p.Phone.Value()
	}
	if p.Status.Defined() {
		s.Status = p.Status.Value()
	}
	if p.Priority.Defined() {
		s.Priority = p.Priority.Value()
	}
	if p.Notes.Defined() {
		s.Notes = p.Notes.Value()
	}
	if p.AssignedTo.Defined() {
		s.AssignedTo = p.AssignedTo.Value()
	}
}

// NewFeaturePatch is a partial feature record payload.
type NewFeaturePatch struct {
	ID          string               `json:"id"`
	Title       Field[string]        `json:"title"`
	Description Field[string]        `json:"description"`
	Status      Field[FeatureStatus] `json:"status"`
}

// Apply overlays the defined fields onto f.
func (p NewFeaturePatch) Apply(f *NewFeature) {
	if p.Title.Defined() {
		f.Title = p.Title.Value()
	}
	if p.Description.Defined() {
		f.Description = p.Description.Value()
	}
	if p.Status.Defined() {
		f.Status = p.Status.Value()
	}
}

// TeamMemberPatch is a partial team member payload.
type TeamMemberPatch struct {
	ID    string        `json:"id"`
	Name  Field[string] `json:"name"`
	Email Field[string] `json:"email"`
	Role  Field[string] `json:"role"`
}

// Apply overlays the defined fields onto m.
func (p TeamMemberPatch) Apply(m *TeamMember) {
	if p.Name.Defined() {
		m.Name = p.Name.Value()
	}
	if p.Email.Defined() {
		m.Email = p.Email.Value()
	}
	if p.Role.Defined() {
		m.Role = p.Role.Value()
	}
}

// ProviderProductPatch is a partial provider/product catalog payload.
type ProviderProductPatch struct {
	ID       string        `json:"id"`
	Provider Field[string] `json:"provider"`
	Product  Field[string] `json:"product"`
	Category Field[string] `json:"category"`
}

// Apply overlays the defined fields onto c.
func (p ProviderProductPatch) Apply(c *ProviderProduct) {
	if p.Provider.Defined() {
		c.Provider = p.Provider.Value()
	}
	if p.Product.Defined() {
		c.Product = p.Product.Value()
	}
	if p.Category.Defined() {
		c.Category = p.Category.Value()
	}
}

// DealershipRelationsPatch is the composite payload accepted by the
// dealership relation write. A nil relation slice or pointer leaves that
// relation untouched; a non-nil value replaces the dealership's full set for
// that relation. The enterprise_group embed from reads is never a write
// target.
type DealershipRelationsPatch struct {
	Dealership   DealershipPatch     `json:"dealership"`
	WebsiteLinks []WebsiteLink       `json:"website_links"`
	Contacts     *DealershipContacts `json:"contacts"`
	Orders       []Order             `json:"orders"`
}
