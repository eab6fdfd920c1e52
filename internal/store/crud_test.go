package store

import (
	"context"
	"testing"
	"time"

	"dealerdesk/internal/kv"
	"dealerdesk/pkg/domain"
)

func TestUpsertDealershipCreateAppliesDefaults(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, kv.NewMemory())

	d := s.UpsertDealership(ctx, domain.DealershipPatch{})
	if d.ID == "" {
		t.Fatalf("create must mint an identifier")
	}
	if d.Name != "Unnamed Dealership" {
		t.Fatalf("missing name must default, got %q", d.Name)
	}
	if d.Status != domain.DealershipStatusProspect {
		t.Fatalf("missing status must default to prospect, got %q", d.Status)
	}
	if d.CRMProvider != "Unknown" {
		t.Fatalf("missing provider must default, got %q", d.CRMProvider)
	}
	if d.CreatedAt.IsZero() || !d.CreatedAt.Equal(d.UpdatedAt) {
		t.Fatalf("create must stamp matching created/updated, got %v %v", d.CreatedAt, d.UpdatedAt)
	}
}

func TestUpsertDealershipUpdatePreservesUnspecifiedFields(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base
	s := New(kv.NewMemory(),
		WithIDFunc(sequentialIDs("id")),
		WithClock(func() time.Time { return now }))

	created := s.UpsertDealership(ctx, domain.DealershipPatch{
		Name:          domain.Set("Acme Toyota"),
		City:          domain.Set("Springfield"),
		ContractValue: domain.Set(900.0),
	})

	now = base.Add(time.Hour)
	updated := s.UpsertDealership(ctx, domain.DealershipPatch{
		ID:   created.ID,
		City: domain.Set("Shelbyville"),
	})
	if updated.Name != "Acme Toyota" || updated.ContractValue != 900 {
		t.Fatalf("unspecified fields must survive the merge: %+v", updated)
	}
	if updated.City != "Shelbyville" {
		t.Fatalf("specified field must be applied, got %q", updated.City)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at must be immutable across updates")
	}
	if !updated.UpdatedAt.Equal(base.Add(time.Hour)) {
		t.Fatalf("updated_at must refresh on every write, got %v", updated.UpdatedAt)
	}
}

func TestUpsertDealershipClearsGroupWithExplicitNull(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, kv.NewMemory())
	g := s.UpsertEnterpriseGroup(ctx, domain.EnterpriseGroupPatch{Name: domain.Set("Acme Group")})
	d := s.UpsertDealership(ctx, domain.DealershipPatch{
		Name:              domain.Set("Acme Toyota"),
		EnterpriseGroupID: domain.Set(&g.ID),
	})

	// Undefined field leaves the reference alone.
	kept := s.UpsertDealership(ctx, domain.DealershipPatch{ID: d.ID, City: domain.Set("Springfield")})
	if kept.EnterpriseGroupID == nil || *kept.EnterpriseGroupID != g.ID {
		t.Fatalf("undefined group field must preserve the reference")
	}

	// Explicit null clears it.
	cleared := s.UpsertDealership(ctx, domain.DealershipPatch{ID: d.ID, EnterpriseGroupID: domain.Set[*string](nil)})
	if cleared.EnterpriseGroupID != nil {
		t.Fatalf("explicit null must clear the reference")
	}
}

func TestGetUnknownID(t *testing.T) {
	s := newTestStore(t, kv.NewMemory())
	if _, ok := s.GetDealership("nope"); ok {
		t.Fatalf("unknown id must report ok=false")
	}
	if _, ok := s.GetEnterpriseGroup(""); ok {
		t.Fatalf("empty id must report ok=false")
	}
}

func TestListReturnsDefensiveCopies(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, kv.NewMemory())
	d := s.UpsertDealership(ctx, domain.DealershipPatch{Name: domain.Set("Acme Toyota")})

	listed := s.ListDealerships()
	listed[0].Name = "mutated"
	if got, _ := s.GetDealership(d.ID); got.Name != "Acme Toyota" {
		t.Fatalf("list must hand out copies, store saw %q", got.Name)
	}

	o := s.UpsertOrder(ctx, domain.OrderPatch{
		DealershipID: domain.Set(d.ID),
		Products:     domain.Set([]domain.OrderProduct{{Name: "Website Platform", Amount: 900}}),
	})
	orders := s.ListOrders()
	orders[0].Products[0].Name = "mutated"
	if got, _ := s.GetOrder(o.ID); got.Products[0].Name != "Website Platform" {
		t.Fatalf("order products must be deep-copied, store saw %q", got.Products[0].Name)
	}
}

func TestListPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, kv.NewMemory())
	first := s.UpsertShopper(ctx, domain.ShopperPatch{FirstName: domain.Set("Zed")})
	second := s.UpsertShopper(ctx, domain.ShopperPatch{FirstName: domain.Set("Amy")})
	// An update must not move the record.
	s.UpsertShopper(ctx, domain.ShopperPatch{ID: first.ID, Notes: domain.Set("updated")})

	got := s.ListShoppers()
	if len(got) != 2 || got[0].ID != first.ID || got[1].ID != second.ID {
		t.Fatalf("insertion order must be stable, got %+v", got)
	}
}

func TestDeleteEnterpriseGroupNullsReferences(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base
	s := New(kv.NewMemory(),
		WithIDFunc(sequentialIDs("id")),
		WithClock(func() time.Time { return now }))

	g := s.UpsertEnterpriseGroup(ctx, domain.EnterpriseGroupPatch{Name: domain.Set("Acme Group")})
	inGroup := s.UpsertDealership(ctx, domain.DealershipPatch{
		Name:              domain.Set("Acme Toyota"),
		EnterpriseGroupID: domain.Set(&g.ID),
	})
	outside := s.UpsertDealership(ctx, domain.DealershipPatch{Name: domain.Set("Riverside Honda")})

	now = base.Add(time.Hour)
	s.DeleteEnterpriseGroup(ctx, g.ID)

	if _, ok := s.GetEnterpriseGroup(g.ID); ok {
		t.Fatalf("group must be removed")
	}
	got, ok := s.GetDealership(inGroup.ID)
	if !ok {
		t.Fatalf("member dealership must survive group deletion")
	}
	if got.EnterpriseGroupID != nil {
		t.Fatalf("group reference must be nulled, got %v", got.EnterpriseGroupID)
	}
	if !got.UpdatedAt.Equal(base.Add(time.Hour)) {
		t.Fatalf("affected dealership must refresh updated_at, got %v", got.UpdatedAt)
	}
	other, _ := s.GetDealership(outside.ID)
	if !other.UpdatedAt.Equal(base) {
		t.Fatalf("unaffected dealership must keep its updated_at")
	}
}

func TestDeleteDealershipCascades(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, kv.NewMemory())
	d := s.UpsertDealershipWithRelations(ctx, domain.DealershipRelationsPatch{
		Dealership:   domain.DealershipPatch{Name: domain.Set("Acme Toyota")},
		WebsiteLinks: []domain.WebsiteLink{{PrimaryURL: "https://acme.example.com"}},
		Contacts:     &domain.DealershipContacts{SalesRep: "Jordan Blake"},
		Orders:       []domain.Order{{OrderNumber: "ORD-1"}},
	})
	keep := s.UpsertDealershipWithRelations(ctx, domain.DealershipRelationsPatch{
		Dealership:   domain.DealershipPatch{Name: domain.Set("Riverside Honda")},
		WebsiteLinks: []domain.WebsiteLink{{PrimaryURL: "https://riverside.example.com"}},
	})

	s.DeleteDealership(ctx, d.ID)

	if _, ok := s.GetDealership(d.ID); ok {
		t.Fatalf("dealership must be removed")
	}
	if got := s.ListWebsiteLinks(); len(got) != 1 || got[0].DealershipID != keep.ID {
		t.Fatalf("cascade must remove only the deleted dealership's links, got %+v", got)
	}
	if got := s.ListContacts(); len(got) != 0 {
		t.Fatalf("cascade must remove contacts, got %+v", got)
	}
	if got := s.ListOrders(); len(got) != 0 {
		t.Fatalf("cascade must remove orders, got %+v", got)
	}
}

func TestDeleteUnknownIDIsSilentNoOp(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	s := newTestStore(t, mem)
	fired := 0
	s.Subscribe(func() { fired++ })

	s.DeleteDealership(ctx, "nope")
	s.DeleteEnterpriseGroup(ctx, "nope")
	s.DeleteOrder(ctx, "nope")
	s.DeleteShopper(ctx, "nope")
	s.DeleteNewFeature(ctx, "nope")
	s.DeleteTeamMember(ctx, "nope")
	s.DeleteProviderProduct(ctx, "nope")

	if fired != 0 {
		t.Fatalf("no-op deletes must not notify, got %d notifications", fired)
	}
	if _, ok, _ := mem.Load(context.Background(), DefaultStateKey); ok {
		t.Fatalf("no-op deletes must not persist")
	}
}

func TestUpsertOrderIndependently(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, kv.NewMemory())
	d := s.UpsertDealership(ctx, domain.DealershipPatch{Name: domain.Set("Acme Toyota")})

	o := s.UpsertOrder(ctx, domain.OrderPatch{
		DealershipID: domain.Set(d.ID),
		OrderNumber:  domain.Set("ORD-1"),
	})
	if o.Status != domain.OrderStatusPending {
		t.Fatalf("missing status must default to pending, got %q", o.Status)
	}
	if o.Products == nil || len(o.Products) != 0 {
		t.Fatalf("missing products must default to an empty slice, got %#v", o.Products)
	}
	if o.CreatedAt.IsZero() {
		t.Fatalf("create must stamp created_at")
	}

	updated := s.UpsertOrder(ctx, domain.OrderPatch{ID: o.ID, Status: domain.Set(domain.OrderStatusFulfilled)})
	if updated.Status != domain.OrderStatusFulfilled || updated.OrderNumber != "ORD-1" {
		t.Fatalf("merge must keep unspecified fields: %+v", updated)
	}
	if !updated.CreatedAt.Equal(o.CreatedAt) {
		t.Fatalf("created_at must be immutable")
	}

	s.DeleteOrder(ctx, o.ID)
	if _, ok := s.GetOrder(o.ID); ok {
		t.Fatalf("order must be removed")
	}
}

func TestStandaloneEntityCRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, kv.NewMemory())

	f := s.UpsertNewFeature(ctx, domain.NewFeaturePatch{})
	if f.Title != "Untitled Feature" || f.Status != domain.FeatureStatusPlanned {
		t.Fatalf("feature defaults missing: %+v", f)
	}
	sh := s.UpsertShopper(ctx, domain.ShopperPatch{FirstName: domain.Set("Sam")})
	if sh.Status != domain.ShopperStatusActive || sh.Priority != domain.ShopperPriorityMedium {
		t.Fatalf("shopper defaults missing: %+v", sh)
	}
	m := s.UpsertTeamMember(ctx, domain.TeamMemberPatch{Name: domain.Set("Riley Chen"), Role: domain.Set("Specialist")})
	if got, ok := s.GetTeamMember(m.ID); !ok || got.Role != "Specialist" {
		t.Fatalf("team member not stored: ok=%v %+v", ok, got)
	}
	p := s.UpsertProviderProduct(ctx, domain.ProviderProductPatch{Provider: domain.Set("VinSolutions"), Product: domain.Set("CRM Core")})
	if got, ok := s.GetProviderProduct(p.ID); !ok || got.Provider != "VinSolutions" {
		t.Fatalf("provider product not stored: ok=%v %+v", ok, got)
	}

	s.DeleteNewFeature(ctx, f.ID)
	s.DeleteShopper(ctx, sh.ID)
	s.DeleteTeamMember(ctx, m.ID)
	s.DeleteProviderProduct(ctx, p.ID)
	if len(s.ListNewFeatures()) != 0 || len(s.ListShoppers()) != 0 ||
		len(s.ListTeamMembers()) != 0 || len(s.ListProviderProducts()) != 0 {
		t.Fatalf("deletes must empty the collections")
	}
}

func TestUpsertIdenticalPayloadIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, kv.NewMemory())
	patch := domain.DealershipPatch{
		ID:     "d1",
		Name:   domain.Set("Acme Toyota"),
		City:   domain.Set("Springfield"),
		Status: domain.Set(domain.DealershipStatusActive),
	}
	first := s.UpsertDealership(ctx, patch)
	second := s.UpsertDealership(ctx, patch)

	first.UpdatedAt, second.UpdatedAt = time.Time{}, time.Time{}
	if first != second {
		t.Fatalf("identical payloads must yield the same stored record:\n%+v\n%+v", first, second)
	}
	if len(s.ListDealerships()) != 1 {
		t.Fatalf("repeat upsert must not duplicate the record")
	}
}

func TestUpsertWithCallerProvidedID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, kv.NewMemory())
	d := s.UpsertDealership(ctx, domain.DealershipPatch{ID: "ext-1", Name: domain.Set("Acme Toyota")})
	if d.ID != "ext-1" {
		t.Fatalf("caller-provided id must be honored, got %q", d.ID)
	}
	again := s.UpsertDealership(ctx, domain.DealershipPatch{ID: "ext-1", City: domain.Set("Springfield")})
	if again.Name != "Acme Toyota" || len(s.ListDealerships()) != 1 {
		t.Fatalf("same id must update, not duplicate")
	}
}
