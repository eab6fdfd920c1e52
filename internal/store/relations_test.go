package store

import (
	"context"
	"testing"

	"dealerdesk/internal/kv"
	"dealerdesk/pkg/domain"
)

func TestGetDealershipWithRelationsJoins(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, kv.NewMemory())
	g := s.UpsertEnterpriseGroup(ctx, domain.EnterpriseGroupPatch{Name: domain.Set("Acme Group")})
	d := s.UpsertDealershipWithRelations(ctx, domain.DealershipRelationsPatch{
		Dealership: domain.DealershipPatch{
			Name:              domain.Set("Acme Toyota"),
			EnterpriseGroupID: domain.Set(&g.ID),
		},
		WebsiteLinks: []domain.WebsiteLink{{PrimaryURL: "https://acme.example.com", ClientID: "acme"}},
		Contacts:     &domain.DealershipContacts{SalesRep: "Jordan Blake"},
		Orders:       []domain.Order{{OrderNumber: "ORD-1", Amount: 900}},
	})

	rel, ok := s.GetDealershipWithRelations(d.ID)
	if !ok {
		t.Fatalf("dealership not found")
	}
	if rel.EnterpriseGroup == nil || rel.EnterpriseGroup.Name != "Acme Group" {
		t.Fatalf("group join missing: %+v", rel.EnterpriseGroup)
	}
	if len(rel.WebsiteLinks) != 1 || rel.WebsiteLinks[0].DealershipID != d.ID {
		t.Fatalf("link join wrong: %+v", rel.WebsiteLinks)
	}
	if rel.WebsiteLinks[0].ID == "" {
		t.Fatalf("composite write must mint link ids")
	}
	if rel.Contacts == nil || rel.Contacts.SalesRep != "Jordan Blake" {
		t.Fatalf("contacts join wrong: %+v", rel.Contacts)
	}
	if len(rel.Orders) != 1 || rel.Orders[0].Status != domain.OrderStatusPending {
		t.Fatalf("order join must carry defaults: %+v", rel.Orders)
	}
	if rel.Orders[0].CreatedAt.IsZero() {
		t.Fatalf("composite write must stamp order created_at")
	}
}

func TestGetDealershipWithRelationsEmpty(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, kv.NewMemory())
	d := s.UpsertDealership(ctx, domain.DealershipPatch{Name: domain.Set("Bare Lot Motors")})

	rel, ok := s.GetDealershipWithRelations(d.ID)
	if !ok {
		t.Fatalf("dealership not found")
	}
	if rel.EnterpriseGroup != nil {
		t.Fatalf("no group reference means no group join")
	}
	if rel.WebsiteLinks == nil || len(rel.WebsiteLinks) != 0 {
		t.Fatalf("links must be an empty slice, got %#v", rel.WebsiteLinks)
	}
	if rel.Orders == nil || len(rel.Orders) != 0 {
		t.Fatalf("orders must be an empty slice, got %#v", rel.Orders)
	}
	if rel.Contacts != nil {
		t.Fatalf("absent contacts row must be nil, got %+v", rel.Contacts)
	}
	if _, ok := s.GetDealershipWithRelations("nope"); ok {
		t.Fatalf("unknown id must report ok=false")
	}
}

func TestGroupJoinWithNoOtherRelations(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, kv.NewMemory())
	g := s.UpsertEnterpriseGroup(ctx, domain.EnterpriseGroupPatch{Name: domain.Set("Acme Group")})
	d := s.UpsertDealership(ctx, domain.DealershipPatch{
		Name:              domain.Set("Acme Toyota"),
		EnterpriseGroupID: domain.Set(&g.ID),
	})

	rel, ok := s.GetDealershipWithRelations(d.ID)
	if !ok {
		t.Fatalf("dealership not found")
	}
	if rel.EnterpriseGroup == nil || rel.EnterpriseGroup.Name != "Acme Group" {
		t.Fatalf("group must join by reference: %+v", rel.EnterpriseGroup)
	}
	if len(rel.WebsiteLinks) != 0 || len(rel.Orders) != 0 || rel.Contacts != nil {
		t.Fatalf("relations must be empty when none were written: %+v", rel)
	}

	all := s.ListDealershipsWithRelations()
	if len(all) != 1 || all[0].ID != d.ID || all[0].EnterpriseGroup == nil {
		t.Fatalf("bulk relation listing must carry the same join: %+v", all)
	}
}

func TestCompositeWriteReplacesOnlyProvidedRelations(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, kv.NewMemory())
	d := s.UpsertDealershipWithRelations(ctx, domain.DealershipRelationsPatch{
		Dealership:   domain.DealershipPatch{Name: domain.Set("Acme Toyota")},
		WebsiteLinks: []domain.WebsiteLink{{PrimaryURL: "https://acme.example.com"}},
		Contacts:     &domain.DealershipContacts{SalesRep: "Jordan Blake"},
		Orders:       []domain.Order{{OrderNumber: "ORD-1"}},
	})

	// A contacts-only update must leave links and orders untouched.
	updated := s.UpsertDealershipWithRelations(ctx, domain.DealershipRelationsPatch{
		Dealership: domain.DealershipPatch{ID: d.ID},
		Contacts:   &domain.DealershipContacts{SalesRep: "Casey Nguyen"},
	})
	if updated.Contacts == nil || updated.Contacts.SalesRep != "Casey Nguyen" {
		t.Fatalf("contacts must be replaced: %+v", updated.Contacts)
	}
	if len(updated.WebsiteLinks) != 1 || len(updated.Orders) != 1 {
		t.Fatalf("nil relations must stay untouched: %+v", updated)
	}
	if len(s.ListContacts()) != 1 {
		t.Fatalf("contacts replacement must not accumulate rows")
	}

	// A non-nil empty slice clears that relation set.
	cleared := s.UpsertDealershipWithRelations(ctx, domain.DealershipRelationsPatch{
		Dealership:   domain.DealershipPatch{ID: d.ID},
		WebsiteLinks: []domain.WebsiteLink{},
	})
	if len(cleared.WebsiteLinks) != 0 {
		t.Fatalf("empty slice must clear the link set, got %+v", cleared.WebsiteLinks)
	}
	if len(cleared.Orders) != 1 {
		t.Fatalf("orders must still be untouched")
	}
}

func TestCompositeWriteDropsEmptyURLLinks(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, kv.NewMemory())
	d := s.UpsertDealershipWithRelations(ctx, domain.DealershipRelationsPatch{
		Dealership: domain.DealershipPatch{Name: domain.Set("Acme Toyota")},
		WebsiteLinks: []domain.WebsiteLink{
			{PrimaryURL: "https://acme.example.com"},
			{PrimaryURL: "", ClientID: "blank-row"},
		},
	})
	if len(d.WebsiteLinks) != 1 || d.WebsiteLinks[0].PrimaryURL != "https://acme.example.com" {
		t.Fatalf("empty-url rows must never be stored, got %+v", d.WebsiteLinks)
	}
}

func TestCompositeWriteStampsDealershipID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, kv.NewMemory())
	d := s.UpsertDealershipWithRelations(ctx, domain.DealershipRelationsPatch{
		Dealership: domain.DealershipPatch{Name: domain.Set("Acme Toyota")},
		WebsiteLinks: []domain.WebsiteLink{
			{PrimaryURL: "https://acme.example.com", DealershipID: "stale-id"},
		},
		Orders: []domain.Order{{OrderNumber: "ORD-1", DealershipID: "stale-id"}},
	})
	if d.WebsiteLinks[0].DealershipID != d.ID {
		t.Fatalf("link parent id must be overwritten, got %q", d.WebsiteLinks[0].DealershipID)
	}
	if d.Orders[0].DealershipID != d.ID {
		t.Fatalf("order parent id must be overwritten, got %q", d.Orders[0].DealershipID)
	}
}

func TestCompositeWriteCreatesDealership(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, kv.NewMemory())
	d := s.UpsertDealershipWithRelations(ctx, domain.DealershipRelationsPatch{
		Contacts: &domain.DealershipContacts{SalesRep: "Jordan Blake"},
	})
	if d.ID == "" || d.Name != "Unnamed Dealership" {
		t.Fatalf("composite create must mint id and apply defaults: %+v", d.Dealership)
	}
	if d.Contacts == nil || d.Contacts.DealershipID != d.ID {
		t.Fatalf("contacts must be scoped to the new dealership: %+v", d.Contacts)
	}
}
