package store

import (
	"context"
	"time"

	"dealerdesk/pkg/domain"
)

// seed populates one internally consistent record of every entity type. It
// only runs when Initialize found no dealerships, so it can never clobber real
// data. The seeded dataset persists and notifies like any other mutation.
func (s *Store) seed(ctx context.Context) {
	start := time.Now()
	s.mu.Lock()
	now := s.now()

	group := domain.EnterpriseGroup{
		ID:          s.idFn(),
		Name:        "Acme Automotive Group",
		Description: "Illustrative enterprise group created on first run.",
		CreatedAt:   now,
	}
	s.state.groups = append(s.state.groups, group)

	dealership := domain.Dealership{
		ID:                s.idFn(),
		Name:              "Acme Motors",
		EnterpriseGroupID: &group.ID,
		Status:            domain.DealershipStatusActive,
		CRMProvider:       "VinSolutions",
		ContractValue:     1200,
		PurchaseDate:      "2024-01-15",
		Address:           "100 Main St",
		City:              "Springfield",
		State:             "IL",
		Zip:               "62701",
		SystemID:          "SYS-1001",
		StoreCode:         "ACME01",
		Favorite:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	s.state.dealerships = append(s.state.dealerships, cloneDealership(dealership))

	s.state.websiteLinks = append(s.state.websiteLinks, domain.WebsiteLink{
		ID:           s.idFn(),
		DealershipID: dealership.ID,
		PrimaryURL:   "https://www.acmemotors.example.com",
		ClientID:     "acme-motors",
	})

	s.state.contacts = append(s.state.contacts, domain.DealershipContacts{
		ID:                 s.idFn(),
		DealershipID:       dealership.ID,
		SalesRep:           "Jordan Blake",
		EnrollmentContact:  "Casey Nguyen",
		AssignedSpecialist: "Riley Chen",
		POCName:            "Pat Harmon",
		POCPhone:           "555-0147",
		POCEmail:           "pat.harmon@acmemotors.example.com",
	})

	s.state.orders = append(s.state.orders, cloneOrder(domain.Order{
		ID:           s.idFn(),
		DealershipID: dealership.ID,
		OrderNumber:  "ORD-0001",
		Products: []domain.OrderProduct{
			{Name: "Website Platform", Amount: 900},
			{Name: "Inventory Sync", Amount: 300},
		},
		Amount:    1200,
		OrderDate: "2024-01-20",
		Status:    domain.OrderStatusPending,
		CreatedAt: now,
	}))

	s.state.shoppers = append(s.state.shoppers, domain.Shopper{
		ID:         s.idFn(),
		FirstName:  "Sam",
		LastName:   "Tester",
		Email:      "sam.tester@example.com",
		Phone:      "555-0199",
		Status:     domain.ShopperStatusActive,
		Priority:   domain.ShopperPriorityMedium,
		Notes:      "Baseline QA shopper account.",
		AssignedTo: "Riley Chen",
		CreatedAt:  now,
	})

	s.state.newFeatures = append(s.state.newFeatures, domain.NewFeature{
		ID:          s.idFn(),
		Title:       "Trade-in valuation widget",
		Description: "Embeddable widget surfacing instant trade-in offers.",
		Status:      domain.FeatureStatusPlanned,
		CreatedAt:   now,
	})

	s.state.teamMembers = append(s.state.teamMembers, domain.TeamMember{
		ID:        s.idFn(),
		Name:      "Riley Chen",
		Email:     "riley.chen@example.com",
		Role:      "Specialist",
		CreatedAt: now,
	})

	s.state.providerProducts = append(s.state.providerProducts, domain.ProviderProduct{
		ID:        s.idFn(),
		Provider:  "VinSolutions",
		Product:   "CRM Core",
		Category:  "CRM",
		CreatedAt: now,
	})

	s.mu.Unlock()
	s.commit(ctx, "seed", start)
}
