package store

import (
	"sort"
	"strings"

	"dealerdesk/pkg/domain"
)

// ListDealershipsSorted returns every dealership with favorites first and
// case-insensitive name ascending within each band.
func (s *Store) ListDealershipsSorted() []domain.Dealership {
	out := s.ListDealerships()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Favorite != out[j].Favorite {
			return out[i].Favorite
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// EnterpriseGroupWithCount annotates a group with the live number of
// dealerships referencing it.
type EnterpriseGroupWithCount struct {
	domain.EnterpriseGroup
	DealershipCount int `json:"dealership_count"`
}

// ListEnterpriseGroupsWithCounts returns every group sorted case-insensitively
// by name, each carrying its current dealership count.
func (s *Store) ListEnterpriseGroupsWithCounts() []EnterpriseGroupWithCount {
	s.mu.RLock()
	counts := make(map[string]int, len(s.state.groups))
	for _, d := range s.state.dealerships {
		if d.EnterpriseGroupID != nil {
			counts[*d.EnterpriseGroupID]++
		}
	}
	out := make([]EnterpriseGroupWithCount, 0, len(s.state.groups))
	for _, g := range s.state.groups {
		out = append(out, EnterpriseGroupWithCount{
			EnterpriseGroup: cloneGroup(g),
			DealershipCount: counts[g.ID],
		})
	}
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// DealershipFilter narrows a dealership listing. Zero-valued criteria are
// ignored; the derived booleans force a relation join per candidate row.
type DealershipFilter struct {
	// Search matches case-insensitively against name and city.
	Search string
	// Status keeps only dealerships in the given lifecycle state.
	Status domain.DealershipStatus
	// EnterpriseGroupID keeps only dealerships in the given group.
	EnterpriseGroupID string
	// HasWebsiteClientID keeps dealerships with (or without) at least one
	// website link carrying a non-empty client id.
	HasWebsiteClientID *bool
	// HasZeroAmountItem keeps dealerships with (or without) at least one
	// order line item priced at zero.
	HasZeroAmountItem *bool
	// MissingSpecialist keeps dealerships whose contacts row lacks an
	// assigned specialist, counting an absent row as missing.
	MissingSpecialist *bool
}

// FilterDealerships applies f to the sorted dealership listing. It is a pure
// read: the repository is never mutated.
func (s *Store) FilterDealerships(f DealershipFilter) []domain.Dealership {
	base := s.ListDealershipsSorted()
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]domain.Dealership, 0, len(base))
	for _, d := range base {
		if search != "" &&
			!strings.Contains(strings.ToLower(d.Name), search) &&
			!strings.Contains(strings.ToLower(d.City), search) {
			continue
		}
		if f.Status != "" && d.Status != f.Status {
			continue
		}
		if f.EnterpriseGroupID != "" {
			if d.EnterpriseGroupID == nil || *d.EnterpriseGroupID != f.EnterpriseGroupID {
				continue
			}
		}
		if f.HasWebsiteClientID != nil || f.HasZeroAmountItem != nil || f.MissingSpecialist != nil {
			rel, ok := s.GetDealershipWithRelations(d.ID)
			if !ok {
				continue
			}
			if f.HasWebsiteClientID != nil && hasWebsiteClientID(rel) != *f.HasWebsiteClientID {
				continue
			}
			if f.HasZeroAmountItem != nil && hasZeroAmountItem(rel) != *f.HasZeroAmountItem {
				continue
			}
			if f.MissingSpecialist != nil && missingSpecialist(rel) != *f.MissingSpecialist {
				continue
			}
		}
		out = append(out, d)
	}
	return out
}

func hasWebsiteClientID(rel domain.DealershipWithRelations) bool {
	for _, l := range rel.WebsiteLinks {
		if l.ClientID != "" {
			return true
		}
	}
	return false
}

func hasZeroAmountItem(rel domain.DealershipWithRelations) bool {
	for _, o := range rel.Orders {
		for _, p := range o.Products {
			if p.Amount == 0 {
				return true
			}
		}
	}
	return false
}

func missingSpecialist(rel domain.DealershipWithRelations) bool {
	return rel.Contacts == nil || rel.Contacts.AssignedSpecialist == ""
}
