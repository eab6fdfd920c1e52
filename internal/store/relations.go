package store

import (
	"context"
	"time"

	"dealerdesk/pkg/domain"
)

// GetDealershipWithRelations joins a dealership with its enterprise group,
// website links, contacts, and orders. The relation slices are always non-nil;
// Contacts is nil when no contacts row exists.
func (s *Store) GetDealershipWithRelations(id string) (domain.DealershipWithRelations, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOf(s.state.dealerships, id, func(d domain.Dealership) string { return d.ID })
	if i < 0 {
		return domain.DealershipWithRelations{}, false
	}
	return s.relationsLocked(s.state.dealerships[i]), true
}

// ListDealershipsWithRelations joins every dealership with its relations, in
// insertion order.
func (s *Store) ListDealershipsWithRelations() []domain.DealershipWithRelations {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.DealershipWithRelations, 0, len(s.state.dealerships))
	for _, d := range s.state.dealerships {
		out = append(out, s.relationsLocked(d))
	}
	return out
}

func (s *Store) relationsLocked(d domain.Dealership) domain.DealershipWithRelations {
	rel := domain.DealershipWithRelations{
		Dealership:   cloneDealership(d),
		WebsiteLinks: []domain.WebsiteLink{},
		Orders:       []domain.Order{},
	}
	if d.EnterpriseGroupID != nil {
		if i := indexOf(s.state.groups, *d.EnterpriseGroupID, func(g domain.EnterpriseGroup) string { return g.ID }); i >= 0 {
			g := cloneGroup(s.state.groups[i])
			rel.EnterpriseGroup = &g
		}
	}
	for _, l := range s.state.websiteLinks {
		if l.DealershipID == d.ID {
			rel.WebsiteLinks = append(rel.WebsiteLinks, cloneWebsiteLink(l))
		}
	}
	for _, c := range s.state.contacts {
		if c.DealershipID == d.ID {
			contacts := cloneContacts(c)
			rel.Contacts = &contacts
			break
		}
	}
	for _, o := range s.state.orders {
		if o.DealershipID == d.ID {
			rel.Orders = append(rel.Orders, cloneOrder(o))
		}
	}
	return rel
}

// UpsertDealershipWithRelations writes a dealership and any provided relation
// sets in one atomic mutation. The base record follows the shallow-merge
// contract; each non-nil relation replaces the dealership's full set for that
// relation, while nil relations stay untouched. Website links without a
// primary URL are discarded rather than stored.
func (s *Store) UpsertDealershipWithRelations(ctx context.Context, patch domain.DealershipRelationsPatch) domain.DealershipWithRelations {
	start := time.Now()
	s.mu.Lock()
	now := s.now()
	d := s.upsertDealershipLocked(patch.Dealership, now)

	if patch.WebsiteLinks != nil {
		kept := s.state.websiteLinks[:0]
		for _, l := range s.state.websiteLinks {
			if l.DealershipID != d.ID {
				kept = append(kept, l)
			}
		}
		s.state.websiteLinks = kept
		for _, l := range patch.WebsiteLinks {
			if l.PrimaryURL == "" {
				continue
			}
			l.DealershipID = d.ID
			if l.ID == "" {
				l.ID = s.idFn()
			}
			s.state.websiteLinks = append(s.state.websiteLinks, cloneWebsiteLink(l))
		}
	}

	if patch.Contacts != nil {
		kept := s.state.contacts[:0]
		for _, c := range s.state.contacts {
			if c.DealershipID != d.ID {
				kept = append(kept, c)
			}
		}
		s.state.contacts = kept
		c := *patch.Contacts
		c.DealershipID = d.ID
		if c.ID == "" {
			c.ID = s.idFn()
		}
		s.state.contacts = append(s.state.contacts, cloneContacts(c))
	}

	if patch.Orders != nil {
		kept := s.state.orders[:0]
		for _, o := range s.state.orders {
			if o.DealershipID != d.ID {
				kept = append(kept, o)
			}
		}
		s.state.orders = kept
		for _, o := range patch.Orders {
			o.DealershipID = d.ID
			if o.ID == "" {
				o.ID = s.idFn()
			}
			if o.CreatedAt.IsZero() {
				o.CreatedAt = now
			}
			applyOrderDefaults(&o)
			s.state.orders = append(s.state.orders, cloneOrder(o))
		}
	}

	stored := s.relationsLocked(d)
	s.mu.Unlock()
	s.commit(ctx, "upsert_dealership_with_relations", start)
	return stored
}
