package store

import (
	"context"
	"time"

	"dealerdesk/pkg/domain"
)

func indexOf[T any](items []T, id string, idOf func(T) string) int {
	if id == "" {
		return -1
	}
	for i, item := range items {
		if idOf(item) == id {
			return i
		}
	}
	return -1
}

func removeAt[T any](items []T, i int) []T {
	return append(items[:i], items[i+1:]...)
}

// Enterprise groups ----------------------------------------------------------

// UpsertEnterpriseGroup creates or shallow-merges an enterprise group and
// returns the stored record. Writes never fail; missing required fields are
// defaulted.
func (s *Store) UpsertEnterpriseGroup(ctx context.Context, patch domain.EnterpriseGroupPatch) domain.EnterpriseGroup {
	start := time.Now()
	s.mu.Lock()
	now := s.now()
	var stored domain.EnterpriseGroup
	if i := indexOf(s.state.groups, patch.ID, func(g domain.EnterpriseGroup) string { return g.ID }); i >= 0 {
		g := s.state.groups[i]
		patch.Apply(&g)
		applyGroupDefaults(&g)
		s.state.groups[i] = cloneGroup(g)
		stored = g
	} else {
		g := domain.EnterpriseGroup{ID: patch.ID, CreatedAt: now}
		if g.ID == "" {
			g.ID = s.idFn()
		}
		patch.Apply(&g)
		applyGroupDefaults(&g)
		s.state.groups = append(s.state.groups, cloneGroup(g))
		stored = g
	}
	s.mu.Unlock()
	s.commit(ctx, "upsert_enterprise_group", start)
	return stored
}

// GetEnterpriseGroup retrieves a group by id.
func (s *Store) GetEnterpriseGroup(id string) (domain.EnterpriseGroup, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.state.groups, id, func(g domain.EnterpriseGroup) string { return g.ID }); i >= 0 {
		return cloneGroup(s.state.groups[i]), true
	}
	return domain.EnterpriseGroup{}, false
}

// ListEnterpriseGroups returns all groups in insertion order.
func (s *Store) ListEnterpriseGroups() []domain.EnterpriseGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.EnterpriseGroup, 0, len(s.state.groups))
	for _, g := range s.state.groups {
		out = append(out, cloneGroup(g))
	}
	return out
}

// DeleteEnterpriseGroup removes a group and nulls the group reference on
// every dealership that pointed to it. The dealerships themselves survive.
// Unknown ids are a silent no-op.
func (s *Store) DeleteEnterpriseGroup(ctx context.Context, id string) {
	start := time.Now()
	s.mu.Lock()
	i := indexOf(s.state.groups, id, func(g domain.EnterpriseGroup) string { return g.ID })
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.state.groups = removeAt(s.state.groups, i)
	now := s.now()
	for j := range s.state.dealerships {
		d := &s.state.dealerships[j]
		if d.EnterpriseGroupID != nil && *d.EnterpriseGroupID == id {
			d.EnterpriseGroupID = nil
			d.UpdatedAt = now
		}
	}
	s.mu.Unlock()
	s.commit(ctx, "delete_enterprise_group", start)
}

// Dealerships ----------------------------------------------------------------

func (s *Store) upsertDealershipLocked(patch domain.DealershipPatch, now time.Time) domain.Dealership {
	if i := indexOf(s.state.dealerships, patch.ID, func(d domain.Dealership) string { return d.ID }); i >= 0 {
		d := s.state.dealerships[i]
		patch.Apply(&d)
		applyDealershipDefaults(&d)
		d.UpdatedAt = now
		s.state.dealerships[i] = cloneDealership(d)
		return d
	}
	d := domain.Dealership{ID: patch.ID, CreatedAt: now, UpdatedAt: now}
	if d.ID == "" {
		d.ID = s.idFn()
	}
	patch.Apply(&d)
	applyDealershipDefaults(&d)
	s.state.dealerships = append(s.state.dealerships, cloneDealership(d))
	return d
}

// UpsertDealership creates or shallow-merges a dealership and returns the
// stored record. CreatedAt is preserved across updates; UpdatedAt refreshes
// on every write.
func (s *Store) UpsertDealership(ctx context.Context, patch domain.DealershipPatch) domain.Dealership {
	start := time.Now()
	s.mu.Lock()
	stored := s.upsertDealershipLocked(patch, s.now())
	s.mu.Unlock()
	s.commit(ctx, "upsert_dealership", start)
	return stored
}

// GetDealership retrieves a dealership by id.
func (s *Store) GetDealership(id string) (domain.Dealership, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.state.dealerships, id, func(d domain.Dealership) string { return d.ID }); i >= 0 {
		return cloneDealership(s.state.dealerships[i]), true
	}
	return domain.Dealership{}, false
}

// ListDealerships returns all dealerships in insertion order.
func (s *Store) ListDealerships() []domain.Dealership {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Dealership, 0, len(s.state.dealerships))
	for _, d := range s.state.dealerships {
		out = append(out, cloneDealership(d))
	}
	return out
}

// DeleteDealership removes a dealership and cascades the delete to its
// website links, contacts, and orders atomically with the primary delete.
// Unknown ids are a silent no-op.
func (s *Store) DeleteDealership(ctx context.Context, id string) {
	start := time.Now()
	s.mu.Lock()
	i := indexOf(s.state.dealerships, id, func(d domain.Dealership) string { return d.ID })
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.state.dealerships = removeAt(s.state.dealerships, i)
	s.deleteDealershipRelationsLocked(id)
	s.mu.Unlock()
	s.commit(ctx, "delete_dealership", start)
}

func (s *Store) deleteDealershipRelationsLocked(dealershipID string) {
	links := s.state.websiteLinks[:0]
	for _, l := range s.state.websiteLinks {
		if l.DealershipID != dealershipID {
			links = append(links, l)
		}
	}
	s.state.websiteLinks = links

	contacts := s.state.contacts[:0]
	for _, c := range s.state.contacts {
		if c.DealershipID != dealershipID {
			contacts = append(contacts, c)
		}
	}
	s.state.contacts = contacts

	orders := s.state.orders[:0]
	for _, o := range s.state.orders {
		if o.DealershipID != dealershipID {
			orders = append(orders, o)
		}
	}
	s.state.orders = orders
}

// Website links and contacts (reads; writes go through the dealership
// composite to keep replace-on-write semantics in one place) ----------------

// ListWebsiteLinks returns all website links in insertion order.
func (s *Store) ListWebsiteLinks() []domain.WebsiteLink {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.WebsiteLink, 0, len(s.state.websiteLinks))
	for _, l := range s.state.websiteLinks {
		out = append(out, cloneWebsiteLink(l))
	}
	return out
}

// GetWebsiteLink retrieves a website link by id.
func (s *Store) GetWebsiteLink(id string) (domain.WebsiteLink, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.state.websiteLinks, id, func(l domain.WebsiteLink) string { return l.ID }); i >= 0 {
		return cloneWebsiteLink(s.state.websiteLinks[i]), true
	}
	return domain.WebsiteLink{}, false
}

// ListContacts returns all dealership contact rows in insertion order.
func (s *Store) ListContacts() []domain.DealershipContacts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.DealershipContacts, 0, len(s.state.contacts))
	for _, c := range s.state.contacts {
		out = append(out, cloneContacts(c))
	}
	return out
}

// GetContactsForDealership retrieves the single contacts row scoped to a
// dealership.
func (s *Store) GetContactsForDealership(dealershipID string) (domain.DealershipContacts, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.state.contacts {
		if c.DealershipID == dealershipID {
			return cloneContacts(c), true
		}
	}
	return domain.DealershipContacts{}, false
}

// Orders ---------------------------------------------------------------------

// UpsertOrder creates or shallow-merges an order independently of the parent
// dealership's composite write.
func (s *Store) UpsertOrder(ctx context.Context, patch domain.OrderPatch) domain.Order {
	start := time.Now()
	s.mu.Lock()
	now := s.now()
	var stored domain.Order
	if i := indexOf(s.state.orders, patch.ID, func(o domain.Order) string { return o.ID }); i >= 0 {
		o := s.state.orders[i]
		patch.Apply(&o)
		applyOrderDefaults(&o)
		s.state.orders[i] = cloneOrder(o)
		stored = o
	} else {
		o := domain.Order{ID: patch.ID, CreatedAt: now}
		if o.ID == "" {
			o.ID = s.idFn()
		}
		patch.Apply(&o)
		applyOrderDefaults(&o)
		s.state.orders = append(s.state.orders, cloneOrder(o))
		stored = o
	}
	s.mu.Unlock()
	s.commit(ctx, "upsert_order", start)
	return stored
}

// GetOrder retrieves an order by id.
func (s *Store) GetOrder(id string) (domain.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.state.orders, id, func(o domain.Order) string { return o.ID }); i >= 0 {
		return cloneOrder(s.state.orders[i]), true
	}
	return domain.Order{}, false
}

// ListOrders returns all orders in insertion order.
func (s *Store) ListOrders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Order, 0, len(s.state.orders))
	for _, o := range s.state.orders {
		out = append(out, cloneOrder(o))
	}
	return out
}

// DeleteOrder removes an order. Unknown ids are a silent no-op.
func (s *Store) DeleteOrder(ctx context.Context, id string) {
	start := time.Now()
	s.mu.Lock()
	i := indexOf(s.state.orders, id, func(o domain.Order) string { return o.ID })
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.state.orders = removeAt(s.state.orders, i)
	s.mu.Unlock()
	s.commit(ctx, "delete_order", start)
}

// Shoppers -------------------------------------------------------------------

// UpsertShopper creates or shallow-merges a shopper. CreatedAt is established
// by the first write and preserved on every later one.
func (s *Store) UpsertShopper(ctx context.Context, patch domain.ShopperPatch) domain.Shopper {
	start := time.Now()
	s.mu.Lock()
	now := s.now()
	var stored domain.Shopper
	if i := indexOf(s.state.shoppers, patch.ID, func(sh domain.Shopper) string { return sh.ID }); i >= 0 {
		sh := s.state.shoppers[i]
		patch.Apply(&sh)
		applyShopperDefaults(&sh)
		s.state.shoppers[i] = cloneShopper(sh)
		stored = sh
	} else {
		sh := domain.Shopper{ID: patch.ID, CreatedAt: now}
		if sh.ID == "" {
			sh.ID = s.idFn()
		}
		patch.Apply(&sh)
		applyShopperDefaults(&sh)
		s.state.shoppers = append(s.state.shoppers, cloneShopper(sh))
		stored = sh
	}
	s.mu.Unlock()
	s.commit(ctx, "upsert_shopper", start)
	return stored
}

// GetShopper retrieves a shopper by id.
func (s *Store) GetShopper(id string) (domain.Shopper, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.state.shoppers, id, func(sh domain.Shopper) string { return sh.ID }); i >= 0 {
		return cloneShopper(s.state.shoppers[i]), true
	}
	return domain.Shopper{}, false
}

// ListShoppers returns all shoppers in insertion order.
func (s *Store) ListShoppers() []domain.Shopper {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Shopper, 0, len(s.state.shoppers))
	for _, sh := range s.state.shoppers {
		out = append(out, cloneShopper(sh))
	}
	return out
}

// DeleteShopper removes a shopper. Unknown ids are a silent no-op.
func (s *Store) DeleteShopper(ctx context.Context, id string) {
	start := time.Now()
	s.mu.Lock()
	i := indexOf(s.state.shoppers, id, func(sh domain.Shopper) string { return sh.ID })
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.state.shoppers = removeAt(s.state.shoppers, i)
	s.mu.Unlock()
	s.commit(ctx, "delete_shopper", start)
}

// Feature records ------------------------------------------------------------

// UpsertNewFeature creates or shallow-merges a feature-tracking record.
func (s *Store) UpsertNewFeature(ctx context.Context, patch domain.NewFeaturePatch) domain.NewFeature {
	start := time.Now()
	s.mu.Lock()
	now := s.now()
	var stored domain.NewFeature
	if i := indexOf(s.state.newFeatures, patch.ID, func(f domain.NewFeature) string { return f.ID }); i >= 0 {
		f := s.state.newFeatures[i]
		patch.Apply(&f)
		applyNewFeatureDefaults(&f)
		s.state.newFeatures[i] = cloneNewFeature(f)
		stored = f
	} else {
		f := domain.NewFeature{ID: patch.ID, CreatedAt: now}
		if f.ID == "" {
			f.ID = s.idFn()
		}
		patch.Apply(&f)
		applyNewFeatureDefaults(&f)
		s.state.newFeatures = append(s.state.newFeatures, cloneNewFeature(f))
		stored = f
	}
	s.mu.Unlock()
	s.commit(ctx, "upsert_new_feature", start)
	return stored
}

// GetNewFeature retrieves a feature record by id.
func (s *Store) GetNewFeature(id string) (domain.NewFeature, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.state.newFeatures, id, func(f domain.NewFeature) string { return f.ID }); i >= 0 {
		return cloneNewFeature(s.state.newFeatures[i]), true
	}
	return domain.NewFeature{}, false
}

// ListNewFeatures returns all feature records in insertion order.
func (s *Store) ListNewFeatures() []domain.NewFeature {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.NewFeature, 0, len(s.state.newFeatures))
	for _, f := range s.state.newFeatures {
		out = append(out, cloneNewFeature(f))
	}
	return out
}

// DeleteNewFeature removes a feature record. Unknown ids are a silent no-op.
func (s *Store) DeleteNewFeature(ctx context.Context, id string) {
	start := time.Now()
	s.mu.Lock()
	i := indexOf(s.state.newFeatures, id, func(f domain.NewFeature) string { return f.ID })
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.state.newFeatures = removeAt(s.state.newFeatures, i)
	s.mu.Unlock()
	s.commit(ctx, "delete_new_feature", start)
}

// Team members ---------------------------------------------------------------

// UpsertTeamMember creates or shallow-merges a team roster entry.
func (s *Store) UpsertTeamMember(ctx context.Context, patch domain.TeamMemberPatch) domain.TeamMember {
	start := time.Now()
	s.mu.Lock()
	now := s.now()
	var stored domain.TeamMember
	if i := indexOf(s.state.teamMembers, patch.ID, func(m domain.TeamMember) string { return m.ID }); i >= 0 {
		m := s.state.teamMembers[i]
		patch.Apply(&m)
		s.state.teamMembers[i] = cloneTeamMember(m)
		stored = m
	} else {
		m := domain.TeamMember{ID: patch.ID, CreatedAt: now}
		if m.ID == "" {
			m.ID = s.idFn()
		}
		patch.Apply(&m)
		s.state.teamMembers = append(s.state.teamMembers, cloneTeamMember(m))
		stored = m
	}
	s.mu.Unlock()
	s.commit(ctx, "upsert_team_member", start)
	return stored
}

// GetTeamMember retrieves a team member by id.
func (s *Store) GetTeamMember(id string) (domain.TeamMember, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.state.teamMembers, id, func(m domain.TeamMember) string { return m.ID }); i >= 0 {
		return cloneTeamMember(s.state.teamMembers[i]), true
	}
	return domain.TeamMember{}, false
}

// ListTeamMembers returns all team members in insertion order.
func (s *Store) ListTeamMembers() []domain.TeamMember {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.TeamMember, 0, len(s.state.teamMembers))
	for _, m := range s.state.teamMembers {
		out = append(out, cloneTeamMember(m))
	}
	return out
}

// DeleteTeamMember removes a team member. Unknown ids are a silent no-op.
func (s *Store) DeleteTeamMember(ctx context.Context, id string) {
	start := time.Now()
	s.mu.Lock()
	i := indexOf(s.state.teamMembers, id, func(m domain.TeamMember) string { return m.ID })
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.state.teamMembers = removeAt(s.state.teamMembers, i)
	s.mu.Unlock()
	s.commit(ctx, "delete_team_member", start)
}

// Provider/product catalog ---------------------------------------------------

// UpsertProviderProduct creates or shallow-merges a catalog entry.
func (s *Store) UpsertProviderProduct(ctx context.Context, patch domain.ProviderProductPatch) domain.ProviderProduct {
	start := time.Now()
	s.mu.Lock()
	now := s.now()
	var stored domain.ProviderProduct
	if i := indexOf(s.state.providerProducts, patch.ID, func(p domain.ProviderProduct) string { return p.ID }); i >= 0 {
		p := s.state.providerProducts[i]
		patch.Apply(&p)
		s.state.providerProducts[i] = cloneProviderProduct(p)
		stored = p
	} else {
		p := domain.ProviderProduct{ID: patch.ID, CreatedAt: now}
		if p.ID == "" {
			p.ID = s.idFn()
		}
		patch.Apply(&p)
		s.state.providerProducts = append(s.state.providerProducts, cloneProviderProduct(p))
		stored = p
	}
	s.mu.Unlock()
	s.commit(ctx, "upsert_provider_product", start)
	return stored
}

// GetProviderProduct retrieves a catalog entry by id.
func (s *Store) GetProviderProduct(id string) (domain.ProviderProduct, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.state.providerProducts, id, func(p domain.ProviderProduct) string { return p.ID }); i >= 0 {
		return cloneProviderProduct(s.state.providerProducts[i]), true
	}
	return domain.ProviderProduct{}, false
}

// ListProviderProducts returns all catalog entries in insertion order.
func (s *Store) ListProviderProducts() []domain.ProviderProduct {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ProviderProduct, 0, len(s.state.providerProducts))
	for _, p := range s.state.providerProducts {
		out = append(out, cloneProviderProduct(p))
	}
	return out
}

// DeleteProviderProduct removes a catalog entry. Unknown ids are a silent
// no-op.
func (s *Store) DeleteProviderProduct(ctx context.Context, id string) {
	start := time.Now()
	s.mu.Lock()
	i := indexOf(s.state.providerProducts, id, func(p domain.ProviderProduct) string { return p.ID })
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.state.providerProducts = removeAt(s.state.providerProducts, i)
	s.mu.Unlock()
	s.commit(ctx, "delete_provider_product", start)
}
