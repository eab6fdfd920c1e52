// Package store implements the authoritative in-memory repository for the
// dealerdesk object graph. Mutations are applied to the in-memory state,
// snapshotted to a durable key-value backend, and announced on a change
// notification bus before the mutating call returns.
package store

import (
	"dealerdesk/pkg/domain"
)

// state holds every entity collection in insertion order. The store owns the
// only authoritative copy; reads hand out clones.
type state struct {
	dealerships      []domain.Dealership
	groups           []domain.EnterpriseGroup
	websiteLinks     []domain.WebsiteLink
	contacts         []domain.DealershipContacts
	orders           []domain.Order
	shoppers         []domain.Shopper
	newFeatures      []domain.NewFeature
	teamMembers      []domain.TeamMember
	providerProducts []domain.ProviderProduct
}

// Snapshot captures a point-in-time clone of the store state. Its JSON shape
// is the durable blob layout.
type Snapshot struct {
	Dealerships       []domain.Dealership         `json:"dealerships"`
	EnterpriseGroups  []domain.EnterpriseGroup    `json:"enterpriseGroups"`
	WebsiteLinks      []domain.WebsiteLink        `json:"websiteLinks"`
	Contacts          []domain.DealershipContacts `json:"contacts"`
	Orders            []domain.Order              `json:"orders"`
	Shoppers          []domain.Shopper            `json:"shoppers"`
	NewFeatures       []domain.NewFeature         `json:"newFeatures"`
	TeamMembers       []domain.TeamMember         `json:"teamMembers"`
	ProvidersProducts []domain.ProviderProduct    `json:"providersProducts"`
}

func snapshotFromState(st state) Snapshot {
	s := Snapshot{
		Dealerships:       make([]domain.Dealership, 0, len(st.dealerships)),
		EnterpriseGroups:  make([]domain.EnterpriseGroup, 0, len(st.groups)),
		WebsiteLinks:      make([]domain.WebsiteLink, 0, len(st.websiteLinks)),
		Contacts:          make([]domain.DealershipContacts, 0, len(st.contacts)),
		Orders:            make([]domain.Order, 0, len(st.orders)),
		Shoppers:          make([]domain.Shopper, 0, len(st.shoppers)),
		NewFeatures:       make([]domain.NewFeature, 0, len(st.newFeatures)),
		TeamMembers:       make([]domain.TeamMember, 0, len(st.teamMembers)),
		ProvidersProducts: make([]domain.ProviderProduct, 0, len(st.providerProducts)),
	}
	for _, d := range st.dealerships {
		s.Dealerships = append(s.Dealerships, cloneDealership(d))
	}
	for _, g := range st.groups {
		s.EnterpriseGroups = append(s.EnterpriseGroups, cloneGroup(g))
	}
	for _, l := range st.websiteLinks {
		s.WebsiteLinks = append(s.WebsiteLinks, cloneWebsiteLink(l))
	}
	for _, c := range st.contacts {
		s.Contacts = append(s.Contacts, cloneContacts(c))
	}
	for _, o := range st.orders {
		s.Orders = append(s.Orders, cloneOrder(o))
	}
	for _, sh := range st.shoppers {
		s.Shoppers = append(s.Shoppers, cloneShopper(sh))
	}
	for _, f := range st.newFeatures {
		s.NewFeatures = append(s.NewFeatures, cloneNewFeature(f))
	}
	for _, m := range st.teamMembers {
		s.TeamMembers = append(s.TeamMembers, cloneTeamMember(m))
	}
	for _, p := range st.providerProducts {
		s.ProvidersProducts = append(s.ProvidersProducts, cloneProviderProduct(p))
	}
	return s
}

func stateFromSnapshot(s Snapshot) state {
	st := state{}
	for _, d := range s.Dealerships {
		st.dealerships = append(st.dealerships, cloneDealership(d))
	}
	for _, g := range s.EnterpriseGroups {
		st.groups = append(st.groups, cloneGroup(g))
	}
	for _, l := range s.WebsiteLinks {
		st.websiteLinks = append(st.websiteLinks, cloneWebsiteLink(l))
	}
	for _, c := range s.Contacts {
		st.contacts = append(st.contacts, cloneContacts(c))
	}
	for _, o := range s.Orders {
		st.orders = append(st.orders, cloneOrder(o))
	}
	for _, sh := range s.Shoppers {
		st.shoppers = append(st.shoppers, cloneShopper(sh))
	}
	for _, f := range s.NewFeatures {
		st.newFeatures = append(st.newFeatures, cloneNewFeature(f))
	}
	for _, m := range s.TeamMembers {
		st.teamMembers = append(st.teamMembers, cloneTeamMember(m))
	}
	for _, p := range s.ProvidersProducts {
		st.providerProducts = append(st.providerProducts, cloneProviderProduct(p))
	}
	return st
}

// normalizeSnapshot merges a loaded snapshot over the canonical empty-state
// template and repairs referential damage: collections added after the blob
// was written come back empty instead of nil, dangling group references are
// nulled, and relation rows whose parent dealership no longer exists are
// dropped. Website links without a primary URL are dropped outright, and a
// dealership keeps at most one contacts row.
func normalizeSnapshot(s Snapshot) Snapshot {
	if s.Dealerships == nil {
		s.Dealerships = []domain.Dealership{}
	}
	if s.EnterpriseGroups == nil {
		s.EnterpriseGroups = []domain.EnterpriseGroup{}
	}
	if s.WebsiteLinks == nil {
		s.WebsiteLinks = []domain.WebsiteLink{}
	}
	if s.Contacts == nil {
		s.Contacts = []domain.DealershipContacts{}
	}
	if s.Orders == nil {
		s.Orders = []domain.Order{}
	}
	if s.Shoppers == nil {
		s.Shoppers = []domain.Shopper{}
	}
	if s.NewFeatures == nil {
		s.NewFeatures = []domain.NewFeature{}
	}
	if s.TeamMembers == nil {
		s.TeamMembers = []domain.TeamMember{}
	}
	if s.ProvidersProducts == nil {
		s.ProvidersProducts = []domain.ProviderProduct{}
	}

	groupExists := make(map[string]bool, len(s.EnterpriseGroups))
	for _, g := range s.EnterpriseGroups {
		groupExists[g.ID] = true
	}
	dealershipExists := make(map[string]bool, len(s.Dealerships))
	for i := range s.Dealerships {
		d := &s.Dealerships[i]
		dealershipExists[d.ID] = true
		if d.EnterpriseGroupID != nil && !groupExists[*d.EnterpriseGroupID] {
			d.EnterpriseGroupID = nil
		}
		applyDealershipDefaults(d)
	}

	links := s.WebsiteLinks[:0]
	for _, l := range s.WebsiteLinks {
		if l.PrimaryURL == "" || !dealershipExists[l.DealershipID] {
			continue
		}
		links = append(links, l)
	}
	s.WebsiteLinks = links

	seenContacts := make(map[string]bool, len(s.Contacts))
	contacts := s.Contacts[:0]
	for _, c := range s.Contacts {
		if !dealershipExists[c.DealershipID] || seenContacts[c.DealershipID] {
			continue
		}
		seenContacts[c.DealershipID] = true
		contacts = append(contacts, c)
	}
	s.Contacts = contacts

	orders := s.Orders[:0]
	for _, o := range s.Orders {
		if !dealershipExists[o.DealershipID] {
			continue
		}
		applyOrderDefaults(&o)
		orders = append(orders, o)
	}
	s.Orders = orders

	for i := range s.Shoppers {
		applyShopperDefaults(&s.Shoppers[i])
	}
	for i := range s.NewFeatures {
		applyNewFeatureDefaults(&s.NewFeatures[i])
	}
	return s
}

func cloneDealership(d domain.Dealership) domain.Dealership {
	cp := d
	if d.EnterpriseGroupID != nil {
		id := *d.EnterpriseGroupID
		cp.EnterpriseGroupID = &id
	}
	return cp
}

func cloneGroup(g domain.EnterpriseGroup) domain.EnterpriseGroup { return g }

func cloneWebsiteLink(l domain.WebsiteLink) domain.WebsiteLink { return l }

func cloneContacts(c domain.DealershipContacts) domain.DealershipContacts { return c }

func cloneOrder(o domain.Order) domain.Order {
	cp := o
	cp.Products = append([]domain.OrderProduct(nil), o.Products...)
	return cp
}

func cloneShopper(s domain.Shopper) domain.Shopper { return s }

func cloneNewFeature(f domain.NewFeature) domain.NewFeature { return f }

func cloneTeamMember(m domain.TeamMember) domain.TeamMember { return m }

func cloneProviderProduct(p domain.ProviderProduct) domain.ProviderProduct { return p }
