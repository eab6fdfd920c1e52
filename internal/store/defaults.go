package store

import "dealerdesk/pkg/domain"

// Required-field defaults. The repository never rejects a write; missing
// required values are absorbed by these sentinels instead (both on create and
// when backfilling loaded snapshots).

func applyGroupDefaults(g *domain.EnterpriseGroup) {
	if g.Name == "" {
		g.Name = "Unnamed Group"
	}
}

func applyDealershipDefaults(d *domain.Dealership) {
	if d.Name == "" {
		d.Name = "Unnamed Dealership"
	}
	if d.Status == "" {
		d.Status = domain.DealershipStatusProspect
	}
	if d.CRMProvider == "" {
		d.CRMProvider = "Unknown"
	}
}

func applyOrderDefaults(o *domain.Order) {
	if o.Products == nil {
		o.Products = []domain.OrderProduct{}
	}
	if o.Status == "" {
		o.Status = domain.OrderStatusPending
	}
}

func applyShopperDefaults(s *domain.Shopper) {
	if s.Status == "" {
		s.Status = domain.ShopperStatusActive
	}
	if s.Priority == "" {
		s.Priority = domain.ShopperPriorityMedium
	}
}

func applyNewFeatureDefaults(f *domain.NewFeature) {
	if f.Title == "" {
		f.Title = "Untitled Feature"
	}
	if f.Status == "" {
		f.Status = domain.FeatureStatusPlanned
	}
}
