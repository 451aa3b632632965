package ingest

import "strings"

// CategoryUncategorized is the explicit no-match category. Configurations
// are never left with an empty category.
const CategoryUncategorized = "Uncategorized"

type categoryRule struct {
	Category string
	Keywords []string
}

// categoryRules is an ordered keyword table; the first matching rule wins.
// More specific rules (controllers, GPUs) come before the broad ones they
// would otherwise collide with.
var categoryRules = []categoryRule{
	{"Storage Controller", []string{"raid", "perc", "hba", "storage controller", "smart array"}},
	{"GPU", []string{"gpu", "nvidia", "a100", "h100", "l40", "tesla"}},
	{"Network", []string{"nic", "ethernet", "network adapter", "10gbe", "25gbe", "broadcom", "mellanox", "ocp"}},
	{"Processor", []string{"cpu", "xeon", "epyc", "processor"}},
	{"Memory", []string{"dimm", "rdimm", "ddr4", "ddr5", "memory", "ram"}},
	{"Storage", []string{"ssd", "hdd", "nvme", "sata", "sas drive", "hard drive", "drive"}},
	{"Power Supply", []string{"power supply", "psu", "redundant supply", "watt"}},
	{"Chassis", []string{"chassis", "rail", "bezel", "rack mount", "riser"}},
	{"Support", []string{"prosupport", "foundation care", "warranty", "support service", "premier support"}},
	{"Software", []string{"license", "windows server", "vmware", "subscription"}},
}

// InferCategory classifies a component from its description text. No match
// yields CategoryUncategorized, never an empty string.
func InferCategory(description string) string {
	text := strings.ToLower(description)
	for _, rule := range categoryRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule.Category
			}
		}
	}
	return CategoryUncategorized
}

// EnrichModel fills the gaps the extractor left on a fully classified model:
// missing categories are inferred from description text, and for vendors
// whose layout carries a lot-level price it is propagated to the model's
// pricing when per-row prices are absent. A per-row price that is present is
// never overwritten.
func EnrichModel(m *Model, spec *VendorSpec) {
	for i := range m.Configurations {
		if m.Configurations[i].Category == "" {
			m.Configurations[i].Category = InferCategory(m.Configurations[i].Description)
		}
	}

	if !spec.PropagateLotPrice || m.Pricing == nil {
		return
	}
	if m.Pricing.BasePrice == nil && m.Pricing.NetPrice == nil {
		return
	}
	// The lot price covers the whole group; rows that carried their own
	// price keep it.
	anyRowPrice := false
	for _, c := range m.Configurations {
		if c.UnitPrice != nil {
			anyRowPrice = true
			break
		}
	}
	m.Pricing.Propagated = !anyRowPrice
}
