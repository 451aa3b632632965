package ingest

import "testing"

func TestInferCategory(t *testing.T) {
	tests := []struct {
		description string
		want        string
	}{
		{"Intel Xeon Silver 4410Y Processor", "Processor"},
		{"32GB RDIMM 4800MT/s Dual Rank", "Memory"},
		{"960GB SSD SATA Read Intensive", "Storage"},
		{"PERC H755 SAS Front", "Storage Controller"},
		{"NVIDIA A100 80GB", "GPU"},
		{"Broadcom 57414 Dual Port 25GbE", "Network"},
		{"Dual Hot-Plug Power Supply 800 Watt", "Power Supply"},
		{"ReadyRails Sliding Rails", "Chassis"},
		{"3Yr ProSupport Next Business Day", "Support"},
		{"Windows Server 2022 Standard License", "Software"},
		{"Mystery widget assembly", CategoryUncategorized},
		{"", CategoryUncategorized},
	}

	for _, tt := range tests {
		if got := InferCategory(tt.description); got != tt.want {
			t.Errorf("InferCategory(%q) = %q, want %q", tt.description, got, tt.want)
		}
	}
}

func TestInferCategorySpecificRuleWins(t *testing.T) {
	// RAID controllers mention drives; the controller rule is ordered first.
	if got := InferCategory("PERC H755 RAID controller for 8 drives"); got != "Storage Controller" {
		t.Errorf("got %q, want Storage Controller", got)
	}
}

func TestEnrichModelFillsCategories(t *testing.T) {
	m := &Model{
		Name: "Compute Lot A",
		Configurations: []Configuration{
			{Description: "Intel Xeon Silver 4410Y"},
			{Description: "something unrecognizable"},
			{Description: "32GB RDIMM", Category: "Preset"},
		},
	}

	EnrichModel(m, dellSpec(t))

	if m.Configurations[0].Category != "Processor" {
		t.Errorf("category = %q, want Processor", m.Configurations[0].Category)
	}
	if m.Configurations[1].Category != CategoryUncategorized {
		t.Errorf("category = %q, want Uncategorized", m.Configurations[1].Category)
	}
	if m.Configurations[2].Category != "Preset" {
		t.Errorf("preset category overwritten: %q", m.Configurations[2].Category)
	}
}

func TestEnrichModelPropagationFlag(t *testing.T) {
	price := 3292.0
	m := &Model{
		Pricing: &Pricing{NetPrice: &price},
		Configurations: []Configuration{
			{Description: "component without own price"},
		},
	}

	EnrichModel(m, dellSpec(t))
	if !m.Pricing.Propagated {
		t.Error("lot price should be marked propagated when rows carry no prices")
	}
}

func TestEnrichModelRowPricesBlockPropagation(t *testing.T) {
	lot := 3292.0
	row := 120.0
	m := &Model{
		Pricing: &Pricing{NetPrice: &lot},
		Configurations: []Configuration{
			{Description: "component", UnitPrice: &row},
		},
	}

	EnrichModel(m, dellSpec(t))
	if m.Pricing.Propagated {
		t.Error("per-row prices must not be overridden by the lot price")
	}
}

func TestEnrichModelVendorWithoutPropagation(t *testing.T) {
	price := 4200.0
	m := &Model{
		Pricing: &Pricing{NetPrice: &price},
		Configurations: []Configuration{
			{Description: "component"},
		},
	}

	EnrichModel(m, lenovoSpec(t))
	if m.Pricing.Propagated {
		t.Error("propagation is vendor-configurable and off for this layout")
	}
}
