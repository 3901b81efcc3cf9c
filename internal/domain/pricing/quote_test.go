package pricing

import "testing"

func TestComputePricingEssentialsPlusTwilight(t *testing.T) {
	quote, errs := ComputePricing(QuoteInput{
		PropertySize: "1200",
		Lines: []SelectedLine{
			{Name: PackageEssentials, Count: 1},
			{Name: "Virtual Twilight", Count: 1},
		},
		AgentName:  "Jane Realtor",
		AgentEmail: "jane@brokerage.ca",
	})
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if quote.Band != BandUnder1500 {
		t.Errorf("band = %q, want %q", quote.Band, BandUnder1500)
	}
	if quote.Subtotal != 27998 {
		t.Errorf("subtotal = %d, want 27998", quote.Subtotal)
	}
	if quote.DiscountPercent != 3 || quote.DiscountAmount != 840 {
		t.Errorf("discount = %d%% / %d, want 3%% / 840", quote.DiscountPercent, quote.DiscountAmount)
	}
	if quote.Total != 27158 {
		t.Errorf("total = %d, want 27158", quote.Total)
	}
}

func TestComputePricingUnknownServiceFails(t *testing.T) {
	quote, errs := ComputePricing(QuoteInput{
		PropertySize: "1200",
		Lines:        []SelectedLine{{Name: "Nonexistent Service", Count: 1}},
		AgentName:    "Jane Realtor",
		AgentEmail:   "jane@brokerage.ca",
	})
	if quote != nil {
		t.Fatal("quote must be nil when validation fails")
	}
	if len(errs) != 1 || errs[0].Code != CodeUnknownServiceName {
		t.Fatalf("expected one UNKNOWN_SERVICE_NAME error, got %v", errs)
	}
}

func TestComputePricingCollectsAllErrors(t *testing.T) {
	quote, errs := ComputePricing(QuoteInput{
		PropertySize: "",
		Lines: []SelectedLine{
			{Name: "Nonexistent Service", Count: 1},
			{Name: "HDR Photography", Count: 0},
		},
		AgentName:  "",
		AgentEmail: "",
	})
	if quote != nil {
		t.Fatal("quote must be nil when validation fails")
	}

	counts := make(map[ErrorCode]int)
	for _, issue := range errs {
		counts[issue.Code]++
	}
	if counts[CodeMissingRequiredField] != 2 {
		t.Errorf("expected 2 missing-field errors, got %d", counts[CodeMissingRequiredField])
	}
	if counts[CodeInvalidCount] != 1 {
		t.Errorf("expected 1 invalid-count error, got %d", counts[CodeInvalidCount])
	}
	if counts[CodeUnknownServiceName] != 1 {
		t.Errorf("expected 1 unknown-service error, got %d", counts[CodeUnknownServiceName])
	}
}

func TestComputePricingMissingSizeIsNotAnError(t *testing.T) {
	quote, errs := ComputePricing(QuoteInput{
		PropertySize: "",
		Lines:        []SelectedLine{{Name: "HDR Photography", Count: 1}},
		AgentName:    "Jane Realtor",
		AgentEmail:   "jane@brokerage.ca",
	})
	if errs != nil {
		t.Fatalf("missing size must fall back, not fail: %v", errs)
	}
	if quote.Band != BandUnder1500 {
		t.Errorf("band = %q, want smallest band", quote.Band)
	}
}
