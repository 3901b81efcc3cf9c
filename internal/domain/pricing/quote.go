package pricing

import "strings"

// QuoteInput is the inbound payload for a pricing computation. Any
// client-submitted total is deliberately absent: the server never
// trusts a client-supplied charge.
type QuoteInput struct {
	PropertySize string
	Lines        []SelectedLine
	AgentName    string
	AgentEmail   string
}

// Quote is the authoritative pricing result persisted on a booking.
// Once persisted it is display data only; formatters read it verbatim
// and never recompute.
type Quote struct {
	Band            Band
	LineItems       []LineItem
	Subtotal        Cents
	DiscountPercent int64
	DiscountAmount  Cents
	Total           Cents
}

// ComputePricing validates the input and runs the full pipeline: size
// band resolution, line-item composition, volume discount. All
// validation problems are collected and returned together; on any
// problem the quote is nil and nothing may be persisted.
func ComputePricing(in QuoteInput) (*Quote, ValidationErrors) {
	var issues ValidationErrors

	if strings.TrimSpace(in.AgentName) == "" {
		issues = append(issues, issuef(CodeMissingRequiredField, "agent_name is required"))
	}
	if strings.TrimSpace(in.AgentEmail) == "" {
		issues = append(issues, issuef(CodeMissingRequiredField, "agent_email is required"))
	}
	if len(in.Lines) == 0 {
		issues = append(issues, issuef(CodeMissingRequiredField, "services must be a non-empty list"))
	}
	for _, line := range in.Lines {
		if strings.TrimSpace(line.Name) == "" {
			issues = append(issues, issuef(CodeMissingRequiredField, "every service line needs a name"))
		}
		if line.Count < 1 {
			issues = append(issues, issuef(CodeInvalidCount,
				"service %q has invalid count %d", line.Name, line.Count))
		}
	}

	band := ResolveSizeBand(in.PropertySize)

	items, composeIssues := ComposeLineItems(in.Lines, band)
	issues = append(issues, composeIssues...)
	if len(issues) > 0 {
		return nil, issues
	}

	subtotal := Subtotal(items)
	disc := ApplyVolumeDiscount(subtotal)

	return &Quote{
		Band:            band,
		LineItems:       items,
		Subtotal:        subtotal,
		DiscountPercent: disc.Percent,
		DiscountAmount:  disc.Discount,
		Total:           disc.Total,
	}, nil
}
