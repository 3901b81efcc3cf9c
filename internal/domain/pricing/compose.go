package pricing

// SelectedLine is a caller-supplied selection: a package or service
// name with a count. UnitPriceOverride is only honored for ad-hoc
// custom line items that exist in no catalog; packages and catalog
// services are never client-priced.
type SelectedLine struct {
	Name              string
	Count             int
	UnitPriceOverride *Cents
}

// ItemKind classifies a resolved line item.
type ItemKind string

const (
	KindPackage        ItemKind = "package"
	KindCatalogService ItemKind = "service"
	KindCustomService  ItemKind = "custom"
)

// LineItem is one resolved, priced line of a booking.
type LineItem struct {
	Name      string
	Kind      ItemKind
	UnitPrice Cents
	Count     int
	LineTotal Cents
}

// ComposeLineItems turns a raw selection into the canonical line-item
// breakdown for the band. Packages come first in selection order, then
// individual and custom services in selection order; the output is
// deterministic for identical input.
//
// A candidate service already covered by a selected package's include
// list is dropped entirely so nothing is ever billed twice. Lines that
// match no catalog entry and carry no valid override are reported as
// issues; callers must treat any returned issue as fatal for the whole
// computation.
func ComposeLineItems(selected []SelectedLine, band Band) ([]LineItem, ValidationErrors) {
	var (
		items  []LineItem
		issues ValidationErrors
	)

	packages := PackagesFor(band)
	byName := make(map[string]PackageDefinition, len(packages))
	for _, def := range packages {
		byName[def.Name] = def
	}

	// Pass 1: packages, accumulating the covered-include set.
	covered := make(map[string]bool)
	var candidates []SelectedLine
	for _, line := range selected {
		def, isPackage := byName[line.Name]
		if !isPackage {
			candidates = append(candidates, line)
			continue
		}
		count := line.Count
		if count < 1 {
			count = 1
		}
		items = append(items, LineItem{
			Name:      def.Name,
			Kind:      KindPackage,
			UnitPrice: def.UnitPrice,
			Count:     count,
			LineTotal: def.UnitPrice * Cents(count),
		})
		for _, inc := range def.Includes {
			covered[inc] = true
		}
	}

	// Pass 2: individual services not already paid for via a package.
	for _, line := range candidates {
		if covered[line.Name] {
			continue
		}
		count := line.Count
		if count < 1 {
			count = 1
		}

		if def, ok := serviceFor(band, line.Name); ok {
			items = append(items, LineItem{
				Name:      def.Name,
				Kind:      KindCatalogService,
				UnitPrice: def.UnitPrice,
				Count:     count,
				LineTotal: def.UnitPrice * Cents(count),
			})
			continue
		}

		if line.UnitPriceOverride != nil {
			price := *line.UnitPriceOverride
			if price <= 0 {
				issues = append(issues, issuef(CodeInvalidCustomPrice,
					"custom service %q has invalid price %s", line.Name, price))
				continue
			}
			items = append(items, LineItem{
				Name:      line.Name,
				Kind:      KindCustomService,
				UnitPrice: price,
				Count:     count,
				LineTotal: price * Cents(count),
			})
			continue
		}

		issues = append(issues, issuef(CodeUnknownServiceName,
			"service %q is not in the %s catalog and has no custom price", line.Name, band))
	}

	return items, issues
}

// Subtotal sums the line totals of a composed breakdown.
func Subtotal(items []LineItem) Cents {
	var sum Cents
	for _, item := range items {
		sum += item.LineTotal
	}
	return sum
}
