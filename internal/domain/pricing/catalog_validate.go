package pricing

import "fmt"

// validateCatalog checks the static tables at process start. A broken
// catalog is a programmer error: fail loudly before serving a single
// request rather than misprice bookings.
func validateCatalog() error {
	for _, b := range bands {
		svcs, ok := serviceCatalog[b.band]
		if !ok {
			return fmt.Errorf("band %q has no service catalog", b.band)
		}
		seen := make(map[string]bool, len(svcs))
		for _, def := range svcs {
			if def.Name == "" {
				return fmt.Errorf("band %q has a service with an empty name", b.band)
			}
			if def.UnitPrice <= 0 {
				return fmt.Errorf("service %q in band %q has non-positive price %d", def.Name, b.band, def.UnitPrice)
			}
			if seen[def.Name] {
				return fmt.Errorf("service %q duplicated in band %q", def.Name, b.band)
			}
			seen[def.Name] = true
			if IsPackageName(def.Name) {
				return fmt.Errorf("name %q is both a package and a service", def.Name)
			}
		}
	}

	for _, name := range packageOrder {
		prices, ok := packagePrices[name]
		if !ok {
			return fmt.Errorf("package %q has no price table", name)
		}
		for _, b := range bands {
			price, ok := prices[b.band]
			if !ok {
				return fmt.Errorf("package %q has no price for band %q", name, b.band)
			}
			if price <= 0 {
				return fmt.Errorf("package %q in band %q has non-positive price %d", name, b.band, price)
			}
		}
		if len(packageIncludes[name]) == 0 {
			return fmt.Errorf("package %q has an empty include list", name)
		}
	}

	return nil
}
