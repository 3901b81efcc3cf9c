package pricing

import "testing"

func TestServicesForKnownBand(t *testing.T) {
	svcs := ServicesFor(BandUnder1500)
	if len(svcs) != 14 {
		t.Fatalf("expected 14 services, got %d", len(svcs))
	}

	def, ok := serviceFor(BandUnder1500, "HDR Photography")
	if !ok {
		t.Fatal("HDR Photography missing from smallest band")
	}
	if def.UnitPrice != 18999 {
		t.Errorf("HDR Photography price = %d, want 18999", def.UnitPrice)
	}
}

func TestServicesForUnknownBandFallsBack(t *testing.T) {
	fallback := ServicesFor(Band("1000–1999 sq ft"))
	smallest := ServicesFor(BandUnder1500)
	if len(fallback) != len(smallest) {
		t.Fatalf("fallback catalog has %d services, smallest band has %d", len(fallback), len(smallest))
	}
	for i := range fallback {
		if fallback[i] != smallest[i] {
			t.Fatalf("fallback catalog differs from smallest band at %d", i)
		}
	}
}

func TestPackagesForOrderAndPrices(t *testing.T) {
	pkgs := PackagesFor(Band1500)
	want := []string{PackageEssentials, PackageDeluxeTour, PackageMarketingPro, PackagePremiumSeller}
	if len(pkgs) != len(want) {
		t.Fatalf("expected %d packages, got %d", len(want), len(pkgs))
	}
	for i, name := range want {
		if pkgs[i].Name != name {
			t.Errorf("package %d = %q, want %q", i, pkgs[i].Name, name)
		}
	}
	if pkgs[0].UnitPrice != 28999 {
		t.Errorf("Essentials at %s = %d, want 28999", Band1500, pkgs[0].UnitPrice)
	}
}

func TestPackageAndServiceNamespacesDisjoint(t *testing.T) {
	for _, b := range bands {
		for _, def := range ServicesFor(b.band) {
			if IsPackageName(def.Name) {
				t.Errorf("name %q is both a service and a package", def.Name)
			}
		}
	}
}

func TestValidateCatalog(t *testing.T) {
	if err := validateCatalog(); err != nil {
		t.Fatalf("catalog should validate: %v", err)
	}
}
