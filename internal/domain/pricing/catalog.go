package pricing

import "github.com/rs/zerolog/log"

// ServiceDefinition is an individually purchasable service priced per
// band.
type ServiceDefinition struct {
	Name      string
	UnitPrice Cents
}

// PackageDefinition is a named bundle with a single price covering a
// fixed set of included services. Included services are bundled at no
// extra charge when the package is selected.
type PackageDefinition struct {
	Name      string
	UnitPrice Cents
	Includes  []string
}

// Package and service names are disjoint namespaces; composition relies
// on classifying a selected line by name alone.

const (
	PackageEssentials    = "Essentials Package"
	PackageDeluxeTour    = "Deluxe Tour Package"
	PackageMarketingPro  = "Marketing Pro Package"
	PackagePremiumSeller = "Premium Seller Experience"
)

// packageOrder fixes the iteration order of PackagesFor.
var packageOrder = []string{
	PackageEssentials,
	PackageDeluxeTour,
	PackageMarketingPro,
	PackagePremiumSeller,
}

// packageIncludes are identical across bands; only the price varies.
var packageIncludes = map[string][]string{
	PackageEssentials: {
		"HDR Photography", "1–2 Drone Shots", "Slideshow Video Tour", "Property Website",
	},
	PackageDeluxeTour: {
		"HDR Photography", "2–3 Drone Shots", "360° Virtual Tour", "2D Floor Plan",
		"Slideshow Video Tour", "Property Website", "Custom Domain Name",
	},
	PackageMarketingPro: {
		"HDR Photography", "2–3 Drone Shots", "360° Virtual Tour", "2D Floor Plan",
		"Custom Video", "Property Website", "Custom Domain Name", "Slideshow Video Tour",
	},
	PackagePremiumSeller: {
		"HDR Photography", "3–5 Drone Shots", "360° Virtual Tour", "2D Floor Plan",
		"Custom Video", "Property Website", "Custom Domain Name", "3D House Model",
		"Virtual Twilight", "Slideshow Video Tour",
	},
}

var packagePrices = map[string]map[Band]Cents{
	PackageEssentials: {
		BandUnder1500: 22999,
		Band1500:      28999,
		Band2500:      34999,
		Band3500:      38999,
		Band4500:      44999,
	},
	PackageDeluxeTour: {
		BandUnder1500: 48999,
		Band1500:      57999,
		Band2500:      64999,
		Band3500:      71999,
		Band4500:      79999,
	},
	PackageMarketingPro: {
		BandUnder1500: 82999,
		Band1500:      95999,
		Band2500:      107999,
		Band3500:      117999,
		Band4500:      129999,
	},
	PackagePremiumSeller: {
		BandUnder1500: 106999,
		Band1500:      119999,
		Band2500:      131999,
		Band3500:      141999,
		Band4500:      153999,
	},
}

var serviceCatalog = map[Band][]ServiceDefinition{
	BandUnder1500: {
		{"HDR Photography", 18999},
		{"360° Virtual Tour", 19999},
		{"Property Highlights Video", 28999},
		{"Slideshow Video Tour", 9999},
		{"Social Media Reel", 22999},
		{"Drone Aerial Photos", 15999},
		{"Drone Aerial Video", 15999},
		{"2D Floor Plan", 11999},
		{"3D House Model", 18999},
		{"Property Website", 12999},
		{"Custom Domain Name", 3999},
		{"Virtual Declutter", 2999},
		{"Virtual Staging", 3999},
		{"Virtual Twilight", 4999},
	},
	Band1500: {
		{"HDR Photography", 24999},
		{"360° Virtual Tour", 23999},
		{"Property Highlights Video", 30999},
		{"Slideshow Video Tour", 9999},
		{"Social Media Reel", 24999},
		{"Drone Aerial Photos", 15999},
		{"Drone Aerial Video", 15999},
		{"2D Floor Plan", 14999},
		{"3D House Model", 22999},
		{"Property Website", 12999},
		{"Custom Domain Name", 3999},
		{"Virtual Declutter", 2999},
		{"Virtual Staging", 3999},
		{"Virtual Twilight", 4999},
	},
	Band2500: {
		{"HDR Photography", 31999},
		{"360° Virtual Tour", 27999},
		{"Property Highlights Video", 34999},
		{"Slideshow Video Tour", 9999},
		{"Social Media Reel", 27999},
		{"Drone Aerial Photos", 15999},
		{"Drone Aerial Video", 15999},
		{"2D Floor Plan", 18999},
		{"3D House Model", 26999},
		{"Property Website", 12999},
		{"Custom Domain Name", 3999},
		{"Virtual Declutter", 2999},
		{"Virtual Staging", 3999},
		{"Virtual Twilight", 4999},
	},
	Band3500: {
		{"HDR Photography", 37999},
		{"360° Virtual Tour", 31999},
		{"Property Highlights Video", 37999},
		{"Slideshow Video Tour", 9999},
		{"Social Media Reel", 29999},
		{"Drone Aerial Photos", 15999},
		{"Drone Aerial Video", 15999},
		{"2D Floor Plan", 22999},
		{"3D House Model", 29999},
		{"Property Website", 12999},
		{"Custom Domain Name", 3999},
		{"Virtual Declutter", 2999},
		{"Virtual Staging", 3999},
		{"Virtual Twilight", 4999},
	},
	Band4500: {
		{"HDR Photography", 43999},
		{"360° Virtual Tour", 34999},
		{"Property Highlights Video", 40999},
		{"Slideshow Video Tour", 9999},
		{"Social Media Reel", 32999},
		{"Drone Aerial Photos", 15999},
		{"Drone Aerial Video", 15999},
		{"2D Floor Plan", 26999},
		{"3D House Model", 33999},
		{"Property Website", 12999},
		{"Custom Domain Name", 3999},
		{"Virtual Declutter", 2999},
		{"Virtual Staging", 3999},
		{"Virtual Twilight", 4999},
	},
}

// ServicesFor returns the individual-service catalog for the band. An
// unknown band falls back to the smallest configured band; kept for
// compatibility with historic records whose size labels predate the
// current bands.
func ServicesFor(band Band) []ServiceDefinition {
	if svcs, ok := serviceCatalog[band]; ok {
		return svcs
	}
	log.Warn().Str("band", string(band)).Msg("Unknown size band, falling back to smallest band catalog")
	return serviceCatalog[smallestBand]
}

// PackagesFor returns the package catalog for the band, in fixed order.
func PackagesFor(band Band) []PackageDefinition {
	defs := make([]PackageDefinition, 0, len(packageOrder))
	for _, name := range packageOrder {
		prices := packagePrices[name]
		price, ok := prices[band]
		if !ok {
			log.Warn().Str("band", string(band)).Str("package", name).Msg("Unknown size band, falling back to smallest band price")
			price = prices[smallestBand]
		}
		defs = append(defs, PackageDefinition{
			Name:      name,
			UnitPrice: price,
			Includes:  packageIncludes[name],
		})
	}
	return defs
}

// IsPackageName reports whether name refers to a package in any band.
func IsPackageName(name string) bool {
	_, ok := packagePrices[name]
	return ok
}

// serviceFor looks up a single service definition by name for the band.
func serviceFor(band Band, name string) (ServiceDefinition, bool) {
	for _, def := range ServicesFor(band) {
		if def.Name == name {
			return def, true
		}
	}
	return ServiceDefinition{}, false
}

func init() {
	if err := validateCatalog(); err != nil {
		panic("pricing: malformed catalog: " + err.Error())
	}
}
