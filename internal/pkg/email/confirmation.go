package email

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rephotos/admin-api/internal/domain/pricing"
)

// ConfirmationLine is one persisted service line rendered in the email.
// Price and Total are the stored dollar amounts.
type ConfirmationLine struct {
	Name  string
	Price float64
	Count int
	Total float64
}

// BookingConfirmation carries everything needed to render a booking
// confirmation. All amounts are the values persisted with the booking;
// nothing is recomputed at render time.
type BookingConfirmation struct {
	AgentName    string
	AgentEmail   string
	AgentPhone   string
	AgentCompany string

	PropertySize   string
	PropertyStatus string
	PreferredDate  time.Time
	Time           string // 24h "15:04"
	Address        string
	Notes          string

	Lines           []ConfirmationLine
	Subtotal        float64
	DiscountPercent int64
	DiscountAmount  float64
	Total           float64
}

// Branding holds company details rendered into outgoing emails.
type Branding struct {
	CompanyName   string
	Phone         string
	FromEmail     string
	SignatureName string
	PrepGuideURL  string
	WebsiteLine   string
}

// ConfirmationSubject is the subject line for booking confirmations.
const ConfirmationSubject = "📸 Booking Confirmation – RePhotos"

// BuildConfirmationBody renders the plain-text booking confirmation.
func BuildConfirmationBody(data BookingConfirmation, brand Branding) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Dear %s,\n\n", data.AgentName)
	fmt.Fprintf(&b, "Thank you for choosing %s for your photography needs! We're excited to help showcase your property.\n\n", brand.CompanyName)
	b.WriteString("📸 BOOKING CONFIRMATION\n\n")

	b.WriteString("PROPERTY DETAILS\n")
	fmt.Fprintf(&b, "• Size: %s\n", data.PropertySize)
	if data.PropertyStatus != "" {
		fmt.Fprintf(&b, "• Status: %s\n", data.PropertyStatus)
	}
	fmt.Fprintf(&b, "• Preferred Date: %s\n", data.PreferredDate.Format("January 2, 2006"))
	if data.Time != "" {
		fmt.Fprintf(&b, "• Preferred Time: %s\n", formatTime12h(data.Time))
	}
	fmt.Fprintf(&b, "• Address: %s\n\n", data.Address)

	b.WriteString("SERVICES BOOKED\n")
	b.WriteString(formatServiceSections(data.Lines, data.PropertySize))
	b.WriteString("\n\n")

	b.WriteString(priceSection(data))
	b.WriteString("\n\n")

	if data.Notes != "" {
		fmt.Fprintf(&b, "ADDITIONAL NOTES\n%s\n\n", data.Notes)
	}

	b.WriteString("AGENT INFORMATION\n")
	fmt.Fprintf(&b, "• Name: %s\n", data.AgentName)
	fmt.Fprintf(&b, "• Email: %s\n", data.AgentEmail)
	if data.AgentPhone != "" {
		fmt.Fprintf(&b, "• Phone: %s\n", data.AgentPhone)
	}
	if data.AgentCompany != "" {
		fmt.Fprintf(&b, "• Company: %s\n", data.AgentCompany)
	}
	b.WriteString("\n")

	b.WriteString("NEXT STEPS\n\n")
	b.WriteString("We'll review your booking and confirm the appointment time.\n\n")
	if brand.PrepGuideURL != "" {
		fmt.Fprintf(&b, "Please ensure the property is ready by reviewing our Photo Day Prep Guide: %s\n\n", brand.PrepGuideURL)
	}
	b.WriteString("Our photographer will arrive on time and begin capturing the property as outlined in the checklist.\n\n")
	fmt.Fprintf(&b, "If you need to make any changes to your booking, simply reply to this email or call us at %s.\n\n", brand.Phone)

	b.WriteString("Best regards,\n")
	fmt.Fprintf(&b, "%s\n", brand.SignatureName)
	fmt.Fprintf(&b, "%s\n", brand.FromEmail)
	fmt.Fprintf(&b, "%s\n", brand.Phone)
	b.WriteString(brand.WebsiteLine)

	return strings.TrimSpace(b.String())
}

// formatServiceSections renders package lines with their included services,
// followed by the remaining individual lines. Persisted lines are already
// deduplicated against package contents, so every line is shown.
func formatServiceSections(lines []ConfirmationLine, propertySize string) string {
	band := pricing.ResolveSizeBand(propertySize)
	includes := map[string][]string{}
	for _, pkg := range pricing.PackagesFor(band) {
		includes[pkg.Name] = pkg.Includes
	}

	var sections []string

	for _, line := range lines {
		if !pricing.IsPackageName(line.Name) {
			continue
		}
		var s strings.Builder
		fmt.Fprintf(&s, "📦 %s (%s) - $%.2f\n", line.Name, propertySize, line.Total)
		s.WriteString("   Includes:\n")
		for _, inc := range includes[line.Name] {
			fmt.Fprintf(&s, "   • %s\n", inc)
		}
		sections = append(sections, strings.TrimRight(s.String(), "\n"))
	}

	var individual strings.Builder
	for _, line := range lines {
		if pricing.IsPackageName(line.Name) {
			continue
		}
		suffix := ""
		if line.Count > 1 {
			suffix = fmt.Sprintf(" (x%d)", line.Count)
		}
		fmt.Fprintf(&individual, "   • %s%s - $%.2f\n", line.Name, suffix, line.Total)
	}
	if individual.Len() > 0 {
		sections = append(sections, "🔧 Additional Services:\n"+strings.TrimRight(individual.String(), "\n"))
	}

	return strings.Join(sections, "\n\n")
}

func priceSection(data BookingConfirmation) string {
	if data.DiscountPercent > 0 {
		return fmt.Sprintf(
			"PRICING BREAKDOWN\nSubtotal: $%.2f\nVolume Discount (%d%%): -$%.2f\nTotal After Discount: $%.2f",
			data.Subtotal, data.DiscountPercent, data.DiscountAmount, data.Total)
	}
	return fmt.Sprintf("TOTAL PRICE\n$%.2f", data.Total)
}

// formatTime12h converts "15:04" to "3:04 PM". Unparseable input is
// returned as-is.
func formatTime12h(t string) string {
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return t
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hour < 0 || hour > 23 {
		return t
	}
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%d:%s %s", hour12, parts[1], ampm)
}
