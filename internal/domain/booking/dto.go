package booking

import (
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rephotos/admin-api/internal/domain/pricing"
)

// SizeValue accepts the property size as either a string ("1500-2499
// sq.ft.", "1,800 sq ft") or a bare number (1800).
type SizeValue string

// UnmarshalJSON implements json.Unmarshaler
func (s *SizeValue) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*s = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = SizeValue(str)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = SizeValue(strconv.FormatInt(int64(n), 10))
	return nil
}

// ServiceLineInput is one requested service or package line.
type ServiceLineInput struct {
	Name  string   `json:"name" validate:"required"`
	Count int      `json:"count"`
	Price *float64 `json:"price"`
}

// CreateBookingRequest is the POST /bookings payload. The client may send
// prices and a total, but amounts for catalog entries are always recomputed
// server-side.
type CreateBookingRequest struct {
	PropertySize SizeValue          `json:"property_size"`
	Services     []ServiceLineInput `json:"services" validate:"required,min=1,dive"`
	TotalAmount  *float64           `json:"total_amount"` // ignored, recomputed

	PropertyStatus string   `json:"property_status"`
	PropertyType   string   `json:"property_type"`
	Bedrooms       *int64   `json:"bedrooms"`
	Bathrooms      *float64 `json:"bathrooms"`
	ParkingSpaces  *int64   `json:"parking_spaces"`
	SuiteUnit      string   `json:"suite_unit"`
	Address        Address  `json:"address"`

	PreferredDate      string `json:"preferred_date" validate:"required"`
	Time               string `json:"time"`
	AccessInstructions string `json:"access_instructions"`

	SelectedPackageName string `json:"selected_package_name"`

	AgentName        string `json:"agent_name" validate:"required,min=2,max=200"`
	AgentEmail       string `json:"agent_email" validate:"required,email"`
	AgentPhone       string `json:"agent_phone"`
	AgentCompany     string `json:"agent_company"`
	AgentDesignation string `json:"agent_designation"`
	AgentBrokerage   string `json:"agent_brokerage"`

	AdditionalInstructions string `json:"additional_instructions"`
	FeatureSheetContent    string `json:"feature_sheet_content"`
	PromotionCode          string `json:"promotion_code"`
	Notes                  string `json:"notes"`
}

// QuoteRequest is the POST /bookings/quote payload for a pricing preview.
type QuoteRequest struct {
	PropertySize SizeValue          `json:"property_size"`
	Services     []ServiceLineInput `json:"services" validate:"required,min=1,dive"`
	AgentName    string             `json:"agent_name" validate:"required,min=2,max=200"`
	AgentEmail   string             `json:"agent_email" validate:"required,email"`
}

// UpdateBookingItem is one entry of the batch update payload. Only fields
// that are present are applied. UpdatedAt, when sent, is a precondition:
// the update fails with a conflict if the row changed since that timestamp.
type UpdateBookingItem struct {
	ID        uuid.UUID  `json:"id" validate:"required"`
	UpdatedAt *time.Time `json:"updated_at"`

	Status        *string `json:"status" validate:"omitempty,booking_status"`
	PaymentStatus *string `json:"payment_status" validate:"omitempty,payment_status"`
	EditingStatus *string `json:"editing_status" validate:"omitempty,editing_status"`

	PropertySize *SizeValue          `json:"property_size"`
	Services     *[]ServiceLineInput `json:"services" validate:"omitempty,min=1,dive"`

	PreferredDate *string `json:"preferred_date"`
	Time          *string `json:"time"`

	RawPhotosLink    *string `json:"raw_photos_link"`
	FinalEditsLink   *string `json:"final_edits_link"`
	Tour360Link      *string `json:"tour_360_link"`
	EditorLink       *string `json:"editor_link"`
	DeliveryPageLink *string `json:"delivery_page_link"`
	InvoiceLink      *string `json:"invoice_link"`

	Notes *string `json:"notes"`
}

// BatchUpdateRequest is the POST /bookings/update payload.
type BatchUpdateRequest struct {
	Bookings []UpdateBookingItem `json:"bookings" validate:"required,min=1,dive"`
}

// SendEmailRequest is the POST /emails payload for delivery notifications.
type SendEmailRequest struct {
	To        string     `json:"to" validate:"required,email"`
	Subject   string     `json:"subject" validate:"required"`
	HTML      string     `json:"html"`
	Text      string     `json:"text"`
	BookingID *uuid.UUID `json:"booking_id"`
}

// BookingResponse is the API shape of a booking row.
type BookingResponse struct {
	ID              uuid.UUID `json:"id"`
	ReferenceNumber string    `json:"reference_number"`

	Status        Status        `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	EditingStatus EditingStatus `json:"editing_status"`

	PropertySize   string   `json:"property_size"`
	PropertyStatus *string  `json:"property_status,omitempty"`
	PropertyType   *string  `json:"property_type,omitempty"`
	Bedrooms       *int64   `json:"bedrooms,omitempty"`
	Bathrooms      *float64 `json:"bathrooms,omitempty"`
	ParkingSpaces  *int64   `json:"parking_spaces,omitempty"`
	SuiteUnit      *string  `json:"suite_unit,omitempty"`
	Address        Address  `json:"address"`

	PreferredDate      string  `json:"preferred_date"`
	Time               *string `json:"time,omitempty"`
	AccessInstructions *string `json:"access_instructions,omitempty"`

	Services        ServiceLines `json:"services"`
	Subtotal        float64      `json:"subtotal"`
	DiscountPercent int64        `json:"discount_percent"`
	DiscountAmount  float64      `json:"discount_amount"`
	TotalAmount     float64      `json:"total_amount"`

	SelectedPackageName *string `json:"selected_package_name,omitempty"`

	AgentName        string  `json:"agent_name"`
	AgentEmail       string  `json:"agent_email"`
	AgentPhone       *string `json:"agent_phone,omitempty"`
	AgentCompany     *string `json:"agent_company,omitempty"`
	AgentDesignation *string `json:"agent_designation,omitempty"`
	AgentBrokerage   *string `json:"agent_brokerage,omitempty"`

	AdditionalInstructions *string `json:"additional_instructions,omitempty"`
	FeatureSheetContent    *string `json:"feature_sheet_content,omitempty"`
	PromotionCode          *string `json:"promotion_code,omitempty"`
	Notes                  *string `json:"notes,omitempty"`

	RawPhotosLink    *string `json:"raw_photos_link,omitempty"`
	FinalEditsLink   *string `json:"final_edits_link,omitempty"`
	Tour360Link      *string `json:"tour_360_link,omitempty"`
	EditorLink       *string `json:"editor_link,omitempty"`
	DeliveryPageLink *string `json:"delivery_page_link,omitempty"`
	InvoiceLink      *string `json:"invoice_link,omitempty"`

	DeliveryEmailSent bool `json:"delivery_email_sent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QuoteResponse is the pricing preview shape.
type QuoteResponse struct {
	PropertySize    string       `json:"property_size"`
	Services        ServiceLines `json:"services"`
	Subtotal        float64      `json:"subtotal"`
	DiscountPercent int64        `json:"discount_percent"`
	DiscountAmount  float64      `json:"discount_amount"`
	TotalAmount     float64      `json:"total_amount"`
}

// BatchUpdateResult reports the outcome of one batch entry.
type BatchUpdateResult struct {
	ID      uuid.UUID        `json:"id"`
	Updated bool             `json:"updated"`
	Error   string           `json:"error,omitempty"`
	Booking *BookingResponse `json:"booking,omitempty"`
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullableInt64(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	v := ni.Int64
	return &v
}

func nullableFloat64(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	v := nf.Float64
	return &v
}

// BookingResponseFromEntity converts an entity to its API shape.
func BookingResponseFromEntity(b *Booking) *BookingResponse {
	subtotal, _ := b.Subtotal.Float64()
	discount, _ := b.DiscountAmount.Float64()
	total, _ := b.TotalAmount.Float64()

	return &BookingResponse{
		ID:              b.ID,
		ReferenceNumber: b.ReferenceNumber,

		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		EditingStatus: b.EditingStatus,

		PropertySize:   b.PropertySize,
		PropertyStatus: nullableString(b.PropertyStatus),
		PropertyType:   nullableString(b.PropertyType),
		Bedrooms:       nullableInt64(b.Bedrooms),
		Bathrooms:      nullableFloat64(b.Bathrooms),
		ParkingSpaces:  nullableInt64(b.ParkingSpaces),
		SuiteUnit:      nullableString(b.SuiteUnit),
		Address:        b.Address,

		PreferredDate:      b.PreferredDate.Format("2006-01-02"),
		Time:               nullableString(b.ScheduledTime),
		AccessInstructions: nullableString(b.AccessInstructions),

		Services:        b.Services,
		Subtotal:        subtotal,
		DiscountPercent: b.DiscountPercent,
		DiscountAmount:  discount,
		TotalAmount:     total,

		SelectedPackageName: nullableString(b.SelectedPackageName),

		AgentName:        b.AgentName,
		AgentEmail:       b.AgentEmail,
		AgentPhone:       nullableString(b.AgentPhone),
		AgentCompany:     nullableString(b.AgentCompany),
		AgentDesignation: nullableString(b.AgentDesignation),
		AgentBrokerage:   nullableString(b.AgentBrokerage),

		AdditionalInstructions: nullableString(b.AdditionalInstructions),
		FeatureSheetContent:    nullableString(b.FeatureSheetContent),
		PromotionCode:          nullableString(b.PromotionCode),
		Notes:                  nullableString(b.Notes),

		RawPhotosLink:    nullableString(b.RawPhotosLink),
		FinalEditsLink:   nullableString(b.FinalEditsLink),
		Tour360Link:      nullableString(b.Tour360Link),
		EditorLink:       nullableString(b.EditorLink),
		DeliveryPageLink: nullableString(b.DeliveryPageLink),
		InvoiceLink:      nullableString(b.InvoiceLink),

		DeliveryEmailSent: b.DeliveryEmailSent,

		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// selectedLines converts request lines to pricing engine input. Client
// prices are carried only as override candidates for non-catalog entries.
func selectedLines(inputs []ServiceLineInput) []pricing.SelectedLine {
	lines := make([]pricing.SelectedLine, 0, len(inputs))
	for _, in := range inputs {
		line := pricing.SelectedLine{Name: in.Name, Count: in.Count}
		if in.Price != nil {
			c := pricing.CentsFromFloat(*in.Price)
			line.UnitPriceOverride = &c
		}
		lines = append(lines, line)
	}
	return lines
}

// persistedLines converts computed line items to the persisted JSONB shape.
func persistedLines(items []pricing.LineItem) ServiceLines {
	lines := make(ServiceLines, 0, len(items))
	for _, it := range items {
		lines = append(lines, ServiceLine{
			Name:  it.Name,
			Price: it.UnitPrice.Float64(),
			Count: it.Count,
			Total: it.LineTotal.Float64(),
		})
	}
	return lines
}

// selectedFromPersisted rebuilds engine input from stored lines so a booking
// can be re-priced when its size band changes. Stored prices become override
// candidates, which the composer ignores for catalog entries.
func selectedFromPersisted(lines ServiceLines) []pricing.SelectedLine {
	selected := make([]pricing.SelectedLine, 0, len(lines))
	for _, l := range lines {
		price := pricing.CentsFromFloat(l.Price)
		selected = append(selected, pricing.SelectedLine{
			Name:              l.Name,
			Count:             l.Count,
			UnitPriceOverride: &price,
		})
	}
	return selected
}
