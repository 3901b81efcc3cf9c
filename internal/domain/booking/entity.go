package booking

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents booking lifecycle status (matches booking_status enum)
type Status string

const (
	StatusPending   Status = "pending"
	StatusEditing   Status = "editing"
	StatusDelivered Status = "delivered"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// PaymentStatus represents payment state
type PaymentStatus string

const (
	PaymentNotPaid  PaymentStatus = "not_paid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// EditingStatus tracks the media editing pipeline
type EditingStatus string

const (
	EditingUnassigned EditingStatus = "unassigned"
	EditingInProgress EditingStatus = "in_editing"
	EditingDone       EditingStatus = "done"
)

// Address is the property address stored as JSONB.
type Address struct {
	Street   string `json:"street"`
	Street2  string `json:"street2,omitempty"`
	City     string `json:"city,omitempty"`
	Province string `json:"province,omitempty"`
	ZipCode  string `json:"zipCode,omitempty"`
}

// UnmarshalJSON accepts either a structured address object or a plain
// string (older clients send the full address as one line).
func (a *Address) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Address{Street: s}
		return nil
	}
	type alias Address
	var v alias
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = Address(v)
	return nil
}

// String renders the address as a single display line.
func (a Address) String() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Street, a.Street2, a.City, a.Province, a.ZipCode} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, ", ")
}

// Value implements driver.Valuer for JSONB storage
func (a Address) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements sql.Scanner for JSONB storage
func (a *Address) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*a = Address{}
		return nil
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("address: cannot scan %T", src)
	}
}

// ServiceLine is one priced line item as persisted in the services JSONB
// column. Price and Total are dollar amounts.
type ServiceLine struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// ServiceLines is the JSONB array of priced line items.
type ServiceLines []ServiceLine

// Value implements driver.Valuer for JSONB storage
func (s ServiceLines) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]ServiceLine{})
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSONB storage
func (s *ServiceLines) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("service lines: cannot scan %T", src)
	}
}

// Booking represents a photography booking (matches the bookings table)
type Booking struct {
	ID              uuid.UUID `db:"id"`
	ReferenceNumber string    `db:"reference_number"`

	Status        Status        `db:"status"`
	PaymentStatus PaymentStatus `db:"payment_status"`
	EditingStatus EditingStatus `db:"editing_status"`

	// Property
	PropertySize   string          `db:"property_size"`
	PropertyStatus sql.NullString  `db:"property_status"`
	PropertyType   sql.NullString  `db:"property_type"`
	Bedrooms       sql.NullInt64   `db:"bedrooms"`
	Bathrooms      sql.NullFloat64 `db:"bathrooms"`
	ParkingSpaces  sql.NullInt64   `db:"parking_spaces"`
	SuiteUnit      sql.NullString  `db:"suite_unit"`
	Address        Address         `db:"address"`

	// Scheduling
	PreferredDate      time.Time      `db:"preferred_date"`
	ScheduledTime      sql.NullString `db:"time"`
	AccessInstructions sql.NullString `db:"access_instructions"`

	// Pricing (totals are persisted once at write time; reads never recompute)
	Services        ServiceLines    `db:"services"`
	Subtotal        decimal.Decimal `db:"subtotal"`
	DiscountPercent int64           `db:"discount_percent"`
	DiscountAmount  decimal.Decimal `db:"discount_amount"`
	TotalAmount     decimal.Decimal `db:"total_amount"`

	SelectedPackageName sql.NullString `db:"selected_package_name"`

	// Agent
	AgentName        string         `db:"agent_name"`
	AgentEmail       string         `db:"agent_email"`
	AgentPhone       sql.NullString `db:"agent_phone"`
	AgentCompany     sql.NullString `db:"agent_company"`
	AgentDesignation sql.NullString `db:"agent_designation"`
	AgentBrokerage   sql.NullString `db:"agent_brokerage"`

	// Free-form content
	AdditionalInstructions sql.NullString `db:"additional_instructions"`
	FeatureSheetContent    sql.NullString `db:"feature_sheet_content"`
	PromotionCode          sql.NullString `db:"promotion_code"`
	Notes                  sql.NullString `db:"notes"`

	// Delivery links
	RawPhotosLink    sql.NullString `db:"raw_photos_link"`
	FinalEditsLink   sql.NullString `db:"final_edits_link"`
	Tour360Link      sql.NullString `db:"tour_360_link"`
	EditorLink       sql.NullString `db:"editor_link"`
	DeliveryPageLink sql.NullString `db:"delivery_page_link"`
	InvoiceLink      sql.NullString `db:"invoice_link"`

	DeliveryEmailSent bool `db:"delivery_email_sent"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NewReferenceNumber generates a short human-readable booking reference.
func NewReferenceNumber() string {
	id := uuid.New().String()
	return "RP-" + strings.ToUpper(id[:8])
}
