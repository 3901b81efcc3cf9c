package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Filter narrows booking listings
type Filter struct {
	Status        *Status
	PaymentStatus *PaymentStatus
	EditingStatus *EditingStatus
	AgentEmail    *string
	DateFrom      *time.Time
	DateTo        *time.Time
	Search        *string
}

// Pagination for listing
type Pagination struct {
	Limit  int
	Offset int
}

// Repository defines booking data access
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	List(ctx context.Context, filter *Filter, p *Pagination) ([]*Booking, int, error)
	// Update writes the full row. When expectedUpdatedAt is non-zero it is a
	// precondition and ErrVersionConflict is returned if the row moved on.
	Update(ctx context.Context, b *Booking, expectedUpdatedAt time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetFolderLinks(ctx context.Context, id uuid.UUID, raw, edited, final string) error
	MarkDeliveryEmailSent(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a booking repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const bookingColumns = `
	id, reference_number, status, payment_status, editing_status,
	property_size, property_status, property_type, bedrooms, bathrooms,
	parking_spaces, suite_unit, address,
	preferred_date, "time", access_instructions,
	services, subtotal, discount_percent, discount_amount, total_amount,
	selected_package_name,
	agent_name, agent_email, agent_phone, agent_company, agent_designation, agent_brokerage,
	additional_instructions, feature_sheet_content, promotion_code, notes,
	raw_photos_link, final_edits_link, tour_360_link, editor_link, delivery_page_link, invoice_link,
	delivery_email_sent, created_at, updated_at
`

func (r *repository) Create(ctx context.Context, b *Booking) error {
	query := `
		INSERT INTO bookings (
			id, reference_number, status, payment_status, editing_status,
			property_size, property_status, property_type, bedrooms, bathrooms,
			parking_spaces, suite_unit, address,
			preferred_date, "time", access_instructions,
			services, subtotal, discount_percent, discount_amount, total_amount,
			selected_package_name,
			agent_name, agent_email, agent_phone, agent_company, agent_designation, agent_brokerage,
			additional_instructions, feature_sheet_content, promotion_code, notes,
			created_at, updated_at
		) VALUES (
			:id, :reference_number, :status, :payment_status, :editing_status,
			:property_size, :property_status, :property_type, :bedrooms, :bathrooms,
			:parking_spaces, :suite_unit, :address,
			:preferred_date, :time, :access_instructions,
			:services, :subtotal, :discount_percent, :discount_amount, :total_amount,
			:selected_package_name,
			:agent_name, :agent_email, :agent_phone, :agent_company, :agent_designation, :agent_brokerage,
			:additional_instructions, :feature_sheet_content, :promotion_code, :notes,
			NOW(), NOW()
		)
		RETURNING created_at, updated_at`

	rows, err := r.db.NamedQueryContext(ctx, query, b)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&b.CreatedAt, &b.UpdatedAt); err != nil {
			return fmt.Errorf("scan booking timestamps: %w", err)
		}
	}
	return rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1`, bookingColumns)

	var b Booking
	if err := r.db.GetContext(ctx, &b, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

func (r *repository) List(ctx context.Context, filter *Filter, p *Pagination) ([]*Booking, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argN := 1

	addArg := func(cond string, val interface{}) {
		conditions = append(conditions, fmt.Sprintf(cond, argN))
		args = append(args, val)
		argN++
	}

	if filter != nil {
		if filter.Status != nil {
			addArg("status = $%d", *filter.Status)
		}
		if filter.PaymentStatus != nil {
			addArg("payment_status = $%d", *filter.PaymentStatus)
		}
		if filter.EditingStatus != nil {
			addArg("editing_status = $%d", *filter.EditingStatus)
		}
		if filter.AgentEmail != nil {
			addArg("LOWER(agent_email) = LOWER($%d)", *filter.AgentEmail)
		}
		if filter.DateFrom != nil {
			addArg("preferred_date >= $%d", *filter.DateFrom)
		}
		if filter.DateTo != nil {
			addArg("preferred_date <= $%d", *filter.DateTo)
		}
		if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
			pattern := "%" + strings.TrimSpace(*filter.Search) + "%"
			conditions = append(conditions, fmt.Sprintf(
				"(agent_name ILIKE $%d OR agent_email ILIKE $%d OR reference_number ILIKE $%d OR address->>'street' ILIKE $%d)",
				argN, argN, argN, argN))
			args = append(args, pattern)
			argN++
		}
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM bookings WHERE %s`, where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}

	limit := 50
	offset := 0
	if p != nil {
		if p.Limit > 0 {
			limit = p.Limit
		}
		if p.Offset > 0 {
			offset = p.Offset
		}
	}

	query := fmt.Sprintf(`
		SELECT %s FROM bookings
		WHERE %s
		ORDER BY preferred_date DESC, created_at DESC
		LIMIT $%d OFFSET $%d`, bookingColumns, where, argN, argN+1)
	args = append(args, limit, offset)

	bookings := []*Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, total, nil
}

func (r *repository) Update(ctx context.Context, b *Booking, expectedUpdatedAt time.Time) error {
	query := `
		UPDATE bookings SET
			status = :status,
			payment_status = :payment_status,
			editing_status = :editing_status,
			property_size = :property_size,
			property_status = :property_status,
			property_type = :property_type,
			bedrooms = :bedrooms,
			bathrooms = :bathrooms,
			parking_spaces = :parking_spaces,
			suite_unit = :suite_unit,
			address = :address,
			preferred_date = :preferred_date,
			"time" = :time,
			access_instructions = :access_instructions,
			services = :services,
			subtotal = :subtotal,
			discount_percent = :discount_percent,
			discount_amount = :discount_amount,
			total_amount = :total_amount,
			selected_package_name = :selected_package_name,
			agent_name = :agent_name,
			agent_email = :agent_email,
			agent_phone = :agent_phone,
			agent_company = :agent_company,
			agent_designation = :agent_designation,
			agent_brokerage = :agent_brokerage,
			additional_instructions = :additional_instructions,
			feature_sheet_content = :feature_sheet_content,
			promotion_code = :promotion_code,
			notes = :notes,
			raw_photos_link = :raw_photos_link,
			final_edits_link = :final_edits_link,
			tour_360_link = :tour_360_link,
			editor_link = :editor_link,
			delivery_page_link = :delivery_page_link,
			invoice_link = :invoice_link,
			delivery_email_sent = :delivery_email_sent,
			updated_at = NOW()
		WHERE id = :id`

	named, nargs, err := sqlx.Named(query, b)
	if err != nil {
		return fmt.Errorf("build booking update: %w", err)
	}

	if !expectedUpdatedAt.IsZero() {
		named += " AND updated_at = ?"
		nargs = append(nargs, expectedUpdatedAt)
	}
	named = r.db.Rebind(named)

	res, err := r.db.ExecContext(ctx, named, nargs...)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update booking result: %w", err)
	}
	if affected == 0 {
		if expectedUpdatedAt.IsZero() {
			return ErrNotFound
		}
		// Row exists but the precondition failed, or the row is gone.
		if _, err := r.GetByID(ctx, b.ID); err != nil {
			return err
		}
		return ErrVersionConflict
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete booking result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) SetFolderLinks(ctx context.Context, id uuid.UUID, raw, edited, final string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE bookings
		SET raw_photos_link = $2,
		    final_edits_link = $3,
		    delivery_page_link = $4,
		    updated_at = NOW()
		WHERE id = $1`,
		id, raw, edited, final)
	if err != nil {
		return fmt.Errorf("set folder links: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set folder links result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) MarkDeliveryEmailSent(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE bookings
		SET delivery_email_sent = TRUE, updated_at = NOW()
		WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark delivery email sent: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark delivery email result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
