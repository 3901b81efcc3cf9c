package booking

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rephotos/admin-api/internal/domain/pricing"
	"github.com/rephotos/admin-api/internal/pkg/dropbox"
	"github.com/rephotos/admin-api/internal/pkg/email"
)

// ConfirmationMailer queues booking confirmation emails
type ConfirmationMailer interface {
	QueueBookingConfirmation(data email.BookingConfirmation)
}

// DeliverySender sends one-off delivery emails synchronously
type DeliverySender interface {
	SendSync(ctx context.Context, msg *email.Message) error
}

// FolderProvisioner creates project folders with shared links
type FolderProvisioner interface {
	EnsureProjectFolders(ctx context.Context, street, agentName string) (*dropbox.FolderLinks, error)
}

// Service handles booking business logic
type Service struct {
	repo    Repository
	mailer  ConfirmationMailer
	sender  DeliverySender
	folders FolderProvisioner
}

// NewService creates the booking service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SetMailer sets the confirmation mailer (optional)
func (s *Service) SetMailer(mailer ConfirmationMailer) {
	s.mailer = mailer
}

// SetDeliverySender sets the synchronous email sender (optional)
func (s *Service) SetDeliverySender(sender DeliverySender) {
	s.sender = sender
}

// SetFolderProvisioner sets the folder provisioner (optional)
func (s *Service) SetFolderProvisioner(p FolderProvisioner) {
	s.folders = p
}

// Quote prices a selection without persisting anything.
func (s *Service) Quote(req *QuoteRequest) (*pricing.Quote, pricing.ValidationErrors) {
	return pricing.ComputePricing(pricing.QuoteInput{
		PropertySize: string(req.PropertySize),
		Lines:        selectedLines(req.Services),
		AgentName:    req.AgentName,
		AgentEmail:   req.AgentEmail,
	})
}

// Create prices the request server-side and persists the booking. Any total
// sent by the client is discarded; only engine output is stored.
func (s *Service) Create(ctx context.Context, req *CreateBookingRequest) (*Booking, pricing.ValidationErrors, error) {
	quote, verrs := pricing.ComputePricing(pricing.QuoteInput{
		PropertySize: string(req.PropertySize),
		Lines:        selectedLines(req.Services),
		AgentName:    req.AgentName,
		AgentEmail:   req.AgentEmail,
	})
	if verrs != nil {
		return nil, verrs, nil
	}

	preferredDate, err := time.Parse("2006-01-02", req.PreferredDate)
	if err != nil {
		return nil, nil, ErrInvalidDate
	}

	b := &Booking{
		ID:              uuid.New(),
		ReferenceNumber: NewReferenceNumber(),

		Status:        StatusPending,
		PaymentStatus: PaymentNotPaid,
		EditingStatus: EditingUnassigned,

		PropertySize:   string(quote.Band),
		PropertyStatus: nullString(req.PropertyStatus),
		PropertyType:   nullString(req.PropertyType),
		Bedrooms:       nullInt64(req.Bedrooms),
		Bathrooms:      nullFloat64(req.Bathrooms),
		ParkingSpaces:  nullInt64(req.ParkingSpaces),
		SuiteUnit:      nullString(req.SuiteUnit),
		Address:        req.Address,

		PreferredDate:      preferredDate,
		ScheduledTime:      nullString(req.Time),
		AccessInstructions: nullString(req.AccessInstructions),

		SelectedPackageName: nullString(req.SelectedPackageName),

		AgentName:        strings.TrimSpace(req.AgentName),
		AgentEmail:       strings.TrimSpace(req.AgentEmail),
		AgentPhone:       nullString(req.AgentPhone),
		AgentCompany:     nullString(req.AgentCompany),
		AgentDesignation: nullString(req.AgentDesignation),
		AgentBrokerage:   nullString(req.AgentBrokerage),

		AdditionalInstructions: nullString(req.AdditionalInstructions),
		FeatureSheetContent:    nullString(req.FeatureSheetContent),
		PromotionCode:          nullString(req.PromotionCode),
		Notes:                  nullString(req.Notes),
	}
	applyQuote(b, quote)

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, nil, err
	}

	// Confirmation is best effort; the booking is already saved.
	if s.mailer != nil {
		s.mailer.QueueBookingConfirmation(confirmationData(b))
	}

	return b, nil, nil
}

// GetByID fetches one booking
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

// List fetches bookings with filters and pagination
func (s *Service) List(ctx context.Context, filter *Filter, p *Pagination) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter, p)
}

// Delete removes a booking
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// BatchUpdate applies each batch entry independently and reports per-entry
// results. A failed entry never blocks the others.
func (s *Service) BatchUpdate(ctx context.Context, items []UpdateBookingItem) []BatchUpdateResult {
	results := make([]BatchUpdateResult, 0, len(items))
	for _, item := range items {
		b, err := s.applyUpdate(ctx, &item)
		res := BatchUpdateResult{ID: item.ID}
		if err != nil {
			res.Error = err.Error()
		} else {
			res.Updated = true
			res.Booking = BookingResponseFromEntity(b)
		}
		results = append(results, res)
	}
	return results
}

func (s *Service) applyUpdate(ctx context.Context, item *UpdateBookingItem) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	expected := b.UpdatedAt
	if item.UpdatedAt != nil {
		expected = *item.UpdatedAt
	}

	if item.Status != nil {
		b.Status = Status(*item.Status)
	}
	if item.PaymentStatus != nil {
		b.PaymentStatus = PaymentStatus(*item.PaymentStatus)
	}
	if item.EditingStatus != nil {
		b.EditingStatus = EditingStatus(*item.EditingStatus)
	}
	if item.PreferredDate != nil {
		d, err := time.Parse("2006-01-02", *item.PreferredDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		b.PreferredDate = d
	}
	if item.Time != nil {
		b.ScheduledTime = nullString(*item.Time)
	}
	if item.RawPhotosLink != nil {
		b.RawPhotosLink = nullString(*item.RawPhotosLink)
	}
	if item.FinalEditsLink != nil {
		b.FinalEditsLink = nullString(*item.FinalEditsLink)
	}
	if item.Tour360Link != nil {
		b.Tour360Link = nullString(*item.Tour360Link)
	}
	if item.EditorLink != nil {
		b.EditorLink = nullString(*item.EditorLink)
	}
	if item.DeliveryPageLink != nil {
		b.DeliveryPageLink = nullString(*item.DeliveryPageLink)
	}
	if item.InvoiceLink != nil {
		b.InvoiceLink = nullString(*item.InvoiceLink)
	}
	if item.Notes != nil {
		b.Notes = nullString(*item.Notes)
	}

	// Changing the service selection or size band invalidates the stored
	// totals, so the whole quote is recomputed.
	if item.Services != nil || item.PropertySize != nil {
		size := b.PropertySize
		if item.PropertySize != nil {
			size = string(*item.PropertySize)
		}
		lines := selectedFromPersisted(b.Services)
		if item.Services != nil {
			lines = selectedLines(*item.Services)
		}

		quote, verrs := pricing.ComputePricing(pricing.QuoteInput{
			PropertySize: size,
			Lines:        lines,
			AgentName:    b.AgentName,
			AgentEmail:   b.AgentEmail,
		})
		if verrs != nil {
			return nil, verrs
		}
		b.PropertySize = string(quote.Band)
		applyQuote(b, quote)
	}

	if err := s.repo.Update(ctx, b, expected); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, item.ID)
}

// ProvisionFolders creates the Dropbox project folders for a booking and
// stores the resulting shared links.
func (s *Service) ProvisionFolders(ctx context.Context, id uuid.UUID) (*Booking, error) {
	if s.folders == nil {
		return nil, ErrFoldersUnavailable
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	links, err := s.folders.EnsureProjectFolders(ctx, b.Address.Street, b.AgentName)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetFolderLinks(ctx, id, links.RawPhotos, links.EditedMedia, links.FinalMedia); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// SendDeliveryEmail sends an ad-hoc email and, when tied to a booking, marks
// the delivery notification as sent.
func (s *Service) SendDeliveryEmail(ctx context.Context, req *SendEmailRequest) error {
	if s.sender == nil {
		return ErrEmailUnavailable
	}

	err := s.sender.SendSync(ctx, &email.Message{
		To:          []string{req.To},
		Subject:     req.Subject,
		HTMLContent: req.HTML,
		TextContent: req.Text,
	})
	if err != nil {
		return err
	}

	if req.BookingID != nil {
		if err := s.repo.MarkDeliveryEmailSent(ctx, *req.BookingID); err != nil {
			log.Error().Err(err).Str("booking_id", req.BookingID.String()).
				Msg("Email sent but failed to mark booking")
		}
	}
	return nil
}

// applyQuote writes engine output into the booking's pricing fields
func applyQuote(b *Booking, q *pricing.Quote) {
	b.Services = persistedLines(q.LineItems)
	b.Subtotal = q.Subtotal.Decimal()
	b.DiscountPercent = q.DiscountPercent
	b.DiscountAmount = q.DiscountAmount.Decimal()
	b.TotalAmount = q.Total.Decimal()
}

// confirmationData maps a persisted booking to the email payload
func confirmationData(b *Booking) email.BookingConfirmation {
	lines := make([]email.ConfirmationLine, 0, len(b.Services))
	for _, l := range b.Services {
		lines = append(lines, email.ConfirmationLine{
			Name:  l.Name,
			Price: l.Price,
			Count: l.Count,
			Total: l.Total,
		})
	}

	subtotal, _ := b.Subtotal.Float64()
	discount, _ := b.DiscountAmount.Float64()
	total, _ := b.TotalAmount.Float64()

	return email.BookingConfirmation{
		AgentName:    b.AgentName,
		AgentEmail:   b.AgentEmail,
		AgentPhone:   b.AgentPhone.String,
		AgentCompany: b.AgentCompany.String,

		PropertySize:   b.PropertySize,
		PropertyStatus: b.PropertyStatus.String,
		PreferredDate:  b.PreferredDate,
		Time:           b.ScheduledTime.String,
		Address:        b.Address.String(),
		Notes:          b.Notes.String,

		Lines:           lines,
		Subtotal:        subtotal,
		DiscountPercent: b.DiscountPercent,
		DiscountAmount:  discount,
		Total:           total,
	}
}

func nullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullFloat64(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
