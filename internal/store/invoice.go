package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/apperr"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/models"
)

type InvoiceStore struct {
	db *gorm.DB
}

func NewInvoiceStore(db *gorm.DB) *InvoiceStore {
	return &InvoiceStore{db: db}
}

// Totals are supplied by the caller and treated as opaque; the store only
// checks they are not negative.
func validateInvoice(inv *models.Invoice) error {
	if strings.TrimSpace(inv.InvoiceNumber) == "" {
		return apperr.Validation("invoice", "invoice_number", "required")
	}
	if inv.TotalAmount < 0 {
		return apperr.Validation("invoice", "total_amount", "must not be negative")
	}
	if inv.TaxAmount < 0 {
		return apperr.Validation("invoice", "tax_amount", "must not be negative")
	}
	return nil
}

func (s *InvoiceStore) Create(ctx context.Context, inv *models.Invoice) error {
	if err := validateInvoice(inv); err != nil {
		return err
	}
	if inv.IssuedAt.IsZero() {
		inv.IssuedAt = time.Now()
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		apOK, err := rowExists(tx, &models.Appointment{}, inv.AppointmentID)
		if err != nil {
			return err
		}
		if !apOK {
			return apperr.Reference("appointment", "appointment_id", inv.AppointmentID)
		}

		if err := invoiceUniqueness(tx, inv, 0); err != nil {
			return err
		}

		if err := tx.Create(inv).Error; err != nil {
			return translateDup(err, "invoice", "invoice_number", inv.InvoiceNumber)
		}
		return nil
	})
}

func (s *InvoiceStore) Get(ctx context.Context, id uint) (*models.Invoice, error) {
	var inv models.Invoice
	if err := s.db.WithContext(ctx).First(&inv, id).Error; err != nil {
		return nil, notFoundOr(err, "invoice", id)
	}
	return &inv, nil
}

func (s *InvoiceStore) GetByAppointment(ctx context.Context, appointmentID uint) (*models.Invoice, error) {
	var inv models.Invoice
	if err := s.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		First(&inv).Error; err != nil {
		return nil, notFoundOr(err, "invoice", appointmentID)
	}
	return &inv, nil
}

func (s *InvoiceStore) List(ctx context.Context, unpaidOnly bool) ([]models.Invoice, error) {
	q := s.db.WithContext(ctx).Order("issued_at DESC")
	if unpaidOnly {
		q = q.Where("paid = ?", false)
	}

	var invoices []models.Invoice
	if err := q.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (s *InvoiceStore) Update(ctx context.Context, inv *models.Invoice) error {
	if err := validateInvoice(inv); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := rowExists(tx, &models.Invoice{}, inv.ID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("invoice", inv.ID)
		}

		apOK, err := rowExists(tx, &models.Appointment{}, inv.AppointmentID)
		if err != nil {
			return err
		}
		if !apOK {
			return apperr.Reference("appointment", "appointment_id", inv.AppointmentID)
		}

		if err := invoiceUniqueness(tx, inv, inv.ID); err != nil {
			return err
		}

		if err := tx.Save(inv).Error; err != nil {
			return translateDup(err, "invoice", "invoice_number", inv.InvoiceNumber)
		}
		return nil
	})
}

func (s *InvoiceStore) MarkPaid(ctx context.Context, id uint, at time.Time) (*models.Invoice, error) {
	var inv models.Invoice

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&inv, id).Error; err != nil {
			return notFoundOr(err, "invoice", id)
		}
		if inv.Paid {
			return apperr.Validation("invoice", "paid", "already paid")
		}

		inv.Paid = true
		inv.PaidAt = &at
		return tx.Save(&inv).Error
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *InvoiceStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Invoice{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("invoice", id)
	}
	return nil
}

// invoiceUniqueness enforces the 1:1 with the appointment and the invoice
// number; "appointment already invoiced" is the conflict a booking workflow
// hits when it tries to issue twice.
func invoiceUniqueness(tx *gorm.DB, inv *models.Invoice, excludeID uint) error {
	var count int64
	if err := tx.Model(&models.Invoice{}).
		Where("appointment_id = ? AND id <> ?", inv.AppointmentID, excludeID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("invoice", "appointment_id", fmt.Sprint(inv.AppointmentID))
	}

	if err := tx.Model(&models.Invoice{}).
		Where("invoice_number = ? AND id <> ?", inv.InvoiceNumber, excludeID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("invoice", "invoice_number", inv.InvoiceNumber)
	}
	return nil
}
