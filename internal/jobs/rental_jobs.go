package jobs

import (
	"context"

	"retail-pos-backend/internal/logger"
)

// MarkOverdueRentals flips every active rental past its due date to overdue.
// Safe to run repeatedly; a second run finds nothing to change.
func (jr *JobRunner) MarkOverdueRentals() {
	jr.runWithRecovery("MarkOverdueRentals", func() {
		ctx := context.Background()

		count, err := jr.services.Rental.CheckOverdueRentals(ctx)
		if err != nil {
			logger.Error("Failed to mark overdue rentals", "error", err)
			return
		}
		logger.Info("Marked rentals as overdue", "count", count)
	})
}

// SendOverdueReminders emails every customer holding an overdue rental.
// Customers without an email address on file are skipped.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()

		rentals, err := jr.store.ListOverdue(ctx)
		if err != nil {
			logger.Error("Failed to list overdue rentals", "error", err)
			return
		}

		sent := 0
		for i := range rentals {
			rental := &rentals[i]
			customer, err := jr.store.CustomerRepository.GetByID(ctx, rental.CustomerID)
			if err != nil {
				logger.Error("Failed to load customer for overdue rental",
					"rental_id", rental.RentalID,
					"customer_id", rental.CustomerID,
					"error", err)
				continue
			}
			if customer.Email == "" {
				logger.Debug("Skipping reminder, customer has no email",
					"rental_id", rental.RentalID,
					"customer_id", customer.ID)
				continue
			}

			name := customer.FirstName + " " + customer.LastName
			if err := jr.services.Email.SendOverdueReminder(ctx, customer.Email, name, rental); err != nil {
				logger.Error("Failed to send overdue reminder",
					"rental_id", rental.RentalID,
					"customer_id", customer.ID,
					"error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent overdue reminders", "overdue", len(rentals), "sent", sent)
	})
}
