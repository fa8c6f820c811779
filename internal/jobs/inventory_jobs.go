package jobs

import (
	"context"
	"time"

	"bikeshop-backend/internal/domain"
	"bikeshop-backend/internal/logger"
)

const jobTimeout = 5 * time.Minute

// SendLowStockReport emails every admin the list of parts whose stock has
// fallen under the configured threshold.
func (jr *JobRunner) SendLowStockReport() {
	jr.runWithRecovery("SendLowStockReport", func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		threshold := jr.config.Inventory.LowStockThreshold
		parts, err := jr.store.Parts().ListBelowStock(ctx, threshold)
		if err != nil {
			logger.Error("Failed to list low-stock parts", "error", err)
			return
		}
		if len(parts) == 0 {
			logger.Info("No parts below stock threshold", "threshold", threshold)
			return
		}

		admins, err := jr.store.Users().ListAdmins(ctx)
		if err != nil {
			logger.Error("Failed to list admins", "error", err)
			return
		}
		recipients := make([]string, 0, len(admins))
		for _, a := range admins {
			if a.Email != "" {
				recipients = append(recipients, a.Email)
			}
		}

		if err := jr.emailSvc.SendLowStockReport(ctx, recipients, parts); err != nil {
			logger.Error("Failed to send low stock report", "error", err)
			return
		}
		logger.Info("Low stock report sent", "parts", len(parts), "recipients", len(recipients))
	})
}

// SnapshotBikePrices appends today's price to each bike's price history so
// repricing trends survive in-place price edits.
func (jr *JobRunner) SnapshotBikePrices() {
	jr.runWithRecovery("SnapshotBikePrices", func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		bikes, err := jr.store.Bikes().List(ctx)
		if err != nil {
			logger.Error("Failed to list bikes", "error", err)
			return
		}

		now := time.Now()
		var recorded int
		for _, b := range bikes {
			if b.Price == nil {
				continue
			}
			point := domain.PricePoint{Price: *b.Price, RecordedOn: now}
			if err := jr.store.Bikes().AddPricePoint(ctx, b.ID, point); err != nil {
				logger.Error("Failed to record price point", "bike_id", b.ID, "error", err)
				continue
			}
			recorded++
		}
		logger.Info("Bike price snapshots recorded", "count", recorded)
	})
}
