package database

import (
	"fmt"

	"atolye-backend/models"

	"gorm.io/gorm"
)

// Migrate applies (idempotent) schema migrations:
// - AutoMigrate (tables/columns/index tags)
// - Money column types (NUMERIC(12,2))
// - Foreign key: offer_line_items.product_id → products.id
// - Basic CHECK constraints on quantities and prices
func Migrate() error {
	return DB.Transaction(func(tx *gorm.DB) error {
		// --- AutoMigrate tables/columns/index tags (non-destructive) ---
		if err := tx.AutoMigrate(
			&models.User{},
			&models.Customer{},
			&models.Product{},
			&models.Vehicle{},
			&models.Station{},
			&models.OperationTemplate{},
			&models.QualityControlItem{},
			&models.Offer{},
			&models.OfferLineItem{},
			&models.OfferRevision{},
			&models.ProductionExecution{},
			&models.OperationExecutionRecord{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("automigrate failed: %w", err)
		}

		// --- FK offer_line_items.product_id -> products.id (RESTRICT) ---
		if err := tx.Exec(`
DO $$
BEGIN
  IF NOT EXISTS (
    SELECT 1 FROM pg_constraint WHERE conname = 'fk_offer_line_items_product'
  ) THEN
    ALTER TABLE offer_line_items
      ADD CONSTRAINT fk_offer_line_items_product
      FOREIGN KEY (product_id) REFERENCES products(id)
      ON UPDATE RESTRICT ON DELETE RESTRICT;
  END IF;
END $$;`).Error; err != nil {
			return fmt.Errorf("offer_line_items fk failed: %w", err)
		}

		// --- CHECK constraints: a stored line never violates the invariants ---
		checks := []struct{ name, sql string }{
			{"chk_offer_line_items_quantity_positive",
				`ALTER TABLE offer_line_items ADD CONSTRAINT chk_offer_line_items_quantity_positive CHECK (quantity >= 1)`},
			{"chk_offer_line_items_unit_price_nonnegative",
				`ALTER TABLE offer_line_items ADD CONSTRAINT chk_offer_line_items_unit_price_nonnegative CHECK (unit_price >= 0)`},
			{"chk_offers_vat_rate_nonnegative",
				`ALTER TABLE offers ADD CONSTRAINT chk_offers_vat_rate_nonnegative CHECK (vat_rate >= 0)`},
		}
		for _, chk := range checks {
			if err := tx.Exec(fmt.Sprintf(`
DO $$
BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%s') THEN
    %s;
  END IF;
END $$;`, chk.name, chk.sql)).Error; err != nil {
				return fmt.Errorf("constraint %s failed: %w", chk.name, err)
			}
		}

		return nil
	})
}
