package controllers

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"atolye-backend/database"
	"atolye-backend/middlewares"
	"atolye-backend/models"
	"atolye-backend/pricing"
	"atolye-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OfferItemInput struct {
	ProductID string   `json:"product_id" validate:"required"`
	Quantity  int      `json:"quantity" validate:"omitempty,gte=1"`
	UnitPrice *float64 `json:"unit_price" validate:"omitempty,gte=0"` // manual override of the catalog price
}

type OfferCreateDTO struct {
	OfferNumber   string           `json:"offer_number"`
	CustomerID    uint             `json:"customer_id" validate:"required"`
	VehicleID     *uint            `json:"vehicle_id"`
	DiscountType  string           `json:"discount_type" validate:"omitempty,oneof=none flat percentage"`
	DiscountValue float64          `json:"discount_value" validate:"omitempty,gte=0"`
	VatRate       *float64         `json:"vat_rate" validate:"omitempty,gte=0"`
	Items         []OfferItemInput `json:"items" validate:"omitempty,dive"`
	Draft         bool             `json:"draft"`
}

// linesFromItems maps stored rows to the pricing engine's line items.
func linesFromItems(items []models.OfferLineItem) []pricing.LineItem {
	lines := make([]pricing.LineItem, 0, len(items))
	for _, it := range items {
		lines = append(lines, pricing.LineItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal,
		})
	}
	return lines
}

// applyLines replaces the offer's stored rows with the given lines and
// persists totals recomputed from scratch. Money values go through Round2 at
// this persistence boundary only; the engine itself works unrounded.
func applyLines(db *gorm.DB, offer *models.Offer, lines []pricing.LineItem) error {
	if err := db.Where("offer_id = ?", offer.ID).Delete(&models.OfferLineItem{}).Error; err != nil {
		return err
	}

	rows := make([]models.OfferLineItem, 0, len(lines))
	for _, ln := range lines {
		rows = append(rows, models.OfferLineItem{
			OfferID:   offer.ID,
			ProductID: ln.ProductID,
			Quantity:  ln.Quantity,
			UnitPrice: ln.UnitPrice,
			LineTotal: utils.Round2(ln.LineTotal),
		})
	}
	if len(rows) > 0 {
		if err := db.Create(&rows).Error; err != nil {
			return err
		}
	}
	offer.Items = rows

	totals := pricing.ComputeTotals(lines, pricing.DiscountPolicy{
		Type:  pricing.DiscountType(offer.DiscountType),
		Value: offer.DiscountValue,
	}, offer.VatRate)

	offer.GrossTotal = utils.Round2(totals.Gross)
	offer.DiscountAmount = utils.Round2(totals.Discount)
	offer.NetTotal = utils.Round2(totals.Net)
	offer.VatAmount = utils.Round2(totals.Vat)
	offer.GrandTotal = utils.Round2(totals.Grand)

	return db.Model(offer).Updates(map[string]any{
		"gross_total":     offer.GrossTotal,
		"discount_amount": offer.DiscountAmount,
		"net_total":       offer.NetTotal,
		"vat_amount":      offer.VatAmount,
		"grand_total":     offer.GrandTotal,
	}).Error
}

// buildLines turns create/update inputs into engine lines, pulling catalog
// prices for products without a manual override. One line per product id is
// enforced by the engine.
func buildLines(db *gorm.DB, inputs []OfferItemInput) ([]pricing.LineItem, error) {
	var lines []pricing.LineItem
	for _, in := range inputs {
		var product models.Product
		if err := db.First(&product, "id = ?", in.ProductID).Error; err != nil {
			return nil, err
		}

		unitPrice := product.UnitPrice
		if in.UnitPrice != nil {
			unitPrice = *in.UnitPrice
		}

		lines = pricing.AddOrIncrement(lines, product.Id, unitPrice)
		if in.Quantity > 1 {
			lines = pricing.SetQuantity(lines, product.Id, in.Quantity)
		}
		if in.UnitPrice != nil {
			lines = pricing.SetUnitPrice(lines, product.Id, unitPrice)
		}
	}
	return lines, nil
}

func loadOffer(db *gorm.DB, id string) (*models.Offer, error) {
	var offer models.Offer
	err := db.Preload("Customer").Preload("Vehicle").Preload("Items").
		First(&offer, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// POST /api/offer
func CreateOffer(c *fiber.Ctx) error {
	var in OfferCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	db := database.FromCtx(c)

	offerNumber := strings.TrimSpace(in.OfferNumber)
	if offerNumber == "" {
		offerNumber = "OFF-" + strings.ToUpper(uuid.NewString()[:8])
	}

	vatRate := 20.0
	if in.VatRate != nil {
		vatRate = *in.VatRate
	}
	discountType := in.DiscountType
	if discountType == "" {
		discountType = string(pricing.DiscountNone)
	}

	offer := models.Offer{
		OfferNumber:   offerNumber,
		CustomerID:    in.CustomerID,
		VehicleID:     in.VehicleID,
		DiscountType:  discountType,
		DiscountValue: in.DiscountValue,
		VatRate:       vatRate,
		Draft:         in.Draft,
	}

	if err := db.Create(&offer).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create offer")
	}

	lines, err := buildLines(db, in.Items)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "unknown product in items")
	}
	if err := applyLines(db, &offer, lines); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not store offer items")
	}

	if err := db.Preload("Customer").Preload("Vehicle").Preload("Items").
		First(&offer, offer.ID).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload offer")
	}
	return c.Status(fiber.StatusCreated).JSON(offer)
}

// GET /api/offers?page=&per_page=&q=
func GetOffers(c *fiber.Ctx) error {
	db := database.FromCtx(c)

	page := utils.ParseIntDefault(c.Query("page"), 1)
	perPage := utils.ParseIntDefault(c.Query("per_page"), 20)
	q := strings.TrimSpace(c.Query("q"))

	query := db.Model(&models.Offer{}).Joins("Customer")
	if q != "" {
		like := "%" + q + "%"
		query = query.Where(`offers.offer_number ILIKE ? OR "Customer".company_name ILIKE ?`, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	meta := utils.NewPagination(page, perPage, int(total))

	var offers []models.Offer
	if err := query.Preload("Items").Order("offers.created_at desc").
		Limit(meta.PerPage).Offset(meta.Offset()).Find(&offers).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	return c.JSON(fiber.Map{
		"offers":     offers,
		"pagination": meta,
		"message":    "success",
	})
}

// GET /api/offer/:id
func GetOffer(c *fiber.Ctx) error {
	offer, err := loadOffer(database.FromCtx(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "offer not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(offer)
}

type OfferUpdateDTO struct {
	CustomerID    *uint    `json:"customer_id"`
	VehicleID     *uint    `json:"vehicle_id"`
	DiscountType  *string  `json:"discount_type" validate:"omitempty,oneof=none flat percentage"`
	DiscountValue *float64 `json:"discount_value" validate:"omitempty,gte=0"`
	VatRate       *float64 `json:"vat_rate" validate:"omitempty,gte=0"`
	Draft         *bool    `json:"draft"`
}

// PUT /api/offer/:id — header fields and pricing policy; totals recompute.
func UpdateOffer(c *fiber.Ctx) error {
	var in OfferUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	db := database.FromCtx(c)

	offer, err := loadOffer(db, c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "offer not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	if offer.Published {
		return fiber.NewError(fiber.StatusConflict, "published offers are immutable; create a new revision")
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if len(updates) > 0 {
		if err := db.Model(offer).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update offer")
		}
		// Re-read so the recomputation below sees the stored policy, not the
		// possibly stale in-memory copy.
		if offer, err = loadOffer(db, c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "db error")
		}
	}

	// Policy may have changed: recompute totals from the authoritative lines.
	if err := applyLines(db, offer, linesFromItems(offer.Items)); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not recompute totals")
	}
	return c.JSON(offer)
}

// DELETE /api/offer/:id
func DeleteOffer(c *fiber.Ctx) error {
	db := database.FromCtx(c)

	offer, err := loadOffer(db, c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "offer not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	if offer.Published {
		return fiber.NewError(fiber.StatusConflict, "published offers cannot be deleted")
	}

	if err := db.Delete(offer).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not delete offer")
	}
	return c.JSON(fiber.Map{"message": "success"})
}

type OfferAddItemDTO struct {
	ProductID string `json:"product_id" validate:"required"`
}

// POST /api/offer/:id/items — add the product or increment its quantity.
func AddOfferItem(c *fiber.Ctx) error {
	var in OfferAddItemDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	db := database.FromCtx(c)

	offer, err := loadOffer(db, c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "offer not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	if offer.Published {
		return fiber.NewError(fiber.StatusConflict, "published offers are immutable")
	}

	var product models.Product
	if err := db.First(&product, "id = ?", in.ProductID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}

	lines := pricing.AddOrIncrement(linesFromItems(offer.Items), product.Id, product.UnitPrice)
	if err := applyLines(db, offer, lines); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not store offer items")
	}
	return c.JSON(offer)
}

type OfferItemUpdateDTO struct {
	Quantity  *int     `json:"quantity"`
	UnitPrice *float64 `json:"unit_price"`
}

// PUT /api/offer/:id/items/:productId — quantity <= 0 removes the line;
// negative unit prices are ignored, mirroring the forgiving form behavior.
func UpdateOfferItem(c *fiber.Ctx) error {
	var in OfferItemUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	db := database.FromCtx(c)

	offer, err := loadOffer(db, c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "offer not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	if offer.Published {
		return fiber.NewError(fiber.StatusConflict, "published offers are immutable")
	}

	lines := linesFromItems(offer.Items)
	productID := c.Params("productId")
	if in.Quantity != nil {
		lines = pricing.SetQuantity(lines, productID, *in.Quantity)
	}
	if in.UnitPrice != nil {
		lines = pricing.SetUnitPrice(lines, productID, *in.UnitPrice)
	}

	if err := applyLines(db, offer, lines); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not store offer items")
	}
	return c.JSON(offer)
}

// DELETE /api/offer/:id/items/:productId
func RemoveOfferItem(c *fiber.Ctx) error {
	db := database.FromCtx(c)

	offer, err := loadOffer(db, c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "offer not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	if offer.Published {
		return fiber.NewError(fiber.StatusConflict, "published offers are immutable")
	}

	lines := pricing.Remove(linesFromItems(offer.Items), c.Params("productId"))
	if err := applyLines(db, offer, lines); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not store offer items")
	}
	return c.JSON(offer)
}

// PUT /api/offer/:id/publish — freeze the offer and write a revision snapshot.
func PublishOffer(c *fiber.Ctx) error {
	db := database.FromCtx(c)

	offer, err := loadOffer(db, c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "offer not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	if offer.Published {
		return fiber.NewError(fiber.StatusConflict, "offer is already published")
	}
	if len(offer.Items) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "cannot publish an offer without items")
	}

	now := time.Now().UTC()
	if err := db.Model(offer).Updates(map[string]any{
		"draft":        false,
		"published":    true,
		"published_at": &now,
	}).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not publish offer")
	}
	offer.Draft = false
	offer.Published = true
	offer.PublishedAt = &now

	var revCount int64
	if err := db.Model(&models.OfferRevision{}).Where("offer_id = ?", offer.ID).Count(&revCount).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	snapshot, err := json.Marshal(offer)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not snapshot offer")
	}

	rev := models.OfferRevision{
		OfferID:    offer.ID,
		RevisionNo: int(revCount) + 1,
		Snapshot:   snapshot,
	}
	if err := db.Create(&rev).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not store offer revision")
	}

	return c.JSON(fiber.Map{
		"offer":    offer,
		"revision": rev.RevisionNo,
	})
}

// GET /api/offer/:id/revisions
func GetOfferRevisions(c *fiber.Ctx) error {
	db := database.FromCtx(c)

	var revisions []models.OfferRevision
	if err := db.Where("offer_id = ?", c.Params("id")).Order("revision_no asc").Find(&revisions).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(fiber.Map{
		"revisions": revisions,
		"message":   "success",
	})
}
