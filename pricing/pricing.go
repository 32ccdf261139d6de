// Package pricing derives offer totals from line items and a discount policy.
// All functions are pure: they return new slices/values and never touch shared state,
// so callers may invoke them from any request handler without locking.
package pricing

// DiscountType selects how DiscountPolicy.Value is interpreted.
type DiscountType string

const (
	DiscountNone       DiscountType = "none"
	DiscountFlat       DiscountType = "flat"
	DiscountPercentage DiscountType = "percentage"
)

// DiscountPolicy is the offer-level discount: a flat currency amount or a
// percentage of the gross total. Value is ignored for DiscountNone.
type DiscountPolicy struct {
	Type  DiscountType `json:"type"`
	Value float64      `json:"value"`
}

// LineItem is one product line on an offer. LineTotal is derived and is kept
// equal to Quantity*UnitPrice by every mutation in this package; a line with
// Quantity <= 0 never exists (removal is the deletion mechanism).
type LineItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

// Totals is the full pricing breakdown of an offer.
type Totals struct {
	Gross    float64 `json:"gross_total"`
	Discount float64 `json:"discount_amount"`
	Net      float64 `json:"net_total"`
	Vat      float64 `json:"vat_amount"`
	Grand    float64 `json:"grand_total"`
}

// AddOrIncrement adds a catalog product to the lines. If a line for productID
// already exists its quantity is incremented by one; otherwise a new line with
// quantity 1 and the catalog unit price is appended. Exactly one line per
// distinct product id is maintained.
func AddOrIncrement(lines []LineItem, productID string, unitPrice float64) []LineItem {
	out := make([]LineItem, len(lines))
	copy(out, lines)
	for i := range out {
		if out[i].ProductID == productID {
			out[i].Quantity++
			out[i].LineTotal = float64(out[i].Quantity) * out[i].UnitPrice
			return out
		}
	}
	return append(out, LineItem{
		ProductID: productID,
		Quantity:  1,
		UnitPrice: unitPrice,
		LineTotal: unitPrice,
	})
}

// SetQuantity sets the quantity of the line for productID. A quantity <= 0
// removes the line entirely. An unknown product id is a no-op; these are
// form-edit conveniences, not hard contracts.
func SetQuantity(lines []LineItem, productID string, quantity int) []LineItem {
	if quantity <= 0 {
		return Remove(lines, productID)
	}
	out := make([]LineItem, len(lines))
	copy(out, lines)
	for i := range out {
		if out[i].ProductID == productID {
			out[i].Quantity = quantity
			out[i].LineTotal = float64(quantity) * out[i].UnitPrice
			break
		}
	}
	return out
}

// SetUnitPrice overrides the unit price of the line for productID. Negative
// prices are rejected as a no-op.
func SetUnitPrice(lines []LineItem, productID string, price float64) []LineItem {
	if price < 0 {
		return lines
	}
	out := make([]LineItem, len(lines))
	copy(out, lines)
	for i := range out {
		if out[i].ProductID == productID {
			out[i].UnitPrice = price
			out[i].LineTotal = float64(out[i].Quantity) * price
			break
		}
	}
	return out
}

// Remove drops the line for productID unconditionally.
func Remove(lines []LineItem, productID string) []LineItem {
	out := make([]LineItem, 0, len(lines))
	for _, ln := range lines {
		if ln.ProductID != productID {
			out = append(out, ln)
		}
	}
	return out
}

// ComputeTotals derives the full breakdown from the authoritative line items.
// Totals are always recomputed from scratch so rounding error never compounds.
// A flat discount is clamped to the gross total and a percentage to [0, 100]:
// net, VAT and grand totals never go negative.
func ComputeTotals(lines []LineItem, policy DiscountPolicy, vatRatePercent float64) Totals {
	var gross float64
	for _, ln := range lines {
		gross += float64(ln.Quantity) * ln.UnitPrice
	}

	var discount float64
	switch policy.Type {
	case DiscountFlat:
		discount = policy.Value
		if discount > gross {
			discount = gross
		}
		if discount < 0 {
			discount = 0
		}
	case DiscountPercentage:
		pct := policy.Value
		if pct < 0 {
			pct = 0
		} else if pct > 100 {
			pct = 100
		}
		discount = gross * pct / 100
	}

	net := gross - discount
	vat := net * vatRatePercent / 100

	return Totals{
		Gross:    gross,
		Discount: discount,
		Net:      net,
		Vat:      vat,
		Grand:    net + vat,
	}
}
