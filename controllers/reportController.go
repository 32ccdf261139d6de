package controllers

import (
	"errors"
	"fmt"
	"time"

	"atolye-backend/database"
	"atolye-backend/execution"
	"atolye-backend/models"
	"atolye-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// GET /api/reports/execution/:id/xlsx — operation records of one execution as
// an Excel workbook, with the aggregate summary appended below the table.
func ExportExecutionXLSX(c *fiber.Ctx) error {
	exec, err := loadExecution(database.FromCtx(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "execution not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Üretim Takibi"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	headers := []string{"Sıra", "Operasyon", "İstasyon", "Durum", "Kalite Kontrol", "Başlangıç", "Bitiş", "Süre (sn)"}
	for i, name := range headers {
		f.SetCellValue(sheet, cellName(i+1, 1), name)
	}
	f.SetCellStyle(sheet, "A1", cellName(len(headers), 1), headerStyle)

	records := make([]execution.Record, 0, len(exec.Records))
	for _, r := range exec.Records {
		records = append(records, r.ToRecord())
	}

	for rowIdx, r := range records {
		rowNum := rowIdx + 2

		qc := "-"
		if r.QualityControlRequired {
			switch {
			case r.QualityCheckPassed == nil:
				qc = "Bekliyor"
			case *r.QualityCheckPassed:
				qc = "Onaylandı"
			default:
				qc = "Reddedildi"
			}
		}

		f.SetCellValue(sheet, cellName(1, rowNum), r.SortOrder)
		f.SetCellValue(sheet, cellName(2, rowNum), r.DisplayName())
		f.SetCellValue(sheet, cellName(3, rowNum), r.StationName)
		f.SetCellValue(sheet, cellName(4, rowNum), r.Status.Label())
		f.SetCellValue(sheet, cellName(5, rowNum), qc)
		if r.StartTime != nil {
			f.SetCellValue(sheet, cellName(6, rowNum), r.StartTime.Format("02.01.2006 15:04"))
		}
		if r.EndTime != nil {
			f.SetCellValue(sheet, cellName(7, rowNum), r.EndTime.Format("02.01.2006 15:04"))
		}
		f.SetCellValue(sheet, cellName(8, rowNum), r.DurationSeconds)
	}

	summary := execution.Summarize(records)
	summaryRow := len(records) + 3
	f.SetCellValue(sheet, cellName(1, summaryRow), "İlerleme")
	f.SetCellValue(sheet, cellName(2, summaryRow), fmt.Sprintf("%.0f%% (%d/%d tamamlandı)",
		summary.ProgressPercentage, summary.Completed, summary.Total))

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not build workbook")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.xlsx"`, exec.Code))
	return c.Send(buf.Bytes())
}

// GET /api/reports/offers/xlsx — all offers with their pricing breakdown,
// money columns formatted with Turkish conventions.
func ExportOffersXLSX(c *fiber.Ctx) error {
	db := database.FromCtx(c)

	var offers []models.Offer
	if err := db.Preload("Customer").Order("created_at desc").Find(&offers).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Teklifler"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	headers := []string{"Teklif No", "Müşteri", "Tarih", "Ara Toplam", "İskonto", "Net Toplam", "KDV", "Genel Toplam", "Durum"}
	for i, name := range headers {
		f.SetCellValue(sheet, cellName(i+1, 1), name)
	}
	f.SetCellStyle(sheet, "A1", cellName(len(headers), 1), headerStyle)

	for rowIdx, o := range offers {
		rowNum := rowIdx + 2

		status := "Taslak"
		if o.Published {
			status = "Yayınlandı"
		}

		f.SetCellValue(sheet, cellName(1, rowNum), o.OfferNumber)
		f.SetCellValue(sheet, cellName(2, rowNum), o.Customer.CompanyName)
		f.SetCellValue(sheet, cellName(3, rowNum), o.CreatedAt.Format("02.01.2006"))
		f.SetCellValue(sheet, cellName(4, rowNum), utils.FormatEUR(o.GrossTotal))
		f.SetCellValue(sheet, cellName(5, rowNum), utils.FormatEUR(o.DiscountAmount))
		f.SetCellValue(sheet, cellName(6, rowNum), utils.FormatEUR(o.NetTotal))
		f.SetCellValue(sheet, cellName(7, rowNum), utils.FormatEUR(o.VatAmount))
		f.SetCellValue(sheet, cellName(8, rowNum), utils.FormatEUR(o.GrandTotal))
		f.SetCellValue(sheet, cellName(9, rowNum), status)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not build workbook")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="teklifler-%s.xlsx"`, time.Now().Format("2006-01-02")))
	return c.Send(buf.Bytes())
}
