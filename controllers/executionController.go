package controllers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"atolye-backend/database"
	"atolye-backend/execution"
	"atolye-backend/middlewares"
	"atolye-backend/models"
	"atolye-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExecutionCreateDTO struct {
	Code        string `json:"code"`
	OfferID     *uint  `json:"offer_id"`
	Notes       string `json:"notes"`
	TemplateIDs []uint `json:"template_ids" validate:"required,min=1"`
}

// POST /api/execution — instantiate operation records from templates. The
// template's name, station, QC flag and sort order are copied at this point;
// the records then live their own lifecycle.
func CreateExecution(c *fiber.Ctx) error {
	var in ExecutionCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	db := database.FromCtx(c)

	code := strings.TrimSpace(in.Code)
	if code == "" {
		code = "EXE-" + strings.ToUpper(uuid.NewString()[:8])
	}

	exec := models.ProductionExecution{
		Code:    code,
		OfferID: in.OfferID,
		Notes:   strings.TrimSpace(in.Notes),
	}
	if err := db.Create(&exec).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create execution")
	}

	for _, tplID := range in.TemplateIDs {
		var tpl models.OperationTemplate
		if err := db.First(&tpl, "id = ?", tplID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "unknown operation template")
		}

		rec := models.OperationExecutionRecord{
			ExecutionID:            exec.ID,
			TemplateID:             &tpl.Id,
			Name:                   tpl.Name,
			OriginalName:           tpl.Name,
			StationID:              tpl.StationID,
			Status:                 execution.StatusPending,
			QualityControlRequired: tpl.QualityControlRequired,
			SortOrder:              tpl.SortOrder,
		}
		if err := db.Create(&rec).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create operation record")
		}
	}

	created, err := loadExecution(db, strconv.FormatUint(uint64(exec.ID), 10))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload execution")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// GET /api/executions?page=&per_page=&q=
func GetExecutions(c *fiber.Ctx) error {
	db := database.FromCtx(c)

	page := utils.ParseIntDefault(c.Query("page"), 1)
	perPage := utils.ParseIntDefault(c.Query("per_page"), 20)
	q := strings.TrimSpace(c.Query("q"))

	query := db.Model(&models.ProductionExecution{})
	if q != "" {
		like := "%" + q + "%"
		query = query.Where("code ILIKE ? OR notes ILIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	meta := utils.NewPagination(page, perPage, int(total))

	var executions []models.ProductionExecution
	if err := query.Preload("Records").Preload("Records.Station").
		Order("created_at desc").Limit(meta.PerPage).Offset(meta.Offset()).
		Find(&executions).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	type executionListEntry struct {
		models.ProductionExecution
		Summary execution.Summary `json:"summary"`
	}
	out := make([]executionListEntry, 0, len(executions))
	for _, ex := range executions {
		records := make([]execution.Record, 0, len(ex.Records))
		for _, r := range ex.Records {
			records = append(records, r.ToRecord())
		}
		out = append(out, executionListEntry{ProductionExecution: ex, Summary: execution.Summarize(records)})
	}

	return c.JSON(fiber.Map{
		"executions": out,
		"pagination": meta,
		"message":    "success",
	})
}

func loadExecution(db *gorm.DB, id string) (*models.ProductionExecution, error) {
	var exec models.ProductionExecution
	err := db.Preload("Offer").Preload("Records", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("sort_order asc, id asc")
	}).Preload("Records.Station").First(&exec, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &exec, nil
}

// GET /api/execution/:id?q= — monitor view: ordered records (optionally
// filtered with Turkish-aware search), aggregate summary, and which records
// currently offer an approve action.
func GetExecution(c *fiber.Ctx) error {
	exec, err := loadExecution(database.FromCtx(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "execution not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	records := make([]execution.Record, 0, len(exec.Records))
	for _, r := range exec.Records {
		records = append(records, r.ToRecord())
	}

	// Summary always covers the full record set, not the filtered view.
	summary := execution.Summarize(records)
	filtered := execution.FilterBySearch(records, c.Query("q"))

	type recordView struct {
		execution.Record
		StatusLabel   string `json:"status_label"`
		NeedsApproval bool   `json:"needs_quality_approval"`
	}
	views := make([]recordView, 0, len(filtered))
	for _, r := range filtered {
		views = append(views, recordView{
			Record:        r,
			StatusLabel:   r.Status.Label(),
			NeedsApproval: r.NeedsQualityApproval(),
		})
	}

	return c.JSON(fiber.Map{
		"execution": exec,
		"records":   views,
		"summary":   summary,
		"message":   "success",
	})
}

// DELETE /api/execution/:id
func DeleteExecution(c *fiber.Ctx) error {
	res := database.FromCtx(c).Delete(&models.ProductionExecution{}, "id = ?", c.Params("id"))
	if res.Error != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not delete execution")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "execution not found")
	}
	return c.JSON(fiber.Map{"message": "success"})
}

type TransitionDTO struct {
	Status execution.Status `json:"status" validate:"required"`
}

func loadRecord(db *gorm.DB, executionID, recordID string) (*models.OperationExecutionRecord, error) {
	var rec models.OperationExecutionRecord
	err := db.Preload("Station").
		First(&rec, "id = ? AND execution_id = ?", recordID, executionID).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// PUT /api/execution/:id/records/:recordId/status — single-step transition.
// The transition graph is enforced here; nothing is written when the edge is
// not allowed, so a failed request leaves the record untouched.
func TransitionRecord(c *fiber.Ctx) error {
	var in TransitionDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	if !in.Status.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "unknown status")
	}

	db := database.FromCtx(c)

	rec, err := loadRecord(db, c.Params("id"), c.Params("recordId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "operation record not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	if !rec.ToRecord().CanMoveTo(in.Status) {
		switch {
		case in.Status == execution.StatusAwaitingQualityControl && !rec.QualityControlRequired:
			return fiber.NewError(fiber.StatusConflict, "operation has no quality control gate")
		case in.Status == execution.StatusCompleted && rec.NeedsGate():
			return fiber.NewError(fiber.StatusConflict, "quality control approval required before completion")
		default:
			return fiber.NewError(fiber.StatusConflict, "transition not allowed from "+string(rec.Status))
		}
	}

	now := time.Now().UTC()
	updates := map[string]any{"status": in.Status}

	if in.Status == execution.StatusInProgress && rec.StartTime == nil {
		updates["start_time"] = &now
	}
	if in.Status.Terminal() {
		updates["end_time"] = &now
		if rec.StartTime != nil {
			updates["duration_seconds"] = int64(now.Sub(*rec.StartTime).Seconds())
		}
	}

	if err := db.Model(rec).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update operation record")
	}
	if err := syncExecutionTimes(db, c.Params("id"), now); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(rec)
}

// syncExecutionTimes stamps the parent run: started_at when the first record
// leaves pending, finished_at once every record is terminal.
func syncExecutionTimes(db *gorm.DB, executionID string, now time.Time) error {
	var exec models.ProductionExecution
	if err := db.Preload("Records").First(&exec, "id = ?", executionID).Error; err != nil {
		return err
	}

	records := make([]execution.Record, 0, len(exec.Records))
	for _, r := range exec.Records {
		records = append(records, r.ToRecord())
	}

	updates := map[string]any{}
	if exec.StartedAt == nil && execution.Started(records) {
		updates["started_at"] = &now
	}
	if exec.FinishedAt == nil && execution.AllTerminal(records) {
		updates["finished_at"] = &now
	}
	if len(updates) == 0 {
		return nil
	}
	return db.Model(&exec).Updates(updates).Error
}

type QualityDecisionDTO struct {
	Passed bool   `json:"passed"`
	Notes  string `json:"notes"`
}

// PUT /api/execution/:id/records/:recordId/quality-control — record a QC
// decision. Approval completes the record; rejection sends it back to
// in_progress and stays re-submittable.
func DecideQualityControl(c *fiber.Ctx) error {
	var in QualityDecisionDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	db := database.FromCtx(c)

	rec, err := loadRecord(db, c.Params("id"), c.Params("recordId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "operation record not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	if !rec.QualityControlRequired {
		return fiber.NewError(fiber.StatusConflict, "operation has no quality control gate")
	}
	if rec.Status != execution.StatusAwaitingQualityControl {
		return fiber.NewError(fiber.StatusConflict, "operation is not awaiting quality control")
	}

	now := time.Now().UTC()
	updates := map[string]any{
		"quality_check_passed": &in.Passed,
		"quality_notes":        strings.TrimSpace(in.Notes),
	}

	if in.Passed {
		updates["status"] = execution.StatusCompleted
		updates["end_time"] = &now
		if rec.StartTime != nil {
			updates["duration_seconds"] = int64(now.Sub(*rec.StartTime).Seconds())
		}
	} else {
		// Rejected work resumes; the false flag keeps it approvable again.
		updates["status"] = execution.StatusInProgress
	}

	if err := db.Model(rec).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not store quality decision")
	}
	if err := syncExecutionTimes(db, c.Params("id"), now); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(rec)
}
