package handler

import (
	stdErrors "errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-reactions/errors"
	"github.com/johnquangdev/meeting-reactions/internal/adapter/dto/tracker"
	"github.com/johnquangdev/meeting-reactions/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-reactions/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/meeting-reactions/internal/usecase/errors"
	trackerUsecase "github.com/johnquangdev/meeting-reactions/internal/usecase/tracker"
)

// Tracker handles reaction log HTTP requests
type Tracker struct {
	service  trackerUsecase.Service
	logger   *zap.Logger
	timezone string
}

// NewTrackerHandler creates a new tracker handler
func NewTrackerHandler(service trackerUsecase.Service, logger *zap.Logger, timezone string) *Tracker {
	return &Tracker{
		service:  service,
		logger:   logger,
		timezone: timezone,
	}
}

// bindAndValidate binds the request and runs the registered validator
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload(err)
	}
	if err := c.Validate(req); err != nil {
		return errors.ErrInvalidPayload(err)
	}
	return nil
}

// attachment writes a file download
func attachment(c echo.Context, file *trackerUsecase.FileOutput) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.FileName))
	return c.Blob(http.StatusOK, file.ContentType, file.Content)
}

// GetClock handles GET /clock
// @Summary      Get current time
// @Description  Returns the facilitator's wall clock and the reaction buttons
// @Tags         Tracker
// @Produce      json
// @Success      200  {object}  tracker.ClockResponse
// @Router       /clock [get]
func (h *Tracker) GetClock(c echo.Context) error {
	resp := presenter.ToClockResponse(h.service.Now(), h.timezone, h.service.Categories())
	return HandleSuccess(h.logger, c, resp)
}

// ListParticipants handles GET /participants
// @Summary      List participants
// @Tags         Participants
// @Produce      json
// @Success      200  {object}  tracker.ParticipantListResponse
// @Failure      500  {object}  map[string]interface{}
// @Router       /participants [get]
func (h *Tracker) ListParticipants(c echo.Context) error {
	ctx := c.Request().Context()

	roster, err := h.service.ListParticipants(ctx)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	selected, err := h.service.SelectedParticipant(ctx)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToParticipantListResponse(roster, selected))
}

// AddParticipant handles POST /participants
// @Summary      Add a participant
// @Description  Adds a participant to the roster; the first participant is selected automatically
// @Tags         Participants
// @Accept       json
// @Produce      json
// @Param        request  body      tracker.AddParticipantRequest  true  "Participant"
// @Success      201      {object}  tracker.ParticipantResponse
// @Failure      400      {object}  map[string]interface{}
// @Failure      409      {object}  map[string]interface{}  "Participant already exists"
// @Router       /participants [post]
func (h *Tracker) AddParticipant(c echo.Context) error {
	var req tracker.AddParticipantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	ctx := c.Request().Context()
	p, err := h.service.AddParticipant(ctx, req.Name, req.Email)
	if err != nil {
		if stdErrors.Is(err, usecaseErrors.ErrParticipantExists) {
			return HandleError(h.logger, c, errors.ErrParticipantAlreadyExists(req.Name))
		}
		return HandleError(h.logger, c, err)
	}
	selected, err := h.service.SelectedParticipant(ctx)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccessWithStatus(h.logger, c, http.StatusCreated, presenter.ToParticipantResponse(p, selected))
}

// DeleteParticipant handles DELETE /participants/:name
// @Summary      Delete a participant
// @Description  Removes a participant from the roster; past reactions are kept
// @Tags         Participants
// @Param        name  path  string  true  "Participant name"
// @Success      200   {object}  map[string]interface{}
// @Failure      404   {object}  map[string]interface{}  "Participant not found"
// @Router       /participants/{name} [delete]
func (h *Tracker) DeleteParticipant(c echo.Context) error {
	name := c.Param("name")

	if err := h.service.DeleteParticipant(c.Request().Context(), name); err != nil {
		if stdErrors.Is(err, usecaseErrors.ErrParticipantNotFound) {
			return HandleError(h.logger, c, errors.ErrParticipantNotFound(name))
		}
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, map[string]string{"deleted": name})
}

// SelectParticipant handles PUT /participants/selected
// @Summary      Select a participant
// @Tags         Participants
// @Accept       json
// @Produce      json
// @Param        request  body      tracker.SelectParticipantRequest  true  "Participant"
// @Success      200      {object}  tracker.ParticipantListResponse
// @Failure      404      {object}  map[string]interface{}  "Participant not found"
// @Router       /participants/selected [put]
func (h *Tracker) SelectParticipant(c echo.Context) error {
	var req tracker.SelectParticipantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.service.SelectParticipant(c.Request().Context(), req.Name); err != nil {
		if stdErrors.Is(err, usecaseErrors.ErrParticipantNotFound) {
			return HandleError(h.logger, c, errors.ErrParticipantNotFound(req.Name))
		}
		return HandleError(h.logger, c, err)
	}

	return h.ListParticipants(c)
}

// GetHistory handles GET /records
// @Summary      Get reaction history
// @Description  Returns the reaction log, newest first
// @Tags         Records
// @Produce      json
// @Success      200  {object}  tracker.HistoryResponse
// @Router       /records [get]
func (h *Tracker) GetHistory(c echo.Context) error {
	records, err := h.service.History(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToHistoryResponse(records))
}

// ClearHistory handles DELETE /records
// @Summary      Clear reaction history
// @Tags         Records
// @Success      200  {object}  map[string]interface{}
// @Router       /records [delete]
func (h *Tracker) ClearHistory(c echo.Context) error {
	if err := h.service.ClearHistory(c.Request().Context()); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToHistoryResponse(nil))
}

// RecordReaction handles POST /records/reactions
// @Summary      Record a reaction
// @Description  Records a reaction for the selected participant at the current time
// @Tags         Records
// @Accept       json
// @Produce      json
// @Param        request  body      tracker.RecordReactionRequest  true  "Reaction"
// @Success      201      {object}  tracker.RecordResponse
// @Failure      409      {object}  map[string]interface{}  "No participant selected"
// @Router       /records/reactions [post]
func (h *Tracker) RecordReaction(c echo.Context) error {
	var req tracker.RecordReactionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	record, err := h.service.RecordReaction(c.Request().Context(), req.Emoji, req.Name)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccessWithStatus(h.logger, c, http.StatusCreated, presenter.ToRecordResponse(record))
}

// AddDivider handles POST /records/dividers
// @Summary      Add a meeting divider
// @Description  Starts a new meeting section in the log
// @Tags         Records
// @Accept       json
// @Produce      json
// @Param        request  body      tracker.AddDividerRequest  true  "Divider"
// @Success      201      {object}  tracker.RecordResponse
// @Router       /records/dividers [post]
func (h *Tracker) AddDivider(c echo.Context) error {
	var req tracker.AddDividerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	record, err := h.service.AddMeetingDivider(c.Request().Context(), req.MeetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccessWithStatus(h.logger, c, http.StatusCreated, presenter.ToRecordResponse(record))
}

// ExportData handles GET /export
// @Summary      Download raw export
// @Description  Downloads the whole log, roster and selection as JSON
// @Tags         Export
// @Produce      json
// @Success      200  {object}  entities.Snapshot
// @Router       /export [get]
func (h *Tracker) ExportData(c echo.Context) error {
	file, err := h.service.ExportRaw(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, errors.ErrExportFailed("json", err))
	}
	return attachment(c, file)
}

// ImportData handles POST /import
// @Summary      Import raw export
// @Description  Replaces the whole state with a raw export document
// @Tags         Export
// @Accept       json
// @Produce      json
// @Param        request  body      entities.Snapshot  true  "Raw export"
// @Success      200      {object}  tracker.HistoryResponse
// @Failure      400      {object}  map[string]interface{}  "Malformed export"
// @Router       /import [post]
func (h *Tracker) ImportData(c echo.Context) error {
	var snapshot entities.Snapshot
	if err := c.Bind(&snapshot); err != nil {
		return HandleError(h.logger, c, errors.ErrImportFailed(err))
	}

	ctx := c.Request().Context()
	if err := h.service.ImportData(ctx, &snapshot); err != nil {
		if stdErrors.Is(err, usecaseErrors.ErrInvalidInput) {
			return HandleError(h.logger, c, errors.ErrImportFailed(err))
		}
		return HandleError(h.logger, c, err)
	}

	records, err := h.service.History(ctx)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToHistoryResponse(records))
}

// ExportPivot handles GET /export/pivot
// @Summary      Preview pivot tables
// @Description  Returns one pivot table per meeting, shaped like the spreadsheet rows
// @Tags         Export
// @Produce      json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        format  query     string  false  "json (default) or xlsx"
// @Success      200     {object}  tracker.PivotResponse
// @Failure      400     {object}  map[string]interface{}  "Log contains malformed records"
// @Router       /export/pivot [get]
func (h *Tracker) ExportPivot(c echo.Context) error {
	var req tracker.ExportPivotRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	if req.Format == "xlsx" {
		return h.ExportSpreadsheet(c)
	}

	tables, err := h.service.BuildPivot(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	categories := entities.CategoryNames(h.service.Categories())
	return HandleSuccess(h.logger, c, presenter.ToPivotResponse(tables, categories))
}

// ExportSpreadsheet handles GET /export/spreadsheet
// @Summary      Download spreadsheet
// @Description  Downloads an xlsx workbook with one sheet per meeting
// @Tags         Export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    file
// @Failure      422  {object}  map[string]interface{}  "Nothing to export"
// @Router       /export/spreadsheet [get]
func (h *Tracker) ExportSpreadsheet(c echo.Context) error {
	file, err := h.service.ExportSpreadsheet(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return attachment(c, file)
}

// ArchiveExports handles POST /export/archive
// @Summary      Archive exports
// @Description  Uploads the spreadsheet and raw export to object storage and returns download links
// @Tags         Export
// @Produce      json
// @Success      200  {object}  trackerUsecase.ArchiveOutput
// @Failure      503  {object}  map[string]interface{}  "Archive not configured"
// @Router       /export/archive [post]
func (h *Tracker) ArchiveExports(c echo.Context) error {
	out, err := h.service.ArchiveExports(c.Request().Context())
	if err != nil {
		if toAppError(err).Code == errors.ErrorCode_INTERNAL {
			return HandleError(h.logger, c, errors.ErrStorageFailed("upload", err))
		}
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, out)
}

// ListArchives handles GET /export/archive
// @Summary      List archived exports
// @Tags         Export
// @Produce      json
// @Success      200  {object}  tracker.ArchiveListResponse
// @Failure      503  {object}  map[string]interface{}  "Archive not configured"
// @Router       /export/archive [get]
func (h *Tracker) ListArchives(c echo.Context) error {
	objects, err := h.service.ListArchives(c.Request().Context())
	if err != nil {
		if toAppError(err).Code == errors.ErrorCode_INTERNAL {
			return HandleError(h.logger, c, errors.ErrStorageFailed("list", err))
		}
		return HandleError(h.logger, c, err)
	}
	if objects == nil {
		objects = []string{}
	}
	return HandleSuccess(h.logger, c, &tracker.ArchiveListResponse{Objects: objects, Total: len(objects)})
}

// GetTimer handles GET /timer
// @Summary      Get meeting timer
// @Tags         Timer
// @Produce      json
// @Success      200  {object}  tracker.TimerResponse
// @Router       /timer [get]
func (h *Tracker) GetTimer(c echo.Context) error {
	out, err := h.service.Timer(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToTimerResponse(out))
}

// StartTimer handles POST /timer/start
// @Summary      Start meeting timer
// @Tags         Timer
// @Accept       json
// @Produce      json
// @Param        request  body      tracker.StartTimerRequest  true  "Meeting"
// @Success      200      {object}  tracker.TimerResponse
// @Failure      409      {object}  map[string]interface{}  "Timer already running"
// @Router       /timer/start [post]
func (h *Tracker) StartTimer(c echo.Context) error {
	var req tracker.StartTimerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	out, err := h.service.StartTimer(c.Request().Context(), req.MeetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToTimerResponse(out))
}

// StopTimer handles POST /timer/stop
// @Summary      Stop meeting timer
// @Tags         Timer
// @Produce      json
// @Success      200  {object}  tracker.TimerResponse
// @Failure      409  {object}  map[string]interface{}  "Timer not running"
// @Router       /timer/stop [post]
func (h *Tracker) StopTimer(c echo.Context) error {
	out, err := h.service.StopTimer(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToTimerResponse(out))
}
