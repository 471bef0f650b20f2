package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-reactions/internal/domain/entities"
	"github.com/johnquangdev/meeting-reactions/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/meeting-reactions/internal/usecase/errors"
	"github.com/johnquangdev/meeting-reactions/internal/usecase/export"
	"github.com/johnquangdev/meeting-reactions/internal/usecase/pivot"
)

// TrackerService handles reaction log business logic
type TrackerService struct {
	mu         sync.Mutex
	repo       repositories.StateRepository
	archive    repositories.ArchiveStorage
	urlExpiry  time.Duration
	categories []entities.Category
	builder    *pivot.Builder
	location   *time.Location
	now        func() time.Time
	logger     *zap.Logger
}

// Option configures a TrackerService
type Option func(*TrackerService)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *TrackerService) { s.now = now }
}

// WithArchive enables uploading exports to archive storage
func WithArchive(archive repositories.ArchiveStorage, urlExpiry time.Duration) Option {
	return func(s *TrackerService) {
		s.archive = archive
		s.urlExpiry = urlExpiry
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *TrackerService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewTrackerService creates a new tracker service
func NewTrackerService(
	repo repositories.StateRepository,
	categories []entities.Category,
	location *time.Location,
	opts ...Option,
) (*TrackerService, error) {
	if location == nil {
		location = time.UTC
	}
	builder, err := pivot.NewBuilder(entities.CategoryNames(categories), pivot.WithLocation(location))
	if err != nil {
		return nil, err
	}

	s := &TrackerService{
		repo:       repo,
		categories: append([]entities.Category(nil), categories...),
		builder:    builder,
		location:   location,
		now:        time.Now,
		logger:     zap.NewNop(),
		urlExpiry:  24 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *TrackerService) clock() time.Time {
	return s.now().In(s.location)
}

// Now returns the facilitator's current wall-clock time
func (s *TrackerService) Now() entities.Clock {
	return entities.NewClock(s.clock())
}

// Categories returns the fixed reaction categories
func (s *TrackerService) Categories() []entities.Category {
	return append([]entities.Category(nil), s.categories...)
}

// ListParticipants retrieves the roster
func (s *TrackerService) ListParticipants(ctx context.Context) (entities.Roster, error) {
	return s.repo.LoadParticipants(ctx)
}

// SelectedParticipant retrieves the selected participant
func (s *TrackerService) SelectedParticipant(ctx context.Context) (string, error) {
	return s.repo.LoadSelected(ctx)
}

// AddParticipant adds a participant to the roster
func (s *TrackerService) AddParticipant(ctx context.Context, name, email string) (entities.Participant, error) {
	p := entities.Participant{Name: name, Email: email}.Normalize()
	if p.Name == "" {
		return entities.Participant{}, usecaseErrors.ErrParticipantNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	roster, err := s.repo.LoadParticipants(ctx)
	if err != nil {
		return entities.Participant{}, err
	}
	if roster.Contains(p.Name) {
		return entities.Participant{}, fmt.Errorf("%w: %s", usecaseErrors.ErrParticipantExists, p.Name)
	}

	roster = append(roster, p)
	if err := s.repo.SaveParticipants(ctx, roster); err != nil {
		return entities.Participant{}, err
	}

	// First participant is selected automatically
	if len(roster) == 1 {
		if err := s.repo.SaveSelected(ctx, p.Name); err != nil {
			return entities.Participant{}, err
		}
	}

	s.logger.Info("participant added",
		zap.String("participant", p.Name),
		zap.Int("roster_size", len(roster)),
	)
	return p, nil
}

// DeleteParticipant removes a participant from the roster. Their past
// reactions stay in the log.
func (s *TrackerService) DeleteParticipant(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	roster, err := s.repo.LoadParticipants(ctx)
	if err != nil {
		return err
	}
	if !roster.Contains(name) {
		return fmt.Errorf("%w: %s", usecaseErrors.ErrParticipantNotFound, name)
	}
	if err := s.repo.SaveParticipants(ctx, roster.Without(name)); err != nil {
		return err
	}

	selected, err := s.repo.LoadSelected(ctx)
	if err != nil {
		return err
	}
	if selected == name {
		if err := s.repo.SaveSelected(ctx, ""); err != nil {
			return err
		}
	}

	s.logger.Info("participant deleted", zap.String("participant", name))
	return nil
}

// SelectParticipant selects a participant from the roster
func (s *TrackerService) SelectParticipant(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	roster, err := s.repo.LoadParticipants(ctx)
	if err != nil {
		return err
	}
	if !roster.Contains(name) {
		return fmt.Errorf("%w: %s", usecaseErrors.ErrParticipantNotFound, name)
	}
	return s.repo.SaveSelected(ctx, name)
}

// History retrieves the log, newest first
func (s *TrackerService) History(ctx context.Context) ([]entities.Record, error) {
	return s.repo.LoadRecords(ctx)
}

// RecordReaction logs a reaction for the selected participant
func (s *TrackerService) RecordReaction(ctx context.Context, emoji, name string) (entities.Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entities.Record{}, usecaseErrors.ErrCategoryRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	selected, err := s.repo.LoadSelected(ctx)
	if err != nil {
		return entities.Record{}, err
	}
	if selected == "" {
		return entities.Record{}, usecaseErrors.ErrNoParticipantSelected
	}

	category := entities.Category{Emoji: emoji, Name: name}
	if known, ok := entities.FindCategory(s.categories, name); ok && emoji == "" {
		category.Emoji = known.Emoji
	}

	record := entities.NewReaction(category, selected, s.clock())
	if err := s.prepend(ctx, record); err != nil {
		return entities.Record{}, err
	}

	s.logger.Debug("reaction recorded",
		zap.String("participant", selected),
		zap.String("reaction", name),
	)
	return record, nil
}

// AddMeetingDivider logs a meeting boundary
func (s *TrackerService) AddMeetingDivider(ctx context.Context, meetingID string) (entities.Record, error) {
	meetingID = strings.TrimSpace(meetingID)
	if meetingID == "" {
		return entities.Record{}, usecaseErrors.ErrMeetingIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record := entities.NewDivider(meetingID, s.clock())
	if err := s.prepend(ctx, record); err != nil {
		return entities.Record{}, err
	}

	s.logger.Info("meeting divider added", zap.String("meeting_id", meetingID))
	return record, nil
}

// prepend stores a new record at the head of the log; caller holds mu
func (s *TrackerService) prepend(ctx context.Context, record entities.Record) error {
	records, err := s.repo.LoadRecords(ctx)
	if err != nil {
		return err
	}
	records = append([]entities.Record{record}, records...)
	return s.repo.SaveRecords(ctx, records)
}

// ClearHistory deletes every record
func (s *TrackerService) ClearHistory(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.SaveRecords(ctx, nil); err != nil {
		return err
	}
	s.logger.Info("history cleared")
	return nil
}

// ExportData returns the raw export document
func (s *TrackerService) ExportData(ctx context.Context) (*entities.Snapshot, error) {
	records, err := s.repo.LoadRecords(ctx)
	if err != nil {
		return nil, err
	}
	roster, err := s.repo.LoadParticipants(ctx)
	if err != nil {
		return nil, err
	}
	selected, err := s.repo.LoadSelected(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := &entities.Snapshot{
		Records:      records,
		Participants: roster,
		ExportDate:   s.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
	if selected != "" {
		snapshot.SelectedParticipant = &selected
	}
	return snapshot, nil
}

// ImportData replaces the whole state. Malformed records reject the import
// before anything is written.
func (s *TrackerService) ImportData(ctx context.Context, snapshot *entities.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("%w: empty snapshot", usecaseErrors.ErrInvalidInput)
	}
	for i, r := range snapshot.Records {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("%w: record %d: %v", usecaseErrors.ErrInvalidInput, i, err)
		}
	}

	roster := make(entities.Roster, 0, len(snapshot.Participants))
	for _, p := range snapshot.Participants {
		p = p.Normalize()
		if p.Name == "" || roster.Contains(p.Name) {
			continue
		}
		roster = append(roster, p)
	}

	selected := snapshot.Selected()
	if !roster.Contains(selected) {
		selected = ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.SaveRecords(ctx, snapshot.Records); err != nil {
		return err
	}
	if err := s.repo.SaveParticipants(ctx, roster); err != nil {
		return err
	}
	if err := s.repo.SaveSelected(ctx, selected); err != nil {
		return err
	}

	s.logger.Info("data imported",
		zap.Int("records", len(snapshot.Records)),
		zap.Int("participants", len(roster)),
	)
	return nil
}

// BuildPivot builds the per-meeting pivot tables of the current log
func (s *TrackerService) BuildPivot(ctx context.Context) ([]entities.PivotTable, error) {
	records, err := s.repo.LoadRecords(ctx)
	if err != nil {
		return nil, err
	}
	roster, err := s.repo.LoadParticipants(ctx)
	if err != nil {
		return nil, err
	}
	return s.builder.Build(records, roster)
}

// ExportSpreadsheet renders the pivot tables as an xlsx workbook
func (s *TrackerService) ExportSpreadsheet(ctx context.Context) (*FileOutput, error) {
	tables, err := s.BuildPivot(ctx)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, usecaseErrors.ErrNothingToExport
	}

	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, tables, s.builder.Categories()); err != nil {
		return nil, err
	}

	s.logger.Info("spreadsheet exported", zap.Int("sheets", len(tables)))
	return &FileOutput{
		FileName:    export.SpreadsheetFileName(s.clock()),
		ContentType: export.ContentTypeXLSX,
		Content:     buf.Bytes(),
	}, nil
}

// ExportRaw renders the raw export document as an indented JSON file
func (s *TrackerService) ExportRaw(ctx context.Context) (*FileOutput, error) {
	snapshot, err := s.ExportData(ctx)
	if err != nil {
		return nil, err
	}
	content, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return &FileOutput{
		FileName:    export.JSONFileName(s.clock()),
		ContentType: "application/json",
		Content:     content,
	}, nil
}

const archivePrefix = "exports"

// ListArchives lists previously archived export objects
func (s *TrackerService) ListArchives(ctx context.Context) ([]string, error) {
	if s.archive == nil {
		return nil, usecaseErrors.ErrArchiveNotAvailable
	}
	return s.archive.ListFiles(ctx, archivePrefix+"/")
}

// ArchiveExports uploads the spreadsheet and the raw export
func (s *TrackerService) ArchiveExports(ctx context.Context) (*ArchiveOutput, error) {
	if s.archive == nil {
		return nil, usecaseErrors.ErrArchiveNotAvailable
	}

	sheet, err := s.ExportSpreadsheet(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := s.ExportRaw(ctx)
	if err != nil {
		return nil, err
	}

	prefix := path.Join(archivePrefix, s.clock().Format("2006-01-02"), uuid.NewString())
	out := &ArchiveOutput{}
	for _, item := range []struct {
		file *FileOutput
		dst  *ArchivedFile
	}{
		{sheet, &out.Spreadsheet},
		{raw, &out.Raw},
	} {
		objectName := path.Join(prefix, item.file.FileName)
		reader := bytes.NewReader(item.file.Content)
		if err := s.archive.UploadFile(ctx, objectName, reader, int64(len(item.file.Content)), item.file.ContentType); err != nil {
			return nil, err
		}
		url, err := s.archive.GetFileURL(ctx, objectName, s.urlExpiry)
		if err != nil {
			return nil, err
		}
		*item.dst = ArchivedFile{ObjectName: objectName, URL: url}
	}

	s.logger.Info("exports archived", zap.String("prefix", prefix))
	return out, nil
}

// StartTimer starts timing a meeting
func (s *TrackerService) StartTimer(ctx context.Context, meetingID string) (*TimerOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, err := s.repo.LoadTimer(ctx)
	if err != nil {
		return nil, err
	}
	if timer.IsRunning() {
		return nil, usecaseErrors.ErrTimerRunning
	}

	now := s.clock()
	timer.Start(strings.TrimSpace(meetingID), now)
	if err := s.repo.SaveTimer(ctx, timer); err != nil {
		return nil, err
	}

	s.logger.Info("meeting timer started", zap.String("meeting_id", timer.MeetingID))
	return s.timerOutput(timer, now), nil
}

// StopTimer stops the running meeting timer
func (s *TrackerService) StopTimer(ctx context.Context) (*TimerOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, err := s.repo.LoadTimer(ctx)
	if err != nil {
		return nil, err
	}
	if !timer.IsRunning() {
		return nil, usecaseErrors.ErrTimerNotRunning
	}

	now := s.clock()
	timer.Stop(now)
	if err := s.repo.SaveTimer(ctx, timer); err != nil {
		return nil, err
	}

	s.logger.Info("meeting timer stopped",
		zap.String("meeting_id", timer.MeetingID),
		zap.Duration("elapsed", timer.Elapsed(now)),
	)
	return s.timerOutput(timer, now), nil
}

// Timer returns the meeting timer state
func (s *TrackerService) Timer(ctx context.Context) (*TimerOutput, error) {
	timer, err := s.repo.LoadTimer(ctx)
	if err != nil {
		return nil, err
	}
	return s.timerOutput(timer, s.clock()), nil
}

func (s *TrackerService) timerOutput(timer *entities.MeetingTimer, now time.Time) *TimerOutput {
	return &TimerOutput{
		Timer:   *timer,
		Running: timer.IsRunning(),
		Elapsed: timer.Elapsed(now),
	}
}
