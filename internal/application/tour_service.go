package application

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/mostafa-azimi/touring-app-sub000/internal/domain"
	"github.com/mostafa-azimi/touring-app-sub000/pkg/logging"
)

// TourService handles tour lifecycle and participant management up to the
// point of finalization.
type TourService struct {
	tourRepo        domain.TourRepository
	participantRepo domain.ParticipantRepository
	teamRepo        domain.TeamMemberRepository
	warehouseRepo   domain.WarehouseRepository
	publisher       domain.EventPublisher
	logger          *logging.Logger
}

// NewTourService creates a tour service
func NewTourService(
	tourRepo domain.TourRepository,
	participantRepo domain.ParticipantRepository,
	teamRepo domain.TeamMemberRepository,
	warehouseRepo domain.WarehouseRepository,
	publisher domain.EventPublisher,
	logger *logging.Logger,
) *TourService {
	return &TourService{
		tourRepo:        tourRepo,
		participantRepo: participantRepo,
		teamRepo:        teamRepo,
		warehouseRepo:   warehouseRepo,
		publisher:       publisher,
		logger:          logger.WithComponent("tours"),
	}
}

// CreateTour schedules a new tour against an existing warehouse and host.
// Tour numbers are drawn from a monotonic counter so order numbers derived
// from them never collide across tours.
func (s *TourService) CreateTour(ctx context.Context, cmd ScheduleTourCommand) (*domain.Tour, error) {
	if _, err := s.warehouseRepo.FindByID(ctx, cmd.WarehouseID); err != nil {
		return nil, err
	}
	if _, err := s.teamRepo.FindByMemberID(ctx, cmd.HostID); err != nil {
		return nil, err
	}

	number, err := s.tourRepo.NextTourNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate tour number: %w", err)
	}

	tour, err := domain.NewTour(uuid.New().String(), number, cmd.ScheduledFor, cmd.WarehouseID, cmd.HostID)
	if err != nil {
		return nil, err
	}
	if err := tour.Schedule(); err != nil {
		return nil, err
	}

	if err := s.tourRepo.Save(ctx, tour); err != nil {
		return nil, fmt.Errorf("failed to save tour: %w", err)
	}

	for _, event := range tour.DomainEvents() {
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.WithError(err).WarnContext(ctx, "failed to publish domain event", "event_type", event.EventType())
		}
	}
	tour.ClearDomainEvents()

	s.logger.WithTour(tour.TourID).InfoContext(ctx, "tour scheduled", "tour_number", tour.TourNumber)
	return tour, nil
}

// GetTour loads one tour by its identifier
func (s *TourService) GetTour(ctx context.Context, tourID string) (*domain.Tour, error) {
	return s.tourRepo.FindByTourID(ctx, tourID)
}

// ListTours returns tours newest first, optionally filtered by status
func (s *TourService) ListTours(ctx context.Context, status string, limit, offset int64) ([]*domain.Tour, error) {
	if status == "" {
		return s.tourRepo.FindAll(ctx, limit, offset)
	}
	st := domain.Status(status)
	if !st.IsValid() {
		return nil, fmt.Errorf("unknown tour status %q", status)
	}
	return s.tourRepo.FindByStatus(ctx, st, limit)
}

// DeleteTour removes a tour that has not been finalized. Finalized tours
// hold order history and must be canceled instead.
func (s *TourService) DeleteTour(ctx context.Context, tourID string) error {
	tour, err := s.tourRepo.FindByTourID(ctx, tourID)
	if err != nil {
		return err
	}
	if tour.Status == domain.StatusFinalized || tour.Status == domain.StatusFinalizing {
		return domain.ErrTourLocked
	}

	if err := s.participantRepo.DeleteByTourID(ctx, tourID); err != nil {
		return fmt.Errorf("failed to delete tour participants: %w", err)
	}
	return s.tourRepo.Delete(ctx, tourID)
}

// ConfigureWorkflow attaches or replaces one workflow configuration
func (s *TourService) ConfigureWorkflow(ctx context.Context, tourID string, cmd ConfigureWorkflowCommand) (*domain.Tour, error) {
	tour, err := s.tourRepo.FindByTourID(ctx, tourID)
	if err != nil {
		return nil, err
	}

	if err := tour.ConfigureWorkflow(cmd.ToDomainConfig()); err != nil {
		return nil, err
	}
	if err := s.tourRepo.Update(ctx, tour); err != nil {
		return nil, fmt.Errorf("failed to update tour: %w", err)
	}
	return tour, nil
}

// RemoveWorkflow detaches a workflow from a tour
func (s *TourService) RemoveWorkflow(ctx context.Context, tourID string, kind domain.WorkflowKind) (*domain.Tour, error) {
	tour, err := s.tourRepo.FindByTourID(ctx, tourID)
	if err != nil {
		return nil, err
	}

	if err := tour.RemoveWorkflow(kind); err != nil {
		return nil, err
	}
	if err := s.tourRepo.Update(ctx, tour); err != nil {
		return nil, fmt.Errorf("failed to update tour: %w", err)
	}
	return tour, nil
}

// ValidateTour checks a tour is complete enough to finalize and records the
// validated status.
func (s *TourService) ValidateTour(ctx context.Context, tourID string) (*domain.Tour, error) {
	tour, err := s.tourRepo.FindByTourID(ctx, tourID)
	if err != nil {
		return nil, err
	}

	if err := tour.Validate(); err != nil {
		return nil, err
	}
	if err := s.tourRepo.Update(ctx, tour); err != nil {
		return nil, fmt.Errorf("failed to update tour: %w", err)
	}
	return tour, nil
}

// AddParticipant registers one attendee. Emails are unique per tour;
// participants cannot be added once the tour is finalized or canceled.
func (s *TourService) AddParticipant(ctx context.Context, tourID string, cmd AddParticipantCommand) (*domain.Participant, error) {
	tour, err := s.tourRepo.FindByTourID(ctx, tourID)
	if err != nil {
		return nil, err
	}
	if tour.Status.IsTerminal() || tour.Status == domain.StatusFinalizing {
		return nil, domain.ErrTourLocked
	}

	participant, err := domain.NewParticipant(tourID, cmd.FirstName, cmd.LastName, cmd.Email, cmd.Company, cmd.Title)
	if err != nil {
		return nil, err
	}

	exists, err := s.participantRepo.ExistsByEmail(ctx, tourID, participant.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check participant email: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateParticipantEmail
	}

	if err := s.participantRepo.Save(ctx, participant); err != nil {
		return nil, fmt.Errorf("failed to save participant: %w", err)
	}
	return participant, nil
}

// ListParticipants returns a tour's attendees in registration order
func (s *TourService) ListParticipants(ctx context.Context, tourID string) ([]*domain.Participant, error) {
	if _, err := s.tourRepo.FindByTourID(ctx, tourID); err != nil {
		return nil, err
	}
	return s.participantRepo.FindByTourID(ctx, tourID)
}

// csvHeader is the required first row of a participant import file
var csvHeader = []string{"first_name", "last_name", "email", "company", "title"}

// ImportParticipantsCSV bulk-loads attendees from a CSV stream. Rows that
// fail validation or duplicate an existing email are skipped and reported;
// valid rows are imported regardless.
func (s *TourService) ImportParticipantsCSV(ctx context.Context, tourID string, r io.Reader) (*CSVImportResult, error) {
	tour, err := s.tourRepo.FindByTourID(ctx, tourID)
	if err != nil {
		return nil, err
	}
	if tour.Status.IsTerminal() || tour.Status == domain.StatusFinalizing {
		return nil, domain.ErrTourLocked
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(csvHeader)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i, want := range csvHeader {
		if strings.TrimSpace(strings.ToLower(header[i])) != want {
			return nil, fmt.Errorf("unexpected CSV header %q, want %q", header[i], want)
		}
	}

	result := &CSVImportResult{}
	var pending []*domain.Participant
	seen := make(map[string]bool)

	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %s", line, err))
			continue
		}

		participant, err := domain.NewParticipant(tourID, row[0], row[1], row[2], row[3], row[4])
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %s", line, err))
			continue
		}

		if seen[participant.Email] {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: duplicate email %s", line, participant.Email))
			continue
		}
		exists, err := s.participantRepo.ExistsByEmail(ctx, tourID, participant.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check participant email: %w", err)
		}
		if exists {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: duplicate email %s", line, participant.Email))
			continue
		}

		seen[participant.Email] = true
		pending = append(pending, participant)
	}

	if len(pending) > 0 {
		if err := s.participantRepo.SaveMany(ctx, pending); err != nil {
			return nil, fmt.Errorf("failed to save participants: %w", err)
		}
	}
	result.Imported = len(pending)

	s.logger.WithTour(tourID).InfoContext(ctx, "participants imported",
		"imported", result.Imported,
		"skipped", result.Skipped,
	)
	return result, nil
}
