package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	therapistRepo "solbooking/database/repository/therapist"
	"solbooking/models"
	"solbooking/services/availability"
	"solbooking/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultSessionService implements SessionService on top of the availability
// cache, the therapist directory and a redis session store.
type DefaultSessionService struct {
	Availability availability.Service
	Therapists   therapistRepo.TherapistRepository
	Window       WindowPolicy
	Cache        *redis.Client
	SessionTTL   time.Duration
	Now          func() time.Time
}

func (s *DefaultSessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Initiate starts a booking session for a therapist and a client state. The
// therapist's category and the client's display zone are resolved once here.
func (s *DefaultSessionService) Initiate(ctx context.Context, therapistEmail, clientState string) (*models.BookingSession, error) {
	therapist, err := s.Therapists.GetByCalendarEmail(therapistEmail)
	if err != nil {
		return nil, fmt.Errorf("resolving therapist %s: %w", therapistEmail, err)
	}

	session := &models.BookingSession{
		SessionID:      uuid.New().String(),
		TherapistKey:   therapist.CalendarEmail,
		TherapistName:  therapist.InternName,
		Category:       therapist.Category().String(),
		ClientState:    clientState,
		ClientTimezone: utils.TimezoneForState(clientState),
	}
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SelectSlot records a client-chosen display time for a date, converting it to
// the scheduling timezone and validating it against the day's resolved slots.
func (s *DefaultSessionService) SelectSlot(ctx context.Context, sessionID, date, displayTime string) (*models.BookingSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	day, err := s.Availability.GetOrFetch(ctx, session.TherapistKey, date)
	if err != nil {
		return nil, fmt.Errorf("loading availability for %s: %w", date, err)
	}

	window := s.Window.ComputeWindow(s.now())
	resolved := ResolveDaySlots(day, window, models.ParseCategory(session.Category))

	chosen := utils.FromDisplayTime(displayTime, session.ClientTimezone, date)
	offered := false
	for _, slot := range resolved {
		if slot == chosen {
			offered = true
			break
		}
	}
	if !offered {
		utils.GetLogger().Warn("rejected slot selection",
			zap.String("sessionID", sessionID), zap.String("date", date),
			zap.String("displayTime", displayTime), zap.String("schedulingTime", chosen.String()))
		return nil, ErrSlotUnavailable
	}

	mapping := utils.DisplaySlot(chosen, session.ClientTimezone, date)
	session.SelectedDate = date
	session.SelectedSlot = &mapping
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Confirm closes the session and emits the scheduling-timezone pair consumed
// by the downstream appointment-creation flow.
func (s *DefaultSessionService) Confirm(ctx context.Context, sessionID string) (*models.BookingConfirmation, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.SelectedSlot == nil || session.SelectedDate == "" {
		return nil, ErrNoSlotSelected
	}

	confirmation := &models.BookingConfirmation{
		TherapistKey:   session.TherapistKey,
		Date:           session.SelectedDate,
		SchedulingTime: session.SelectedSlot.SchedulingTime,
	}
	if err := s.Cache.Del(ctx, utils.BookingSessionPrefix+sessionID).Err(); err != nil {
		utils.GetLogger().Warn("failed to clear confirmed booking session",
			zap.String("sessionID", sessionID), zap.Error(err))
	}
	return confirmation, nil
}

// Cancel discards a session.
func (s *DefaultSessionService) Cancel(ctx context.Context, sessionID string) error {
	return s.Cache.Del(ctx, utils.BookingSessionPrefix+sessionID).Err()
}

func (s *DefaultSessionService) saveSession(ctx context.Context, session *models.BookingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshaling booking session: %w", err)
	}
	if err := s.Cache.Set(ctx, utils.BookingSessionPrefix+session.SessionID, data, s.SessionTTL).Err(); err != nil {
		return fmt.Errorf("storing booking session: %w", err)
	}
	return nil
}

func (s *DefaultSessionService) loadSession(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	data, err := s.Cache.Get(ctx, utils.BookingSessionPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading booking session: %w", err)
	}
	var session models.BookingSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("parsing booking session: %w", err)
	}
	return &session, nil
}
