package service

import (
	"context"
	"log/slog"

	"github.com/segyhp/shelfmark/internal/clock"
	"github.com/segyhp/shelfmark/internal/domain"
	"github.com/segyhp/shelfmark/internal/notifier"
	"github.com/segyhp/shelfmark/internal/repository"
)

// ReminderService nudges borrowers whose loans are past due.
type ReminderService struct {
	borrowRepo repository.BorrowRepository
	sink       notifier.Notifier
	clock      clock.Clock
	logger     *slog.Logger
}

func NewReminderService(borrowRepo repository.BorrowRepository, sink notifier.Notifier, clk clock.Clock, logger *slog.Logger) *ReminderService {
	if clk == nil {
		clk = clock.NewSystem()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReminderService{borrowRepo: borrowRepo, sink: sink, clock: clk, logger: logger}
}

// SendOverdueReminders sends one reminder per overdue loan and returns how
// many the sink accepted.
func (s *ReminderService) SendOverdueReminders(ctx context.Context) (int, error) {
	overdue, err := s.borrowRepo.ListOverdue(ctx, s.clock.Now())
	if err != nil {
		return 0, wrapRepoError(err)
	}

	reminders := make([]domain.NotificationCandidate, 0, len(overdue))
	for _, b := range overdue {
		reminders = append(reminders, domain.NewOverdueNotification(b))
	}

	sent := notifier.Dispatch(ctx, s.sink, s.logger, reminders)
	s.logger.InfoContext(ctx, "overdue reminders sent", "overdue", len(overdue), "sent", sent)
	return sent, nil
}
