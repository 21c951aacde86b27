package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/r-yashaswini/job-recommender-system/core"
	"github.com/r-yashaswini/job-recommender-system/search"
)

// jobsPerNotification caps how many matches one alert carries.
const jobsPerNotification = 5

var (
	// ErrSearcherRequired indicates the notifier needs a searcher.
	ErrSearcherRequired = errors.New("searcher is required")

	// ErrRecipientSourceRequired indicates the notifier needs recipients.
	ErrRecipientSourceRequired = errors.New("recipient source is required")

	// ErrSenderRequired indicates the notifier needs a sender.
	ErrSenderRequired = errors.New("sender is required")
)

// Recipient is one person receiving job alerts, with the preferences the
// alert query is built from.
type Recipient struct {
	Email    string
	Name     string
	Role     string
	Location string
	Skills   []string
}

// RecipientSource lists the recipients with notification preferences.
type RecipientSource interface {
	Recipients(ctx context.Context) ([]*Recipient, error)
}

// Sender delivers one alert. The smtp implementation is the production one.
type Sender interface {
	Send(ctx context.Context, recipient *Recipient, jobs []*core.ScoredJob) error
}

// Ledger remembers which (recipient, job) pairs were already delivered.
// The badger SeenStore satisfies it.
type Ledger interface {
	Notified(recipient string, jobID int64) (bool, error)
	MarkNotified(recipient string, jobID int64) error
}

// Notifier scans for new matches per recipient and sends alerts.
type Notifier struct {
	searcher *search.Searcher
	source   RecipientSource
	sender   Sender
	ledger   Ledger
	logger   *slog.Logger
}

// NewNotifier creates a notifier. ledger may be nil, disabling cross-run
// dedup.
func NewNotifier(searcher *search.Searcher, source RecipientSource, sender Sender, ledger Ledger, logger *slog.Logger) (*Notifier, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if source == nil {
		return nil, ErrRecipientSourceRequired
	}
	if sender == nil {
		return nil, ErrSenderRequired
	}
	if logger == nil {
		logger = slog.Default().With("component", "notifier")
	}

	return &Notifier{
		searcher: searcher,
		source:   source,
		sender:   sender,
		ledger:   ledger,
		logger:   logger,
	}, nil
}

// Run performs one notification scan. Per-recipient failures are logged and
// isolated. Returns the number of alerts sent.
func (n *Notifier) Run(ctx context.Context) (int, error) {
	recipients, err := n.source.Recipients(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing recipients: %w", err)
	}

	sent := 0
	for _, recipient := range recipients {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		if n.notifyOne(ctx, recipient) {
			sent++
		}
	}

	n.logger.Info("notification scan finished", "recipients", len(recipients), "sent", sent)
	return sent, nil
}

func (n *Notifier) notifyOne(ctx context.Context, recipient *Recipient) bool {
	query, filters := buildQuery(recipient)

	jobs, err := n.searcher.Search(ctx, query, filters, jobsPerNotification)
	if err != nil {
		n.logger.Error("search failed for recipient", "recipient", recipient.Email, "err", err)
		return false
	}

	fresh := n.filterNotified(recipient, jobs)
	if len(fresh) == 0 {
		n.logger.Debug("nothing new for recipient", "recipient", recipient.Email)
		return false
	}

	if err := n.sender.Send(ctx, recipient, fresh); err != nil {
		// The ledger write is skipped so the next scan retries these jobs.
		n.logger.Error("delivery failed", "recipient", recipient.Email, "err", err)
		return false
	}

	n.markNotified(recipient, fresh)
	n.logger.Info("alert sent", "recipient", recipient.Email, "jobs", len(fresh))
	return true
}

// buildQuery assembles the search query and filters from the recipient's
// preferences.
func buildQuery(recipient *Recipient) (string, core.SearchFilters) {
	var parts []string
	if recipient.Role != "" {
		parts = append(parts, recipient.Role+" jobs")
	}
	if recipient.Location != "" {
		parts = append(parts, "in "+recipient.Location)
	}
	if len(recipient.Skills) > 0 {
		head := recipient.Skills
		if len(head) > 3 {
			head = head[:3]
		}
		parts = append(parts, "using "+strings.Join(head, ", "))
	}

	query := "software jobs"
	if len(parts) > 0 {
		query = strings.Join(parts, " ")
	}

	return query, core.SearchFilters{
		Location:     recipient.Location,
		RoleType:     recipient.Role,
		ResumeSkills: core.NewSkillSet(recipient.Skills...),
	}
}

func (n *Notifier) filterNotified(recipient *Recipient, jobs []*core.ScoredJob) []*core.ScoredJob {
	if n.ledger == nil {
		return jobs
	}

	fresh := jobs[:0:0]
	for _, job := range jobs {
		notified, err := n.ledger.Notified(recipient.Email, job.Id)
		if err != nil {
			n.logger.Warn("ledger lookup failed", "err", err)
			fresh = append(fresh, job)
			continue
		}
		if !notified {
			fresh = append(fresh, job)
		}
	}
	return fresh
}

func (n *Notifier) markNotified(recipient *Recipient, jobs []*core.ScoredJob) {
	if n.ledger == nil {
		return
	}
	for _, job := range jobs {
		if err := n.ledger.MarkNotified(recipient.Email, job.Id); err != nil {
			n.logger.Warn("ledger write failed", "err", err)
		}
	}
}
