// Package planning holds the order-generation core: recipient assignment,
// SKU/quantity plans, and payload building. Everything here is pure
// computation; no I/O happens below the application layer.
package planning

import (
	"errors"
	"fmt"

	"github.com/mostafa-azimi/touring-app-sub000/internal/domain"
)

// ErrInsufficientRecipients is returned when a workflow asks for more
// recipients than the plan resolved. Identities are never duplicated to
// fill the gap.
var ErrInsufficientRecipients = errors.New("insufficient recipients")

// AssignmentPlan is the ordered recipient list shared by every workflow in
// one finalization run. Index 0 is always the first participant, the host
// follows the participants, extras come last in pool order. The plan is
// computed once and never reshuffled, so two workflows asking for the same
// index range address the same people.
type AssignmentPlan struct {
	recipients []domain.Recipient
}

// BuildAssignmentPlan resolves the recipient list for a finalization run.
// totalNeeded is the sum of order counts across the selected fulfillment
// workflows; purchase-order-only workflows consume no recipients. When the
// extras pool cannot cover the gap, the plan is capped at what is available
// and each workflow's Take reports the shortfall, so workflows that consume
// no recipients are unaffected.
func BuildAssignmentPlan(
	participants []*domain.Participant,
	host *domain.TeamMember,
	extras []*domain.ExtraCustomer,
	totalNeeded int,
) (*AssignmentPlan, error) {
	if totalNeeded < 0 {
		return nil, fmt.Errorf("total needed must not be negative, got %d", totalNeeded)
	}

	recipients := make([]domain.Recipient, 0, totalNeeded)
	for _, p := range participants {
		recipients = append(recipients, domain.RecipientFromParticipant(p))
	}
	if host != nil {
		recipients = append(recipients, domain.RecipientFromHost(host))
	}

	if missing := totalNeeded - len(recipients); missing > 0 {
		if missing > len(extras) {
			missing = len(extras)
		}
		for _, e := range extras[:missing] {
			recipients = append(recipients, domain.RecipientFromExtra(e))
		}
	}

	return &AssignmentPlan{recipients: recipients}, nil
}

// Take returns the stable front slice of n recipients. Every workflow draws
// from the front, so the same index always maps to the same person within a
// run.
func (p *AssignmentPlan) Take(n int) ([]domain.Recipient, error) {
	if n > len(p.recipients) {
		return nil, fmt.Errorf("%w: requested %d of %d", ErrInsufficientRecipients, n, len(p.recipients))
	}
	out := make([]domain.Recipient, n)
	copy(out, p.recipients[:n])
	return out, nil
}

// Len returns the number of resolved recipients
func (p *AssignmentPlan) Len() int {
	return len(p.recipients)
}
