package planning

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mostafa-azimi/touring-app-sub000/internal/domain"
)

func testParticipants(n int) []*domain.Participant {
	out := make([]*domain.Participant, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &domain.Participant{
			FirstName: fmt.Sprintf("Participant%d", i+1),
			LastName:  "Person",
			Email:     fmt.Sprintf("participant%d@example.com", i+1),
		})
	}
	return out
}

func testHost() *domain.TeamMember {
	return &domain.TeamMember{FirstName: "Hana", LastName: "Host", Email: "hana@example.com"}
}

func testExtras(n int) []*domain.ExtraCustomer {
	out := make([]*domain.ExtraCustomer, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &domain.ExtraCustomer{
			FirstName: fmt.Sprintf("Extra%d", i+1),
			LastName:  "Filler",
			Email:     fmt.Sprintf("extra%d@example.com", i+1),
			Position:  i,
		})
	}
	return out
}

func TestBuildAssignmentPlanRealPeopleOnly(t *testing.T) {
	// N <= P+1: all recipients are real people, host last, no extras
	plan, err := BuildAssignmentPlan(testParticipants(4), testHost(), testExtras(10), 5)
	require.NoError(t, err)
	require.Equal(t, 5, plan.Len())

	recipients, err := plan.Take(5)
	require.NoError(t, err)

	seen := make(map[string]struct{})
	for i, r := range recipients {
		if i < 4 {
			assert.Equal(t, domain.RecipientParticipant, r.Type)
		} else {
			assert.Equal(t, domain.RecipientHost, r.Type)
		}
		_, dup := seen[r.Email]
		assert.False(t, dup, "duplicate recipient %s", r.Email)
		seen[r.Email] = struct{}{}
	}
	assert.Equal(t, "Hana Host", recipients[4].FullName())
}

func TestBuildAssignmentPlanPullsExtras(t *testing.T) {
	// 2 participants + host, 5 orders needed: 2 extras pulled in pool order
	plan, err := BuildAssignmentPlan(testParticipants(2), testHost(), testExtras(4), 5)
	require.NoError(t, err)

	recipients, err := plan.Take(5)
	require.NoError(t, err)
	require.Len(t, recipients, 5)

	assert.Equal(t, domain.RecipientParticipant, recipients[0].Type)
	assert.Equal(t, domain.RecipientParticipant, recipients[1].Type)
	assert.Equal(t, domain.RecipientHost, recipients[2].Type)
	assert.Equal(t, domain.RecipientExtra, recipients[3].Type)
	assert.Equal(t, domain.RecipientExtra, recipients[4].Type)
	assert.Equal(t, "extra1@example.com", recipients[3].Email)
	assert.Equal(t, "extra2@example.com", recipients[4].Email)
}

func TestBuildAssignmentPlanCapsAtAvailablePool(t *testing.T) {
	// 1 participant + host + 2 extras = 4 available against 10 needed: the
	// plan caps at 4 and the oversized draw fails, not the build
	plan, err := BuildAssignmentPlan(testParticipants(1), testHost(), testExtras(2), 10)
	require.NoError(t, err)
	assert.Equal(t, 4, plan.Len())

	_, err = plan.Take(10)
	assert.ErrorIs(t, err, ErrInsufficientRecipients)

	recipients, err := plan.Take(4)
	require.NoError(t, err)
	assert.Equal(t, domain.RecipientExtra, recipients[3].Type)
}

func TestAssignmentPlanStableAcrossTakes(t *testing.T) {
	// Two workflows drawing overlapping front slices see the same people
	plan, err := BuildAssignmentPlan(testParticipants(3), testHost(), testExtras(5), 7)
	require.NoError(t, err)

	first, err := plan.Take(3)
	require.NoError(t, err)
	second, err := plan.Take(7)
	require.NoError(t, err)

	for i := range first {
		assert.Equal(t, first[i], second[i], "index %d reassigned between takes", i)
	}
}

func TestAssignmentPlanTakeBeyondPlan(t *testing.T) {
	plan, err := BuildAssignmentPlan(testParticipants(2), testHost(), nil, 3)
	require.NoError(t, err)

	_, err = plan.Take(4)
	assert.ErrorIs(t, err, ErrInsufficientRecipients)
}

func TestBuildAssignmentPlanNoHost(t *testing.T) {
	plan, err := BuildAssignmentPlan(testParticipants(2), nil, testExtras(2), 3)
	require.NoError(t, err)

	recipients, err := plan.Take(3)
	require.NoError(t, err)
	assert.Equal(t, domain.RecipientExtra, recipients[2].Type)
}
