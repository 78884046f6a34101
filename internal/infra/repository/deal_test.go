//go:build unit

package repository

import (
	"regexp"
	"strconv"
	"testing"
	"time"

	"dealspot/internal/domain/deal"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var placeholderPattern = regexp.MustCompile(`\$(\d+)`)

// Postgres types parameters when the statement is parsed, so a placeholder
// list with a gap (or one more argument than the statement references) fails
// before execution. Pin the query/arg pairing here since the SQL is written
// by hand.
func assertPlaceholdersMatchArgs(t *testing.T, query string, args []any) {
	t.Helper()

	seen := make(map[int]bool)
	maxN := 0
	for _, m := range placeholderPattern.FindAllStringSubmatch(query, -1) {
		n, err := strconv.Atoi(m[1])
		require.NoError(t, err)
		seen[n] = true
		if n > maxN {
			maxN = n
		}
	}

	require.Equal(t, len(args), maxN, "argument count must equal the highest placeholder")
	for n := 1; n <= maxN; n++ {
		require.True(t, seen[n], "placeholder $%d is never referenced", n)
	}
}

func sampleDeal(t *testing.T) *deal.Deal {
	t.Helper()

	value := 20.0
	discount, err := deal.NewDiscount(deal.DiscountPercent, &value)
	require.NoError(t, err)

	window, err := deal.NewValidityWindow(nil, nil)
	require.NoError(t, err)

	policy, err := deal.NewQuotaPolicy(nil, 1, deal.FrequencyOnce, nil, nil)
	require.NoError(t, err)

	d, err := deal.NewDraft(uuid.New(), deal.Content{
		Title:       "Half-off lunch",
		Description: "Weekday lunch special",
		Category:    "food",
		City:        "portland",
	}, discount, deal.TierStandard, window, policy, time.Now().UTC())
	require.NoError(t, err)
	return d
}

func TestDealInsertQueryBindsAllArgs(t *testing.T) {
	assertPlaceholdersMatchArgs(t, dealInsertQuery, dealInsertArgs(sampleDeal(t)))
}

func TestDealUpdateQueryBindsAllArgs(t *testing.T) {
	assertPlaceholdersMatchArgs(t, dealUpdateQuery, dealUpdateArgs(sampleDeal(t)))
}
