package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usemate/statsbot/internal/domain/models"
)

func field(value string, diff string) models.StatField {
	f := models.StatField{Value: value}
	if diff != "" {
		f.OneDayDiff = &diff
	}
	return f
}

func TestStatsEmbed(t *testing.T) {
	snap := &models.StatsSnapshot{
		Price:        field("$1.2345", "+3.21%"),
		MarketCap:    field("$7,654,321", "-1.50%"),
		TotalOrders:  field("1024", "+17"),
		FilledOrders: field("512", "+9"),
		UniqueUsers:  field("300", "+4"),
		TotalLocked:  field("$500,000", ""),
	}

	embed := StatsEmbed(snap)

	assert.Equal(t, "$MATE (24h)", embed.Title)
	assert.Equal(t, embedColor, embed.Color)
	require.Len(t, embed.Fields, 7)

	assert.Equal(t, "$1.2345 `+3.21%`", embed.Fields[0].Value)
	assert.Equal(t, "$7,654,321 `-1.50%`", embed.Fields[1].Value)
	assert.Equal(t, "1024 `+17`", embed.Fields[3].Value)

	// No baseline yet: the value is shown without a diff.
	assert.Equal(t, "$500,000", embed.Fields[6].Value)
}
