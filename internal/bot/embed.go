package bot

import (
	"github.com/bwmarrin/discordgo"

	"github.com/usemate/statsbot/internal/domain/models"
)

const embedColor = 0x81cb53

// StatsEmbed renders a snapshot as the "$MATE (24h)" embed. Diffs are
// shown as inline code next to the value; fields with no baseline yet
// show the value alone.
func StatsEmbed(s *models.StatsSnapshot) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "$MATE (24h)",
		Color: embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🏷 Price", Value: withDiff(s.Price)},
			{Name: "💵 MarketCap", Value: withDiff(s.MarketCap)},
			{Name: "​", Value: "*** Limit orders (24h) ***"},
			{Name: "🗃 Total Orders", Value: withDiff(s.TotalOrders)},
			{Name: "☑️ Filled Orders", Value: withDiff(s.FilledOrders)},
			{Name: "👥 Unique Users", Value: withDiff(s.UniqueUsers)},
			{Name: "💰 Total Locked", Value: withDiff(s.TotalLocked)},
		},
	}
}

func withDiff(f models.StatField) string {
	if f.OneDayDiff == nil {
		return f.Value
	}
	return f.Value + " `" + *f.OneDayDiff + "`"
}
