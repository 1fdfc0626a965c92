package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/statrange/internal/frontend/telnet"
	"github.com/cory-johannsen/statrange/internal/game/command"
	"github.com/cory-johannsen/statrange/internal/game/damage"
	"github.com/cory-johannsen/statrange/internal/game/dex"
	"github.com/cory-johannsen/statrange/internal/game/dice"
	"github.com/cory-johannsen/statrange/internal/game/inference"
)

// ChartCeiling is the fixed height of every histogram bar scale.
const ChartCeiling = damage.Rolls

const barGlyph = "█"

// RenderNotice formats a short warning shown in place of a chart.
func RenderNotice(msg string) string {
	return telnet.Colorize(telnet.Yellow, msg)
}

// RenderError formats an error message as red Telnet text.
func RenderError(msg string) string {
	return telnet.Colorize(telnet.Red, msg)
}

// RenderBattle summarizes a resolved battle context on one line.
//
// Postcondition: Returns a non-empty ANSI-colored string.
func RenderBattle(c damage.BattleContext) string {
	move := c.MoveType
	if move == "" {
		move = "typeless"
	}
	parts := []string{
		fmt.Sprintf("Lv%d %s %s %dbp", c.Level, move, c.Category, c.Power),
		fmt.Sprintf("vs def %d", c.Defense),
	}
	if c.OffenseStage != 0 {
		parts = append(parts, fmt.Sprintf("atk %+d", c.OffenseStage))
	}
	if c.DefenseStage != 0 {
		parts = append(parts, fmt.Sprintf("def %+d", c.DefenseStage))
	}
	flags := []struct {
		on   bool
		name string
	}{
		{c.DefenseBadge, "badge"},
		{c.STAB, "stab"},
		{c.Critical, "crit"},
		{c.DoubleDamage, "double"},
		{c.Burned, "burn"},
		{c.Screen, "screen"},
		{c.FlashFire, "flash fire"},
		{c.ThickFat, "thick fat"},
	}
	for _, f := range flags {
		if f.on {
			parts = append(parts, f.name)
		}
	}
	if c.Weather != damage.WeatherNeutral {
		parts = append(parts, "weather "+c.Weather.String())
	}
	if c.Sport != damage.SportNone {
		parts = append(parts, c.Sport.String()+" sport")
	}
	for _, eff := range []damage.Ratio{c.Primary, c.Secondary} {
		if eff != (damage.Ratio{}) && !eff.IsUnit() {
			parts = append(parts, eff.String())
		}
	}
	return telnet.Colorize(telnet.Dim, strings.Join(parts, ", "))
}

// RenderResult formats an inference result as a summary and a bar chart.
// An empty result renders only a notice.
//
// Postcondition: Returns at least one line.
func RenderResult(res inference.Result) []string {
	if res.Empty() {
		return []string{RenderNotice(fmt.Sprintf(
			"No stat in %d..%d deals %d damage in this scenario.",
			inference.StatMin, inference.StatMax, res.Observed,
		))}
	}

	h := res.Histogram
	support := res.Support()
	best := h.MostLikely()
	lines := []string{
		telnet.Colorf(telnet.BrightWhite, "Observed %d damage", res.Observed),
		fmt.Sprintf("  Possible stats: %s  (%d of %d rolls match)",
			telnet.Colorize(telnet.BrightGreen, formatRange(support.Min, support.Max)),
			h.Total(), support.Len()*damage.Rolls),
		fmt.Sprintf("  Most likely:    %s  (%d/%d rolls)",
			telnet.Colorize(telnet.BrightGreen, formatRuns(best)),
			h.Count(best[0]), damage.Rolls),
		telnet.Colorf(telnet.Dim, "  Searched %s", res.Estimate),
	}
	return append(lines, RenderHistogram(h)...)
}

// RenderHistogram draws one horizontal bar per stat in the histogram's
// range. Every bar is scaled against ChartCeiling.
//
// Postcondition: Returns nil for an empty histogram, otherwise a header
// line followed by exactly len(h.Counts) rows.
func RenderHistogram(h inference.Histogram) []string {
	if h.Empty() {
		return nil
	}
	top := 0
	for _, c := range h.Counts {
		top = max(top, c)
	}
	width := max(len(strconv.Itoa(h.Start+len(h.Counts)-1)), len("stat"))

	lines := make([]string, 0, len(h.Counts)+1)
	lines = append(lines, telnet.Colorf(telnet.Cyan, "  %*s +%s+", width, "stat", axis()))
	for _, e := range h.Entries() {
		color := telnet.Green
		if e.Count == top {
			color = telnet.BrightGreen
		}
		bar := telnet.Colorize(color, strings.Repeat(barGlyph, e.Count)) + strings.Repeat(" ", ChartCeiling-e.Count)
		lines = append(lines, fmt.Sprintf("  %s |%s| %2d",
			telnet.PadLeft(strconv.Itoa(e.Stat), width), bar, e.Count))
	}
	return lines
}

// axis returns the ruler above the bars, with a tick every 4 rolls.
func axis() string {
	var b strings.Builder
	for i := 1; i <= ChartCeiling; i++ {
		if i%4 == 0 && i < ChartCeiling {
			b.WriteByte('+')
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

// RenderSample formats a simulated hit.
func RenderSample(s dice.Sample) string {
	return telnet.Colorf(telnet.BrightWhite, "Stat %d rolled %d%%: %d damage", s.Stat, s.Percent(), s.Damage)
}

// RenderSpecies formats one species entry.
func RenderSpecies(s *dex.Species) string {
	return fmt.Sprintf("  %s%s%s (%s)  %s", telnet.BrightWhite, s.Name, telnet.Reset, s.ID, strings.Join(s.Types, "/"))
}

// RenderMove formats one move entry.
func RenderMove(m *dex.Move) string {
	return fmt.Sprintf("  %s%s%s (%s)  %s %s, power %d", telnet.BrightWhite, m.Name, telnet.Reset, m.ID, m.Type, m.Category(), m.Power)
}

// RenderList formats identifiers in rows of perRow.
//
// Precondition: perRow > 0.
func RenderList(title string, ids []string, perRow int) []string {
	lines := []string{telnet.Colorf(telnet.BrightWhite, "%s (%d):", title, len(ids))}
	for i := 0; i < len(ids); i += perRow {
		lines = append(lines, "  "+strings.Join(ids[i:min(i+perRow, len(ids))], ", "))
	}
	return lines
}

// RenderHelp lists every command grouped by category.
func RenderHelp(registry *command.Registry) []string {
	lines := []string{telnet.Colorize(telnet.BrightWhite, "Available commands:")}
	categories := []struct {
		name  string
		label string
	}{
		{command.CategoryCalc, "Calculator"},
		{command.CategoryReference, "Reference"},
		{command.CategorySystem, "System"},
	}

	byCategory := registry.CommandsByCategory()
	for _, cat := range categories {
		cmds := byCategory[cat.name]
		if len(cmds) == 0 {
			continue
		}
		lines = append(lines, telnet.Colorf(telnet.BrightYellow, "  %s:", cat.label))
		for _, cmd := range cmds {
			aliases := ""
			if len(cmd.Aliases) > 0 {
				aliases = " (" + strings.Join(cmd.Aliases, ", ") + ")"
			}
			lines = append(lines, telnet.Colorf(telnet.Green, "    %-8s", cmd.Name)+aliases+": "+cmd.Help)
			if cmd.Usage != "" {
				lines = append(lines, telnet.Colorf(telnet.Dim, "             %s %s", cmd.Name, cmd.Usage))
			}
		}
	}
	return lines
}

// RenderCommandHelp shows one command's usage.
func RenderCommandHelp(cmd *command.Command) []string {
	return []string{
		telnet.Colorf(telnet.Green, "%s %s", cmd.Name, cmd.Usage),
		"  " + cmd.Help,
	}
}

// RenderKeys lists the key=value arguments accepted by scenario commands.
func RenderKeys(keys []string) string {
	return telnet.Colorf(telnet.Dim, "  keys: %s", strings.Join(keys, " "))
}

func formatRange(lo, hi int) string {
	if lo == hi {
		return strconv.Itoa(lo)
	}
	return fmt.Sprintf("%d-%d", lo, hi)
}

// formatRuns compresses ascending stats into runs, e.g. "16-19, 22".
func formatRuns(stats []int) string {
	var runs []string
	for i := 0; i < len(stats); {
		j := i
		for j+1 < len(stats) && stats[j+1] == stats[j]+1 {
			j++
		}
		runs = append(runs, formatRange(stats[i], stats[j]))
		i = j + 1
	}
	return strings.Join(runs, ", ")
}
