package simulator

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	winnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// PrintStandings writes a styled standings table: strategies ordered by total
// wins with their win rate over all games they played.
func PrintStandings(w io.Writer, results *Results) {
	fmt.Fprintln(w, headerStyle.Render("FINAL STANDINGS"))

	// Games played per bot differ: bots only score at tables they were
	// seated at.
	played := make(map[string]int)
	for _, table := range results.Tables {
		games := 0
		for _, wins := range table.Wins {
			games += wins
		}
		for _, name := range table.Seats {
			played[name] += games
		}
	}

	names := make([]string, 0, len(played))
	for name := range played {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if results.Wins[names[i]] != results.Wins[names[j]] {
			return results.Wins[names[i]] > results.Wins[names[j]]
		}
		return names[i] < names[j]
	})

	for rank, name := range names {
		wins := results.Wins[name]
		rate := 0.0
		if played[name] > 0 {
			rate = float64(wins) / float64(played[name]) * 100
		}
		line := fmt.Sprintf("%2d. %-20s %5d wins  %5.1f%%  (%d games)",
			rank+1, name, wins, rate, played[name])
		if rank == 0 && wins > 0 {
			fmt.Fprintln(w, winnerStyle.Render(line))
		} else {
			fmt.Fprintln(w, rowStyle.Render(line))
		}
	}

	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%d games across %d tables in %s",
		results.Games, len(results.Tables), results.Duration.Round(time.Millisecond))))
}

// FormatTable renders one table's seating for verbose logs.
func FormatTable(result TableResult) string {
	return strings.Join(result.Seats, ", ")
}
