// Package report renders count results for people to read.
package report

import (
	"bytes"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/vncsmyrnk/stv/internal/core/domain"
)

// Render writes every round of result followed by the winners.
func Render(w io.Writer, result *domain.Result) error {
	var buf bytes.Buffer
	for _, round := range result.Rounds {
		renderRound(&buf, round)
	}
	renderWinners(&buf, result)
	_, err := w.Write(buf.Bytes())
	return err
}

// RenderRounds writes rounds only, for counts that stopped early.
func RenderRounds(w io.Writer, rounds []domain.Round) error {
	var buf bytes.Buffer
	for _, round := range rounds {
		renderRound(&buf, round)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func renderRound(buf *bytes.Buffer, round domain.Round) {
	fmt.Fprintf(buf, "\n== COUNT %d\n", round.Number)
	renderTallies(buf, round.Tallies)
	fmt.Fprintf(buf, "---- Exhausted: %s\n", format(round.Exhausted))
	fmt.Fprintf(buf, "---- Quota: %s\n", format(round.Quota))

	for _, e := range round.Events {
		switch e.Kind {
		case domain.EventElected:
			fmt.Fprintf(buf, "**** %s provisionally elected\n", e.Candidates[0])
		case domain.EventAutoElected:
			fmt.Fprintf(buf, "**** %s provisionally elected on %s quotas\n", e.Candidates[0], format(domain.Quotas(e.Value, round.Quota)))
		case domain.EventSurplusTransfer:
			fmt.Fprintf(buf, "---- Transferring surplus from %s at value %s\n", e.Candidates[0], format(e.Multiplier))
			for _, tr := range e.Transfers {
				fmt.Fprintf(buf, "---- Transferred %s votes to %s via %d ballots\n", format(tr.Value), tr.To, tr.Ballots)
			}
			if e.Exhausted != nil && e.Exhausted.Sign() > 0 {
				fmt.Fprintf(buf, "---- Exhausted %s votes\n", format(e.Exhausted))
			}
			renderTallies(buf, e.Tallies)
		case domain.EventBulkExclusion:
			for _, name := range e.Candidates {
				fmt.Fprintf(buf, "---- Bulk excluding %s\n", name)
			}
		case domain.EventTieBroken:
			fmt.Fprintf(buf, "---- There was a tie for last place between %s\n", strings.Join(e.Candidates, ", "))
		case domain.EventExclusion:
			fmt.Fprintf(buf, "---- Excluding %s\n", e.Candidates[0])
		}
	}
}

func renderTallies(buf *bytes.Buffer, tallies []domain.CandidateTally) {
	buf.WriteString("\n")
	for _, t := range tallies {
		mark := " "
		if t.Elected {
			mark = "*"
		}
		fmt.Fprintf(buf, "    %s%s: %s\n", mark, t.Name, format(t.Votes))
	}
	buf.WriteString("\n")
}

func renderWinners(buf *bytes.Buffer, result *domain.Result) {
	buf.WriteString("\n== TALLY COMPLETE\n\nThe winners are, in order of election:\n\n")
	for _, name := range result.Winners {
		fmt.Fprintf(buf, "     %s\n", name)
	}
	fmt.Fprintf(buf, "\n---- Exhausted: %s\n", format(result.Exhausted))
}

func format(r *big.Rat) string {
	if r == nil {
		return "0.00"
	}
	return r.FloatString(2)
}
