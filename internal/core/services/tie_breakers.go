package services

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vncsmyrnk/stv/internal/core/domain"
	"github.com/vncsmyrnk/stv/internal/core/ports"
)

var ErrNoTieDecision = errors.New("no tie decision available")

// NewOrderTieBreaker excludes whichever tied candidate comes first in order.
// Ties between candidates that are not listed are left unresolved.
func NewOrderTieBreaker(order []string) ports.TieBreaker {
	rank := make(map[string]int, len(order))
	for i, name := range order {
		if _, ok := rank[name]; !ok {
			rank[name] = i
		}
	}
	return ports.TieBreakerFunc(func(ctx context.Context, tie domain.Tie) (string, error) {
		choice, best := "", len(order)
		for _, name := range tie.Candidates {
			if i, ok := rank[name]; ok && i < best {
				choice, best = name, i
			}
		}
		if choice == "" {
			return "", fmt.Errorf("%w: none of %s is ranked", ErrNoTieDecision, strings.Join(tie.Candidates, ", "))
		}
		return choice, nil
	})
}

type promptTieBreaker struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPromptTieBreaker asks on out which tied candidate to exclude and reads
// the answer, a number from the printed list, from in. Invalid answers are
// asked again.
func NewPromptTieBreaker(in io.Reader, out io.Writer) ports.TieBreaker {
	return &promptTieBreaker{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

func (p *promptTieBreaker) BreakTie(ctx context.Context, tie domain.Tie) (string, error) {
	fmt.Fprintln(p.out, "---- There is a tie for last place:")
	for i, name := range tie.Candidates {
		fmt.Fprintf(p.out, "     %d. %s\n", i, name)
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fmt.Fprintln(p.out, "---- Which candidate to exclude?")
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return "", fmt.Errorf("reading tie decision: %w", err)
			}
			return "", fmt.Errorf("%w: input closed", ErrNoTieDecision)
		}

		choice, err := strconv.Atoi(strings.TrimSpace(p.in.Text()))
		if err != nil || choice < 0 || choice >= len(tie.Candidates) {
			fmt.Fprintf(p.out, "---- Enter a number between 0 and %d\n", len(tie.Candidates)-1)
			continue
		}
		return tie.Candidates[choice], nil
	}
}
