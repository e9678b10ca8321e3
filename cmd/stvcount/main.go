// Command stvcount counts one question of a Helios election from its
// election.json and result.json files.
//
//	stvcount [flags] election.json result.json seats [question]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/big"
	"os"
	"os/signal"
	"reflect"
	"strconv"
	"strings"
	"syscall"

	"github.com/sanity-io/litter"
	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/stv/internal/adapters/report"
	"github.com/vncsmyrnk/stv/internal/adapters/repository/file"
	"github.com/vncsmyrnk/stv/internal/core/domain"
	"github.com/vncsmyrnk/stv/internal/core/ports"
	"github.com/vncsmyrnk/stv/internal/core/services"
	"github.com/vncsmyrnk/stv/internal/core/stv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("stvcount", flag.ContinueOnError)
	flags.SetOutput(stderr)
	var (
		quota    string
		verbose  bool
		tieOrder string
		dump     bool
	)
	flags.StringVar(&quota, "quota", string(domain.QuotaDroop), "Quota rule: geq-droop or gt-hb")
	flags.BoolVar(&verbose, "verbose", false, "Log every distribution and transfer")
	flags.StringVar(&tieOrder, "tie-order", "", "Comma separated candidates to exclude first on a tie")
	flags.BoolVar(&dump, "dump", false, "Dump the full result structure after the report")
	flags.Usage = func() {
		fmt.Fprintln(stderr, "usage: stvcount [flags] election.json result.json seats [question]")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() < 3 || flags.NArg() > 4 {
		flags.Usage()
		return 2
	}

	log := logrus.New()
	log.SetOutput(stderr)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	seats, err := strconv.Atoi(flags.Arg(2))
	if err != nil {
		log.Errorf("Invalid seats %q", flags.Arg(2))
		return 2
	}
	question := 0
	if flags.NArg() == 4 {
		if question, err = strconv.Atoi(flags.Arg(3)); err != nil {
			log.Errorf("Invalid question %q", flags.Arg(3))
			return 2
		}
	}
	rule, err := domain.ParseQuotaRule(quota)
	if err != nil {
		log.Error(err)
		return 2
	}

	election, err := file.LoadElection(flags.Arg(0), question)
	if err != nil {
		log.Error(err)
		return 1
	}
	election.Seats = seats
	election.Quota = rule

	ballots, err := file.LoadBallots(flags.Arg(1), question)
	if err != nil {
		log.Error(err)
		return 1
	}

	counter, err := stv.NewCounter(election, ballots, tieBreaker(tieOrder, stdin, stdout), logrus.NewEntry(log))
	if err != nil {
		log.Error(err)
		return 1
	}

	result, err := counter.Count(ctx)
	if err != nil {
		_ = report.RenderRounds(stdout, counter.Rounds())
		log.Error(err)
		return 1
	}

	if err := report.Render(stdout, result); err != nil {
		log.Error(err)
		return 1
	}
	if dump {
		fmt.Fprintln(stdout, dumpOptions.Sdump(result))
	}
	return 0
}

// tieBreaker asks at the terminal, unless a fixed order is given that covers
// the tie.
func tieBreaker(order string, in io.Reader, out io.Writer) ports.TieBreaker {
	prompt := services.NewPromptTieBreaker(in, out)
	if order == "" {
		return prompt
	}

	var names []string
	for _, name := range strings.Split(order, ",") {
		names = append(names, strings.TrimSpace(name))
	}
	fixed := services.NewOrderTieBreaker(names)
	return ports.TieBreakerFunc(func(ctx context.Context, tie domain.Tie) (string, error) {
		name, err := fixed.BreakTie(ctx, tie)
		if errors.Is(err, services.ErrNoTieDecision) {
			return prompt.BreakTie(ctx, tie)
		}
		return name, err
	})
}

var ratType = reflect.TypeOf(&big.Rat{})

var dumpOptions = litter.Options{
	StripPackageNames: true,
	DumpFunc: func(v reflect.Value, w io.Writer) bool {
		if v.Type() != ratType || v.IsNil() {
			return false
		}
		fmt.Fprintf(w, "%q", v.Interface().(*big.Rat).RatString())
		return true
	},
}
