// Package file loads Helios-style election and result documents from disk.
//
// election.json holds the questions and their answers; the candidate name is
// the part of an answer before the first "/". result.json holds, per
// question, the list of ballots as explicit rankings of answer indices.
package file

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/vncsmyrnk/stv/internal/core/domain"
	"github.com/vncsmyrnk/stv/internal/core/stv"
)

type electionDocument struct {
	Name      string `json:"name"`
	Questions []struct {
		Question string   `json:"question"`
		Answers  []string `json:"answers"`
	} `json:"questions"`
}

// LoadElection reads the candidates of the given question. Seats and quota
// are left for the caller to fill in.
func LoadElection(path string, question int) (domain.Election, error) {
	var doc electionDocument
	if err := readJSON(path, &doc); err != nil {
		return domain.Election{}, err
	}
	if question < 0 || question >= len(doc.Questions) {
		return domain.Election{}, fmt.Errorf("%s: question %d not found, election has %d", path, question, len(doc.Questions))
	}

	q := doc.Questions[question]
	election := domain.Election{Title: doc.Name}
	if q.Question != "" {
		election.Title = q.Question
	}
	for _, answer := range q.Answers {
		name, _, _ := strings.Cut(answer, "/")
		election.Candidates = append(election.Candidates, name)
	}
	return election, nil
}

// LoadBallots reads the rankings of the given question and groups identical
// ones.
func LoadBallots(path string, question int) ([]domain.Ballot, error) {
	var doc [][][]int
	if err := readJSON(path, &doc); err != nil {
		return nil, err
	}
	if question < 0 || question >= len(doc) {
		return nil, fmt.Errorf("%s: question %d not found, result has %d", path, question, len(doc))
	}
	return stv.GroupRankings(doc[question]), nil
}

func readJSON(path string, v any) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(content, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
