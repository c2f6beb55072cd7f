package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"charm-money/internal/cmi"
	"charm-money/internal/domain"
	"charm-money/internal/service"
)

const (
	colorCyan  = "\033[36m"
	colorReset = "\033[0m"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cmi_score",
		Short:         "Score Charm Money Indicator answers offline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newScoreCmd(), newIdentitiesCmd(), newFamiliesCmd())
	return root
}

func newScoreCmd() *cobra.Command {
	var (
		file   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score an answers file (YAML or JSON)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			answers, err := loadAnswers(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := service.ValidateAnswers(answers); err != nil {
				return err
			}
			result := cmi.Evaluate(answers)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			printResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "answers file, \"-\" reads stdin")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	if err := cmd.MarkFlagRequired("file"); err != nil {
		panic(err)
	}
	return cmd
}

func newIdentitiesCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "identities",
		Short: "List the 32 money identities",
		RunE: func(cmd *cobra.Command, _ []string) error {
			identities := cmi.MoneyIdentities()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), identities)
			}
			out := cmd.OutOrStdout()
			for _, id := range identities {
				fmt.Fprintf(out, "%2d  %s  %s\n", id.ID, id.Bits, id.Name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func newFamiliesCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "families",
		Short: "List the 8 pattern families",
		RunE: func(cmd *cobra.Command, _ []string) error {
			families := cmi.PatternFamilies()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), families)
			}
			out := cmd.OutOrStdout()
			for _, f := range families {
				fmt.Fprintf(out, "%s  %s\n", f.Bits, f.Name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

// answersFile acepta {answers: {...}} o el mapa plano de respuestas.
type answersFile struct {
	Answers domain.Answers `yaml:"answers"`
}

func loadAnswers(path string, stdin io.Reader) (domain.Answers, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}
	return parseAnswers(raw)
}

func parseAnswers(raw []byte) (domain.Answers, error) {
	var wrapped answersFile
	if err := yaml.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Answers) > 0 {
		return wrapped.Answers, nil
	}
	var flat domain.Answers
	if err := yaml.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("parse answers: %w", err)
	}
	if len(flat) == 0 {
		return nil, fmt.Errorf("parse answers: no answers found")
	}
	return flat, nil
}

func printResult(out io.Writer, result domain.Result) {
	fmt.Fprintf(out, "%sTraits%s\n", colorCyan, colorReset)
	for _, t := range cmi.Traits() {
		score := result.TraitScores[t]
		fmt.Fprintf(out, "  %-11s %-4s %3d%%  raw=%+.3f\n",
			cmi.TraitLabel(t), cmi.Verdict(score), cmi.AxisPercent(score), score.RawDirection)
	}
	fmt.Fprintf(out, "%sIdentity%s\n", colorCyan, colorReset)
	fmt.Fprintf(out, "  #%d %s (%s)\n", result.Type.ID, result.Type.Name, result.Bits)
	fmt.Fprintf(out, "  %s\n", strings.Join(result.Type.Tags, " / "))
	fmt.Fprintf(out, "%sFamily%s\n", colorCyan, colorReset)
	fmt.Fprintf(out, "  %s (%s)\n", result.Family.Name, result.Family.Bits)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
