package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"placement-prep/internal/delivery/http/dto"
	"placement-prep/internal/domain/matching"
	"placement-prep/internal/infrastructure/extract"

	"github.com/spf13/cobra"
)

var (
	resumePath string
	jdPath     string
	jdText     string
	asJSON     bool
)

var rootCmd = &cobra.Command{
	Use:           "atscheck",
	Short:         "Score a resume against a job description the way /api/resume/check does",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.Flags().StringVarP(&resumePath, "resume", "r", "", "resume file (.pdf, .docx or .txt)")
	rootCmd.Flags().StringVar(&jdPath, "jd", "", "file holding the job description")
	rootCmd.Flags().StringVar(&jdText, "jd-text", "", "job description given inline")
	rootCmd.Flags().BoolVarP(&asJSON, "json", "j", false, "print the result as JSON")
	_ = rootCmd.MarkFlagRequired("resume")
	rootCmd.MarkFlagsOneRequired("jd", "jd-text")
	rootCmd.MarkFlagsMutuallyExclusive("jd", "jd-text")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "atscheck:", err)
		os.Exit(1)
	}
}

func run(out io.Writer) error {
	data, err := os.ReadFile(resumePath)
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}
	mime, err := extract.DetectMime("", resumePath)
	if err != nil {
		return err
	}
	text, err := extract.Text(mime, data)
	if err != nil {
		return fmt.Errorf("extract resume text: %w", err)
	}

	jd := jdText
	if jdPath != "" {
		b, err := os.ReadFile(jdPath)
		if err != nil {
			return fmt.Errorf("read job description: %w", err)
		}
		jd = string(b)
	}

	res, err := matching.Match(text, jd)
	if err != nil {
		return err
	}
	return render(out, res, asJSON)
}

func render(out io.Writer, res matching.KeywordResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(dto.NewATSCheckResponse(res))
	}

	fmt.Fprintf(out, "Score: %d%% (%d of %d keywords)\n", res.Score, len(res.Matched), res.TotalKeywords)
	fmt.Fprintf(out, "Matched: %s\n", joinOrDash(res.Matched))
	fmt.Fprintf(out, "Missing: %s\n", joinOrDash(res.Missing))
	if len(res.Suggestions) > 0 {
		fmt.Fprintln(out, "Suggestions:")
		for _, s := range res.Suggestions {
			fmt.Fprintf(out, "  - %s\n", s)
		}
	}
	return nil
}

func joinOrDash(words []string) string {
	if len(words) == 0 {
		return "-"
	}
	return strings.Join(words, ", ")
}
