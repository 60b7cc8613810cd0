package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/restaurant-ops/labor-compliance/backend/internal/compliance"
	"github.com/restaurant-ops/labor-compliance/backend/internal/domain"
	"github.com/restaurant-ops/labor-compliance/backend/internal/report"
	"github.com/restaurant-ops/labor-compliance/backend/internal/utils"
	"github.com/spf13/cobra"
)

var errNotCompliant = errors.New("planning non conforme")

type checkOptions struct {
	rulesFile  string
	severity   string
	format     string
	output     string
	timezone   string
	restaurant string
	strict     bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:           "check <planning.json>",
		Short:         "Vérifie un planning hebdomadaire au regard du droit du travail",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.rulesFile, "rules", "", "Fichier YAML de règles (par défaut : règles HCR intégrées)")
	cmd.Flags().StringVar(&opts.severity, "severity", "", "N'afficher que les violations de cette gravité (critical, warning, info)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "Format de sortie : json, text, pdf ou xlsx")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Fichier de sortie (obligatoire pour pdf et xlsx)")
	cmd.Flags().StringVar(&opts.timezone, "timezone", "Europe/Paris", "Fuseau horaire de l'établissement")
	cmd.Flags().StringVar(&opts.restaurant, "restaurant", "", "Nom de l'établissement affiché dans le rapport")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Code de sortie non nul si le planning n'est pas conforme")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Afficher les services ignorés")

	return cmd
}

func loadPayload(path string) (*domain.WeekSchedulePayload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	payload := &domain.WeekSchedulePayload{}
	if err := json.Unmarshal(data, payload); err != nil {
		return nil, fmt.Errorf("JSON invalide : %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := utils.RegisterValidations(validate); err != nil {
		return nil, err
	}
	if err := validate.Struct(payload); err != nil {
		return nil, err
	}

	return payload, nil
}

func runCheck(stdout, stderr io.Writer, path string, opts *checkOptions) error {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	switch domain.Severity(opts.severity) {
	case "", domain.SeverityCritical, domain.SeverityWarning, domain.SeverityInfo:
	default:
		return fmt.Errorf("gravité inconnue : %s", opts.severity)
	}

	rules := compliance.DefaultRules()
	if opts.rulesFile != "" {
		var err error
		if rules, err = compliance.LoadRules(opts.rulesFile); err != nil {
			return err
		}
	}

	loc, err := time.LoadLocation(opts.timezone)
	if err != nil {
		return err
	}

	payload, err := loadPayload(path)
	if err != nil {
		return err
	}

	employees, shifts, weekStart, err := utils.ParseWeekSchedule(payload, loc)
	if err != nil {
		return err
	}

	rep := compliance.New(rules, employees, shifts, weekStart, compliance.WithLogger(logger)).Report()
	compliant := rep.IsCompliant
	if opts.severity != "" {
		rep.Violations = compliance.FilterBySeverity(rep.Violations, domain.Severity(opts.severity))
	}

	if err := writeReport(stdout, &rep, opts); err != nil {
		return err
	}

	if opts.strict && !compliant {
		return errNotCompliant
	}
	return nil
}

func writeReport(stdout io.Writer, rep *domain.ComplianceReport, opts *checkOptions) error {
	out := stdout
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch opts.format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case "text":
		return writeText(out, rep)
	case "pdf", "xlsx":
		if opts.output == "" {
			return fmt.Errorf("le format %s nécessite --output", opts.format)
		}
		render := report.RenderCompliancePDF
		if opts.format == "xlsx" {
			render = report.RenderComplianceXLSX
		}
		data, err := render(rep, opts.restaurant)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	default:
		return fmt.Errorf("format inconnu : %s", opts.format)
	}
}

func writeText(w io.Writer, rep *domain.ComplianceReport) error {
	status := "CONFORME"
	if !rep.IsCompliant {
		status = "NON CONFORME"
	}
	if _, err := fmt.Fprintf(w, "Semaine du %s (%s) : %s\n\n", rep.WeekStartDate, rep.RuleSetVersion, status); err != nil {
		return err
	}

	for _, a := range rep.Analyses {
		if _, err := fmt.Fprintf(w, "%-24s %5.1f h  jours consécutifs : %d  violations : %d\n",
			a.EmployeeName, a.WeeklyWorkingHours, a.ConsecutiveWorkingDays, len(a.Violations)); err != nil {
			return err
		}
	}

	if len(rep.Violations) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	for _, v := range rep.Violations {
		if _, err := fmt.Fprintf(w, "[%s] %s : %s\n    -> %s (%s)\n",
			v.Severity, v.EmployeeName, v.Message, v.Suggestion, v.LegalReference); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Erreur :", err)
		os.Exit(1)
	}
}
