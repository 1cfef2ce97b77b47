package app

import (
	"context"
	"encoding/json"
	"time"

	"telcochurn/domain/core"
	"telcochurn/domain/dataset"
	domain "telcochurn/domain/outlier"
	"telcochurn/internal"
	"telcochurn/internal/checker"
	"telcochurn/internal/errors"
	"telcochurn/internal/imputation"
	"telcochurn/internal/outlier"
	"telcochurn/internal/profiling"
	"telcochurn/models"
	"telcochurn/ports"
)

// DefaultSpecialTokens are the placeholder cells treated as missing
var DefaultSpecialTokens = []string{" "}

// PreparationService cleans a churn dataset and records the outcome
type PreparationService struct {
	runs   ports.RunRepository
	logger *internal.Logger
}

// PreparationRequest defines one dataset preparation
type PreparationRequest struct {
	Source        string
	Table         *dataset.Table
	Target        string   // split off and kept aligned; empty for none
	IDColumn      string   // dropped when present
	Fold          float64  // 1.5 or 3
	Exceptions    []string // features never remediated
	SpecialTokens []string // defaults to DefaultSpecialTokens
}

// PreparationReport is the diagnostic output of a preparation
type PreparationReport struct {
	RunID          core.RunID                  `json:"run_id"`
	Source         string                      `json:"source"`
	InputHash      core.Hash                   `json:"input_hash"`
	Fold           float64                     `json:"fold"`
	MissingSpecial []checker.MissingRecord     `json:"missing_special"`
	Imputed        []string                    `json:"imputed"`
	Missing        []checker.MissingRecord     `json:"missing"`
	Unique         []checker.UniqueRecord      `json:"unique"`
	Profile        []profiling.ColumnProfile   `json:"profile"`
	Distribution   []domain.DistributionRecord `json:"distribution"`
	Outliers       []domain.OutlierRecord      `json:"outliers"`
	Summary        []domain.SummaryRecord      `json:"summary"`
	Decisions      []domain.Decision           `json:"decisions"`
	RowsBefore     int                         `json:"rows_before"`
	RowsAfter      int                         `json:"rows_after"`
	RuntimeMs      int64                       `json:"runtime_ms"`
}

// PreparationResult carries the cleaned data alongside the report
type PreparationResult struct {
	Report *PreparationReport
	Table  *dataset.Table
	Target *dataset.Series
}

// NewPreparationService creates a preparation service. runs may be nil to skip persistence.
func NewPreparationService(runs ports.RunRepository, logger *internal.Logger) *PreparationService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &PreparationService{runs: runs, logger: logger.With("Preparation")}
}

// Prepare runs imputation, the dataset checks and outlier remediation on a
// copy of req.Table, then stores the report.
func (s *PreparationService) Prepare(ctx context.Context, req PreparationRequest) (*PreparationResult, error) {
	startTime := time.Now()

	if req.Table == nil {
		return nil, errors.InvalidInput("no table to prepare")
	}
	if err := outlier.ValidateFold(req.Fold); err != nil {
		return nil, errors.Wrap(err, "invalid preparation request")
	}
	tokens := req.SpecialTokens
	if len(tokens) == 0 {
		tokens = DefaultSpecialTokens
	}

	report := &PreparationReport{
		RunID:     core.NewRunID(),
		Source:    req.Source,
		InputHash: req.Table.Fingerprint(),
		Fold:      req.Fold,
	}

	table := req.Table.Clone()
	if req.IDColumn != "" && table.HasColumn(req.IDColumn) {
		if _, err := table.DropColumn(req.IDColumn); err != nil {
			return nil, err
		}
	}

	var target *dataset.Series
	if req.Target != "" {
		var err error
		if target, err = table.SplitTarget(req.Target); err != nil {
			return nil, errors.Wrapf(err, "split target %s", req.Target)
		}
	}

	report.MissingSpecial = checker.CheckMissingSpecial(table, tokens...)
	if len(report.MissingSpecial) > 0 {
		columns := make([]string, len(report.MissingSpecial))
		for i, rec := range report.MissingSpecial {
			columns[i] = rec.Feature
		}
		prepared, err := imputation.PrepareImputation(table, columns, tokens...)
		if err != nil {
			return nil, errors.Wrap(err, "prepare imputation")
		}
		table = prepared
	}

	imputed, err := s.fillTotalCharges(table)
	if err != nil {
		return nil, err
	}
	report.Imputed = imputed
	imputation.CollapsePlaceholderCategories(table)

	report.Missing = checker.CheckMissing(table)
	if report.Unique, err = checker.CheckUnique(table, checker.KindBoth); err != nil {
		return nil, err
	}

	report.Profile = profiling.Describe(table)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := outlier.Remediate(table, req.Exceptions, target, req.Fold)
	if err != nil {
		return nil, errors.Wrap(err, "remediate outliers")
	}
	report.Distribution = result.Distribution
	report.Outliers = result.Outliers
	report.Summary = result.Summary
	report.Decisions = result.Decisions
	report.RowsBefore = result.RowsBefore
	report.RowsAfter = result.RowsAfter
	report.RuntimeMs = time.Since(startTime).Milliseconds()

	s.logger.Info("%s (%s): %d -> %d rows, %d features assessed in %dms",
		req.Source, report.InputHash.Short(), report.RowsBefore, report.RowsAfter, len(report.Decisions), report.RuntimeMs)

	if err := s.save(ctx, report); err != nil {
		return nil, err
	}

	return &PreparationResult{Report: report, Table: result.Table, Target: result.Target}, nil
}

// fillTotalCharges fills TotalCharges from MonthlyCharges when both are numeric
func (s *PreparationService) fillTotalCharges(table *dataset.Table) ([]string, error) {
	total, err := table.Column(imputation.TotalChargesColumn)
	if err != nil || !total.IsNumeric() {
		s.logger.Debug("skipping TotalCharges imputation: column absent or not numeric")
		return nil, nil
	}
	monthly, err := table.Column(imputation.MonthlyChargesColumn)
	if err != nil || !monthly.IsNumeric() {
		s.logger.Debug("skipping TotalCharges imputation: MonthlyCharges absent or not numeric")
		return nil, nil
	}

	missing := total.MissingCount()
	if missing == 0 {
		return nil, nil
	}
	if err := imputation.FillTotalCharges(table); err != nil {
		return nil, errors.Wrap(err, "impute TotalCharges")
	}
	s.logger.Debug("filled %d missing TotalCharges from MonthlyCharges", missing)
	return []string{imputation.TotalChargesColumn}, nil
}

func (s *PreparationService) save(ctx context.Context, report *PreparationReport) error {
	if s.runs == nil {
		return nil
	}
	body, err := json.Marshal(report)
	if err != nil {
		return errors.Wrap(err, "encode preparation report")
	}
	run := &models.RemediationRun{
		ID:         report.RunID.UUID(),
		Source:     report.Source,
		Fold:       report.Fold,
		RowsBefore: report.RowsBefore,
		RowsAfter:  report.RowsAfter,
		Report:     body,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.runs.SaveRun(ctx, run); err != nil {
		return errors.WithCode(errors.CodeDatabaseError, errors.Wrap(err, "save preparation report"))
	}
	return nil
}

// GetReport returns a stored report body
func (s *PreparationService) GetReport(ctx context.Context, id string) (*models.RemediationRun, error) {
	runID, err := core.ParseRunID(id)
	if err != nil {
		return nil, err
	}
	if s.runs == nil {
		return nil, core.ErrRunNotFound
	}
	return s.runs.GetRun(ctx, runID.UUID())
}

// ListReports returns the most recent stored reports, newest first
func (s *PreparationService) ListReports(ctx context.Context, limit int) ([]*models.RemediationRun, error) {
	if s.runs == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	return s.runs.ListRuns(ctx, limit)
}
