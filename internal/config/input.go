package config

import (
	"fmt"
	"os"
	"time"

	"github.com/finplan/projection-engine/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// PlanInput is the fully converted, validated content of a plan file: the
// client profile plus every record set one projection run consumes.
type PlanInput struct {
	Profile    Profile
	Plan       domain.InvestmentPlan
	MicroPlans []domain.MicroInvestmentPlan
	Goals      []domain.ScheduledItem
	Events     []domain.ScheduledItem
	Records    []domain.FinancialRecord
}

// Profile identifies the plan owner. The birth date drives all age-based
// metrics.
type Profile struct {
	Name      string    `yaml:"name"`
	BirthDate time.Time `yaml:"birth_date"`
}

// planFile mirrors the YAML document shape before conversion to domain types.
type planFile struct {
	Profile    Profile        `yaml:"profile"`
	Plan       planConfig     `yaml:"plan"`
	MicroPlans []microConfig  `yaml:"micro_plans"`
	Goals      []itemConfig   `yaml:"goals"`
	Events     []itemConfig   `yaml:"events"`
	Records    []recordConfig `yaml:"records"`
}

// planConfig carries the plan parameters with money fields as strings;
// decimals are converted explicitly since YAML cannot decode into
// decimal.Decimal directly.
type planConfig struct {
	InitialAmount      string    `yaml:"initial_amount"`
	StartDate          time.Time `yaml:"start_date"`
	RetirementDate     time.Time `yaml:"retirement_date"`
	FinalAge           int       `yaml:"final_age"`
	LimitAge           int       `yaml:"limit_age"`
	PlanType           string    `yaml:"plan_type"`
	Currency           string    `yaml:"currency"`
	AdjustContribution bool      `yaml:"adjust_contribution_for_inflation"`
	AdjustIncome       bool      `yaml:"adjust_income_for_inflation"`
	LegacyAmount       string    `yaml:"legacy_amount"`
	OldPortfolioReturn *string   `yaml:"old_portfolio_return"`
}

type microConfig struct {
	EffectiveDate        time.Time `yaml:"effective_date"`
	MonthlyDeposit       string    `yaml:"monthly_deposit"`
	DesiredMonthlyIncome string    `yaml:"desired_monthly_income"`
	ExpectedAnnualReturn string    `yaml:"expected_annual_return"`
	AnnualInflation      string    `yaml:"annual_inflation"`
	AdjustDeposit        *bool     `yaml:"adjust_deposit_for_inflation"`
	AdjustIncome         *bool     `yaml:"adjust_income_for_inflation"`
}

type itemConfig struct {
	ID                  string       `yaml:"id"`
	Name                string       `yaml:"name"`
	AssetValue          string       `yaml:"asset_value"`
	Year                int          `yaml:"year"`
	Month               int          `yaml:"month"`
	PaymentMode         string       `yaml:"payment_mode"`
	InstallmentCount    int          `yaml:"installment_count"`
	InstallmentInterval int          `yaml:"installment_interval"`
	Status              string       `yaml:"status"`
	AdjustForInflation  *bool        `yaml:"adjust_for_inflation"`
	Links               []linkConfig `yaml:"links"`
}

type linkConfig struct {
	ItemID          string `yaml:"item_id"`
	AllocatedAmount string `yaml:"allocated_amount"`
}

type recordConfig struct {
	Year                int    `yaml:"year"`
	Month               int    `yaml:"month"`
	StartingBalance     string `yaml:"starting_balance"`
	MonthlyContribution string `yaml:"monthly_contribution"`
	MonthlyReturn       string `yaml:"monthly_return"`
	MonthlyReturnRate   string `yaml:"monthly_return_rate"`
	EndingBalance       string `yaml:"ending_balance"`
	TargetRentability   string `yaml:"target_rentability"`
}

// InputParser handles parsing of plan input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads and validates a plan file from YAML.
func (ip *InputParser) LoadFromFile(filename string) (*PlanInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse converts raw YAML into a validated PlanInput.
func (ip *InputParser) Parse(data []byte) (*PlanInput, error) {
	var file planFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	input, err := file.toDomain()
	if err != nil {
		return nil, fmt.Errorf("invalid plan file: %w", err)
	}

	if err := ip.ValidatePlanInput(input); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}

	return input, nil
}

func (pf *planFile) toDomain() (*PlanInput, error) {
	plan, err := pf.Plan.toDomain()
	if err != nil {
		return nil, err
	}

	input := &PlanInput{
		Profile: pf.Profile,
		Plan:    plan,
	}

	for i, mc := range pf.MicroPlans {
		micro, err := mc.toDomain(&plan)
		if err != nil {
			return nil, fmt.Errorf("micro plan %d: %w", i, err)
		}
		input.MicroPlans = append(input.MicroPlans, micro)
	}

	for i, ic := range pf.Goals {
		item, err := ic.toDomain(domain.KindGoal)
		if err != nil {
			return nil, fmt.Errorf("goal %d: %w", i, err)
		}
		input.Goals = append(input.Goals, item)
	}
	for i, ic := range pf.Events {
		item, err := ic.toDomain(domain.KindEvent)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		input.Events = append(input.Events, item)
	}

	for i, rc := range pf.Records {
		record, err := rc.toDomain()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		input.Records = append(input.Records, record)
	}

	return input, nil
}

func (pc *planConfig) toDomain() (domain.InvestmentPlan, error) {
	plan := domain.InvestmentPlan{
		StartDate:          pc.StartDate,
		RetirementDate:     pc.RetirementDate,
		FinalAge:           pc.FinalAge,
		LimitAge:           pc.LimitAge,
		Type:               domain.PlanType(pc.PlanType),
		Currency:           pc.Currency,
		AdjustContribution: pc.AdjustContribution,
		AdjustIncome:       pc.AdjustIncome,
	}

	var err error
	if plan.InitialAmount, err = parseDecimal(pc.InitialAmount, "initial_amount"); err != nil {
		return plan, err
	}
	if plan.LegacyAmount, err = parseDecimal(pc.LegacyAmount, "legacy_amount"); err != nil {
		return plan, err
	}
	if pc.OldPortfolioReturn != nil {
		rate, err := parseDecimal(*pc.OldPortfolioReturn, "old_portfolio_return")
		if err != nil {
			return plan, err
		}
		plan.OldPortfolioReturn = &rate
	}

	return plan, nil
}

// toDomain converts a micro-plan; the plan-level inflation-adjustment flags
// act as defaults when a micro-plan does not set its own.
func (mc *microConfig) toDomain(plan *domain.InvestmentPlan) (domain.MicroInvestmentPlan, error) {
	micro := domain.MicroInvestmentPlan{
		EffectiveDate: mc.EffectiveDate,
		AdjustDeposit: plan.AdjustContribution,
		AdjustIncome:  plan.AdjustIncome,
	}
	if mc.AdjustDeposit != nil {
		micro.AdjustDeposit = *mc.AdjustDeposit
	}
	if mc.AdjustIncome != nil {
		micro.AdjustIncome = *mc.AdjustIncome
	}

	var err error
	if micro.MonthlyDeposit, err = parseDecimal(mc.MonthlyDeposit, "monthly_deposit"); err != nil {
		return micro, err
	}
	if micro.DesiredMonthlyIncome, err = parseDecimal(mc.DesiredMonthlyIncome, "desired_monthly_income"); err != nil {
		return micro, err
	}
	if micro.ExpectedAnnualReturn, err = parseDecimal(mc.ExpectedAnnualReturn, "expected_annual_return"); err != nil {
		return micro, err
	}
	if micro.AnnualInflation, err = parseDecimal(mc.AnnualInflation, "annual_inflation"); err != nil {
		return micro, err
	}

	return micro, nil
}

func (ic *itemConfig) toDomain(kind domain.ItemKind) (domain.ScheduledItem, error) {
	item := domain.ScheduledItem{
		ID:                 ic.ID,
		Kind:               kind,
		Name:               ic.Name,
		Year:               ic.Year,
		Month:              ic.Month,
		Status:             ic.Status,
		AdjustForInflation: ic.AdjustForInflation,
	}

	var err error
	if item.AssetValue, err = parseDecimal(ic.AssetValue, "asset_value"); err != nil {
		return item, err
	}

	switch ic.PaymentMode {
	case "", "none":
		item.Schedule = domain.OneTime{}
	case "installment":
		item.Schedule = domain.Installment{Count: ic.InstallmentCount, Interval: ic.InstallmentInterval}
	case "repeat":
		item.Schedule = domain.Repeat{Count: ic.InstallmentCount, Interval: ic.InstallmentInterval}
	default:
		return item, fmt.Errorf("payment_mode must be 'none', 'installment' or 'repeat', got %q", ic.PaymentMode)
	}

	for _, lc := range ic.Links {
		amount, err := parseDecimal(lc.AllocatedAmount, "allocated_amount")
		if err != nil {
			return item, err
		}
		item.Links = append(item.Links, domain.FinancialRecordLink{
			ItemID:          lc.ItemID,
			AllocatedAmount: amount,
		})
	}

	return item, nil
}

func (rc *recordConfig) toDomain() (domain.FinancialRecord, error) {
	record := domain.FinancialRecord{
		Year:  rc.Year,
		Month: rc.Month,
	}

	fields := []struct {
		name  string
		value string
		dest  *decimal.Decimal
	}{
		{"starting_balance", rc.StartingBalance, &record.StartingBalance},
		{"monthly_contribution", rc.MonthlyContribution, &record.MonthlyContribution},
		{"monthly_return", rc.MonthlyReturn, &record.MonthlyReturn},
		{"monthly_return_rate", rc.MonthlyReturnRate, &record.MonthlyReturnRate},
		{"ending_balance", rc.EndingBalance, &record.EndingBalance},
		{"target_rentability", rc.TargetRentability, &record.TargetRentability},
	}
	for _, f := range fields {
		value, err := parseDecimal(f.value, f.name)
		if err != nil {
			return record, err
		}
		*f.dest = value
	}

	return record, nil
}

// parseDecimal converts a YAML scalar to a decimal; an absent field is zero.
func parseDecimal(value, field string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return d, nil
}

// ValidatePlanInput validates the converted plan input.
func (ip *InputParser) ValidatePlanInput(input *PlanInput) error {
	if err := ip.validatePlan(&input.Plan); err != nil {
		return fmt.Errorf("plan validation failed: %w", err)
	}

	if len(input.MicroPlans) == 0 {
		return fmt.Errorf("at least one micro plan is required")
	}
	for i := range input.MicroPlans {
		if err := ip.validateMicroPlan(&input.MicroPlans[i]); err != nil {
			return fmt.Errorf("micro plan %d validation failed: %w", i, err)
		}
	}

	for i := range input.Goals {
		if err := ip.validateItem(&input.Goals[i]); err != nil {
			return fmt.Errorf("goal %d validation failed: %w", i, err)
		}
	}
	for i := range input.Events {
		if err := ip.validateItem(&input.Events[i]); err != nil {
			return fmt.Errorf("event %d validation failed: %w", i, err)
		}
	}

	for i := range input.Records {
		if err := ip.validateRecord(&input.Records[i]); err != nil {
			return fmt.Errorf("record %d validation failed: %w", i, err)
		}
	}

	return nil
}

func (ip *InputParser) validatePlan(plan *domain.InvestmentPlan) error {
	if plan.StartDate.IsZero() {
		return fmt.Errorf("start date is required")
	}
	if plan.RetirementDate.IsZero() {
		return fmt.Errorf("retirement date is required")
	}
	if plan.RetirementDate.Before(plan.StartDate) {
		return fmt.Errorf("retirement date cannot be before start date")
	}
	if plan.InitialAmount.IsNegative() {
		return fmt.Errorf("initial amount cannot be negative")
	}
	if plan.FinalAge <= 0 {
		return fmt.Errorf("final age must be positive")
	}
	if plan.LimitAge != 0 && plan.LimitAge <= plan.FinalAge {
		return fmt.Errorf("limit age must be greater than final age")
	}
	if !plan.Type.Valid() {
		return fmt.Errorf("plan type must be 'deplete', 'legacy' or 'preserve', got %q", plan.Type)
	}
	if plan.Type == domain.PlanTypeLegacy && !plan.LegacyAmount.IsPositive() {
		return fmt.Errorf("legacy amount must be positive for a legacy plan")
	}
	return nil
}

func (ip *InputParser) validateMicroPlan(micro *domain.MicroInvestmentPlan) error {
	if micro.EffectiveDate.IsZero() {
		return fmt.Errorf("effective date is required")
	}
	if micro.MonthlyDeposit.IsNegative() {
		return fmt.Errorf("monthly deposit cannot be negative")
	}
	if micro.DesiredMonthlyIncome.IsNegative() {
		return fmt.Errorf("desired monthly income cannot be negative")
	}
	if micro.ExpectedAnnualReturn.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return fmt.Errorf("expected annual return cannot be -100%% or less")
	}
	if micro.AnnualInflation.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return fmt.Errorf("annual inflation cannot be -100%% or less")
	}
	return nil
}

func (ip *InputParser) validateItem(item *domain.ScheduledItem) error {
	if item.ID == "" {
		return fmt.Errorf("id is required")
	}
	if item.Month < 1 || item.Month > 12 {
		return fmt.Errorf("month must be between 1 and 12, got %d", item.Month)
	}
	if item.Year <= 0 {
		return fmt.Errorf("year must be positive")
	}
	if item.AssetValue.IsNegative() {
		return fmt.Errorf("asset value cannot be negative")
	}

	switch schedule := item.Schedule.(type) {
	case domain.Installment:
		if schedule.Count < 0 || schedule.Interval < 0 {
			return fmt.Errorf("installment count and interval cannot be negative")
		}
	case domain.Repeat:
		if schedule.Count < 0 || schedule.Interval < 0 {
			return fmt.Errorf("repeat count and interval cannot be negative")
		}
	}

	for _, link := range item.Links {
		if link.ItemID != "" && link.ItemID != item.ID {
			return fmt.Errorf("link item_id %q does not match item %q", link.ItemID, item.ID)
		}
	}
	return nil
}

func (ip *InputParser) validateRecord(record *domain.FinancialRecord) error {
	if record.Month < 1 || record.Month > 12 {
		return fmt.Errorf("month must be between 1 and 12, got %d", record.Month)
	}
	if record.Year <= 0 {
		return fmt.Errorf("year must be positive")
	}
	return nil
}
