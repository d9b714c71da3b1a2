package config

import (
	"fmt"
	"os"
)

const examplePlanYAML = `# Example investment plan file.
# Money and rate values are plain decimal strings.

profile:
  name: "Jane Doe"
  birth_date: 1985-06-15

plan:
  initial_amount: "50000"
  start_date: 2024-01-01
  retirement_date: 2045-06-01
  final_age: 60
  limit_age: 100
  plan_type: "deplete"        # deplete, legacy or preserve
  currency: "$"
  adjust_contribution_for_inflation: true
  adjust_income_for_inflation: true
  legacy_amount: "0"

micro_plans:
  - effective_date: 2024-01-01
    monthly_deposit: "2000"
    desired_monthly_income: "8000"
    expected_annual_return: "0.08"
    annual_inflation: "0.04"

goals:
  - id: "goal-car"
    name: "New car"
    asset_value: "120000"
    year: 2030
    month: 6
    payment_mode: "installment"
    installment_count: 12
    installment_interval: 1
    links:
      - allocated_amount: "10000"

events:
  - id: "event-bonus"
    name: "Annual bonus"
    asset_value: "15000"
    year: 2025
    month: 12
    payment_mode: "repeat"
    installment_count: 5
    installment_interval: 12
    adjust_for_inflation: false

records:
  - year: 2024
    month: 1
    starting_balance: "50000"
    monthly_contribution: "2000"
    monthly_return: "350"
    monthly_return_rate: "0.0065"
    ending_balance: "52350"
    target_rentability: "0.0064"
`

// CreateExamplePlanFile writes a commented starter plan file.
func CreateExamplePlanFile(filename string) error {
	if err := os.WriteFile(filename, []byte(examplePlanYAML), 0644); err != nil {
		return fmt.Errorf("failed to write example file %s: %w", filename, err)
	}
	return nil
}
