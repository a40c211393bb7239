package core

// ThresholdCents is the absolute spend level at which the budget's alert
// fires: amount * threshold / 100. The percent is the stored representation;
// this derivation is the only place the absolute value exists.
func (b Budget) ThresholdCents() int64 {
	return b.Amount.Cents * b.AlertThreshold / 100
}

// EvaluateBudget combines a budget with the actual spend for its month.
// Remaining is never clamped; a negative value signals overspend. The alert
// decision is spent >= threshold, gated on AlertEnabled.
func EvaluateBudget(b Budget, spent Money) BudgetWithSpent {
	remaining := b.Amount.Sub(spent)
	return BudgetWithSpent{
		Budget:         b,
		Spent:          spent,
		Remaining:      remaining,
		Exceeded:       remaining.Cents < 0,
		AlertTriggered: b.AlertEnabled && spent.Cents >= b.ThresholdCents(),
	}
}
