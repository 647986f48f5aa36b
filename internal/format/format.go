// Package format renders entities into the chat-facing text the dialogue
// layer sends. All rendering is pure: no store access, no state.
package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/akarpov/savingsbot/internal/models"
	"github.com/akarpov/savingsbot/internal/moneyx"
)

const barCells = 10

// ProgressBar renders a ten-cell bar for a completion percentage, with a
// trophy once the line is crossed.
func ProgressBar(pct float64) string {
	if pct < 0 {
		pct = 0
	}
	filled := int(pct / 100 * barCells)
	if filled > barCells {
		filled = barCells
	}

	var b strings.Builder
	b.WriteString(strings.Repeat("🟩", filled))
	b.WriteString(strings.Repeat("⬜", barCells-filled))
	fmt.Fprintf(&b, " %.1f%%", pct)
	if pct >= 100 {
		b.WriteString(" 🏆")
	}
	return b.String()
}

func targetEmoji(k models.TargetKind) string {
	if k == models.KindDebt {
		return "⛓️"
	}
	return "🎯"
}

// TargetList renders the "view all" overview.
func TargetList(ts []models.Target) string {
	if len(ts) == 0 {
		return "You're not tracking anything yet. Try 'new goal' or 'new debt'."
	}

	var b strings.Builder
	b.WriteString("Here's everything you're tracking:\n")
	for _, t := range ts {
		fmt.Fprintf(&b, "\n%s %s (%s)\n%s of %s\n%s\n",
			targetEmoji(t.Kind), t.Name, t.Currency,
			moneyx.Format(t.CurrentAmount), moneyx.Format(t.TargetAmount),
			ProgressBar(t.Progress()))
	}
	return b.String()
}

// TargetProgress renders the detail view for one target with its most
// recent ledger entries.
func TargetProgress(t *models.Target, entries []models.LedgerEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s (%s)\n%s of %s\n%s\n",
		targetEmoji(t.Kind), t.Name, t.Currency,
		moneyx.Format(t.CurrentAmount), moneyx.Format(t.TargetAmount),
		ProgressBar(t.Progress()))

	remaining := t.TargetAmount - t.CurrentAmount
	if remaining > 0 {
		fmt.Fprintf(&b, "\n%s %s to go.\n", moneyx.Format(remaining), t.Currency)
	}

	if len(entries) > 0 {
		b.WriteString("\nRecent activity:\n")
		for _, e := range entries {
			fmt.Fprintf(&b, "  %s — %s\n", e.SavedAt, moneyx.Format(e.Amount))
		}
	}
	return b.String()
}

// AssetList renders the asset overview grouped nothing fancier than a flat
// list; currency conversion is out of scope.
func AssetList(as []models.Asset) string {
	if len(as) == 0 {
		return "No assets on file. Try 'new asset'."
	}

	var b strings.Builder
	b.WriteString("💼 Your assets:\n")
	totals := map[string]float64{}
	for _, a := range as {
		fmt.Fprintf(&b, "\n%s (%s)\n%s %s · updated %s\n",
			a.Name, a.AssetType, moneyx.Format(a.Amount), a.Currency, a.UpdatedAt)
		totals[a.Currency] += a.Amount
	}
	b.WriteString("\nTotals:\n")
	b.WriteString(currencyTotals(totals))
	return b.String()
}

// BudgetList renders the budget overview with spend bars.
func BudgetList(bs []models.Budget) string {
	if len(bs) == 0 {
		return "No budgets configured. Try 'new budget'."
	}

	var b strings.Builder
	b.WriteString("📊 Your budgets:\n")
	for _, bg := range bs {
		fmt.Fprintf(&b, "\n%s (%s, %s)\nspent %s of %s\n%s\n",
			bg.Category, bg.Currency, bg.Period,
			moneyx.Format(bg.CurrentSpent), moneyx.Format(bg.Amount),
			ProgressBar(bg.SpentPercent()))
	}
	return b.String()
}

// PaymentList renders the payment tracker overview.
func PaymentList(ps []models.Payment) string {
	if len(ps) == 0 {
		return "No payments tracked. Try 'new payment'."
	}

	var b strings.Builder
	b.WriteString("💸 Your payments:\n")
	for _, p := range ps {
		fmt.Fprintf(&b, "\n%s → %s (%s)\n%s of %s\n%s\n",
			p.Name, p.Recipient, p.Currency,
			moneyx.Format(p.CurrentAmount), moneyx.Format(p.TargetAmount),
			ProgressBar(p.Progress()))
		if p.PaymentAmount > 0 {
			fmt.Fprintf(&b, "suggested: %s %s %s\n",
				moneyx.Format(p.PaymentAmount), p.Currency, p.PaymentFrequency)
		}
	}
	return b.String()
}

// ExpenseTotals renders a windowed spending report, one line per currency.
func ExpenseTotals(windowLabel string, totals map[string]float64) string {
	if len(totals) == 0 {
		return fmt.Sprintf("Nothing spent %s. Suspiciously disciplined.", windowLabel)
	}
	return fmt.Sprintf("💰 Spent %s:\n%s", windowLabel, currencyTotals(totals))
}

func currencyTotals(totals map[string]float64) string {
	currencies := make([]string, 0, len(totals))
	for c := range totals {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)

	var b strings.Builder
	for _, c := range currencies {
		fmt.Fprintf(&b, "  %s %s\n", moneyx.Format(totals[c]), c)
	}
	return b.String()
}
