package balance

import "math"

// settledThreshold treats sub-cent residue as fully settled, tolerating
// floating-point drift left over from per-entry rounding.
const settledThreshold = 0.01

// ComputeBalances aggregates each member's net position over the given
// expense set. For every expense the payer's total goes up by the expense
// amount and each split member's total goes down by their share. The
// result covers exactly the supplied members, in the supplied order;
// amounts attributed to anyone outside that list are dropped. Totals are
// rounded to 2 decimals at the end, after all summation.
func ComputeBalances(members []Member, expenses []Expense) []Balance {
	totals := make(map[int64]float64, len(members))

	for _, e := range expenses {
		totals[e.PayerID] += e.Amount
		for _, s := range e.Splits {
			totals[s.MemberID] -= s.Amount
		}
	}

	balances := make([]Balance, len(members))
	for i, m := range members {
		balances[i] = Balance{
			MemberID:   m.ID,
			MemberName: m.Name,
			Balance:    roundToTwoDecimals(totals[m.ID]),
		}
	}

	return balances
}

// ComputeSettlements greedily matches debtors against creditors to
// produce a small set of payments that zeroes every balance. Both queues
// keep presentation order; the first remaining debtor always pays the
// first remaining creditor min(owed, due), and a party leaves its queue
// once its remainder drops below settledThreshold. Members with a zero
// balance participate in neither queue.
func ComputeSettlements(balances []Balance) []Settlement {
	type party struct {
		id        int64
		name      string
		remaining float64
	}

	var debtors, creditors []party
	for _, b := range balances {
		switch {
		case b.Balance < 0:
			debtors = append(debtors, party{b.MemberID, b.MemberName, -b.Balance})
		case b.Balance > 0:
			creditors = append(creditors, party{b.MemberID, b.MemberName, b.Balance})
		}
	}

	var settlements []Settlement
	for len(debtors) > 0 && len(creditors) > 0 {
		debtor := &debtors[0]
		creditor := &creditors[0]

		amount := math.Min(debtor.remaining, creditor.remaining)

		settlements = append(settlements, Settlement{
			FromID:   debtor.id,
			FromName: debtor.name,
			ToID:     creditor.id,
			ToName:   creditor.name,
			Amount:   roundToTwoDecimals(amount),
		})

		debtor.remaining -= amount
		creditor.remaining -= amount

		if debtor.remaining < settledThreshold {
			debtors = debtors[1:]
		}
		if creditor.remaining < settledThreshold {
			creditors = creditors[1:]
		}
	}

	return settlements
}

// ComputeSummary aggregates total spend, per-category totals, and
// per-member paid totals over the given expense set. Categories appear
// in first-seen order; members in presentation order.
func ComputeSummary(members []Member, expenses []Expense) *Summary {
	var total float64
	categoryTotals := make(map[string]float64)
	var categoryOrder []string
	paidTotals := make(map[int64]float64, len(members))

	for _, e := range expenses {
		total += e.Amount
		if _, seen := categoryTotals[e.Category]; !seen {
			categoryOrder = append(categoryOrder, e.Category)
		}
		categoryTotals[e.Category] += e.Amount
		paidTotals[e.PayerID] += e.Amount
	}

	summary := &Summary{
		TotalSpent: roundToTwoDecimals(total),
		ByCategory: make([]CategoryTotal, len(categoryOrder)),
		ByMember:   make([]MemberTotal, len(members)),
	}
	for i, c := range categoryOrder {
		summary.ByCategory[i] = CategoryTotal{Category: c, Amount: roundToTwoDecimals(categoryTotals[c])}
	}
	for i, m := range members {
		summary.ByMember[i] = MemberTotal{
			MemberID:   m.ID,
			MemberName: m.Name,
			Amount:     roundToTwoDecimals(paidTotals[m.ID]),
		}
	}

	return summary
}

// roundToTwoDecimals rounds half away from zero to 2 decimal places
func roundToTwoDecimals(value float64) float64 {
	return math.Round(value*100) / 100
}
