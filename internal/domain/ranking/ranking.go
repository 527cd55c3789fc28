// Package ranking orders cases for field visits: debtors with the most
// readily available liquid funds come first.
package ranking

import (
	"sort"

	"github.com/incassopro/incasso-api/internal/domain/entity"
)

// missingSentinel ranks a case without the metric below any real value.
const missingSentinel = -999

// Rank sorts cases in place by descending quick ratio, ties broken by
// descending cash on hand. Missing metrics sort last regardless of the other
// key. The sort is stable so equal cases keep their query order.
func Rank(cases []*entity.Case) []*entity.Case {
	sort.SliceStable(cases, func(i, j int) bool {
		qi, qj := quickRatio(cases[i]), quickRatio(cases[j])
		if qi != qj {
			return qi > qj
		}
		return cash(cases[i]) > cash(cases[j])
	})
	return cases
}

func quickRatio(c *entity.Case) float64 {
	if c.Company == nil || !c.Company.QuickRatio.Valid {
		return missingSentinel
	}
	return c.Company.QuickRatio.Decimal.InexactFloat64()
}

func cash(c *entity.Case) float64 {
	if c.Company == nil || !c.Company.Cash.Valid {
		return missingSentinel
	}
	return c.Company.Cash.Decimal.InexactFloat64()
}
