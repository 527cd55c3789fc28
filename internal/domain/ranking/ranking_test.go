package ranking_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/incassopro/incasso-api/internal/domain/entity"
	"github.com/incassopro/incasso-api/internal/domain/ranking"
)

func metric(f float64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(f), Valid: true}
}

func caseWith(id int64, quick, cash decimal.NullDecimal) *entity.Case {
	return &entity.Case{
		ID:      id,
		Company: &entity.Company{QuickRatio: quick, Cash: cash},
	}
}

func ids(cases []*entity.Case) []int64 {
	out := make([]int64, 0, len(cases))
	for _, c := range cases {
		out = append(out, c.ID)
	}
	return out
}

func TestRank_DescendingQuickRatio(t *testing.T) {
	got := ranking.Rank([]*entity.Case{
		caseWith(1, metric(0.4), metric(100)),
		caseWith(2, metric(2.1), metric(100)),
		caseWith(3, metric(1.3), metric(100)),
	})
	assert.Equal(t, []int64{2, 3, 1}, ids(got))
}

func TestRank_TieBrokenByCash(t *testing.T) {
	got := ranking.Rank([]*entity.Case{
		caseWith(1, metric(1.0), metric(5000)),
		caseWith(2, metric(1.0), metric(25000)),
		caseWith(3, metric(1.0), metric(10000)),
	})
	assert.Equal(t, []int64{2, 3, 1}, ids(got))
}

func TestRank_MissingMetricsSortLast(t *testing.T) {
	null := decimal.NullDecimal{}
	got := ranking.Rank([]*entity.Case{
		caseWith(1, null, metric(999999)), // no quick ratio at all
		caseWith(2, metric(0.1), metric(10)),
		{ID: 3}, // no company snapshot joined
		caseWith(4, metric(1.5), null),
	})
	assert.Equal(t, []int64{4, 2, 1, 3}, ids(got))
}

func TestRank_StableForEqualCases(t *testing.T) {
	got := ranking.Rank([]*entity.Case{
		caseWith(7, metric(1.0), metric(100)),
		caseWith(8, metric(1.0), metric(100)),
		caseWith(9, metric(1.0), metric(100)),
	})
	assert.Equal(t, []int64{7, 8, 9}, ids(got))
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, ranking.Rank(nil))
}
