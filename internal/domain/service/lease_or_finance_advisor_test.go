package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaseOrFinanceAdvisor(t *testing.T) {
	a := NewLeaseOrFinanceAdvisor()

	t.Run("has six questions with four options each", func(t *testing.T) {
		qs := a.Questions()
		require.Len(t, qs, 6)
		for _, q := range qs {
			assert.Len(t, q.Options, 4)
		}
	})

	t.Run("recommends lease for short ownership and low mileage", func(t *testing.T) {
		res := a.Recommend(map[int]string{
			1: "2-3", 2: "under-10k", 3: "very", 4: "lower", 5: "avoid", 6: "always-new",
		})
		assert.Equal(t, "lease", res.Recommendation)
		assert.Equal(t, 18, res.LeaseScore)
		assert.Equal(t, 4, res.FinanceScore)
	})

	t.Run("recommends finance for long ownership", func(t *testing.T) {
		res := a.Recommend(map[int]string{
			1: "7+", 2: "over-20k", 3: "not-at-all", 4: "higher", 5: "diy", 6: "building-equity",
		})
		assert.Equal(t, "finance", res.Recommendation)
		assert.Equal(t, 1, res.LeaseScore)
		assert.Equal(t, 18, res.FinanceScore)
	})

	t.Run("ties go to finance", func(t *testing.T) {
		res := a.Recommend(map[int]string{2: "10k-15k"})
		assert.Equal(t, 2, res.LeaseScore)
		assert.Equal(t, 2, res.FinanceScore)
		assert.Equal(t, "finance", res.Recommendation)
	})

	t.Run("ignores unknown questions and answers", func(t *testing.T) {
		res := a.Recommend(map[int]string{1: "forever", 42: "2-3"})
		assert.Zero(t, res.LeaseScore)
		assert.Zero(t, res.FinanceScore)
		assert.Equal(t, "finance", res.Recommendation)
	})
}
