package costing

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// treeNode is one node of a binary decision tree. Internal nodes route
// on Feature < Threshold; leaves carry the weighted probability of the
// positive class among the training rows that reached them.
type treeNode struct {
	Feature   int       `json:"feature,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Left      *treeNode `json:"left,omitempty"`
	Right     *treeNode `json:"right,omitempty"`
	Leaf      bool      `json:"leaf,omitempty"`
	Prob      float64   `json:"prob"`
}

func (n *treeNode) prob(x []float64) float64 {
	for !n.Leaf {
		if x[n.Feature] < n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Prob
}

// Forest is a trained random-forest classifier. Importance holds the
// mean impurity decrease attributed to each feature, normalized to sum
// to one.
type Forest struct {
	Trees      []*treeNode `json:"trees"`
	Importance []float64   `json:"importance"`
}

// Prob returns the probability of the positive class for one feature
// vector: the mean of the leaf probabilities over all trees.
func (f *Forest) Prob(x []float64) float64 {
	if len(f.Trees) == 0 {
		return 0
	}
	sum := 0.0
	for _, t := range f.Trees {
		sum += t.prob(x)
	}
	return sum / float64(len(f.Trees))
}

type forestConfig struct {
	trees    int
	maxDepth int
	minSplit int
	minLeaf  int
}

// trainForest grows cfg.trees bootstrap trees over the standardized
// design matrix. Sample weights balance the classes; trees are grown
// sequentially from a single seeded source so a given seed always
// yields the same forest.
func trainForest(x [][]float64, y []bool, weights []float64, cfg forestConfig, rng *rand.Rand) *Forest {
	nFeatures := len(x[0])
	f := &Forest{
		Trees:      make([]*treeNode, 0, cfg.trees),
		Importance: make([]float64, nFeatures),
	}
	mtry := int(math.Sqrt(float64(nFeatures)))
	if mtry < 1 {
		mtry = 1
	}
	g := grower{x: x, y: y, w: weights, cfg: cfg, mtry: mtry, rng: rng, imp: f.Importance}
	for t := 0; t < cfg.trees; t++ {
		// Bootstrap: n draws with replacement.
		idx := make([]int, len(x))
		for i := range idx {
			idx[i] = rng.Intn(len(x))
		}
		f.Trees = append(f.Trees, g.grow(idx, 0))
	}
	if total := floats.Sum(f.Importance); total > 0 {
		floats.Scale(1/total, f.Importance)
	}
	return f
}

// grower carries the training state shared by every node of every tree.
type grower struct {
	x    [][]float64
	y    []bool
	w    []float64
	cfg  forestConfig
	mtry int
	rng  *rand.Rand
	imp  []float64
}

func (g *grower) grow(idx []int, depth int) *treeNode {
	wSum, posSum := 0.0, 0.0
	for _, i := range idx {
		wSum += g.w[i]
		if g.y[i] {
			posSum += g.w[i]
		}
	}
	leaf := &treeNode{Leaf: true, Prob: posSum / wSum}
	if depth >= g.cfg.maxDepth || len(idx) < g.cfg.minSplit || posSum == 0 || posSum == wSum {
		return leaf
	}
	feature, threshold, decrease := g.bestSplit(idx, wSum, posSum)
	if decrease <= 0 {
		return leaf
	}
	g.imp[feature] += decrease
	var left, right []int
	for _, i := range idx {
		if g.x[i][feature] < threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return &treeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      g.grow(left, depth+1),
		Right:     g.grow(right, depth+1),
	}
}

// bestSplit searches a random subset of mtry features for the split
// with the largest weighted Gini decrease. Splits leaving fewer than
// minLeaf rows on either side are not considered.
func (g *grower) bestSplit(idx []int, wSum, posSum float64) (feature int, threshold, decrease float64) {
	parent := gini(posSum, wSum)
	feature = -1
	order := make([]int, len(idx))
	for _, j := range g.rng.Perm(len(g.x[0]))[:g.mtry] {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool { return g.x[order[a]][j] < g.x[order[b]][j] })
		lw, lp := 0.0, 0.0
		for k := 0; k < len(order)-1; k++ {
			i := order[k]
			lw += g.w[i]
			if g.y[i] {
				lp += g.w[i]
			}
			if k+1 < g.cfg.minLeaf || len(order)-k-1 < g.cfg.minLeaf {
				continue
			}
			v, next := g.x[i][j], g.x[order[k+1]][j]
			if v == next {
				continue
			}
			rw, rp := wSum-lw, posSum-lp
			child := (lw*gini(lp, lw) + rw*gini(rp, rw)) / wSum
			if d := parent - child; d > decrease {
				feature, threshold, decrease = j, (v+next)/2, d
			}
		}
	}
	return feature, threshold, decrease
}

// gini is the binary Gini impurity of a node with pos positive weight
// out of total weight.
func gini(pos, total float64) float64 {
	if total == 0 {
		return 0
	}
	p := pos / total
	return 2 * p * (1 - p)
}
