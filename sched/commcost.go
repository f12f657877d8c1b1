package sched

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// CommCostTable precomputes the VM-agnostic communication cost c[i][j] for
// every DAG edge, used by the rank engine. The timing engine does NOT use
// this table — it computes transfer cost from the actual assigned VM pair
// instead (spec.md §9: the duality is intentional, not an oversight).
type CommCostTable struct {
	cost map[edgeKey]float64
}

type edgeKey struct{ from, to int }

// BuildCommCostTable computes c[i,j] = size(i)*ccr * mean_{k!=l}(1/bandwidth(vk,vl))
// for every edge i->j in g. The mean is taken over all ordered VM pairs
// (k,l) with k != l, via gonum's stat.Mean, matching the canonical
// definition in spec.md §3.
func BuildCommCostTable(g *Graph, ccr float64) *CommCostTable {
	meanInvBandwidth := meanInverseBandwidth(g.VMs)

	table := &CommCostTable{cost: make(map[edgeKey]float64)}
	for _, id := range g.TaskOrder() {
		t := g.Tasks[id]
		for succID := range t.Succ {
			table.cost[edgeKey{id, succID}] = t.Size * ccr * meanInvBandwidth
		}
	}
	return table
}

// meanInverseBandwidth returns the mean of 1/bandwidth(vk,vl) over all
// ordered pairs k != l. Returns 0 for pools with fewer than two VMs (no
// cross-VM pair exists, so there is nothing to average).
func meanInverseBandwidth(vms map[int]*VM) float64 {
	var reciprocals []float64
	for _, vk := range vms {
		for _, vl := range vms {
			if vk.ID == vl.ID {
				continue
			}
			bw := vk.BandwidthTo(vl.ID)
			if bw > 0 {
				reciprocals = append(reciprocals, 1/bw)
			}
		}
	}
	if len(reciprocals) == 0 {
		return 0
	}
	sort.Float64s(reciprocals)
	return stat.Mean(reciprocals, nil)
}

// Cost returns c[from][to], or 0 if the edge is unknown (spec.md §4.2 edge
// case: an unknown edge contributes 0 to rank).
func (c *CommCostTable) Cost(from, to int) float64 {
	return c.cost[edgeKey{from, to}]
}
