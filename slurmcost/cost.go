package slurmcost

// Saga accounting bills the larger of the CPU-hour and the weighted
// memory-hour request; the weight differs per queue so that memory on
// the big-memory nodes is charged less per GiB.
type Queue struct {
	Name      string
	MemFactor float64
}

var Queues = []Queue{
	{"normal", 0.2577031},
	{"bigmem", 0.1104972},
	{"hugemem", 0.01059603},
}

// CPUHourMarketPriceNOK is Sigma2's posted on-demand rate.
const CPUHourMarketPriceNOK = 0.13

// QueueCost is the charge for one job as submitted to one queue.
// CPUHours and MemHours are per task; Charged and the NOK estimate
// cover the whole array.
type QueueCost struct {
	Queue    Queue
	CPUHours float64
	MemHours float64
	Charged  float64
	PriceNOK float64
}

// CostReport holds a job's request and its cost on every queue, in
// Queues order.
type CostReport struct {
	Resources Resources
	Costs     []QueueCost
}

// Cost estimates a job's accounting charge on every known queue.
func Cost(res Resources) CostReport {
	rep := CostReport{Resources: res}
	for _, q := range Queues {
		cpuHours := float64(res.CPUs) * res.Hours
		memHours := res.MemoryGB * res.Hours * q.MemFactor
		charged := cpuHours
		if memHours > charged {
			charged = memHours
		}
		charged *= float64(res.ArrayCount)
		rep.Costs = append(rep.Costs, QueueCost{
			Queue:    q,
			CPUHours: cpuHours,
			MemHours: memHours,
			Charged:  charged,
			PriceNOK: charged * CPUHourMarketPriceNOK,
		})
	}
	return rep
}

// Cheapest returns the lowest-charged queue; ties keep Queues order.
func (rep CostReport) Cheapest() QueueCost {
	best := rep.Costs[0]
	for _, c := range rep.Costs[1:] {
		if c.Charged < best.Charged {
			best = c
		}
	}
	return best
}

// MostExpensive returns the highest-charged queue; ties keep Queues
// order.
func (rep CostReport) MostExpensive() QueueCost {
	worst := rep.Costs[0]
	for _, c := range rep.Costs[1:] {
		if c.Charged > worst.Charged {
			worst = c
		}
	}
	return worst
}
