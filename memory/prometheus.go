package memory

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// LabelRegionKind and values describe which region kind a metric counts
const (
	LabelRegionKind = "kind"

	RegionKindBuffer   = regionKindBuffer
	RegionKindIntCell  = regionKindIntCell
	RegionKindFlagCell = regionKindFlagCell
)

var (
	// AllocationCounter collect allocations count per region kind
	AllocationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mysqlbind_memory_allocations_total",
			Help: "number of allocated buffer/cell regions",
		}, []string{LabelRegionKind})

	// FreeCounter collect frees count per region kind
	FreeCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mysqlbind_memory_frees_total",
			Help: "number of freed buffer/cell regions",
		}, []string{LabelRegionKind})

	// AllocationFailureCounter collect refused allocations per region kind
	AllocationFailureCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mysqlbind_memory_allocation_failures_total",
			Help: "number of allocations refused by the byte budget",
		}, []string{LabelRegionKind})
)

var memoryMetricsRegisterLock = sync.Once{}

// RegisterMemoryMetrics register in default prometheus registry metrics related with region allocation
func RegisterMemoryMetrics() {
	memoryMetricsRegisterLock.Do(func() {
		prometheus.MustRegister(AllocationCounter)
		prometheus.MustRegister(FreeCounter)
		prometheus.MustRegister(AllocationFailureCounter)
	})
}
