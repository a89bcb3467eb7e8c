package bind

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Labels and values about constructed bindings
const (
	LabelDirection  = "direction"
	DirectionInput  = "input"
	DirectionOutput = "output"

	LabelBindType = "type"

	LabelFailureAction = "action"
)

var (
	// ConstructedCounter collect constructed bindings count per direction and wire type
	ConstructedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mysqlbind_binds_constructed_total",
			Help: "number of constructed bindings",
		}, []string{LabelDirection, LabelBindType})

	// EncodingFailureCounter collect structured value encoding failures per configured action
	EncodingFailureCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mysqlbind_encoding_failures_total",
			Help: "number of structured value encoding failures",
		}, []string{LabelFailureAction})
)

var bindMetricsRegisterLock = sync.Once{}

// RegisterBindMetrics register in default prometheus registry metrics related with binding construction
func RegisterBindMetrics() {
	bindMetricsRegisterLock.Do(func() {
		prometheus.MustRegister(ConstructedCounter)
		prometheus.MustRegister(EncodingFailureCounter)
	})
}
