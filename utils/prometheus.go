/*
Copyright 2018, Cossack Labs Limited

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package utils

import (
	"fmt"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	majorVersionGauge *prometheus.GaugeVec
	minorVersionGauge *prometheus.GaugeVec
	patchVersionGauge *prometheus.GaugeVec
)

var registerVersionMetricsLock = sync.Once{}

// serviceNameToLabelFormat convert service name to lower case and remove all '-'
// ex. my-service will be changed to myservice
func serviceNameToLabelFormat(serviceName string) string {
	const replaceAll = -1
	return strings.ToLower(strings.Replace(serviceName, "-", "", replaceAll))
}

// RegisterVersionMetrics set and register metrics with current version value,
// panics when VERSION doesn't parse
func RegisterVersionMetrics(serviceName string) {
	registerVersionMetricsLock.Do(func() {
		labelServiceName := serviceNameToLabelFormat(serviceName)
		majorVersionGauge = prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: fmt.Sprintf("%s_version_major", labelServiceName),
				Help: "Major number of version",
			}, []string{})

		minorVersionGauge = prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: fmt.Sprintf("%s_version_minor", labelServiceName),
				Help: "Minor number of version",
			}, []string{})

		patchVersionGauge = prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: fmt.Sprintf("%s_version_patch", labelServiceName),
				Help: "Patch number of version",
			}, []string{})

		prometheus.MustRegister(majorVersionGauge)
		prometheus.MustRegister(minorVersionGauge)
		prometheus.MustRegister(patchVersionGauge)

		version, err := GetParsedVersion()
		if err != nil {
			panic(err)
		}
		majorVersionGauge.With(nil).Set(version.MajorAsFloat64())
		minorVersionGauge.With(nil).Set(version.MinorAsFloat64())
		patchVersionGauge.With(nil).Set(version.PatchAsFloat64())
	})
}
