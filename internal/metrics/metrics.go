/*
   Copyright 2025 The DIRPX Authors.

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

// Package metrics holds the prometheus collectors for dispatch and singleton
// construction.
package metrics

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	dispatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dyn",
			Subsystem: "dispatch",
			Name:      "calls_total",
			Help:      "Method calls by resolution path.",
		},
		[]string{"path", "success"},
	)
	promotions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dyn",
			Subsystem: "dispatch",
			Name:      "promotions_total",
			Help:      "Closures installed into an instance from the global registry.",
		},
	)
	constructions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dyn",
			Subsystem: "instance",
			Name:      "constructions_total",
			Help:      "Singleton constructions by type.",
		},
		[]string{"type", "success"},
	)
)

// Collectors returns every collector owned by this package.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{dispatches, promotions, constructions}
}

// Register adds the collectors to reg. Collectors already registered with
// reg are skipped.
func Register(reg prometheus.Registerer) error {
	for _, c := range Collectors() {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}

// RecordDispatch counts one call resolved through path.
func RecordDispatch(path string, err error) {
	dispatches.WithLabelValues(path, strconv.FormatBool(err == nil)).Inc()
}

// RecordPromotion counts one registry closure installed into an instance.
func RecordPromotion() {
	promotions.Inc()
}

// RecordConstruction counts one singleton construction attempt for typ.
func RecordConstruction(typ string, err error) {
	constructions.WithLabelValues(typ, strconv.FormatBool(err == nil)).Inc()
}
