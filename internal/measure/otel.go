package measure

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/globemeasure/measure/internal/measure"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
