// Package projection turns normalized statistics and server state into
// measurement families ready for exposition.
package projection

// Type is the kind of a measurement family.
type Type uint8

const (
	Counter Type = iota + 1
	Gauge
)

// String returns the exposition name of the type.
func (t Type) String() string {
	switch t {
	case Counter:
		return "counter"
	case Gauge:
		return "gauge"
	default:
		return "untyped"
	}
}

// Sample is one labelled value. Labels align with Family.Labels.
type Sample struct {
	Labels []string
	Value  float64
}

// Family is a named set of samples sharing label names.
type Family struct {
	Name    string
	Help    string
	Type    Type
	Labels  []string
	Samples []Sample
}

func (f *Family) add(value float64, labels ...string) {
	f.Samples = append(f.Samples, Sample{Labels: labels, Value: value})
}
