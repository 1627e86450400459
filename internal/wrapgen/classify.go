package wrapgen

import "strings"

// Bucket is the ordered list of values substituted for one marker.
type Bucket struct {
	Marker string   `yaml:"marker" json:"marker"`
	Values []string `yaml:"values" json:"values"`
}

// ClassificationMap maps marker tokens to buckets, in a fixed marker order.
type ClassificationMap struct {
	buckets []Bucket
	index   map[string]int
}

func newClassificationMap(markers []string) *ClassificationMap {
	cm := &ClassificationMap{
		buckets: make([]Bucket, 0, len(markers)),
		index:   make(map[string]int, len(markers)),
	}
	for _, marker := range markers {
		cm.index[marker] = len(cm.buckets)
		cm.buckets = append(cm.buckets, Bucket{Marker: marker, Values: []string{}})
	}
	return cm
}

func (cm *ClassificationMap) add(marker, value string) {
	i := cm.index[marker]
	cm.buckets[i].Values = append(cm.buckets[i].Values, value)
}

// Values returns the bucket for marker, or nil if marker is unknown.
func (cm *ClassificationMap) Values(marker string) []string {
	i, ok := cm.index[marker]
	if !ok {
		return nil
	}
	return cm.buckets[i].Values
}

// Buckets returns every bucket in marker order.
func (cm *ClassificationMap) Buckets() []Bucket {
	out := make([]Bucket, len(cm.buckets))
	copy(out, cm.buckets)
	return out
}

// Markers returns the marker tokens in iteration order.
func (cm *ClassificationMap) Markers() []string {
	markers := make([]string, len(cm.buckets))
	for i, b := range cm.buckets {
		markers[i] = b.Marker
	}
	return markers
}

// Classify sorts filtered header lines into the includes, constant and api
// buckets. A line lands in at most one bucket; blank lines and other
// directives land in none.
//
// Every definition of constantName is collected in line order, so a header
// that redefines the constant yields more than one value.
func Classify(lines []string, constantName string, p Patterns, m Markers) *ClassificationMap {
	cm := newClassificationMap(m.Ordered())

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, p.IncludePrefix):
			cm.add(m.Includes, strings.TrimSpace(line))

		case strings.HasPrefix(line, p.DirectivePrefix):
			if value, ok := constantValue(line, constantName, p.DefineKeyword); ok {
				cm.add(m.Constant, value)
			}

		case strings.TrimSpace(line) != "":
			cm.add(m.API, strings.TrimSpace(line))
		}
	}

	return cm
}

// constantValue returns the replacement value of an object-like macro
// definition named name. A definition without a value is not a match.
func constantValue(line, name, keyword string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) < 3 || fields[0] != keyword || fields[1] != name {
		return "", false
	}
	return fields[len(fields)-1], true
}
