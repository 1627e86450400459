package wrapgen

import "strings"

// ExpandOptions controls template expansion.
type ExpandOptions struct {
	// StrictMarkers rejects template lines that hold two or more distinct
	// markers instead of expanding only the first in bucket order.
	StrictMarkers bool
}

// Expand substitutes buckets into template lines. A line without a marker is
// copied as is. A line with a marker is replaced by one line per bucket value,
// each being the template line with the marker replaced by the value; an
// empty bucket drops the line.
func Expand(template []string, cm *ClassificationMap, opts ExpandOptions) ([]string, error) {
	markers := cm.Markers()
	out := make([]string, 0, len(template))

	for i, line := range template {
		found := markersIn(line, markers)
		if len(found) == 0 {
			out = append(out, line)
			continue
		}
		if opts.StrictMarkers && len(found) > 1 {
			return nil, NewMultipleMarkersError(i+1, strings.Join(found, ","))
		}

		marker := found[0]
		for _, value := range cm.Values(marker) {
			out = append(out, strings.ReplaceAll(line, marker, value))
		}
	}

	return out, nil
}

// markersIn returns the markers present in line, in marker order.
func markersIn(line string, markers []string) []string {
	var found []string
	for _, marker := range markers {
		if strings.Contains(line, marker) {
			found = append(found, marker)
		}
	}
	return found
}
