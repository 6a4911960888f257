// Package scores holds the pure averaging math behind restaurant
// allergy-safety aggregates. Absent values stay absent: they are excluded
// from both the sum and the divisor, never treated as zero.
package scores

// Average returns the arithmetic mean of the present values. Nil entries are
// skipped. If no value is present the result is nil.
func Average(values []*int) *float64 {
	sum := 0
	count := 0
	for _, v := range values {
		if v == nil {
			continue
		}
		sum += *v
		count++
	}
	if count == 0 {
		return nil
	}
	avg := float64(sum) / float64(count)
	return &avg
}

// Overall averages the allergen aggregates that are present. If all of them
// are nil the overall score is nil. No rounding is applied here.
func Overall(aggregates ...*float64) *float64 {
	sum := 0.0
	count := 0
	for _, a := range aggregates {
		if a == nil {
			continue
		}
		sum += *a
		count++
	}
	if count == 0 {
		return nil
	}
	avg := sum / float64(count)
	return &avg
}
