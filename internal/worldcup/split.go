package worldcup

import "wcetl/pkg/records"

// SplitByYear partitions t into the training era [trainLo, trainHi] and the
// single test year. Rows whose year is nil, non-integral, or outside both
// ranges are dropped and counted. The partitions copy t's column schema and
// no row lands in both.
func SplitByYear(t *records.Table, trainLo, trainHi, testYear int64) (train, test *records.Table, dropped int) {
	train = &records.Table{Columns: append([]string(nil), t.Columns...)}
	test = &records.Table{Columns: append([]string(nil), t.Columns...)}
	for _, r := range t.Rows {
		y, ok := yearOf(r["year"])
		switch {
		case !ok:
			dropped++
		case y >= trainLo && y <= trainHi:
			train.Rows = append(train.Rows, r)
		case y == testYear:
			test.Rows = append(test.Rows, r)
		default:
			dropped++
		}
	}
	return train, test, dropped
}

func yearOf(v any) (int64, bool) {
	switch y := v.(type) {
	case int64:
		return y, true
	case float64:
		if y == float64(int64(y)) {
			return int64(y), true
		}
	}
	return 0, false
}
