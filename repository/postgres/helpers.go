package postgres

import "time"

const defaultListLimit = 50

func clampLimit(limit int) int {
	if limit <= 0 || limit > 200 {
		return defaultListLimit
	}
	return limit
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
