package service

import (
	"math"
	"strconv"
)

const defaultPageSize = 20
const maxPageSize = 100

func normalizePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

func clampPageSize(size int) int {
	if size <= 0 {
		return defaultPageSize
	}
	if size > maxPageSize {
		return maxPageSize
	}
	return size
}

// entityID renders a numeric primary key as the action log identifier.
func entityID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func calculateTotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	return int(math.Ceil(float64(total) / float64(pageSize)))
}
