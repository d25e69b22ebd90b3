package utils

const (
	listPageDefault = 20
	listPageMax     = 100
)

// GetPaginationParams normalizes the optional offset and limit of a listing
// request. A nil or negative offset starts at the first row; a nil or
// non-positive limit falls back to the default page size. The limit is
// clamped so a single request cannot page through the whole reference
// data set.
func GetPaginationParams(offset *int, limit *int) (int, int) {
	finalOffset := 0
	if offset != nil && *offset >= 0 {
		finalOffset = *offset
	}

	finalLimit := listPageDefault
	if limit != nil && *limit > 0 {
		finalLimit = min(*limit, listPageMax)
	}

	return finalOffset, finalLimit
}
