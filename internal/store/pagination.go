package store

// PageCount calcule le nombre de pages : ceil(total / size).
func PageCount(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

// PageOffset traduit un numéro de page (à partir de 1) en offset SQL.
func PageOffset(page, size int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * size
}
