package content

import "gorm.io/gorm"

// FilterTag narrows tx to rows whose JSON tags column contains tag. MySQL
// gets the native JSON predicate; other dialects (sqlite in tests) fall back
// to a substring match on the serialized form.
func FilterTag(tx *gorm.DB, tag string) *gorm.DB {
	if tag == "" {
		return tx
	}
	if tx.Dialector.Name() == "mysql" {
		return tx.Where("JSON_CONTAINS(tags, JSON_QUOTE(?))", tag)
	}
	return tx.Where("tags LIKE ?", `%"`+tag+`"%`)
}

// FilterSearch narrows tx to rows whose title matches the query.
func FilterSearch(tx *gorm.DB, q string) *gorm.DB {
	if q == "" {
		return tx
	}
	return tx.Where("title LIKE ?", "%"+q+"%")
}
