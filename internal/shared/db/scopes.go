package db

import (
	"gorm.io/gorm"
)

// Paginate limits a listing to one page. A non-positive pageSize returns
// every row, which exports rely on.
//
//	db.Model(&Model{}).Scopes(db.Paginate(page, size)).Find(&rows)
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if pageSize <= 0 {
			return db
		}
		if page < 1 {
			page = 1
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

// InsertionOrder sorts by primary key, which is creation order.
func InsertionOrder(table string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if table == "" {
			return db.Order("id ASC")
		}
		return db.Order(table + ".id ASC")
	}
}

// MatchNothing is applied when a caller's scope is empty so the query still
// runs with its usual shape but returns no rows.
func MatchNothing() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("1 = 0")
	}
}
