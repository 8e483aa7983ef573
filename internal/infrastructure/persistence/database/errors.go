package database

import (
	"errors"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	apperrors "github.com/xiebiao/books-api/pkg/errors"
)

// mysqlDuplicateEntry MySQL错误码 1062: Duplicate entry 'xxx' for key 'PRIMARY'
const mysqlDuplicateEntry = 1062

// isDuplicateError 判断是否为主键/唯一索引冲突
// 开启TranslateError后通常已经是gorm.ErrDuplicatedKey，
// 这里继续识别驱动原始错误，兼容未翻译的路径
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	return false
}

// dbError 包装数据库故障（50001），原始错误只进日志
func dbError(err error, message string) error {
	return &apperrors.AppError{Code: apperrors.ErrCodeDatabaseError, Message: message, Err: err}
}
