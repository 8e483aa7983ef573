package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/books-api/internal/infrastructure/config"
)

// NewDB 根据配置创建数据库连接
// 设计说明：
// 1. 按database.driver选择MySQL或PostgreSQL方言
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境打印SQL，生产环境只打印慢查询和错误
// 4. auto_migrate开启时自动迁移books表
func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	return Open(Dialector(cfg.Database), cfg, log)
}

// Dialector 根据驱动名称返回GORM方言
func Dialector(cfg config.DatabaseConfig) gorm.Dialector {
	if cfg.Driver == config.DriverPostgres {
		return postgres.Open(cfg.DSN())
	}
	return mysql.Open(cfg.DSN())
}

// Open 使用指定方言打开数据库（测试中传入SQLite方言）
func Open(dialector gorm.Dialector, cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	// 1. 配置GORM日志（输出到zap）
	logLevel := logger.Warn
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}
	gormLogger := logger.New(gormWriter{log.Sugar()}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logLevel,
		IgnoreRecordNotFoundError: true,
	})

	// 2. 连接数据库
	// 学习要点：TranslateError让各驱动把唯一约束冲突统一翻译为gorm.ErrDuplicatedKey
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 3. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 4. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}
	log.Info("数据库连接成功", zap.String("driver", dialector.Name()))

	// 5. 自动迁移表结构
	// 注意：生产环境应使用版本化的迁移脚本
	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(&BookModel{}); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}

	return db, nil
}

// Close 关闭底层连接池（优雅关闭时调用）
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// gormWriter 把GORM日志转发到zap
type gormWriter struct {
	log *zap.SugaredLogger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Infof(format, args...)
}

// BookModel GORM图书模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，domain/book/entity.go的实体不依赖GORM
// 2. ISBN直接作为主键，主键约束保证不重复
// 3. 物理删除，没有时间戳和软删除字段
type BookModel struct {
	ISBN      string `gorm:"column:isbn;primaryKey;size:20;comment:ISBN号"`
	AmazonURL string `gorm:"column:amazon_url;size:500;not null;comment:亚马逊链接"`
	Author    string `gorm:"column:author;size:100;not null;comment:作者"`
	Language  string `gorm:"column:language;size:50;not null;comment:语言"`
	Pages     int    `gorm:"column:pages;not null;comment:页数"`
	Publisher string `gorm:"column:publisher;size:100;not null;comment:出版社"`
	Title     string `gorm:"column:title;index;size:200;not null;comment:书名"` // 列表排序索引
	Year      int    `gorm:"column:year;not null;comment:出版年份"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}
