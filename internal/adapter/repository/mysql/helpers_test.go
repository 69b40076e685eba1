package mysql

import (
	"testing"

	"loan-refinance/internal/testutil/sqlitedb"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB { return sqlitedb.Open(t) }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
