package storage

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"listings-eda/models"
	"listings-eda/utils"
)

// identRegexp matches a plain or schema-qualified SQL identifier.
var identRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// SQLReader loads every row of one table from PostgreSQL or SQLite.
type SQLReader struct {
	db    *sqlx.DB
	table string
}

// NewSQLReader connects with the given driver ("postgres" or "sqlite"),
// retrying the connection per retry.
func NewSQLReader(ctx context.Context, driver, dsn, table string, retry *utils.RetryConfig) (*SQLReader, error) {
	if !identRegexp.MatchString(table) {
		return nil, fmt.Errorf("sql: invalid table name %q", table)
	}

	var db *sqlx.DB
	err := retry.Do(ctx, driver+" connect", func() error {
		var err error
		db, err = sqlx.ConnectContext(ctx, driver, dsn)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("sql: connect: %w", err)
	}

	return &SQLReader{db: db, table: table}, nil
}

// Read runs SELECT * against the table and converts every cell.
func (s *SQLReader) Read(ctx context.Context) (*models.Table, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT * FROM "+s.table)
	if err != nil {
		return nil, fmt.Errorf("sql: query %s: %w", s.table, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("sql: columns: %w", err)
	}

	var out [][]models.Value
	for rows.Next() {
		cells, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("sql: scan row: %w", err)
		}
		row := make([]models.Value, len(cells))
		for i, c := range cells {
			row[i] = valueFromSQL(c)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sql: iterate rows: %w", err)
	}

	return models.NewTable(header, out), nil
}

// Close closes the connection pool.
func (s *SQLReader) Close() error {
	return s.db.Close()
}

func valueFromSQL(c any) models.Value {
	switch v := c.(type) {
	case nil:
		return models.Null()
	case int64:
		return models.Number(float64(v))
	case float64:
		return models.Number(v)
	case bool:
		return models.Text(strconv.FormatBool(v))
	case []byte:
		return models.ParseValue(string(v))
	case string:
		return models.ParseValue(v)
	case time.Time:
		return models.Text(v.Format(time.RFC3339))
	default:
		return models.ParseValue(fmt.Sprint(v))
	}
}
