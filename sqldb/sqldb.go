package sqldb

import (
	"database/sql"
	"errors"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

var ErrEmptyColumns = errors.New("column can not be empty")

type DBer interface {
	CreateTable(t TableData) error
	Insert(t TableData) error
}

type Sqldb struct {
	options
	db *sql.DB
}

// New opens a MySQL connection pool and pings it.
func New(opts ...Option) (*Sqldb, error) {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	d := &Sqldb{}
	d.options = options
	if err := d.OpenDB(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Sqldb) OpenDB() error {
	db, err := sql.Open("mysql", d.sqlURL)
	if err != nil {
		return err
	}
	db.SetMaxOpenConns(64)
	db.SetMaxIdleConns(64)
	if err = db.Ping(); err != nil {
		db.Close()
		return err
	}
	d.db = db
	return nil
}

func (d *Sqldb) Close() error {
	return d.db.Close()
}

func (d *Sqldb) CreateTable(t TableData) error {
	query, err := createTableSQL(t)
	if err != nil {
		return err
	}

	d.logger.Debug("create table", zap.String("sql", query))

	_, err = d.db.Exec(query)
	return err
}

func (d *Sqldb) DropTable(t TableData) error {
	query := "DROP TABLE IF EXISTS " + quote(t.TableName)

	d.logger.Debug("drop table", zap.String("sql", query))

	_, err := d.db.Exec(query)
	return err
}

// Insert writes t.DataCount rows in one statement; t.Args holds them row after row.
func (d *Sqldb) Insert(t TableData) error {
	query, err := insertSQL(t)
	if err != nil {
		return err
	}

	d.logger.Debug("insert table", zap.String("sql", query))

	_, err = d.db.Exec(query, t.Args...)
	return err
}

type Field struct {
	Title string
	Type  string
}

type TableData struct {
	TableName   string
	ColumnNames []Field
	Args        []interface{}
	DataCount   int
	AutoKey     bool
	// PrimaryKey names a column of ColumnNames. Inserts replace rows with the same key.
	PrimaryKey string
}

func createTableSQL(t TableData) (string, error) {
	if len(t.ColumnNames) == 0 {
		return "", ErrEmptyColumns
	}

	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS " + quote(t.TableName) + " (")
	cols := make([]string, 0, len(t.ColumnNames)+2)
	if t.AutoKey {
		cols = append(cols, "id INT(12) NOT NULL PRIMARY KEY AUTO_INCREMENT")
	}
	for _, f := range t.ColumnNames {
		cols = append(cols, quote(f.Title)+" "+f.Type)
	}
	if t.PrimaryKey != "" && !t.AutoKey {
		cols = append(cols, "PRIMARY KEY ("+quote(t.PrimaryKey)+")")
	}
	b.WriteString(strings.Join(cols, ","))
	b.WriteString(") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;")

	return b.String(), nil
}

// insertSQL builds e.g. INSERT INTO t(a,b) VALUES (?,?),(?,?); with one group per row.
func insertSQL(t TableData) (string, error) {
	if len(t.ColumnNames) == 0 {
		return "", ErrEmptyColumns
	}
	if t.DataCount < 1 || len(t.Args) != t.DataCount*len(t.ColumnNames) {
		return "", errors.New("args do not match columns")
	}

	verb := "INSERT INTO "
	if t.PrimaryKey != "" {
		verb = "REPLACE INTO "
	}

	titles := make([]string, len(t.ColumnNames))
	for i, v := range t.ColumnNames {
		titles[i] = quote(v.Title)
	}

	blank := ",(" + strings.Repeat(",?", len(t.ColumnNames))[1:] + ")"

	return verb + quote(t.TableName) + "(" + strings.Join(titles, ",") + ") VALUES " +
		strings.Repeat(blank, t.DataCount)[1:] + ";", nil
}

func quote(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
