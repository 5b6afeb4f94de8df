package sqldb

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pageColumns = []Field{
	{Title: "page_key", Type: "CHAR(32) NOT NULL"},
	{Title: "url", Type: "VARCHAR(2048)"},
}

func TestCreateTableSQL(t *testing.T) {
	tests := []struct {
		name    string
		data    TableData
		want    string
		wantErr bool
	}{
		{
			name: "primary key",
			data: TableData{TableName: "diki_pages", ColumnNames: pageColumns, PrimaryKey: "page_key"},
			want: "CREATE TABLE IF NOT EXISTS `diki_pages` (`page_key` CHAR(32) NOT NULL,`url` VARCHAR(2048),PRIMARY KEY (`page_key`)) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;",
		},
		{
			name: "auto key",
			data: TableData{TableName: "t", ColumnNames: pageColumns[1:], AutoKey: true},
			want: "CREATE TABLE IF NOT EXISTS `t` (id INT(12) NOT NULL PRIMARY KEY AUTO_INCREMENT,`url` VARCHAR(2048)) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;",
		},
		{
			name:    "no columns",
			data:    TableData{TableName: "t"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := createTableSQL(tt.data)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrEmptyColumns))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInsertSQL(t *testing.T) {
	got, err := insertSQL(TableData{
		TableName:   "diki_pages",
		ColumnNames: pageColumns,
		Args:        []interface{}{"k1", "u1", "k2", "u2"},
		DataCount:   2,
		PrimaryKey:  "page_key",
	})
	require.NoError(t, err)
	assert.Equal(t, "REPLACE INTO `diki_pages`(`page_key`,`url`) VALUES (?,?),(?,?);", got)

	got, err = insertSQL(TableData{TableName: "t", ColumnNames: pageColumns, Args: []interface{}{"k", "u"}, DataCount: 1})
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO `t`(`page_key`,`url`) VALUES (?,?);", got)

	_, err = insertSQL(TableData{TableName: "t", ColumnNames: pageColumns, Args: []interface{}{"k"}, DataCount: 1})
	assert.Error(t, err)

	_, err = insertSQL(TableData{TableName: "t"})
	assert.True(t, errors.Is(err, ErrEmptyColumns))
}
