package spider

import (
	"crypto/md5"
	"encoding/hex"
	"time"

	"github.com/dszqbsm/dikicrawler/diki"
)

// DataRepository stores the parsed pages. Saving a cell whose key was saved before
// replaces the earlier one.
type DataRepository interface {
	Save(cells ...*DataCell) error
}

// DataCell is one parsed page.
type DataCell struct {
	Task     string
	URL      string
	Key      string
	Time     time.Time
	Entities []*diki.DictionaryEntity
}

// Key is the hex md5 of a page URL, used to name stored pages.
func Key(url string) string {
	block := md5.Sum([]byte(url))
	return hex.EncodeToString(block[:])
}
