package spider

import (
	"bytes"
	"time"

	"github.com/dszqbsm/dikicrawler/diki"
)

// Context holds a fetched body together with the request it answers.
type Context struct {
	Body []byte
	Req  *Request
}

// Page builds the dictionary page iterator over the body.
func (c *Context) Page(opts ...diki.Option) (*diki.Page, error) {
	return diki.NewPage(bytes.NewReader(c.Body), c.Req.URL, opts...)
}

// Output wraps the entities of the page into a cell for the data repository.
func (c *Context) Output(entities []*diki.DictionaryEntity) *DataCell {
	return &DataCell{
		Task:     c.Req.Task.Name,
		URL:      c.Req.URL,
		Key:      Key(c.Req.URL),
		Time:     time.Now(),
		Entities: entities,
	}
}
