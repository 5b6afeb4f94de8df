package crawl

import (
	"testing"
	"time"

	"github.com/dszqbsm/dikicrawler/config"
	"github.com/dszqbsm/dikicrawler/spider"
	"github.com/dszqbsm/dikicrawler/storage/jsonstorage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func TestSeedURLs(t *testing.T) {
	got := SeedURLs([]string{"cat", " ice cream ", "", "https://www.diki.pl/slownik-angielskiego?q=dog"})
	assert.Equal(t, []string{
		"https://www.diki.pl/slownik-angielskiego?q=cat",
		"https://www.diki.pl/slownik-angielskiego?q=ice+cream",
		"https://www.diki.pl/slownik-angielskiego?q=dog",
	}, got)
}

func TestParseTaskConfig(t *testing.T) {
	cfgs := []spider.TaskConfig{
		{
			Name:        "animals",
			URLs:        []string{"cat", "dog"},
			WaitTime:    2,
			Reload:      true,
			MaxRequests: 10,
			Fetcher:     "base",
			Limits: []spider.LimitConfig{
				{EventCount: 1, EventDur: 2, Bucket: 1},
				{EventCount: 20, EventDur: 60, Bucket: 20},
			},
		},
		{Name: "plain"},
	}

	tasks := ParseTaskConfig(zap.NewNop(), []spider.FetchOption{spider.WithFetchTimeout(time.Second)}, cfgs)
	require.Len(t, tasks, 2)

	animals := tasks[0]
	assert.Equal(t, "animals", animals.Name)
	assert.Len(t, animals.URLs, 2)
	assert.Equal(t, int64(2), animals.WaitTime)
	assert.True(t, animals.Reload)
	assert.Equal(t, int64(10), animals.MaxRequests)
	assert.NotNil(t, animals.Fetcher)
	require.NotNil(t, animals.Limit)
	assert.InDelta(t, float64(rate.Every(3*time.Second)), float64(animals.Limit.Limit()), 1e-9)

	plain := tasks[1]
	assert.Equal(t, int64(5), plain.WaitTime)
	assert.Equal(t, 5, plain.MaxDepth)
	assert.Nil(t, plain.Fetcher)
	assert.Nil(t, plain.Limit)
}

func TestNewStorage(t *testing.T) {
	s, err := NewStorage(config.Storage{Type: "JSON", Dir: t.TempDir()}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &jsonstorage.JSONStore{}, s)

	_, err = NewStorage(config.Storage{Type: "redis"}, zap.NewNop())
	assert.Error(t, err)
}
