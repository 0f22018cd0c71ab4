package hotel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDocument(t *testing.T) {
	t.Run("full document", func(t *testing.T) {
		doc, err := DecodeDocument([]byte(`{
			"id": 36934,
			"name": "7天连锁酒店(上海宝山路地铁站店)",
			"address": "静安交通路40号",
			"price": 336,
			"score": 37,
			"brand": "7天酒店",
			"city": "上海",
			"starName": "二钻",
			"business": "四川北路商业区",
			"location": "31.251433, 121.47522",
			"pic": "https://example.com/a.jpg",
			"isAD": true,
			"all": ["ignored"]
		}`))
		require.NoError(t, err)

		assert.Equal(t, &Document{
			ID:       36934,
			Name:     "7天连锁酒店(上海宝山路地铁站店)",
			Address:  "静安交通路40号",
			Price:    336,
			Score:    37,
			Brand:    "7天酒店",
			City:     "上海",
			StarName: "二钻",
			Business: "四川北路商业区",
			Location: "31.251433, 121.47522",
			Pic:      "https://example.com/a.jpg",
			IsAD:     true,
		}, doc)
	})

	t.Run("string id", func(t *testing.T) {
		doc, err := DecodeDocument([]byte(`{"id":"42","name":"A"}`))
		require.NoError(t, err)
		assert.Equal(t, int64(42), doc.ID)
		assert.False(t, doc.IsAD)
		assert.Nil(t, doc.Distance)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := DecodeDocument([]byte(`{"name":"A"}`))
		assert.ErrorIs(t, err, ErrMissingAttribute)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := DecodeDocument([]byte(`{"id":1}`))
		assert.ErrorIs(t, err, ErrMissingAttribute)
	})

	t.Run("fractional id", func(t *testing.T) {
		_, err := DecodeDocument([]byte(`{"id":1.5,"name":"A"}`))
		assert.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := DecodeDocument([]byte(`{"id":`))
		assert.Error(t, err)
	})
}
