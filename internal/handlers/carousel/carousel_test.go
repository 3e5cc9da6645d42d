package carousel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"furnirent_backend/internal/models"
)

// The list sort and the update $set address the timestamp fields by name, so
// the keys used there must be the ones the model actually persists.
func TestCarouselTimestampFieldNames(t *testing.T) {
	raw, err := bson.Marshal(models.CarouselItem{
		Title:     "Monsoon Sale",
		Image:     "http://media/carousel/1.png",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))

	assert.Contains(t, doc, "createdAt")
	assert.Contains(t, doc, "updatedAt")
	assert.NotContains(t, doc, "created_at")
	assert.NotContains(t, doc, "updated_at")
}
