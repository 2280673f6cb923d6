package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bikeanjo/bikeanjo-api/schema"
)

func TestTrackJSON(t *testing.T) {
	coordinates := [][]float64{
		{-46.633, -23.55},
		{-46.641, -23.561},
	}

	track := schema.Track{
		Start:    "Praça da Sé",
		End:      "Largo da Batata",
		Geometry: schema.NewLineString(coordinates),
	}

	d := track.JSON()
	assert.Equal(t, "LineString", d["type"])
	assert.Equal(t, coordinates, d["coordinates"])

	properties := d["properties"].(map[string]interface{})
	assert.Equal(t, "Praça da Sé", properties["start"])
	assert.Equal(t, "Largo da Batata", properties["end"])
	_, hasID := properties["id"]
	assert.False(t, hasID, "unsaved track must not expose an id")
}

func TestTrackJSONSaved(t *testing.T) {
	id := primitive.NewObjectID()
	track := schema.Track{
		ID:       id,
		Geometry: schema.NewLineString([][]float64{{0, 0}, {1, 1}}),
	}

	properties := track.JSON()["properties"].(map[string]interface{})
	assert.Equal(t, id.Hex(), properties["id"])
}

func TestPointJSON(t *testing.T) {
	point := schema.Point{
		Address:  "Av. Paulista, 1578",
		Geometry: schema.NewPoint(-46.6, -23.5),
	}

	d := point.JSON()
	// LineString even for a single point, the shape map consumers expect
	assert.Equal(t, "LineString", d["type"])
	assert.Equal(t, []float64{-46.6, -23.5}, d["coordinates"])

	properties := d["properties"].(map[string]interface{})
	assert.Equal(t, "Av. Paulista, 1578", properties["address"])
	_, hasID := properties["id"]
	assert.False(t, hasID)
}

func TestPointJSONSaved(t *testing.T) {
	id := primitive.NewObjectID()
	point := schema.Point{
		ID:       id,
		Geometry: schema.NewPoint(-46.6, -23.5),
	}

	properties := point.JSON()["properties"].(map[string]interface{})
	assert.Equal(t, id.Hex(), properties["id"])
}
