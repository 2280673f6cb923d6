package schema

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TrackCollection = "track"
	PointCollection = "point"
)

// Location is a single 2D coordinate.
type Location struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// GeoJSON - mongo single-position geometry format
type GeoJSON struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// GeoLineString - mongo path geometry format, an ordered [lon, lat]
// sequence
type GeoLineString struct {
	Type        string      `bson:"type" json:"type"`
	Coordinates [][]float64 `bson:"coordinates" json:"coordinates"`
}

// Track is a user-owned path between two labeled places.
type Track struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID   string             `bson:"user_id" json:"user_id"`
	Start    string             `bson:"start" json:"start"`
	End      string             `bson:"end" json:"end"`
	Geometry GeoLineString      `bson:"geometry" json:"geometry"`
	Created  int64              `bson:"created,omitempty" json:"created_date"`
	Modified int64              `bson:"modified,omitempty" json:"modified_date"`
}

// JSON renders the track as a GeoJSON-like mapping for map consumers.
// properties.id is present only for persisted records.
func (t Track) JSON() map[string]interface{} {
	properties := map[string]interface{}{
		"start": t.Start,
		"end":   t.End,
	}
	if !t.ID.IsZero() {
		properties["id"] = t.ID.Hex()
	}
	return map[string]interface{}{
		"type":        "LineString",
		"coordinates": t.Geometry.Coordinates,
		"properties":  properties,
	}
}

// Point is a user-owned single location with a free-text address.
type Point struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID   string             `bson:"user_id" json:"user_id"`
	Address  string             `bson:"address" json:"address"`
	Geometry GeoJSON            `bson:"geometry" json:"geometry"`
	Created  int64              `bson:"created,omitempty" json:"created_date"`
	Modified int64              `bson:"modified,omitempty" json:"modified_date"`
}

// JSON renders the point with a flat [lon, lat] coordinate pair. The
// type label says LineString even for a single point; existing map
// consumers key on that exact shape, so it stays.
func (p Point) JSON() map[string]interface{} {
	properties := map[string]interface{}{
		"address": p.Address,
	}
	if !p.ID.IsZero() {
		properties["id"] = p.ID.Hex()
	}
	return map[string]interface{}{
		"type":        "LineString",
		"coordinates": p.Geometry.Coordinates,
		"properties":  properties,
	}
}

// Location returns the point's coordinate as a Location.
func (p Point) Location() Location {
	if len(p.Geometry.Coordinates) < 2 {
		return Location{}
	}
	return Location{
		Longitude: p.Geometry.Coordinates[0],
		Latitude:  p.Geometry.Coordinates[1],
	}
}

// NewLineString builds a LineString geometry from [lon, lat] pairs.
func NewLineString(coordinates [][]float64) GeoLineString {
	return GeoLineString{
		Type:        "LineString",
		Coordinates: coordinates,
	}
}

// NewPoint builds a Point geometry from a single coordinate.
func NewPoint(longitude, latitude float64) GeoJSON {
	return GeoJSON{
		Type:        "Point",
		Coordinates: []float64{longitude, latitude},
	}
}
