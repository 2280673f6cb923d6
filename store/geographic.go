package store

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bikeanjo/bikeanjo-api/schema"
)

var ErrEmptyTrack = fmt.Errorf("a track needs at least two coordinates")

// Geographic - operations for user-owned tracks and points
type Geographic interface {
	AddTrack(userID string, start, end string, coordinates [][]float64) (*schema.Track, error)
	ListTracks(userID string) ([]schema.Track, error)
	AddPoint(userID string, address string, longitude, latitude float64) (*schema.Point, error)
	ListPoints(userID string) ([]schema.Point, error)
	NearestPoints(distance int, cords schema.Location) ([]string, error)
}

func (m *mongoDB) AddTrack(userID string, start, end string, coordinates [][]float64) (*schema.Track, error) {
	if len(coordinates) < 2 {
		return nil, ErrEmptyTrack
	}

	c := m.client.Database(m.database).Collection(schema.TrackCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	now := time.Now().UTC().Unix()
	track := schema.Track{
		UserID:   userID,
		Start:    start,
		End:      end,
		Geometry: schema.NewLineString(coordinates),
		Created:  now,
		Modified: now,
	}

	result, err := c.InsertOne(ctx, track)
	if err != nil {
		log.WithFields(log.Fields{
			"prefix":  mongoLogPrefix,
			"user_id": userID,
			"error":   err,
		}).Error("add user track")
		return nil, err
	}
	track.ID = result.InsertedID.(primitive.ObjectID)

	return &track, nil
}

// ListTracks returns a user's tracks, newest first.
func (m *mongoDB) ListTracks(userID string) ([]schema.Track, error) {
	c := m.client.Database(m.database).Collection(schema.TrackCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created": -1})
	cur, err := c.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		log.WithFields(log.Fields{
			"prefix":  mongoLogPrefix,
			"user_id": userID,
			"error":   err,
		}).Error("list user tracks")
		return nil, err
	}

	tracks := make([]schema.Track, 0)
	for cur.Next(ctx) {
		var t schema.Track
		if err := cur.Decode(&t); err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}

	return tracks, nil
}

func (m *mongoDB) AddPoint(userID string, address string, longitude, latitude float64) (*schema.Point, error) {
	c := m.client.Database(m.database).Collection(schema.PointCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	now := time.Now().UTC().Unix()
	point := schema.Point{
		UserID:   userID,
		Address:  address,
		Geometry: schema.NewPoint(longitude, latitude),
		Created:  now,
		Modified: now,
	}

	result, err := c.InsertOne(ctx, point)
	if err != nil {
		log.WithFields(log.Fields{
			"prefix":  mongoLogPrefix,
			"user_id": userID,
			"error":   err,
		}).Error("add user point")
		return nil, err
	}
	point.ID = result.InsertedID.(primitive.ObjectID)

	return &point, nil
}

func (m *mongoDB) ListPoints(userID string) ([]schema.Point, error) {
	c := m.client.Database(m.database).Collection(schema.PointCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created": -1})
	cur, err := c.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		log.WithFields(log.Fields{
			"prefix":  mongoLogPrefix,
			"user_id": userID,
			"error":   err,
		}).Error("list user points")
		return nil, err
	}

	points := make([]schema.Point, 0)
	for cur.Next(ctx) {
		var p schema.Point
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		points = append(points, p)
	}

	return points, nil
}

// NearestPoints - find owners of points within some distance in meters
// return matches by user id, nearest first
func (m *mongoDB) NearestPoints(distance int, cords schema.Location) ([]string, error) {
	query := distanceQuery(distance, cords)
	c := m.client.Database(m.database).Collection(schema.PointCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	cur, err := c.Find(ctx, query)
	if err != nil {
		log.WithField("prefix", mongoLogPrefix).Errorf("query nearest points with error: %s", err)
		return []string{}, fmt.Errorf("nearest points query with error: %s", err)
	}

	userIDs := make([]string, 0)
	seen := make(map[string]bool)
	var record schema.Point

	// iterate
	for cur.Next(ctx) {
		if err := cur.Decode(&record); err != nil {
			log.WithField("prefix", mongoLogPrefix).Infof("query nearest points with error: %s", err)
			return []string{}, fmt.Errorf("nearest points query decode record with error: %s", err)
		}
		if seen[record.UserID] {
			continue
		}
		seen[record.UserID] = true
		userIDs = append(userIDs, record.UserID)
	}

	log.WithField("prefix", mongoLogPrefix).Debugf("nearest points query gets %d user ids", len(userIDs))

	return userIDs, nil
}

// $nearSphere provides documents from nearest to farthest
// reference: https://docs.mongodb.com/manual/reference/operator/query/nearSphere/#op._S_nearSphere
func distanceQuery(distance int, cords schema.Location) bson.D {
	return bson.D{{
		Key: "geometry",
		Value: bson.D{{
			Key: "$nearSphere",
			Value: bson.D{{
				Key: "$geometry",
				Value: bson.D{{
					Key:   "type",
					Value: "Point",
				}, {
					Key:   "coordinates",
					Value: bson.A{cords.Longitude, cords.Latitude},
				}, {
					Key:   "$maxDistance",
					Value: distance,
				}},
			}},
		}},
	}}
}
