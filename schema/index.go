package schema

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBIndexer struct {
	ctx      context.Context
	dbName   string
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoDBIndexer(connectionString, dbName string) *MongoDBIndexer {
	ctx := context.Background()
	opts := options.Client().ApplyURI(connectionString)
	client, err := mongo.NewClient(opts)
	if err != nil {
		panic(err)
	}
	if err := client.Connect(ctx); err != nil {
		panic(err)
	}

	return &MongoDBIndexer{
		ctx:      ctx,
		dbName:   dbName,
		Client:   client,
		Database: client.Database(dbName),
	}
}

func (m *MongoDBIndexer) createIndex(collection string, index mongo.IndexModel) error {
	c := m.Database.Collection(collection)
	_, err := c.Indexes().CreateOne(m.ctx, index)
	return err
}

func panicIfError(err error) {
	if err != nil {
		panic(err)
	}
}

func (m *MongoDBIndexer) IndexAll() {
	panicIfError(m.IndexTrackCollection())
	panicIfError(m.IndexPointCollection())
}

func (m *MongoDBIndexer) IndexTrackCollection() error {
	if err := m.createIndex(TrackCollection, mongo.IndexModel{
		Keys: bson.M{
			"user_id": 1,
		},
	}); err != nil {
		return err
	}

	return m.createIndex(TrackCollection, mongo.IndexModel{
		Keys: bson.M{
			"geometry": "2dsphere",
		},
	})
}

func (m *MongoDBIndexer) IndexPointCollection() error {
	if err := m.createIndex(PointCollection, mongo.IndexModel{
		Keys: bson.M{
			"user_id": 1,
		},
	}); err != nil {
		return err
	}

	return m.createIndex(PointCollection, mongo.IndexModel{
		Keys: bson.M{
			"geometry": "2dsphere",
		},
	})
}
