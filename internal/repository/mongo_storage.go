package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ID fixo: o backend Mongo guarda um único dataset, como o arquivo em disco.
const currentDatasetID = "current"

type datasetDoc struct {
	ID        string    `bson:"_id"`
	Content   []byte    `bson:"content"`
	Size      int       `bson:"size"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoStorage guarda o CSV cru num documento da coleção "datasets".
// Limite prático: 16MB por documento (limite do BSON).
type MongoStorage struct {
	coll *mongo.Collection
}

func NewMongoStorage(db *mongo.Database) *MongoStorage {
	return &MongoStorage{coll: db.Collection("datasets")}
}

func (s *MongoStorage) Name() string { return "mongo" }

func (s *MongoStorage) Read(ctx context.Context) ([]byte, error) {
	var doc datasetDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": currentDatasetID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoDataset
		}
		return nil, err
	}
	if doc.Content == nil {
		return []byte{}, nil
	}
	return doc.Content, nil
}

// Write substitui o documento inteiro (upsert), sem merge.
func (s *MongoStorage) Write(ctx context.Context, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	doc := datasetDoc{
		ID:        currentDatasetID,
		Content:   data,
		Size:      len(data),
		UpdatedAt: time.Now().UTC(),
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": currentDatasetID}, doc, options.Replace().SetUpsert(true))
	return err
}
