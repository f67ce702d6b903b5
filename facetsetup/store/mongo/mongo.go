package mongo

import (
	"context"
	"time"

	"github.com/brandonshearin/facetsearch/facet"
	"github.com/brandonshearin/facetsearch/facetsetup/setup"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/xerrors"
)

// Compile-time check for ensuring MongoSetupStore implements setup.Store.
var _ setup.Store = (*MongoSetupStore)(nil)

// DefaultCollection holds facet setups when Config.Collection is empty.
const DefaultCollection = "facet_setups"

// Config encapsulates the options for connecting to MongoDB.
type Config struct {
	URI        string
	Database   string
	Collection string
}

// setupDocument is the stored shape of a setup. Modes are kept by name so
// documents stay readable from the mongo shell.
type setupDocument struct {
	ID        string               `bson:"_id"`
	Facets    []definitionDocument `bson:"facets"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}

type definitionDocument struct {
	Mode     string               `bson:"mode"`
	Name     string               `bson:"name"`
	Ranges   []string             `bson:"ranges,omitempty"`
	Children []definitionDocument `bson:"children,omitempty"`
}

// MongoSetupStore keeps one MongoDB document per facet setup.
type MongoSetupStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoSetupStore connects to the server described by cfg and verifies
// that it is reachable.
func NewMongoSetupStore(ctx context.Context, cfg Config) (*MongoSetupStore, error) {
	if cfg.URI == "" {
		return nil, xerrors.New("mongodb setup store: missing URI")
	}
	if cfg.Database == "" {
		return nil, xerrors.New("mongodb setup store: missing database")
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, xerrors.Errorf("connect to mongodb: %w", err)
	}
	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, xerrors.Errorf("ping mongodb: %w", err)
	}
	return &MongoSetupStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Upsert validates rec and replaces the document stored under its ID.
func (s *MongoSetupStore) Upsert(ctx context.Context, rec *setup.Record) error {
	if err := setup.Prepare(rec); err != nil {
		return err
	}
	doc := setupDocument{
		ID:        rec.ID,
		Facets:    toDocuments(rec.Setup.Facets),
		UpdatedAt: rec.UpdatedAt,
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": rec.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return xerrors.Errorf("upsert setup %q: %w", rec.ID, err)
	}
	return nil
}

// Find loads the setup stored under id.
func (s *MongoSetupStore) Find(ctx context.Context, id string) (*setup.Record, error) {
	var doc setupDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if xerrors.Is(err, mongo.ErrNoDocuments) {
		return nil, xerrors.Errorf("find setup %q: %w", id, setup.ErrNotFound)
	} else if err != nil {
		return nil, xerrors.Errorf("find setup %q: %w", id, err)
	}

	facets, err := fromDocuments(doc.Facets)
	if err != nil {
		return nil, xerrors.Errorf("find setup %q: %w", id, err)
	}
	return &setup.Record{
		ID:        doc.ID,
		Setup:     &facet.Setup{Facets: facets},
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

// Delete removes the setup stored under id.
func (s *MongoSetupStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return xerrors.Errorf("delete setup %q: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return xerrors.Errorf("delete setup %q: %w", id, setup.ErrNotFound)
	}
	return nil
}

// Drop removes the whole collection.
func (s *MongoSetupStore) Drop(ctx context.Context) error {
	return s.coll.Drop(ctx)
}

// Close disconnects from the server.
func (s *MongoSetupStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func toDocuments(defs []facet.Definition) []definitionDocument {
	if len(defs) == 0 {
		return nil
	}
	docs := make([]definitionDocument, len(defs))
	for i, d := range defs {
		docs[i] = definitionDocument{
			Mode:     d.Mode.String(),
			Name:     d.Name,
			Ranges:   d.Ranges,
			Children: toDocuments(d.Children),
		}
	}
	return docs
}

func fromDocuments(docs []definitionDocument) ([]facet.Definition, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	defs := make([]facet.Definition, len(docs))
	for i, d := range docs {
		mode, err := facet.ParseMode(d.Mode)
		if err != nil {
			return nil, err
		}
		children, err := fromDocuments(d.Children)
		if err != nil {
			return nil, err
		}
		defs[i] = facet.Definition{Mode: mode, Name: d.Name, Ranges: d.Ranges, Children: children}
	}
	return defs, nil
}
