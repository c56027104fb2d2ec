package sink

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/damian-dev1/json-tools-and-utilities/domain/model"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// defaultMongoDatabase is used when the connection URI names no database.
const defaultMongoDatabase = "jsontools"

// mongoWriter stores each table as a collection of flat documents.
type mongoWriter struct {
	client *mongo.Client
	db     *mongo.Database
}

func init() {
	Register("mongodb", openMongo)
}

func openMongo(ctx context.Context, cfg Config) (Writer, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &mongoWriter{
		client: client,
		db:     client.Database(databaseFromURI(cfg.DSN)),
	}, nil
}

// databaseFromURI extracts the database name from the path of a
// mongodb:// or mongodb+srv:// URI.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return defaultMongoDatabase
	}
	name := strings.Trim(u.Path, "/")
	if name == "" {
		return defaultMongoDatabase
	}
	return name
}

// WriteTable implements Writer. Collections have no schema, so Append never
// conflicts and Replace drops the collection first.
func (w *mongoWriter) WriteTable(ctx context.Context, name string, table *model.Table, policy model.CollisionPolicy) (int64, error) {
	idents, err := table.Identifiers()
	if err != nil {
		return 0, err
	}
	collName := model.SanitizeTableName(name)

	names, err := w.db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: collName}})
	if err != nil {
		return 0, fmt.Errorf("list collections: %w", err)
	}
	coll := w.db.Collection(collName)

	if len(names) > 0 {
		switch policy {
		case model.CollisionReplace:
			if err := coll.Drop(ctx); err != nil {
				return 0, fmt.Errorf("drop collection %s: %w", collName, err)
			}
		case model.CollisionAppend:
		default:
			return 0, fmt.Errorf("%w: %s", model.ErrSchemaCollision, collName)
		}
	}

	res, err := coll.InsertMany(ctx, buildDocuments(idents, table.Rows()))
	if err != nil {
		return 0, fmt.Errorf("insert into %s: %w", collName, err)
	}
	return int64(len(res.InsertedIDs)), nil
}

// buildDocuments turns rows into ordered documents keyed by identifier.
// Null cells are left out.
func buildDocuments(idents []string, rows [][]any) []any {
	docs := make([]any, len(rows))
	for i, row := range rows {
		doc := make(bson.D, 0, len(idents))
		for j, ident := range idents {
			if row[j] == nil {
				continue
			}
			doc = append(doc, bson.E{Key: ident, Value: row[j]})
		}
		docs[i] = doc
	}
	return docs
}

// Close implements Writer.
func (w *mongoWriter) Close() error {
	return w.client.Disconnect(context.Background())
}
