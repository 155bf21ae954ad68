package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/softtronics/msw-portal/internal/core/domain"
)

const (
	inventoryCollection          = "inventory"
	transactionCollection        = "transactions"
	inventoryArchiveCollection   = "inventory_archive"
	transactionArchiveCollection = "transaction_archive"
)

// MirrorRepository stores mirrored ERP rows and archival snapshots.
type MirrorRepository struct {
	db *mongo.Database
}

func NewMirrorRepository(db *mongo.Database) *MirrorRepository {
	return &MirrorRepository{db: db}
}

// ReplaceInventory swaps the inventory mirror wholesale: the previous rows are
// dropped and the fetched set inserted, matching the upstream truncate-and-load.
func (r *MirrorRepository) ReplaceInventory(ctx context.Context, rows []domain.InventoryRow) error {
	docs := make([]interface{}, len(rows))
	for i := range rows {
		docs[i] = rows[i]
	}
	return r.replace(ctx, inventoryCollection, docs)
}

func (r *MirrorRepository) ReplaceTransactions(ctx context.Context, rows []domain.TransactionRow) error {
	docs := make([]interface{}, len(rows))
	for i := range rows {
		docs[i] = rows[i]
	}
	return r.replace(ctx, transactionCollection, docs)
}

func (r *MirrorRepository) replace(ctx context.Context, collection string, docs []interface{}) error {
	coll := r.db.Collection(collection)
	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("clear %s: %w", collection, err)
	}
	if len(docs) == 0 {
		return nil
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("populate %s: %w", collection, err)
	}
	return nil
}

// ArchiveInventory copies the current inventory mirror into the archive
// collection, each document stamped with the snapshot date.
func (r *MirrorRepository) ArchiveInventory(ctx context.Context, date time.Time) error {
	return r.archive(ctx, inventoryCollection, inventoryArchiveCollection, date)
}

func (r *MirrorRepository) ArchiveTransactions(ctx context.Context, date time.Time) error {
	return r.archive(ctx, transactionCollection, transactionArchiveCollection, date)
}

func (r *MirrorRepository) archive(ctx context.Context, from, to string, date time.Time) error {
	cursor, err := r.db.Collection(from).Find(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("read %s: %w", from, err)
	}
	defer cursor.Close(ctx)

	var docs []interface{}
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return fmt.Errorf("decode %s row: %w", from, err)
		}
		delete(doc, "_id")
		doc["snapshot_date"] = date
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return fmt.Errorf("read %s: %w", from, err)
	}
	if len(docs) == 0 {
		return nil
	}

	if _, err := r.db.Collection(to).InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("write %s: %w", to, err)
	}
	return nil
}
