package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/formotex/inventory-api/internal/core/domain"
	"github.com/formotex/inventory-api/internal/core/ports"
)

const collectionEquipment = "equipment"

type EquipmentRepository struct {
	col *mongo.Collection
}

func NewEquipmentRepository(db *mongo.Database) *EquipmentRepository {
	return &EquipmentRepository{col: db.Collection(collectionEquipment)}
}

// equipmentDocument stores the owner as an ObjectID reference to users. An
// unassigned record has no owner field at all.
type equipmentDocument struct {
	ID           primitive.ObjectID  `bson:"_id"`
	Name         string              `bson:"name"`
	SerialNumber string              `bson:"serialNumber"`
	Type         string              `bson:"type"`
	Status       string              `bson:"status"`
	Owner        *primitive.ObjectID `bson:"owner,omitempty"`
	Description  string              `bson:"description,omitempty"`
	CreatedAt    time.Time           `bson:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt"`
}

func newEquipmentDocument(e *domain.Equipment, id primitive.ObjectID) (*equipmentDocument, error) {
	doc := &equipmentDocument{
		ID:           id,
		Name:         e.Name,
		SerialNumber: e.SerialNumber,
		Type:         string(e.Type),
		Status:       string(e.Status),
		Description:  e.Description,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	if e.OwnerID != "" {
		owner, err := parseID(e.OwnerID)
		if err != nil {
			return nil, err
		}
		doc.Owner = &owner
	}
	return doc, nil
}

func (d *equipmentDocument) toDomain() *domain.Equipment {
	e := &domain.Equipment{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		SerialNumber: d.SerialNumber,
		Type:         domain.EquipmentType(d.Type),
		Status:       domain.EquipmentStatus(d.Status),
		Description:  d.Description,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
	if d.Owner != nil {
		e.OwnerID = d.Owner.Hex()
	}
	return e
}

func (r *EquipmentRepository) Create(ctx context.Context, e *domain.Equipment) error {
	doc, err := newEquipmentDocument(e, primitive.NewObjectID())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return translate("insert equipment", err, nil, domain.ErrSerialTaken)
	}

	e.ID = doc.ID.Hex()
	return nil
}

func (r *EquipmentRepository) FindByID(ctx context.Context, id string) (*domain.Equipment, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc equipmentDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translate("find equipment", err, domain.ErrEquipmentNotFound, nil)
	}
	return doc.toDomain(), nil
}

// List applies the owner filter in the query so a scoped caller never loads
// records it cannot see.
func (r *EquipmentRepository) List(ctx context.Context, filter ports.EquipmentFilter) ([]*domain.Equipment, error) {
	query := bson.M{}
	if filter.OwnerID != "" {
		owner, err := parseID(filter.OwnerID)
		if err != nil {
			return nil, err
		}
		query["owner"] = owner
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, translate("list equipment", err, nil, nil)
	}

	var docs []equipmentDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, translate("decode equipment", err, nil, nil)
	}
	out := make([]*domain.Equipment, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

func (r *EquipmentRepository) SerialExists(ctx context.Context, serial, excludeID string) (bool, error) {
	filter := bson.M{"serialNumber": serial}
	if excludeID != "" {
		oid, err := parseID(excludeID)
		if err != nil {
			return false, err
		}
		filter["_id"] = bson.M{"$ne": oid}
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, translate("count equipment", err, nil, nil)
	}
	return n > 0, nil
}

// Update replaces the stored document, which is how a cleared description or
// owner disappears from storage.
func (r *EquipmentRepository) Update(ctx context.Context, e *domain.Equipment) error {
	oid, err := parseID(e.ID)
	if err != nil {
		return err
	}
	doc, err := newEquipmentDocument(e, oid)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return translate("update equipment", err, nil, domain.ErrSerialTaken)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEquipmentNotFound
	}
	return nil
}

func (r *EquipmentRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return translate("delete equipment", err, nil, nil)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEquipmentNotFound
	}
	return nil
}
