package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/formotex/inventory-api/internal/core/domain"
	"github.com/formotex/inventory-api/internal/core/ports"
)

const equipmentNS = "inventory.equipment"

func TestEquipmentRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create", func(mt *mtest.T) {
		repo := NewEquipmentRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		e := &domain.Equipment{
			Name:         "ThinkPad",
			SerialNumber: "SN-01",
			Type:         domain.TypeLaptop,
			Status:       domain.StatusAvailable,
			OwnerID:      primitive.NewObjectID().Hex(),
		}
		require.NoError(mt, repo.Create(context.Background(), e))
		assert.NotEmpty(mt, e.ID)
	})

	mt.Run("create duplicate serial", func(mt *mtest.T) {
		repo := NewEquipmentRepository(mt.DB)
		mt.AddMockResponses(duplicateKey())

		err := repo.Create(context.Background(), &domain.Equipment{SerialNumber: "SN-01"})
		assert.ErrorIs(mt, err, domain.ErrSerialTaken)
	})

	mt.Run("create with malformed owner", func(mt *mtest.T) {
		repo := NewEquipmentRepository(mt.DB)

		err := repo.Create(context.Background(), &domain.Equipment{SerialNumber: "SN-01", OwnerID: "bogus"})
		assert.ErrorIs(mt, err, domain.ErrInvalidID)
	})

	mt.Run("find unassigned", func(mt *mtest.T) {
		repo := NewEquipmentRepository(mt.DB)
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, equipmentNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "name", Value: "Router"},
			{Key: "serialNumber", Value: "RT-9"},
			{Key: "type", Value: "network"},
			{Key: "status", Value: "maintenance"},
			{Key: "createdAt", Value: time.Now()},
		}))

		e, err := repo.FindByID(context.Background(), oid.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, domain.TypeNetwork, e.Type)
		assert.Equal(mt, domain.StatusMaintenance, e.Status)
		assert.Empty(mt, e.OwnerID)
	})

	mt.Run("find missing", func(mt *mtest.T) {
		repo := NewEquipmentRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, equipmentNS, mtest.FirstBatch))

		_, err := repo.FindByID(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, domain.ErrEquipmentNotFound)
	})

	mt.Run("list by owner", func(mt *mtest.T) {
		repo := NewEquipmentRepository(mt.DB)
		owner := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, equipmentNS, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "serialNumber", Value: "A"}, {Key: "owner", Value: owner}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "serialNumber", Value: "B"}, {Key: "owner", Value: owner}},
		))

		items, err := repo.List(context.Background(), ports.EquipmentFilter{OwnerID: owner.Hex()})
		require.NoError(mt, err)
		require.Len(mt, items, 2)
		for _, e := range items {
			assert.Equal(mt, owner.Hex(), e.OwnerID)
		}
	})

	mt.Run("serial exists", func(mt *mtest.T) {
		repo := NewEquipmentRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, equipmentNS, mtest.FirstBatch))

		taken, err := repo.SerialExists(context.Background(), "SN-01", "")
		require.NoError(mt, err)
		assert.False(mt, taken)
	})

	mt.Run("update", func(mt *mtest.T) {
		repo := NewEquipmentRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			duplicateKey(),
		)

		e := &domain.Equipment{ID: primitive.NewObjectID().Hex(), SerialNumber: "SN-01"}
		assert.NoError(mt, repo.Update(context.Background(), e))
		assert.ErrorIs(mt, repo.Update(context.Background(), e), domain.ErrEquipmentNotFound)
		assert.ErrorIs(mt, repo.Update(context.Background(), e), domain.ErrSerialTaken)
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		repo := NewEquipmentRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.Delete(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, domain.ErrEquipmentNotFound)
	})
}
