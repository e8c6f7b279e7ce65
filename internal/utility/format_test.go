package utility

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestP2Int64(t *testing.T) {
	// json.Number đến từ decoder.UseNumber() trong ParseRequestBody
	assert.Equal(t, int64(42), P2Int64(json.Number("42")))
	// string đến từ query param (page, limit)
	assert.Equal(t, int64(7), P2Int64("7"))
	assert.Equal(t, int64(3), P2Int64(float64(3)))
	assert.Equal(t, int64(5), P2Int64(5))
	assert.Equal(t, int64(9), P2Int64(int64(9)))
	// Giá trị không parse được trả về 0
	assert.Equal(t, int64(0), P2Int64("abc"))
	assert.Equal(t, int64(0), P2Int64(nil))
}

func TestP2Float64(t *testing.T) {
	assert.Equal(t, 1.5, P2Float64(json.Number("1.5")))
	assert.Equal(t, 2.5, P2Float64("2.5"))
	assert.Equal(t, 3.0, P2Float64(float64(3)))
	assert.Equal(t, 0.0, P2Float64("xyz"))
}

func TestString2ObjectID(t *testing.T) {
	hex := "64f1a2b3c4d5e6f7a8b9c0d1"
	objID := String2ObjectID(hex)
	assert.Equal(t, hex, objID.Hex())

	// Chuỗi không hợp lệ trả về NilObjectID
	assert.Equal(t, primitive.NilObjectID, String2ObjectID("khong-hop-le"))
}

func TestStringArray2ObjectIDArray(t *testing.T) {
	ids := StringArray2ObjectIDArray([]string{"64f1a2b3c4d5e6f7a8b9c0d1", "64f1a2b3c4d5e6f7a8b9c0d2"})
	assert.Len(t, ids, 2)
	assert.Equal(t, "64f1a2b3c4d5e6f7a8b9c0d2", ids[1].Hex())
}
