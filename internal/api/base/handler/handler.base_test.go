// Package basehdl - Test xử lý filter và options từ query string.
package basehdl

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// newTestHandler tạo handler không cần service để test các hàm xử lý filter thuần logic.
func newTestHandler() *BaseHandler[bson.M, bson.M, bson.M] {
	return NewBaseHandler[bson.M, bson.M, bson.M](nil)
}

func TestNormalizeFilter_IDFieldString(t *testing.T) {
	h := newTestHandler()
	hex := "64f1a2b3c4d5e6f7a8b9c0d1"

	normalized := h.normalizeFilter(map[string]interface{}{
		"ownerId": hex,
		"channel": "MusicIndia",
	})

	// Field kết thúc bằng Id: string hex phải thành ObjectID
	objID, ok := normalized["ownerId"].(primitive.ObjectID)
	if !ok {
		t.Fatalf("ownerId phải được chuyển thành ObjectID, nhận được: %#v", normalized["ownerId"])
	}
	assert.Equal(t, hex, objID.Hex())

	// Field thường giữ nguyên string
	assert.Equal(t, "MusicIndia", normalized["channel"])
}

func TestNormalizeFilter_ExtendedJSONOid(t *testing.T) {
	h := newTestHandler()
	hex := "64f1a2b3c4d5e6f7a8b9c0d1"

	normalized := h.normalizeFilter(map[string]interface{}{
		"owner": map[string]interface{}{"$oid": hex},
	})

	objID, ok := normalized["owner"].(primitive.ObjectID)
	if !ok {
		t.Fatalf("{$oid: ...} phải được chuyển thành ObjectID, nhận được: %#v", normalized["owner"])
	}
	assert.Equal(t, hex, objID.Hex())
}

func TestNormalizeFilter_OperatorWithIDArray(t *testing.T) {
	h := newTestHandler()
	hex1 := "64f1a2b3c4d5e6f7a8b9c0d1"
	hex2 := "64f1a2b3c4d5e6f7a8b9c0d2"

	normalized := h.normalizeFilter(map[string]interface{}{
		"channelId": map[string]interface{}{
			"$in": []interface{}{hex1, hex2},
		},
	})

	inCond := normalized["channelId"].(map[string]interface{})["$in"].([]interface{})
	assert.Len(t, inCond, 2)
	assert.Equal(t, hex1, inCond[0].(primitive.ObjectID).Hex())
	assert.Equal(t, hex2, inCond[1].(primitive.ObjectID).Hex())
}

func TestNormalizeFilter_InvalidHexStays(t *testing.T) {
	h := newTestHandler()

	normalized := h.normalizeFilter(map[string]interface{}{
		"ownerId": "khong-phai-hex",
	})
	assert.Equal(t, "khong-phai-hex", normalized["ownerId"])
}

func TestValidateFilter_DeniedField(t *testing.T) {
	h := newTestHandler()

	err := h.validateFilter(map[string]interface{}{
		"passwordHash": "x",
	})
	assert.Error(t, err, "field nhạy cảm phải bị chặn trong filter")
}

func TestValidateFilter_DisallowedOperator(t *testing.T) {
	h := newTestHandler()

	err := h.validateFilter(map[string]interface{}{
		"title": map[string]interface{}{"$where": "this.x == 1"},
	})
	assert.Error(t, err, "$where không nằm trong danh sách toán tử cho phép")
}

func TestValidateFilter_AllowedOperator(t *testing.T) {
	h := newTestHandler()

	err := h.validateFilter(map[string]interface{}{
		"views": map[string]interface{}{"$gte": float64(100)},
	})
	assert.NoError(t, err)
}

func TestValidateFilter_TooManyFields(t *testing.T) {
	h := newTestHandler()

	filter := map[string]interface{}{}
	for i := 0; i < 11; i++ {
		filter[fmt.Sprintf("field%d", i)] = i
	}
	assert.Error(t, h.validateFilter(filter))
}

func TestParseSortWithOrder_PreservesKeyOrder(t *testing.T) {
	// json.Unmarshal vào map sẽ mất thứ tự key, parseSortWithOrder phải giữ đúng
	sortBson := parseSortWithOrder(`{"sort": {"views": -1, "likes": -1, "createdAt": 1}}`)

	expected := bson.D{
		{Key: "views", Value: -1},
		{Key: "likes", Value: -1},
		{Key: "createdAt", Value: 1},
	}
	assert.Equal(t, expected, sortBson)
}

func TestParseSortWithOrder_RejectsInvalidValues(t *testing.T) {
	// Chỉ chấp nhận 1 hoặc -1, các giá trị khác bị bỏ qua
	sortBson := parseSortWithOrder(`{"sort": {"views": 0, "likes": 2, "createdAt": -1}}`)

	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, sortBson)
}

func TestParseSortWithOrder_NoSort(t *testing.T) {
	assert.Empty(t, parseSortWithOrder(`{"limit": 10}`))
	assert.Empty(t, parseSortWithOrder(`not-json`))
}
