// Package basesvc - Test chuyển đổi dữ liệu update sang UpdateData.
package basesvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestToUpdateData_PassThroughPointer(t *testing.T) {
	original := &UpdateData{Set: map[string]interface{}{"title": "x"}}
	update, err := ToUpdateData(original)
	assert.NoError(t, err)
	assert.Same(t, original, update)
}

func TestToUpdateData_ValueToPointer(t *testing.T) {
	update, err := ToUpdateData(UpdateData{Inc: map[string]interface{}{"views": int64(1)}})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), update.Inc["views"])
}

func TestToUpdateData_PlainMapWrappedInSet(t *testing.T) {
	update, err := ToUpdateData(bson.M{"title": "video mới", "description": "mô tả"})
	assert.NoError(t, err)
	assert.Equal(t, "video mới", update.Set["title"])
	assert.Equal(t, "mô tả", update.Set["description"])
	assert.Empty(t, update.Inc)
}

func TestToUpdateData_OperatorMap(t *testing.T) {
	// Map đã chứa sẵn operator: không được wrap thêm một lớp $set
	update, err := ToUpdateData(bson.M{
		"$set": bson.M{"title": "đổi tên"},
		"$inc": bson.M{"likes": int64(1)},
	})
	assert.NoError(t, err)
	assert.Equal(t, "đổi tên", update.Set["title"])
	assert.NotContains(t, update.Set, "$set")

	// bson round-trip decode int64 giữ nguyên kiểu số
	assert.EqualValues(t, 1, update.Inc["likes"])
}

func TestAsOperatorMap(t *testing.T) {
	assert.Nil(t, asOperatorMap(nil))
	assert.Nil(t, asOperatorMap("không phải map"))
	assert.Equal(t, map[string]interface{}{"a": 1}, asOperatorMap(map[string]interface{}{"a": 1}))

	// bson.M phải được chấp nhận (kết quả của bson.Unmarshal)
	m := asOperatorMap(bson.M{"b": 2})
	assert.Equal(t, 2, m["b"])
}
