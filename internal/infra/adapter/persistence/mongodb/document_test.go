package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"williampedia/internal/domain/entity"
)

func TestVotesDoc_UnmarshalBSONValue(t *testing.T) {
	tests := []struct {
		name    string
		votes   any
		want    votesDoc
		wantErr bool
	}{
		{"pair", bson.D{{Key: "up", Value: int32(3)}, {Key: "down", Value: int32(2)}}, votesDoc{Up: 3, Down: 2}, false},
		{"pair missing down", bson.D{{Key: "up", Value: int64(9)}}, votesDoc{Up: 9}, false},
		{"legacy int32", int32(5), votesDoc{Up: 5}, false},
		{"legacy int64", int64(6), votesDoc{Up: 6}, false},
		{"legacy double", 4.0, votesDoc{Up: 4}, false},
		{"null", nil, votesDoc{}, false},
		{"string", "many", votesDoc{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := bson.Marshal(bson.D{{Key: "votes", Value: tt.votes}})
			require.NoError(t, err)

			var doc struct {
				Votes votesDoc `bson:"votes"`
			}
			err = bson.Unmarshal(raw, &doc)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.Votes)
		})
	}
}

func TestVotesDoc_EncodesCanonicalShape(t *testing.T) {
	raw, err := bson.Marshal(fromEntity(&entity.Article{Slug: "s", Title: "S", Votes: entity.Votes{Up: 1, Down: 2}}))
	require.NoError(t, err)

	votes := bson.Raw(raw).Lookup("votes")
	assert.Equal(t, int64(1), votes.Document().Lookup("up").Int64())
	assert.Equal(t, int64(2), votes.Document().Lookup("down").Int64())
	assert.True(t, bson.Raw(raw).Lookup("_id").IsZero(), "_id left to the driver")
}
