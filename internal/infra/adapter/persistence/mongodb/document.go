package mongodb

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"williampedia/internal/domain/entity"
)

// articleDoc is the stored shape of an article.
type articleDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Slug      string             `bson:"slug"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	ImageURL  string             `bson:"image_url,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	Votes     votesDoc           `bson:"votes"`
}

// votesDoc accepts both the canonical {up, down} sub-document and the
// legacy scalar counter, which is read as {up: N, down: 0}.
type votesDoc struct {
	Up   int64 `bson:"up"`
	Down int64 `bson:"down"`
}

func (v *votesDoc) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeInt32:
		*v = votesDoc{Up: int64(raw.Int32())}
	case bson.TypeInt64:
		*v = votesDoc{Up: raw.Int64()}
	case bson.TypeDouble:
		*v = votesDoc{Up: int64(raw.Double())}
	case bson.TypeEmbeddedDocument:
		var pair struct {
			Up   int64 `bson:"up"`
			Down int64 `bson:"down"`
		}
		if err := raw.Unmarshal(&pair); err != nil {
			return fmt.Errorf("votes: %w", err)
		}
		*v = votesDoc{Up: pair.Up, Down: pair.Down}
	case bson.TypeNull, bson.TypeUndefined:
		*v = votesDoc{}
	default:
		return fmt.Errorf("votes: unsupported BSON type %s", t)
	}
	return nil
}

func (d *articleDoc) toEntity() *entity.Article {
	return &entity.Article{
		ID:        d.ID.Hex(),
		Slug:      d.Slug,
		Title:     d.Title,
		Content:   d.Content,
		ImageURL:  d.ImageURL,
		CreatedAt: d.CreatedAt.UTC(),
		Votes:     entity.Votes{Up: d.Votes.Up, Down: d.Votes.Down},
	}
}

func (d *articleDoc) toRef() entity.ArticleRef {
	return entity.ArticleRef{ID: d.ID.Hex(), Slug: d.Slug, Title: d.Title, CreatedAt: d.CreatedAt.UTC()}
}

func fromEntity(a *entity.Article) articleDoc {
	return articleDoc{
		Slug:      a.Slug,
		Title:     a.Title,
		Content:   a.Content,
		ImageURL:  a.ImageURL,
		CreatedAt: a.CreatedAt.UTC(),
		Votes:     votesDoc{Up: a.Votes.Up, Down: a.Votes.Down},
	}
}
