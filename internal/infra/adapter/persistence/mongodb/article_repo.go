// Package mongodb implements the article store on MongoDB. Documents keep
// the field names of the existing "articles" collection.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"williampedia/internal/domain/entity"
	"williampedia/internal/infra/adapter/persistence/storeerr"
	"williampedia/internal/repository"
)

var (
	newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}
	oldestFirst = bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}
	refFields   = bson.D{{Key: "slug", Value: 1}, {Key: "title", Value: 1}, {Key: "createdAt", Value: 1}}
)

type ArticleRepo struct {
	coll *mongo.Collection
}

func NewArticleRepo(coll *mongo.Collection) *ArticleRepo {
	return &ArticleRepo{coll: coll}
}

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

// EnsureIndexes creates the unique slug index and the ordering index.
func (repo *ArticleRepo) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true).SetName("slug_unique")},
		{Keys: newestFirst, Options: options.Index().SetName("createdAt_id")},
		{Keys: bson.D{{Key: "title", Value: 1}}, Options: options.Index().SetName("title")},
	}
	if _, err := repo.coll.Indexes().CreateMany(ctx, models); err != nil {
		return wrap("EnsureIndexes", err)
	}
	return nil
}

func (repo *ArticleRepo) findOne(ctx context.Context, op string, filter any, opts ...*options.FindOneOptions) (*articleDoc, error) {
	var doc articleDoc
	err := repo.coll.FindOne(ctx, filter, opts...).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(op, err)
	}
	return &doc, nil
}

func (repo *ArticleRepo) findArticle(ctx context.Context, op string, filter any, opts ...*options.FindOneOptions) (*entity.Article, error) {
	doc, err := repo.findOne(ctx, op, filter, opts...)
	if doc == nil || err != nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

func (repo *ArticleRepo) findRef(ctx context.Context, op string, filter any, sort bson.D) (*entity.ArticleRef, error) {
	doc, err := repo.findOne(ctx, op, filter, options.FindOne().SetSort(sort).SetProjection(refFields))
	if doc == nil || err != nil {
		return nil, err
	}
	ref := doc.toRef()
	return &ref, nil
}

func (repo *ArticleRepo) findRefs(ctx context.Context, op string, filter any, opts *options.FindOptions) ([]entity.ArticleRef, error) {
	cur, err := repo.coll.Find(ctx, filter, opts.SetProjection(refFields))
	if err != nil {
		return nil, wrap(op, err)
	}
	defer func() { _ = cur.Close(ctx) }()

	refs := make([]entity.ArticleRef, 0)
	for cur.Next(ctx) {
		var doc articleDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, wrap(op+": Decode", err)
		}
		refs = append(refs, doc.toRef())
	}
	if err := cur.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return refs, nil
}

func parseID(op, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s: id %q: %w", op, id, entity.ErrInvalidInput)
	}
	return oid, nil
}

func (repo *ArticleRepo) GetBySlug(ctx context.Context, slug string) (*entity.Article, error) {
	return repo.findArticle(ctx, "GetBySlug", bson.D{{Key: "slug", Value: slug}})
}

func (repo *ArticleRepo) GetByID(ctx context.Context, id string) (*entity.Article, error) {
	oid, err := parseID("GetByID", id)
	if err != nil {
		return nil, err
	}
	return repo.findArticle(ctx, "GetByID", bson.D{{Key: "_id", Value: oid}})
}

// beyond matches documents strictly after (op "$gt") or before ("$lt") pos
// in (createdAt, _id) order.
func beyond(cmpOp string, pos entity.Position, oid primitive.ObjectID) bson.D {
	return bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "createdAt", Value: bson.D{{Key: cmpOp, Value: pos.CreatedAt}}}},
		bson.D{
			{Key: "createdAt", Value: pos.CreatedAt},
			{Key: "_id", Value: bson.D{{Key: cmpOp, Value: oid}}},
		},
	}}}
}

func (repo *ArticleRepo) Previous(ctx context.Context, pos entity.Position) (*entity.ArticleRef, error) {
	oid, err := parseID("Previous", pos.ID)
	if err != nil {
		return nil, err
	}
	return repo.findRef(ctx, "Previous", beyond("$lt", pos, oid), newestFirst)
}

func (repo *ArticleRepo) Next(ctx context.Context, pos entity.Position) (*entity.ArticleRef, error) {
	oid, err := parseID("Next", pos.ID)
	if err != nil {
		return nil, err
	}
	return repo.findRef(ctx, "Next", beyond("$gt", pos, oid), oldestFirst)
}

func (repo *ArticleRepo) ListNewest(ctx context.Context, offset, limit int) ([]entity.ArticleRef, error) {
	opts := options.Find().SetSort(newestFirst).SetSkip(int64(offset)).SetLimit(int64(limit))
	return repo.findRefs(ctx, "ListNewest", bson.D{}, opts)
}

func (repo *ArticleRepo) Count(ctx context.Context) (int64, error) {
	n, err := repo.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, wrap("Count", err)
	}
	return n, nil
}

// SearchTitles quotes query so regex metacharacters match literally.
func (repo *ArticleRepo) SearchTitles(ctx context.Context, query string, limit int) ([]entity.ArticleRef, error) {
	filter := bson.D{{Key: "title", Value: primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}}}
	opts := options.Find().SetSort(newestFirst).SetLimit(int64(limit))
	return repo.findRefs(ctx, "SearchTitles", filter, opts)
}

func (repo *ArticleRepo) Latest(ctx context.Context) (*entity.Article, error) {
	return repo.findArticle(ctx, "Latest", bson.D{}, options.FindOne().SetSort(newestFirst))
}

// At skips offset documents in natural order.
func (repo *ArticleRepo) At(ctx context.Context, offset int64) (*entity.Article, error) {
	if offset < 0 {
		return nil, fmt.Errorf("At: negative offset %d: %w", offset, entity.ErrInvalidInput)
	}
	return repo.findArticle(ctx, "At", bson.D{}, options.FindOne().SetSkip(offset))
}

func (repo *ArticleRepo) Sample(ctx context.Context, size int) ([]*entity.Article, error) {
	pipeline := mongo.Pipeline{{{Key: "$sample", Value: bson.D{{Key: "size", Value: size}}}}}
	cur, err := repo.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, wrap("Sample", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	articles := make([]*entity.Article, 0, size)
	for cur.Next(ctx) {
		var doc articleDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, wrap("Sample: Decode", err)
		}
		articles = append(articles, doc.toEntity())
	}
	if err := cur.Err(); err != nil {
		return nil, wrap("Sample", err)
	}
	return articles, nil
}

// tally evaluates to the current up or down count of either vote shape.
func tally(field string) bson.D {
	scalar := any("$votes")
	if field == "down" {
		scalar = 0
	}
	return bson.D{{Key: "$cond", Value: bson.A{
		bson.D{{Key: "$isNumber", Value: "$votes"}},
		bson.D{{Key: "$toLong", Value: scalar}},
		bson.D{{Key: "$toLong", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$votes." + field, 0}}}}},
	}}}
}

// IncrementVote runs as a single pipeline update so the increment is atomic
// and a legacy scalar counter is rewritten to {up, down} on the way.
func (repo *ArticleRepo) IncrementVote(ctx context.Context, slug string, dir entity.VoteDirection) (bool, error) {
	up, down := tally("up"), tally("down")
	switch dir {
	case entity.VoteUp:
		up = bson.D{{Key: "$add", Value: bson.A{up, 1}}}
	case entity.VoteDown:
		down = bson.D{{Key: "$add", Value: bson.A{down, 1}}}
	default:
		return false, fmt.Errorf("IncrementVote: direction %q: %w", dir, entity.ErrInvalidInput)
	}

	update := mongo.Pipeline{{{Key: "$set", Value: bson.D{{Key: "votes", Value: bson.D{
		{Key: "up", Value: up},
		{Key: "down", Value: down},
	}}}}}}
	res, err := repo.coll.UpdateOne(ctx, bson.D{{Key: "slug", Value: slug}}, update)
	if err != nil {
		return false, wrap("IncrementVote", err)
	}
	return res.MatchedCount > 0, nil
}

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	res, err := repo.coll.InsertOne(ctx, fromEntity(article))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return storeerr.Conflict("Create", err)
		}
		return wrap("Create", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		article.ID = oid.Hex()
	}
	return nil
}

// NormalizeVotes rewrites every legacy scalar counter into {up, down}.
func (repo *ArticleRepo) NormalizeVotes(ctx context.Context) (int64, error) {
	filter := bson.D{{Key: "votes", Value: bson.D{{Key: "$type", Value: "number"}}}}
	update := mongo.Pipeline{{{Key: "$set", Value: bson.D{{Key: "votes", Value: bson.D{
		{Key: "up", Value: bson.D{{Key: "$toLong", Value: "$votes"}}},
		{Key: "down", Value: int64(0)},
	}}}}}}
	res, err := repo.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, wrap("NormalizeVotes", err)
	}
	return res.ModifiedCount, nil
}

func (repo *ArticleRepo) Ping(ctx context.Context) error {
	if err := repo.coll.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return wrap("Ping", err)
	}
	return nil
}
