package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/scribehub/scribehub-api/internal/core/domain"
	"github.com/scribehub/scribehub-api/internal/core/ports"
)

const (
	collectionAuthors = "authors"
	collectionGenres  = "genres"
	collectionBooks   = "books"
)

// getOrCreate resolves a document by exact field match, inserting when no
// match exists. FindOneAndUpdate with $setOnInsert plus the unique index
// created in EnsureIndexes makes the resolution atomic: two concurrent
// identical payloads settle on a single document.
func getOrCreate(ctx context.Context, col *mongo.Collection, filter bson.M) (primitive.ObjectID, bool, error) {
	before := col.FindOne(ctx, filter)

	var existing struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	switch err := before.Decode(&existing); {
	case err == nil:
		return existing.ID, false, nil
	case !errors.Is(err, mongo.ErrNoDocuments):
		return primitive.NilObjectID, false, fmt.Errorf("get-or-create lookup: %w", err)
	}

	res := col.FindOneAndUpdate(ctx,
		filter,
		bson.M{"$setOnInsert": filter},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)
	var created struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := res.Decode(&created); err != nil {
		// A concurrent upsert may win the race; the unique index rejects the
		// duplicate and a plain lookup finds the winner.
		if mongo.IsDuplicateKeyError(err) {
			if lookupErr := col.FindOne(ctx, filter).Decode(&created); lookupErr == nil {
				return created.ID, false, nil
			}
		}
		return primitive.NilObjectID, false, fmt.Errorf("get-or-create upsert: %w", err)
	}
	return created.ID, true, nil
}

// --- Authors ---

type AuthorRepository struct {
	col *mongo.Collection
}

func NewAuthorRepository(db *mongo.Database) *AuthorRepository {
	return &AuthorRepository{col: db.Collection(collectionAuthors)}
}

type mongoAuthor struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
	Bio  string             `bson:"bio"`
}

func (r *AuthorRepository) GetOrCreate(ctx context.Context, name, bio string) (*domain.Author, bool, error) {
	id, created, err := getOrCreate(ctx, r.col, bson.M{"name": name, "bio": bio})
	if err != nil {
		return nil, false, err
	}
	return &domain.Author{ID: id.Hex(), Name: name, Bio: bio}, created, nil
}

func (r *AuthorRepository) FindByID(ctx context.Context, id string) (*domain.Author, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAuthorNotFound
	}

	var ma mongoAuthor
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("find author: %w", err)
	}
	return &domain.Author{ID: ma.ID.Hex(), Name: ma.Name, Bio: ma.Bio}, nil
}

func (r *AuthorRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Author, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}

	out := make([]domain.Author, 0, len(oids))
	if len(oids) == 0 {
		return out, nil
	}

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find authors: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var ma mongoAuthor
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode author: %w", err)
		}
		out = append(out, domain.Author{ID: ma.ID.Hex(), Name: ma.Name, Bio: ma.Bio})
	}
	return out, cur.Err()
}

func (r *AuthorRepository) List(ctx context.Context) ([]*domain.Author, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Author
	for cur.Next(ctx) {
		var ma mongoAuthor
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode author: %w", err)
		}
		out = append(out, &domain.Author{ID: ma.ID.Hex(), Name: ma.Name, Bio: ma.Bio})
	}
	return out, cur.Err()
}

func (r *AuthorRepository) Update(ctx context.Context, a *domain.Author) error {
	oid, err := primitive.ObjectIDFromHex(a.ID)
	if err != nil {
		return domain.ErrAuthorNotFound
	}

	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"name": a.Name, "bio": a.Bio}})
	if err != nil {
		return fmt.Errorf("update author: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAuthorNotFound
	}
	return nil
}

// EnsureIndexes creates the unique (name, bio) index backing get-or-create.
func (r *AuthorRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}, {Key: "bio", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// --- Genres ---

type GenreRepository struct {
	col *mongo.Collection
}

func NewGenreRepository(db *mongo.Database) *GenreRepository {
	return &GenreRepository{col: db.Collection(collectionGenres)}
}

type mongoGenre struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

func (r *GenreRepository) GetOrCreate(ctx context.Context, name string) (*domain.Genre, bool, error) {
	id, created, err := getOrCreate(ctx, r.col, bson.M{"name": name})
	if err != nil {
		return nil, false, err
	}
	return &domain.Genre{ID: id.Hex(), Name: name}, created, nil
}

func (r *GenreRepository) FindByID(ctx context.Context, id string) (*domain.Genre, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrGenreNotFound
	}

	var mg mongoGenre
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGenreNotFound
		}
		return nil, fmt.Errorf("find genre: %w", err)
	}
	return &domain.Genre{ID: mg.ID.Hex(), Name: mg.Name}, nil
}

func (r *GenreRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Genre, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}

	out := make([]domain.Genre, 0, len(oids))
	if len(oids) == 0 {
		return out, nil
	}

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find genres: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var mg mongoGenre
		if err := cur.Decode(&mg); err != nil {
			return nil, fmt.Errorf("decode genre: %w", err)
		}
		out = append(out, domain.Genre{ID: mg.ID.Hex(), Name: mg.Name})
	}
	return out, cur.Err()
}

func (r *GenreRepository) List(ctx context.Context) ([]*domain.Genre, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Genre
	for cur.Next(ctx) {
		var mg mongoGenre
		if err := cur.Decode(&mg); err != nil {
			return nil, fmt.Errorf("decode genre: %w", err)
		}
		out = append(out, &domain.Genre{ID: mg.ID.Hex(), Name: mg.Name})
	}
	return out, cur.Err()
}

func (r *GenreRepository) Update(ctx context.Context, g *domain.Genre) error {
	oid, err := primitive.ObjectIDFromHex(g.ID)
	if err != nil {
		return domain.ErrGenreNotFound
	}

	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"name": g.Name}})
	if err != nil {
		return fmt.Errorf("update genre: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrGenreNotFound
	}
	return nil
}

// EnsureIndexes creates the unique name index backing get-or-create.
func (r *GenreRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// --- Books ---

type BookRepository struct {
	col *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *BookRepository {
	return &BookRepository{col: db.Collection(collectionBooks)}
}

type mongoBook struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Title           string             `bson:"title"`
	Description     string             `bson:"description"`
	PublicationDate time.Time          `bson:"publication_date"`
	AuthorIDs       []string           `bson:"author_ids"`
	GenreIDs        []string           `bson:"genre_ids"`
}

func (mb *mongoBook) toRecord() *ports.BookRecord {
	return &ports.BookRecord{
		ID:              mb.ID.Hex(),
		Title:           mb.Title,
		Description:     mb.Description,
		PublicationDate: mb.PublicationDate.UTC(),
		AuthorIDs:       mb.AuthorIDs,
		GenreIDs:        mb.GenreIDs,
	}
}

func (r *BookRepository) Create(ctx context.Context, b *ports.BookRecord) (*ports.BookRecord, error) {
	doc := mongoBook{
		Title:           b.Title,
		Description:     b.Description,
		PublicationDate: b.PublicationDate,
		AuthorIDs:       b.AuthorIDs,
		GenreIDs:        b.GenreIDs,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}

	created := *b
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *BookRepository) FindByID(ctx context.Context, id string) (*ports.BookRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBookNotFound
	}

	var mb mongoBook
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book: %w", err)
	}
	return mb.toRecord(), nil
}

func (r *BookRepository) List(ctx context.Context) ([]*ports.BookRecord, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer cur.Close(ctx)

	var out []*ports.BookRecord
	for cur.Next(ctx) {
		var mb mongoBook
		if err := cur.Decode(&mb); err != nil {
			return nil, fmt.Errorf("decode book: %w", err)
		}
		out = append(out, mb.toRecord())
	}
	return out, cur.Err()
}

func (r *BookRepository) Update(ctx context.Context, b *ports.BookRecord) error {
	oid, err := primitive.ObjectIDFromHex(b.ID)
	if err != nil {
		return domain.ErrBookNotFound
	}

	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"title":            b.Title,
		"description":      b.Description,
		"publication_date": b.PublicationDate,
		"author_ids":       b.AuthorIDs,
		"genre_ids":        b.GenreIDs,
	}})
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}
