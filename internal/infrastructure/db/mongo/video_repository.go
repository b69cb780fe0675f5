package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vidtube/account-service/internal/core/domain"
)

const videosCollection = "videos"

// VideoRepository reads video records. Writes happen in the upload pipeline,
// which is a separate service.
type VideoRepository struct {
	coll *mongo.Collection
}

func NewVideoRepository(db *mongo.Database) *VideoRepository {
	return &VideoRepository{coll: db.Collection(videosCollection)}
}

type videoDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Owner       primitive.ObjectID `bson:"owner"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	VideoFile   string             `bson:"video_file"`
	Thumbnail   string             `bson:"thumbnail,omitempty"`
	Duration    float64            `bson:"duration,omitempty"`
	Views       int64              `bson:"views"`
	IsPublished bool               `bson:"is_published"`
	CreatedAt   int64              `bson:"created_at"`
}

func (d *videoDoc) toDomain() *domain.Video {
	return &domain.Video{
		ID:           d.ID.Hex(),
		OwnerID:      d.Owner.Hex(),
		Title:        d.Title,
		Description:  d.Description,
		VideoFileURL: d.VideoFile,
		ThumbnailURL: d.Thumbnail,
		DurationSec:  d.Duration,
		Views:        d.Views,
		IsPublished:  d.IsPublished,
		CreatedAt:    unixToTime(d.CreatedAt),
	}
}

func (r *VideoRepository) FindByID(ctx context.Context, id string) (*domain.Video, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrVideoNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc videoDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVideoNotFound
		}
		return nil, fmt.Errorf("find video: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByIDs fetches the given videos in one query and returns them in the
// order of ids. Missing records are omitted.
func (r *VideoRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Video, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return []*domain.Video{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find videos: %w", err)
	}
	var docs []videoDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode videos: %w", err)
	}

	byID := make(map[string]*domain.Video, len(docs))
	for i := range docs {
		v := docs[i].toDomain()
		byID[v.ID] = v
	}

	out := make([]*domain.Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}
