package mongo

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/talenthub/talenthub-api/internal/core/domain"
	"github.com/talenthub/talenthub-api/internal/core/ports"
)

const (
	mediaBucket = "media"
	// MediaPathPrefix is the public route under which stored files are served.
	MediaPathPrefix = "/api/media/"

	defaultMediaMaxBytes = 5 << 20
)

// servableImageTypes are the raster formats browsers render without running
// script. Anything else, SVG included, is refused on upload.
var servableImageTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/gif":  {},
	"image/webp": {},
}

func servableImage(contentType string) bool {
	_, ok := servableImageTypes[strings.ToLower(contentType)]
	return ok
}

// MediaStore keeps uploaded images in a GridFS bucket.
type MediaStore struct {
	db       *mongo.Database
	maxBytes int64
}

func NewMediaStore(db *mongo.Database, maxBytes int64) *MediaStore {
	if maxBytes <= 0 {
		maxBytes = defaultMediaMaxBytes
	}
	return &MediaStore{db: db, maxBytes: maxBytes}
}

// Upload stores a data URL payload and returns its public path. Absolute
// http(s) URLs are already hosted elsewhere and are returned unchanged.
func (s *MediaStore) Upload(ctx context.Context, payload string) (string, error) {
	payload = strings.TrimSpace(payload)
	if strings.HasPrefix(payload, "http://") || strings.HasPrefix(payload, "https://") {
		return payload, nil
	}

	contentType, data, err := parseDataURL(payload, s.maxBytes)
	if err != nil {
		return "", err
	}

	bucket, err := s.bucket(ctx)
	if err != nil {
		return "", err
	}
	opts := options.GridFSUpload().SetMetadata(bson.D{{Key: "contentType", Value: contentType}})
	id, err := bucket.UploadFromStream(uuid.NewString(), bytes.NewReader(data), opts)
	if err != nil {
		return "", fmt.Errorf("upload media: %w", err)
	}
	return MediaPathPrefix + id.Hex(), nil
}

// Open returns a reader over the stored file. The caller closes Body.
func (s *MediaStore) Open(ctx context.Context, id string) (*ports.Media, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrMediaNotFound
	}

	bucket, err := s.bucket(ctx)
	if err != nil {
		return nil, err
	}
	stream, err := bucket.OpenDownloadStream(oid)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, domain.ErrMediaNotFound
		}
		return nil, fmt.Errorf("open media: %w", err)
	}

	file := stream.GetFile()
	contentType := "application/octet-stream"
	if file.Metadata != nil {
		if v, ok := file.Metadata.Lookup("contentType").StringValueOK(); ok && servableImage(v) {
			contentType = v
		}
	}
	return &ports.Media{ContentType: contentType, Size: file.Length, Body: stream}, nil
}

// bucket returns a fresh bucket handle bounded by ctx's deadline. GridFS
// deadlines are per-bucket state, so handles are not shared across requests.
func (s *MediaStore) bucket(ctx context.Context) (*gridfs.Bucket, error) {
	bucket, err := gridfs.NewBucket(s.db, options.GridFSBucket().SetName(mediaBucket))
	if err != nil {
		return nil, fmt.Errorf("media bucket: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := bucket.SetReadDeadline(deadline); err != nil {
			return nil, err
		}
		if err := bucket.SetWriteDeadline(deadline); err != nil {
			return nil, err
		}
	}
	return bucket, nil
}

// parseDataURL decodes a base64 image data URL of the form
// data:<mime>;base64,<data>. Only servableImageTypes are accepted.
func parseDataURL(payload string, maxBytes int64) (string, []byte, error) {
	rest, ok := strings.CutPrefix(payload, "data:")
	if !ok {
		return "", nil, domain.ErrInvalidImage
	}
	meta, encoded, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, domain.ErrInvalidImage
	}
	contentType, ok := strings.CutSuffix(meta, ";base64")
	if !ok || !servableImage(contentType) {
		return "", nil, domain.ErrInvalidImage
	}

	if int64(base64.StdEncoding.DecodedLen(len(encoded))) > maxBytes+2 {
		return "", nil, fmt.Errorf("%w: exceeds %d bytes", domain.ErrInvalidImage, maxBytes)
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(data) == 0 {
		return "", nil, domain.ErrInvalidImage
	}
	if int64(len(data)) > maxBytes {
		return "", nil, fmt.Errorf("%w: exceeds %d bytes", domain.ErrInvalidImage, maxBytes)
	}
	return strings.ToLower(contentType), data, nil
}
