package dbmongo

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ImageStorage stores uploaded images in GridFS. Documents reference
// uploads only by URL; the raw bytes never enter the document tree.
type ImageStorage struct {
	gridFS *gridfs.Bucket
}

func NewImageStorage(mongoClient *MongoClient) *ImageStorage {
	return &ImageStorage{
		gridFS: mongoClient.GridFS,
	}
}

type ImageFile struct {
	ID         string    `json:"id"`          // GridFS ObjectID hex
	Filename   string    `json:"filename"`    // Original filename
	Size       int64     `json:"size"`        // File size in bytes
	MimeType   string    `json:"mime_type"`   // Full MIME type
	UploadedBy uint64    `json:"uploaded_by"` // User who uploaded
	UploadedAt time.Time `json:"uploaded_at"`
}

func (s *ImageStorage) UploadFile(ctx context.Context, filename, mimeType string, uploaderID uint64, content io.Reader) (*ImageFile, error) {
	metadata := bson.M{
		"mime_type":   mimeType,
		"uploaded_by": uploaderID,
		"uploaded_at": time.Now(),
	}

	opts := options.GridFSUpload().SetMetadata(metadata)
	stream, err := s.gridFS.OpenUploadStream(filename, opts)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	defer stream.Close()

	size, err := io.Copy(stream, content)
	if err != nil {
		return nil, fmt.Errorf("file copy failed: %w", err)
	}

	return &ImageFile{
		ID:         stream.FileID.(primitive.ObjectID).Hex(),
		Filename:   filename,
		Size:       size,
		MimeType:   mimeType,
		UploadedBy: uploaderID,
		UploadedAt: time.Now(),
	}, nil
}

func (s *ImageStorage) DownloadFile(ctx context.Context, fileID string) (io.Reader, *ImageFile, error) {
	objectID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid file ID: %w", err)
	}

	stream, err := s.gridFS.OpenDownloadStream(objectID)
	if err != nil {
		return nil, nil, fmt.Errorf("download failed: %w", err)
	}

	fileInfo := stream.GetFile()
	var metadata bson.M
	if len(fileInfo.Metadata) > 0 {
		_ = bson.Unmarshal(fileInfo.Metadata, &metadata)
	}

	file := &ImageFile{
		ID:       fileID,
		Filename: fileInfo.Name,
		Size:     fileInfo.Length,
	}
	if mime, ok := metadata["mime_type"].(string); ok {
		file.MimeType = mime
	}

	return stream, file, nil
}

func (s *ImageStorage) DeleteFile(ctx context.Context, fileID string) error {
	objectID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return fmt.Errorf("invalid file ID: %w", err)
	}
	return s.gridFS.Delete(objectID)
}
