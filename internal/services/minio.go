package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"

	"furnirent_backend/internal/database"
)

func bucket() string {
	b := os.Getenv("MINIO_BUCKET")
	if b == "" {
		b = "furnirent-media"
	}
	return b
}

func publicBase() string {
	base := os.Getenv("MINIO_PUBLIC_URL")
	if base == "" {
		base = fmt.Sprintf("http://%s", os.Getenv("MINIO_ENDPOINT"))
	}
	return strings.TrimSuffix(base, "/")
}

// UploadImage streams an uploaded file straight to the media host and
// returns its public URL. Nothing touches local disk, so there are no
// temporary files to clean up on failure.
func UploadImage(ctx context.Context, folder string, fileHeader *multipart.FileHeader) (string, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	objectName := fmt.Sprintf("%s/%d%s", folder, time.Now().UnixNano(), filepath.Ext(fileHeader.Filename))

	_, err = database.MinioClient.PutObject(ctx, bucket(), objectName, f, fileHeader.Size,
		minio.PutObjectOptions{ContentType: fileHeader.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s/%s", publicBase(), bucket(), objectName), nil
}

// DeleteImage removes a previously uploaded object given the public URL it
// was stored under. URLs that don't point at our bucket are ignored.
func DeleteImage(ctx context.Context, imageURL string) error {
	prefix := fmt.Sprintf("%s/%s/", publicBase(), bucket())
	if !strings.HasPrefix(imageURL, prefix) {
		return nil
	}
	objectName := strings.TrimPrefix(imageURL, prefix)

	return database.MinioClient.RemoveObject(ctx, bucket(), objectName, minio.RemoveObjectOptions{})
}
