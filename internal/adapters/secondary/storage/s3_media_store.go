package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
	"github.com/google/uuid"

	"github.com/abhinavnt/article-hub/internal/core/domain"
)

type S3Config struct {
	Bucket    string
	Region    string
	PublicURL string // ex: CDN devant le bucket. Vide = URL retournée par S3.
}

// S3MediaStore pousse les images (articles, photos de profil) dans un bucket public.
type S3MediaStore struct {
	bucket    string
	publicURL string
	uploader  s3manageriface.UploaderAPI
}

func NewS3MediaStore(cfg S3Config) (*S3MediaStore, error) {
	// Les credentials viennent de la chaîne standard AWS (env, profil, rôle IAM)
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Region),
	})
	if err != nil {
		return nil, fmt.Errorf("aws session: %w", err)
	}
	return NewS3MediaStoreWithUploader(cfg, s3manager.NewUploader(sess)), nil
}

func NewS3MediaStoreWithUploader(cfg S3Config, uploader s3manageriface.UploaderAPI) *S3MediaStore {
	return &S3MediaStore{
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		uploader:  uploader,
	}
}

// Upload stocke le fichier sous <folder>/<uuid><ext> et retourne son URL publique.
func (s *S3MediaStore) Upload(ctx context.Context, folder string, file domain.MediaFile) (string, error) {
	key := ObjectKey(folder, file.Filename)

	out, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		ACL:         aws.String("public-read"),
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        file.Body,
		ContentType: aws.String(file.ContentType),
	})
	if err != nil {
		return "", domain.NewStorageError("upload media", err)
	}

	if s.publicURL != "" {
		return s.publicURL + "/" + key, nil
	}
	return out.Location, nil
}

// ObjectKey : le nom d'origine n'est jamais réutilisé, seule l'extension est conservée.
func ObjectKey(folder, filename string) string {
	return path.Join(folder, uuid.NewString()+strings.ToLower(path.Ext(filename)))
}
