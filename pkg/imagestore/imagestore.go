package imagestore

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStore keeps entry and profile images in Cloudinary. The stored
// reference is the secure delivery URL returned on upload.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func New(cloudName, apiKey, apiSecret string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, errors.New("initializing cloudinary error: " + err.Error())
	}
	return &CloudinaryStore{
		cld: cld,
	}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, file multipart.File, folder string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       folder,
		ResourceType: "image",
	})
	if err != nil {
		return "", errors.New("uploading image error: " + err.Error())
	}
	return result.SecureURL, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, url string) error {
	publicID, err := PublicIDFromURL(url)
	if err != nil {
		return err
	}
	_, err = s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return errors.New("destroying image error: " + err.Error())
	}
	return nil
}

// PublicIDFromURL recovers the asset public id from a Cloudinary delivery
// URL: everything after the version segment, without the file extension.
func PublicIDFromURL(url string) (string, error) {
	_, after, found := strings.Cut(url, "/upload/")
	if !found {
		return "", errors.New("not a cloudinary delivery url: " + url)
	}
	parts := strings.Split(after, "/")
	if len(parts) > 0 && len(parts[0]) > 1 && parts[0][0] == 'v' && isDigits(parts[0][1:]) {
		parts = parts[1:]
	}
	if len(parts) == 0 {
		return "", errors.New("no public id in url: " + url)
	}
	id := strings.Join(parts, "/")
	if dot := strings.LastIndexByte(id, '.'); dot > 0 {
		id = id[:dot]
	}
	return id, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
