// Package storage uploads survey photos to Cloudinary. It is a boundary
// collaborator: a failed or unconfigured upload yields no URL, and the
// survey write goes ahead without one.
package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type PhotoService struct {
	cld *cloudinary.Cloudinary
}

var service *PhotoService

// Init reads the CLOUDINARY_* credentials and sets up the shared client.
// Missing credentials leave photo uploads disabled rather than failing
// startup — survey text still flows without photos.
func Init() {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		log.Println("Cloudinary credentials not set, photo uploads disabled")
		return
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		log.Println("Failed to initialize Cloudinary, photo uploads disabled: ", err)
		return
	}
	service = &PhotoService{cld: cld}
}

// UploadSurveyPhoto stores the image under a per-user folder and returns
// its public URL, or nil when the upload cannot be completed.
func UploadSurveyPhoto(ctx context.Context, file multipart.File, userID uint) *string {
	if service == nil || file == nil {
		return nil
	}

	contents, err := io.ReadAll(file)
	if err != nil {
		log.Println("Failed to read survey photo: ", err)
		return nil
	}

	result, err := service.cld.Upload.Upload(ctx, contents, uploader.UploadParams{
		Folder:       fmt.Sprintf("mobility_surveys/user_%d", userID),
		ResourceType: "image",
	})
	if err != nil {
		log.Println("Failed to upload survey photo: ", err)
		return nil
	}

	url := result.SecureURL
	return &url
}
