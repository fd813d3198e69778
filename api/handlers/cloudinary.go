package handlers

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/config"
)

// CloudinaryHandler handles Cloudinary related requests for the patient
// photo captured at step 1 of the admission wizard
type CloudinaryHandler struct{}

// GenerateSignature generates a signature for direct Cloudinary uploads
func (c CloudinaryHandler) GenerateSignature(w http.ResponseWriter, r *http.Request) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	uploadPreset := os.Getenv("CLOUDINARY_UPLOAD_PRESET")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	// Create the signature
	h := hmac.New(sha1.New, []byte(apiSecret))
	h.Write([]byte("timestamp=" + timestamp + "&upload_preset=" + uploadPreset))
	signature := hex.EncodeToString(h.Sum(nil))

	// Respond with the timestamp and signature
	response := map[string]string{
		"timestamp": timestamp,
		"signature": signature,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

type uploadPhotoRequest struct {
	// Data is a data URI or remote URL Cloudinary can fetch
	Data string `json:"data"`
}

// UploadPhoto uploads a patient photo server-side and returns the secure
// URL to store as the draft's photo reference
func (c CloudinaryHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	var req uploadPhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Data == "" {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	cld, err := cloudinary.NewFromURL(os.Getenv("CLOUDINARY_URL"))
	if err != nil {
		config.ErrorStatus("failed to init cloudinary", http.StatusInternalServerError, w, err)
		return
	}
	resp, err := cld.Upload.Upload(r.Context(), req.Data, uploader.UploadParams{
		Folder: "patients",
	})
	if err != nil {
		config.ErrorStatus("failed to upload photo", http.StatusBadGateway, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"photoUrl": resp.SecureURL})
}
