package imagenorm

import (
	"context"
	"log"
	"net/http"
	"time"

	"cakepoint/utils"

	"github.com/julienschmidt/httprouter"
)

const maxUploadBytes = 20 << 20

// UploadImage accepts a multipart upload under the "image" field and
// responds with the normalized data URI ready to be stored on a category
// or product.
func UploadImage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart payload")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing image file")
		return
	}
	defer file.Close()

	if !utils.ValidateImageFileType(w, header) {
		return
	}

	res, err := Normalize(ctx, file)
	if err == ErrDecode {
		utils.RespondWithError(w, http.StatusBadRequest, "Unsupported or corrupt image")
		return
	}
	if err != nil {
		log.Println("image normalize error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to process image")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, res)
}
