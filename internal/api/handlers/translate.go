package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/fathuur7/translate-backend/internal/pipeline"
)

// TranslateHandler accepts media uploads and hands them to the pipeline.
type TranslateHandler struct {
	service        *pipeline.Service
	workDir        string
	maxUploadBytes int64
}

func NewTranslateHandler(service *pipeline.Service, workDir string, maxUploadBytes int64) *TranslateHandler {
	return &TranslateHandler{service: service, workDir: workDir, maxUploadBytes: maxUploadBytes}
}

// Submit accepts a multipart upload (video_file, target_language) and
// returns a job id immediately; processing happens in the background.
func (h *TranslateHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("video_file")
	if err != nil {
		jsonError(w, "missing video_file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Size == 0 {
		jsonError(w, "uploaded file is empty", http.StatusBadRequest)
		return
	}

	targetLanguage := r.FormValue("target_language")

	inputPath, err := h.saveUpload(file, header.Filename)
	if err != nil {
		jsonError(w, "failed to save upload: "+err.Error(), http.StatusInternalServerError)
		return
	}

	jobID, err := h.service.Submit(inputPath, header.Filename, targetLanguage)
	if err != nil {
		os.Remove(inputPath)
		if errors.Is(err, pipeline.ErrQueueFull) {
			jsonError(w, "server is busy, try again later", http.StatusServiceUnavailable)
			return
		}
		jsonError(w, "failed to submit job: "+err.Error(), http.StatusInternalServerError)
		return
	}

	log.Printf("[api] accepted %s (lang=%s) as job %s", header.Filename, targetLanguage, jobID)

	jsonResponse(w, map[string]string{
		"job_id":  jobID,
		"status":  "pending",
		"message": "Job accepted, poll /api/jobs/{id} for status",
	}, http.StatusAccepted)
}

// saveUpload spools the upload into the work directory; the pipeline owns
// and removes the file once processing ends.
func (h *TranslateHandler) saveUpload(file io.Reader, filename string) (string, error) {
	tmp, err := os.CreateTemp(h.workDir, "upload-*"+filepath.Ext(filename))
	if err != nil {
		return "", err
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, file); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}
