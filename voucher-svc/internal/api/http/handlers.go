package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"wedding-voucher/voucher-svc/internal/service"
)

const (
	minScale     = 5
	maxScale     = 20
	maxLogoBytes = 2048 << 10
)

type Handler struct {
	QR          service.QRRenderer
	Store       service.ImageStore
	Dispatcher  service.DispatcherInterface
	Log         zerolog.Logger
	// FilesPrefix and FilesDir expose stored QR images; the file route is off unless both are set.
	FilesPrefix string
	FilesDir    string
}

func NewHandler(qr service.QRRenderer, store service.ImageStore, dispatcher service.DispatcherInterface, log zerolog.Logger) *Handler {
	return &Handler{
		QR:         qr,
		Store:      store,
		Dispatcher: dispatcher,
		Log:        log.With().Str("component", "http").Logger(),
	}
}

type response struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/qr/preview", h.previewQR).Methods("GET")
	r.HandleFunc("/qr/download", h.downloadQR).Methods("GET")

	admin := r.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/voucher/generate-qr", h.generateQR).Methods("GET")
	admin.HandleFunc("/voucher/custom-qr", h.customQR).Methods("POST")
	admin.HandleFunc("/voucher/qr-with-logo", h.qrWithLogo).Methods("POST")
	admin.HandleFunc("/voucher/delete-qr", h.deleteQR).Methods("DELETE")
	admin.HandleFunc("/guests/{id}/voucher", h.issueVoucher).Methods("POST")
	admin.HandleFunc("/guests/{id}/voucher/redeliver", h.redeliverVoucher).Methods("POST")

	if h.FilesDir != "" && h.FilesPrefix != "" {
		prefix := "/" + strings.Trim(h.FilesPrefix, "/") + "/"
		files := http.StripPrefix(prefix, http.FileServer(http.Dir(h.FilesDir)))
		r.PathPrefix(prefix).Handler(noDirListing(files)).Methods("GET", "HEAD")
	}
}

func noDirListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "voucher-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) previewQR(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Kode voucher tidak valid", http.StatusBadRequest)
		return
	}

	img, err := h.QR.Render(code, service.VoucherRenderOptions)
	if err != nil {
		h.Log.Error().Err(err).Str("code", code).Msg("failed to render preview")
		http.Error(w, "Gagal generate QR Code: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writePNG(w, img.PNG)
}

func (h *Handler) downloadQR(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		writeJSON(w, http.StatusBadRequest, response{Message: "Kode voucher tidak valid"})
		return
	}

	img, err := h.QR.Render(code, service.VoucherRenderOptions)
	if err != nil {
		h.Log.Error().Err(err).Str("code", code).Msg("failed to render download")
		writeJSON(w, http.StatusInternalServerError, response{Message: "Gagal download QR Code", Error: err.Error()})
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+downloadName(code)+`"`)
	writePNG(w, img.PNG)
}

func (h *Handler) generateQR(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		code = service.VoucherCodePrefix + uniqueSuffix()
	}

	img, err := h.QR.Render(code, service.VoucherRenderOptions)
	if err != nil {
		h.Log.Error().Err(err).Str("code", code).Msg("failed to render qr")
		writeJSON(w, http.StatusInternalServerError, response{Message: "Gagal membuat QR Code", Error: err.Error()})
		return
	}
	path, err := h.Store.SavePNG(img.PNG)
	if err != nil {
		h.Log.Error().Err(err).Str("code", code).Msg("failed to store qr")
		writeJSON(w, http.StatusInternalServerError, response{Message: "Gagal membuat QR Code", Error: err.Error()})
		return
	}

	h.Log.Info().Str("code", code).Str("path", path).Msg("qr code stored")
	writeJSON(w, http.StatusOK, response{
		Success: true,
		Message: "QR Code berhasil dibuat",
		Data: map[string]interface{}{
			"code":   code,
			"path":   path,
			"url":    h.Store.URL(path),
			"base64": img.DataURI(),
		},
	})
}

type customQRRequest struct {
	Code     string `json:"code"`
	Scale    *int   `json:"scale"`
	ECCLevel string `json:"ecc_level"`
}

func (h *Handler) customQR(w http.ResponseWriter, r *http.Request) {
	req, errs := decodeCustomQR(r)
	if len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, response{Message: "Data tidak valid", Errors: errs})
		return
	}

	scale := service.VoucherRenderOptions.Scale
	if req.Scale != nil {
		scale = *req.Scale
	}
	level := service.ECCLow
	if req.ECCLevel != "" {
		level = service.ECCLevel(req.ECCLevel)
	}

	opts := service.VoucherRenderOptions
	opts.Scale = scale
	opts.ECCLevel = level
	img, err := h.QR.Render(req.Code, opts)
	if err != nil {
		h.Log.Error().Err(err).Str("code", req.Code).Msg("failed to render custom qr")
		writeJSON(w, http.StatusInternalServerError, response{Message: "Gagal membuat QR Code", Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, response{
		Success: true,
		Data: map[string]interface{}{
			"code":   req.Code,
			"base64": img.DataURI(),
			"options": map[string]interface{}{
				"scale":     scale,
				"ecc_level": string(level),
			},
		},
	})
}

// decodeCustomQR accepts a JSON body or form values and returns per-field validation errors.
func decodeCustomQR(r *http.Request) (customQRRequest, map[string]string) {
	var req customQRRequest
	errs := map[string]string{}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errs["body"] = "invalid json"
			return req, errs
		}
	} else {
		req.Code = r.FormValue("code")
		req.ECCLevel = r.FormValue("ecc_level")
		if raw := r.FormValue("scale"); raw != "" {
			scale, err := strconv.Atoi(raw)
			if err != nil {
				errs["scale"] = "scale must be an integer"
			} else {
				req.Scale = &scale
			}
		}
	}

	if strings.TrimSpace(req.Code) == "" {
		errs["code"] = "code is required"
	}
	if req.Scale != nil && (*req.Scale < minScale || *req.Scale > maxScale) {
		errs["scale"] = fmt.Sprintf("scale must be between %d and %d", minScale, maxScale)
	}
	if req.ECCLevel != "" {
		level, err := service.ParseECCLevel(req.ECCLevel)
		if err != nil {
			errs["ecc_level"] = "ecc_level must be one of L, M, Q, H"
		} else {
			req.ECCLevel = string(level)
		}
	}
	return req, errs
}

func (h *Handler) qrWithLogo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxLogoBytes + 1<<20); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, response{
			Message: "Data tidak valid",
			Errors:  map[string]string{"logo": "logo is required"},
		})
		return
	}

	errs := map[string]string{}
	code := r.FormValue("code")
	if strings.TrimSpace(code) == "" {
		errs["code"] = "code is required"
	}
	logo, err := readLogo(r)
	if err != nil {
		errs["logo"] = err.Error()
	}
	if len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, response{Message: "Data tidak valid", Errors: errs})
		return
	}

	img, err := h.QR.RenderWithLogo(code, logo)
	if err != nil {
		h.Log.Error().Err(err).Str("code", code).Msg("failed to render qr with logo")
		writeJSON(w, http.StatusInternalServerError, response{Message: "Gagal membuat QR Code dengan logo", Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, response{
		Success: true,
		Data: map[string]interface{}{
			"code":   code,
			"base64": img.DataURI(),
		},
	})
}

func readLogo(r *http.Request) ([]byte, error) {
	file, header, err := r.FormFile("logo")
	if err != nil {
		return nil, errors.New("logo is required")
	}
	defer file.Close()

	if header.Size > maxLogoBytes {
		return nil, fmt.Errorf("logo must not be larger than %d kilobytes", maxLogoBytes>>10)
	}
	data, err := io.ReadAll(io.LimitReader(file, maxLogoBytes+1))
	if err != nil {
		return nil, errors.New("logo could not be read")
	}
	if len(data) > maxLogoBytes {
		return nil, fmt.Errorf("logo must not be larger than %d kilobytes", maxLogoBytes>>10)
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, errors.New("logo must be an image")
	}
	return data, nil
}

func (h *Handler) deleteQR(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeJSON(w, http.StatusBadRequest, response{Message: "Path tidak valid"})
		return
	}

	deleted, err := h.Store.Delete(path)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrInvalidPath) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, response{Message: "Gagal menghapus QR Code", Error: err.Error()})
		return
	}

	message := "QR Code tidak ditemukan"
	if deleted {
		message = "QR Code berhasil dihapus"
	}
	writeJSON(w, http.StatusOK, response{Success: deleted, Message: message})
}

func (h *Handler) issueVoucher(w http.ResponseWriter, r *http.Request) {
	guestID, ok := guestIDFrom(w, r)
	if !ok {
		return
	}

	queued, err := h.Dispatcher.DispatchIssue(r.Context(), guestID)
	if err != nil {
		h.Log.Error().Err(err).Int64("guest_id", guestID).Msg("failed to dispatch voucher")
		writeJSON(w, http.StatusInternalServerError, response{Message: "Gagal memproses voucher", Error: err.Error()})
		return
	}

	status, message := http.StatusAccepted, "Voucher sedang diproses"
	if !queued {
		status, message = http.StatusOK, "Voucher sudah dalam antrean"
	}
	writeJSON(w, status, response{
		Success: true,
		Message: message,
		Data:    map[string]interface{}{"guest_id": guestID, "queued": queued},
	})
}

func (h *Handler) redeliverVoucher(w http.ResponseWriter, r *http.Request) {
	guestID, ok := guestIDFrom(w, r)
	if !ok {
		return
	}

	if err := h.Dispatcher.DispatchRedeliver(r.Context(), guestID); err != nil {
		h.Log.Error().Err(err).Int64("guest_id", guestID).Msg("failed to dispatch redelivery")
		writeJSON(w, http.StatusInternalServerError, response{Message: "Gagal mengirim ulang voucher", Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusAccepted, response{
		Success: true,
		Message: "Voucher akan dikirim ulang",
		Data:    map[string]interface{}{"guest_id": guestID, "queued": true},
	})
}

func guestIDFrom(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, response{Message: "ID tamu tidak valid"})
		return 0, false
	}
	return id, true
}

func downloadName(code string) string {
	safe := strings.Map(func(r rune) rune {
		if r == '"' || r == '\\' || r < 0x20 || r == 0x7f {
			return '_'
		}
		return r
	}, code)
	return "qr_" + safe + ".png"
}

func uniqueSuffix() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:13])
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writePNG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
