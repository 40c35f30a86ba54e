package helper

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Uploader menyimpan satu file multipart dan mengembalikan URL publiknya.
// Dipisah sebagai tipe supaya service bisa di-test tanpa storage sungguhan.
type Uploader func(folder string, fileHeader *multipart.FileHeader) (string, error)

const maxUploadSize = 5 * 1024 * 1024 // 5MB per dokumen

// UploadFileToSupabase menyimpan file (gambar/PDF) ke Supabase Storage bucket "documents".
func UploadFileToSupabase(folder string, fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("gagal membuka file: %w", err)
	}
	defer src.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, src); err != nil {
		return "", fmt.Errorf("gagal membaca file: %w", err)
	}

	if buf.Len() > maxUploadSize {
		return "", fmt.Errorf("ukuran file melebihi 5MB (%dKB)", buf.Len()/1024)
	}

	filename := GenerateUniqueFilename(folder, fileHeader.Filename)
	contentType := fileHeader.Header.Get("Content-Type")

	if err := uploadToSupabase("documents", filename, contentType, buf); err != nil {
		return "", fmt.Errorf("upload file gagal: %w", err)
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/documents/%s",
		os.Getenv("SUPABASE_PROJECT_URL"),
		url.PathEscape(filename),
	)

	return publicURL, nil
}

func uploadToSupabase(bucket, filename, contentType string, body *bytes.Buffer) error {
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s",
		os.Getenv("SUPABASE_PROJECT_URL"), bucket, url.PathEscape(filename))

	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body.Bytes()))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+os.Getenv("SUPABASE_SECRET_KEY"))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("x-upsert", "true")

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("storage menolak upload (%d): %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// ✅ Buat nama unik: folder/uuid-nama-bersih.ext
func GenerateUniqueFilename(folder, original string) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(filepath.Base(original), ext)
	return fmt.Sprintf("%s/%s-%s%s", folder, uuid.NewString(), sanitizeFilename(base), strings.ToLower(ext))
}

func sanitizeFilename(filename string) string {
	// Hapus karakter selain huruf, angka, titik, dash, underscore
	re := regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)
	return re.ReplaceAllString(filename, "-")
}
