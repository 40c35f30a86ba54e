package service

import "errors"

// Taksonomi kegagalan yang dilihat caller. Controller memetakan
// sentinel ini ke HTTP status; jangan bikin string error baru di tempat lain.
var (
	ErrValidation         = errors.New("data kontak pemesan tidak lengkap")
	ErrOrderCreate        = errors.New("gagal membuat order")
	ErrVerificationSubmit = errors.New("gagal mengirim dokumen verifikasi") // rollback sudah dijalankan
	ErrNotFound           = errors.New("order tidak ditemukan")
	ErrConflict           = errors.New("data sudah berubah, muat ulang dan coba lagi")
)
