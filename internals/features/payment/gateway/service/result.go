package service

import (
	"context"
	"errors"
	"sync"
)

// ResultKind: empat hasil terminal sebuah invokasi widget, saling eksklusif.
type ResultKind string

const (
	ResultSuccess ResultKind = "success"
	ResultPending ResultKind = "pending"
	ResultError   ResultKind = "error"
	ResultClosed  ResultKind = "closed" // user menutup widget tanpa menyelesaikan
)

const (
	// SubReason saat settlement/capture masih ditinjau bank (fraud challenge)
	SubReasonBankReview = "pending_bank_review"
	// SubReason saat transaksi kedaluwarsa di sisi gateway
	SubReasonExpired = "expired"
)

// Result menormalkan callback gateway jadi satu nilai ber-tag.
type Result struct {
	Kind          ResultKind
	TransactionID string
	PaymentType   string
	RawStatus     string
	FraudStatus   string
	SubReason     string
}

// ResolveNotification memetakan transaction_status + fraud_status Midtrans
// ke Result internal. Tabel pemetaan terpusat di sini; jangan bandingkan
// string status di tempat lain.
func ResolveNotification(transactionStatus, fraudStatus string) Result {
	res := Result{RawStatus: transactionStatus, FraudStatus: fraudStatus}

	switch transactionStatus {
	case "settlement", "capture":
		res.Kind = ResultSuccess
		if fraudStatus == "challenge" {
			res.SubReason = SubReasonBankReview
		}
	case "pending":
		res.Kind = ResultPending
	case "expire":
		res.Kind = ResultError
		res.SubReason = SubReasonExpired
	case "deny", "cancel", "failure":
		res.Kind = ResultError
	default:
		// status tak dikenal dianggap error, bukan diam-diam sukses
		res.Kind = ResultError
	}
	return res
}

var ErrAlreadyResolved = errors.New("invokasi widget sudah menerima hasil")

// Invocation merepresentasikan satu pembukaan widget: tepat satu dari empat
// callback boleh masuk, dan hasilnya dikonsumsi sekali.
type Invocation struct {
	once sync.Once
	done chan Result
}

func NewInvocation() *Invocation {
	return &Invocation{done: make(chan Result, 1)}
}

// Resolve mengisi hasil. Panggilan kedua (callback ganda) ditolak.
func (inv *Invocation) Resolve(r Result) error {
	err := ErrAlreadyResolved
	inv.once.Do(func() {
		inv.done <- r
		err = nil
	})
	return err
}

// Await menunggu hasil dengan batas waktu dari ctx. Kalau ctx habis duluan,
// invokasi dianggap ditutup user (closed) supaya caller tetap dapat tepat
// satu hasil terminal.
func (inv *Invocation) Await(ctx context.Context) Result {
	select {
	case r := <-inv.done:
		return r
	case <-ctx.Done():
		timedOut := Result{Kind: ResultClosed, SubReason: "await_timeout"}
		if err := inv.Resolve(timedOut); err != nil {
			// callback sempat masuk persis saat timeout; pakai hasil aslinya
			return <-inv.done
		}
		<-inv.done
		return timedOut
	}
}
