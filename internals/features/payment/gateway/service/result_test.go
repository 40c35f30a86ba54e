package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResolveNotificationMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status    string
		fraud     string
		wantKind  ResultKind
		subReason string
	}{
		{"settlement", "accept", ResultSuccess, ""},
		{"capture", "accept", ResultSuccess, ""},
		{"settlement", "challenge", ResultSuccess, SubReasonBankReview},
		{"capture", "challenge", ResultSuccess, SubReasonBankReview},
		{"pending", "", ResultPending, ""},
		{"deny", "", ResultError, ""},
		{"cancel", "", ResultError, ""},
		{"failure", "", ResultError, ""},
		{"expire", "", ResultError, SubReasonExpired},
		// status asing tidak boleh diam-diam dianggap sukses
		{"status-aneh", "", ResultError, ""},
	}

	for _, tc := range cases {
		t.Run(tc.status+"/"+tc.fraud, func(t *testing.T) {
			res := ResolveNotification(tc.status, tc.fraud)
			require.Equal(t, tc.wantKind, res.Kind)
			require.Equal(t, tc.subReason, res.SubReason)
			require.Equal(t, tc.status, res.RawStatus)
		})
	}
}

func TestInvocationSingleFire(t *testing.T) {
	t.Parallel()

	for _, kind := range []ResultKind{ResultSuccess, ResultPending, ResultError, ResultClosed} {
		t.Run(string(kind), func(t *testing.T) {
			inv := NewInvocation()
			require.NoError(t, inv.Resolve(Result{Kind: kind}))

			got := inv.Await(context.Background())
			require.Equal(t, kind, got.Kind)
		})
	}
}

func TestInvocationDoubleResolveRejected(t *testing.T) {
	t.Parallel()

	inv := NewInvocation()
	require.NoError(t, inv.Resolve(Result{Kind: ResultSuccess}))

	// callback kedua (mis. error setelah success) ditolak
	err := inv.Resolve(Result{Kind: ResultError})
	require.ErrorIs(t, err, ErrAlreadyResolved)

	got := inv.Await(context.Background())
	require.Equal(t, ResultSuccess, got.Kind)
}

func TestInvocationAwaitTimeoutMapsToClosed(t *testing.T) {
	t.Parallel()

	inv := NewInvocation()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	got := inv.Await(ctx)
	require.Equal(t, ResultClosed, got.Kind)

	// callback yang telat tetap ditolak
	require.ErrorIs(t, inv.Resolve(Result{Kind: ResultSuccess}), ErrAlreadyResolved)
}

func TestFormatInstrumentLabel(t *testing.T) {
	t.Parallel()

	bankTransfer := map[string]interface{}{
		"payment_type": "bank_transfer",
		"va_numbers": []interface{}{
			map[string]interface{}{"bank": "bca", "va_number": "1234567890"},
		},
	}
	require.Equal(t, "BCA Virtual Account 1234567890", FormatInstrumentLabel(bankTransfer))

	permata := map[string]interface{}{
		"payment_type":      "bank_transfer",
		"permata_va_number": "987654",
	}
	require.Equal(t, "Permata Virtual Account 987654", FormatInstrumentLabel(permata))

	cstore := map[string]interface{}{
		"payment_type": "cstore",
		"store":        "indomaret",
	}
	require.Equal(t, "Gerai Indomaret", FormatInstrumentLabel(cstore))

	gopay := map[string]interface{}{"payment_type": "gopay"}
	require.Equal(t, "GOPAY", FormatInstrumentLabel(gopay))

	cc := map[string]interface{}{"payment_type": "credit_card"}
	require.Equal(t, "Kartu Kredit", FormatInstrumentLabel(cc))
}
