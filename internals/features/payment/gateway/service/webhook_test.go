package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	orderModel "github.com/icecoffie/astrommerce-sub000/internals/features/orders/model"
)

func TestEffectOfUpdatesStatusOnlyForSuccessAndPending(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		res        Result
		wantUpdate bool
		wantStatus orderModel.PaymentStatus
	}{
		{"success", Result{Kind: ResultSuccess}, true, orderModel.PaymentPaid},
		{"success kena challenge", Result{Kind: ResultSuccess, SubReason: SubReasonBankReview}, true, orderModel.PaymentPending},
		{"pending", Result{Kind: ResultPending}, true, orderModel.PaymentPending},
		{"error", Result{Kind: ResultError}, false, ""},
		{"error expired", Result{Kind: ResultError, SubReason: SubReasonExpired}, false, ""},
		{"closed", Result{Kind: ResultClosed}, false, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			effect := EffectOf(tc.res)
			require.Equal(t, tc.wantUpdate, effect.UpdateStatus)
			if tc.wantUpdate {
				require.Equal(t, tc.wantStatus, effect.NewStatus)
			}
		})
	}
}

func TestEffectOfRecordsExpiredReasonWithoutTouchingStatus(t *testing.T) {
	t.Parallel()

	effect := EffectOf(Result{Kind: ResultError, SubReason: SubReasonExpired})
	require.False(t, effect.UpdateStatus)
	require.NotNil(t, effect.FailureReason)
	require.Equal(t, SubReasonExpired, *effect.FailureReason)

	// deny biasa tidak meninggalkan jejak apa pun
	effect = EffectOf(Result{Kind: ResultError})
	require.False(t, effect.UpdateStatus)
	require.Nil(t, effect.FailureReason)
}
