package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointment_EffectivePaymentStatus(t *testing.T) {
	cases := []struct {
		name string
		appt Appointment
		want PaymentStatus
	}{
		{
			name: "done is always paid",
			appt: Appointment{Status: StatusDone, PaymentMethod: PaymentGCash, PaymentStatus: PaymentUnpaid},
			want: PaymentPaid,
		},
		{
			name: "explicit status wins",
			appt: Appointment{Status: StatusAwaitingVerification, PaymentMethod: PaymentGCash, PaymentStatus: PaymentAwaitingVerification},
			want: PaymentAwaitingVerification,
		},
		{
			name: "legacy cash row without payment status",
			appt: Appointment{Status: StatusConfirmed, PaymentMethod: PaymentCash},
			want: PaymentPaid,
		},
		{
			name: "legacy gcash row without payment status",
			appt: Appointment{Status: StatusAwaitingPayment, PaymentMethod: PaymentGCash},
			want: PaymentUnpaid,
		},
		{
			name: "cancelled keeps its recorded status",
			appt: Appointment{Status: StatusCancelled, PaymentMethod: PaymentGCash, PaymentStatus: PaymentPaid},
			want: PaymentPaid,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.appt.EffectivePaymentStatus())
		})
	}
}

func TestAppointment_Lifecycle(t *testing.T) {
	active := Appointment{Status: StatusConfirmed}
	assert.True(t, active.IsActive())
	assert.False(t, active.IsTerminal())
	assert.True(t, active.CanBeCancelled())

	done := Appointment{Status: StatusDone}
	assert.True(t, done.IsActive()) // завершённый визит удерживал слот
	assert.True(t, done.IsTerminal())
	assert.False(t, done.CanBeCancelled())

	cancelled := Appointment{Status: StatusCancelled}
	assert.False(t, cancelled.IsActive())
	assert.True(t, cancelled.IsTerminal())
	assert.False(t, cancelled.CanBeCancelled())
}

func TestAppointment_RefundOwedOnCancel(t *testing.T) {
	assert.True(t, (&Appointment{PaymentMethod: PaymentGCash, PaymentStatus: PaymentPaid}).RefundOwedOnCancel())
	assert.True(t, (&Appointment{PaymentMethod: PaymentGCash, PaymentStatus: PaymentAwaitingVerification}).RefundOwedOnCancel())

	assert.False(t, (&Appointment{PaymentMethod: PaymentGCash, PaymentStatus: PaymentUnpaid}).RefundOwedOnCancel())
	assert.False(t, (&Appointment{PaymentMethod: PaymentGCash, PaymentStatus: PaymentFailed}).RefundOwedOnCancel())
	// Наличная оплата возвращается только по явному запросу клиента
	assert.False(t, (&Appointment{PaymentMethod: PaymentCash, PaymentStatus: PaymentPaid}).RefundOwedOnCancel())
}
