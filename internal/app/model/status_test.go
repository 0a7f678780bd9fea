package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeOrderStatus(t *testing.T) {
	cases := map[string]OrderStatus{
		"pending":    OrderStatusPending,
		"Andamento":  OrderStatusPending,
		"processed":  OrderStatusPending,
		"FINALIZADO": OrderStatusFinalized,
		"completed":  OrderStatusFinalized,
		"concluido":  OrderStatusFinalized,
		"cancelado":  OrderStatusCancelled,
		"Cancel":     OrderStatusCancelled,
		"c":          OrderStatusCancelled,
		" cancelled ": OrderStatusCancelled,
	}
	for raw, want := range cases {
		got, ok := NormalizeOrderStatus(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}

	_, ok := NormalizeOrderStatus("shipped-to-mars")
	assert.False(t, ok)
}

func TestExpandOrderStatusFilter(t *testing.T) {
	assert.Nil(t, ExpandOrderStatusFilter(""))
	assert.Contains(t, ExpandOrderStatusFilter("processed"), "andamento")
	assert.Contains(t, ExpandOrderStatusFilter("FINALIZADO"), "completed")
	// unknown filters fall back to themselves
	assert.Equal(t, []string{"weird"}, ExpandOrderStatusFilter("Weird"))
}

func TestNormalizeSchedulingStatus(t *testing.T) {
	cases := map[string]SchedulingStatus{
		"marcado":    SchedulingStatusScheduled,
		"confirmado": SchedulingStatusConfirmed,
		"concluido":  SchedulingStatusCompleted,
		"CANCELADO":  SchedulingStatusCancelled,
		"c":          SchedulingStatusCancelled,
		"cancel":     SchedulingStatusCancelled,
		"completed":  SchedulingStatusCompleted,
	}
	for raw, want := range cases {
		got, ok := NormalizeSchedulingStatus(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}

	_, ok := NormalizeSchedulingStatus("snoozed")
	assert.False(t, ok)
}

func TestNormalizeServiceKind(t *testing.T) {
	cases := map[string]ServiceKind{
		"banho":       ServiceBath,
		"bath":        ServiceBath,
		"veterinario": ServiceVeterinary,
		"passeio":     ServiceWalk,
		"hotel":       ServiceHotel,
	}
	for raw, want := range cases {
		got, ok := NormalizeServiceKind(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}

	_, ok := NormalizeServiceKind("grooming")
	assert.False(t, ok)
}

func TestNormalizeCartItemMode(t *testing.T) {
	mode, ok := NormalizeCartItemMode("INCLUDE")
	assert.True(t, ok)
	assert.Equal(t, ModeInclude, mode)

	mode, ok = NormalizeCartItemMode("incluir")
	assert.True(t, ok)
	assert.Equal(t, ModeInclude, mode)

	// empty mode defaults to set, matching the legacy client payloads
	mode, ok = NormalizeCartItemMode("")
	assert.True(t, ok)
	assert.Equal(t, ModeSet, mode)

	_, ok = NormalizeCartItemMode("merge")
	assert.False(t, ok)
}
