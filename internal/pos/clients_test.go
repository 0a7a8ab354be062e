package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientByPhone_BeforeAndAfterDiscount(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.CreateOrder([]ItemInput{{ServicePrice: 100, Quantity: 2}}, "5550001", 10)
	require.NoError(t, err)

	// No explicit record yet, even though the phone appears on an order
	_, ok := s.ClientByPhone("5550001")
	assert.False(t, ok)

	require.NoError(t, s.SetClientDiscount("5550001", 10, "regular"))

	c, ok := s.ClientByPhone("5550001")
	require.True(t, ok)
	assert.Equal(t, Client{Discount: 10, Notes: "regular"}, c)
}

func TestSetClientDiscount_ClampsAndIgnoresEmptyPhone(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.SetClientDiscount("", 50, "ghost"))
	assert.Zero(t, s.QueueLen(), "empty phone is a no-op")

	require.NoError(t, s.SetClientDiscount("5550002", 300, ""))
	c, ok := s.ClientByPhone("5550002")
	require.True(t, ok)
	assert.Equal(t, 100, c.Discount)

	require.NoError(t, s.SetClientDiscount("5550003", -10, ""))
	c, _ = s.ClientByPhone("5550003")
	assert.Equal(t, 0, c.Discount)
}

func TestDeleteClient(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.SetClientDiscount("5550001", 5, ""))
	require.NoError(t, s.DeleteClient("5550001"))

	_, ok := s.ClientByPhone("5550001")
	assert.False(t, ok)
}

func TestAllClients_MergesOrderPhonesAndRecords(t *testing.T) {
	s, _ := newTestStore(t)

	// Phone with two orders but no discount record
	_, err := s.CreateOrder([]ItemInput{{ServicePrice: 100, Quantity: 1}}, "5550001", 0)
	require.NoError(t, err)
	second, err := s.CreateOrder([]ItemInput{{ServicePrice: 50, Quantity: 1}}, "5550001", 0)
	require.NoError(t, err)

	// Phone with a record but zero orders
	require.NoError(t, s.SetClientDiscount("5550009", 15, "vip"))

	// Anonymous order contributes nothing
	_, err = s.CreateOrder([]ItemInput{{ServicePrice: 10, Quantity: 1}}, "", 0)
	require.NoError(t, err)

	clients := s.AllClients()
	require.Len(t, clients, 2)

	// Sorted by visit count descending
	assert.Equal(t, "5550001", clients[0].Phone)
	assert.Equal(t, 2, clients[0].Visits)
	assert.InDelta(t, 150.0, clients[0].TotalSpend, 1e-9)
	assert.Equal(t, second.Datetime, clients[0].LastVisit)
	assert.Equal(t, 0, clients[0].Discount, "derived entry defaults to zero discount")
	assert.Equal(t, "", clients[0].Notes)

	assert.Equal(t, "5550009", clients[1].Phone)
	assert.Equal(t, 0, clients[1].Visits)
	assert.Equal(t, 15, clients[1].Discount)
	assert.Equal(t, "vip", clients[1].Notes)
}
