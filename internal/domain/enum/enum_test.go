package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus_JSON(t *testing.T) {
	out, err := json.Marshal(OrderStatusPartial)
	require.NoError(t, err)
	assert.Equal(t, `"Partial"`, string(out))

	var s OrderStatus
	require.NoError(t, json.Unmarshal([]byte(`"Complete"`), &s))
	assert.Equal(t, OrderStatusComplete, s)

	require.NoError(t, json.Unmarshal([]byte(`3`), &s))
	assert.Equal(t, OrderStatusCancel, s)

	assert.Error(t, json.Unmarshal([]byte(`"Shipped"`), &s))
}

func TestOrderStatus_String(t *testing.T) {
	assert.Equal(t, "Pending", OrderStatusPending.String())
	assert.Equal(t, "Cancel", OrderStatusCancel.String())
	assert.Equal(t, "Pending", OrderStatus(42).String())
}

func TestOrderStatus_Scan(t *testing.T) {
	var s OrderStatus
	require.NoError(t, s.Scan(int64(2)))
	assert.Equal(t, OrderStatusComplete, s)

	require.NoError(t, s.Scan(nil))
	assert.Equal(t, OrderStatusPending, s)

	v, err := OrderStatusPartial.Value()
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestPaymentMethod_Valid(t *testing.T) {
	for _, m := range []PaymentMethod{PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodCheck} {
		assert.True(t, m.Valid(), m)
	}
	assert.False(t, PaymentMethod("barter").Valid())
	assert.False(t, PaymentMethod("").Valid())
}

func TestSupplierType(t *testing.T) {
	assert.True(t, SupplierTypeServices.Valid())
	assert.False(t, SupplierType("retail").Valid())

	var st SupplierType
	require.NoError(t, st.Scan([]byte("producer")))
	assert.Equal(t, SupplierTypeProducer, st)
	require.NoError(t, st.Scan(nil))
	assert.Equal(t, SupplierTypeDistributor, st)
}
