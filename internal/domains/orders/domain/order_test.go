package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewOrder_ComputesTotal(t *testing.T) {
	order, err := NewOrder(1, 2, []Line{
		{ProductID: 10, Quantity: 2, UnitPrice: 19.99},
		{ProductID: 11, Quantity: 1, UnitPrice: 5.00},
	})

	require.NoError(t, err)
	require.InDelta(t, 44.98, order.Total, 0.0001)
	require.Len(t, order.Lines, 2)
}

func TestNewOrder_RejectsMissingReferences(t *testing.T) {
	lines := []Line{{ProductID: 10, Quantity: 1, UnitPrice: 1}}

	_, err := NewOrder(0, 2, lines)
	require.ErrorIs(t, err, ErrInvalidCustomer)

	_, err = NewOrder(1, 0, lines)
	require.ErrorIs(t, err, ErrInvalidStore)

	_, err = NewOrder(1, 2, nil)
	require.ErrorIs(t, err, ErrNoLines)
}

func TestNewOrder_RejectsBadLines(t *testing.T) {
	_, err := NewOrder(1, 2, []Line{{ProductID: 0, Quantity: 1, UnitPrice: 1}})
	require.ErrorIs(t, err, ErrInvalidProduct)

	_, err = NewOrder(1, 2, []Line{{ProductID: 10, Quantity: 0, UnitPrice: 1}})
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewOrder(1, 2, []Line{{ProductID: 10, Quantity: 1, UnitPrice: -0.01}})
	require.ErrorIs(t, err, ErrInvalidPrice)
}

func TestValidateLine(t *testing.T) {
	require.NoError(t, ValidateLine(1, 1))
	require.ErrorIs(t, ValidateLine(-1, 1), ErrInvalidProduct)
	require.ErrorIs(t, ValidateLine(1, -1), ErrInvalidQuantity)
}
