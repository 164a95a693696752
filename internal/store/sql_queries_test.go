// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/card-keeper-bot/models"
)

func Test_buildInsertCardQuery(t *testing.T) {
	cvv := "123"
	card := models.Card{
		ID:         "0198a6a2-1111-7000-8000-000000000001",
		OwnerID:    42,
		BankName:   "HDFC",
		CardNumber: "4242424242424242",
		Expiry:     "09/2027",
		CVV:        &cvv,
		CreatedAt:  time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}

	query, args, err := buildInsertCardQuery(card)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "insert into cards")
	for _, c := range cardColumns {
		require.Contains(t, q, c)
	}

	// placeholder format should be $N (works on both backends)
	require.Contains(t, query, "$1")
	require.Contains(t, query, "$7")

	require.Len(t, args, len(cardColumns))
	require.Equal(t, card.ID, args[0])
	require.Equal(t, card.OwnerID, args[1])
	require.Equal(t, card.BankName, args[2])
	require.Equal(t, card.CardNumber, args[3])
	require.Equal(t, card.Expiry, args[4])
	require.Equal(t, &cvv, args[5])
	require.Equal(t, card.CreatedAt, args[6])
}

func Test_buildListCardsQuery(t *testing.T) {
	query, args, err := buildListCardsQuery(42)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "select")
	require.Contains(t, q, "from cards")
	require.Contains(t, q, "owner_id")
	require.Contains(t, q, "order by created_at, id")
	require.Contains(t, query, "$1")

	require.Len(t, args, 1)
	require.Equal(t, int64(42), args[0])
}

func Test_buildFindCardsQuery(t *testing.T) {
	tests := []struct {
		name         string
		term         string
		wantArgs     []any
		wantNumberLK bool
	}{
		{
			name:         "bank name term has no digit branch",
			term:         "HDFC",
			wantArgs:     []any{int64(42), "%hdfc%"},
			wantNumberLK: false,
		},
		{
			name:         "digit term matches both branches",
			term:         "1234",
			wantArgs:     []any{int64(42), "%1234%", "%1234"},
			wantNumberLK: true,
		},
		{
			name:         "formatted number term is cleaned for the suffix branch",
			term:         "4242-4242",
			wantArgs:     []any{int64(42), "%4242-4242%", "%42424242"},
			wantNumberLK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildFindCardsQuery(42, tt.term)
			require.NoError(t, err)

			q := strings.ToLower(query)
			require.Contains(t, q, "from cards")
			require.Contains(t, q, "owner_id")
			require.Contains(t, q, "lower(bank_name) like")
			require.Equal(t, tt.wantNumberLK, strings.Contains(q, "card_number like"))
			require.Contains(t, q, "order by created_at, id")

			require.Equal(t, tt.wantArgs, args)
		})
	}
}

func Test_buildGetCardQuery(t *testing.T) {
	query, args, err := buildGetCardQuery(42, "card-id-1")
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "select")
	require.Contains(t, q, "from cards")
	require.Contains(t, q, "id")
	require.Contains(t, q, "owner_id")

	require.Len(t, args, 2)
	require.ElementsMatch(t, []any{int64(42), "card-id-1"}, args)
}

func Test_buildDeleteCardQuery(t *testing.T) {
	query, args, err := buildDeleteCardQuery(42, "card-id-1")
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "delete from cards")
	require.Contains(t, q, "owner_id")

	require.Len(t, args, 2)
	require.ElementsMatch(t, []any{int64(42), "card-id-1"}, args)
}
