package user

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChargeForAnalysis(t *testing.T) {
	cases := []struct {
		name    string
		user    User
		charged bool
		err     error
	}{
		{name: "pro without credits", user: User{IsPro: true, Credits: 0}},
		{name: "pro with credits", user: User{IsPro: true, Credits: 4}},
		{name: "free with one credit", user: User{Credits: 1}, charged: true},
		{name: "free without credits", user: User{Credits: 0}, err: ErrInsufficientCredits},
		{name: "free negative balance", user: User{Credits: -1}, err: ErrInsufficientCredits},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			charged, err := tc.user.ChargeForAnalysis()
			require.ErrorIs(t, err, tc.err)
			require.Equal(t, tc.charged, charged)
		})
	}
}
