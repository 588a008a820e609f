package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstTrue(t *testing.T) {
	cases := []struct {
		name    string
		checks  []Check
		want    string
		wantHit bool
	}{
		{
			name: "second check fails",
			checks: []Check{
				{Message: "Something went wrong", Failed: false},
				{Message: "The DB is down", Failed: true},
			},
			want:    "The DB is down",
			wantHit: true,
		},
		{
			name: "both fail, first wins",
			checks: []Check{
				{Message: "Something went wrong", Failed: true},
				{Message: "The DB is down", Failed: true},
			},
			want:    "Something went wrong",
			wantHit: true,
		},
		{
			name: "only first fails",
			checks: []Check{
				{Message: "Something went wrong", Failed: true},
				{Message: "The DB is down", Failed: false},
			},
			want:    "Something went wrong",
			wantHit: true,
		},
		{
			name: "nothing fails",
			checks: []Check{
				{Message: "Something went wrong", Failed: false},
				{Message: "The DB is down", Failed: false},
			},
		},
		{name: "no checks"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, hit := FirstTrue(tc.checks...)
			assert.Equal(t, tc.wantHit, hit)
			assert.Equal(t, tc.want, got)
		})
	}
}
