package blogservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intptr(i int) *int {
	return &i
}

func TestDecide(t *testing.T) {
	testCases := []struct {
		name     string
		callerID *int
		blog     *Blog
		want     Decision
	}{
		{
			name:     "caller is the owner",
			callerID: intptr(1),
			blog:     &Blog{ID: 10, Owner: &Owner{ID: 1}},
			want:     Allowed,
		},
		{
			name:     "caller is not the owner",
			callerID: intptr(2),
			blog:     &Blog{ID: 10, Owner: &Owner{ID: 1}},
			want:     Forbidden,
		},
		{
			name:     "blog has no owner on record",
			callerID: intptr(1),
			blog:     &Blog{ID: 10},
			want:     Unresolvable,
		},
		{
			name:     "no caller identity",
			callerID: nil,
			blog:     &Blog{ID: 10, Owner: &Owner{ID: 1}},
			want:     Unresolvable,
		},
		{
			name:     "no caller identity and no owner",
			callerID: nil,
			blog:     &Blog{ID: 10},
			want:     Unresolvable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Decide(tc.callerID, tc.blog))
		})
	}
}
