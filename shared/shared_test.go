package shared_test

import (
	"context"
	"testing"

	"hotelier/shared"
	cacheMocks "hotelier/shared/cache/mocks"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestBuildCacheKey(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		parts  []string
		want   string
	}{
		{
			name:   "prefix only",
			prefix: "room:gets",
			parts:  nil,
			want:   "room:gets",
		},
		{
			name:   "prefix with one part",
			prefix: "room:get",
			parts:  []string{"42"},
			want:   "room:get:42",
		},
		{
			name:   "prefix with several parts",
			prefix: "room",
			parts:  []string{"get", "42"},
			want:   "room:get:42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.BuildCacheKey(tt.prefix, tt.parts...))
		})
	}
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Clear(gomock.Any(), "room:gets:*").Return(nil)

	shared.InvalidateCaches(context.Background(), mockCache, "room:gets")
}
