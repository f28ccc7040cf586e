package service_test

import (
	"testing"

	"github.com/AnthoniusHendriyanto/blog-service/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/blog-service/internal/auth/service"
	"github.com/stretchr/testify/assert"
)

func TestAuthorizeMutation(t *testing.T) {
	for _, id := range []int64{0, 1, 42, 1 << 40} {
		identity := &domain.User{ID: id, Username: "author"}

		assert.Equal(t, service.Allow, service.AuthorizeMutation(identity, id))
		assert.Equal(t, service.Deny, service.AuthorizeMutation(identity, id+1))
		assert.Equal(t, service.Deny, service.AuthorizeMutation(identity, id-1))
	}

	assert.Equal(t, service.Deny, service.AuthorizeMutation(nil, 0))
	assert.True(t, service.Allow.Allowed())
	assert.False(t, service.Deny.Allowed())
	assert.Equal(t, "allow", service.Allow.String())
	assert.Equal(t, "deny", service.Deny.String())
}
