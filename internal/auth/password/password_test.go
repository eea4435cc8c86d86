package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	hashed, err := Hash("s3creto")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, Cost, cost)

	assert.True(t, Verify("s3creto", hashed))
	assert.False(t, Verify("S3creto", hashed))
	assert.False(t, Verify("s3creto", ""))
	assert.False(t, Verify("s3creto", "not-a-hash"))
}

func TestIsTooLong(t *testing.T) {
	assert.False(t, IsTooLong(strings.Repeat("a", 72)))
	assert.True(t, IsTooLong(strings.Repeat("a", 73)))
}
