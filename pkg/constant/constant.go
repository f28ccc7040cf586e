package constant

const (
	DefaultTokenType = "bearer"

	DefaultPostLimit = 10
	MaxPostLimit     = 100

	MinPasswordLength = 8
	// bcrypt ignores everything past 72 bytes.
	MaxPasswordBytes = 72

	LocalsIdentityKey = "identity"
	LocalsTokenKey    = "access_token"
)
