package constants

// Context keys
const (
	ContextKeyUser   = "user"
	ContextKeyUserID = "user_id"
)

// Cookie names
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultTopIdeas = 10
	// MaxPage keeps (page-1)*limit far from int overflow.
	MaxPage = 1_000_000
)

// Uploads
const (
	MaxIdeaImages   = 10
	IdeaImagesField = "postImages"
	AvatarField     = "avatar"
	CoverImageField = "coverImage"
)

// Comments
const (
	// MaxCommentDepth bounds reply tree expansion.
	MaxCommentDepth = 256
)

const MinPasswordLength = 6
