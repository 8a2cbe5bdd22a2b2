package domain

import "errors"

// Blog lifecycle errors. ErrBlogNotFound covers both a missing row and a
// soft-deleted one; the two are indistinguishable to callers.
var (
	ErrBlogNotFound = errors.New("blog not found")
	ErrNotBlogOwner = errors.New("blog does not belong to this user")
)
