package permission

import "errors"

// Permission use case errors.
var (
	ErrRequestNotFound  = errors.New("permission request not found")
	ErrNotTenantMember  = errors.New("user is not a member of the tenant")
	ErrReviewNotAllowed = errors.New("member role may not review requests")
	ErrAlreadyReviewed  = errors.New("request has already been reviewed")
)
