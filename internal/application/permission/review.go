package permission

import (
	"context"

	"github.com/gatehouse-io/gatehouse/internal/domain/uuid"
)

// authorizeReviewer checks that the reviewer is a member of the tenant
// with a role allowed to review requests.
func authorizeReviewer(
	ctx context.Context,
	memberRepo MemberRepository,
	tenantID, reviewerID uuid.UUID,
) error {
	member, err := memberRepo.FindMember(ctx, tenantID, reviewerID)
	if err != nil {
		return ErrNotTenantMember
	}
	if !member.Role().CanReview() {
		return ErrReviewNotAllowed
	}
	return nil
}
