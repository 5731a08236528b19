package hierarchy

import (
	"context"

	"github.com/absenin/absensi-backend-go/internal/domain/user"
)

// CanActOn reports whether approver may decide a request filed by
// requesterID. HR tiers always may; branch HR may within its own store;
// everyone else must sit above the requester in the atasan chain.
func (r *Resolver) CanActOn(ctx context.Context, approver user.User, requesterID string) (bool, error) {
	if approver.IsHRTier() {
		return true, nil
	}
	if !approver.CanApprove() {
		return false, nil
	}

	requester, err := r.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		return false, err
	}

	if approver.IsHRCabang() {
		return approver.PenempatanStore != nil && requester.PenempatanStore != nil &&
			*approver.PenempatanStore == *requester.PenempatanStore, nil
	}

	if requester.AtasanID != nil && *requester.AtasanID == approver.ID {
		return true, nil
	}
	return r.IsSubordinate(ctx, approver.ID, requesterID)
}
