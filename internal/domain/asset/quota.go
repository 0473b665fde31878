package asset

import (
	"context"
	"fmt"

	"github.com/veecerts/asset-api/internal/utils/platformerrors"
)

// CheckAndReserve validates a prospective storage change against the client's
// subscription capacity and returns the new total for the caller to persist.
// For a replacement deltaMb is new minus old and may be negative. fileSizeMb
// only feeds the user-facing message. Every size change must pass through
// here before being persisted.
func CheckAndReserve(ctx context.Context, currentMb, deltaMb, capacityMb, fileSizeMb float64) (float64, error) {
	requested := currentMb + deltaMb
	if requested > capacityMb {
		return 0, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeQuotaExceeded,
			fmt.Sprintf("Insuficient storage: Uploading file of %vmb will exceed your maximum storage of %vmb.", fileSizeMb, capacityMb),
			nil,
			map[string]any{"requested_mb": requested, "limit_mb": capacityMb},
		)
	}
	return requested, nil
}
