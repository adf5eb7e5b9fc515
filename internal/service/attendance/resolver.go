package attendance

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/doelski/mabinihub-backend-go/internal/domain/employee"
	"github.com/doelski/mabinihub-backend-go/internal/pkg/validator"
)

// IdentityResolver maps an arbitrary employee identifier token to the
// canonical employee code used as the attendance key. Uploaded files mix
// two addressing schemes: surrogate numeric ids and business codes.
type IdentityResolver struct {
	directory employee.DirectoryRepository
}

func NewIdentityResolver(directory employee.DirectoryRepository) *IdentityResolver {
	return &IdentityResolver{directory: directory}
}

// Resolve applies two-tier resolution: an all-digit token is first tried
// as an internal id; any token is then tried as a canonical code; an
// unresolved token comes back verbatim. The caller decides whether to
// accept an unresolved identifier, since this engine never invents
// employees.
func (r *IdentityResolver) Resolve(ctx context.Context, token string) (string, error) {
	if validator.IsEmpty(token) {
		return "", nil
	}

	if validator.IsNumeric(token) {
		id, err := strconv.ParseInt(token, 10, 64)
		if err == nil {
			code, err := r.directory.FindCodeByInternalID(ctx, id)
			if err == nil {
				return code, nil
			}
			if !errors.Is(err, employee.ErrEmployeeNotFound) {
				return "", fmt.Errorf("directory lookup failed: %w", err)
			}
		}
	}

	exists, err := r.directory.CodeExists(ctx, token)
	if err != nil {
		return "", fmt.Errorf("directory lookup failed: %w", err)
	}
	if exists {
		return token, nil
	}

	return token, nil
}
