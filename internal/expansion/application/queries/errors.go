package queries

import (
	"errors"

	"github.com/storeops/siteline/internal/expansion/domain"
	"github.com/storeops/siteline/internal/shared/apperror"
)

// classify maps domain sentinels onto the application error taxonomy.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	switch {
	case errors.Is(err, domain.ErrLocationNotFound),
		errors.Is(err, domain.ErrFollowUpNotFound):
		return apperror.Wrap(apperror.KindNotFound, err, err.Error())
	default:
		return err
	}
}
